package imgproc

import (
	"image"
	"image/png"
	"os"

	"github.com/nfnt/resize"
	"gocv.io/x/gocv"
)

// WriteSnapshot saves frame as a PNG scaled down to width, keeping the aspect ratio.
func WriteSnapshot(path string, frame gocv.Mat, width uint) error {
	img, err := frame.ToImage()
	if err != nil {
		return err
	}
	return writeThumbnail(path, img, width)
}

func writeThumbnail(path string, img image.Image, width uint) (err error) {
	if width > 0 && int(width) < img.Bounds().Dx() {
		img = resize.Resize(width, 0, img, resize.Lanczos3)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}
