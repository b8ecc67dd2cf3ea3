package imgproc

import (
	"errors"
	"image"

	"gocv.io/x/gocv"

	"github.com/DaniruKun/multitracker/logger"
)

const (
	KeyQuit = 'q'
	KeyEsc  = 27
)

var ErrNoSelection = errors.New("no bounding box selected")

// Selector prompts the user for regions of interest on a frame.
type Selector interface {
	// SelectROI lets the user drag a box. An empty rectangle means the selection was cancelled.
	SelectROI(frame gocv.Mat) image.Rectangle
	// WaitKey blocks for up to delay ms (0 = forever) and returns the pressed key or -1.
	WaitKey(delay int) int
}

// windowUI drives selection and preview through an OpenCV highgui window.
type windowUI struct {
	window *gocv.Window
}

func newWindowUI(name string) *windowUI {
	return &windowUI{window: gocv.NewWindow(name)}
}

func (w *windowUI) SelectROI(frame gocv.Mat) image.Rectangle {
	return w.window.SelectROI(frame)
}

func (w *windowUI) WaitKey(delay int) int {
	return w.window.WaitKey(delay)
}

// Show displays frame and polls the keyboard once.
func (w *windowUI) Show(frame gocv.Mat) int {
	w.window.IMShow(frame)
	return w.window.WaitKey(1)
}

func (w *windowUI) Close() error {
	return w.window.Close()
}

// SelectBoxes asks for boxes on frame until the user presses q after a
// selection. Cancelled selections are skipped.
func SelectBoxes(sel Selector, frame gocv.Mat) ([]image.Rectangle, error) {
	log := logger.S()
	var boxes []image.Rectangle

	for {
		rect := sel.SelectROI(frame)
		if rect.Empty() {
			log.Infow("Selection cancelled, box ignored")
		} else {
			boxes = append(boxes, rect)
			log.Infow("Box selected", "index", len(boxes)-1, "box", rect)
		}

		log.Info("Press q to quit selecting boxes and start tracking")
		log.Info("Press any other key to select next object")
		k := sel.WaitKey(0)
		if k < 0 || k&0xFF == KeyQuit {
			break
		}
	}

	if len(boxes) == 0 {
		return nil, ErrNoSelection
	}
	log.Infow("Selected bounding boxes", "boxes", boxes)
	return boxes, nil
}
