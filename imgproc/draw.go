package imgproc

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// DrawBoxes outlines each box on frame in its color. Colors are reused
// cyclically when there are fewer colors than boxes.
func DrawBoxes(frame *gocv.Mat, boxes []image.Rectangle, colors []color.RGBA, thickness int) {
	if len(colors) == 0 {
		return
	}
	for i, box := range boxes {
		gocv.Rectangle(frame, box, colors[i%len(colors)], thickness)
	}
}
