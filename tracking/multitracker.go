package tracking

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

var (
	ErrStarted    = errors.New("multitracker: cannot add trackers after the first update")
	ErrEmptyBox   = errors.New("multitracker: empty bounding box")
	ErrInitFailed = errors.New("multitracker: tracker failed to initialize")
)

// MultiTracker runs one delegated tracker per object. The number of objects
// is fixed once Update has been called.
type MultiTracker struct {
	trackers []gocv.Tracker
	boxes    []image.Rectangle
	started  bool
}

func NewMultiTracker() *MultiTracker {
	return &MultiTracker{}
}

// Add initializes trk on frame with rect and takes ownership of it.
func (m *MultiTracker) Add(trk gocv.Tracker, frame gocv.Mat, rect image.Rectangle) error {
	if m.started {
		return ErrStarted
	}
	if rect.Empty() {
		return ErrEmptyBox
	}
	if !trk.Init(frame, rect) {
		return fmt.Errorf("%w: box %d %v", ErrInitFailed, len(m.trackers), rect)
	}
	m.trackers = append(m.trackers, trk)
	m.boxes = append(m.boxes, rect)
	return nil
}

// Update advances every tracker on frame and returns one box per object in
// insertion order. A tracker that loses its target keeps its previous box and
// ok is false.
func (m *MultiTracker) Update(frame gocv.Mat) (boxes []image.Rectangle, ok bool) {
	m.started = true
	ok = true
	for i, trk := range m.trackers {
		rect, found := trk.Update(frame)
		if !found {
			ok = false
			continue
		}
		m.boxes[i] = rect
	}
	boxes = make([]image.Rectangle, len(m.boxes))
	copy(boxes, m.boxes)
	return boxes, ok
}

// Boxes returns the last known box of every object.
func (m *MultiTracker) Boxes() []image.Rectangle {
	boxes := make([]image.Rectangle, len(m.boxes))
	copy(boxes, m.boxes)
	return boxes
}

func (m *MultiTracker) Len() int {
	return len(m.trackers)
}

// Close releases every tracker.
func (m *MultiTracker) Close() error {
	var errs []error
	for _, trk := range m.trackers {
		if err := trk.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.trackers = nil
	return errors.Join(errs...)
}
