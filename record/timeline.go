// Package record keeps the positions reported by the trackers over time and
// persists them as text or YAML.
package record

import (
	"errors"
	"fmt"
	"image"
	"time"
)

var (
	ErrBoxCount     = errors.New("record: box count does not match object count")
	ErrNotMonotonic = errors.New("record: timestamps must be strictly increasing")
)

// Sample is the set of boxes reported at one point of the video.
type Sample struct {
	Elapsed time.Duration
	Frame   int
	Boxes   []image.Rectangle
}

// Timeline is an append-only series of samples for a fixed number of objects.
type Timeline struct {
	objects int
	samples []Sample
}

// NewTimeline creates a timeline for objects boxes per sample. A negative
// count is treated as zero.
func NewTimeline(objects int) *Timeline {
	if objects < 0 {
		objects = 0
	}
	return &Timeline{objects: objects}
}

// Append adds a sample. elapsed must be greater than the last sample's and
// boxes must hold exactly one rectangle per object.
func (t *Timeline) Append(elapsed time.Duration, frame int, boxes []image.Rectangle) error {
	if len(boxes) != t.objects {
		return fmt.Errorf("%w: got %d, want %d", ErrBoxCount, len(boxes), t.objects)
	}
	if elapsed < 0 {
		return fmt.Errorf("%w: negative timestamp %v", ErrNotMonotonic, elapsed)
	}
	if n := len(t.samples); n > 0 && elapsed <= t.samples[n-1].Elapsed {
		return fmt.Errorf("%w: %v after %v", ErrNotMonotonic, elapsed, t.samples[n-1].Elapsed)
	}
	b := make([]image.Rectangle, len(boxes))
	copy(b, boxes)
	t.samples = append(t.samples, Sample{Elapsed: elapsed, Frame: frame, Boxes: b})
	return nil
}

func (t *Timeline) Objects() int {
	return t.objects
}

func (t *Timeline) Len() int {
	return len(t.samples)
}

// Samples returns the recorded samples in order. The slice must not be modified.
func (t *Timeline) Samples() []Sample {
	return t.samples
}

// Duration is the timestamp of the last sample.
func (t *Timeline) Duration() time.Duration {
	if len(t.samples) == 0 {
		return 0
	}
	return t.samples[len(t.samples)-1].Elapsed
}

// TimedPoint is the center of an object's box at a timestamp.
type TimedPoint struct {
	Elapsed time.Duration
	Center  image.Point
	Size    image.Point
}

// Track returns the box centers of object obj over time.
func (t *Timeline) Track(obj int) []TimedPoint {
	if obj < 0 || obj >= t.objects {
		return nil
	}
	track := make([]TimedPoint, 0, len(t.samples))
	for _, s := range t.samples {
		r := s.Boxes[obj]
		track = append(track, TimedPoint{
			Elapsed: s.Elapsed,
			Center:  image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2),
			Size:    r.Size(),
		})
	}
	return track
}
