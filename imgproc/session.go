package imgproc

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/DaniruKun/multitracker/logger"
	"github.com/DaniruKun/multitracker/record"
	"github.com/DaniruKun/multitracker/tracking"
)

const WindowName = "MultiTracker"

// FrameReader yields decoded frames, e.g. a *Source.
type FrameReader interface {
	Read(m *gocv.Mat) bool
}

// FrameWriter consumes annotated frames, e.g. a *Sink.
type FrameWriter interface {
	Write(frame gocv.Mat) error
}

// Updater estimates the current box of every object, e.g. a *tracking.MultiTracker.
type Updater interface {
	Update(frame gocv.Mat) ([]image.Rectangle, bool)
}

// Display shows a frame and returns the key pressed meanwhile, or -1.
type Display interface {
	Show(frame gocv.Mat) int
}

// Tracker loop state for one video.
type Session struct {
	Info      VideoInfo
	Trackers  Updater
	Colors    []color.RGBA
	Thickness int
	Timeline  *record.Timeline
	Display   Display // nil runs without a preview
}

// Stats summarizes a finished Track call.
type Stats struct {
	Frames   int  // frames read after the first one
	Lost     int  // frames where at least one tracker lost its target
	Canceled bool // stopped by ESC or context cancellation
	Elapsed  time.Duration
}

// Track reads frames from in until the stream ends, ESC is pressed in the
// display or ctx is done. Each frame is updated, annotated, written to out
// and recorded in the session timeline. Frame numbering continues from 1
// since frame 0 was used for selection.
func (s *Session) Track(ctx context.Context, in FrameReader, out FrameWriter) (stats Stats, err error) {
	log := logger.Log()
	start := time.Now()
	defer func() { stats.Elapsed = time.Since(start) }()

	frame := gocv.NewMat()
	defer frame.Close()

	for idx := 1; ; idx++ {
		if ctx.Err() != nil {
			stats.Canceled = true
			break
		}

		if ok := in.Read(&frame); !ok {
			break
		}
		if frame.Empty() {
			continue
		}
		stats.Frames++

		boxes, ok := s.Trackers.Update(frame)
		if !ok {
			stats.Lost++
			log.Debug("tracking failure", zap.Int("frame", idx))
		}

		DrawBoxes(&frame, boxes, s.Colors, s.Thickness)

		if err := out.Write(frame); err != nil {
			return stats, fmt.Errorf("write frame %d: %w", idx, err)
		}
		if err := s.Timeline.Append(s.Info.FrameTime(idx), idx, boxes); err != nil {
			return stats, fmt.Errorf("record frame %d: %w", idx, err)
		}

		if s.Display != nil {
			if k := s.Display.Show(frame); k >= 0 && k&0xFF == KeyEsc {
				log.Info("Stopped by user")
				stats.Canceled = true
				break
			}
		}
	}

	return stats, nil
}

// Result is what a tracking run produced.
type Result struct {
	Info     VideoInfo
	Boxes    []image.Rectangle
	Colors   []color.RGBA
	Timeline *record.Timeline
	Stats    Stats
}

// RunTrackingFromFile runs a full session on config.VideoPath: the user
// selects boxes on the first frame, then the boxes are tracked until the
// end of the video and the annotated frames are written to config.OutputPath.
func RunTrackingFromFile(ctx context.Context, config Config) (*Result, error) {
	log := logger.Log()

	trackerType, err := tracking.ParseType(config.Tracker)
	if err != nil {
		return nil, err
	}

	src, err := OpenSource(config.VideoPath)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	log.Info("Opened video",
		zap.String("file", src.Path),
		zap.Int("width", src.Info.Width),
		zap.Int("height", src.Info.Height),
		zap.Float64("input_fps", src.Info.FPS),
		zap.Int("frames", src.Info.FrameCount))

	ui := newWindowUI(WindowName)
	uiClosed := false
	closeUI := func() {
		if !uiClosed {
			uiClosed = true
			ui.Close()
		}
	}
	defer closeUI()

	boxes, err := SelectBoxes(ui, src.First)
	if err != nil {
		return nil, err
	}

	ctx, stop, err := interruptContext(ctx)
	if err != nil {
		return nil, err
	}
	defer stop()

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	colors := Palette(len(boxes), seed)

	if config.SnapshotPath != "" {
		annotated := src.First.Clone()
		DrawBoxes(&annotated, boxes, colors, config.Thickness)
		err := WriteSnapshot(config.SnapshotPath, annotated, config.SnapshotWidth)
		annotated.Close()
		if err != nil {
			log.Warn("writing snapshot", zap.String("file", config.SnapshotPath), zap.Error(err))
		} else {
			log.Info("Wrote snapshot", zap.String("file", config.SnapshotPath))
		}
	}

	mt, err := newMultiTracker(trackerType, src.First, boxes)
	if err != nil {
		return nil, err
	}
	defer mt.Close()
	log.Info("Initialized trackers", zap.Stringer("tracker", trackerType), zap.Int("objects", mt.Len()))

	sink, err := NewSink(config.OutputPath, config.Codec, src.Info)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			log.Warn("closing output video", zap.Error(cerr))
		}
	}()

	tl := record.NewTimeline(len(boxes))
	if err := tl.Append(0, 0, boxes); err != nil {
		return nil, err
	}

	session := &Session{
		Info:      src.Info,
		Trackers:  mt,
		Colors:    colors,
		Thickness: config.Thickness,
		Timeline:  tl,
	}
	if config.ShowGUI {
		session.Display = ui
	} else {
		closeUI()
	}

	stats, err := session.Track(ctx, src, sink)
	if err != nil {
		return nil, err
	}

	log.Info("Tracking finished",
		zap.Int("frames", stats.Frames),
		zap.Int("lost_frames", stats.Lost),
		zap.Bool("canceled", stats.Canceled),
		zap.Duration("wall_time", stats.Elapsed),
		zap.Float64("output_fps", sink.FPS),
		zap.String("output", sink.Path))

	return &Result{Info: src.Info, Boxes: boxes, Colors: colors, Timeline: tl, Stats: stats}, nil
}

// interruptContext traps Ctrl-C for the tracking loop. It is installed only
// after selection so that Ctrl-C in the selection window still ends the
// process. A parent that is already done is reported as an error.
func interruptContext(parent context.Context) (context.Context, context.CancelFunc, error) {
	if err := parent.Err(); err != nil {
		return nil, nil, err
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	return ctx, stop, nil
}

func newMultiTracker(t tracking.Type, frame gocv.Mat, boxes []image.Rectangle) (*tracking.MultiTracker, error) {
	mt := tracking.NewMultiTracker()
	for _, box := range boxes {
		trk, err := tracking.New(t)
		if err != nil {
			mt.Close()
			return nil, err
		}
		if err := mt.Add(trk, frame, box); err != nil {
			trk.Close()
			mt.Close()
			return nil, err
		}
	}
	if mt.Len() == 0 {
		return nil, errors.New("no trackers initialized")
	}
	return mt, nil
}
