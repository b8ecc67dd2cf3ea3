package imgproc

import (
	"errors"
	"fmt"
	"time"

	"gocv.io/x/gocv"
)

var ErrUnreadableVideo = errors.New("failed to read video")

type VideoInfo struct {
	Width      int
	Height     int
	FPS        float64
	FrameCount int
}

// FrameTime is the media timestamp of the frame with the given index.
func (v VideoInfo) FrameTime(frame int) time.Duration {
	return time.Duration(float64(frame) / v.FPS * float64(time.Second))
}

// Source is an opened video whose first frame has already been read.
type Source struct {
	Path  string
	Info  VideoInfo
	First gocv.Mat

	capture *gocv.VideoCapture
}

// OpenSource opens the video at path and reads its first frame.
func OpenSource(path string) (*Source, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableVideo, path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("%w: %s: cannot open video capture", ErrUnreadableVideo, path)
	}

	first := gocv.NewMat()
	if ok := capture.Read(&first); !ok || first.Empty() {
		first.Close()
		capture.Close()
		return nil, fmt.Errorf("%w: %s: no first frame", ErrUnreadableVideo, path)
	}

	info := VideoInfo{
		Width:      first.Cols(),
		Height:     first.Rows(),
		FPS:        capture.Get(gocv.VideoCaptureFPS),
		FrameCount: int(capture.Get(gocv.VideoCaptureFrameCount)),
	}
	if info.FPS <= 0 {
		info.FPS = DefaultFPS
	}

	return &Source{Path: path, Info: info, First: first, capture: capture}, nil
}

// Read decodes the next frame into m.
func (s *Source) Read(m *gocv.Mat) bool {
	return s.capture.Read(m)
}

func (s *Source) Close() error {
	return errors.Join(s.First.Close(), s.capture.Close())
}

// Sink writes annotated frames with the source's size and frame rate.
type Sink struct {
	Path  string
	Codec string
	FPS   float64

	writer *gocv.VideoWriter
}

func NewSink(path, codec string, info VideoInfo) (*Sink, error) {
	writer, err := gocv.VideoWriterFile(path, codec, info.FPS, info.Width, info.Height, true)
	if err != nil {
		return nil, fmt.Errorf("open video writer %s: %w", path, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("open video writer %s: codec %s not available", path, codec)
	}
	return &Sink{Path: path, Codec: codec, FPS: info.FPS, writer: writer}, nil
}

func (s *Sink) Write(frame gocv.Mat) error {
	return s.writer.Write(frame)
}

func (s *Sink) Close() error {
	return s.writer.Close()
}
