package imgproc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSourceUnreadable(t *testing.T) {
	dir := t.TempDir()
	notVideo := filepath.Join(dir, "notes.mp4")
	require.NoError(t, os.WriteFile(notVideo, []byte("this is not a video"), 0o644))

	var tests = []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "missing.mp4")},
		{"not a video", notVideo},
		{"empty path", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := OpenSource(tt.path)
			assert.ErrorIs(t, err, ErrUnreadableVideo)
			assert.Nil(t, src)
		})
	}
}

func TestNewSinkBadPath(t *testing.T) {
	info := VideoInfo{Width: 64, Height: 48, FPS: 25}
	sink, err := NewSink(filepath.Join(t.TempDir(), "no", "such", "dir", "out.mp4"), DefaultCodec, info)
	assert.Error(t, err)
	assert.Nil(t, sink)
}
