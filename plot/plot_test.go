package plot

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaniruKun/multitracker/record"
)

func testTimeline(t *testing.T) *record.Timeline {
	t.Helper()
	tl := record.NewTimeline(2)
	for i := 0; i < 5; i++ {
		boxes := []image.Rectangle{
			image.Rect(10*i, 5*i, 10*i+20, 5*i+20),
			image.Rect(200-3*i, 100, 230-3*i, 140),
		}
		require.NoError(t, tl.Append(time.Duration(i)*40*time.Millisecond, i, boxes))
	}
	return tl
}

func TestRenderPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracks.png")
	require.NoError(t, RenderPNG(testTimeline(t), path, "tracks"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(testTimeline(t), &buf, "tracks"))

	out := buf.String()
	assert.Contains(t, out, "object 0")
	assert.Contains(t, out, "object 1")
}

func TestRenderEmpty(t *testing.T) {
	tl := record.NewTimeline(1)
	assert.ErrorIs(t, RenderPNG(tl, filepath.Join(t.TempDir(), "x.png"), ""), ErrEmpty)
	assert.ErrorIs(t, RenderHTML(tl, &bytes.Buffer{}, ""), ErrEmpty)
}
