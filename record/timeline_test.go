package record

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineAppend(t *testing.T) {
	tl := NewTimeline(2)
	boxes := []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(20, 20, 30, 40)}

	require.NoError(t, tl.Append(0, 0, boxes))
	require.NoError(t, tl.Append(40*time.Millisecond, 1, boxes))

	err := tl.Append(40*time.Millisecond, 2, boxes)
	assert.ErrorIs(t, err, ErrNotMonotonic)

	err = tl.Append(80*time.Millisecond, 2, boxes[:1])
	assert.ErrorIs(t, err, ErrBoxCount)

	err = tl.Append(-time.Second, 0, boxes)
	assert.ErrorIs(t, err, ErrNotMonotonic)

	assert.Equal(t, 2, tl.Len())
	assert.Equal(t, 40*time.Millisecond, tl.Duration())
}

func TestTimelineAppendCopiesBoxes(t *testing.T) {
	tl := NewTimeline(1)
	boxes := []image.Rectangle{image.Rect(1, 2, 3, 4)}
	require.NoError(t, tl.Append(0, 0, boxes))

	boxes[0] = image.Rect(9, 9, 99, 99)
	assert.Equal(t, image.Rect(1, 2, 3, 4), tl.Samples()[0].Boxes[0])
}

func TestTimelineTrack(t *testing.T) {
	tl := NewTimeline(2)
	require.NoError(t, tl.Append(0, 0, []image.Rectangle{image.Rect(0, 0, 10, 20), image.Rect(100, 100, 110, 110)}))
	require.NoError(t, tl.Append(time.Second, 30, []image.Rectangle{image.Rect(10, 0, 20, 20), image.Rect(100, 100, 110, 110)}))

	track := tl.Track(0)
	require.Len(t, track, 2)
	assert.Equal(t, image.Pt(5, 10), track[0].Center)
	assert.Equal(t, image.Pt(15, 10), track[1].Center)
	assert.Equal(t, image.Pt(10, 20), track[1].Size)
	assert.Equal(t, time.Second, track[1].Elapsed)

	assert.Nil(t, tl.Track(2))
	assert.Nil(t, tl.Track(-1))
}

func TestSummarize(t *testing.T) {
	tl := NewTimeline(2)
	require.NoError(t, tl.Append(0, 0, []image.Rectangle{image.Rect(0, 0, 10, 10), image.Rect(50, 50, 60, 60)}))
	require.NoError(t, tl.Append(time.Second, 25, []image.Rectangle{image.Rect(30, 40, 40, 50), image.Rect(50, 50, 60, 60)}))
	require.NoError(t, tl.Append(2*time.Second, 50, []image.Rectangle{image.Rect(30, 40, 40, 50), image.Rect(50, 50, 60, 60)}))

	sums := Summarize(tl)
	require.Len(t, sums, 2)

	assert.Equal(t, 0, sums[0].Object)
	assert.Equal(t, 3, sums[0].Samples)
	assert.InDelta(t, 50.0, sums[0].PathLength, 1e-9)
	assert.InDelta(t, 25.0, sums[0].MeanSpeed, 1e-9)
	assert.InDelta(t, 50.0, sums[0].MaxSpeed, 1e-9)
	assert.InDelta(t, 10.0, sums[0].MeanWidth, 1e-9)

	assert.Zero(t, sums[1].PathLength)
	assert.Zero(t, sums[1].MeanSpeed)
}

func TestNewTimelineNegativeObjects(t *testing.T) {
	tl := NewTimeline(-1)
	assert.Equal(t, 0, tl.Objects())
	assert.Empty(t, Summarize(tl))
	assert.NoError(t, tl.Append(0, 0, nil))
}

func TestSummarizeEmpty(t *testing.T) {
	sums := Summarize(NewTimeline(1))
	require.Len(t, sums, 1)
	assert.Equal(t, ObjectSummary{Object: 0}, sums[0])
}
