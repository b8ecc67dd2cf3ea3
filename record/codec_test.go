package record

import (
	"bytes"
	"image"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTimeline(t *testing.T) *Timeline {
	t.Helper()
	tl := NewTimeline(2)
	require.NoError(t, tl.Append(0, 0, []image.Rectangle{image.Rect(10, 20, 40, 80), image.Rect(100, 50, 150, 90)}))
	require.NoError(t, tl.Append(33367*time.Microsecond, 1, []image.Rectangle{image.Rect(12, 21, 42, 81), image.Rect(99, 50, 149, 90)}))
	require.NoError(t, tl.Append(66733*time.Microsecond, 2, []image.Rectangle{image.Rect(14, 22, 44, 82), image.Rect(98, 51, 148, 91)}))
	return tl
}

func TestEncodeText(t *testing.T) {
	tl := NewTimeline(1)
	require.NoError(t, tl.Append(1500*time.Millisecond, 45, []image.Rectangle{image.Rect(1, 2, 4, 6)}))

	var buf bytes.Buffer
	require.NoError(t, EncodeText(&buf, tl))

	want := "# multitracker record v1 objects=1\n1.500000\t45\t1,2,3,4\n"
	assert.Equal(t, want, buf.String())
}

func TestDecodeText(t *testing.T) {
	in := strings.Join([]string{
		"# multitracker record v1 objects=2",
		"",
		"# comment",
		"0.000000\t0\t1,1,5,5;10,10,2,2",
		"0.040000\t1\t2,1,5,5;11,10,2,2",
	}, "\n")

	tl, err := DecodeText(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 2, tl.Objects())
	require.Equal(t, 2, tl.Len())
	assert.Equal(t, 40*time.Millisecond, tl.Samples()[1].Elapsed)
	assert.Equal(t, image.Rect(11, 10, 13, 12), tl.Samples()[1].Boxes[1])
}

func TestDecodeTextErrors(t *testing.T) {
	var tests = []struct {
		name string
		in   string
		err  error
	}{
		{"no header", "0.0\t0\t1,1,1,1\n", ErrMalformed},
		{"bad count", "# multitracker record v1 objects=x\n", ErrMalformed},
		{"short box", "# multitracker record v1 objects=1\n0.0\t0\t1,1,1\n", ErrMalformed},
		{"fields", "# multitracker record v1 objects=1\n0.0\t1,1,1,1\n", ErrMalformed},
		{"box count", "# multitracker record v1 objects=2\n0.0\t0\t1,1,1,1\n", ErrBoxCount},
		{"second header", "# multitracker record v1 objects=1\n0.0\t0\t1,1,1,1\n0.5\t1\t1,1,1,1\n# multitracker record v1 objects=1\n1.0\t2\t1,1,1,1\n", ErrMalformed},
		{"negative count", "# multitracker record v1 objects=-2\n", ErrMalformed},
		{"order", "# multitracker record v1 objects=1\n1.0\t1\t1,1,1,1\n0.5\t2\t1,1,1,1\n", ErrNotMonotonic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeText(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTextRoundTrip(t *testing.T) {
	tl := sampleTimeline(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeText(&buf, tl))
	got, err := DecodeText(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(tl.Samples(), got.Samples()); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	tl := sampleTimeline(t)

	var buf bytes.Buffer
	require.NoError(t, EncodeYAML(&buf, tl))
	assert.Contains(t, buf.String(), "boxes: [[10, 20, 30, 60], [100, 50, 50, 40]]")

	got, err := DecodeYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Objects())
	if diff := cmp.Diff(tl.Samples(), got.Samples()); diff != "" {
		t.Errorf("samples mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeYAMLErrors(t *testing.T) {
	var tests = []struct {
		name string
		in   string
		err  error
	}{
		{"version", "version: 2\nobjects: 1\n", ErrMalformed},
		{"negative objects", "version: 1\nobjects: -1\n", ErrMalformed},
		{"box count", "version: 1\nobjects: 2\nsamples:\n  - t: 0\n    frame: 0\n    boxes: [[1, 1, 1, 1]]\n", ErrBoxCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tl, err := DecodeYAML(strings.NewReader(tt.in))
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, tl)
		})
	}
}

func TestSaveLoad(t *testing.T) {
	tl := sampleTimeline(t)
	dir := t.TempDir()

	for _, name := range []string{"run.txt", "run.yaml", "run.YML", "run"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, tl))

			got, err := Load(path)
			require.NoError(t, err)
			if diff := cmp.Diff(tl.Samples(), got.Samples()); diff != "" {
				t.Errorf("samples mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
