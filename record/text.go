package record

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

const textHeader = "# multitracker record v1 objects="

var ErrMalformed = errors.New("record: malformed text record")

// EncodeText writes tl as a header line followed by one tab separated line
// per sample: seconds, frame, then x,y,w,h boxes joined by ';'.
func EncodeText(w io.Writer, tl *Timeline) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s%d\n", textHeader, tl.Objects())
	for _, s := range tl.Samples() {
		boxes := make([]string, len(s.Boxes))
		for i, r := range s.Boxes {
			boxes[i] = fmt.Sprintf("%d,%d,%d,%d", r.Min.X, r.Min.Y, r.Dx(), r.Dy())
		}
		fmt.Fprintf(bw, "%.6f\t%d\t%s\n", s.Elapsed.Seconds(), s.Frame, strings.Join(boxes, ";"))
	}
	return bw.Flush()
}

// DecodeText parses the format written by EncodeText.
func DecodeText(r io.Reader) (*Timeline, error) {
	var tl *Timeline
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		if strings.HasPrefix(text, textHeader) {
			if tl != nil {
				return nil, fmt.Errorf("%w: line %d: duplicate header", ErrMalformed, line)
			}
			n, err := strconv.Atoi(strings.TrimPrefix(text, textHeader))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("%w: line %d: bad object count", ErrMalformed, line)
			}
			tl = NewTimeline(n)
			continue
		}
		if strings.HasPrefix(text, "#") {
			continue
		}
		if tl == nil {
			return nil, fmt.Errorf("%w: missing header", ErrMalformed)
		}
		elapsed, frame, boxes, err := parseTextLine(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		if err := tl.Append(elapsed, frame, boxes); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if tl == nil {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	return tl, nil
}

func parseTextLine(text string) (time.Duration, int, []image.Rectangle, error) {
	fields := strings.Split(text, "\t")
	if len(fields) != 3 {
		return 0, 0, nil, fmt.Errorf("want 3 fields, got %d", len(fields))
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, nil, err
	}
	frame, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, nil, err
	}
	var boxes []image.Rectangle
	if fields[2] != "" {
		for _, b := range strings.Split(fields[2], ";") {
			r, err := parseBox(b)
			if err != nil {
				return 0, 0, nil, err
			}
			boxes = append(boxes, r)
		}
	}
	return secondsToDuration(secs), frame, boxes, nil
}

func parseBox(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("box %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("box %q: %v", s, err)
		}
		v[i] = n
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// secondsToDuration rounds to the microsecond precision the record is written with.
func secondsToDuration(secs float64) time.Duration {
	return time.Duration(math.Round(secs*1e6)) * time.Microsecond
}
