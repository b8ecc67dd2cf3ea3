package record

import (
	"fmt"
	"image"
	"io"

	"gopkg.in/yaml.v3"
)

type yamlRecord struct {
	Version int          `yaml:"version"`
	Objects int          `yaml:"objects"`
	Samples []yamlSample `yaml:"samples"`
}

type yamlSample struct {
	Elapsed float64  `yaml:"t"`
	Frame   int      `yaml:"frame"`
	Boxes   [][4]int `yaml:"boxes,flow"`
}

func EncodeYAML(w io.Writer, tl *Timeline) error {
	doc := yamlRecord{Version: 1, Objects: tl.Objects(), Samples: make([]yamlSample, 0, tl.Len())}
	for _, s := range tl.Samples() {
		ys := yamlSample{Elapsed: s.Elapsed.Seconds(), Frame: s.Frame, Boxes: make([][4]int, len(s.Boxes))}
		for i, r := range s.Boxes {
			ys.Boxes[i] = [4]int{r.Min.X, r.Min.Y, r.Dx(), r.Dy()}
		}
		doc.Samples = append(doc.Samples, ys)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

func DecodeYAML(r io.Reader) (*Timeline, error) {
	var doc yamlRecord
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("record: decode yaml: %w", err)
	}
	if doc.Version != 1 {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrMalformed, doc.Version)
	}
	if doc.Objects < 0 {
		return nil, fmt.Errorf("%w: negative object count %d", ErrMalformed, doc.Objects)
	}
	tl := NewTimeline(doc.Objects)
	for i, ys := range doc.Samples {
		boxes := make([]image.Rectangle, len(ys.Boxes))
		for j, b := range ys.Boxes {
			boxes[j] = image.Rect(b[0], b[1], b[0]+b[2], b[1]+b[3])
		}
		if err := tl.Append(secondsToDuration(ys.Elapsed), ys.Frame, boxes); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
	}
	return tl, nil
}
