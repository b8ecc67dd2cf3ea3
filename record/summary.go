package record

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ObjectSummary describes how far and how fast one object moved.
type ObjectSummary struct {
	Object     int
	Samples    int
	PathLength float64 // pixels travelled by the box center
	MeanSpeed  float64 // pixels per second
	MaxSpeed   float64
	MeanWidth  float64
	MeanHeight float64
}

func Summarize(tl *Timeline) []ObjectSummary {
	out := make([]ObjectSummary, tl.Objects())
	for obj := range out {
		track := tl.Track(obj)
		sum := ObjectSummary{Object: obj, Samples: len(track)}

		widths := make([]float64, len(track))
		heights := make([]float64, len(track))
		for i, p := range track {
			widths[i] = float64(p.Size.X)
			heights[i] = float64(p.Size.Y)
		}

		var dists, speeds []float64
		for i := 1; i < len(track); i++ {
			d := math.Hypot(float64(track[i].Center.X-track[i-1].Center.X), float64(track[i].Center.Y-track[i-1].Center.Y))
			dists = append(dists, d)
			if dt := (track[i].Elapsed - track[i-1].Elapsed).Seconds(); dt > 0 {
				speeds = append(speeds, d/dt)
			}
		}

		if len(track) > 0 {
			sum.MeanWidth = stat.Mean(widths, nil)
			sum.MeanHeight = stat.Mean(heights, nil)
		}
		if len(dists) > 0 {
			sum.PathLength = floats.Sum(dists)
		}
		if len(speeds) > 0 {
			sum.MeanSpeed = stat.Mean(speeds, nil)
			sum.MaxSpeed = floats.Max(speeds)
		}
		out[obj] = sum
	}
	return out
}
