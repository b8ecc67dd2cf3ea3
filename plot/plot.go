// Package plot renders recorded object trajectories.
package plot

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/DaniruKun/multitracker/record"
)

var ErrEmpty = errors.New("plot: record has no samples")

func objectLabel(obj int) string {
	return fmt.Sprintf("object %d", obj)
}

// RenderPNG draws the path of every object's box center. The y axis grows
// downwards like image coordinates. The image format follows path's extension.
func RenderPNG(tl *record.Timeline, path, title string) error {
	if tl.Len() == 0 {
		return ErrEmpty
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (px)"
	p.Y.Label.Text = "y (px)"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())

	for obj := 0; obj < tl.Objects(); obj++ {
		track := tl.Track(obj)
		pts := make(plotter.XYs, 0, len(track))
		for _, tp := range track {
			pts = append(pts, plotter.XY{X: float64(tp.Center.X), Y: float64(tp.Center.Y)})
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("plot: object %d: %w", obj, err)
		}
		line.Color = plotutil.Color(obj)
		line.Width = vg.Points(1.5)
		p.Add(line)
		p.Legend.Add(objectLabel(obj), line)

		start, err := plotter.NewScatter(pts[:1])
		if err != nil {
			return err
		}
		start.Color = plotutil.Color(obj)
		start.Shape = plotutil.Shape(0)
		p.Add(start)
	}

	return p.Save(10*vg.Inch, 7*vg.Inch, path)
}

// RenderHTML writes an interactive scatter chart of box centers.
func RenderHTML(tl *record.Timeline, w io.Writer, title string) error {
	if tl.Len() == 0 {
		return ErrEmpty
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: title, Width: "1000px", Height: "700px"}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: fmt.Sprintf("objects=%d samples=%d", tl.Objects(), tl.Len())}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "x (px)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y (px)", NameLocation: "middle", NameGap: 30}),
	)

	for obj := 0; obj < tl.Objects(); obj++ {
		track := tl.Track(obj)
		data := make([]opts.ScatterData, 0, len(track))
		for _, tp := range track {
			data = append(data, opts.ScatterData{Value: []interface{}{tp.Center.X, tp.Center.Y, tp.Elapsed.Seconds()}})
		}
		scatter.AddSeries(objectLabel(obj), data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	}

	return scatter.Render(w)
}
