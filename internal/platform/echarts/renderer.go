// Package echarts renders chart.Figure values as standalone go-echarts HTML pages.
package echarts

import (
	"bytes"
	"io"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"stock_dashboard/internal/shared/chart"
)

const dateLayout = "2006-01-02"

// missing is the echarts placeholder for an absent point; the line shows a gap there.
const missing = "-"

// Renderer draws line charts.
type Renderer struct {
	Width  string
	Height string
}

// NewRenderer returns a renderer with the dashboard's default size.
func NewRenderer() *Renderer {
	return &Renderer{Width: "100%", Height: "450px"}
}

// Render writes f as an HTML document to w.
// The x axis is the union of all trace dates.
func (r *Renderer) Render(w io.Writer, f chart.Figure) error {
	dates := f.Dates()
	labels := make([]string, len(dates))
	index := make(map[time.Time]int, len(dates))
	for i, d := range dates {
		labels[i] = d.Format(dateLayout)
		index[d] = i
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: f.Title,
			Width:     r.Width,
			Height:    r.Height,
		}),
		charts.WithTitleOpts(opts.Title{Title: f.Title}),
		charts.WithXAxisOpts(opts.XAxis{Name: f.XAxisTitle}),
		charts.WithYAxisOpts(opts.YAxis{Name: f.YAxisTitle}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Top: "bottom"}),
	)
	line.SetXAxis(labels)

	for _, tr := range f.Traces {
		data := make([]opts.LineData, len(dates))
		for i := range data {
			data[i] = opts.LineData{Value: missing}
		}
		for _, p := range tr.Points {
			data[index[p.Date.UTC()]] = opts.LineData{Value: p.Value}
		}
		var seriesOpts []charts.SeriesOpts
		if tr.Dash != chart.DashSolid {
			seriesOpts = append(seriesOpts, charts.WithLineStyleOpts(opts.LineStyle{Type: tr.Dash}))
		}
		line.AddSeries(tr.Name, data, seriesOpts...)
	}

	return line.Render(w)
}

// RenderString is Render into a string.
func (r *Renderer) RenderString(f chart.Figure) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, f); err != nil {
		return "", err
	}
	return buf.String(), nil
}
