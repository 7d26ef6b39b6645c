// Package chart describes line-chart artifacts independently of how they are rendered.
package chart

import (
	"sort"
	"time"
)

// Dash styles understood by renderers.
const (
	DashSolid  = ""
	DashDashed = "dashed"
	DashDotted = "dotted"
)

// Point is one (date, value) observation of a trace.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Trace is a named line series.
type Trace struct {
	Name   string  `json:"name"`
	Dash   string  `json:"dash,omitempty"`
	Points []Point `json:"points"`
}

// Figure is a titled line chart with labeled axes.
type Figure struct {
	Title      string  `json:"title"`
	XAxisTitle string  `json:"x_axis_title"`
	YAxisTitle string  `json:"y_axis_title"`
	Traces     []Trace `json:"traces"`
}

// Trace returns the trace with the given name.
func (f Figure) Trace(name string) (Trace, bool) {
	for _, tr := range f.Traces {
		if tr.Name == name {
			return tr, true
		}
	}
	return Trace{}, false
}

// Dates returns the sorted union of dates across all traces.
func (f Figure) Dates() []time.Time {
	seen := make(map[time.Time]struct{})
	var out []time.Time
	for _, tr := range f.Traces {
		for _, p := range tr.Points {
			d := p.Date.UTC()
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
