// Package chart turns the cleaned HDI dataset into a line-chart description
// that Plotly.js can draw directly.
package chart

// Figure is a Plotly figure: one trace per entity plus a fixed layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one entity's line.
type Trace struct {
	Type          string    `json:"type"`
	Mode          string    `json:"mode"`
	Name          string    `json:"name"`
	LegendGroup   string    `json:"legendgroup"`
	X             []int     `json:"x"`
	Y             []float64 `json:"y"`
	Line          Line      `json:"line"`
	CustomData    [][]any   `json:"customdata"`
	Text          []string  `json:"text"`
	HoverTemplate string    `json:"hovertemplate"`
}

// Line is the stroke style of a trace.
type Line struct {
	Color string `json:"color"`
	Width int    `json:"width"`
	Dash  string `json:"dash"`
}

type Layout struct {
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	XAxis       Axis         `json:"xaxis"`
	YAxis       Axis         `json:"yaxis"`
	Legend      Legend       `json:"legend"`
	Annotations []Annotation `json:"annotations"`
}

type Axis struct {
	Title    Title     `json:"title"`
	TickMode string    `json:"tickmode,omitempty"`
	DTick    float64   `json:"dtick,omitempty"`
	TickVals []float64 `json:"tickvals,omitempty"`
	TickText []string  `json:"ticktext,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type Legend struct {
	Title Title `json:"title"`
}

type Annotation struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	XRef        string  `json:"xref"`
	YRef        string  `json:"yref"`
	Text        string  `json:"text"`
	ShowArrow   bool    `json:"showarrow"`
	Align       string  `json:"align"`
	BgColor     string  `json:"bgcolor"`
	BorderColor string  `json:"bordercolor"`
	BorderWidth int     `json:"borderwidth"`
	Font        Font    `json:"font"`
}

type Font struct {
	Size int `json:"size"`
}

// HoverData is the interaction payload Plotly reports for the point under
// the pointer. Only the first point's customdata is consulted.
type HoverData struct {
	Points []HoverPoint `json:"points"`
}

type HoverPoint struct {
	CustomData []any `json:"customdata"`
}
