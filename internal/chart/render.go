package chart

import (
	"database/sql"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"hdidash/internal/indicators"
)

const (
	figureWidth  = 1300
	figureHeight = 700

	yTickMin  = 0.200
	yTickMax  = 1.000
	yTickStep = 0.080

	worldColor    = "black"
	worldWidth    = 2
	defaultWidth  = 1
	hoveredWidth  = 4
	solidDash     = "solid"
	hoverTemplate = "%{text}<extra></extra>"
)

// Render builds the chart for the records whose region is in selected.
// hovered, when it names a drawn entity, thickens that entity's line.
// Render is pure: equal inputs give structurally equal figures.
func Render(ds *indicators.Dataset, selected []string, hovered string) Figure {
	fig := Figure{Data: []Trace{}, Layout: baseLayout()}
	if ds == nil {
		return fig
	}
	var cur *Trace
	for _, r := range ds.Select(selected) {
		if cur == nil || cur.Name != r.Country {
			fig.Data = append(fig.Data, Trace{
				Type:          "scatter",
				Mode:          "lines",
				Name:          r.Country,
				LegendGroup:   r.Country,
				Line:          lineStyle(r.Country, r.Color, hovered),
				HoverTemplate: hoverTemplate,
			})
			cur = &fig.Data[len(fig.Data)-1]
		}
		cur.X = append(cur.X, r.Year)
		cur.Y = append(cur.Y, r.HDI)
		cur.CustomData = append(cur.CustomData, customData(r))
		cur.Text = append(cur.Text, HoverText(r))
	}
	return fig
}

// lineStyle applies, in order: the World override, the assigned color, then
// the hover width. The hover step never changes color or dash.
func lineStyle(country, color, hovered string) Line {
	l := Line{Color: color, Width: defaultWidth, Dash: solidDash}
	if country == indicators.WorldEntity {
		l = Line{Color: worldColor, Width: worldWidth, Dash: solidDash}
	}
	if hovered != "" && country == hovered {
		l.Width = hoveredWidth
	}
	return l
}

func customData(r indicators.Record) []any {
	return []any{
		r.Country,
		r.Year,
		r.HDI,
		r.HDIChange,
		nullable(r.LifeExpectancy),
		nullable(r.ExpectedSchooling),
		nullable(r.MeanSchooling),
		nullable(r.GNIPerCapita),
	}
}

func nullable(v sql.NullFloat64) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

// HoverText formats one point's tooltip.
func HoverText(r indicators.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b><br>", html.EscapeString(r.Country))
	fmt.Fprintf(&b, "%d HDI value: %.3f<br>", r.Year, r.HDI)
	fmt.Fprintf(&b, "HDI change from previous year: %s<br>", FormatChange(r.HDIChange))
	fmt.Fprintf(&b, "Life expectancy at birth: %s<br>", formatYears(r.LifeExpectancy))
	fmt.Fprintf(&b, "Expected years of schooling: %s<br>", formatYears(r.ExpectedSchooling))
	fmt.Fprintf(&b, "Mean years of schooling: %s<br>", formatYears(r.MeanSchooling))
	fmt.Fprintf(&b, "Gross National Income per capita: %s", formatIncome(r.GNIPerCapita))
	return b.String()
}

// FormatChange renders a fractional change as a signed percentage.
func FormatChange(v float64) string {
	return fmt.Sprintf("%+.2f%%", v*100)
}

func formatYears(v sql.NullFloat64) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.1f years", v.Float64)
}

func formatIncome(v sql.NullFloat64) string {
	if !v.Valid {
		return "n/a"
	}
	return humanize.Comma(int64(math.Round(v.Float64))) + " (constant 2017 PPP$)"
}

func baseLayout() Layout {
	vals, text := yTicks()
	return Layout{
		Width:  figureWidth,
		Height: figureHeight,
		XAxis: Axis{
			Title:    Title{Text: "Year"},
			TickMode: "linear",
			DTick:    2,
		},
		YAxis: Axis{
			Title:    Title{Text: "Human Development Index (HDI)"},
			TickVals: vals,
			TickText: text,
		},
		Legend:      Legend{Title: Title{Text: "country"}},
		Annotations: []Annotation{bandAnnotation()},
	}
}

// yTicks spans 0.200..1.000 in 0.080 steps, rounded to 3 decimals.
func yTicks() ([]float64, []string) {
	n := int(math.Round((yTickMax-yTickMin)/yTickStep)) + 1
	vals := make([]float64, 0, n)
	text := make([]string, 0, n)
	for i := 0; i < n; i++ {
		v := math.Round((yTickMin+float64(i)*yTickStep)*1000) / 1000
		vals = append(vals, v)
		text = append(text, strconv.FormatFloat(v, 'f', 3, 64))
	}
	return vals, text
}

// BandLegend is the banner text describing the HDI tiers.
func BandLegend() string {
	parts := make([]string, 0, len(indicators.Bands))
	for _, b := range indicators.Bands {
		parts = append(parts, fmt.Sprintf("<b>%s (%s)</b>", b.Name, b.Label))
	}
	return strings.Join(parts, " | ")
}

func bandAnnotation() Annotation {
	return Annotation{
		X:           1.0,
		Y:           1.05,
		XRef:        "paper",
		YRef:        "paper",
		Text:        BandLegend(),
		ShowArrow:   false,
		Align:       "center",
		BgColor:     "rgba(255,255,255,0.8)",
		BorderColor: "black",
		BorderWidth: 1,
		Font:        Font{Size: 10},
	}
}
