// Package palette samples fixed multi-stop color gradients.
package palette

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Turbo is the 15-stop Turbo sequential scale, dark blue to dark red.
var Turbo = []string{
	"#30123b", "#4145ab", "#4675ed", "#39a2fc", "#1bcfd4",
	"#24eca6", "#61fc6c", "#a4fc3b", "#d1e834", "#f3c63a",
	"#fe9b2d", "#f36315", "#d93806", "#b11901", "#7a0402",
}

// ReversedTurbo runs from dark red (position 0) to dark blue (position 1).
var ReversedTurbo = MustNew(Reverse(Turbo))

// Scale is a gradient with evenly spaced stops.
type Scale struct {
	stops []colorful.Color
}

// New parses hex stops into a Scale.
func New(hexes []string) (Scale, error) {
	if len(hexes) == 0 {
		return Scale{}, fmt.Errorf("palette: no stops")
	}
	stops := make([]colorful.Color, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorful.Hex(h)
		if err != nil {
			return Scale{}, fmt.Errorf("palette: stop %q: %w", h, err)
		}
		stops = append(stops, c)
	}
	return Scale{stops: stops}, nil
}

// MustNew is New for package-level scales.
func MustNew(hexes []string) Scale {
	s, err := New(hexes)
	if err != nil {
		panic(err)
	}
	return s
}

// Len reports the number of stops.
func (s Scale) Len() int { return len(s.stops) }

// At linearly interpolates between the two stops surrounding t.
// t is clamped to [0, 1]; NaN samples the first stop.
func (s Scale) At(t float64) colorful.Color {
	n := len(s.stops)
	if n == 0 {
		return colorful.Color{}
	}
	if n == 1 || math.IsNaN(t) || t <= 0 {
		return s.stops[0]
	}
	if t >= 1 {
		return s.stops[n-1]
	}
	pos := t * float64(n-1)
	i := int(math.Floor(pos))
	if i >= n-1 {
		return s.stops[n-1]
	}
	return s.stops[i].BlendRgb(s.stops[i+1], pos-float64(i)).Clamped()
}

// Hex samples the scale and formats the result as #rrggbb.
func (s Scale) Hex(t float64) string {
	return s.At(t).Hex()
}

// Reverse returns the stops in reverse order without touching the input.
func Reverse(stops []string) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[len(stops)-1-i] = s
	}
	return out
}

// Normalize maps v linearly from [lo, hi] onto [0, 1].
// A degenerate range maps everything to 0.
func Normalize(v, lo, hi float64) float64 {
	if !(hi > lo) {
		return 0
	}
	return (v - lo) / (hi - lo)
}
