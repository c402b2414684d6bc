package palette

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReversedTurboEndpoints(t *testing.T) {
	assert.Equal(t, 15, ReversedTurbo.Len())
	assert.Equal(t, "#7a0402", ReversedTurbo.Hex(0))
	assert.Equal(t, "#30123b", ReversedTurbo.Hex(1))
}

func TestAtClampsOutOfRange(t *testing.T) {
	assert.Equal(t, ReversedTurbo.Hex(0), ReversedTurbo.Hex(-3))
	assert.Equal(t, ReversedTurbo.Hex(1), ReversedTurbo.Hex(7))
	assert.Equal(t, ReversedTurbo.Hex(0), ReversedTurbo.Hex(math.NaN()))
}

func TestAtHitsStopsExactly(t *testing.T) {
	s, err := New([]string{"#000000", "#ffffff", "#ff0000"})
	require.NoError(t, err)

	assert.Equal(t, "#ffffff", s.Hex(0.5))
	assert.Equal(t, "#808080", s.Hex(0.25))
	assert.Equal(t, "#ff8080", s.Hex(0.75))
}

func TestNewRejectsBadStops(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New([]string{"#000000", "not-a-color"})
	require.Error(t, err)
}

func TestReverseLeavesInputAlone(t *testing.T) {
	in := []string{"a", "b", "c"}
	out := Reverse(in)
	assert.Equal(t, []string{"c", "b", "a"}, out)
	assert.Equal(t, []string{"a", "b", "c"}, in)
}

func TestNormalize(t *testing.T) {
	assert.InDelta(t, 0.5, Normalize(0.6, 0.4, 0.8), 1e-12)
	assert.Equal(t, 0.0, Normalize(0.6, 0.6, 0.6))
	assert.Equal(t, 0.0, Normalize(0.6, 0.8, 0.4))
}
