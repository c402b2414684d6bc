package chart

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdidash/internal/indicators"
)

func loadSample(t *testing.T) *indicators.Dataset {
	t.Helper()
	ds, err := indicators.LoadDir(filepath.Join("..", "..", "testdata"))
	require.NoError(t, err)
	return ds
}

func traceNames(fig Figure) []string {
	names := make([]string, 0, len(fig.Data))
	for _, tr := range fig.Data {
		names = append(names, tr.Name)
	}
	return names
}

func findTrace(t *testing.T, fig Figure, name string) Trace {
	t.Helper()
	for _, tr := range fig.Data {
		if tr.Name == name {
			return tr
		}
	}
	t.Fatalf("trace %q not found in %v", name, traceNames(fig))
	return Trace{}
}

func TestRender_WorldScenario(t *testing.T) {
	ds, err := indicators.FromCleaned([]indicators.Record{
		{Country: "World", Year: 2010, Region: indicators.RegionWorld, HDI: 0.700},
		{Country: "World", Year: 2011, Region: indicators.RegionWorld, HDI: 0.714},
		{Country: "India", Year: 2010, Region: indicators.RegionSouthAsia, HDI: 0.580},
	}, indicators.Sources{})
	require.NoError(t, err)

	fig := Render(ds, []string{indicators.RegionWorld}, "")
	require.Len(t, fig.Data, 1)

	world := fig.Data[0]
	assert.Equal(t, "World", world.Name)
	assert.Equal(t, Line{Color: "black", Width: 2, Dash: "solid"}, world.Line)
	assert.Equal(t, []int{2010, 2011}, world.X)
	assert.Equal(t, []float64{0.700, 0.714}, world.Y)
	assert.Equal(t, 0.0, world.CustomData[0][3])
	assert.InDelta(t, 0.02, world.CustomData[1][3].(float64), 1e-9)
	assert.Contains(t, world.Text[1], "HDI change from previous year: +2.00%")
	assert.Contains(t, world.Text[0], "HDI change from previous year: +0.00%")

	color, ok := ds.Color("World")
	require.True(t, ok)
	assert.NotEqual(t, color, world.Line.Color)
}

func TestRender_AssignedColorAndHover(t *testing.T) {
	ds := loadSample(t)

	fig := Render(ds, []string{indicators.RegionDeveloped}, "Japan")
	assert.Equal(t, []string{"Japan", "Norway"}, traceNames(fig))

	japanColor, _ := ds.Color("Japan")
	norwayColor, _ := ds.Color("Norway")
	assert.Equal(t, Line{Color: japanColor, Width: 4, Dash: "solid"}, findTrace(t, fig, "Japan").Line)
	assert.Equal(t, Line{Color: norwayColor, Width: 1, Dash: "solid"}, findTrace(t, fig, "Norway").Line)
}

func TestRender_HoveredWorldKeepsBlack(t *testing.T) {
	ds := loadSample(t)
	fig := Render(ds, []string{indicators.RegionWorld}, "World")
	require.Len(t, fig.Data, 1)
	assert.Equal(t, Line{Color: "black", Width: 4, Dash: "solid"}, fig.Data[0].Line)
}

func TestRender_UnknownHoverIsNoop(t *testing.T) {
	ds := loadSample(t)
	selected := []string{indicators.RegionEastAsiaPacific}

	fig := Render(ds, selected, "Japan")
	assert.NotContains(t, traceNames(fig), "Japan")
	if diff := cmp.Diff(Render(ds, selected, ""), fig); diff != "" {
		t.Fatalf("hover on an absent entity changed the figure (-want +got):\n%s", diff)
	}

	fig = Render(ds, selected, "Atlantis")
	if diff := cmp.Diff(Render(ds, selected, ""), fig); diff != "" {
		t.Fatalf("hover on an unknown entity changed the figure (-want +got):\n%s", diff)
	}
}

func TestRender_EmptySelection(t *testing.T) {
	ds := loadSample(t)
	fig := Render(ds, nil, "World")
	assert.Empty(t, fig.Data)
	assert.Equal(t, 1300, fig.Layout.Width)

	b, err := json.Marshal(fig)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"data":[]`)
}

func TestRender_FilteringLaw(t *testing.T) {
	ds := loadSample(t)
	selections := [][]string{
		{indicators.RegionWorld},
		{indicators.RegionWorld, indicators.RegionEastAsiaPacific},
		{indicators.RegionDeveloped, indicators.RegionSouthAsia, indicators.RegionSubSaharan},
		indicators.Regions(),
		{"Nowhere"},
	}
	for _, sel := range selections {
		want := map[string]bool{}
		for _, r := range ds.Select(sel) {
			want[r.Country] = true
		}
		got := map[string]bool{}
		for _, name := range traceNames(Render(ds, sel, "")) {
			assert.False(t, got[name], "entity %s drawn twice", name)
			got[name] = true
		}
		assert.Equal(t, want, got, "selection %v", sel)
	}
}

func TestRender_TracesOrderedByName(t *testing.T) {
	ds := loadSample(t)
	names := traceNames(Render(ds, indicators.Regions(), ""))
	assert.True(t, sort.StringsAreSorted(names), "got %v", names)
	assert.Len(t, names, 7)
}

func TestRender_Idempotent(t *testing.T) {
	ds := loadSample(t)
	sel := []string{indicators.RegionWorld, indicators.RegionDeveloped}
	a := Render(ds, sel, "Norway")
	b := Render(ds, sel, "Norway")
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("render not idempotent (-first +second):\n%s", diff)
	}
}

func TestRender_Layout(t *testing.T) {
	fig := Render(nil, nil, "")
	layout := fig.Layout

	assert.Equal(t, 1300, layout.Width)
	assert.Equal(t, 700, layout.Height)
	assert.Equal(t, "linear", layout.XAxis.TickMode)
	assert.Equal(t, 2.0, layout.XAxis.DTick)
	assert.Equal(t, "Human Development Index (HDI)", layout.YAxis.Title.Text)
	assert.Equal(t, []string{
		"0.200", "0.280", "0.360", "0.440", "0.520", "0.600",
		"0.680", "0.760", "0.840", "0.920", "1.000",
	}, layout.YAxis.TickText)
	require.Len(t, layout.YAxis.TickVals, 11)
	assert.Equal(t, 0.28, layout.YAxis.TickVals[1])
	assert.Equal(t, 1.0, layout.YAxis.TickVals[10])

	require.Len(t, layout.Annotations, 1)
	assert.Equal(t,
		"<b>Low (< 0.550)</b> | <b>Medium (0.550-0.699)</b> | <b>High (0.700-0.799)</b> | <b>Very high (≥ 0.800)</b>",
		layout.Annotations[0].Text)
}

func TestHoverText(t *testing.T) {
	ds := loadSample(t)
	fig := Render(ds, []string{indicators.RegionWorld, indicators.RegionSubSaharan}, "")

	world := findTrace(t, fig, "World")
	assert.Equal(t, "<b>World</b><br>"+
		"2010 HDI value: 0.700<br>"+
		"HDI change from previous year: +0.00%<br>"+
		"Life expectancy at birth: 70.6 years<br>"+
		"Expected years of schooling: 12.1 years<br>"+
		"Mean years of schooling: 8.1 years<br>"+
		"Gross National Income per capita: 14,501 (constant 2017 PPP$)", world.Text[0])

	chad := findTrace(t, fig, "Chad")
	assert.Contains(t, chad.Text[1], "Gross National Income per capita: n/a")
	assert.Nil(t, chad.CustomData[1][7])
	assert.Equal(t, "%{text}<extra></extra>", chad.HoverTemplate)
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+2.00%", FormatChange(0.02))
	assert.Equal(t, "-1.25%", FormatChange(-0.0125))
	assert.Equal(t, "+0.00%", FormatChange(0))
}
