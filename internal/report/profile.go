// Package report renders a Markdown profile of a cleaned dataset.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"hdidash/internal/indicators"
)

const topN = 5

// Profile describes row counts per cleaning step, entities per region and
// tier, and the entities with the lowest and highest mean HDI.
func Profile(ds *indicators.Dataset) string {
	stats := ds.Stats()
	lines := []string{
		"# HDI composite indices cleaning report",
		"",
		"## Dataset shape",
		fmt.Sprintf("- Source rows read: %s", humanize.Comma(int64(stats.RawRows))),
		fmt.Sprintf("- Rows in the Total gender slice: %s", humanize.Comma(int64(stats.TotalRows))),
		fmt.Sprintf("- Rows dropped for missing HDI: %s", humanize.Comma(int64(stats.Dropped()))),
		fmt.Sprintf("- Clean rows written: %s", humanize.Comma(int64(stats.CleanRows))),
		fmt.Sprintf("- Entities: %s", humanize.Comma(int64(stats.Entities))),
	}
	if first, last, ok := ds.YearRange(); ok {
		lines = append(lines, fmt.Sprintf("- Years: %d-%d", first, last))
	}
	if n := len(ds.Sources().Codebook.Rows); n > 0 {
		lines = append(lines, fmt.Sprintf("- Codebook fields documented: %d", n))
	}
	lines = append(lines, "")

	lines = append(lines, "## Entities per region")
	counts := ds.RegionCounts()
	for _, region := range regionOrder(counts) {
		lines = append(lines, fmt.Sprintf("- %s: %d", region, counts[region]))
	}
	lines = append(lines, "")

	order := ds.EntitiesByMean()
	lines = append(lines, "## Entities per HDI tier (by mean)")
	tiers := map[string]int{}
	for _, e := range order {
		m, _ := ds.MeanHDI(e)
		tiers[indicators.BandOf(m).Name]++
	}
	for _, b := range indicators.Bands {
		lines = append(lines, fmt.Sprintf("- %s (%s): %d", b.Name, b.Label, tiers[b.Name]))
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("## Lowest mean HDI (top %d)", topN))
	for i := 0; i < len(order) && i < topN; i++ {
		lines = append(lines, entityLine(ds, order[i]))
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("## Highest mean HDI (top %d)", topN))
	for i := len(order) - 1; i >= 0 && i >= len(order)-topN; i-- {
		lines = append(lines, entityLine(ds, order[i]))
	}
	lines = append(lines, "")

	if c := ds.Sources().Citation; c != "" {
		lines = append(lines, "## Citation", c, "")
	}
	return strings.Join(lines, "\n")
}

func entityLine(ds *indicators.Dataset, entity string) string {
	m, _ := ds.MeanHDI(entity)
	color, _ := ds.Color(entity)
	return fmt.Sprintf("- `%s` mean=%.3f color=%s", entity, m, color)
}

// regionOrder lists the known regions first, in checklist order, then any
// passthrough codes alphabetically.
func regionOrder(counts map[string]int) []string {
	var out []string
	known := map[string]bool{}
	for _, r := range indicators.Regions() {
		known[r] = true
		if counts[r] > 0 {
			out = append(out, r)
		}
	}
	var extra []string
	for r := range counts {
		if !known[r] {
			extra = append(extra, r)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
