package indicators

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"

	"hdidash/internal/palette"
)

// Dataset is the cleaned, immutable table plus the per-entity color and
// ordering derived from it. Accessors hand out copies.
type Dataset struct {
	// records are sorted by (country, year); order by ascending mean HDI.
	records []Record
	colors  map[string]string
	order   []string
	means   map[string]float64
	sources Sources
	stats   Stats
}

var errInvalidRecord = errors.New("invalid record")

func validate(records []Record) error {
	for i, r := range records {
		switch {
		case r.Country == "":
			return fmt.Errorf("%w %d: empty country", errInvalidRecord, i)
		case r.Region == "":
			return fmt.Errorf("%w %d (%s %d): empty region", errInvalidRecord, i, r.Country, r.Year)
		case math.IsNaN(r.HDI) || math.IsInf(r.HDI, 0):
			return fmt.Errorf("%w %d (%s %d): non-finite HDI", errInvalidRecord, i, r.Country, r.Year)
		}
	}
	return nil
}

// meanHDI returns entities ordered by ascending mean HDI (ties by name)
// and the mean per entity.
func meanHDI(records []Record) ([]string, map[string]float64) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		sums[r.Country] += r.HDI
		counts[r.Country]++
	}
	means := make(map[string]float64, len(sums))
	order := make([]string, 0, len(sums))
	for country, sum := range sums {
		means[country] = sum / float64(counts[country])
		order = append(order, country)
	}
	sort.Slice(order, func(i, j int) bool {
		mi, mj := means[order[i]], means[order[j]]
		if mi != mj {
			return mi < mj
		}
		return order[i] < order[j]
	})
	return order, means
}

func assignColors(order []string, means map[string]float64) map[string]string {
	colors := make(map[string]string, len(order))
	if len(order) == 0 {
		return colors
	}
	lo, hi := means[order[0]], means[order[len(order)-1]]
	for _, country := range order {
		colors[country] = palette.ReversedTurbo.Hex(palette.Normalize(means[country], lo, hi))
	}
	return colors
}

// Len is the number of cleaned records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of all records sorted by (country, year).
func (d *Dataset) Records() []Record { return slices.Clone(d.records) }

// Select returns the records whose region is in regions, keeping the
// (country, year) order. An empty selection yields no records.
func (d *Dataset) Select(regions []string) []Record {
	if len(regions) == 0 {
		return nil
	}
	want := make(map[string]struct{}, len(regions))
	for _, r := range regions {
		want[r] = struct{}{}
	}
	var out []Record
	for _, r := range d.records {
		if _, ok := want[r.Region]; ok {
			out = append(out, r)
		}
	}
	return out
}

// Color returns the assigned color of an entity.
func (d *Dataset) Color(country string) (string, bool) {
	c, ok := d.colors[country]
	return c, ok
}

// Colors returns a copy of the entity to color mapping.
func (d *Dataset) Colors() map[string]string { return maps.Clone(d.colors) }

// MeanHDI returns the mean HDI of an entity across its years.
func (d *Dataset) MeanHDI(country string) (float64, bool) {
	m, ok := d.means[country]
	return m, ok
}

// EntitiesByMean lists entities by ascending mean HDI.
func (d *Dataset) EntitiesByMean() []string { return slices.Clone(d.order) }

// Sources returns the metadata files loaded next to the dataset.
func (d *Dataset) Sources() Sources { return d.sources }

// Stats reports row counts per cleaning step.
func (d *Dataset) Stats() Stats { return d.stats }

// RegionCounts returns the number of distinct entities per region.
func (d *Dataset) RegionCounts() map[string]int {
	seen := make(map[string]map[string]struct{})
	for _, r := range d.records {
		if seen[r.Region] == nil {
			seen[r.Region] = make(map[string]struct{})
		}
		seen[r.Region][r.Country] = struct{}{}
	}
	out := make(map[string]int, len(seen))
	for region, entities := range seen {
		out[region] = len(entities)
	}
	return out
}

// YearRange returns the first and last year on record.
func (d *Dataset) YearRange() (first, last int, ok bool) {
	if len(d.records) == 0 {
		return 0, 0, false
	}
	first, last = d.records[0].Year, d.records[0].Year
	for _, r := range d.records[1:] {
		first = min(first, r.Year)
		last = max(last, r.Year)
	}
	return first, last, true
}

// withSources returns a shallow copy carrying metadata.
func (d *Dataset) withSources(s Sources) *Dataset {
	cp := *d
	cp.sources = s
	return &cp
}
