package indicators

import (
	"math"
	"sort"
)

// Stats counts rows surviving each cleaning step.
type Stats struct {
	RawRows   int // rows read from the source
	TotalRows int // rows in the gender == Total slice
	CleanRows int // rows with an HDI value
	Entities  int // distinct countries and aggregates
}

// Dropped is the number of Total rows discarded for a missing HDI.
func (s Stats) Dropped() int { return s.TotalRows - s.CleanRows }

// Clean runs the cleaning pipeline over raw rows:
// keep the Total gender slice, drop rows without an HDI value, normalize
// regions, derive year-over-year HDI change and assign colors.
func Clean(raw []RawRecord) (*Dataset, error) {
	stats := Stats{RawRows: len(raw)}
	records := make([]Record, 0, len(raw))
	for _, r := range raw {
		if r.Gender != totalGender {
			continue
		}
		stats.TotalRows++
		if !r.HDI.Valid {
			continue
		}
		records = append(records, Record{
			Country:           r.Country,
			Year:              r.Year,
			Region:            NormalizeRegion(r.Country, r.Region),
			HDI:               r.HDI.Float64,
			LifeExpectancy:    r.LifeExpectancy,
			ExpectedSchooling: r.ExpectedSchooling,
			MeanSchooling:     r.MeanSchooling,
			GNIPerCapita:      r.GNIPerCapita,
		})
	}
	return build(records, Sources{}, stats)
}

// FromCleaned rebuilds a Dataset from records that were cleaned earlier,
// e.g. read back from a snapshot. HDI change and colors are recomputed.
func FromCleaned(records []Record, sources Sources) (*Dataset, error) {
	owned := make([]Record, len(records))
	copy(owned, records)
	stats := Stats{RawRows: len(owned), TotalRows: len(owned)}
	return build(owned, sources, stats)
}

func build(records []Record, sources Sources, stats Stats) (*Dataset, error) {
	if err := validate(records); err != nil {
		return nil, err
	}
	sortRecords(records)
	fillHDIChange(records)
	stats.CleanRows = len(records)

	order, means := meanHDI(records)
	colors := assignColors(order, means)
	for i := range records {
		records[i].Color = colors[records[i].Country]
	}
	stats.Entities = len(order)

	return &Dataset{
		records: records,
		colors:  colors,
		order:   order,
		means:   means,
		sources: sources,
		stats:   stats,
	}, nil
}

func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Country != records[j].Country {
			return records[i].Country < records[j].Country
		}
		return records[i].Year < records[j].Year
	})
}

// fillHDIChange expects records sorted by (country, year).
func fillHDIChange(records []Record) {
	for i := range records {
		if i == 0 || records[i-1].Country != records[i].Country {
			records[i].HDIChange = 0
			continue
		}
		records[i].HDIChange = FractionalChange(records[i-1].HDI, records[i].HDI)
	}
}

// FractionalChange is (cur - prev) / prev, or 0 when that is undefined.
func FractionalChange(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	v := (cur - prev) / prev
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
