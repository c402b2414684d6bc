package indicators

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ExportColumns is the column order of the cleaned CSV.
var ExportColumns = []string{
	ColCountry,
	ColYear,
	ColRegion,
	ColHDI,
	"hdi_change",
	ColLifeExpectancy,
	ColExpectedSchooling,
	ColMeanSchooling,
	ColGNIPerCapita,
	"color",
}

// WriteCSV writes the cleaned records with a header row. Missing auxiliary
// values are written as empty cells.
func WriteCSV(w io.Writer, d *Dataset) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportColumns); err != nil {
		return err
	}
	for _, r := range d.records {
		rec := []string{
			r.Country,
			strconv.Itoa(r.Year),
			r.Region,
			formatFloat(r.HDI),
			formatFloat(r.HDIChange),
			formatNull(r.LifeExpectancy.Float64, r.LifeExpectancy.Valid),
			formatNull(r.ExpectedSchooling.Float64, r.ExpectedSchooling.Valid),
			formatNull(r.MeanSchooling.Float64, r.MeanSchooling.Valid),
			formatNull(r.GNIPerCapita.Float64, r.GNIPerCapita.Valid),
			r.Color,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func formatNull(f float64, valid bool) string {
	if !valid {
		return ""
	}
	return formatFloat(f)
}
