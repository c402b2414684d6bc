// Package indicators loads and cleans the UNDP composite-indices dataset.
//
// The cleaned Dataset is built once and is read-only afterwards, so it can be
// shared across request handlers without locking.
package indicators

import "database/sql"

// Column names of the composite-indices file.
const (
	ColCountry           = "country"
	ColYear              = "year"
	ColGender            = "gender"
	ColRegion            = "region"
	ColHDI               = "human_development_index"
	ColLifeExpectancy    = "life_expectancy_at_birth"
	ColExpectedSchooling = "expected_years_of_schooling"
	ColMeanSchooling     = "mean_years_of_schooling"
	ColGNIPerCapita      = "gross_national_income_per_capita"
	totalGender          = "Total"
	fileCodebook         = "codebook.csv"
	fileCitation         = "recommended_citation.csv"
	fileCompositeIndices = "undp_composite_indices.csv"
)

// RequiredColumns must all be present in the composite-indices header.
var RequiredColumns = []string{
	ColCountry,
	ColYear,
	ColGender,
	ColRegion,
	ColHDI,
	ColLifeExpectancy,
	ColExpectedSchooling,
	ColMeanSchooling,
	ColGNIPerCapita,
}

// RawRecord is one row of the composite-indices file before cleaning.
type RawRecord struct {
	Country           string
	Year              int
	Gender            string
	// Region is the raw code, empty when missing.
	Region            string
	HDI               sql.NullFloat64
	LifeExpectancy    sql.NullFloat64
	ExpectedSchooling sql.NullFloat64
	MeanSchooling     sql.NullFloat64
	GNIPerCapita      sql.NullFloat64
}

// Record is one cleaned (country, year) observation.
type Record struct {
	Country           string
	Year              int
	Region            string
	HDI               float64
	HDIChange         float64
	LifeExpectancy    sql.NullFloat64
	ExpectedSchooling sql.NullFloat64
	MeanSchooling     sql.NullFloat64
	GNIPerCapita      sql.NullFloat64
	Color             string
}
