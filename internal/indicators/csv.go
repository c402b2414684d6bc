package indicators

import (
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrMissingColumn reports a required header that is absent.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMissingFile reports an input file that does not exist.
	ErrMissingFile = errors.New("missing input file")
	// ErrEmptyFile reports a file without a header row.
	ErrEmptyFile = errors.New("empty file")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Cell values treated as missing, matching the usual CSV NA spellings.
var missingTokens = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"-NaN": {},
	"null": {},
	"NULL": {},
	"None": {},
	"#N/A": {},
}

func isMissing(s string) bool {
	_, ok := missingTokens[strings.TrimSpace(s)]
	return ok
}

// Table is a header-indexed CSV file.
type Table struct {
	Headers []string
	Rows    []map[string]string
}

func newCSVReader(r io.Reader) (*csv.Reader, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	b = bytes.TrimPrefix(b, utf8BOM)
	cr := csv.NewReader(bytes.NewReader(b))
	cr.FieldsPerRecord = -1
	return cr, nil
}

func readHeader(cr *csv.Reader) ([]string, error) {
	headers, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}
	return headers, nil
}

// ReadTable reads a CSV file with a header row into a Table.
func ReadTable(r io.Reader) (Table, error) {
	cr, err := newCSVReader(r)
	if err != nil {
		return Table{}, err
	}
	headers, err := readHeader(cr)
	if err != nil {
		return Table{}, err
	}
	t := Table{Headers: headers}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, err
		}
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = strings.TrimSpace(rec[i])
			} else {
				row[h] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadCSV parses the composite-indices file. A missing required column or an
// unparsable year or metric cell fails the whole read.
func ReadCSV(r io.Reader) ([]RawRecord, error) {
	cr, err := newCSVReader(r)
	if err != nil {
		return nil, err
	}
	headers, err := readHeader(cr)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var out []RawRecord
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		p := rowParser{cr: cr, rec: rec, idx: idx}
		raw := RawRecord{
			Country:           p.text(ColCountry),
			Year:              p.year(),
			Gender:            p.text(ColGender),
			Region:            p.text(ColRegion),
			HDI:               p.float(ColHDI),
			LifeExpectancy:    p.float(ColLifeExpectancy),
			ExpectedSchooling: p.float(ColExpectedSchooling),
			MeanSchooling:     p.float(ColMeanSchooling),
			GNIPerCapita:      p.float(ColGNIPerCapita),
		}
		if p.err != nil {
			return nil, p.err
		}
		out = append(out, raw)
	}
	return out, nil
}

// rowParser keeps the first cell error of a record.
type rowParser struct {
	cr  *csv.Reader
	rec []string
	idx map[string]int
	err error
}

func (p *rowParser) cell(col string) string {
	i := p.idx[col]
	if i >= len(p.rec) {
		return ""
	}
	return strings.TrimSpace(p.rec[i])
}

func (p *rowParser) fail(col, val string, err error) {
	if p.err != nil {
		return
	}
	line, _ := p.cr.FieldPos(0)
	p.err = fmt.Errorf("line %d column %q: parse %q: %w", line, col, val, err)
}

func (p *rowParser) text(col string) string {
	v := p.cell(col)
	if isMissing(v) {
		return ""
	}
	return v
}

func (p *rowParser) year() int {
	v := p.cell(ColYear)
	n, err := strconv.Atoi(v)
	if err == nil {
		return n
	}
	// Some exports write integral years as floats.
	f, ferr := strconv.ParseFloat(v, 64)
	if ferr == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	p.fail(ColYear, v, err)
	return 0
}

func (p *rowParser) float(col string) sql.NullFloat64 {
	v := p.cell(col)
	if isMissing(v) {
		return sql.NullFloat64{}
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(col, v, err)
		return sql.NullFloat64{}
	}
	if math.IsNaN(f) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: f, Valid: true}
}
