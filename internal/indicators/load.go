package indicators

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sources carries the metadata files shipped next to the dataset.
// Neither is used when rendering the chart.
type Sources struct {
	Citation string
	Codebook Table
}

// citationText returns the first non-empty cell of the citation table.
func citationText(t Table) string {
	for _, row := range t.Rows {
		for _, h := range t.Headers {
			if v := strings.TrimSpace(row[h]); v != "" {
				return v
			}
		}
	}
	return ""
}

// LoadDir reads codebook.csv, recommended_citation.csv and
// undp_composite_indices.csv from dir and returns the cleaned Dataset.
// Any missing or malformed file fails the load.
func LoadDir(dir string) (*Dataset, error) {
	var codebook, citation Table
	if err := readFile(filepath.Join(dir, fileCodebook), func(r io.Reader) (err error) {
		codebook, err = ReadTable(r)
		return err
	}); err != nil {
		return nil, err
	}
	if err := readFile(filepath.Join(dir, fileCitation), func(r io.Reader) (err error) {
		citation, err = ReadTable(r)
		return err
	}); err != nil {
		return nil, err
	}

	var raw []RawRecord
	if err := readFile(filepath.Join(dir, fileCompositeIndices), func(r io.Reader) (err error) {
		raw, err = ReadCSV(r)
		return err
	}); err != nil {
		return nil, err
	}

	ds, err := Clean(raw)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", fileCompositeIndices, err)
	}
	return ds.withSources(Sources{
		Citation: citationText(citation),
		Codebook: codebook,
	}), nil
}

func readFile(path string, parse func(io.Reader) error) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrMissingFile, path)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	if err := parse(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}
