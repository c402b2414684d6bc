// Package snapshot persists a cleaned dataset to SQLite and loads it back, so
// the server can start without re-reading and re-cleaning the source CSVs.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"hdidash/internal/indicators"
)

const (
	recordsTable = "hdi_cleaned"
	metaTable    = "hdi_meta"
	metaCitation = "citation"
)

var columns = []struct {
	name string
	typ  string
}{
	{"country", "TEXT NOT NULL"},
	{"year", "INTEGER NOT NULL"},
	{"region", "TEXT NOT NULL"},
	{"human_development_index", "REAL NOT NULL"},
	{"hdi_change", "REAL NOT NULL"},
	{"life_expectancy_at_birth", "REAL"},
	{"expected_years_of_schooling", "REAL"},
	{"mean_years_of_schooling", "REAL"},
	{"gross_national_income_per_capita", "REAL"},
	{"color", "TEXT NOT NULL"},
}

// Write replaces path with a fresh database holding the dataset.
func Write(ctx context.Context, path string, ds *indicators.Dataset) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove old snapshot: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	defs := make([]string, 0, len(columns))
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		defs = append(defs, fmt.Sprintf("%s %s", quoteIdent(c.name), c.typ))
		names = append(names, quoteIdent(c.name))
	}
	for _, q := range []string{
		fmt.Sprintf(`CREATE TABLE %s (%s)`, quoteIdent(recordsTable), strings.Join(defs, ", ")),
		fmt.Sprintf(`CREATE TABLE %s ("key" TEXT PRIMARY KEY, "value" TEXT NOT NULL)`, quoteIdent(metaTable)),
	} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(columns)), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		quoteIdent(recordsTable), strings.Join(names, ", "), ph))
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range ds.Records() {
		if _, err := stmt.ExecContext(ctx,
			r.Country, r.Year, r.Region, r.HDI, r.HDIChange,
			r.LifeExpectancy, r.ExpectedSchooling, r.MeanSchooling, r.GNIPerCapita,
			r.Color,
		); err != nil {
			return fmt.Errorf("insert %s %d: %w", r.Country, r.Year, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s ("key", "value") VALUES (?, ?)`, quoteIdent(metaTable)),
		metaCitation, ds.Sources().Citation,
	); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}

	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_hdi_cleaned_country ON hdi_cleaned(country)`,
		`CREATE INDEX IF NOT EXISTS idx_hdi_cleaned_region ON hdi_cleaned(region)`,
	} {
		if _, err := tx.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Load reads a snapshot written by Write. Derived fields are recomputed and
// the usual record invariants are enforced.
func Load(ctx context.Context, path string) (*indicators.Dataset, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("sqlite path error: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	records, err := fetchRecords(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	citation, err := fetchMeta(ctx, db, metaCitation)
	if err != nil {
		return nil, fmt.Errorf("load meta: %w", err)
	}
	ds, err := indicators.FromCleaned(records, indicators.Sources{Citation: citation})
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return ds, nil
}

func fetchRecords(ctx context.Context, db *sql.DB) ([]indicators.Record, error) {
	names := make([]string, 0, len(columns))
	for _, c := range columns {
		names = append(names, quoteIdent(c.name))
	}
	q := fmt.Sprintf(`SELECT %s FROM %s ORDER BY "country", "year"`, strings.Join(names, ", "), quoteIdent(recordsTable))
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []indicators.Record
	for rows.Next() {
		var r indicators.Record
		if err := rows.Scan(
			&r.Country, &r.Year, &r.Region, &r.HDI, &r.HDIChange,
			&r.LifeExpectancy, &r.ExpectedSchooling, &r.MeanSchooling, &r.GNIPerCapita,
			&r.Color,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func fetchMeta(ctx context.Context, db *sql.DB, key string) (string, error) {
	var v string
	q := fmt.Sprintf(`SELECT "value" FROM %s WHERE "key" = ?`, quoteIdent(metaTable))
	err := db.QueryRowContext(ctx, q, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return v, err
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
