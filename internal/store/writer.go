package store

import (
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"codeatlas/internal/scan"
)

// SaveReports writes all reports in a single transaction. A report for a
// path that was stored by an earlier scan is replaced, and its symbols are
// dropped by the foreign key cascade before the fresh ones are inserted.
func (s *Store) SaveReports(reports []scan.Report) error {
	if len(reports) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safe to call even after commit

	now := time.Now().UTC().Format(time.RFC3339)

	for _, report := range reports {
		analysisJSON, err := json.Marshal(report.Result)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis for %s: %w", report.Path, err)
		}

		// Remove any prior report for this path so the cascade clears
		// its symbols.
		if _, err := sq.Delete("reports").
			Where(sq.Eq{"path": report.Path}).
			RunWith(tx).
			Exec(); err != nil {
			return fmt.Errorf("failed to clear previous report for %s: %w", report.Path, err)
		}

		if _, err := sq.Insert("reports").
			Columns("id", "path", "language", "size_bytes", "lines_of_code", "complexity", "analysis", "scanned_at").
			Values(
				report.ID,
				report.Path,
				report.Language,
				report.SizeBytes,
				report.LinesOfCode,
				report.Complexity,
				string(analysisJSON),
				now,
			).
			RunWith(tx).
			Exec(); err != nil {
			return fmt.Errorf("failed to insert report for %s: %w", report.Path, err)
		}

		for _, sym := range symbolsFromReport(&report) {
			if _, err := sq.Insert("symbols").
				Columns("id", "report_id", "kind", "name", "line").
				Values(uuid.NewString(), report.ID, sym.Kind, sym.Name, sym.Line).
				RunWith(tx).
				Exec(); err != nil {
				return fmt.Errorf("failed to insert symbol %s for %s: %w", sym.Name, report.Path, err)
			}
		}
	}

	if _, err := sq.Update("scan_metadata").
		Set("value", now).
		Set("updated_at", now).
		Where(sq.Eq{"key": "last_scan"}).
		RunWith(tx).
		Exec(); err != nil {
		return fmt.Errorf("failed to update last_scan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reports: %w", err)
	}

	return nil
}

// symbolsFromReport flattens the named declarations of a fact sheet into
// symbol rows. Nested members (methods, columns) stay inside the JSON
// analysis blob.
func symbolsFromReport(report *scan.Report) []Symbol {
	res := report.Result
	if res == nil {
		return nil
	}

	symbols := []Symbol{}
	add := func(kind, name string, line int) {
		if name == "" {
			return
		}
		symbols = append(symbols, Symbol{Path: report.Path, Kind: kind, Name: name, Line: line})
	}

	for _, fn := range res.Functions {
		add("function", fn.Name, fn.Line)
	}
	for _, cls := range res.Classes {
		add("class", cls.Name, cls.Line)
	}
	for _, iface := range res.Interfaces {
		add("interface", iface.Name, iface.Line)
	}
	for _, alias := range res.TypeAliases {
		add("type", alias.Name, alias.Line)
	}
	for _, enum := range res.Enums {
		add("enum", enum.Name, enum.Line)
	}
	for _, trait := range res.Traits {
		add("trait", trait.Name, trait.Line)
	}
	for _, mixin := range res.Mixins {
		add("mixin", mixin.Name, mixin.Line)
	}
	for _, table := range res.Tables {
		add("table", table.Name, table.Line)
	}
	for _, view := range res.Views {
		add("view", view.Name, view.Line)
	}
	for _, proc := range res.Procedures {
		add(proc.Kind, proc.Name, proc.Line)
	}
	for _, heading := range res.Headings {
		add("heading", heading.Text, heading.Line)
	}

	return symbols
}

// SetMetadata upserts a scan_metadata entry.
func (s *Store) SetMetadata(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := sq.Insert("scan_metadata").
		Columns("key", "value", "updated_at").
		Values(key, value, now).
		Options("OR REPLACE").
		RunWith(s.db).
		Exec()
	if err != nil {
		return fmt.Errorf("failed to set metadata %s: %w", key, err)
	}
	return nil
}
