package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"codeatlas/internal/analysis"
	"codeatlas/internal/scan"
)

// Symbol is one named declaration extracted from a stored report.
type Symbol struct {
	Path string `json:"path"`
	Kind string `json:"kind"`
	Name string `json:"name"`
	Line int    `json:"line"`
}

// ReportSummary is the file-level view of a stored report, without the
// analysis blob.
type ReportSummary struct {
	Path        string  `json:"path"`
	Language    string  `json:"language"`
	LinesOfCode int     `json:"lines_of_code"`
	Complexity  float64 `json:"complexity"`
}

// GetReport loads the full report for a path, including the unmarshalled
// fact sheet. Returns ErrNotFound when the path was never scanned.
func (s *Store) GetReport(path string) (*scan.Report, error) {
	row := sq.Select("id", "path", "language", "size_bytes", "lines_of_code", "complexity", "analysis").
		From("reports").
		Where(sq.Eq{"path": path}).
		RunWith(s.db).
		QueryRow()

	var report scan.Report
	var analysisJSON string
	err := row.Scan(
		&report.ID,
		&report.Path,
		&report.Language,
		&report.SizeBytes,
		&report.LinesOfCode,
		&report.Complexity,
		&analysisJSON,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read report for %s: %w", path, err)
	}

	result := &analysis.Result{}
	if err := json.Unmarshal([]byte(analysisJSON), result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis for %s: %w", path, err)
	}
	report.Result = result

	return &report, nil
}

// ListReports returns summaries for every stored report, ordered by path.
func (s *Store) ListReports() ([]ReportSummary, error) {
	rows, err := sq.Select("path", "language", "lines_of_code", "complexity").
		From("reports").
		OrderBy("path").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	summaries := []ReportSummary{}
	for rows.Next() {
		var sum ReportSummary
		if err := rows.Scan(&sum.Path, &sum.Language, &sum.LinesOfCode, &sum.Complexity); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		summaries = append(summaries, sum)
	}
	return summaries, rows.Err()
}

// CountByLanguage returns the number of stored reports per language.
func (s *Store) CountByLanguage() (map[string]int, error) {
	rows, err := sq.Select("language", "COUNT(*)").
		From("reports").
		GroupBy("language").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var language string
		var count int
		if err := rows.Scan(&language, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count row: %w", err)
		}
		counts[language] = count
	}
	return counts, rows.Err()
}

// FindSymbols searches stored symbols by case-insensitive substring match
// on the name, ordered by path then line.
func (s *Store) FindSymbols(name string) ([]Symbol, error) {
	rows, err := sq.Select("r.path", "s.kind", "s.name", "s.line").
		From("symbols s").
		Join("reports r ON r.id = s.report_id").
		Where(sq.Like{"s.name": "%" + name + "%"}).
		OrderBy("r.path", "s.line").
		RunWith(s.db).
		Query()
	if err != nil {
		return nil, fmt.Errorf("failed to search symbols: %w", err)
	}
	defer rows.Close()

	symbols := []Symbol{}
	for rows.Next() {
		var sym Symbol
		if err := rows.Scan(&sym.Path, &sym.Kind, &sym.Name, &sym.Line); err != nil {
			return nil, fmt.Errorf("failed to scan symbol row: %w", err)
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

// GetMetadata reads a scan_metadata value. Missing keys return "".
func (s *Store) GetMetadata(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM scan_metadata WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read metadata %s: %w", key, err)
	}
	return value, nil
}
