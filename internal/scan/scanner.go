package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"codeatlas/internal/analysis"
	"codeatlas/internal/analyzers"
	"codeatlas/internal/config"
)

// Report is the per-file output of a scan: the analyzer fact sheet plus
// file-level metrics.
type Report struct {
	ID          string           `json:"id"`
	Path        string           `json:"path"` // relative to the scan root, slash-normalized
	Language    string           `json:"language"`
	SizeBytes   int64            `json:"size_bytes"`
	LinesOfCode int              `json:"lines_of_code"`
	Complexity  float64          `json:"complexity"`
	Result      *analysis.Result `json:"analysis"`
}

// Stats summarizes a completed scan.
type Stats struct {
	FilesDiscovered int
	FilesAnalyzed   int
	FilesSkipped    int
	ByLanguage      map[string]int
	Duration        time.Duration
}

// Scanner walks a directory tree, routes each discovered file through the
// analyzer registry, and collects the resulting reports.
type Scanner struct {
	rootDir  string
	cfg      *config.Config
	registry *analyzers.Registry
	progress ProgressReporter
}

// NewScanner creates a scanner rooted at rootDir. A nil progress reporter
// is replaced with a no-op one.
func NewScanner(rootDir string, cfg *config.Config, registry *analyzers.Registry, progress ProgressReporter) *Scanner {
	if progress == nil {
		progress = &NoOpProgressReporter{}
	}
	return &Scanner{
		rootDir:  rootDir,
		cfg:      cfg,
		registry: registry,
		progress: progress,
	}
}

// Run discovers files and analyzes them concurrently. Reports come back
// sorted by path so repeated scans of the same tree are deterministic.
func (s *Scanner) Run(ctx context.Context) ([]Report, *Stats, error) {
	start := time.Now()

	s.progress.OnDiscoveryStart()
	discovery, err := NewFileDiscovery(s.rootDir, s.cfg.Paths.Code, s.cfg.Paths.Docs, s.cfg.Paths.Ignore)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile path patterns: %w", err)
	}

	codeFiles, docFiles, err := discovery.DiscoverFiles()
	if err != nil {
		return nil, nil, fmt.Errorf("file discovery failed: %w", err)
	}
	s.progress.OnDiscoveryComplete(len(codeFiles), len(docFiles))

	files := append(codeFiles, docFiles...)
	s.progress.OnAnalysisStart(len(files))

	workers := s.cfg.Scan.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(files) && len(files) > 0 {
		workers = len(files)
	}

	jobs := make(chan string)
	type outcome struct {
		report *Report // nil when the file was skipped
	}
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				report := s.analyzeFile(path)
				s.progress.OnFileAnalyzed(filepath.Base(path))
				select {
				case results <- outcome{report: report}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, path := range files {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	reports := []Report{}
	skipped := 0
	for out := range results {
		if out.report == nil {
			skipped++
			continue
		}
		reports = append(reports, *out.report)
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Path < reports[j].Path
	})

	stats := &Stats{
		FilesDiscovered: len(files),
		FilesAnalyzed:   len(reports),
		FilesSkipped:    skipped,
		ByLanguage:      map[string]int{},
		Duration:        time.Since(start),
	}
	for _, r := range reports {
		stats.ByLanguage[r.Language]++
	}

	s.progress.OnComplete(stats)
	return reports, stats, nil
}

// analyzeFile produces a report for a single file, or nil when the file
// has no analyzer, exceeds the size limit, or cannot be read.
func (s *Scanner) analyzeFile(path string) *Report {
	analyzer := s.registry.ForPath(path)
	if analyzer == nil {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	if limit := s.cfg.Scan.MaxFileSizeKB; limit > 0 && info.Size() > int64(limit)*1024 {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	content := string(data)

	relPath, err := filepath.Rel(s.rootDir, path)
	if err != nil {
		relPath = path
	}

	result := analyzer.AnalyzeContent(content, path)
	return &Report{
		ID:          uuid.NewString(),
		Path:        filepath.ToSlash(relPath),
		Language:    result.Language,
		SizeBytes:   info.Size(),
		LinesOfCode: analyzer.CountLinesOfCode(content),
		Complexity:  analyzer.CalculateComplexity(content),
		Result:      result,
	}
}
