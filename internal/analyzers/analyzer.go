// Package analyzers contains the per-language source analyzers and the
// registry that routes files to them by extension.
//
// Every analyzer is a long-lived, read-only configuration object: it holds
// its language name, extension set, and complexity weights, and no per-call
// state. AnalyzeContent is total — it returns a well-formed result for any
// text input and never panics; internal parse failures degrade to a
// best-effort extraction.
package analyzers

import (
	"math"
	"path/filepath"
	"strings"

	"codeatlas/internal/analysis"
)

// Analyzer is the capability contract every language analyzer implements.
type Analyzer interface {
	// Language returns the static language label.
	Language() string

	// CanAnalyze reports whether the path's extension (lower-cased) is a
	// member of this analyzer's supported set.
	CanAnalyze(path string) bool

	// AnalyzeContent produces the fact sheet for the given source text.
	// The result always contains the five core collections.
	AnalyzeContent(content, path string) *analysis.Result

	// DetectLanguage returns the language label, optionally sniffing the
	// content for a dialect (CSS does; everything else is static).
	DetectLanguage(content, path string) string

	// CalculateComplexity returns a weighted, length-normalized heuristic
	// score in [0,10].
	CalculateComplexity(content string) float64

	// CountLinesOfCode counts non-blank, non-comment lines.
	CountLinesOfCode(content string) int
}

// baseAnalyzer carries the shared static configuration and the default
// implementations of the contract's simple operations.
type baseAnalyzer struct {
	language      string
	extensions    map[string]bool
	weights       map[string]float64
	commentMarker string // line-comment prefix skipped by CountLinesOfCode
}

func newBaseAnalyzer(language string, extensions []string, weights map[string]float64, commentMarker string) baseAnalyzer {
	set := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		set[strings.ToLower(ext)] = true
	}
	return baseAnalyzer{
		language:      language,
		extensions:    set,
		weights:       weights,
		commentMarker: commentMarker,
	}
}

func (b *baseAnalyzer) Language() string {
	return b.language
}

func (b *baseAnalyzer) CanAnalyze(path string) bool {
	return b.extensions[strings.ToLower(filepath.Ext(path))]
}

func (b *baseAnalyzer) DetectLanguage(content, path string) string {
	return b.language
}

// CountLinesOfCode counts lines that are neither blank nor start with the
// analyzer's line-comment marker.
func (b *baseAnalyzer) CountLinesOfCode(content string) int {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if b.commentMarker != "" && strings.HasPrefix(trimmed, b.commentMarker) {
			continue
		}
		count++
	}
	return count
}

// CalculateComplexity sums weighted occurrences of the analyzer's keywords
// and normalizes by line count, clamped to [0,10].
func (b *baseAnalyzer) CalculateComplexity(content string) float64 {
	loc := b.CountLinesOfCode(content)
	if loc == 0 {
		return 0
	}
	score := 0.0
	for keyword, weight := range b.weights {
		score += float64(strings.Count(content, keyword)) * weight
	}
	return math.Min(10, score*10/float64(loc))
}

// addPattern appends tag to the result's pattern set if not already present.
func addPattern(res *analysis.Result, tag string) {
	for _, existing := range res.Patterns {
		if existing == tag {
			return
		}
	}
	res.Patterns = append(res.Patterns, tag)
}
