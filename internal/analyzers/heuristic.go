package analyzers

import (
	"strings"

	"codeatlas/internal/analysis"
)

// docCommentWindow bounds how far above a declaration the doc-comment scan
// looks before giving up.
const docCommentWindow = 10

// splitArgs splits a raw parameter list on commas, treating ()[]{}<> as
// nesting delimiters so default values, generics, and object-type
// annotations are not split on their internal commas.
func splitArgs(raw string) []string {
	args := []string{}
	depth := 0
	var current strings.Builder

	for _, r := range raw {
		switch r {
		case '(', '[', '{', '<':
			depth++
			current.WriteRune(r)
		case ')', ']', '}', '>':
			depth--
			current.WriteRune(r)
		case ',':
			if depth == 0 {
				if arg := strings.TrimSpace(current.String()); arg != "" {
					args = append(args, arg)
				}
				current.Reset()
			} else {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if arg := strings.TrimSpace(current.String()); arg != "" {
		args = append(args, arg)
	}
	return args
}

// cutTopLevel splits s at the first occurrence of sep that sits outside any
// ()[]{}<> nesting. The separator itself is dropped.
func cutTopLevel(s string, sep rune) (before, after string, found bool) {
	depth := 0
	for i, r := range s {
		switch r {
		case '(', '[', '{', '<':
			depth++
		case ')', ']', '}', '>':
			depth--
		default:
			if r == sep && depth == 0 {
				return s[:i], s[i+len(string(sep)):], true
			}
		}
	}
	return s, "", false
}

// findDocComment scans upward from the line preceding declIdx (0-based),
// within docCommentWindow lines, for the start of a /** ... */ block. The
// scan stops early at the first non-comment, non-blank line. Returns the
// collapsed comment text, or "" when no doc comment is associated.
func findDocComment(lines []string, declIdx int) string {
	limit := declIdx - docCommentWindow
	if limit < 0 {
		limit = 0
	}

	for i := declIdx - 1; i >= limit; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "/**") {
			return collapseBlockComment(lines, i, declIdx)
		}
		// Interior or trailing lines of a block comment keep the scan going.
		if strings.HasPrefix(trimmed, "*") || strings.HasPrefix(trimmed, "//") || strings.HasSuffix(trimmed, "*/") {
			continue
		}
		return ""
	}
	return ""
}

// collapseBlockComment joins the text of a /** ... */ block starting at
// startIdx into a single space-separated string.
func collapseBlockComment(lines []string, startIdx, declIdx int) string {
	var parts []string
	for i := startIdx; i < declIdx; i++ {
		trimmed := strings.TrimSpace(lines[i])
		closed := strings.HasSuffix(trimmed, "*/")

		trimmed = strings.TrimPrefix(trimmed, "/**")
		trimmed = strings.TrimSuffix(trimmed, "*/")
		trimmed = strings.TrimPrefix(trimmed, "*")
		trimmed = strings.TrimSpace(trimmed)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
		if closed {
			break
		}
	}
	return strings.Join(parts, " ")
}

// patternProbe maps a heuristic pattern tag to the substrings that signal it.
type patternProbe struct {
	tag     string
	needles []string
}

// detectPatterns adds the tag of every probe whose needles appear in content.
func detectPatterns(content string, probes []patternProbe, res *analysis.Result) {
	for _, probe := range probes {
		for _, needle := range probe.needles {
			if strings.Contains(content, needle) {
				addPattern(res, probe.tag)
				break
			}
		}
	}
}
