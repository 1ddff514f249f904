package analyzers

import "strings"

// scanState tracks progress of scanBraceBody through a declaration.
type scanState int

const (
	seekingOpenBrace scanState = iota
	inBody
)

// scanBraceBody enumerates the lines inside the first brace-delimited body
// found at or after lines[start] (typically a class, trait, or interface
// header). visit receives each line inside the body together with its
// 1-based line number. The return value is the index of the line on which
// the body's depth returned to zero, or len(lines) if it never closed.
//
// Braces inside string and comment literals are counted like any other
// brace. Content that embeds unbalanced braces in literals will
// desynchronize the depth tracking; that is an accepted limitation of the
// single-pass scan, not something callers should try to compensate for.
func scanBraceBody(lines []string, start int, visit func(lineNo int, line string)) int {
	state := seekingOpenBrace
	depth := 0

	for i := start; i < len(lines); i++ {
		line := lines[i]
		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		switch state {
		case seekingOpenBrace:
			if opens == 0 {
				continue
			}
			depth = opens - closes
			if depth <= 0 {
				return i
			}
			state = inBody

		case inBody:
			depth += opens - closes
			if depth <= 0 {
				return i
			}
			visit(i+1, line)
		}
	}
	return len(lines)
}
