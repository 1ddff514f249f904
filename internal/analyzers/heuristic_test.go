package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for the shared heuristic helpers:
// - splitArgs respects (), [], {}, <> nesting
// - cutTopLevel only splits outside nesting
// - findDocComment picks up /** */ blocks and stops at code
// - scanBraceBody tracks depth, reports the closing line, and tolerates
//   bodies that never close

func TestSplitArgs(t *testing.T) {
	t.Parallel()

	assert.Empty(t, splitArgs(""))
	assert.Equal(t, []string{"a", "b"}, splitArgs("a, b"))
	assert.Equal(t, []string{"a = [1, 2]", "b"}, splitArgs("a = [1, 2], b"))
	assert.Equal(t,
		[]string{"items: Map<string, number>", "cb: (a, b) => void"},
		splitArgs("items: Map<string, number>, cb: (a, b) => void"))
	assert.Equal(t, []string{"opts = {a: 1, b: 2}"}, splitArgs("opts = {a: 1, b: 2}"))
}

func TestCutTopLevel(t *testing.T) {
	t.Parallel()

	before, after, found := cutTopLevel("name = value", '=')
	assert.True(t, found)
	assert.Equal(t, "name ", before)
	assert.Equal(t, " value", after)

	// The '=' inside the braces is nested and must not split.
	before, _, found = cutTopLevel("opts = {x = 1}", '=')
	assert.True(t, found)
	assert.Equal(t, "opts ", before)

	_, _, found = cutTopLevel("{a = b}", '=')
	assert.False(t, found)
}

func TestFindDocComment(t *testing.T) {
	t.Parallel()

	lines := []string{
		"/**",
		" * Adds numbers.",
		" * Second line.",
		" */",
		"function add(a, b) {}",
	}
	assert.Equal(t, "Adds numbers. Second line.", findDocComment(lines, 4))

	// Code between the comment and the declaration breaks the association.
	broken := []string{
		"/** Orphaned. */",
		"const x = 1;",
		"function add(a, b) {}",
	}
	assert.Equal(t, "", findDocComment(broken, 2))

	assert.Equal(t, "", findDocComment([]string{"function f() {}"}, 0))
}

func TestScanBraceBody(t *testing.T) {
	t.Parallel()

	lines := []string{
		"class Foo",     // 0: header, brace on next line
		"{",             // 1
		"  method() {",  // 2
		"    nested();", // 3
		"  }",           // 4
		"}",             // 5
		"after();",      // 6
	}

	var visited []int
	end := scanBraceBody(lines, 0, func(lineNo int, line string) {
		visited = append(visited, lineNo)
	})
	assert.Equal(t, 5, end)
	assert.Equal(t, []int{3, 4, 5}, visited)
}

func TestScanBraceBody_Unclosed(t *testing.T) {
	t.Parallel()

	lines := []string{"class Foo {", "  a() {}", "  b() {}"}
	end := scanBraceBody(lines, 0, func(int, string) {})
	assert.Equal(t, len(lines), end)
}
