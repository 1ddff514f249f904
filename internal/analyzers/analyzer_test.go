package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeatlas/internal/analysis"
)

// Test Plan for the shared analyzer contract:
// - Every analyzer returns the five core collections non-nil for empty input
// - Every analyzer survives garbage input without panicking
// - Analysis is deterministic (same input, same output)
// - CanAnalyze is case-insensitive on the extension
// - CountLinesOfCode skips blank and comment lines
// - CalculateComplexity stays within [0, 10]

// samplePaths maps each built-in language to a path its analyzer claims.
var samplePaths = map[string]string{
	"python":     "app/models.py",
	"typescript": "src/index.ts",
	"javascript": "src/app.js",
	"php":        "web/index.php",
	"html":       "public/index.html",
	"css":        "assets/style.css",
	"sql":        "db/schema.sql",
	"markdown":   "README.md",
}

func TestAnalyzers_CoreCollectionsAlwaysPresent(t *testing.T) {
	t.Parallel()

	for _, a := range NewRegistry().Analyzers() {
		path, ok := samplePaths[a.Language()]
		require.True(t, ok, "no sample path for %s", a.Language())

		for _, content := range []string{"", "((({{{<<<\x00\xff", "just some words"} {
			res := a.AnalyzeContent(content, path)
			require.NotNil(t, res, "%s returned nil result", a.Language())
			assert.NotNil(t, res.Functions, "%s: Functions nil", a.Language())
			assert.NotNil(t, res.Classes, "%s: Classes nil", a.Language())
			assert.NotNil(t, res.Imports, "%s: Imports nil", a.Language())
			assert.NotNil(t, res.Exports, "%s: Exports nil", a.Language())
			assert.NotNil(t, res.Patterns, "%s: Patterns nil", a.Language())
		}
	}
}

func TestAnalyzers_Deterministic(t *testing.T) {
	t.Parallel()

	source := "function hello(name) {\n  return name;\n}\n"
	for _, a := range NewRegistry().Analyzers() {
		first := a.AnalyzeContent(source, samplePaths[a.Language()])
		second := a.AnalyzeContent(source, samplePaths[a.Language()])
		assert.Equal(t, first, second, "%s is not deterministic", a.Language())
	}
}

func TestAnalyzers_CanAnalyzeCaseInsensitive(t *testing.T) {
	t.Parallel()

	a := NewPythonAnalyzer()
	assert.True(t, a.CanAnalyze("script.py"))
	assert.True(t, a.CanAnalyze("SCRIPT.PY"))
	assert.True(t, a.CanAnalyze("nested/dir/Tool.Py"))
	assert.False(t, a.CanAnalyze("script.pyc"))
	assert.False(t, a.CanAnalyze("script"))
}

func TestAnalyzers_CountLinesOfCode(t *testing.T) {
	t.Parallel()

	a := NewJavaScriptAnalyzer()
	source := "// header comment\n\nconst a = 1;\n  // indented comment\nconst b = 2;\n\n"
	assert.Equal(t, 2, a.CountLinesOfCode(source))
	assert.Equal(t, 0, a.CountLinesOfCode(""))
	assert.Equal(t, 0, a.CountLinesOfCode("\n\n\n"))
}

func TestAnalyzers_ComplexityBounds(t *testing.T) {
	t.Parallel()

	a := NewJavaScriptAnalyzer()
	assert.Equal(t, 0.0, a.CalculateComplexity(""))

	// A line dense with weighted keywords must still clamp to 10.
	dense := "if ( if ( while switch catch && || => await async"
	score := a.CalculateComplexity(dense)
	assert.LessOrEqual(t, score, 10.0)
	assert.Greater(t, score, 0.0)

	plain := "const x = 1;\nconst y = 2;\n"
	assert.GreaterOrEqual(t, a.CalculateComplexity(plain), 0.0)
}

// findFunction fails the test when name is absent.
func findFunction(t *testing.T, fns []analysis.Function, name string) analysis.Function {
	t.Helper()
	for _, fn := range fns {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("function %q not found in %v", name, fns)
	return analysis.Function{}
}

// findClass fails the test when name is absent.
func findClass(t *testing.T, classes []analysis.Class, name string) analysis.Class {
	t.Helper()
	for _, class := range classes {
		if class.Name == name {
			return class
		}
	}
	t.Fatalf("class %q not found in %v", name, classes)
	return analysis.Class{}
}

// findImport fails the test when no import matches module.
func findImport(t *testing.T, imports []analysis.Import, module string) analysis.Import {
	t.Helper()
	for _, imp := range imports {
		if imp.Module == module {
			return imp
		}
	}
	t.Fatalf("import of %q not found in %v", module, imports)
	return analysis.Import{}
}
