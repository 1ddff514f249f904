package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for JavaScriptAnalyzer:
// - Extract named functions with doc comments and argument names
// - Extract assigned arrow functions
// - Extract classes with extends and their methods (async, static)
// - Class methods are not duplicated as top-level functions
// - Import forms: default, named, aliased, side-effect, require
// - Export forms: export clause, declaration, module.exports
// - Pattern tags reflect the constructs present

const jsSample = `import fs from 'fs';
import { join, resolve as res } from 'path';
import './setup.js';
const lodash = require('lodash');

/**
 * Greets a user.
 */
function greet(name, greeting = 'hello') {
  return greeting + ' ' + name;
}

const add = (a, b) => a + b;

class Foo extends Bar {
  constructor(x) {
    this.x = x;
  }

  async load(url) {
    return fetch(url);
  }

  static of(x) {
    return new Foo(x);
  }
}

module.exports = greet;
`

func TestJavaScriptAnalyzer_Functions(t *testing.T) {
	t.Parallel()

	res := NewJavaScriptAnalyzer().AnalyzeContent(jsSample, "app.js")
	require.Len(t, res.Functions, 2)

	greet := findFunction(t, res.Functions, "greet")
	assert.Equal(t, 9, greet.Line)
	assert.Equal(t, "function", greet.Kind)
	assert.Equal(t, []string{"name", "greeting"}, greet.Args)
	assert.Equal(t, "Greets a user.", greet.Doc)
	assert.False(t, greet.IsAsync)

	add := findFunction(t, res.Functions, "add")
	assert.Equal(t, 13, add.Line)
	assert.Equal(t, "arrow_function", add.Kind)
	assert.Equal(t, []string{"a", "b"}, add.Args)
}

func TestJavaScriptAnalyzer_Classes(t *testing.T) {
	t.Parallel()

	res := NewJavaScriptAnalyzer().AnalyzeContent(jsSample, "app.js")
	foo := findClass(t, res.Classes, "Foo")
	assert.Equal(t, 15, foo.Line)
	assert.Equal(t, "Bar", foo.Extends)
	require.Len(t, foo.Methods, 3)

	ctor := findFunction(t, foo.Methods, "constructor")
	assert.Equal(t, 16, ctor.Line)
	assert.Equal(t, []string{"x"}, ctor.Args)

	load := findFunction(t, foo.Methods, "load")
	assert.True(t, load.IsAsync)
	assert.Equal(t, "method", load.Kind)

	of := findFunction(t, foo.Methods, "of")
	assert.True(t, of.IsStatic)
}

func TestJavaScriptAnalyzer_Imports(t *testing.T) {
	t.Parallel()

	res := NewJavaScriptAnalyzer().AnalyzeContent(jsSample, "app.js")

	fs := findImport(t, res.Imports, "fs")
	assert.Equal(t, "default", fs.Kind)
	assert.Equal(t, "fs", fs.Name)

	path := findImport(t, res.Imports, "path")
	assert.Equal(t, "named", path.Kind)
	assert.Equal(t, "join", path.Name)

	setup := findImport(t, res.Imports, "./setup.js")
	assert.Equal(t, "side_effect", setup.Kind)

	lodash := findImport(t, res.Imports, "lodash")
	assert.Equal(t, "require", lodash.Kind)
	assert.Equal(t, "lodash", lodash.Name)

	// `resolve as res` produces its own record with the alias.
	var aliased bool
	for _, imp := range res.Imports {
		if imp.Name == "resolve" && imp.Alias == "res" {
			aliased = true
		}
	}
	assert.True(t, aliased, "aliased named import not found: %v", res.Imports)
}

func TestJavaScriptAnalyzer_ExportsAndPatterns(t *testing.T) {
	t.Parallel()

	res := NewJavaScriptAnalyzer().AnalyzeContent(jsSample, "app.js")
	assert.Contains(t, res.Exports, "greet")

	assert.Contains(t, res.Patterns, "module_system")
	assert.Contains(t, res.Patterns, "object_oriented")
	assert.Contains(t, res.Patterns, "asynchronous")
	assert.Contains(t, res.Patterns, "functional")
}

func TestJavaScriptAnalyzer_ExportClause(t *testing.T) {
	t.Parallel()

	source := "const a = 1;\nconst b = 2;\nexport { a, b as renamed };\nexport default a;\n"
	res := NewJavaScriptAnalyzer().AnalyzeContent(source, "mod.js")
	assert.Contains(t, res.Exports, "a")
	assert.Contains(t, res.Exports, "renamed")
	assert.NotContains(t, res.Exports, "b")
}

func TestJavaScriptAnalyzer_BareArgArrow(t *testing.T) {
	t.Parallel()

	res := NewJavaScriptAnalyzer().AnalyzeContent("const double = x => x * 2;\n", "m.js")
	require.Len(t, res.Functions, 1)
	assert.Equal(t, "double", res.Functions[0].Name)
	assert.Equal(t, []string{"x"}, res.Functions[0].Args)
}

func TestJavaScriptAnalyzer_RequireBindings(t *testing.T) {
	t.Parallel()

	src := "const fs = require('fs');\nconst { join, resolve: res } = require('path');\n"
	result := NewJavaScriptAnalyzer().AnalyzeContent(src, "a.js")
	require.Len(t, result.Imports, 3)

	fs := result.Imports[0]
	assert.Equal(t, "require", fs.Kind)
	assert.Equal(t, "fs", fs.Name, "the single bound identifier is the import's name")
	assert.Empty(t, fs.Alias)

	join := result.Imports[1]
	assert.Equal(t, "join", join.Name)
	assert.Equal(t, "path", join.Module)

	renamed := result.Imports[2]
	assert.Equal(t, "resolve", renamed.Name)
	assert.Equal(t, "res", renamed.Alias)
}
