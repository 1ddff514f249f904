package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for TypeScriptAnalyzer:
// - Extract interfaces with typed properties, optional markers, and methods
// - Extract type aliases and enums (members, const enums)
// - Extract classes: abstract flag, generic extends, implements, typed
//   methods with visibility/static/async, parameter properties
// - Extract functions with return types; typed args keep bare names
// - type-only imports are tagged
// - Exported declarations of every kind land in Exports

const tsSample = `import type { Config } from './config';
import axios from 'axios';

export interface User {
  id: number;
  name?: string;
  greet(prefix: string): string;
}

export type UserID = string | number;

export enum Status {
  Active = 1,
  Disabled,
}

export abstract class Repo<T> extends Base<T> implements Storable {
  private items: Map<string, T>;

  constructor(private readonly name: string) {
    this.name = name;
  }

  async fetch(id: string): Promise<T> {
    return this.items.get(id);
  }
}

export function formatUser(user: User, prefix = 'Mr'): string {
  return prefix + user.name;
}

export const sum = (a: number, b: number): number => a + b;
`

func TestTypeScriptAnalyzer_Interfaces(t *testing.T) {
	t.Parallel()

	res := NewTypeScriptAnalyzer().AnalyzeContent(tsSample, "app.ts")
	require.Len(t, res.Interfaces, 1)

	user := res.Interfaces[0]
	assert.Equal(t, "User", user.Name)
	assert.Equal(t, 4, user.Line)

	require.Len(t, user.Properties, 2)
	assert.Equal(t, "id", user.Properties[0].Name)
	assert.Equal(t, "number", user.Properties[0].Type)
	assert.False(t, user.Properties[0].Optional)
	assert.Equal(t, "name", user.Properties[1].Name)
	assert.True(t, user.Properties[1].Optional)

	require.Len(t, user.Methods, 1)
	assert.Equal(t, "greet", user.Methods[0].Name)
	assert.Equal(t, []string{"prefix"}, user.Methods[0].Args)
	assert.Equal(t, "string", user.Methods[0].ReturnType)
}

func TestTypeScriptAnalyzer_TypeAliasesAndEnums(t *testing.T) {
	t.Parallel()

	res := NewTypeScriptAnalyzer().AnalyzeContent(tsSample, "app.ts")

	require.Len(t, res.TypeAliases, 1)
	assert.Equal(t, "UserID", res.TypeAliases[0].Name)
	assert.Equal(t, "string | number", res.TypeAliases[0].Value)

	require.Len(t, res.Enums, 1)
	assert.Equal(t, "Status", res.Enums[0].Name)
	assert.Equal(t, []string{"Active", "Disabled"}, res.Enums[0].Members)
	assert.False(t, res.Enums[0].IsConst)
}

func TestTypeScriptAnalyzer_Classes(t *testing.T) {
	t.Parallel()

	res := NewTypeScriptAnalyzer().AnalyzeContent(tsSample, "app.ts")
	repo := findClass(t, res.Classes, "Repo")

	assert.True(t, repo.IsAbstract)
	assert.Equal(t, "Base<T>", repo.Extends)
	assert.Equal(t, []string{"Storable"}, repo.Implements)

	ctor := findFunction(t, repo.Methods, "constructor")
	assert.Equal(t, []string{"name"}, ctor.Args, "parameter property modifiers should be stripped")

	fetch := findFunction(t, repo.Methods, "fetch")
	assert.True(t, fetch.IsAsync)
	assert.Equal(t, "Promise<T>", fetch.ReturnType)
	assert.Equal(t, []string{"id"}, fetch.Args)
}

func TestTypeScriptAnalyzer_Functions(t *testing.T) {
	t.Parallel()

	res := NewTypeScriptAnalyzer().AnalyzeContent(tsSample, "app.ts")
	require.Len(t, res.Functions, 2)

	format := findFunction(t, res.Functions, "formatUser")
	assert.Equal(t, "function", format.Kind)
	assert.Equal(t, []string{"user", "prefix"}, format.Args)
	assert.Equal(t, "string", format.ReturnType)

	sum := findFunction(t, res.Functions, "sum")
	assert.Equal(t, "arrow_function", sum.Kind)
	assert.Equal(t, []string{"a", "b"}, sum.Args)
}

func TestTypeScriptAnalyzer_ImportsAndExports(t *testing.T) {
	t.Parallel()

	res := NewTypeScriptAnalyzer().AnalyzeContent(tsSample, "app.ts")

	config := findImport(t, res.Imports, "./config")
	assert.Equal(t, "type_only", config.Kind)
	assert.Equal(t, "Config", config.Name)

	ax := findImport(t, res.Imports, "axios")
	assert.Equal(t, "default", ax.Kind)

	for _, name := range []string{"User", "UserID", "Status", "Repo", "formatUser", "sum"} {
		assert.Contains(t, res.Exports, name)
	}
}

func TestTypeScriptAnalyzer_GenericArgsNotSplit(t *testing.T) {
	t.Parallel()

	source := "function index(items: Map<string, number>, keys: Array<string>): void {\n}\n"
	res := NewTypeScriptAnalyzer().AnalyzeContent(source, "util.ts")
	require.Len(t, res.Functions, 1)
	assert.Equal(t, []string{"items", "keys"}, res.Functions[0].Args)
}
