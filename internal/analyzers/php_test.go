package analyzers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for PHPAnalyzer:
// - Extract namespaces
// - Imports: use, use function, aliased use, require/include variants
// - Classes: final/abstract flags, extends, implements list, doc comments
// - Class members: typed properties with visibility and defaults, methods
//   with visibility, variadic and by-reference parameters, return types
// - Interfaces and traits with their methods
// - Top-level functions are not polluted by class/interface/trait bodies

const phpSample = `<?php

namespace App\Services;

use App\Models\User as UserModel;
use function App\Helpers\format;

require_once 'bootstrap.php';

/**
 * Sends notifications.
 */
final class Notifier extends BaseService implements Contract, Loggable
{
    private static int $count = 0;

    public function send(User $user, string ...$channels): bool
    {
        return true;
    }
}

interface Contract
{
    public function send(User $user): bool;
}

trait Logging
{
    public function log(string $message): void
    {
    }
}

function format_name(string $first, string &$last = null): string
{
    return $first . ' ' . $last;
}
`

func TestPHPAnalyzer_NamespaceAndImports(t *testing.T) {
	t.Parallel()

	res := NewPHPAnalyzer().AnalyzeContent(phpSample, "notifier.php")

	require.Len(t, res.Namespaces, 1)
	assert.Equal(t, `App\Services`, res.Namespaces[0].Name)
	assert.Equal(t, 3, res.Namespaces[0].Line)

	model := findImport(t, res.Imports, `App\Models\User`)
	assert.Equal(t, "use", model.Kind)
	assert.Equal(t, "UserModel", model.Alias)

	helper := findImport(t, res.Imports, `App\Helpers\format`)
	assert.Equal(t, "use", helper.Kind)

	boot := findImport(t, res.Imports, "bootstrap.php")
	assert.Equal(t, "require_once", boot.Kind)
}

func TestPHPAnalyzer_Classes(t *testing.T) {
	t.Parallel()

	res := NewPHPAnalyzer().AnalyzeContent(phpSample, "notifier.php")
	notifier := findClass(t, res.Classes, "Notifier")

	assert.Equal(t, 13, notifier.Line)
	assert.True(t, notifier.IsFinal)
	assert.False(t, notifier.IsAbstract)
	assert.Equal(t, "BaseService", notifier.Extends)
	assert.Equal(t, []string{"Contract", "Loggable"}, notifier.Implements)
	assert.Equal(t, "Sends notifications.", notifier.Doc)

	require.Len(t, notifier.Properties, 1)
	count := notifier.Properties[0]
	assert.Equal(t, "count", count.Name)
	assert.Equal(t, "int", count.Type)
	assert.Equal(t, "0", count.Default)
	assert.Equal(t, "private", count.Visibility)
	assert.True(t, count.IsStatic)

	require.Len(t, notifier.Methods, 1)
	send := notifier.Methods[0]
	assert.Equal(t, "send", send.Name)
	assert.Equal(t, "method", send.Kind)
	assert.Equal(t, "public", send.Visibility)
	assert.Equal(t, "bool", send.ReturnType)
	assert.Equal(t, []string{"$user", "...$channels"}, send.Args)
}

func TestPHPAnalyzer_InterfacesAndTraits(t *testing.T) {
	t.Parallel()

	res := NewPHPAnalyzer().AnalyzeContent(phpSample, "notifier.php")

	require.Len(t, res.Interfaces, 1)
	contract := res.Interfaces[0]
	assert.Equal(t, "Contract", contract.Name)
	require.Len(t, contract.Methods, 1)
	assert.Equal(t, "send", contract.Methods[0].Name)
	assert.Equal(t, "bool", contract.Methods[0].ReturnType)

	require.Len(t, res.Traits, 1)
	logging := res.Traits[0]
	assert.Equal(t, "Logging", logging.Name)
	require.Len(t, logging.Methods, 1)
	assert.Equal(t, "log", logging.Methods[0].Name)
}

func TestPHPAnalyzer_TopLevelFunctions(t *testing.T) {
	t.Parallel()

	res := NewPHPAnalyzer().AnalyzeContent(phpSample, "notifier.php")
	require.Len(t, res.Functions, 1, "methods must not leak into top-level functions")

	format := res.Functions[0]
	assert.Equal(t, "format_name", format.Name)
	assert.Equal(t, "function", format.Kind)
	assert.Equal(t, "string", format.ReturnType)
	assert.Equal(t, []string{"$first", "&$last"}, format.Args)
}

func TestPHPAnalyzer_Patterns(t *testing.T) {
	t.Parallel()

	res := NewPHPAnalyzer().AnalyzeContent(phpSample, "notifier.php")
	assert.Contains(t, res.Patterns, "object_oriented")
	assert.Contains(t, res.Patterns, "namespaces")
	assert.Contains(t, res.Patterns, "traits")
	assert.NotContains(t, res.Patterns, "superglobals")
}
