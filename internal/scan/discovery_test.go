package scan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for FileDiscovery:
// - Code and docs patterns partition discovered files
// - Ignore patterns drop both direct matches and directory subtrees
// - Root-level files match "**/" prefixed patterns
// - The .codeatlas directory is always skipped
// - Invalid glob patterns fail construction

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := []string{}
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestFileDiscovery_PartitionsCodeAndDocs(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app/main.py":    "print(1)\n",
		"web/index.html": "<p>hi</p>\n",
		"README.md":      "# readme\n",
		"docs/guide.md":  "# guide\n",
		"notes.txt":      "unmatched\n",
	})

	fd, err := NewFileDiscovery(root,
		[]string{"**/*.py", "**/*.html"},
		[]string{"**/*.md"},
		nil)
	require.NoError(t, err)

	code, docs, err := fd.DiscoverFiles()
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"app/main.py", "web/index.html"}, relPaths(t, root, code))
	assert.ElementsMatch(t, []string{"README.md", "docs/guide.md"}, relPaths(t, root, docs))
}

func TestFileDiscovery_IgnoresDirectoriesAndAtlasDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/app.py":            "x = 1\n",
		"node_modules/lib.py":   "x = 2\n",
		"vendor/dep/helper.py":  "x = 3\n",
		".codeatlas/config.yml": "scan:\n",
		".codeatlas/cache.py":   "x = 4\n",
		"bundle.min.py":         "x = 5\n",
	})

	fd, err := NewFileDiscovery(root,
		[]string{"**/*.py"},
		nil,
		[]string{"node_modules/**", "vendor/**", "*.min.py"})
	require.NoError(t, err)

	code, _, err := fd.DiscoverFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{"src/app.py"}, relPaths(t, root, code))
}

func TestFileDiscovery_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewFileDiscovery(t.TempDir(), []string{"[invalid"}, nil, nil)
	assert.Error(t, err)
}

func TestFileDiscovery_PrunesNestedIgnoredTrees(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"pkg/node_modules/lib/dist.py": "x = 1\n",
		"pkg/mod.py":                   "x = 2\n",
	})

	fd, err := NewFileDiscovery(root, []string{"**/*.py"}, nil, []string{"**/node_modules/**"})
	require.NoError(t, err)

	code, _, err := fd.DiscoverFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"pkg/mod.py"}, relPaths(t, root, code))
}
