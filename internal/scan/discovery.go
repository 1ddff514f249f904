package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// patternSet is a compiled group of glob patterns. A pattern with a "**/"
// prefix is compiled twice, with and without the prefix, so "**/*.py"
// matches a root-level "main.py" as well as nested paths.
type patternSet []glob.Glob

func compilePatterns(patterns []string) (patternSet, error) {
	set := make(patternSet, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		set = append(set, g)

		if rest := strings.TrimPrefix(pattern, "**/"); rest != pattern {
			g, err := glob.Compile(rest, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			set = append(set, g)
		}
	}
	return set, nil
}

func (ps patternSet) match(relPath string) bool {
	for _, g := range ps {
		if g.Match(relPath) {
			return true
		}
	}
	return false
}

// FileDiscovery walks a tree and partitions the files that survive the
// ignore set into code and docs, by glob patterns over slash-normalized
// paths relative to the root.
type FileDiscovery struct {
	rootDir string
	code    patternSet
	docs    patternSet
	ignore  patternSet
}

// NewFileDiscovery compiles the three pattern groups for the given root.
func NewFileDiscovery(rootDir string, codePatterns, docsPatterns, ignorePatterns []string) (*FileDiscovery, error) {
	code, err := compilePatterns(codePatterns)
	if err != nil {
		return nil, err
	}
	docs, err := compilePatterns(docsPatterns)
	if err != nil {
		return nil, err
	}
	ignore, err := compilePatterns(ignorePatterns)
	if err != nil {
		return nil, err
	}
	return &FileDiscovery{rootDir: rootDir, code: code, docs: docs, ignore: ignore}, nil
}

// DiscoverFiles walks the root and returns code and doc files. Ignored
// directories are pruned whole rather than tested file by file; a code
// match wins over a docs match when patterns overlap.
func (fd *FileDiscovery) DiscoverFiles() (codeFiles []string, docFiles []string, err error) {
	codeFiles = []string{}
	docFiles = []string{}

	err = filepath.WalkDir(fd.rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if entry.IsDir() {
			// A directory is prunable when it matches an ignore pattern
			// directly or its subtree would ("node_modules" against
			// "node_modules/**"). The database directory is always pruned.
			if rel == ".codeatlas" || fd.ignore.match(rel) || fd.ignore.match(rel+"/**") {
				return filepath.SkipDir
			}
			return nil
		}

		if fd.ignore.match(rel) {
			return nil
		}
		switch {
		case fd.code.match(rel):
			codeFiles = append(codeFiles, path)
		case fd.docs.match(rel):
			docFiles = append(docFiles, path)
		}
		return nil
	})

	return codeFiles, docFiles, err
}
