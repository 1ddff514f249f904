package analyzers

// Registry routes file paths to the analyzer that claims their extension.
// Registration order is the precedence order: the first analyzer whose
// extension set contains the path's extension wins. The built-in sets are
// disjoint, so order only matters if a caller registers an overlapping one.
type Registry struct {
	analyzers []Analyzer
}

// NewRegistry returns a registry holding every built-in analyzer.
func NewRegistry() *Registry {
	return &Registry{
		analyzers: []Analyzer{
			NewPythonAnalyzer(),
			NewTypeScriptAnalyzer(),
			NewJavaScriptAnalyzer(),
			NewPHPAnalyzer(),
			NewHTMLAnalyzer(),
			NewCSSAnalyzer(),
			NewSQLAnalyzer(),
			NewMarkdownAnalyzer(),
		},
	}
}

// Register appends an analyzer at the end of the precedence order.
func (r *Registry) Register(a Analyzer) {
	r.analyzers = append(r.analyzers, a)
}

// ForPath returns the first analyzer that can analyze path, or nil when the
// file type is unsupported.
func (r *Registry) ForPath(path string) Analyzer {
	for _, a := range r.analyzers {
		if a.CanAnalyze(path) {
			return a
		}
	}
	return nil
}

// ForLanguage returns the analyzer with the given language label, or nil.
func (r *Registry) ForLanguage(language string) Analyzer {
	for _, a := range r.analyzers {
		if a.Language() == language {
			return a
		}
	}
	return nil
}

// Analyzers returns the registered analyzers in precedence order.
func (r *Registry) Analyzers() []Analyzer {
	return r.analyzers
}

// Languages returns the language labels in precedence order.
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.analyzers))
	for _, a := range r.analyzers {
		languages = append(languages, a.Language())
	}
	return languages
}
