package analyzers

import (
	"regexp"
	"strings"

	"codeatlas/internal/analysis"
)

// JavaScriptAnalyzer extracts metadata from JavaScript sources using ordered
// line patterns. Declaration order of the patterns fixes tie-breaking: the
// first pattern that matches a line wins.
type JavaScriptAnalyzer struct {
	baseAnalyzer
}

// NewJavaScriptAnalyzer creates the JavaScript analyzer.
func NewJavaScriptAnalyzer() *JavaScriptAnalyzer {
	return &JavaScriptAnalyzer{
		baseAnalyzer: newBaseAnalyzer("javascript",
			[]string{".js", ".jsx", ".mjs", ".cjs"},
			jsComplexityWeights, "//"),
	}
}

var jsComplexityWeights = map[string]float64{
	"if (":   1,
	"if(":    1,
	"else":   1,
	"for (":  1,
	"for(":   1,
	"while":  1,
	"switch": 2,
	"case ":  0.5,
	"catch":  2,
	"&&":     0.5,
	"||":     0.5,
	"=>":     0.5,
	"await":  1,
	"async":  1.5,
}

// funcPattern pairs a compiled line pattern with the capture-group indices
// of the name, the optional async keyword, and the raw argument list.
type funcPattern struct {
	re       *regexp.Regexp
	kind     string
	nameIdx  int
	asyncIdx int
	argsIdx  int
}

// Ordered function patterns: named declaration, assigned function
// expression, parenthesized arrow, bare-argument arrow, object-literal
// method. First match wins.
var jsFunctionPatterns = []funcPattern{
	{
		re:      regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?(async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\((.*)\)`),
		kind:    "function",
		nameIdx: 2, asyncIdx: 1, argsIdx: 3,
	},
	{
		re:      regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(async\s+)?function\s*\*?\s*\((.*)\)`),
		kind:    "function",
		nameIdx: 1, asyncIdx: 2, argsIdx: 3,
	},
	{
		re:      regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(async\s+)?\((.*)\)\s*=>`),
		kind:    "arrow_function",
		nameIdx: 1, asyncIdx: 2, argsIdx: 3,
	},
	{
		re:      regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(async\s+)?([A-Za-z_$][\w$]*)\s*=>`),
		kind:    "arrow_function",
		nameIdx: 1, asyncIdx: 2, argsIdx: 3,
	},
	{
		re:      regexp.MustCompile(`^\s*([A-Za-z_$][\w$]*)\s*:\s*(async\s+)?function\s*\((.*)\)`),
		kind:    "method",
		nameIdx: 1, asyncIdx: 2, argsIdx: 3,
	},
}

var jsClassPattern = regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?class\s+([A-Za-z_$][\w$]*)(?:\s+extends\s+([A-Za-z_$][\w$.]*))?`)

var jsMethodPattern = regexp.MustCompile(`^\s*(?:(static)\s+)?(?:(async)\s+)?(?:(?:get|set)\s+)?\*?\s*([A-Za-z_$#][\w$]*)\s*\((.*)\)\s*\{`)

// Keywords that look like method headers inside a class body but are
// control flow.
var jsReservedHeads = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true,
	"catch": true, "return": true, "function": true, "new": true,
}

var (
	jsImportSideEffect = regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]`)
	jsImportFrom       = regexp.MustCompile(`^\s*import\s+(type\s+)?(.+?)\s+from\s+['"]([^'"]+)['"]`)
	jsRequire          = regexp.MustCompile(`^\s*(?:const|let|var)\s+(?:\{([^}]*)\}|([A-Za-z_$][\w$]*))\s*=\s*require\(\s*['"]([^'"]+)['"]`)
)

var (
	jsExportDefault = regexp.MustCompile(`^\s*export\s+default\s+([A-Za-z_$][\w$]*)\s*;?\s*$`)
	jsExportDecl    = regexp.MustCompile(`^\s*export\s+(?:default\s+)?(?:async\s+)?(?:abstract\s+)?(?:function\s*\*?|class|const\s+enum|const|let|var|interface|type|enum)\s+([A-Za-z_$][\w$]*)`)
	jsExportClause  = regexp.MustCompile(`^\s*export\s*\{([^}]*)\}`)
	jsModuleExports = regexp.MustCompile(`module\.exports\s*=\s*([A-Za-z_$][\w$]*)`)
	jsExportsMember = regexp.MustCompile(`^\s*(?:module\.)?exports\.([A-Za-z_$][\w$]*)\s*=`)
)

var jsPatternProbes = []patternProbe{
	{"asynchronous", []string{"async ", "await ", ".then(", "Promise"}},
	{"object_oriented", []string{"class "}},
	{"functional", []string{".map(", ".filter(", ".reduce(", "=>"}},
	{"module_system", []string{"import ", "export ", "require("}},
	{"dom_manipulation", []string{"document.", "querySelector", "getElementById"}},
	{"jquery", []string{"$(", "jQuery"}},
	{"error_handling", []string{"try {", "try{", "catch ("}},
	{"callbacks", []string{"callback", "setTimeout", "setInterval"}},
}

// AnalyzeContent extracts functions, classes, imports, exports, and pattern
// tags from JavaScript source.
func (a *JavaScriptAnalyzer) AnalyzeContent(content, path string) *analysis.Result {
	res := analysis.NewResult(a.language)
	lines := strings.Split(content, "\n")

	classes, bodyLines := scanJSClasses(lines, 0)
	res.Classes = append(res.Classes, classes...)
	res.Functions = append(res.Functions, scanJSFunctions(lines, 0, bodyLines)...)

	extractJSImports(lines, res)
	extractJSExports(lines, res)
	detectPatterns(content, jsPatternProbes, res)
	return res
}

// scanJSFunctions runs the ordered function patterns over each line outside
// class bodies. offset shifts reported line numbers, which lets the HTML
// analyzer delegate embedded <script> content while keeping numbers relative
// to the enclosing document.
func scanJSFunctions(lines []string, offset int, skip map[int]bool) []analysis.Function {
	var functions []analysis.Function
	for i, line := range lines {
		if skip[i] {
			continue
		}
		for _, pat := range jsFunctionPatterns {
			match := pat.re.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			fn := analysis.Function{
				Name:      match[pat.nameIdx],
				Line:      offset + i + 1,
				Signature: strings.TrimSpace(line),
				Args:      jsArgNames(match[pat.argsIdx], pat.kind),
				Kind:      pat.kind,
				IsAsync:   strings.TrimSpace(match[pat.asyncIdx]) == "async",
				Doc:       findDocComment(lines, i),
			}
			functions = append(functions, fn)
			break
		}
	}
	return functions
}

// scanJSClasses locates class headers and enumerates their methods through
// the scope scanner. The returned set holds the 0-based indexes of all lines
// inside class bodies, so callers can exclude them from top-level scans.
func scanJSClasses(lines []string, offset int) ([]analysis.Class, map[int]bool) {
	var classes []analysis.Class
	bodyLines := make(map[int]bool)

	for i := 0; i < len(lines); i++ {
		match := jsClassPattern.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		class := analysis.Class{
			Name:    match[1],
			Line:    offset + i + 1,
			Extends: match[2],
			Methods: []analysis.Function{},
			Doc:     findDocComment(lines, i),
		}

		end := scanBraceBody(lines, i, func(lineNo int, line string) {
			bodyLines[lineNo-1] = true
			if m := jsMethodPattern.FindStringSubmatch(line); m != nil && !jsReservedHeads[m[3]] {
				class.Methods = append(class.Methods, analysis.Function{
					Name:     m[3],
					Line:     offset + lineNo,
					Args:     jsArgNames(m[4], "method"),
					Kind:     "method",
					IsStatic: m[1] == "static",
					IsAsync:  m[2] == "async",
					Doc:      findDocComment(lines, lineNo-1),
				})
			}
		})

		classes = append(classes, class)
		i = end
	}
	return classes, bodyLines
}

// jsArgNames splits a raw parameter list and reduces each entry to its name,
// dropping default values. For bare-argument arrows the raw text is already
// the single name.
func jsArgNames(raw, kind string) []string {
	if kind == "arrow_function" && !strings.ContainsAny(raw, ",=:({[") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return []string{}
		}
		return []string{raw}
	}
	parts := splitArgs(raw)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name, _, _ := cutTopLevel(part, '=')
		names = append(names, strings.TrimSpace(name))
	}
	return names
}

func extractJSImports(lines []string, res *analysis.Result) {
	for i, line := range lines {
		if m := jsImportFrom.FindStringSubmatch(line); m != nil {
			appendJSImportBindings(res, m[2], m[3], m[1] != "", i+1, strings.TrimSpace(line))
			continue
		}
		if m := jsImportSideEffect.FindStringSubmatch(line); m != nil {
			res.Imports = append(res.Imports, analysis.Import{
				Module: m[1], Line: i + 1, Statement: strings.TrimSpace(line), Kind: "side_effect",
			})
			continue
		}
		if m := jsRequire.FindStringSubmatch(line); m != nil {
			stmt := strings.TrimSpace(line)
			if m[2] != "" {
				res.Imports = append(res.Imports, analysis.Import{
					Module: m[3], Name: m[2], Line: i + 1, Statement: stmt, Kind: "require",
				})
				continue
			}
			// Destructured require: one record per binding, `base: local`
			// renames carried like `a as b` in import clauses.
			for _, name := range strings.Split(m[1], ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				imp := analysis.Import{Module: m[3], Line: i + 1, Statement: stmt, Kind: "require"}
				if base, alias, ok := strings.Cut(name, ":"); ok {
					imp.Name = strings.TrimSpace(base)
					imp.Alias = strings.TrimSpace(alias)
				} else {
					imp.Name = name
				}
				res.Imports = append(res.Imports, imp)
			}
		}
	}
}

// appendJSImportBindings explodes an import clause into one record per
// binding: default ident, `* as ns`, and `{ a, b as c }` names.
func appendJSImportBindings(res *analysis.Result, clause, module string, typeOnly bool, line int, stmt string) {
	kindFor := func(kind string) string {
		if typeOnly {
			return "type_only"
		}
		return kind
	}

	clause = strings.TrimSpace(clause)
	if ns := regexp.MustCompile(`\*\s+as\s+([A-Za-z_$][\w$]*)`).FindStringSubmatch(clause); ns != nil {
		res.Imports = append(res.Imports, analysis.Import{
			Module: module, Alias: ns[1], Line: line, Statement: stmt, Kind: kindFor("namespace"),
		})
		return
	}

	// Default binding before any named group.
	if head, _, ok := strings.Cut(clause, "{"); ok || !strings.Contains(clause, "{") {
		head = strings.TrimSuffix(strings.TrimSpace(head), ",")
		if head != "" && !strings.Contains(head, "{") {
			res.Imports = append(res.Imports, analysis.Import{
				Module: module, Name: head, Line: line, Statement: stmt, Kind: kindFor("default"),
			})
		}
	}

	start := strings.Index(clause, "{")
	end := strings.LastIndex(clause, "}")
	if start == -1 || end <= start {
		return
	}
	for _, name := range strings.Split(clause[start+1:end], ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		imp := analysis.Import{Module: module, Line: line, Statement: stmt, Kind: kindFor("named")}
		if base, alias, ok := strings.Cut(name, " as "); ok {
			imp.Name = strings.TrimSpace(base)
			imp.Alias = strings.TrimSpace(alias)
		} else {
			imp.Name = name
		}
		res.Imports = append(res.Imports, imp)
	}
}

func extractJSExports(lines []string, res *analysis.Result) {
	seen := make(map[string]bool)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name != "" && !seen[name] {
			seen[name] = true
			res.Exports = append(res.Exports, name)
		}
	}

	for _, line := range lines {
		if m := jsExportClause.FindStringSubmatch(line); m != nil {
			for _, name := range strings.Split(m[1], ",") {
				if _, alias, ok := strings.Cut(name, " as "); ok {
					add(alias)
				} else {
					add(name)
				}
			}
			continue
		}
		if m := jsExportDecl.FindStringSubmatch(line); m != nil {
			add(m[1])
			continue
		}
		if m := jsExportDefault.FindStringSubmatch(line); m != nil {
			add(m[1])
			continue
		}
		if m := jsModuleExports.FindStringSubmatch(line); m != nil {
			add(m[1])
			continue
		}
		if m := jsExportsMember.FindStringSubmatch(line); m != nil {
			add(m[1])
		}
	}
}
