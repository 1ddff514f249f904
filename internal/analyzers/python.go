package analyzers

import (
	"regexp"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"codeatlas/internal/analysis"
)

// PythonAnalyzer walks a verified tree-sitter syntax tree. When the tree
// cannot be built or contains error nodes, it degrades to a line-pattern
// fallback that returns the same result shape and never fails.
type PythonAnalyzer struct {
	baseAnalyzer
	tsLanguage *sitter.Language
}

// NewPythonAnalyzer creates the Python analyzer.
func NewPythonAnalyzer() *PythonAnalyzer {
	return &PythonAnalyzer{
		baseAnalyzer: newBaseAnalyzer("python",
			[]string{".py", ".pyw"},
			pythonComplexityWeights, "#"),
		tsLanguage: sitter.NewLanguage(python.Language()),
	}
}

var pythonComplexityWeights = map[string]float64{
	"if ":    1,
	"elif ":  1,
	"else:":  1,
	"for ":   1,
	"while ": 1,
	"try:":   1,
	"except": 2,
	"with ":  1,
	"lambda": 1,
	"yield":  1.5,
	"async ": 1.5,
	" and ":  0.5,
	" or ":   0.5,
}

var pythonPatternProbes = []patternProbe{
	{"asynchronous", []string{"async def", "await ", "asyncio"}},
	{"object_oriented", []string{"class "}},
	{"decorators", []string{"@"}},
	{"type_hints", []string{"->", "typing", ": int", ": str"}},
	{"context_managers", []string{"with "}},
	{"generators", []string{"yield"}},
	{"error_handling", []string{"try:", "except"}},
	{"functional", []string{"lambda", "map(", "filter("}},
	{"dataclasses", []string{"@dataclass"}},
}

// AnalyzeContent parses the source and extracts functions, classes, imports,
// and exports. Parse failure degrades to the regex fallback.
func (a *PythonAnalyzer) AnalyzeContent(content, path string) *analysis.Result {
	res := analysis.NewResult(a.language)
	source := []byte(content)

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(a.tsLanguage)

	tree := parser.Parse(source, nil)
	if tree == nil {
		a.fallback(content, res)
		return res
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil || root.HasError() {
		a.fallback(content, res)
		return res
	}

	a.extractStructure(root, source, res)
	a.extractImports(root, source, res)
	res.Exports = a.collectExports(root, source)
	detectPatterns(content, pythonPatternProbes, res)
	return res
}

// extractStructure walks the tree for function and class definitions.
// Class bodies are pruned so their methods appear only on the class record.
func (a *PythonAnalyzer) extractStructure(root *sitter.Node, source []byte, res *analysis.Result) {
	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "class_definition":
			res.Classes = append(res.Classes, a.extractClass(n, source))
			return false
		case "function_definition":
			res.Functions = append(res.Functions, a.extractFunction(n, source, ""))
			return false
		}
		return true
	})
}

// extractFunction builds a function record from a function_definition node.
// kindOverride forces the type tag ("method" for class members).
func (a *PythonAnalyzer) extractFunction(node *sitter.Node, source []byte, kindOverride string) analysis.Function {
	isAsync := strings.HasPrefix(nodeText(node, source), "async")
	decorators := decoratorNames(node, source)

	kind := "function"
	if isAsync {
		kind = "async_function"
	}
	for _, dec := range decorators {
		if dec == "property" || dec == "staticmethod" || dec == "classmethod" {
			kind = "method"
			break
		}
	}
	if kindOverride != "" {
		kind = kindOverride
	}

	fn := analysis.Function{
		Name:       nodeText(node.ChildByFieldName("name"), source),
		Line:       nodeLine(node),
		Signature:  pythonSignature(node, source),
		Args:       pythonArgNames(node.ChildByFieldName("parameters"), source),
		Doc:        pythonDocstring(node.ChildByFieldName("body"), source),
		Kind:       kind,
		IsAsync:    isAsync,
		ReturnType: nodeText(node.ChildByFieldName("return_type"), source),
		Decorators: decorators,
	}
	for _, dec := range decorators {
		if dec == "staticmethod" {
			fn.IsStatic = true
		}
	}
	return fn
}

func (a *PythonAnalyzer) extractClass(node *sitter.Node, source []byte) analysis.Class {
	class := analysis.Class{
		Name:       nodeText(node.ChildByFieldName("name"), source),
		Line:       nodeLine(node),
		Methods:    []analysis.Function{},
		Doc:        pythonDocstring(node.ChildByFieldName("body"), source),
		Decorators: decoratorNames(node, source),
	}

	// Base identifiers, including dotted attribute bases.
	if bases := node.ChildByFieldName("superclasses"); bases != nil {
		for i := 0; i < int(bases.ChildCount()); i++ {
			child := bases.Child(uint(i))
			switch child.Kind() {
			case "identifier", "attribute":
				if class.Extends == "" {
					class.Extends = nodeText(child, source)
				} else {
					class.Implements = append(class.Implements, nodeText(child, source))
				}
			}
		}
	}

	if body := node.ChildByFieldName("body"); body != nil {
		for i := 0; i < int(body.ChildCount()); i++ {
			child := body.Child(uint(i))
			switch child.Kind() {
			case "function_definition":
				class.Methods = append(class.Methods, a.extractFunction(child, source, "method"))
			case "decorated_definition":
				if def := child.ChildByFieldName("definition"); def != nil && def.Kind() == "function_definition" {
					class.Methods = append(class.Methods, a.extractFunction(def, source, "method"))
				}
			}
		}
	}
	return class
}

func (a *PythonAnalyzer) extractImports(root *sitter.Node, source []byte, res *analysis.Result) {
	walkTree(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			a.extractPlainImport(n, source, res)
			return false
		case "import_from_statement":
			a.extractFromImport(n, source, res)
			return false
		}
		return true
	})
}

func (a *PythonAnalyzer) extractPlainImport(node *sitter.Node, source []byte, res *analysis.Result) {
	stmt := strings.TrimSpace(nodeText(node, source))
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		switch child.Kind() {
		case "dotted_name":
			res.Imports = append(res.Imports, analysis.Import{
				Module: nodeText(child, source), Line: nodeLine(node), Statement: stmt, Kind: "import",
			})
		case "aliased_import":
			res.Imports = append(res.Imports, analysis.Import{
				Module:    nodeText(child.ChildByFieldName("name"), source),
				Alias:     nodeText(child.ChildByFieldName("alias"), source),
				Line:      nodeLine(node),
				Statement: stmt,
				Kind:      "import",
			})
		}
	}
}

func (a *PythonAnalyzer) extractFromImport(node *sitter.Node, source []byte, res *analysis.Result) {
	stmt := strings.TrimSpace(nodeText(node, source))
	module := ""
	level := 0

	if mod := node.ChildByFieldName("module_name"); mod != nil {
		text := nodeText(mod, source)
		level = len(text) - len(strings.TrimLeft(text, "."))
		module = strings.TrimLeft(text, ".")
	}

	record := func(name, alias string) {
		res.Imports = append(res.Imports, analysis.Import{
			Module: module, Name: name, Alias: alias,
			Line: nodeLine(node), Statement: stmt, Kind: "from_import", Level: level,
		})
	}

	sawImport := false
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child.Kind() == "import" {
			sawImport = true
			continue
		}
		if !sawImport {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			record(nodeText(child, source), "")
		case "aliased_import":
			record(nodeText(child.ChildByFieldName("name"), source),
				nodeText(child.ChildByFieldName("alias"), source))
		case "wildcard_import":
			record("*", "")
		}
	}
}

// collectExports returns the explicit __all__ list when present, otherwise
// every top-level public function and class name.
func (a *PythonAnalyzer) collectExports(root *sitter.Node, source []byte) []string {
	if explicit := pythonDunderAll(root, source); explicit != nil {
		return explicit
	}

	exports := []string{}
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(uint(i))
		if child.Kind() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}
		switch child.Kind() {
		case "function_definition", "class_definition":
			name := nodeText(child.ChildByFieldName("name"), source)
			if name != "" && !strings.HasPrefix(name, "_") {
				exports = append(exports, name)
			}
		}
	}
	return exports
}

// pythonDunderAll finds a top-level `__all__ = [...]` assignment and returns
// its string members, or nil when absent.
func pythonDunderAll(root *sitter.Node, source []byte) []string {
	for i := 0; i < int(root.ChildCount()); i++ {
		stmt := root.Child(uint(i))
		if stmt.Kind() != "expression_statement" {
			continue
		}
		assign := findChildByKind(stmt, "assignment")
		if assign == nil {
			continue
		}
		left := assign.ChildByFieldName("left")
		if left == nil || nodeText(left, source) != "__all__" {
			continue
		}
		right := assign.ChildByFieldName("right")
		if right == nil {
			continue
		}
		exports := []string{}
		for _, str := range findChildrenByKind(right, "string") {
			exports = append(exports, strings.Trim(nodeText(str, source), `'"`))
		}
		return exports
	}
	return nil
}

// decoratorNames collects decorator base identifiers from the surrounding
// decorated_definition, resolving simple-name, attribute-access, and call
// forms to their final identifier.
func decoratorNames(node *sitter.Node, source []byte) []string {
	parent := node.Parent()
	if parent == nil || parent.Kind() != "decorated_definition" {
		return nil
	}
	var names []string
	for _, dec := range findChildrenByKind(parent, "decorator") {
		text := strings.TrimPrefix(strings.TrimSpace(nodeText(dec, source)), "@")
		if idx := strings.Index(text, "("); idx != -1 {
			text = text[:idx]
		}
		if idx := strings.LastIndex(text, "."); idx != -1 {
			text = text[idx+1:]
		}
		if text != "" {
			names = append(names, text)
		}
	}
	return names
}

// pythonArgNames collects positional and keyword-only argument names,
// keeping * and ** markers on splat parameters.
func pythonArgNames(params *sitter.Node, source []byte) []string {
	args := []string{}
	if params == nil {
		return args
	}
	for i := 0; i < int(params.ChildCount()); i++ {
		child := params.Child(uint(i))
		switch child.Kind() {
		case "identifier":
			args = append(args, nodeText(child, source))
		case "typed_parameter":
			if ident := findChildByKind(child, "identifier"); ident != nil {
				args = append(args, nodeText(ident, source))
			}
		case "default_parameter", "typed_default_parameter":
			args = append(args, nodeText(child.ChildByFieldName("name"), source))
		case "list_splat_pattern", "dictionary_splat_pattern":
			args = append(args, nodeText(child, source))
		}
	}
	return args
}

// pythonDocstring returns the first string-literal statement of a body.
func pythonDocstring(body *sitter.Node, source []byte) string {
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	first := body.Child(0)
	if first.Kind() != "expression_statement" {
		return ""
	}
	str := findChildByKind(first, "string")
	if str == nil {
		return ""
	}
	text := nodeText(str, source)
	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, quote) && strings.HasSuffix(text, quote) && len(text) >= 2*len(quote) {
			return strings.TrimSpace(text[len(quote) : len(text)-len(quote)])
		}
	}
	return strings.TrimSpace(text)
}

// pythonSignature renders "name(params) -> ret" from the definition node.
func pythonSignature(node *sitter.Node, source []byte) string {
	sig := nodeText(node.ChildByFieldName("name"), source)
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig += nodeText(params, source)
	} else {
		sig += "()"
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig += " -> " + nodeText(ret, source)
	}
	return sig
}

// Fallback line patterns used when the syntax tree is unavailable.
var (
	pyFallbackDef    = regexp.MustCompile(`^\s*(async\s+)?def\s+(\w+)\s*\((.*)\)\s*(?:->\s*([^:]+))?:`)
	pyFallbackClass  = regexp.MustCompile(`^\s*class\s+(\w+)\s*(?:\(([^)]*)\))?\s*:`)
	pyFallbackImport = regexp.MustCompile(`^\s*import\s+([\w.]+)(?:\s+as\s+(\w+))?`)
	pyFallbackFrom   = regexp.MustCompile(`^\s*from\s+([\w.]+)\s+import\s+(.+)`)
)

// fallback extracts def/class/import lines with regexes. Exports and
// patterns stay empty: they are not inferable without a verified tree.
func (a *PythonAnalyzer) fallback(content string, res *analysis.Result) {
	for i, line := range strings.Split(content, "\n") {
		if m := pyFallbackDef.FindStringSubmatch(line); m != nil {
			kind := "function"
			if m[1] != "" {
				kind = "async_function"
			}
			res.Functions = append(res.Functions, analysis.Function{
				Name:       m[2],
				Line:       i + 1,
				Signature:  strings.TrimSpace(line),
				Args:       pyFallbackArgs(m[3]),
				Kind:       kind,
				IsAsync:    m[1] != "",
				ReturnType: strings.TrimSpace(m[4]),
			})
			continue
		}
		if m := pyFallbackClass.FindStringSubmatch(line); m != nil {
			class := analysis.Class{Name: m[1], Line: i + 1, Methods: []analysis.Function{}}
			if bases := splitArgs(m[2]); len(bases) > 0 {
				class.Extends = bases[0]
				class.Implements = bases[1:]
			}
			res.Classes = append(res.Classes, class)
			continue
		}
		if m := pyFallbackFrom.FindStringSubmatch(line); m != nil {
			for _, name := range splitArgs(m[2]) {
				imp := analysis.Import{
					Module: m[1], Line: i + 1, Statement: strings.TrimSpace(line), Kind: "from_import",
				}
				if base, alias, ok := strings.Cut(name, " as "); ok {
					imp.Name = strings.TrimSpace(base)
					imp.Alias = strings.TrimSpace(alias)
				} else {
					imp.Name = name
				}
				res.Imports = append(res.Imports, imp)
			}
			continue
		}
		if m := pyFallbackImport.FindStringSubmatch(line); m != nil {
			res.Imports = append(res.Imports, analysis.Import{
				Module: m[1], Alias: m[2], Line: i + 1,
				Statement: strings.TrimSpace(line), Kind: "import",
			})
		}
	}
}

// pyFallbackArgs splits a fallback parameter list, dropping annotations,
// defaults, and the bare * separator.
func pyFallbackArgs(raw string) []string {
	parts := splitArgs(raw)
	args := make([]string, 0, len(parts))
	for _, part := range parts {
		name, _, _ := cutTopLevel(part, '=')
		name, _, _ = cutTopLevel(name, ':')
		name = strings.TrimSpace(name)
		if name == "" || name == "*" || name == "/" {
			continue
		}
		args = append(args, name)
	}
	return args
}
