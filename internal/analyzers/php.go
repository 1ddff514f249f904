package analyzers

import (
	"regexp"
	"strings"

	"codeatlas/internal/analysis"
)

// PHPAnalyzer extracts metadata from PHP sources with ordered line patterns.
// Modifiers (public/private/protected/static/abstract/final) are read
// literally from the matched line; argument parsing detects reference,
// variadic, and default-value segments.
type PHPAnalyzer struct {
	baseAnalyzer
}

// NewPHPAnalyzer creates the PHP analyzer.
func NewPHPAnalyzer() *PHPAnalyzer {
	return &PHPAnalyzer{
		baseAnalyzer: newBaseAnalyzer("php",
			[]string{".php", ".phtml", ".php5"},
			phpComplexityWeights, "//"),
	}
}

var phpComplexityWeights = map[string]float64{
	"if (":    1,
	"if(":     1,
	"else":    1,
	"foreach": 1,
	"for (":   1,
	"for(":    1,
	"while":   1,
	"switch":  2,
	"case ":   0.5,
	"catch":   2,
	"&&":      0.5,
	"||":      0.5,
	"match":   1.5,
}

var (
	phpNamespacePattern = regexp.MustCompile(`^\s*namespace\s+([\w\\]+)\s*;`)

	phpUsePattern = regexp.MustCompile(`^\s*use\s+(?:(?:function|const)\s+)?([\w\\]+)(?:\s+as\s+(\w+))?\s*;`)

	phpIncludePattern = regexp.MustCompile(`(require|include)(_once)?\s*\(?\s*['"]([^'"]+)['"]`)

	phpFunctionPattern = regexp.MustCompile(`^\s*((?:(?:public|private|protected|static|abstract|final)\s+)*)function\s+&?(\w+)\s*\((.*)\)(?:\s*:\s*\??\s*([\w\\|]+))?`)

	phpClassPattern = regexp.MustCompile(`^\s*((?:abstract|final)\s+)?class\s+(\w+)(?:\s+extends\s+([\w\\]+))?(?:\s+implements\s+([\w\\,\s]+))?`)

	phpInterfacePattern = regexp.MustCompile(`^\s*interface\s+(\w+)(?:\s+extends\s+([\w\\,\s]+))?`)

	phpTraitPattern = regexp.MustCompile(`^\s*trait\s+(\w+)`)

	phpPropertyPattern = regexp.MustCompile(`^\s*((?:(?:public|private|protected|static|var|readonly)\s+)+)(\??[\w\\|]+\s+)?\$(\w+)(?:\s*=\s*([^;]+))?\s*;`)
)

var phpPatternProbes = []patternProbe{
	{"object_oriented", []string{"class ", "->", "::"}},
	{"namespaces", []string{"namespace "}},
	{"traits", []string{"trait ", "use "}},
	{"database", []string{"PDO", "mysqli", "->query(", "->prepare("}},
	{"error_handling", []string{"try {", "try{", "catch ("}},
	{"superglobals", []string{"$_GET", "$_POST", "$_SESSION", "$_SERVER", "$_COOKIE"}},
	{"closures", []string{"function (", "function(", "fn("}},
	{"templating", []string{"<?=", "echo "}},
}

// AnalyzeContent extracts functions, classes, traits, interfaces,
// namespaces, and imports from PHP source.
func (a *PHPAnalyzer) AnalyzeContent(content, path string) *analysis.Result {
	res := analysis.NewResult(a.language)
	lines := strings.Split(content, "\n")

	bodyLines := make(map[int]bool)
	a.extractClasses(lines, bodyLines, res)
	a.extractTraits(lines, bodyLines, res)
	a.extractInterfaces(lines, bodyLines, res)
	a.extractFunctions(lines, bodyLines, res)
	a.extractNamespaces(lines, res)
	a.extractImports(lines, res)
	detectPatterns(content, phpPatternProbes, res)
	return res
}

func (a *PHPAnalyzer) extractFunctions(lines []string, skip map[int]bool, res *analysis.Result) {
	for i, line := range lines {
		if skip[i] {
			continue
		}
		match := phpFunctionPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		fn := phpFunctionFromMatch(match, i+1, strings.TrimSpace(line))
		fn.Kind = "function"
		fn.Doc = findDocComment(lines, i)
		res.Functions = append(res.Functions, fn)
	}
}

// phpFunctionFromMatch builds a function record from the shared pattern's
// capture groups, reading modifiers literally from the matched text.
func phpFunctionFromMatch(match []string, line int, signature string) analysis.Function {
	modifiers := strings.Fields(match[1])
	fn := analysis.Function{
		Name:       match[2],
		Line:       line,
		Signature:  signature,
		Args:       phpArgNames(match[3]),
		ReturnType: match[4],
	}
	for _, mod := range modifiers {
		switch mod {
		case "public", "private", "protected":
			fn.Visibility = mod
		case "static":
			fn.IsStatic = true
		case "abstract":
			fn.IsAbstract = true
		case "final":
			fn.IsFinal = true
		}
	}
	return fn
}

// phpArgNames reduces each parameter to its variable name, preserving the
// reference (&) and variadic (...) markers and dropping type hints and
// default values.
func phpArgNames(raw string) []string {
	parts := splitArgs(raw)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		decl, _, _ := cutTopLevel(part, '=')
		decl = strings.TrimSpace(decl)

		prefix := ""
		if idx := strings.Index(decl, "&$"); idx != -1 {
			prefix = "&"
		}
		if strings.Contains(decl, "...") {
			prefix += "..."
		}

		dollar := strings.LastIndex(decl, "$")
		if dollar == -1 {
			if decl != "" {
				names = append(names, decl)
			}
			continue
		}
		name := decl[dollar+1:]
		if end := strings.IndexAny(name, " \t"); end != -1 {
			name = name[:end]
		}
		names = append(names, prefix+"$"+name)
	}
	return names
}

func (a *PHPAnalyzer) extractClasses(lines []string, bodyLines map[int]bool, res *analysis.Result) {
	for i := 0; i < len(lines); i++ {
		match := phpClassPattern.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		modifier := strings.TrimSpace(match[1])
		class := analysis.Class{
			Name:       match[2],
			Line:       i + 1,
			Extends:    match[3],
			Methods:    []analysis.Function{},
			Doc:        findDocComment(lines, i),
			IsAbstract: modifier == "abstract",
			IsFinal:    modifier == "final",
		}
		if match[4] != "" {
			for _, impl := range strings.Split(match[4], ",") {
				class.Implements = append(class.Implements, strings.TrimSpace(impl))
			}
		}

		end := scanBraceBody(lines, i, func(lineNo int, line string) {
			bodyLines[lineNo-1] = true
			if m := phpFunctionPattern.FindStringSubmatch(line); m != nil {
				method := phpFunctionFromMatch(m, lineNo, strings.TrimSpace(line))
				method.Kind = "method"
				method.Doc = findDocComment(lines, lineNo-1)
				class.Methods = append(class.Methods, method)
				return
			}
			if m := phpPropertyPattern.FindStringSubmatch(line); m != nil {
				prop := analysis.Property{
					Name:    m[3],
					Line:    lineNo,
					Type:    strings.TrimSpace(m[2]),
					Default: strings.TrimSpace(m[4]),
				}
				for _, mod := range strings.Fields(m[1]) {
					switch mod {
					case "public", "private", "protected":
						prop.Visibility = mod
					case "static":
						prop.IsStatic = true
					}
				}
				class.Properties = append(class.Properties, prop)
			}
		})

		res.Classes = append(res.Classes, class)
		i = end
	}
}

func (a *PHPAnalyzer) extractTraits(lines []string, bodyLines map[int]bool, res *analysis.Result) {
	for i := 0; i < len(lines); i++ {
		match := phpTraitPattern.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		trait := analysis.Trait{
			Name:    match[1],
			Line:    i + 1,
			Methods: []analysis.Function{},
		}

		end := scanBraceBody(lines, i, func(lineNo int, line string) {
			bodyLines[lineNo-1] = true
			if m := phpFunctionPattern.FindStringSubmatch(line); m != nil {
				method := phpFunctionFromMatch(m, lineNo, strings.TrimSpace(line))
				method.Kind = "method"
				trait.Methods = append(trait.Methods, method)
			}
		})

		res.Traits = append(res.Traits, trait)
		i = end
	}
}

func (a *PHPAnalyzer) extractInterfaces(lines []string, bodyLines map[int]bool, res *analysis.Result) {
	for i := 0; i < len(lines); i++ {
		match := phpInterfacePattern.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		iface := analysis.Interface{
			Name: match[1],
			Line: i + 1,
		}
		if match[2] != "" {
			for _, ext := range strings.Split(match[2], ",") {
				iface.Extends = append(iface.Extends, strings.TrimSpace(ext))
			}
		}

		end := scanBraceBody(lines, i, func(lineNo int, line string) {
			bodyLines[lineNo-1] = true
			if m := phpFunctionPattern.FindStringSubmatch(line); m != nil {
				method := phpFunctionFromMatch(m, lineNo, strings.TrimSpace(line))
				method.Kind = "method"
				iface.Methods = append(iface.Methods, method)
			}
		})

		res.Interfaces = append(res.Interfaces, iface)
		i = end
	}
}

func (a *PHPAnalyzer) extractNamespaces(lines []string, res *analysis.Result) {
	for i, line := range lines {
		if match := phpNamespacePattern.FindStringSubmatch(line); match != nil {
			res.Namespaces = append(res.Namespaces, analysis.Namespace{
				Name: match[1],
				Line: i + 1,
			})
		}
	}
}

func (a *PHPAnalyzer) extractImports(lines []string, res *analysis.Result) {
	for i, line := range lines {
		if match := phpUsePattern.FindStringSubmatch(line); match != nil {
			res.Imports = append(res.Imports, analysis.Import{
				Module:    match[1],
				Alias:     match[2],
				Line:      i + 1,
				Statement: strings.TrimSpace(line),
				Kind:      "use",
			})
			continue
		}
		if match := phpIncludePattern.FindStringSubmatch(line); match != nil {
			res.Imports = append(res.Imports, analysis.Import{
				Module:    match[3],
				Line:      i + 1,
				Statement: strings.TrimSpace(line),
				Kind:      match[1] + match[2],
			})
		}
	}
}
