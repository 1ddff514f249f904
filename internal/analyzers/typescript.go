package analyzers

import (
	"regexp"
	"strings"

	"codeatlas/internal/analysis"
)

// TypeScriptAnalyzer extends the JavaScript line-pattern approach with
// interfaces, type aliases, enums, generics, and typed signatures. The
// depth-aware argument splitter is load-bearing here: nested generics like
// Map<string, Foo<T>> would otherwise split on their internal commas.
type TypeScriptAnalyzer struct {
	baseAnalyzer
}

// NewTypeScriptAnalyzer creates the TypeScript analyzer.
func NewTypeScriptAnalyzer() *TypeScriptAnalyzer {
	return &TypeScriptAnalyzer{
		baseAnalyzer: newBaseAnalyzer("typescript",
			[]string{".ts", ".tsx"},
			jsComplexityWeights, "//"),
	}
}

var tsFunctionPatterns = []funcPattern{
	{
		re:      regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?(async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*(?:<[^(]*>)?\s*\((.*)\)`),
		kind:    "function",
		nameIdx: 2, asyncIdx: 1, argsIdx: 3,
	},
	{
		re:      regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)(?::\s*[^=]+)?\s*=\s*(async\s+)?function\s*\*?\s*\((.*)\)`),
		kind:    "function",
		nameIdx: 1, asyncIdx: 2, argsIdx: 3,
	},
	{
		re:      regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)(?::\s*[^=]+)?\s*=\s*(async\s+)?(?:<[^(]*>)?\s*\((.*)\)(?:\s*:\s*[^=]+)?\s*=>`),
		kind:    "arrow_function",
		nameIdx: 1, asyncIdx: 2, argsIdx: 3,
	},
	{
		re:      regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(async\s+)?([A-Za-z_$][\w$]*)\s*=>`),
		kind:    "arrow_function",
		nameIdx: 1, asyncIdx: 2, argsIdx: 3,
	},
}

var (
	tsClassPattern = regexp.MustCompile(`^\s*(?:export\s+(?:default\s+)?)?(abstract\s+)?class\s+([A-Za-z_$][\w$]*)(?:<[^{>]*>)?(?:\s+extends\s+([A-Za-z_$][\w$.]*(?:<[^{>]*>)?))?(?:\s+implements\s+([^{]+))?`)

	tsMethodPattern = regexp.MustCompile(`^\s*(?:(public|private|protected)\s+)?(?:(static)\s+)?(?:(async)\s+)?(?:(?:get|set)\s+)?\*?\s*([A-Za-z_$#][\w$]*)\s*(?:<[^(]*>)?\((.*)\)(?:\s*:\s*([^{;]+?))?\s*\{`)

	tsInterfacePattern = regexp.MustCompile(`^\s*(?:export\s+)?interface\s+([A-Za-z_$][\w$]*)\s*(<[^{>]*>)?(?:\s+extends\s+([^{]+))?`)

	tsTypeAliasPattern = regexp.MustCompile(`^\s*(?:export\s+)?type\s+([A-Za-z_$][\w$]*)\s*(<[^=]*>)?\s*=\s*(.+?);?\s*$`)

	tsEnumPattern = regexp.MustCompile(`^\s*(?:export\s+)?(const\s+)?enum\s+([A-Za-z_$][\w$]*)`)

	tsEnumMemberPattern = regexp.MustCompile(`^\s*([A-Za-z_$][\w$]*)\s*(?:=\s*.+?)?,?\s*$`)

	// Interface members: methods carry a parameter list, properties do not.
	tsIfaceMethodPattern = regexp.MustCompile(`^\s*(?:readonly\s+)?([A-Za-z_$][\w$]*)\s*(\?)?\s*(?:<[^(]*>)?\((.*)\)\s*:?\s*([^;{]*);?\s*$`)
	tsIfacePropPattern   = regexp.MustCompile(`^\s*(?:readonly\s+)?([A-Za-z_$][\w$]*)\s*(\?)?\s*:\s*(.+?);?\s*$`)
)

var tsPatternProbes = append([]patternProbe{
	{"type_annotations", []string{": string", ": number", ": boolean", ": void"}},
	{"generics", []string{"<T>", "<T,", "<K,", "extends "}},
	{"interfaces", []string{"interface "}},
	{"decorators", []string{"@"}},
}, jsPatternProbes...)

// AnalyzeContent extracts TypeScript declarations plus the language-specific
// interface/type/enum sections.
func (a *TypeScriptAnalyzer) AnalyzeContent(content, path string) *analysis.Result {
	res := analysis.NewResult(a.language)
	lines := strings.Split(content, "\n")

	bodyLines := make(map[int]bool)
	a.extractClasses(lines, bodyLines, res)
	a.extractInterfaces(lines, bodyLines, res)
	a.extractEnums(lines, bodyLines, res)
	a.extractTypeAliases(lines, res)
	a.extractFunctions(lines, bodyLines, res)

	extractJSImports(lines, res)
	extractJSExports(lines, res)
	detectPatterns(content, tsPatternProbes, res)
	return res
}

func (a *TypeScriptAnalyzer) extractFunctions(lines []string, skip map[int]bool, res *analysis.Result) {
	for i, line := range lines {
		if skip[i] {
			continue
		}
		for _, pat := range tsFunctionPatterns {
			match := pat.re.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			fn := analysis.Function{
				Name:       match[pat.nameIdx],
				Line:       i + 1,
				Signature:  strings.TrimSpace(line),
				Args:       tsArgNames(match[pat.argsIdx]),
				Kind:       pat.kind,
				IsAsync:    strings.TrimSpace(match[pat.asyncIdx]) == "async",
				ReturnType: tsReturnType(line, pat.re),
				Doc:        findDocComment(lines, i),
			}
			res.Functions = append(res.Functions, fn)
			break
		}
	}
}

func (a *TypeScriptAnalyzer) extractClasses(lines []string, bodyLines map[int]bool, res *analysis.Result) {
	for i := 0; i < len(lines); i++ {
		match := tsClassPattern.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		class := analysis.Class{
			Name:       match[2],
			Line:       i + 1,
			Extends:    match[3],
			Methods:    []analysis.Function{},
			Doc:        findDocComment(lines, i),
			IsAbstract: strings.TrimSpace(match[1]) == "abstract",
		}
		if match[4] != "" {
			for _, impl := range splitArgs(match[4]) {
				class.Implements = append(class.Implements, strings.TrimSpace(impl))
			}
		}

		end := scanBraceBody(lines, i, func(lineNo int, line string) {
			bodyLines[lineNo-1] = true
			m := tsMethodPattern.FindStringSubmatch(line)
			if m == nil || jsReservedHeads[m[4]] {
				return
			}
			class.Methods = append(class.Methods, analysis.Function{
				Name:       m[4],
				Line:       lineNo,
				Args:       tsArgNames(m[5]),
				Kind:       "method",
				Visibility: m[1],
				IsStatic:   m[2] == "static",
				IsAsync:    m[3] == "async",
				ReturnType: strings.TrimSpace(m[6]),
				Doc:        findDocComment(lines, lineNo-1),
			})
		})

		res.Classes = append(res.Classes, class)
		i = end
	}
}

func (a *TypeScriptAnalyzer) extractInterfaces(lines []string, bodyLines map[int]bool, res *analysis.Result) {
	for i := 0; i < len(lines); i++ {
		match := tsInterfacePattern.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		iface := analysis.Interface{
			Name:       match[1],
			Line:       i + 1,
			TypeParams: strings.TrimSpace(match[2]),
		}
		if match[3] != "" {
			for _, ext := range splitArgs(match[3]) {
				iface.Extends = append(iface.Extends, strings.TrimSpace(ext))
			}
		}

		end := scanBraceBody(lines, i, func(lineNo int, line string) {
			bodyLines[lineNo-1] = true
			if m := tsIfaceMethodPattern.FindStringSubmatch(line); m != nil && strings.Contains(line, "(") {
				iface.Methods = append(iface.Methods, analysis.Function{
					Name:       m[1],
					Line:       lineNo,
					Args:       tsArgNames(m[3]),
					Kind:       "method",
					ReturnType: strings.TrimSpace(m[4]),
				})
				return
			}
			if m := tsIfacePropPattern.FindStringSubmatch(line); m != nil {
				iface.Properties = append(iface.Properties, analysis.Property{
					Name:     m[1],
					Line:     lineNo,
					Type:     strings.TrimSpace(m[3]),
					Optional: m[2] == "?",
				})
			}
		})

		res.Interfaces = append(res.Interfaces, iface)
		i = end
	}
}

func (a *TypeScriptAnalyzer) extractEnums(lines []string, bodyLines map[int]bool, res *analysis.Result) {
	for i := 0; i < len(lines); i++ {
		match := tsEnumPattern.FindStringSubmatch(lines[i])
		if match == nil {
			continue
		}
		enum := analysis.Enum{
			Name:    match[2],
			Line:    i + 1,
			IsConst: strings.TrimSpace(match[1]) == "const",
			Members: []string{},
		}

		end := scanBraceBody(lines, i, func(lineNo int, line string) {
			bodyLines[lineNo-1] = true
			if m := tsEnumMemberPattern.FindStringSubmatch(line); m != nil {
				enum.Members = append(enum.Members, m[1])
			}
		})

		res.Enums = append(res.Enums, enum)
		i = end
	}
}

func (a *TypeScriptAnalyzer) extractTypeAliases(lines []string, res *analysis.Result) {
	for i, line := range lines {
		if match := tsTypeAliasPattern.FindStringSubmatch(line); match != nil {
			res.TypeAliases = append(res.TypeAliases, analysis.TypeAlias{
				Name:       match[1],
				Line:       i + 1,
				TypeParams: strings.TrimSpace(match[2]),
				Value:      strings.TrimSpace(match[3]),
			})
		}
	}
}

// tsArgNames reduces each parameter to its bare name, stripping optional
// markers, type annotations, and default values while leaving destructuring
// patterns intact.
func tsArgNames(raw string) []string {
	parts := splitArgs(raw)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		name, _, _ := cutTopLevel(part, '=')
		name, _, _ = cutTopLevel(name, ':')
		name = strings.TrimSpace(name)
		name = strings.TrimSuffix(name, "?")
		// Parameter properties: constructor(private readonly name: string).
		for _, mod := range []string{"public ", "private ", "protected ", "readonly "} {
			for strings.HasPrefix(name, mod) {
				name = strings.TrimSpace(strings.TrimPrefix(name, mod))
			}
		}
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// tsReturnType pulls the annotation that follows the parameter list, when
// the matched pattern leaves one on the line.
func tsReturnType(line string, re *regexp.Regexp) string {
	loc := re.FindStringIndex(line)
	if loc == nil {
		return ""
	}
	rest := strings.TrimSpace(line[loc[1]:])
	if !strings.HasPrefix(rest, ":") {
		return ""
	}
	rest = strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	for _, stop := range []string{"{", "=>", ";"} {
		if idx := strings.Index(rest, stop); idx != -1 {
			rest = rest[:idx]
		}
	}
	return strings.TrimSpace(rest)
}
