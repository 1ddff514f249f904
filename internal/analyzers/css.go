package analyzers

import (
	"regexp"
	"strings"
	"unicode"

	"codeatlas/internal/analysis"
)

// CSSAnalyzer extracts selectors, variables, mixins, media queries, and
// keyframes from stylesheets. The active dialect (css, scss, less, stylus)
// is detected from the extension first, then by content sniffing.
type CSSAnalyzer struct {
	baseAnalyzer
}

// NewCSSAnalyzer creates the stylesheet analyzer.
func NewCSSAnalyzer() *CSSAnalyzer {
	return &CSSAnalyzer{
		baseAnalyzer: newBaseAnalyzer("css",
			[]string{".css", ".scss", ".sass", ".less", ".styl"},
			cssComplexityWeights, ""),
	}
}

var cssComplexityWeights = map[string]float64{
	"@media":     2,
	"@keyframes": 1.5,
	"@mixin":     1.5,
	"!important": 1,
	"calc(":      1,
	"var(":       0.5,
	":hover":     0.5,
	":not(":      1,
}

var (
	cssCustomPropPattern = regexp.MustCompile(`^\s*(--[\w-]+)\s*:\s*([^;]+);?`)
	scssVarPattern       = regexp.MustCompile(`^\s*\$([\w-]+)\s*:\s*([^;]+);?`)
	lessVarPattern       = regexp.MustCompile(`^\s*@([\w-]+)\s*:\s*([^;]+);?`)
	stylusVarPattern     = regexp.MustCompile(`^([\w-]+)\s*=\s*(.+)$`)

	scssMixinPattern    = regexp.MustCompile(`@mixin\s+([\w-]+)\s*(?:\(([^)]*)\))?`)
	scssFunctionPattern = regexp.MustCompile(`@function\s+([\w-]+)\s*\(([^)]*)\)`)
	lessMixinPattern    = regexp.MustCompile(`^\s*\.([\w-]+)\s*\((@[^)]*)\)\s*\{`)
	stylusMixinPattern  = regexp.MustCompile(`^([\w-]+)\s*\(([^)]*)\)\s*$`)

	cssMediaPattern     = regexp.MustCompile(`@media\s+([^{;]+)`)
	cssKeyframesPattern = regexp.MustCompile(`@(-\w+-)?keyframes\s+([\w-]+)`)
	cssImportPattern    = regexp.MustCompile(`@import\s+(?:url\(\s*)?['"]?([^'")\s;]+)`)
	cssUsePattern       = regexp.MustCompile(`@use\s+['"]([^'"]+)`)
)

// At-keywords that look like LESS variable declarations but are directives.
var cssAtDirectives = map[string]bool{
	"media": true, "import": true, "charset": true, "keyframes": true,
	"mixin": true, "include": true, "function": true, "use": true,
	"supports": true, "font-face": true, "page": true, "namespace": true,
	"extend": true, "content": true, "if": true, "else": true,
	"each": true, "for": true, "while": true, "return": true,
}

var (
	cssIDToken     = regexp.MustCompile(`#[\w-]+`)
	cssClassToken  = regexp.MustCompile(`\.[\w-]+`)
	cssAttrToken   = regexp.MustCompile(`\[[^\]]*\]`)
	cssPseudoToken = regexp.MustCompile(`::?[\w-]+`)
	cssWordToken   = regexp.MustCompile(`[A-Za-z][\w-]*`)
)

var cssPatternProbes = []patternProbe{
	{"responsive", []string{"@media"}},
	{"animations", []string{"@keyframes", "animation", "transition"}},
	{"flexbox", []string{"display: flex", "display:flex"}},
	{"grid", []string{"display: grid", "display:grid"}},
	{"custom_properties", []string{"--", "var("}},
	{"vendor_prefixes", []string{"-webkit-", "-moz-", "-ms-", "-o-"}},
	{"nesting", []string{"&"}},
	{"imports", []string{"@import", "@use"}},
}

// DetectLanguage resolves the dialect from the extension, falling back to
// content sniffing for .css and unknown extensions.
func (a *CSSAnalyzer) DetectLanguage(content, path string) string {
	switch pathExt(path) {
	case ".scss", ".sass":
		return "scss"
	case ".less":
		return "less"
	case ".styl":
		return "stylus"
	}
	return sniffCSSDialect(content)
}

func pathExt(path string) string {
	if idx := strings.LastIndex(path, "."); idx != -1 {
		return strings.ToLower(path[idx:])
	}
	return ""
}

// sniffCSSDialect guesses the dialect from characteristic constructs:
// $vars with @mixin mean SCSS, @vars with .mixin() calls mean LESS, and
// bare `name = value` definitions mean Stylus.
func sniffCSSDialect(content string) string {
	if strings.Contains(content, "@mixin") || (strings.Contains(content, "$") && strings.Contains(content, "@include")) {
		return "scss"
	}
	for _, line := range strings.Split(content, "\n") {
		if m := lessVarPattern.FindStringSubmatch(line); m != nil && !cssAtDirectives[m[1]] {
			return "less"
		}
		if stylusVarPattern.MatchString(line) && !strings.Contains(line, "==") {
			return "stylus"
		}
	}
	return "css"
}

// AnalyzeContent extracts the stylesheet fact sheet. Comments and string
// literals are blanked before rule scanning so braces inside them do not
// desynchronize the depth tracking (line numbers are preserved).
func (a *CSSAnalyzer) AnalyzeContent(content, path string) *analysis.Result {
	dialect := a.DetectLanguage(content, path)
	res := analysis.NewResult(dialect)

	stripped := stripCSSNoise(content)
	a.extractRules(stripped, res)

	lines := strings.Split(content, "\n")
	a.extractVariables(lines, dialect, res)
	a.extractMixins(lines, dialect, res)
	a.extractImports(lines, res)
	detectPatterns(content, cssPatternProbes, res)
	return res
}

// stripCSSNoise blanks block comments, line comments, and string literals
// while preserving the newline structure.
func stripCSSNoise(content string) string {
	var b strings.Builder
	b.Grow(len(content))
	runes := []rune(content)
	inBlock := false
	inLine := false
	var quote rune

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\n':
			inLine = false
			b.WriteRune('\n')
		case inBlock:
			if r == '*' && i+1 < len(runes) && runes[i+1] == '/' {
				inBlock = false
				i++
				b.WriteString("  ")
			} else {
				b.WriteRune(' ')
			}
		case inLine:
			b.WriteRune(' ')
		case quote != 0:
			if r == quote {
				quote = 0
			}
			b.WriteRune(' ')
		case r == '/' && i+1 < len(runes) && runes[i+1] == '*':
			inBlock = true
			i++
			b.WriteString("  ")
		case r == '/' && i+1 < len(runes) && runes[i+1] == '/':
			inLine = true
			i++
			b.WriteString("  ")
		case r == '"' || r == '\'':
			quote = r
			b.WriteRune(' ')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// extractRules walks the stripped content tracking brace depth, collecting
// every rule prelude and classifying its selectors. Keyframe block interiors
// are suppressed so step selectors (0%, from, to) are not reported.
func (a *CSSAnalyzer) extractRules(stripped string, res *analysis.Result) {
	depth := 0
	line := 1
	preludeStart := 1
	started := false
	suppressDepth := -1
	var prelude strings.Builder

	reset := func() {
		prelude.Reset()
		started = false
	}

	for _, r := range stripped {
		switch r {
		case '\n':
			line++
			prelude.WriteRune(' ')
		case '{':
			text := strings.TrimSpace(prelude.String())
			if suppressDepth == -1 && text != "" {
				a.recordPrelude(text, preludeStart, depth, &suppressDepth, res)
			}
			depth++
			reset()
		case '}':
			depth--
			if suppressDepth != -1 && depth <= suppressDepth {
				suppressDepth = -1
			}
			reset()
		case ';':
			reset()
		default:
			if !started && !unicode.IsSpace(r) {
				preludeStart = line
				started = true
			}
			prelude.WriteRune(r)
		}
	}
}

func (a *CSSAnalyzer) recordPrelude(text string, line, depth int, suppressDepth *int, res *analysis.Result) {
	if strings.HasPrefix(text, "@") {
		if m := cssKeyframesPattern.FindStringSubmatch(text); m != nil {
			res.Keyframes = append(res.Keyframes, analysis.Keyframes{
				Name:   m[2],
				Line:   line,
				Prefix: strings.Trim(m[1], "-"),
			})
			*suppressDepth = depth
		}
		if m := cssMediaPattern.FindStringSubmatch(text); m != nil {
			res.MediaQueries = append(res.MediaQueries, analysis.MediaQuery{
				Query: strings.TrimSpace(m[1]),
				Line:  line,
			})
		}
		res.Selectors = append(res.Selectors, analysis.Selector{
			Text:        text,
			Line:        line,
			Kind:        "at_rule",
			Specificity: analysis.Specificity{},
		})
		return
	}

	for _, sel := range strings.Split(text, ",") {
		sel = strings.TrimSpace(sel)
		if sel == "" {
			continue
		}
		res.Selectors = append(res.Selectors, analysis.Selector{
			Text:        sel,
			Line:        line,
			Kind:        classifySelector(sel),
			Specificity: selectorSpecificity(sel),
		})
	}
}

// classifySelector assigns a single structural class to a selector. Checks
// run from most to least structural; a compound selector takes the first
// category that applies.
func classifySelector(sel string) string {
	switch {
	case strings.HasPrefix(sel, "@"):
		return "at_rule"
	case strings.ContainsAny(sel, ">+~"):
		return "combinator"
	case strings.Contains(sel, " "):
		return "descendant"
	case strings.Contains(sel, "["):
		return "attribute"
	case strings.Contains(sel, ":"):
		return "pseudo"
	case strings.HasPrefix(sel, "#"):
		return "id"
	case strings.HasPrefix(sel, "."):
		return "class"
	default:
		return "element"
	}
}

// selectorSpecificity computes the heuristic priority score. The element
// count comes from a generic word-token scan reduced by the class and
// pseudo-class counts; this intentionally mirrors the imprecise original
// rather than exact CSS-spec specificity.
func selectorSpecificity(sel string) analysis.Specificity {
	ids := len(cssIDToken.FindAllString(sel, -1))
	classes := len(cssClassToken.FindAllString(sel, -1))
	attrs := len(cssAttrToken.FindAllString(sel, -1))

	pseudoClasses := 0
	for _, m := range cssPseudoToken.FindAllString(sel, -1) {
		if !strings.HasPrefix(m, "::") {
			pseudoClasses++
		}
	}

	words := len(cssWordToken.FindAllString(sel, -1))
	elements := words - classes - pseudoClasses
	if elements < 0 {
		elements = 0
	}

	tens := classes + attrs + pseudoClasses
	return analysis.Specificity{
		IDs:      ids,
		Classes:  tens,
		Elements: elements,
		Total:    ids*100 + tens*10 + elements,
	}
}

func (a *CSSAnalyzer) extractVariables(lines []string, dialect string, res *analysis.Result) {
	for i, line := range lines {
		if m := cssCustomPropPattern.FindStringSubmatch(line); m != nil {
			res.Variables = append(res.Variables, analysis.Variable{
				Name: m[1], Value: strings.TrimSpace(m[2]), Line: i + 1, Kind: "custom_property",
			})
			continue
		}
		switch dialect {
		case "scss":
			if m := scssVarPattern.FindStringSubmatch(line); m != nil {
				res.Variables = append(res.Variables, analysis.Variable{
					Name: "$" + m[1], Value: strings.TrimSpace(m[2]), Line: i + 1, Kind: "scss",
				})
			}
		case "less":
			if m := lessVarPattern.FindStringSubmatch(line); m != nil && !cssAtDirectives[m[1]] {
				res.Variables = append(res.Variables, analysis.Variable{
					Name: "@" + m[1], Value: strings.TrimSpace(m[2]), Line: i + 1, Kind: "less",
				})
			}
		case "stylus":
			if m := stylusVarPattern.FindStringSubmatch(line); m != nil && !strings.Contains(line, "==") {
				res.Variables = append(res.Variables, analysis.Variable{
					Name: m[1], Value: strings.TrimSpace(m[2]), Line: i + 1, Kind: "stylus",
				})
			}
		}
	}
}

func (a *CSSAnalyzer) extractMixins(lines []string, dialect string, res *analysis.Result) {
	for i, line := range lines {
		switch dialect {
		case "scss":
			if m := scssMixinPattern.FindStringSubmatch(line); m != nil {
				res.Mixins = append(res.Mixins, analysis.Mixin{
					Name: m[1], Args: splitArgs(m[2]), Line: i + 1, Kind: "mixin",
				})
				continue
			}
			if m := scssFunctionPattern.FindStringSubmatch(line); m != nil {
				res.Mixins = append(res.Mixins, analysis.Mixin{
					Name: m[1], Args: splitArgs(m[2]), Line: i + 1, Kind: "function",
				})
			}
		case "less":
			if m := lessMixinPattern.FindStringSubmatch(line); m != nil {
				res.Mixins = append(res.Mixins, analysis.Mixin{
					Name: m[1], Args: splitArgs(m[2]), Line: i + 1, Kind: "mixin",
				})
			}
		case "stylus":
			if m := stylusMixinPattern.FindStringSubmatch(line); m != nil {
				res.Mixins = append(res.Mixins, analysis.Mixin{
					Name: m[1], Args: splitArgs(m[2]), Line: i + 1, Kind: "mixin",
				})
			}
		}
	}
}

func (a *CSSAnalyzer) extractImports(lines []string, res *analysis.Result) {
	for i, line := range lines {
		if m := cssImportPattern.FindStringSubmatch(line); m != nil {
			res.Imports = append(res.Imports, analysis.Import{
				Module: m[1], Line: i + 1, Statement: strings.TrimSpace(line), Kind: "import",
			})
			continue
		}
		if m := cssUsePattern.FindStringSubmatch(line); m != nil {
			res.Imports = append(res.Imports, analysis.Import{
				Module: m[1], Line: i + 1, Statement: strings.TrimSpace(line), Kind: "use",
			})
		}
	}
}
