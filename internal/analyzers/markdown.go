package analyzers

import (
	"regexp"
	"strings"

	"codeatlas/internal/analysis"
)

// MarkdownAnalyzer extracts the document outline (headings with GitHub-style
// anchors) and every link form. Fenced code blocks are excluded from the
// scan so code samples do not produce phantom headings or links.
type MarkdownAnalyzer struct {
	baseAnalyzer
}

// NewMarkdownAnalyzer creates the Markdown analyzer.
func NewMarkdownAnalyzer() *MarkdownAnalyzer {
	return &MarkdownAnalyzer{
		baseAnalyzer: newBaseAnalyzer("markdown",
			[]string{".md", ".markdown", ".mdx"},
			markdownComplexityWeights, ""),
	}
}

var markdownComplexityWeights = map[string]float64{
	"```": 1,
	"|":   0.2,
	"[^":  0.5,
	"$$":  1,
}

var (
	mdATXPattern        = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*#*\s*$`)
	mdSetextPattern     = regexp.MustCompile(`^\s{0,3}(=+|-+)\s*$`)
	mdFencePattern      = regexp.MustCompile("^\\s{0,3}(```|~~~)")
	mdInlineLinkPattern = regexp.MustCompile(`(!)?\[([^\]]*)\]\(\s*([^)\s]+)(?:\s+"[^"]*")?\s*\)`)
	mdRefLinkPattern    = regexp.MustCompile(`(!)?\[([^\]]+)\]\[([^\]]*)\]`)
	mdDefinitionPattern = regexp.MustCompile(`^\s{0,3}\[([^\]]+)\]:\s*(\S+)`)

	mdSlugStrip    = regexp.MustCompile(`[^\w\s-]`)
	mdSlugHyphens  = regexp.MustCompile(`\s+`)
	mdListPattern  = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s`)
	mdTablePattern = regexp.MustCompile(`^\s*\|.*\|`)
)

var markdownPatternProbes = []patternProbe{
	{"task_lists", []string{"- [ ]", "- [x]", "- [X]"}},
	{"emphasis", []string{"**", "__"}},
	{"footnotes", []string{"[^"}},
	{"math_blocks", []string{"$$"}},
	{"images", []string{"!["}},
	{"html_blocks", []string{"<div", "<table", "<img", "<br"}},
}

// AnalyzeContent extracts headings and links. Patterns that need structural
// context (code blocks, tables, lists, front matter) are detected during the
// line walk rather than by substring probes.
func (a *MarkdownAnalyzer) AnalyzeContent(content, path string) *analysis.Result {
	res := analysis.NewResult(a.language)
	lines := strings.Split(content, "\n")

	// Front matter: YAML fenced by --- or TOML fenced by +++, closed by
	// the same delimiter it opened with.
	start := 0
	if len(lines) > 0 {
		if delim := strings.TrimSpace(lines[0]); delim == "---" || delim == "+++" {
			for i := 1; i < len(lines); i++ {
				if strings.TrimSpace(lines[i]) == delim {
					start = i + 1
					addPattern(res, "front_matter")
					break
				}
			}
		}
	}

	inFence := false
	for i := start; i < len(lines); i++ {
		line := lines[i]

		if mdFencePattern.MatchString(line) {
			inFence = !inFence
			addPattern(res, "code_blocks")
			continue
		}
		if inFence {
			continue
		}

		if m := mdATXPattern.FindStringSubmatch(line); m != nil {
			text := strings.TrimSpace(m[2])
			res.Headings = append(res.Headings, analysis.Heading{
				Text:   text,
				Level:  len(m[1]),
				Line:   i + 1,
				Anchor: anchorSlug(text),
				Style:  "atx",
			})
			continue
		}
		if i+1 < len(lines) && isSetextUnderline(line, lines[i+1]) {
			text := strings.TrimSpace(line)
			level := 1
			if strings.HasPrefix(strings.TrimSpace(lines[i+1]), "-") {
				level = 2
			}
			res.Headings = append(res.Headings, analysis.Heading{
				Text:   text,
				Level:  level,
				Line:   i + 1,
				Anchor: anchorSlug(text),
				Style:  "setext",
			})
			i++
			continue
		}

		a.extractLinks(line, i+1, res)

		if mdTablePattern.MatchString(line) {
			addPattern(res, "tables")
		}
		if mdListPattern.MatchString(line) {
			addPattern(res, "lists")
		}
		if strings.HasPrefix(strings.TrimSpace(line), ">") {
			addPattern(res, "blockquotes")
		}
	}

	detectPatterns(content, markdownPatternProbes, res)
	return res
}

// isSetextUnderline reports whether next is a setext underline for line.
// The underlined line must be plain paragraph text, so list items, quotes,
// and other underlines do not become headings.
func isSetextUnderline(line, next string) bool {
	if !mdSetextPattern.MatchString(next) {
		return false
	}
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ">") {
		return false
	}
	if mdListPattern.MatchString(line) || mdSetextPattern.MatchString(line) {
		return false
	}
	return true
}

func (a *MarkdownAnalyzer) extractLinks(line string, lineNo int, res *analysis.Result) {
	if m := mdDefinitionPattern.FindStringSubmatch(line); m != nil {
		res.Links = append(res.Links, analysis.Link{
			Ref:  m[1],
			URL:  m[2],
			Line: lineNo,
			Kind: "definition",
		})
		return
	}

	for _, m := range mdInlineLinkPattern.FindAllStringSubmatch(line, -1) {
		kind := "inline"
		if m[1] == "!" {
			kind = "image"
		}
		res.Links = append(res.Links, analysis.Link{
			Text: m[2],
			URL:  m[3],
			Line: lineNo,
			Kind: kind,
		})
	}

	for _, m := range mdRefLinkPattern.FindAllStringSubmatch(line, -1) {
		ref := m[3]
		if ref == "" {
			// Collapsed reference: [text][] resolves through the text.
			ref = m[2]
		}
		kind := "reference"
		if m[1] == "!" {
			kind = "image"
		}
		res.Links = append(res.Links, analysis.Link{
			Text: m[2],
			Ref:  ref,
			Line: lineNo,
			Kind: kind,
		})
	}
}

// anchorSlug converts heading text to its GitHub-style anchor: lower-cased,
// punctuation removed, whitespace runs collapsed to single hyphens.
func anchorSlug(text string) string {
	slug := strings.ToLower(text)
	slug = mdSlugStrip.ReplaceAllString(slug, "")
	slug = mdSlugHyphens.ReplaceAllString(strings.TrimSpace(slug), "-")
	return slug
}
