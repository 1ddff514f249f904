package analyzers

import (
	"strings"

	"golang.org/x/net/html"

	"codeatlas/internal/analysis"
)

// HTMLAnalyzer tokenizes markup and aggregates elements, forms, meta tags,
// and external resources. Embedded <script> and <style> blocks are delegated
// to the JavaScript and CSS extractors with document-relative line numbers.
type HTMLAnalyzer struct {
	baseAnalyzer
	css *CSSAnalyzer
}

// NewHTMLAnalyzer creates the HTML analyzer.
func NewHTMLAnalyzer() *HTMLAnalyzer {
	return &HTMLAnalyzer{
		baseAnalyzer: newBaseAnalyzer("html",
			[]string{".html", ".htm", ".xhtml"},
			htmlComplexityWeights, "<!--"),
		css: NewCSSAnalyzer(),
	}
}

var htmlComplexityWeights = map[string]float64{
	"<script":   2,
	"<style":    1.5,
	"<form":     1.5,
	"<table":    1,
	"<iframe":   1,
	"onclick":   1,
	"<template": 1,
}

var htmlPatternProbes = []patternProbe{
	{"semantic_markup", []string{"<article", "<section", "<nav", "<header", "<footer", "<main", "<aside"}},
	{"forms", []string{"<form"}},
	{"media", []string{"<video", "<audio", "<canvas", "<svg", "<picture"}},
	{"scripts", []string{"<script"}},
	{"styles", []string{"<style", "<link"}},
	{"responsive", []string{"viewport", "srcset", "media="}},
	{"accessibility", []string{"aria-", "role=", "alt="}},
	{"templating", []string{"{{", "{%", "<?php", "<%"}},
}

// Form controls collected as fields of the enclosing <form>.
var htmlFormFieldTags = map[string]bool{
	"input": true, "textarea": true, "select": true, "button": true,
}

// AnalyzeContent tokenizes the document in one pass. Line numbers come from
// counting newlines in each token's raw bytes, so they stay 1-based and
// document-relative even for delegated script/style content.
func (a *HTMLAnalyzer) AnalyzeContent(content, path string) *analysis.Result {
	res := analysis.NewResult(a.language)

	tokenizer := html.NewTokenizer(strings.NewReader(content))
	line := 1
	elements := make(map[string]*analysis.Element)
	var order []string
	var form *analysis.Form
	embedded := "" // "script" or "style" while awaiting the text token

	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break
		}
		raw := string(tokenizer.Raw())
		tokLine := line
		line += strings.Count(raw, "\n")

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := tokenizer.Token()
			attrs := tokenAttrs(tok, raw)
			recordElement(elements, &order, tok.Data, attrs, tokLine)
			recordResource(tok.Data, attrs, tokLine, res)

			switch tok.Data {
			case "form":
				if tt == html.StartTagToken {
					form = &analysis.Form{
						Action: attrs["action"],
						Method: attrs["method"],
						Line:   tokLine,
						Fields: []analysis.FormField{},
					}
				}
			case "meta":
				recordMetaTag(attrs, tokLine, res)
			case "script", "style":
				if tt == html.StartTagToken && attrs["src"] == "" {
					embedded = tok.Data
				}
			}
			if form != nil && htmlFormFieldTags[tok.Data] {
				form.Fields = append(form.Fields, analysis.FormField{
					Tag:  tok.Data,
					Type: attrs["type"],
					Name: attrs["name"],
					Line: tokLine,
				})
			}

		case html.TextToken:
			switch embedded {
			case "script":
				a.analyzeEmbeddedJS(raw, tokLine, res)
			case "style":
				a.analyzeEmbeddedCSS(raw, tokLine, res)
			}

		case html.EndTagToken:
			tok := tokenizer.Token()
			switch tok.Data {
			case "form":
				if form != nil {
					res.Forms = append(res.Forms, *form)
					form = nil
				}
			case "script", "style":
				embedded = ""
			}
		}
	}

	// Unclosed form at EOF is still reported.
	if form != nil {
		res.Forms = append(res.Forms, *form)
	}

	for _, tag := range order {
		res.Elements = append(res.Elements, *elements[tag])
	}
	detectPatterns(content, htmlPatternProbes, res)
	return res
}

// tokenAttrs builds the attribute map. The tokenizer reports boolean
// attributes (disabled, required) with an empty value; those are
// distinguished from explicit empty strings by checking the raw token for
// `key=` and recorded as "true".
func tokenAttrs(tok html.Token, raw string) map[string]string {
	if len(tok.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(tok.Attr))
	for _, attr := range tok.Attr {
		val := attr.Val
		if val == "" && !strings.Contains(raw, attr.Key+"=") {
			val = "true"
		}
		attrs[attr.Key] = val
	}
	return attrs
}

// recordElement aggregates per-tag counts. Attributes and the line number
// reflect the first occurrence of the tag.
func recordElement(elements map[string]*analysis.Element, order *[]string, tag string, attrs map[string]string, line int) {
	if el, ok := elements[tag]; ok {
		el.Count++
		return
	}
	elements[tag] = &analysis.Element{
		Tag:        tag,
		Count:      1,
		Attributes: attrs,
		Line:       line,
	}
	*order = append(*order, tag)
}

func recordMetaTag(attrs map[string]string, line int, res *analysis.Result) {
	meta := analysis.MetaTag{Content: attrs["content"], Line: line}
	switch {
	case attrs["charset"] != "":
		meta.Name = "charset"
		meta.Content = attrs["charset"]
	case attrs["name"] != "":
		meta.Name = attrs["name"]
	case attrs["property"] != "":
		meta.Name = attrs["property"]
	case attrs["http-equiv"] != "":
		meta.Name = attrs["http-equiv"]
	}
	res.MetaTags = append(res.MetaTags, meta)
}

func recordResource(tag string, attrs map[string]string, line int, res *analysis.Result) {
	add := func(url, kind string) {
		if url == "" {
			return
		}
		res.Resources = append(res.Resources, analysis.Resource{
			Tag: tag, URL: url, Kind: kind, Line: line,
		})
	}

	switch tag {
	case "link":
		if strings.Contains(attrs["rel"], "stylesheet") {
			add(attrs["href"], "stylesheet")
		}
	case "script":
		add(attrs["src"], "script")
	case "img":
		add(attrs["src"], "image")
	case "iframe", "video", "audio", "source":
		add(attrs["src"], tag)
	}
}

// analyzeEmbeddedJS runs the JavaScript scanners over inline script text.
// offset is the document line of the text token, passed through so reported
// declarations point into the HTML file.
func (a *HTMLAnalyzer) analyzeEmbeddedJS(text string, offset int, res *analysis.Result) {
	lines := strings.Split(text, "\n")
	classes, bodyLines := scanJSClasses(lines, offset-1)
	res.Classes = append(res.Classes, classes...)
	res.Functions = append(res.Functions, scanJSFunctions(lines, offset-1, bodyLines)...)
}

// analyzeEmbeddedCSS extracts rules from inline style text and shifts their
// line numbers into document coordinates.
func (a *HTMLAnalyzer) analyzeEmbeddedCSS(text string, offset int, res *analysis.Result) {
	sub := analysis.NewResult("css")
	a.css.extractRules(stripCSSNoise(text), sub)

	for i := range sub.Selectors {
		sub.Selectors[i].Line += offset - 1
	}
	for i := range sub.MediaQueries {
		sub.MediaQueries[i].Line += offset - 1
	}
	for i := range sub.Keyframes {
		sub.Keyframes[i].Line += offset - 1
	}
	res.Selectors = append(res.Selectors, sub.Selectors...)
	res.MediaQueries = append(res.MediaQueries, sub.MediaQueries...)
	res.Keyframes = append(res.Keyframes, sub.Keyframes...)
}
