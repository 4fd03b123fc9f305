package io

import (
	"strconv"
	"strings"

	"github.com/ether/padformat/lib/dom"
	"golang.org/x/net/html"
)

// Heading tag to Markdown prefix
var headingToMarkdown = map[string]string{
	"h1": "# ",
	"h2": "## ",
	"h3": "### ",
	"h4": "#### ",
	"h5": "##### ",
	"h6": "###### ",
}

var inlineToMarkdown = map[string]string{
	"strong": "**",
	"b":      "**",
	"em":     "*",
	"i":      "*",
	"s":      "~~",
	"strike": "~~",
	"del":    "~~",
	"code":   "`",
}

// ExportMarkdown renders root as Markdown. Formats Markdown has no syntax
// for are dropped and keep their text; bare URLs become autolinks.
func (e *Exporter) ExportMarkdown(root *html.Node) string {
	clean := Clean(root)
	var sb strings.Builder
	writeMarkdown(clean, &sb, 0)
	text := multipleNewlines.ReplaceAllString(strings.TrimLeft(sb.String(), "\n"), "\n\n")
	text = strings.TrimRight(text, "\n")
	if text != "" {
		text += "\n"
	}
	e.Logger.Debugw("exported markdown", "bytes", len(text))
	return text
}

func blankLine(sb *strings.Builder) {
	str := sb.String()
	switch {
	case str == "" || strings.HasSuffix(str, "\n\n"):
	case strings.HasSuffix(str, "\n"):
		sb.WriteString("\n")
	default:
		sb.WriteString("\n\n")
	}
}

func spaces(n int) string {
	return strings.Repeat("  ", n)
}

func writeMarkdown(n *html.Node, sb *strings.Builder, depth int) {
	if dom.IsText(n) {
		text := collapsibleSpace.ReplaceAllString(n.Data, " ")
		if dom.Closest(n, nil, func(e *html.Node) bool { return dom.IsTag(e, "a", "code") }) == nil {
			text = urlPattern.ReplaceAllStringFunc(text, func(url string) string { return "<" + url + ">" })
		}
		sb.WriteString(text)
		return
	}
	if !dom.IsElement(n) {
		return
	}

	name := dom.Name(n)
	children := func(depth int) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeMarkdown(c, sb, depth)
		}
	}

	switch {
	case dom.IsBr(n):
		sb.WriteString("  \n")
	case headingToMarkdown[name] != "":
		blankLine(sb)
		sb.WriteString(headingToMarkdown[name])
		children(depth)
		blankLine(sb)
	case inlineToMarkdown[name] != "":
		if dom.TrimZwsp(dom.Text(n)) == "" {
			children(depth)
			return
		}
		mark := inlineToMarkdown[name]
		sb.WriteString(mark)
		children(depth)
		sb.WriteString(mark)
	case name == "a" && dom.HasAttr(n, "href"):
		sb.WriteString("[")
		children(depth)
		sb.WriteString("](" + dom.Attr(n, "href") + ")")
	case name == "ul" || name == "ol":
		if depth == 0 {
			blankLine(sb)
		}
		children(depth + 1)
		if depth == 0 {
			blankLine(sb)
		}
	case name == "li":
		endLine(sb)
		sb.WriteString(spaces(max(depth-1, 0)))
		if isListItemOf(n, "ol") {
			sb.WriteString(strconv.Itoa(listIndex(n)) + ". ")
		} else {
			sb.WriteString("- ")
		}
		children(depth)
		endLine(sb)
	case name == "blockquote":
		var inner strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeMarkdown(c, &inner, depth)
		}
		blankLine(sb)
		for _, line := range strings.Split(strings.Trim(inner.String(), "\n"), "\n") {
			sb.WriteString("> " + line + "\n")
		}
		blankLine(sb)
	case name == "pre":
		blankLine(sb)
		sb.WriteString("```\n" + dom.Text(n) + "\n```")
		blankLine(sb)
	case dom.IsBlock(n) && n.Parent != nil:
		blankLine(sb)
		children(depth)
		blankLine(sb)
	default:
		children(depth)
	}
}
