package io

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/hooks/events"
	"golang.org/x/net/html"
)

var collapsibleSpace = regexp.MustCompile(`[\t\r\n ]+`)

// ExportText renders root as plain text, one line per block. Ordered list
// items are numbered and unordered ones bulleted.
func (e *Exporter) ExportText(root *html.Node) string {
	clean := Clean(root)
	var sb strings.Builder
	extractText(clean, &sb)

	text := multipleNewlines.ReplaceAllString(sb.String(), "\n\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if e.Hooks != nil {
		e.Hooks.ExecuteGetTextForExportHooks(&events.TextForExportContext{
			Root: clean,
			Text: &text,
		})
	}
	e.Logger.Debugw("exported text", "bytes", len(text))
	return text
}

func endLine(sb *strings.Builder) {
	str := sb.String()
	if len(str) > 0 && !strings.HasSuffix(str, "\n") {
		sb.WriteString("\n")
	}
}

// listIndex is the 1-based position of li among its item siblings.
func listIndex(li *html.Node) int {
	index := 1
	for s := li.PrevSibling; s != nil; s = s.PrevSibling {
		if dom.IsTag(s, "li") {
			index++
		}
	}
	return index
}

func extractText(n *html.Node, sb *strings.Builder) {
	if dom.IsText(n) {
		text := collapsibleSpace.ReplaceAllString(n.Data, " ")
		if sb.Len() == 0 || strings.HasSuffix(sb.String(), "\n") {
			text = strings.TrimLeft(text, " ")
		}
		sb.WriteString(text)
		return
	}
	if dom.IsBr(n) {
		sb.WriteString("\n")
		return
	}

	isBlock := dom.IsElement(n) && dom.IsBlock(n)
	if isBlock {
		endLine(sb)
	}
	switch {
	case dom.IsTag(n, "li") && isListItemOf(n, "ol"):
		sb.WriteString(strconv.Itoa(listIndex(n)) + ". ")
	case dom.IsTag(n, "li") && isListItemOf(n, "ul"):
		sb.WriteString("• ")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, sb)
	}
	if isBlock {
		endLine(sb)
	}
}
