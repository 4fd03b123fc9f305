package io

import (
	"slices"
	"strings"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/hooks"
	"github.com/ether/padformat/lib/hooks/events"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"mvdan.cc/xurls/v2"
)

type ExportOptions struct {
	// Linkify wraps bare URLs found in text in anchors.
	Linkify bool
}

// Exporter renders editing roots for consumers outside the editor. The
// live tree is never touched; every export works on a clean copy.
type Exporter struct {
	Hooks   *hooks.Hook
	Logger  *zap.SugaredLogger
	Options ExportOptions
}

func NewExporter(hookSystem *hooks.Hook, logger *zap.SugaredLogger, options ExportOptions) *Exporter {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Exporter{Hooks: hookSystem, Logger: logger, Options: options}
}

// Clean returns a copy of root without bookmark markers, caret containers,
// placeholders and editor-internal attributes or classes.
func Clean(root *html.Node) *html.Node {
	clone := dom.CloneDeep(root)
	for _, b := range dom.FindAll(clone, dom.IsBookmark) {
		dom.Detach(b)
	}
	for _, c := range dom.FindAll(clone, dom.IsCaretContainer) {
		dom.Unwrap(c)
	}
	dom.Visit(clone, func(n *html.Node) bool {
		switch {
		case dom.IsText(n):
			n.Data = dom.TrimZwsp(n.Data)
		case dom.IsElement(n):
			n.Attr = dom.PublicAttributes(n)
			for _, class := range dom.Classes(n) {
				if dom.IsInternalClass(class) {
					dom.RemoveClass(n, class)
				}
			}
		}
		return true
	})
	dom.Normalize(clone)
	return clone
}

// ExportHTML renders the content of root. getHTMLForExport hooks see the
// cleaned copy and may rewrite it, or set the HTML outright.
func (e *Exporter) ExportHTML(root *html.Node) string {
	clean := Clean(root)
	if e.Options.Linkify {
		linkify(clean)
	}
	rendered := ""
	if e.Hooks != nil {
		e.Hooks.ExecuteGetHTMLForExportHooks(&events.HTMLForExportContext{
			Root: clean,
			HTML: &rendered,
		})
	}
	if rendered == "" {
		rendered = dom.InnerHTML(clean)
	}
	e.Logger.Debugw("exported html", "bytes", len(rendered))
	return rendered
}

// ExportHTMLDocument wraps the exported content in a minimal document.
func (e *Exporter) ExportHTMLDocument(root *html.Node, title string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</title>\n</head>\n<body>\n")
	sb.WriteString(e.ExportHTML(root))
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}

var urlPattern = xurls.Strict()

// linkify wraps the URLs of text nodes outside anchors.
func linkify(root *html.Node) {
	texts := dom.FindAll(root, func(n *html.Node) bool {
		return dom.IsText(n) && dom.Closest(n, root, func(e *html.Node) bool { return dom.IsTag(e, "a") }) == nil
	})
	for _, t := range texts {
		matches := urlPattern.FindAllStringIndex(t.Data, -1)
		if len(matches) == 0 {
			continue
		}
		data := t.Data
		last := 0
		for _, m := range matches {
			if m[0] > last {
				dom.InsertBefore(dom.NewText(data[last:m[0]]), t)
			}
			url := data[m[0]:m[1]]
			a := dom.NewElement("a", html.Attribute{Key: "href", Val: url})
			a.AppendChild(dom.NewText(url))
			dom.InsertBefore(a, t)
			last = m[1]
		}
		if last < len(data) {
			dom.InsertBefore(dom.NewText(data[last:]), t)
		}
		dom.Detach(t)
	}
}

// isListItemOf reports whether li sits directly in a list of one of tags.
func isListItemOf(li *html.Node, tags ...string) bool {
	return li.Parent != nil && slices.Contains(tags, dom.Name(li.Parent))
}
