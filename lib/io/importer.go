package io

import (
	"regexp"
	"strings"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/exception"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Importer turns HTML or plain text into an editing root.
type Importer struct {
	logger *zap.SugaredLogger
}

func NewImporter(logger *zap.SugaredLogger) *Importer {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Importer{logger: logger}
}

var multipleNewlines = regexp.MustCompile(`\n{3,}`)

// ImportHTML parses a fragment or full document into a parentless div root.
// Scripts, styles, comments and markers left over from an earlier editing
// session are dropped.
func (i *Importer) ImportHTML(markup string) (*html.Node, error) {
	root, err := dom.ParseFragment(markup)
	if err != nil {
		return nil, exception.NewImportError("html could not be parsed", err)
	}
	dropped := 0
	for _, n := range dom.FindAll(root, func(n *html.Node) bool {
		if n == root {
			return false
		}
		return n.Type == html.CommentNode || n.Type == html.DoctypeNode ||
			dom.IsTag(n, "script", "style", "head", "title", "meta", "link") || dom.IsBookmark(n)
	}) {
		if n.Parent != nil {
			dom.Detach(n)
			dropped++
		}
	}
	for _, c := range dom.FindAll(root, dom.IsCaretContainer) {
		for _, t := range dom.FindAll(c, dom.IsText) {
			t.Data = dom.TrimZwsp(t.Data)
		}
		dom.Unwrap(c)
	}
	dom.Normalize(root)
	i.logger.Debugw("imported html", "bytes", len(markup), "dropped", dropped)
	return root, nil
}

// ImportText turns each line of text into a paragraph. Empty lines become
// empty paragraphs holding a br so they stay visible.
func (i *Importer) ImportText(text string) *html.Node {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = multipleNewlines.ReplaceAllString(text, "\n\n")
	text = strings.TrimSuffix(text, "\n")

	root := dom.NewElement("div")
	for _, line := range strings.Split(text, "\n") {
		p := dom.NewElement("p")
		if line == "" {
			p.AppendChild(dom.NewElement("br"))
		} else {
			p.AppendChild(dom.NewText(line))
		}
		root.AppendChild(p)
	}
	i.logger.Debugw("imported text", "lines", dom.ChildCount(root))
	return root
}
