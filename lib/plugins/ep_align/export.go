package ep_align

import (
	"slices"
	"strings"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/hooks/events"
	"golang.org/x/net/html"
)

// analyzeBlock extracts the alignment of a block, from its text-align style
// or the legacy align attribute. It returns nil when the block is not
// aligned.
func analyzeBlock(n *html.Node) *string {
	align := strings.ToLower(dom.GetStyle(n, "text-align"))
	if align == "" {
		align = strings.ToLower(strings.TrimSpace(dom.Attr(n, "align")))
	}
	if !slices.Contains(Alignments, align) {
		return nil
	}
	return &align
}

// GetHTMLForExport rewrites alignment into one form: a text-align style.
// The legacy align attribute is folded into the style and left alignment,
// the default, is dropped.
func GetHTMLForExport(event *events.HTMLForExportContext) {
	blocks := dom.FindAll(event.Root, func(n *html.Node) bool {
		return n != event.Root && dom.IsElement(n) && dom.IsBlock(n)
	})
	for _, block := range blocks {
		align := analyzeBlock(block)
		dom.RemoveAttr(block, "align")
		if align == nil {
			continue
		}
		if *align == "left" {
			dom.RemoveStyle(block, "text-align")
			continue
		}
		dom.SetStyle(block, "text-align", *align)
	}
}
