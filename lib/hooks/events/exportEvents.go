package events

import "golang.org/x/net/html"

// HTMLForExportContext is the context for the getHTMLForExport hook. Hooks
// may rewrite Root or set HTML; Root is rendered when HTML is left empty.
type HTMLForExportContext struct {
	Root *html.Node
	HTML *string
}

// TextForExportContext is the context for the getTextForExport hook
type TextForExportContext struct {
	Root *html.Node
	Text *string
}
