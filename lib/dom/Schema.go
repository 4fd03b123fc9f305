package dom

import (
	"strings"

	"golang.org/x/net/html"
)

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var blockElements = set(
	"address", "article", "aside", "blockquote", "body", "caption", "center", "dd", "details",
	"dialog", "dir", "div", "dl", "dt", "fieldset", "figcaption", "figure", "footer", "form",
	"h1", "h2", "h3", "h4", "h5", "h6", "header", "hgroup", "hr", "html", "li", "main", "menu",
	"nav", "ol", "p", "pre", "section", "summary", "table", "tbody", "td", "tfoot", "th",
	"thead", "tr", "ul",
)

var textBlockElements = set(
	"h1", "h2", "h3", "h4", "h5", "h6", "p", "div", "address", "pre", "form", "blockquote",
	"center", "dir", "fieldset", "header", "footer", "article", "section", "hgroup", "aside",
	"main", "nav", "figure",
)

var voidElements = set(
	"area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "param",
	"source", "track", "wbr",
)

// Elements whose content model is phrasing content only.
var phrasingParents = set(
	"p", "h1", "h2", "h3", "h4", "h5", "h6", "pre", "address", "dt", "caption", "summary",
)

// Structural containers mapped to the only children they accept.
var structuralContainers = map[string]map[string]bool{
	"ul":       set("li"),
	"ol":       set("li"),
	"menu":     set("li"),
	"dl":       set("dt", "dd", "div"),
	"table":    set("caption", "colgroup", "thead", "tbody", "tfoot", "tr"),
	"thead":    set("tr"),
	"tbody":    set("tr"),
	"tfoot":    set("tr"),
	"tr":       set("td", "th"),
	"colgroup": set("col"),
}

// Structural children mapped to the only parents that accept them.
var structuralChildren = map[string]map[string]bool{
	"li":       set("ul", "ol", "menu"),
	"dt":       set("dl", "div"),
	"dd":       set("dl", "div"),
	"tr":       set("table", "thead", "tbody", "tfoot"),
	"td":       set("tr"),
	"th":       set("tr"),
	"thead":    set("table"),
	"tbody":    set("table"),
	"tfoot":    set("table"),
	"caption":  set("table"),
	"colgroup": set("table"),
	"col":      set("colgroup", "table"),
}

func IsBlockName(name string) bool {
	return blockElements[strings.ToLower(name)]
}

func IsTextBlockName(name string) bool {
	return textBlockElements[strings.ToLower(name)]
}

func IsVoidName(name string) bool {
	return voidElements[strings.ToLower(name)]
}

func IsBlock(n *html.Node) bool {
	return IsElement(n) && IsBlockName(n.Data)
}

func IsTextBlock(n *html.Node) bool {
	return IsElement(n) && IsTextBlockName(n.Data)
}

func IsInline(n *html.Node) bool {
	return IsElement(n) && !IsBlockName(n.Data)
}

func IsVoid(n *html.Node) bool {
	return IsElement(n) && IsVoidName(n.Data)
}

func IsBr(n *html.Node) bool {
	return IsTag(n, "br")
}

func IsTableCell(n *html.Node) bool {
	return IsTag(n, "td", "th")
}

func IsList(n *html.Node) bool {
	return IsTag(n, "ul", "ol")
}

// IsValidChild reports whether an element named child may be placed directly
// inside an element named parent. Text nodes use TextName.
func IsValidChild(parent, child string) bool {
	parent = strings.ToLower(parent)
	child = strings.ToLower(child)
	if IsVoidName(parent) {
		return false
	}
	if allowed, ok := structuralContainers[parent]; ok {
		return allowed[child]
	}
	if parents, ok := structuralChildren[child]; ok {
		return parents[parent]
	}
	if child == TextName {
		return true
	}
	if parent == "a" && child == "a" {
		return false
	}
	if phrasingParents[parent] || !IsBlockName(parent) {
		return !IsBlockName(child)
	}
	return true
}
