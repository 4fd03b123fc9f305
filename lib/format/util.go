package format

import (
	"strings"

	"github.com/ether/padformat/lib/dom"
	"golang.org/x/net/html"
)

func sibling(n *html.Node, forward bool) *html.Node {
	if n == nil {
		return nil
	}
	if forward {
		return n.NextSibling
	}
	return n.PrevSibling
}

func childClamped(n *html.Node, offset int) *html.Node {
	count := dom.ChildCount(n)
	if offset > count-1 {
		offset = count - 1
	}
	if offset < 0 {
		offset = 0
	}
	if c := dom.ChildAt(n, offset); c != nil {
		return c
	}
	return n
}

// isWhiteSpaceNode reports whether n is a text node of collapsible
// whitespace. With allowSpaces plain spaces count as content.
func isWhiteSpaceNode(n *html.Node, allowSpaces bool) bool {
	if !dom.IsText(n) {
		return false
	}
	cut := " \t\r\n"
	if allowSpaces {
		cut = "\t\r\n"
	}
	return strings.Trim(n.Data, cut) == ""
}

func isEmptyTextNode(n *html.Node) bool {
	return dom.IsText(n) && (n.Data == "" || isWhiteSpaceNode(n, false) && n.Parent != nil && dom.IsBlock(n.Parent))
}

func isBogusBr(n *html.Node) bool {
	return dom.IsBr(n) && dom.HasAttr(n, "data-mce-bogus")
}

func isSelfOrParentBookmark(n *html.Node) bool {
	return n != nil && (dom.IsBookmark(n) || dom.IsBookmark(n.Parent))
}

// nonWhiteSpaceSibling skips whitespace-only text next to n.
func nonWhiteSpaceSibling(n *html.Node, forward bool) *html.Node {
	for s := sibling(n, forward); s != nil; s = sibling(s, forward) {
		if dom.IsElement(s) || !isWhiteSpaceNode(s, false) {
			return s
		}
	}
	return nil
}

// nextInTree returns the node following n in document order without
// leaving root.
func nextInTree(n, root *html.Node) *html.Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for e := n; e != nil && e != root; e = e.Parent {
		if e.NextSibling != nil {
			return e.NextSibling
		}
	}
	return nil
}

// prevInTree returns the node preceding n in document order without leaving
// root.
func prevInTree(n, root *html.Node) *html.Node {
	if n == root {
		return nil
	}
	if s := n.PrevSibling; s != nil {
		for s.LastChild != nil {
			s = s.LastChild
		}
		return s
	}
	if n.Parent == root {
		return nil
	}
	return n.Parent
}

// descendants lists the elements below n matching pred, n excluded.
func descendants(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	found := make([]*html.Node, 0)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		found = append(found, dom.FindAll(c, func(e *html.Node) bool {
			return dom.IsElement(e) && pred(e)
		})...)
	}
	return found
}

// textDecoration returns the closest non-none text-decoration declared on n
// or its ancestors up to root.
func textDecoration(n, root *html.Node) string {
	decoration := ""
	for e := n; e != nil; e = e.Parent {
		if dom.IsElement(e) {
			decoration = dom.GetStyle(e, "text-decoration")
			if decoration != "" && decoration != "none" {
				return decoration
			}
		}
		if e == root {
			break
		}
	}
	return decoration
}
