package dom

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	// ZWSP is the zero-width placeholder held by caret containers.
	ZWSP = "\uFEFF"

	InternalAttrPrefix = "data-mce-"
	TypeAttr           = "data-mce-type"
	BookmarkType       = "bookmark"
	SplitWrapperType   = "split-wrapper"
	CaretType          = "format-caret"
	CaretID            = "_mce_caret"
)

// NewBookmarkMarker creates an empty bookmark marker span.
func NewBookmarkMarker(id string) *html.Node {
	return NewElement("span",
		html.Attribute{Key: "id", Val: id},
		html.Attribute{Key: TypeAttr, Val: BookmarkType},
	)
}

// NewSplitWrapper creates the temporary span that keeps a boundary together
// while a removal splits the tree around it. Unlike bookmarks it counts as
// content.
func NewSplitWrapper(id string) *html.Node {
	return NewElement("span",
		html.Attribute{Key: "id", Val: id},
		html.Attribute{Key: TypeAttr, Val: SplitWrapperType},
	)
}

// NewCaretContainer creates a caret container holding the placeholder.
func NewCaretContainer() *html.Node {
	caret := NewElement("span",
		html.Attribute{Key: "id", Val: CaretID},
		html.Attribute{Key: TypeAttr, Val: CaretType},
	)
	caret.AppendChild(NewText(ZWSP))
	return caret
}

func IsBookmark(n *html.Node) bool {
	return IsElement(n) && Attr(n, TypeAttr) == BookmarkType
}

func IsSplitWrapper(n *html.Node) bool {
	return IsElement(n) && Attr(n, TypeAttr) == SplitWrapperType
}

func IsCaretContainer(n *html.Node) bool {
	return IsElement(n) && (Attr(n, TypeAttr) == CaretType || ID(n) == CaretID)
}

// IsMarker reports whether n is editor bookkeeping rather than content.
func IsMarker(n *html.Node) bool {
	return IsBookmark(n) || IsCaretContainer(n)
}

// IsZwsp reports whether s is exactly one placeholder.
func IsZwsp(s string) bool {
	return s == ZWSP
}

func HasZwsp(s string) bool {
	return strings.Contains(s, ZWSP)
}

func TrimZwsp(s string) string {
	return strings.ReplaceAll(s, ZWSP, "")
}

// FindByID returns the first element below root with the given id.
func FindByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	Visit(root, func(n *html.Node) bool {
		if found != nil {
			return false
		}
		if IsElement(n) && ID(n) == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// FindAll returns every node below root, root included, satisfying pred in
// document order.
func FindAll(root *html.Node, pred func(*html.Node) bool) []*html.Node {
	list := make([]*html.Node, 0)
	Visit(root, func(n *html.Node) bool {
		if pred(n) {
			list = append(list, n)
		}
		return true
	})
	return list
}

// Visit walks the subtree of root in document order. Returning false from
// visit skips the children of the visited node.
func Visit(root *html.Node, visit func(*html.Node) bool) {
	if root == nil {
		return
	}
	if !visit(root) {
		return
	}
	for c := root.FirstChild; c != nil; {
		next := c.NextSibling
		Visit(c, visit)
		c = next
	}
}
