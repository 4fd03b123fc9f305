package format

import (
	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/point"
	"github.com/ether/padformat/lib/selection"
	"golang.org/x/net/html"
)

// ExpandRange grows r to the granularity of the named format without
// touching the tree.
func (f *Formatter) ExpandRange(name string, r selection.Range) (selection.Range, error) {
	list, err := f.lookup(name)
	if err != nil {
		return selection.Range{}, err
	}
	return f.expandRange(r.Ordered(), list, false), nil
}

func (f *Formatter) expandRange(r selection.Range, list []*Descriptor, includeTrailingSpace bool) selection.Range {
	format := list[0]
	collapsed := r.IsCollapsed()
	sc, so := r.Start.Node, r.Start.Offset
	ec, eo := r.End.Node, r.End.Offset

	// resolve index based boundaries to leaves
	if dom.IsElement(sc) && dom.HasChildren(sc) {
		sc = childClamped(sc, so)
		if dom.IsText(sc) {
			so = 0
		}
	}
	if dom.IsElement(ec) && dom.HasChildren(ec) {
		idx := eo - 1
		if collapsed {
			idx = eo
		}
		ec = childClamped(ec, idx)
		if dom.IsText(ec) {
			eo = dom.Len(ec)
		}
	}

	sc = f.nonEditableAncestorOr(sc)
	ec = f.nonEditableAncestorOr(ec)

	if isSelfOrParentBookmark(sc) {
		if !dom.IsBookmark(sc) {
			sc = sc.Parent
		}
		if s := sibling(sc, !collapsed); s != nil {
			sc = s
		}
		if dom.IsText(sc) {
			so = 0
			if collapsed {
				so = dom.Len(sc)
			}
		}
	}
	if isSelfOrParentBookmark(ec) {
		if !dom.IsBookmark(ec) {
			ec = ec.Parent
		}
		if s := sibling(ec, collapsed); s != nil {
			ec = s
		}
		if dom.IsText(ec) {
			eo = dom.Len(ec)
			if collapsed {
				eo = 0
			}
		}
	}

	if collapsed && dom.IsText(sc) {
		word := selection.Collapsed(point.New(sc, so)).WordRange(selection.WordOptions{FindAfter: true})
		if includeTrailingSpace && dom.IsText(word.End.Node) && point.CharTypeAfter(word.End) == point.Space {
			word.End.Offset++
		}
		sc, so = word.Start.Node, word.Start.Offset
		ec, eo = word.End.Node, word.End.Offset
	}

	// climb sharp leaves so fewer wrappers are needed
	if format.IsInline() || format.BlockExpand {
		if !format.IsInline() || !dom.IsText(sc) || so == 0 {
			sc = f.findParentContainer(list, sc, so, true)
		}
		if !format.IsInline() || !dom.IsText(ec) || eo == dom.Len(ec) {
			ec = f.findParentContainer(list, ec, eo, false)
		}
	}

	if format.expandsToSelector() {
		sc = f.findSelectorEndPoint(list, collapsed, sc, false)
		ec = f.findSelectorEndPoint(list, collapsed, ec, true)
	}

	if format.IsBlock() || format.IsSelector() {
		sc = f.findBlockEndPoint(list, sc, false)
		ec = f.findBlockEndPoint(list, ec, true)
	}

	if dom.IsElement(sc) && sc.Parent != nil && sc != f.root {
		so = dom.Index(sc)
		sc = sc.Parent
	}
	if dom.IsElement(ec) && ec.Parent != nil && ec != f.root {
		eo = dom.Index(ec) + 1
		ec = ec.Parent
	}
	return selection.New(point.New(sc, so), point.New(ec, eo))
}

// nonEditableAncestorOr returns the closest element declaring
// contenteditable=false above n, or n when the closest declaration allows
// editing.
func (f *Formatter) nonEditableAncestorOr(n *html.Node) *html.Node {
	for e := n; e != nil; e = e.Parent {
		if editable, ok := dom.ContentEditable(e); ok {
			if editable {
				return n
			}
			return e
		}
		if e == f.root {
			break
		}
	}
	return n
}

func (f *Formatter) findParentContainer(list []*Descriptor, container *html.Node, offset int, start bool) *html.Node {
	if dom.IsText(container) && !isWhiteSpaceNode(container, false) {
		if start && offset > 0 || !start && offset < dom.Len(container) {
			return container
		}
	}
	parent := container
	for {
		if !list[0].BlockExpand && dom.IsBlock(parent) {
			return parent
		}
		for s := sibling(parent, !start); s != nil; s = sibling(s, !start) {
			allowSpaces := dom.IsText(s) && !f.isAtBlockBoundary(s, !start)
			if !dom.IsBookmark(s) && !isBogusBr(s) && !isWhiteSpaceNode(s, allowSpaces) {
				return parent
			}
		}
		if parent == f.root || parent.Parent == nil || parent.Parent == f.root {
			return parent
		}
		parent = parent.Parent
	}
}

// isAtBlockBoundary reports whether n is the last node in the given
// direction up to the edge of its block.
func (f *Formatter) isAtBlockBoundary(n *html.Node, forward bool) bool {
	for e := n; e != nil; e = e.Parent {
		if sibling(e, forward) != nil {
			return false
		}
		if e.Parent == nil || e.Parent == f.root || dom.IsBlock(e.Parent) {
			return true
		}
	}
	return true
}

func (f *Formatter) findSelectorEndPoint(list []*Descriptor, collapsed bool, container *html.Node, forward bool) *html.Node {
	if dom.IsText(container) && container.Data == "" {
		if s := sibling(container, forward); s != nil {
			container = s
		}
	}
	for e := container; e != nil && e != f.root; e = e.Parent {
		for _, d := range list {
			if !d.allowsCollapsed(collapsed) {
				continue
			}
			if d.IsSelector() && d.matchesSelector(e) {
				return e
			}
		}
	}
	return container
}

func (f *Formatter) findBlockEndPoint(list []*Descriptor, container *html.Node, forward bool) *html.Node {
	format := list[0]
	var node *html.Node
	if format.IsNonWrappingBlock() {
		node = dom.Closest(container, f.root, func(e *html.Node) bool {
			return dom.IsElement(e) && tagMatches(e, format.Block, dom.IsBlock)
		})
	}
	if node == nil {
		scope := dom.Closest(container, f.root, func(e *html.Node) bool {
			return dom.IsTag(e, "li", "td", "th", "summary")
		})
		if scope == nil {
			scope = f.root
		}
		from := container
		if dom.IsText(from) {
			from = from.Parent
		}
		node = dom.Closest(from, scope, func(e *html.Node) bool {
			return e != f.root && dom.IsTextBlock(e)
		})
		// bare list item content is wrapped together with its list
		if node == nil && format.IsWrappingBlock() && dom.IsTag(scope, "li") {
			node = scope
		}
	}
	if node != nil && format.IsWrappingBlock() {
		// inner lists are wrapped with their outermost list
		for e := node; e != nil && e != f.root; e = e.Parent {
			if dom.IsTag(e, "ul", "ol") {
				node = e
			}
		}
	}
	if node == nil {
		node = container
		for s := sibling(node, forward); s != nil && !dom.IsBlock(s); s = sibling(node, forward) {
			node = s
			if dom.IsBr(node) {
				break
			}
		}
	}
	return node
}
