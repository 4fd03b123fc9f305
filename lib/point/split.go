package point

import (
	"strings"

	"github.com/ether/padformat/lib/dom"
	"golang.org/x/net/html"
)

type SplitOptions struct {
	// NotSplitEdgePoint leaves elements untouched when the point sits on
	// one of their edges.
	NotSplitEdgePoint bool
	// SkipPaddingBlankHTML keeps empty block halves empty instead of padding
	// them with a line break.
	SkipPaddingBlankHTML bool
	// DiscardEmptySplits removes halves left without content.
	DiscardEmptySplits bool
}

// SplitNode splits the node of p at its offset and returns the right-hand
// result. Text nodes are never split on their edges; the node itself is
// returned for a left edge and its next sibling for a right edge. Elements
// behave the same with NotSplitEdgePoint, otherwise they are shallow cloned
// and the children from the offset on move into the clone.
func SplitNode(p Point, opts SplitOptions) *html.Node {
	if opts.DiscardEmptySplits {
		opts.SkipPaddingBlankHTML = true
	}
	if p.IsEdge() && (dom.IsText(p.Node) || opts.NotSplitEdgePoint) {
		if p.IsLeftEdge() {
			return p.Node
		}
		return p.Node.NextSibling
	}
	if dom.IsText(p.Node) {
		return dom.SplitText(p.Node, p.Offset)
	}

	left := p.Node
	child := dom.ChildAt(left, p.Offset)
	clone := dom.CloneShallow(left)
	if left.Parent != nil {
		dom.InsertAfter(clone, left)
	}
	for child != nil {
		next := child.NextSibling
		dom.Append(clone, child)
		child = next
	}
	if !opts.SkipPaddingBlankHTML {
		padBlank(left)
		padBlank(clone)
	}
	if opts.DiscardEmptySplits {
		if dom.IsEmpty(left) && left.Parent != nil {
			dom.Detach(left)
		}
		if dom.IsEmpty(clone) {
			next := clone.NextSibling
			dom.Detach(clone)
			return next
		}
	}
	return clone
}

func padBlank(n *html.Node) {
	if dom.IsBlock(n) && !dom.IsVoid(n) && dom.Len(n) == 0 {
		n.AppendChild(dom.NewElement("br"))
	}
}

// SplitTree splits every node from p.Node up to and including root and
// returns the right-hand half of root, or nil when p is outside root.
//
// When more than two levels separate p from root, p sits on a non-zero right
// edge and some non-root ancestor has a next sibling, the split moves to the
// start of that sibling instead: its first child when it is an element, the
// sibling itself when it is a text node without line breaks.
func SplitTree(root *html.Node, p Point, opts SplitOptions) *html.Node {
	if !dom.Contains(root, p.Node) {
		return nil
	}
	ancestors := dom.Ancestors(p.Node, root)
	if len(ancestors) == 1 {
		return SplitNode(p, opts)
	}

	if len(ancestors) > 2 && p.Offset != 0 && p.IsRightEdge() {
		var withSibling *html.Node
		for _, a := range ancestors[:len(ancestors)-1] {
			if a.NextSibling != nil {
				withSibling = a
				break
			}
		}
		if withSibling != nil {
			sibling := withSibling.NextSibling
			var target *html.Node
			switch {
			case dom.IsElement(sibling) && sibling.FirstChild != nil:
				target = sibling.FirstChild
			case dom.IsText(sibling) && !strings.ContainsAny(sibling.Data, "\r\n"):
				target = sibling
			}
			if target != nil {
				ancestors = dom.Ancestors(target, root)
				p = Point{Node: target, Offset: 0}
			}
		}
	}

	node := ancestors[0]
	for _, parent := range ancestors[1:] {
		if node == p.Node {
			node = SplitNode(p, opts)
		}
		offset := dom.Len(parent)
		if node != nil {
			offset = dom.Index(node)
		}
		node = SplitNode(Point{Node: parent, Offset: offset}, opts)
	}
	return node
}

// SplitAround lifts target out of root. Root is split into a part before
// target and a part after it, both keeping the ancestor chain between root
// and target; parts without content are dropped. Target ends up between the
// parts, in the former place of root.
func SplitAround(root, target *html.Node) *html.Node {
	if root == nil || target == nil || root.Parent == nil || !dom.IsChildOf(target, root) {
		return nil
	}
	right := splitChain(root, After(target))
	middle := splitChain(root, Before(target))
	dom.InsertBefore(target, middle)
	dom.Detach(middle)

	if trimEmpty(right) {
		drop(right)
	}
	if trimEmpty(root) {
		drop(root)
	}
	return target
}

// drop detaches an empty part and leaves its bookmark markers and split
// wrappers in its place. Bookmarks nested in a split wrapper travel with it.
func drop(part *html.Node) {
	kept := dom.FindAll(part, func(n *html.Node) bool {
		return dom.IsBookmark(n) || dom.IsSplitWrapper(n)
	})
	for _, m := range kept {
		if dom.Closest(m.Parent, part, dom.IsSplitWrapper) != nil {
			continue
		}
		dom.InsertBefore(m, part)
	}
	dom.Detach(part)
}

// splitChain splits every node from p.Node up to root unconditionally and
// returns the right-hand half of root.
func splitChain(root *html.Node, p Point) *html.Node {
	node, offset := p.Node, p.Offset
	for {
		clone := dom.CloneShallow(node)
		for c := dom.ChildAt(node, offset); c != nil; {
			next := c.NextSibling
			dom.Append(clone, c)
			c = next
		}
		dom.InsertAfter(clone, node)
		if node == root {
			return clone
		}
		offset = dom.Index(clone)
		node = node.Parent
	}
}

// trimEmpty drops empty elements below n and reports whether n itself is
// left without content. Bookmark markers do not count as content, split
// wrappers always do.
func trimEmpty(n *html.Node) bool {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if dom.IsElement(c) && !dom.IsVoid(c) && !dom.IsMarker(c) && !dom.IsSplitWrapper(c) && trimEmpty(c) {
			drop(c)
		}
		c = next
	}
	empty := true
	dom.Visit(n, func(c *html.Node) bool {
		switch {
		case dom.IsBookmark(c):
			return false
		case dom.IsCaretContainer(c), dom.IsSplitWrapper(c), dom.IsVoid(c):
			empty = false
		case dom.IsText(c):
			if dom.TrimZwsp(c.Data) != "" {
				empty = false
			}
		}
		return empty
	})
	return empty
}

// InsertAt places n at p, splitting a text node when p is inside it.
func InsertAt(p Point, n *html.Node) {
	if dom.IsText(p.Node) {
		switch {
		case p.IsLeftEdge():
			dom.InsertBefore(n, p.Node)
		case p.IsRightEdge():
			dom.InsertAfter(n, p.Node)
		default:
			right := dom.SplitText(p.Node, p.Offset)
			dom.InsertBefore(n, right)
		}
		return
	}
	ref := dom.ChildAt(p.Node, p.Offset)
	if ref == nil {
		dom.Append(p.Node, n)
		return
	}
	dom.InsertBefore(n, ref)
}
