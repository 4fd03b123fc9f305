package selection

import (
	"slices"

	"github.com/ether/padformat/lib/dom"
	"golang.org/x/net/html"
)

// Walk splits the range into the minimal runs of sibling subtrees spanning
// it and calls visit once per run: first the runs climbing out of the start
// boundary, then the run between the two branches under the common ancestor,
// then the runs climbing out of the end boundary. Text nodes touched only on
// their outer edge are left out.
func (r Range) Walk(visit func([]*html.Node)) {
	startContainer, startOffset := r.Start.Node, r.Start.Offset
	endContainer, endOffset := r.End.Node, r.End.Offset

	exclude := func(nodes []*html.Node) []*html.Node {
		if len(nodes) > 0 {
			first := nodes[0]
			if dom.IsText(first) && first == startContainer && startOffset >= dom.Len(first) {
				nodes = nodes[1:]
			}
		}
		if len(nodes) > 0 {
			last := nodes[len(nodes)-1]
			if endOffset == 0 && last == endContainer && dom.IsText(last) {
				nodes = nodes[:len(nodes)-1]
			}
		}
		return nodes
	}
	emit := func(nodes []*html.Node) {
		if nodes = exclude(nodes); len(nodes) > 0 {
			visit(nodes)
		}
	}
	collectSiblings := func(n *html.Node, forward bool, stop *html.Node) []*html.Node {
		siblings := make([]*html.Node, 0)
		for ; n != nil && n != stop; n = sibling(n, forward) {
			siblings = append(siblings, n)
		}
		return siblings
	}
	walkBoundary := func(start, stop *html.Node, forward bool) {
		for n := start; n != nil && n != stop; n = n.Parent {
			from := n
			if n != start {
				from = sibling(n, forward)
			}
			siblings := collectSiblings(from, forward, nil)
			if len(siblings) > 0 {
				if !forward {
					slices.Reverse(siblings)
				}
				emit(siblings)
			}
		}
	}

	if dom.IsElement(startContainer) && dom.HasChildren(startContainer) {
		startContainer = childClamped(startContainer, startOffset)
	}
	if dom.IsElement(endContainer) && dom.HasChildren(endContainer) {
		endContainer = childClamped(endContainer, endOffset-1)
	}

	if startContainer == endContainer {
		emit([]*html.Node{startContainer})
		return
	}

	ancestor := dom.CommonAncestor(startContainer, endContainer)
	for n := startContainer; n != nil; n = n.Parent {
		if n == endContainer {
			walkBoundary(startContainer, ancestor, true)
			return
		}
		if n == ancestor {
			break
		}
	}
	for n := endContainer; n != nil; n = n.Parent {
		if n == startContainer {
			walkBoundary(endContainer, ancestor, false)
			return
		}
		if n == ancestor {
			break
		}
	}

	startPoint := childOnPath(startContainer, ancestor)
	endPoint := childOnPath(endContainer, ancestor)

	walkBoundary(startContainer, startPoint, true)

	from := startPoint
	if startPoint != startContainer {
		from = startPoint.NextSibling
	}
	stop := endPoint
	if endPoint == endContainer {
		stop = endPoint.NextSibling
	}
	emit(collectSiblings(from, true, stop))

	walkBoundary(endContainer, endPoint, false)
}

func sibling(n *html.Node, forward bool) *html.Node {
	if forward {
		return n.NextSibling
	}
	return n.PrevSibling
}

// childClamped returns the child at offset clamped to the child list.
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

// childOnPath returns the ancestor of n that is a direct child of root, or n
// when there is none.
func childOnPath(n, root *html.Node) *html.Node {
	for e := n; e != nil; e = e.Parent {
		if e.Parent == root {
			return e
		}
	}
	return n
}
