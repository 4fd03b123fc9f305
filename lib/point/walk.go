package point

import (
	"github.com/ether/padformat/lib/dom"
)

// Prev returns the structural predecessor of p, or false at the editing host
// boundary. With skipInner a text point jumps to the start of its node.
func Prev(p Point, skipInner bool) (Point, bool) {
	switch {
	case p.Offset == 0:
		if dom.IsEditingHost(p.Node) {
			return Point{}, false
		}
		return Before(p.Node), true
	case dom.HasChildren(p.Node):
		child := dom.ChildAt(p.Node, p.Offset-1)
		return End(child), true
	case skipInner:
		return Point{Node: p.Node, Offset: 0}, true
	}
	return Point{Node: p.Node, Offset: p.Offset - 1}, true
}

// Next returns the structural successor of p, or false at the editing host
// boundary. With skipInner a text point jumps to the end of its node.
func Next(p Point, skipInner bool) (Point, bool) {
	switch {
	case p.IsRightEdge():
		if dom.IsEditingHost(p.Node) {
			return Point{}, false
		}
		return After(p.Node), true
	case dom.HasChildren(p.Node):
		return Start(dom.ChildAt(p.Node, p.Offset)), true
	case skipInner:
		return End(p.Node), true
	}
	return Point{Node: p.Node, Offset: p.Offset + 1}, true
}

// PrevUntil walks backwards from p, p included, to the first point
// satisfying pred.
func PrevUntil(p Point, pred func(Point) bool) (Point, bool) {
	for ok := true; ok; p, ok = Prev(p, false) {
		if pred(p) {
			return p, true
		}
	}
	return Point{}, false
}

// NextUntil walks forwards from p, p included, to the first point
// satisfying pred.
func NextUntil(p Point, pred func(Point) bool) (Point, bool) {
	for ok := true; ok; p, ok = Next(p, false) {
		if pred(p) {
			return p, true
		}
	}
	return Point{}, false
}

// Walk visits every point from start to end inclusive in document order.
// Returning false from visit stops the walk. With skipInner, text nodes other
// than the boundary nodes are crossed in one step.
func Walk(start, end Point, visit func(Point) bool, skipInner bool) {
	p, ok := start, true
	for ok && p.Node != nil {
		if !visit(p) {
			return
		}
		if p.Equal(end) {
			return
		}
		skip := skipInner && start.Node != p.Node && end.Node != p.Node
		p, ok = Next(p, skip)
	}
}

// IsVisible reports whether a caret at p would be rendered: inside text,
// inside an empty element, or between line breaks and void elements.
func IsVisible(p Point) bool {
	if dom.IsText(p.Node) || !dom.HasChildren(p.Node) || dom.IsEmpty(p.Node) {
		return true
	}
	left := dom.ChildAt(p.Node, p.Offset-1)
	right := dom.ChildAt(p.Node, p.Offset)
	if (left == nil || dom.IsVoid(left)) && (right == nil || dom.IsVoid(right)) {
		return true
	}
	return dom.IsTag(right, "table")
}
