package selection

import (
	"unicode/utf8"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/point"
	"github.com/rivo/uniseg"
)

// Normalize moves both boundaries to the nearest position a caret can be
// rendered at. The end walks leftwards and the start rightwards; a walk that
// would leave its block turns around once.
func (r Range) Normalize() Range {
	end := visiblePoint(r.End, false)
	start := end
	if !r.IsCollapsed() {
		start = visiblePoint(r.Start, true)
	}
	return New(start, end)
}

func visiblePoint(p point.Point, leftToRight bool) point.Point {
	if p.Node == nil {
		return p
	}
	if point.IsVisible(p) {
		if !p.IsEdge() ||
			(p.IsRightEdge() && !leftToRight) ||
			(p.IsLeftEdge() && leftToRight) ||
			(p.IsRightEdge() && leftToRight && dom.IsVoid(p.Node.NextSibling)) ||
			(p.IsLeftEdge() && !leftToRight && dom.IsVoid(p.Node.PrevSibling)) ||
			(dom.IsBlock(p.Node) && dom.IsEmpty(p.Node)) {
			return p
		}
	}

	block := dom.Closest(p.Node, nil, dom.IsBlock)
	prev, hasPrev := point.Prev(p, false)
	hasRightNode := !leftToRight && (p.IsLeftEdgeOf(block) || (hasPrev && dom.IsVoid(prev.Node)))
	next, hasNext := point.Next(p, false)
	hasLeftNode := leftToRight && (p.IsRightEdgeOf(block) || (hasNext && dom.IsVoid(next.Node)))
	if hasRightNode || hasLeftNode {
		if point.IsVisible(p) {
			return p
		}
		leftToRight = !leftToRight
	}

	var found point.Point
	var ok bool
	if leftToRight {
		if next, hasNext = point.Next(p, false); hasNext {
			found, ok = point.NextUntil(next, point.IsVisible)
		}
	} else {
		if prev, hasPrev = point.Prev(p, false); hasPrev {
			found, ok = point.PrevUntil(prev, point.IsVisible)
		}
	}
	if !ok {
		return p
	}
	return found
}

// SplitText splits the text nodes under both boundaries so that the range
// starts and ends on node edges. Offsets are first snapped back to grapheme
// cluster boundaries.
func (r Range) SplitText() Range {
	sameContainer := r.Start.Node == r.End.Node
	if dom.IsText(r.End.Node) {
		r.End.Offset = snapToGrapheme(r.End.Node.Data, r.End.Offset)
	}
	if dom.IsText(r.Start.Node) {
		r.Start.Offset = snapToGrapheme(r.Start.Node.Data, r.Start.Offset)
	}
	if dom.IsText(r.End.Node) && !r.End.IsEdge() {
		dom.SplitText(r.End.Node, r.End.Offset)
	}
	if dom.IsText(r.Start.Node) && !r.Start.IsEdge() {
		so := r.Start.Offset
		right := dom.SplitText(r.Start.Node, so)
		r.Start = point.New(right, 0)
		if sameContainer {
			r.End = point.New(right, r.End.Offset-so)
		}
	}
	return r
}

// snapToGrapheme returns the last grapheme cluster boundary at or before the
// rune offset.
func snapToGrapheme(text string, offset int) int {
	boundary := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		next := boundary + utf8.RuneCountInString(g.Str())
		if next > offset {
			break
		}
		boundary = next
	}
	return boundary
}
