package selection

import (
	"strings"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/point"
	"golang.org/x/net/html"
)

// Range is a pair of boundary points. No ordering is enforced; use Ordered
// when start must precede end.
type Range struct {
	Start point.Point
	End   point.Point
}

func New(start, end point.Point) Range {
	return Range{Start: start, End: end}
}

// FromNode returns a range over the contents of n.
func FromNode(n *html.Node) Range {
	return Range{Start: point.Start(n), End: point.End(n)}
}

// SelectNode returns a range around n in its parent.
func SelectNode(n *html.Node) Range {
	return Range{Start: point.Before(n), End: point.After(n)}
}

func Collapsed(p point.Point) Range {
	return Range{Start: p, End: p}
}

// FromTextOffsets maps rune offsets over the concatenated text of root to a
// range. A boundary between two text nodes resolves to the end of the first
// one, except for the start of a non collapsed range which resolves to the
// start of the second one.
func FromTextOffsets(root *html.Node, start, end int) (Range, bool) {
	if start > end {
		start, end = end, start
	}
	texts := dom.FindAll(root, dom.IsText)
	if len(texts) == 0 {
		if start == 0 && end == 0 {
			return Collapsed(point.Start(root)), true
		}
		return Range{}, false
	}
	startPoint, ok := locate(texts, start, start != end)
	if !ok {
		return Range{}, false
	}
	endPoint, ok := locate(texts, end, false)
	if !ok {
		return Range{}, false
	}
	return New(startPoint, endPoint), true
}

func locate(texts []*html.Node, offset int, preferNext bool) (point.Point, bool) {
	acc := 0
	for i, t := range texts {
		length := dom.Len(t)
		if offset < acc+length || (offset == acc+length && (!preferNext || i == len(texts)-1)) {
			return point.New(t, offset-acc), true
		}
		acc += length
	}
	return point.Point{}, false
}

func (r Range) IsZero() bool {
	return r.Start.IsZero()
}

func (r Range) IsCollapsed() bool {
	return r.Start.Equal(r.End)
}

// Collapse returns a collapsed range on one of the boundaries.
func (r Range) Collapse(toStart bool) Range {
	if toStart {
		return Collapsed(r.Start)
	}
	return Collapsed(r.End)
}

// Ordered returns the range with start before or equal to end.
func (r Range) Ordered() Range {
	if point.Compare(r.Start, r.End) > 0 {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// CommonAncestor returns the deepest node containing both boundaries.
func (r Range) CommonAncestor() *html.Node {
	return dom.CommonAncestor(r.Start.Node, r.End.Node)
}

// Text returns the text selected by the range.
func (r Range) Text() string {
	r = r.Ordered()
	var sb strings.Builder
	for _, t := range dom.FindAll(r.CommonAncestor(), dom.IsText) {
		if point.Compare(point.End(t), r.Start) <= 0 || point.Compare(point.Start(t), r.End) >= 0 {
			continue
		}
		runes := []rune(t.Data)
		lo, hi := 0, len(runes)
		if t == r.Start.Node {
			lo = r.Start.Offset
		}
		if t == r.End.Node {
			hi = r.End.Offset
		}
		if lo < hi {
			sb.WriteString(string(runes[lo:hi]))
		}
	}
	return sb.String()
}

// Expand grows both boundaries to the nearest ancestors satisfying pred: the
// start to the first position of its ancestor, the end to the last one.
func (r Range) Expand(pred func(*html.Node) bool) Range {
	startAncestor := dom.Closest(r.Start.Node, nil, pred)
	endAncestor := dom.Closest(r.End.Node, nil, pred)
	if startAncestor != nil {
		r.Start = point.Start(startAncestor)
	}
	if endAncestor != nil {
		r.End = point.End(endAncestor)
	}
	return r
}

// Contains reports whether n lies entirely inside the range.
func (r Range) Contains(n *html.Node) bool {
	r = r.Ordered()
	return point.Compare(r.Start, point.Before(n)) <= 0 && point.Compare(point.After(n), r.End) <= 0
}
