package point

import (
	"fmt"

	"github.com/ether/padformat/lib/dom"
	"golang.org/x/net/html"
)

// Point is a boundary position: between runes of a text node or between
// children of an element. Points are plain values and go stale once their
// node is moved; resolve them again after a mutation.
type Point struct {
	Node   *html.Node
	Offset int
}

func New(node *html.Node, offset int) Point {
	return Point{Node: node, Offset: offset}
}

// Before returns the point right before n in its parent.
func Before(n *html.Node) Point {
	return Point{Node: n.Parent, Offset: dom.Index(n)}
}

// After returns the point right after n in its parent.
func After(n *html.Node) Point {
	return Point{Node: n.Parent, Offset: dom.Index(n) + 1}
}

// Start returns the first position inside n.
func Start(n *html.Node) Point {
	return Point{Node: n, Offset: 0}
}

// End returns the last position inside n.
func End(n *html.Node) Point {
	return Point{Node: n, Offset: dom.Len(n)}
}

func (p Point) IsZero() bool {
	return p.Node == nil
}

func (p Point) Equal(o Point) bool {
	return p.Node == o.Node && p.Offset == o.Offset
}

func (p Point) IsLeftEdge() bool {
	return p.Offset == 0
}

func (p Point) IsRightEdge() bool {
	return p.Offset == dom.Len(p.Node)
}

func (p Point) IsEdge() bool {
	return p.IsLeftEdge() || p.IsRightEdge()
}

// IsLeftEdgeOf reports whether p is the very first position of ancestor.
func (p Point) IsLeftEdgeOf(ancestor *html.Node) bool {
	if !p.IsLeftEdge() {
		return false
	}
	for n := p.Node; n != nil && n != ancestor; n = n.Parent {
		if dom.Index(n) != 0 {
			return false
		}
	}
	return true
}

// IsRightEdgeOf reports whether p is the very last position of ancestor.
func (p Point) IsRightEdgeOf(ancestor *html.Node) bool {
	if !p.IsRightEdge() {
		return false
	}
	for n := p.Node; n != nil && n != ancestor; n = n.Parent {
		if n.NextSibling != nil {
			return false
		}
	}
	return true
}

// Child returns the child right after an element point, or nil.
func (p Point) Child() *html.Node {
	if dom.IsText(p.Node) {
		return nil
	}
	return dom.ChildAt(p.Node, p.Offset)
}

// Clamp keeps the offset inside the bounds of the node.
func (p Point) Clamp() Point {
	length := dom.Len(p.Node)
	if p.Offset > length {
		p.Offset = length
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

func (p Point) String() string {
	if p.Node == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s@%d", dom.Name(p.Node), p.Offset)
}
