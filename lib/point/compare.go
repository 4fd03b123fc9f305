package point

import (
	"github.com/ether/padformat/lib/dom"
	"golang.org/x/net/html"
)

// Compare orders two points of the same tree: -1 when a is before b, 0 when
// they denote the same position and 1 when a is after b.
func Compare(a, b Point) int {
	if a.Node == b.Node {
		switch {
		case a.Offset < b.Offset:
			return -1
		case a.Offset > b.Offset:
			return 1
		}
		return 0
	}
	if precedes(b.Node, a.Node) && !dom.Contains(b.Node, a.Node) {
		return -Compare(b, a)
	}
	if dom.Contains(a.Node, b.Node) {
		child := b.Node
		for child.Parent != a.Node {
			child = child.Parent
		}
		if dom.Index(child) < a.Offset {
			return 1
		}
		return -1
	}
	if dom.Contains(b.Node, a.Node) {
		return -Compare(b, a)
	}
	return -1
}

// precedes reports whether a comes before b in document order.
func precedes(a, b *html.Node) bool {
	if a == b {
		return false
	}
	if dom.Contains(a, b) {
		return true
	}
	if dom.Contains(b, a) {
		return false
	}
	ca := dom.Ancestors(a, nil)
	cb := dom.Ancestors(b, nil)
	i, j := len(ca)-1, len(cb)-1
	for i > 0 && j > 0 && ca[i-1] == cb[j-1] {
		i--
		j--
	}
	return dom.Index(ca[i-1]) < dom.Index(cb[j-1])
}

// Precedes reports whether node a comes before node b in document order.
func Precedes(a, b *html.Node) bool {
	return precedes(a, b)
}
