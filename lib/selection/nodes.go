package selection

import (
	"slices"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/point"
	"golang.org/x/net/html"
)

type NodesOptions struct {
	// FullyContains keeps only nodes whose left and right edges are both
	// inside the range.
	FullyContains bool
	// IncludeAncestor collects the nearest ancestor satisfying the predicate
	// instead of the visited node.
	IncludeAncestor bool
}

// Nodes lists the distinct nodes touched by the range that satisfy pred, in
// document order. A nil pred accepts every node.
func (r Range) Nodes(pred func(*html.Node) bool, opts NodesOptions) []*html.Node {
	if pred == nil {
		pred = func(*html.Node) bool { return true }
	}
	nodes := make([]*html.Node, 0)
	leftEdges := make([]*html.Node, 0)
	point.Walk(r.Start, r.End, func(p point.Point) bool {
		if dom.IsEditingHost(p.Node) {
			return true
		}
		var n *html.Node
		switch {
		case opts.FullyContains:
			if p.IsLeftEdge() {
				leftEdges = append(leftEdges, p.Node)
			}
			if p.IsRightEdge() && slices.Contains(leftEdges, p.Node) {
				n = p.Node
			}
		case opts.IncludeAncestor:
			n = dom.Closest(p.Node, nil, pred)
		default:
			n = p.Node
		}
		if n != nil && pred(n) && !slices.Contains(nodes, n) {
			nodes = append(nodes, n)
		}
		return true
	}, true)
	return nodes
}
