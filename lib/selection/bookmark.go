package selection

import (
	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/point"
	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// PathBookmark stores both boundaries as child index paths from a stable
// ancestor. The last path element is the offset inside the boundary node.
type PathBookmark struct {
	Start []int `json:"start"`
	End   []int `json:"end"`
}

func NewPathBookmark(root *html.Node, r Range) (PathBookmark, bool) {
	start, ok := pathOf(root, r.Start)
	if !ok {
		return PathBookmark{}, false
	}
	end, ok := pathOf(root, r.End)
	if !ok {
		return PathBookmark{}, false
	}
	return PathBookmark{Start: start, End: end}, true
}

func pathOf(root *html.Node, p point.Point) ([]int, bool) {
	if !dom.Contains(root, p.Node) {
		return nil, false
	}
	path := []int{p.Offset}
	for n := p.Node; n != root; n = n.Parent {
		path = append([]int{dom.Index(n)}, path...)
	}
	return path, true
}

// Resolve turns the paths back into a range below root.
func (b PathBookmark) Resolve(root *html.Node) (Range, bool) {
	start, ok := resolvePath(root, b.Start)
	if !ok {
		return Range{}, false
	}
	end, ok := resolvePath(root, b.End)
	if !ok {
		return Range{}, false
	}
	return New(start, end), true
}

func resolvePath(root *html.Node, path []int) (point.Point, bool) {
	if len(path) == 0 {
		return point.Point{}, false
	}
	n := root
	for _, idx := range path[:len(path)-1] {
		n = dom.ChildAt(n, idx)
		if n == nil {
			return point.Point{}, false
		}
	}
	return point.New(n, path[len(path)-1]).Clamp(), true
}

// MarkerBookmark keeps a selection alive through arbitrary restructuring by
// inserting marker spans at both boundaries. The markers are held by handle;
// their ids are only used to recover them when the handles went stale.
type MarkerBookmark struct {
	ID        string
	Start     *html.Node
	End       *html.Node
	Collapsed bool
}

func (b *MarkerBookmark) StartID() string {
	return b.ID + "_start"
}

func (b *MarkerBookmark) EndID() string {
	return b.ID + "_end"
}

// NewMarkerBookmark inserts markers for r. The end marker goes in first so
// that the start position stays valid.
func NewMarkerBookmark(r Range) *MarkerBookmark {
	r = r.Ordered()
	b := &MarkerBookmark{ID: uuid.NewString(), Collapsed: r.IsCollapsed()}
	if !b.Collapsed {
		b.End = dom.NewBookmarkMarker(b.EndID())
		point.InsertAt(r.End, b.End)
	}
	b.Start = dom.NewBookmarkMarker(b.StartID())
	point.InsertAt(r.Start, b.Start)
	return b
}

// Range returns the range currently spanned by the markers without removing
// them.
func (b *MarkerBookmark) Range() Range {
	start := point.After(b.Start)
	if b.Collapsed || b.End == nil {
		return Collapsed(start)
	}
	return New(start, point.Before(b.End))
}

// Resolve removes the markers, stray copies included, and returns the range
// they marked. Text split by the markers is merged back.
func (b *MarkerBookmark) Resolve(root *html.Node) (Range, bool) {
	start := b.locate(root, b.Start, b.StartID())
	var end *html.Node
	if !b.Collapsed {
		end = b.locate(root, b.End, b.EndID())
	}
	b.removeStrays(root, start, end)

	if start == nil {
		if end != nil {
			removeMarker(end)
		}
		return Range{}, false
	}
	startPoint := removeMarker(start)
	if end == nil {
		return Collapsed(startPoint), true
	}
	return New(startPoint, removeMarker(end)), true
}

// Remove drops the markers without computing a range.
func (b *MarkerBookmark) Remove(root *html.Node) {
	b.removeStrays(root, nil, nil)
}

func (b *MarkerBookmark) locate(root, handle *html.Node, id string) *html.Node {
	if handle != nil && dom.Contains(root, handle) {
		return handle
	}
	return dom.FindByID(root, id)
}

func (b *MarkerBookmark) removeStrays(root, keepStart, keepEnd *html.Node) {
	strays := dom.FindAll(root, func(n *html.Node) bool {
		if !dom.IsBookmark(n) || n == keepStart || n == keepEnd {
			return false
		}
		id := dom.ID(n)
		return id == b.StartID() || id == b.EndID()
	})
	for _, n := range strays {
		removeMarker(n)
	}
}

// removeMarker detaches a marker and returns the point it stood at, merging
// the text nodes around it.
func removeMarker(marker *html.Node) point.Point {
	parent := marker.Parent
	if parent == nil {
		return point.Point{}
	}
	prev, next := marker.PrevSibling, marker.NextSibling
	idx := dom.Index(marker)
	dom.Detach(marker)
	switch {
	case dom.IsText(prev) && dom.IsText(next):
		offset := dom.Len(prev)
		prev.Data += next.Data
		dom.Detach(next)
		return point.New(prev, offset)
	case dom.IsText(prev):
		return point.End(prev)
	case dom.IsText(next):
		return point.Start(next)
	}
	return point.New(parent, idx)
}
