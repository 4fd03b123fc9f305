package format

import (
	"maps"
	"slices"
	"strings"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/selection"
	"golang.org/x/net/html"
)

// MatchMode selects how strictly styles and attributes are compared.
type MatchMode int

const (
	// Exact compares every declared value.
	Exact MatchMode = iota
	// Similar accepts any value as long as the declared ones are present.
	Similar
)

// MatchName reports whether n has the element shape of d.
func MatchName(n *html.Node, d *Descriptor) bool {
	if !dom.IsElement(n) {
		return false
	}
	if tagMatches(n, d.Inline, dom.IsInline) || tagMatches(n, d.Block, dom.IsBlock) {
		return true
	}
	return d.IsSelector() && d.matchesSelector(n)
}

func tagMatches(n *html.Node, tag string, any func(*html.Node) bool) bool {
	switch tag {
	case "":
		return false
	case AnyTag:
		return any(n)
	}
	return dom.Name(n) == tag
}

// MatchItems compares the styles or attributes declared by d against n.
// Values missing on both sides match.
func MatchItems(n *html.Node, d *Descriptor, item Item, vars Vars, mode MatchMode) bool {
	if d.Hooks != nil && d.Hooks.OnMatch != nil {
		return d.Hooks.OnMatch(n, d, item)
	}
	items := d.Styles
	if item == ItemAttributes {
		items = d.Attributes
	}
	for _, key := range slices.Sorted(maps.Keys(items)) {
		var value, expected string
		if item == ItemAttributes {
			value = dom.Attr(n, key)
			expected = ReplaceVars(items[key], vars)
		} else {
			value = dom.NormalizeStyleValue(key, dom.GetStyle(n, key))
			expected = dom.NormalizeStyleValue(key, ReplaceVars(items[key], vars))
		}
		if value == "" && expected == "" {
			continue
		}
		if mode == Similar && value == "" && !d.Exact {
			return false
		}
		if (mode != Similar || d.Exact) && !strings.EqualFold(value, expected) {
			return false
		}
	}
	return true
}

func matchClasses(n *html.Node, d *Descriptor, vars Vars) bool {
	for _, class := range d.Classes {
		if !dom.HasClass(n, ReplaceVars(class, vars)) {
			return false
		}
	}
	return true
}

func matchDescriptor(n *html.Node, d *Descriptor, vars Vars, mode MatchMode) bool {
	if !MatchName(n, d) || !MatchItems(n, d, ItemAttributes, vars, mode) {
		return false
	}
	styles := MatchItems(n, d, ItemStyles, vars, mode)
	classes := matchClasses(n, d, vars)
	if len(d.Styles) > 0 && len(d.Classes) > 0 && !d.Compound {
		return styles || classes
	}
	return styles && classes
}

func (f *Formatter) matchNode(n *html.Node, name string, vars Vars, mode MatchMode) *Descriptor {
	if !dom.IsElement(n) {
		return nil
	}
	list, ok := f.registry.Get(name)
	if !ok {
		return nil
	}
	for _, d := range list {
		if matchDescriptor(n, d, vars, mode) {
			return d
		}
	}
	return nil
}

func (f *Formatter) matchesUninheritedSelector(n *html.Node, name string) bool {
	list, _ := f.registry.Get(name)
	for _, d := range list {
		if d.Uninherited && d.matchesSelector(n) {
			return true
		}
	}
	return false
}

// matchParents finds the closest ancestor of n carrying a similar format,
// stopping early at uninherited selector hits and at the children of the
// root, and checks it with the requested mode.
func (f *Formatter) matchParents(n *html.Node, name string, vars Vars, mode MatchMode) *Descriptor {
	if n == nil || n == f.root || !dom.IsChildOf(n, f.root) {
		return nil
	}
	var matched *html.Node
	for e := n; e != nil && e != f.root; e = e.Parent {
		if f.matchesUninheritedSelector(e, name) || e.Parent == f.root || f.matchNode(e, name, vars, Similar) != nil {
			matched = e
			break
		}
	}
	return f.matchNode(matched, name, vars, mode)
}

// MatchNode reports the descriptor of name carried by n or its ancestors.
func (f *Formatter) MatchNode(name string, vars Vars, n *html.Node, mode MatchMode) *Descriptor {
	return f.matchParents(n, name, vars, mode)
}

// Match reports the descriptor of name active at the current selection, or
// nil.
func (f *Formatter) Match(name string, vars Vars, mode MatchMode) *Descriptor {
	r := f.host.Range()
	if r.IsZero() {
		return nil
	}
	return f.matchRange(name, vars, r, mode)
}

func (f *Formatter) matchRange(name string, vars Vars, r selection.Range, mode MatchMode) *Descriptor {
	node := selectedNode(r)
	if d := f.matchParents(node, name, vars, mode); d != nil {
		return d
	}
	if start := startNode(r); start != node {
		return f.matchParents(start, name, vars, mode)
	}
	return nil
}

// MatchAll returns the names active at the current selection, in the order
// given.
func (f *Formatter) MatchAll(names []string, vars Vars) []string {
	matched := make([]string, 0)
	for _, name := range names {
		if f.Match(name, vars, Exact) != nil {
			matched = append(matched, name)
		}
	}
	return matched
}

// matchAllOnNode lists the names whose descriptors match n itself.
func (f *Formatter) matchAllOnNode(n *html.Node, names []string) []string {
	matched := make([]string, 0)
	for _, name := range names {
		if f.matchNode(n, name, nil, Exact) != nil {
			matched = append(matched, name)
		}
	}
	return matched
}

// areSimilar reports whether two formats share a descriptor with the same
// element shape.
func (f *Formatter) areSimilar(name, other string) bool {
	a, _ := f.registry.Get(name)
	b, _ := f.registry.Get(other)
	for _, d1 := range a {
		for _, d2 := range b {
			if sameShape(d1, d2) {
				return true
			}
		}
	}
	return false
}

func sameShape(a, b *Descriptor) bool {
	return a.Inline == b.Inline && a.Block == b.Block && a.Selector == b.Selector &&
		maps.Equal(a.Styles, b.Styles) && maps.Equal(a.Attributes, b.Attributes) &&
		slices.Equal(a.Classes, b.Classes) && slices.Equal(a.StyleNames, b.StyleNames) &&
		slices.Equal(a.AttributeNames, b.AttributeNames)
}

// selectedNode returns the element the selection sits in, or the element
// it selects exactly.
func selectedNode(r selection.Range) *html.Node {
	r = r.Ordered()
	if r.Start.Node == r.End.Node && dom.IsElement(r.Start.Node) && r.End.Offset == r.Start.Offset+1 {
		if c := r.Start.Child(); dom.IsElement(c) {
			return c
		}
	}
	n := r.CommonAncestor()
	if dom.IsText(n) {
		n = n.Parent
	}
	return n
}

func startNode(r selection.Range) *html.Node {
	p := r.Ordered().Start
	n := p.Node
	if dom.IsElement(n) && dom.HasChildren(n) {
		n = childClamped(n, p.Offset)
	}
	if dom.IsText(n) {
		n = n.Parent
	}
	return n
}
