package format

import (
	"strings"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/point"
	"github.com/ether/padformat/lib/selection"
	"golang.org/x/net/html"
)

type removeResult int

const (
	keep removeResult = iota
	rename
	removed
)

const (
	removeStartID = "_start"
	removeEndID   = "_end"
)

// removeNodeFormatInternal strips what d declares from n. Styles and
// attributes are only removed when compare is nil or carries the same
// values. The node itself is never detached here.
func (f *Formatter) removeNodeFormatInternal(op *operation, d *Descriptor, n, compare *html.Node) removeResult {
	if !d.CeFalseOverride && !dom.IsEditable(n, f.root) {
		return keep
	}
	if !MatchName(n, d) && !(d.Links && dom.IsTag(n, "a")) {
		return keep
	}

	if d.IsInline() && d.Remove == RemoveAll && d.PreserveAttributes != nil {
		preserved := make([]html.Attribute, 0)
		for _, a := range n.Attr {
			for _, name := range d.PreserveAttributes {
				if strings.EqualFold(a.Key, name) {
					preserved = append(preserved, a)
					break
				}
			}
		}
		n.Attr = preserved
		if len(preserved) > 0 {
			return rename
		}
	}

	if d.Remove != RemoveAll {
		f.removeStyles(op, d, n, compare)
		for _, name := range sortedKeys(d.Attributes) {
			value, ok := resolved(d.Attributes[name], op.vars)
			if d.RemoveSimilar || compare == nil || !ok || dom.Attr(compare, name) == value {
				removeAttribute(n, name)
			}
		}
		for _, name := range d.AttributeNames {
			removeAttribute(n, name)
		}
		for _, class := range d.Classes {
			class = ReplaceVars(class, op.vars)
			if compare == nil || dom.HasClass(compare, class) {
				dom.RemoveClass(n, class)
			}
		}
		for _, a := range n.Attr {
			if !dom.IsInternalAttr(a.Key) {
				return keep
			}
		}
	}

	if d.Remove != RemoveNone {
		return removed
	}
	return keep
}

func (f *Formatter) removeStyles(op *operation, d *Descriptor, n, compare *html.Node) {
	for _, name := range sortedKeys(d.Styles) {
		value, ok := resolved(d.Styles[name], op.vars)
		value = dom.NormalizeStyleValue(name, value)
		if d.RemoveSimilar || compare == nil || !ok ||
			strings.EqualFold(dom.NormalizeStyleValue(name, dom.GetStyle(compare, name)), value) {
			dom.RemoveStyle(n, name)
		}
	}
	for _, name := range d.StyleNames {
		dom.RemoveStyle(n, name)
	}
}

// removeAttribute drops one attribute. Internal classes survive a class
// removal and list items keep a list-style-type of none.
func removeAttribute(n *html.Node, name string) {
	name = strings.ToLower(name)
	switch name {
	case "class":
		internal := make([]string, 0)
		for _, class := range dom.Classes(n) {
			if dom.IsInternalClass(class) {
				internal = append(internal, class)
			}
		}
		if len(internal) > 0 {
			dom.SetAttr(n, "class", strings.Join(internal, " "))
			return
		}
	case "src", "href", "style":
		dom.RemoveAttr(n, dom.InternalAttrPrefix+name)
	}
	if name == "style" && dom.IsTag(n, "li") && dom.GetStyle(n, "list-style-type") == "none" {
		dom.RemoveAttr(n, "style")
		dom.SetStyle(n, "list-style-type", "none")
		return
	}
	dom.RemoveAttr(n, name)
}

// removeNodeFormat removes d from n and reports whether n changed shape.
func (f *Formatter) removeNodeFormat(op *operation, d *Descriptor, n, compare *html.Node) bool {
	switch f.removeNodeFormatInternal(op, d, n, compare) {
	case rename:
		dom.Rename(n, "span")
		return true
	case removed:
		f.removeElement(d, n)
		return true
	}
	return false
}

// removeElement unwraps n. Blocks directly below the root have their
// children regrouped into the forced root block first.
func (f *Formatter) removeElement(d *Descriptor, n *html.Node) {
	if d.IsBlock() && n.Parent == f.root && f.options.ForcedRootBlock != "" {
		var block *html.Node
		for _, c := range dom.Children(n) {
			if !dom.IsValidChild(f.options.ForcedRootBlock, dom.Name(c)) {
				block = nil
				continue
			}
			if block == nil {
				block = dom.Wrap(c, dom.NewElement(f.options.ForcedRootBlock))
				continue
			}
			dom.Append(block, c)
		}
	}
	if d.IsMixed() && dom.Name(n) != d.Inline {
		return
	}
	dom.Unwrap(n)
}

// removeFromClone strips the format list from a detached clone. It returns
// nil when the clone should not be part of the rebuilt chain.
func (f *Formatter) removeFromClone(op *operation, clone *html.Node) *html.Node {
	for _, d := range op.list {
		switch f.removeNodeFormatInternal(op, d, clone, clone) {
		case rename:
			dom.Rename(clone, "span")
		case removed:
			return nil
		}
	}
	return clone
}

// findFormatRoot returns the outermost ancestor of n carrying the format in
// a splittable way.
func (f *Formatter) findFormatRoot(op *operation, n *html.Node) *html.Node {
	var formatRoot *html.Node
	for e := n.Parent; e != nil && e != f.root; e = e.Parent {
		if id := dom.ID(e); id == removeStartID || id == removeEndID {
			continue
		}
		if d := f.matchNode(e, op.name, op.vars, op.mode); d != nil && d.CanSplit() {
			formatRoot = e
		}
	}
	return formatRoot
}

// wrapAndSplit lifts container out of formatRoot and rewraps target with
// format free clones of the ancestors in between.
func (f *Formatter) wrapAndSplit(op *operation, formatRoot, container, target *html.Node) *html.Node {
	if formatRoot == nil {
		return container
	}
	var first, last *html.Node
	stop := formatRoot.Parent
	for parent := container.Parent; parent != nil && parent != stop; parent = parent.Parent {
		clone := f.removeFromClone(op, dom.CloneShallow(parent))
		if clone == nil {
			continue
		}
		if last != nil {
			dom.Append(clone, last)
		}
		if first == nil {
			first = clone
		}
		last = clone
	}

	if !op.format.IsMixed() || !dom.IsBlock(formatRoot) {
		if split := point.SplitAround(formatRoot, container); split != nil {
			container = split
		}
	}

	if first != nil && last != nil {
		if target.Parent != nil {
			dom.InsertBefore(last, target)
		}
		dom.Append(first, target)
		if op.format.IsInline() {
			f.mergeSiblings(op, last)
		}
	}
	return container
}

func (f *Formatter) splitToFormatRoot(op *operation, n *html.Node) *html.Node {
	return f.wrapAndSplit(op, f.findFormatRoot(op, n), n, n)
}

// container resolves one boundary of r to the node it touches, skipping
// text that is only touched on its outer edge.
func (f *Formatter) container(r selection.Range, start bool) *html.Node {
	p := r.End
	if start {
		p = r.Start
	}
	n, offset := p.Node, p.Offset
	if dom.IsElement(n) && dom.HasChildren(n) {
		if !start && offset > 0 {
			offset--
		}
		n = childClamped(n, offset)
		if dom.IsText(n) {
			offset = 0
			if !start {
				offset = dom.Len(n)
			}
		}
	}
	if dom.IsText(n) && start && offset >= dom.Len(n) {
		if next := nextInTree(n, f.root); next != nil {
			n = next
		}
	}
	if dom.IsText(n) && !start && offset == 0 {
		if prev := prevInTree(n, f.root); prev != nil {
			n = prev
		}
	}
	return n
}

// normalizeTableSelection moves off table cells and rows onto their content
// so no wrapper ends up around a cell.
func (f *Formatter) normalizeTableSelection(n *html.Node, start bool) *html.Node {
	for f.options.TableCell != nil && f.options.TableCell(n) && n.FirstChild != nil {
		if start {
			n = n.FirstChild
		} else {
			n = n.LastChild
		}
	}
	return n
}

func isChildOfInlineParent(n, parent *html.Node) bool {
	return n != parent && dom.IsChildOf(n, parent) && !dom.IsBlock(parent)
}

// wrapWithSiblings wraps n and all its siblings in one direction.
func wrapWithSiblings(n *html.Node, forward bool, id string) *html.Node {
	wrapper := dom.NewSplitWrapper(id)
	siblings := make([]*html.Node, 0)
	for s := sibling(n, forward); s != nil; s = sibling(s, forward) {
		siblings = append(siblings, s)
	}
	if forward {
		dom.InsertBefore(wrapper, n)
		dom.Append(wrapper, n)
		for _, s := range siblings {
			dom.Append(wrapper, s)
		}
	} else {
		dom.InsertAfter(wrapper, n)
		for _, s := range siblings {
			dom.Prepend(wrapper, s)
		}
		dom.Append(wrapper, n)
	}
	return wrapper
}

// unwrapMarker removes a temporary wrapper and returns its outer content
// node.
func (f *Formatter) unwrapMarker(id string, start bool) *html.Node {
	marker := dom.FindByID(f.root, id)
	if marker == nil {
		return nil
	}
	out := marker.LastChild
	if start {
		out = marker.FirstChild
	}
	if dom.IsBookmark(out) {
		out = sibling(out, start)
	}
	if out == nil || dom.IsText(out) && out.Data == "" {
		if start {
			out = firstOf(marker.PrevSibling, marker.NextSibling)
		} else {
			out = firstOf(marker.NextSibling, marker.PrevSibling)
		}
	}
	dom.Unwrap(marker)
	return out
}

func firstOf(nodes ...*html.Node) *html.Node {
	for _, n := range nodes {
		if n != nil {
			return n
		}
	}
	return nil
}

// removeRangeStyle removes the format from everything r touches, splitting
// format elements that reach past its boundaries.
func (f *Formatter) removeRangeStyle(op *operation, r selection.Range) {
	r = f.expandRange(r.Ordered(), op.list, r.IsCollapsed())
	if op.format.CanSplit() {
		r = r.SplitText()
		start := f.container(r, true)
		end := f.container(r, false)
		if start != end {
			start = f.normalizeTableSelection(start, true)
			end = f.normalizeTableSelection(end, false)
		}
		if start != end {
			if isChildOfInlineParent(start, end) {
				marker := firstOf(start.FirstChild, start)
				f.splitToFormatRoot(op, wrapWithSiblings(marker, true, removeStartID))
				f.unwrapMarker(removeStartID, true)
				return
			}
			if isChildOfInlineParent(end, start) {
				marker := firstOf(end.LastChild, end)
				f.splitToFormatRoot(op, wrapWithSiblings(marker, false, removeEndID))
				f.unwrapMarker(removeEndID, false)
				return
			}

			startWrap := dom.Wrap(start, dom.NewSplitWrapper(removeStartID))
			endWrap := dom.Wrap(end, dom.NewSplitWrapper(removeEndID))
			inner := make([]*html.Node, 0)
			selection.New(point.After(startWrap), point.Before(endWrap)).Walk(func(nodes []*html.Node) {
				inner = append(inner, nodes...)
			})
			for _, n := range inner {
				if n.Parent != nil && !dom.IsBookmark(n) && !dom.IsSplitWrapper(n) && !dom.IsSplitWrapper(n.Parent) {
					f.splitToFormatRoot(op, n)
				}
			}
			f.splitToFormatRoot(op, startWrap)
			f.splitToFormatRoot(op, endWrap)
			start = f.unwrapMarker(removeStartID, true)
			end = f.unwrapMarker(removeEndID, false)
			if start == nil || end == nil {
				return
			}
		} else {
			start = f.splitToFormatRoot(op, start)
			end = start
		}
		if start.Parent == nil || end.Parent == nil {
			return
		}
		r = selection.New(point.Before(start), point.After(end))
	}

	runs := make([][]*html.Node, 0)
	r.Walk(func(nodes []*html.Node) {
		runs = append(runs, nodes)
	})
	contentEditable := true
	for _, nodes := range runs {
		for _, n := range nodes {
			f.processRemoval(op, n, &contentEditable)
		}
	}
}

var strayDecorations = []string{"underline", "line-through", "overline"}

func (f *Formatter) processRemoval(op *operation, n *html.Node, contentEditable *bool) {
	hasState := false
	last := *contentEditable
	if editable, ok := dom.ContentEditable(n); ok {
		*contentEditable = editable
		hasState = true
	}
	children := dom.Children(n)
	parent := n.Parent

	if *contentEditable && !hasState {
		found := false
		for _, d := range op.list {
			if f.removeNodeFormat(op, d, n, n) {
				found = true
				break
			}
		}
		if !found && op.format.expandsToSelector() && parent != nil && parent != f.root {
			for _, d := range op.list {
				if f.removeNodeFormat(op, d, parent, nil) {
					break
				}
			}
		}
	}

	if op.format.IsDeep() {
		for _, c := range children {
			f.processRemoval(op, c, contentEditable)
		}
	}
	if hasState {
		*contentEditable = last
	}

	if !dom.IsElement(n) || n.Parent == nil {
		return
	}
	for _, decoration := range strayDecorations {
		if dom.GetStyle(n, "text-decoration") == decoration && textDecoration(n.Parent, f.root) == decoration {
			stray := &Descriptor{
				Inline: "span",
				Exact:  true,
				Styles: map[string]string{"text-decoration": decoration},
				Deep:   Bool(false),
			}
			f.removeNodeFormat(op, stray, n, nil)
		}
	}
}
