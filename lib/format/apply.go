package format

import (
	"maps"
	"slices"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/selection"
	"golang.org/x/net/html"
)

// operation carries what every step of one apply or remove call needs.
type operation struct {
	name   string
	list   []*Descriptor
	format *Descriptor
	vars   Vars
	mode   MatchMode
	// nodeSpecific is set when the caller passed an explicit node or range.
	nodeSpecific bool
	collapsed    bool
}

func newOperation(name string, list []*Descriptor, vars Vars, mode MatchMode) *operation {
	return &operation{name: name, list: list, format: list[0], vars: vars, mode: mode}
}

// resolved substitutes vars into value. Values still holding a placeholder
// are reported as unresolved.
func resolved(value string, vars Vars) (string, bool) {
	value = ReplaceVars(value, vars)
	return value, !varPattern.MatchString(value)
}

func (f *Formatter) setElementFormat(op *operation, n *html.Node, d *Descriptor) {
	if d.Hooks != nil && d.Hooks.OnFormat != nil {
		d.Hooks.OnFormat(n, d, op.vars)
	}
	for _, name := range slices.Sorted(maps.Keys(d.Styles)) {
		if value, ok := resolved(d.Styles[name], op.vars); ok {
			dom.SetStyle(n, name, value)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(d.Attributes)) {
		if value, ok := resolved(d.Attributes[name], op.vars); ok {
			dom.SetAttr(n, name, value)
		}
	}
	for _, class := range d.Classes {
		if value, ok := resolved(class, op.vars); ok && !dom.HasClass(n, value) {
			dom.AddClass(n, value)
		}
	}
}

// applyNodeStyle formats n in place with the first selector descriptor it
// matches.
func (f *Formatter) applyNodeStyle(op *operation, n *html.Node) bool {
	for _, d := range op.list {
		if !d.IsSelector() {
			break
		}
		if dom.IsContentEditableFalse(n) && !d.CeFalseOverride {
			continue
		}
		if !d.allowsCollapsed(op.collapsed) {
			continue
		}
		if d.matchesSelector(n) && !dom.IsCaretContainer(n) {
			f.setElementFormat(op, n, d)
			return true
		}
	}
	return false
}

func (f *Formatter) canWrapNode(op *operation, n *html.Node, parentName string, editableDescendant bool) bool {
	wrapName := op.format.wrapName()
	valid := dom.IsValidChild(wrapName, dom.Name(n)) && dom.IsValidChild(parentName, wrapName)
	zwsp := !op.nodeSpecific && dom.IsText(n) && dom.IsZwsp(n.Data)
	correct := !op.format.IsInline() || !dom.IsBlock(n)
	return editableDescendant && valid && !zwsp && !dom.IsCaretContainer(n) && correct
}

// applyRangeStyle walks r and wraps, renames or restyles what it finds,
// then tidies the wrappers it created.
func (f *Formatter) applyRangeStyle(op *operation, r selection.Range) {
	format := op.format
	wrappers := make([]*html.Node, 0)
	contentEditable := true

	wrapName := format.wrapName()
	var template *html.Node
	if wrapName != "" {
		template = dom.NewElement(wrapName)
		f.setElementFormat(op, template, format)
	}

	r = r.SplitText()
	r.Walk(func(nodes []*html.Node) {
		var current *html.Node
		var process func(n *html.Node)
		process = func(n *html.Node) {
			parent := n.Parent
			if parent == nil {
				return
			}
			parentName := dom.Name(parent)
			hasState := false
			last := contentEditable
			if editable, ok := dom.ContentEditable(n); ok {
				contentEditable = editable
				hasState = true
				defer func() { contentEditable = last }()
			}
			editableDescendant := contentEditable && !hasState

			if dom.IsBr(n) {
				current = nil
				if format.IsBlock() {
					dom.Detach(n)
				}
				return
			}
			if format.IsWrappingBlock() && f.matchNode(n, op.name, op.vars, Exact) != nil {
				current = nil
				return
			}
			if format.IsNonWrappingBlock() && editableDescendant && dom.IsTextBlock(n) && dom.IsValidChild(parentName, wrapName) {
				dom.Rename(n, wrapName)
				f.setElementFormat(op, n, format)
				wrappers = append(wrappers, n)
				current = nil
				return
			}
			if format.IsSelector() {
				found := f.applyNodeStyle(op, n)
				if !found && parent != f.root && format.expandsToSelector() {
					found = f.applyNodeStyle(op, parent)
				}
				// Loose content at the root gets a block to carry the format.
				if !found && format.DefaultBlock != "" && parent == f.root && !dom.IsBlock(n) {
					if current == nil {
						current = dom.NewElement(format.DefaultBlock)
						dom.InsertBefore(current, n)
						f.applyNodeStyle(op, current)
					}
					dom.Append(current, n)
					return
				}
				if !format.IsInline() || found {
					current = nil
					return
				}
			}
			if template != nil && f.canWrapNode(op, n, parentName, editableDescendant) {
				if current == nil {
					current = dom.CloneShallow(template)
					dom.InsertBefore(current, n)
					wrappers = append(wrappers, current)
				}
				dom.Append(current, n)
				return
			}
			current = nil
			for _, c := range dom.Children(n) {
				process(c)
			}
			current = nil
		}
		for _, n := range nodes {
			process(n)
		}
	})

	if format.Links {
		for _, w := range wrappers {
			dom.Visit(w, func(n *html.Node) bool {
				if dom.IsTag(n, "a") {
					f.setElementFormat(op, n, format)
				}
				return true
			})
		}
	}

	for _, w := range wrappers {
		if w.Parent == nil {
			continue
		}
		count := meaningfulChildCount(w)
		if (len(wrappers) > 1 || !dom.IsBlock(w)) && count == 0 {
			dom.Unwrap(w)
			continue
		}
		if !format.IsInline() && !format.IsWrappingBlock() {
			continue
		}
		if !format.Exact && count == 1 {
			w = f.mergeStyles(op, w)
		}
		f.mergeWithChildren(op, w)
		if f.mergeWithParents(op, w) {
			continue
		}
		f.mergeBackgroundColorAndFontSize(op, w)
		f.mergeTextDecorationsAndColor(op, w)
		f.mergeSubSup(op, w)
		f.mergeSiblings(op, w)
	}
}

func meaningfulChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !isEmptyTextNode(c) && !dom.IsBookmark(c) {
			count++
		}
	}
	return count
}

// mergeStyles folds a single child element of the wrapper's own shape into
// the wrapper.
func (f *Formatter) mergeStyles(op *operation, w *html.Node) *html.Node {
	var child *html.Node
	for c := w.FirstChild; c != nil; c = c.NextSibling {
		if dom.IsElement(c) && !dom.IsMarker(c) {
			child = c
			break
		}
	}
	if child == nil || dom.IsContentEditableFalse(child) || !MatchName(child, op.format) {
		return w
	}
	clone := dom.CloneShallow(child)
	f.setElementFormat(op, clone, op.format)
	dom.Replace(clone, w, true)
	dom.Unwrap(child)
	return clone
}
