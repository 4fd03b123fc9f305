package format

import (
	"maps"
	"slices"

	"github.com/ether/padformat/lib/dom"
	"golang.org/x/net/html"
)

// mergeWithChildren strips the format from descendants of a fresh wrapper,
// since the wrapper now carries it.
func (f *Formatter) mergeWithChildren(op *operation, w *html.Node) {
	for _, d := range op.list {
		if d.IsInline() {
			children := descendants(w, func(e *html.Node) bool {
				return !dom.IsMarker(e) && (d.Inline == AnyTag || dom.Name(e) == d.Inline)
			})
			for _, child := range children {
				var compare *html.Node
				if d.Exact {
					compare = child
				}
				f.removeNodeFormat(op, d, child, compare)
			}
		}
		f.clearChildStyles(d, w)
	}
}

func (f *Formatter) clearChildStyles(d *Descriptor, w *html.Node) {
	if !d.ClearChildStyles {
		return
	}
	children := descendants(w, func(e *html.Node) bool {
		return !(d.Links && dom.IsTag(e, "a")) && dom.IsEditable(e, f.root)
	})
	for _, child := range children {
		for name := range d.Styles {
			dom.RemoveStyle(child, name)
		}
	}
}

// mergeWithParents drops the wrapper's own format when an ancestor already
// carries it and reports whether the wrapper was removed.
func (f *Formatter) mergeWithParents(op *operation, w *html.Node) bool {
	parent := w.Parent
	if parent != nil && parent != f.root && f.matchNode(parent, op.name, op.vars, Exact) != nil {
		if f.removeNodeFormat(op, op.format, w, nil) {
			return true
		}
	}
	if !op.format.MergeWithParents {
		return false
	}
	for e := parent; e != nil && e != f.root; e = e.Parent {
		if f.matchNode(e, op.name, op.vars, Exact) != nil {
			return f.removeNodeFormat(op, op.format, w, nil)
		}
	}
	return false
}

// mergeBackgroundColorAndFontSize pushes a new background color onto
// descendants with their own font size so the highlight follows the glyphs.
func (f *Formatter) mergeBackgroundColorAndFontSize(op *operation, w *html.Node) {
	color, ok := op.format.Styles["background-color"]
	if !ok {
		return
	}
	color = ReplaceVars(color, op.vars)
	for _, e := range descendants(w, hasStyle("font-size")) {
		dom.SetStyle(e, "background-color", color)
	}
}

// mergeTextDecorationsAndColor repeats inherited decorations on colored
// elements, so underlines take the text color, and drops decorations that
// only restate the inherited one.
func (f *Formatter) mergeTextDecorationsAndColor(op *operation, w *html.Node) {
	_, color := op.format.Styles["color"]
	_, decoration := op.format.Styles["text-decoration"]
	if !color && !decoration {
		return
	}
	process := func(n *html.Node) {
		if dom.IsMarker(n) || n.Parent == nil || !dom.IsElement(n.Parent) || !dom.IsEditable(n, f.root) {
			return
		}
		inherited := textDecoration(n.Parent, f.root)
		switch {
		case dom.GetStyle(n, "color") != "" && inherited != "":
			dom.SetStyle(n, "text-decoration", inherited)
		case dom.GetStyle(n, "text-decoration") == inherited:
			dom.RemoveStyle(n, "text-decoration")
		}
	}
	for _, e := range descendants(w, func(*html.Node) bool { return true }) {
		process(e)
	}
	process(w)
}

// mergeSubSup keeps subscript and superscript mutually exclusive inside a
// wrapper and resets font sizes that would fight the script size.
func (f *Formatter) mergeSubSup(op *operation, w *html.Node) {
	inverse := ""
	switch op.format.Inline {
	case "sub":
		inverse = "sup"
	case "sup":
		inverse = "sub"
	default:
		return
	}
	for _, e := range descendants(w, hasStyle("font-size")) {
		dom.RemoveStyle(e, "font-size")
	}
	for _, e := range descendants(w, func(e *html.Node) bool { return dom.IsTag(e, inverse) }) {
		dom.Unwrap(e)
	}
}

func hasStyle(prop string) func(*html.Node) bool {
	return func(e *html.Node) bool {
		return !dom.IsMarker(e) && dom.GetStyle(e, prop) != ""
	}
}

// mergeSiblings joins n with identical element siblings on both sides.
func (f *Formatter) mergeSiblings(op *operation, n *html.Node) {
	if n == nil || !op.format.MergesSiblings() || !f.options.MergeSiblings {
		return
	}
	merged := mergeSiblingNodes(nonWhiteSpaceSibling(n, false), n)
	if merged == nil {
		merged = n
	}
	mergeSiblingNodes(merged, nonWhiteSpaceSibling(merged, true))
}

// mergeSiblingNodes moves next into prev when both carry the same element
// shape and returns the survivor.
func mergeSiblingNodes(prev, next *html.Node) *html.Node {
	if prev == nil || next == nil {
		return next
	}
	prev = findElementSibling(prev, false)
	next = findElementSibling(next, true)
	if !compareElements(prev, next) {
		return next
	}
	for s := prev.NextSibling; s != nil && s != next; {
		following := s.NextSibling
		dom.Append(prev, s)
		s = following
	}
	dom.Detach(next)
	for _, c := range dom.Children(next) {
		dom.Append(prev, c)
	}
	return prev
}

// findElementSibling skips bookmarks and empty text from n on.
func findElementSibling(n *html.Node, forward bool) *html.Node {
	for s := n; s != nil; s = sibling(s, forward) {
		if dom.IsText(s) && s.Data != "" {
			return n
		}
		if dom.IsElement(s) && !dom.IsBookmark(s) {
			return s
		}
	}
	return n
}

// compareElements reports whether two elements can be merged: same tag,
// same public attributes and the same declared styles.
func compareElements(a, b *html.Node) bool {
	if a == b || !dom.IsElement(a) || !dom.IsElement(b) || dom.Name(a) != dom.Name(b) {
		return false
	}
	if dom.IsTag(a, "a") || dom.IsMarker(a) || dom.IsMarker(b) {
		return false
	}
	if dom.IsContentEditableFalse(a) || dom.IsContentEditableFalse(b) {
		return false
	}
	if !maps.Equal(publicAttributes(a), publicAttributes(b)) {
		return false
	}
	return maps.Equal(dom.StyleMap(a), dom.StyleMap(b))
}

func publicAttributes(n *html.Node) map[string]string {
	attrs := make(map[string]string)
	for _, a := range dom.PublicAttributes(n) {
		if a.Key != "style" {
			attrs[a.Key] = a.Val
		}
	}
	return attrs
}

// sortedKeys lists map keys in a stable order.
func sortedKeys(m map[string]string) []string {
	return slices.Sorted(maps.Keys(m))
}
