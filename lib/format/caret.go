package format

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/point"
	"github.com/ether/padformat/lib/selection"
	"golang.org/x/net/html"
)

// Key is a key press the host forwards so caret containers can be torn
// down at the right moment.
type Key int

const (
	KeyLeft Key = iota + 1
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyBackspace
	KeyDelete
)

func (k Key) isNavigation() bool {
	return k >= KeyLeft && k <= KeyPageDown
}

// textOffset counts the runes of root's text before p.
func (f *Formatter) textOffset(p point.Point) int {
	return utf8.RuneCountInString(selection.New(point.Start(f.root), p).Text())
}

// applyCaretFormat formats the word around a collapsed caret, or prepares a
// caret container so that typed text picks the format up.
func (f *Formatter) applyCaretFormat(op *operation) {
	p := f.host.Range().Ordered().Start
	if f.options.ExpandCaretToWord && dom.IsText(p.Node) && selection.InsideWord(p, false) {
		offset := f.textOffset(p)
		word := selection.Collapsed(p).WordRange(selection.WordOptions{FindAfter: true})
		f.applyRangeStyle(op, f.expandRange(word, op.list, false))
		if r, ok := selection.FromTextOffsets(f.root, offset, offset); ok {
			f.host.SetRange(r)
		}
		return
	}

	caret := f.parentCaretContainer(p.Node)
	var text *html.Node
	if caret != nil {
		text = firstText(caret)
	}
	if caret == nil || text == nil || !dom.IsZwsp(text.Data) {
		caret = dom.NewCaretContainer()
		text = caret.FirstChild
		point.InsertAt(p, caret)
		f.caret = caret
	}
	op.nodeSpecific = true
	if !f.applyNodeStyle(op, caret) {
		f.applyRangeStyle(op, selection.SelectNode(caret))
	}
	f.host.SetRange(selection.Collapsed(point.New(text, dom.Len(text))))
}

// removeCaretFormat takes the format off a collapsed caret. Inside formatted
// text the word is unformatted, at the end of a format element a fresh caret
// container carries the remaining formats.
func (f *Formatter) removeCaretFormat(op *operation) {
	p := f.host.Range().Ordered().Start
	hasContentAfter := false
	n := p.Node
	if dom.IsText(n) {
		if p.Offset != dom.Len(n) {
			hasContentAfter = true
		}
		n = n.Parent
	}
	parents := make([]*html.Node, 0)
	var formatNode *html.Node
	for ; n != nil && n != f.root; n = n.Parent {
		if f.matchNode(n, op.name, op.vars, op.mode) != nil {
			formatNode = n
			break
		}
		if n.NextSibling != nil {
			hasContentAfter = true
		}
		if !dom.IsMarker(n) {
			parents = append(parents, n)
		}
	}
	if formatNode == nil {
		return
	}

	if hasContentAfter {
		word := f.expandRange(selection.Collapsed(p), op.list, true)
		if !word.IsCollapsed() {
			offset := f.textOffset(p)
			f.removeRangeStyle(op, word)
			if r, ok := selection.FromTextOffsets(f.root, offset, offset); ok {
				f.host.SetRange(r)
			}
			return
		}
	}

	old := f.parentCaretContainer(formatNode)
	after := make([]*html.Node, 0)
	if old != nil {
		for e := formatNode.Parent; e != nil && e != old; e = e.Parent {
			after = append(after, e)
		}
	}
	caret := dom.NewCaretContainer()
	dom.Detach(caret.FirstChild)
	f.insertCaretContainer(caret, firstOf(old, formatNode))

	chain := slices.Clone(parents)
	if cleaned := f.cleanFormatNode(op, formatNode); cleaned != nil {
		chain = append(chain, cleaned)
	}
	chain = append(chain, after...)
	inner := caret
	for i := len(chain) - 1; i >= 0; i-- {
		clone := dom.CloneShallow(chain[i])
		inner.AppendChild(clone)
		inner = clone
	}
	text := dom.NewText(dom.ZWSP)
	inner.AppendChild(text)

	if old != nil {
		f.removeCaretContainer(old)
	}
	f.caret = caret
	f.host.SetRange(selection.Collapsed(point.New(text, 1)))
	if formatNode.Parent != nil && dom.IsContentEmpty(formatNode) {
		dom.Detach(formatNode)
	}
}

// insertCaretContainer puts caret next to the format node, or in its place
// when the node has nothing left to show.
func (f *Formatter) insertCaretContainer(caret, formatNode *html.Node) {
	block := dom.Closest(formatNode, f.root, dom.IsTextBlock)
	if block != nil && dom.IsContentEmpty(block) {
		dom.Replace(caret, formatNode, false)
		return
	}
	if last := formatNode.LastChild; dom.IsBr(last) {
		dom.Detach(last)
	}
	if dom.IsContentEmpty(formatNode) {
		dom.Replace(caret, formatNode, false)
		return
	}
	dom.InsertAfter(caret, formatNode)
}

// cleanFormatNode returns a clone of formatNode stripped of the format when
// the node carries other formats worth keeping.
func (f *Formatter) cleanFormatNode(op *operation, formatNode *html.Node) *html.Node {
	names := make([]string, 0)
	for _, name := range f.registry.Names() {
		if name != op.name && !strings.Contains(name, "removeformat") {
			names = append(names, name)
		}
	}
	unique := 0
	for _, name := range f.matchAllOnNode(formatNode, names) {
		if !f.areSimilar(name, op.name) {
			unique++
		}
	}
	if unique == 0 {
		return nil
	}
	return f.removeFromClone(op, dom.CloneShallow(formatNode))
}

func (f *Formatter) parentCaretContainer(n *html.Node) *html.Node {
	return dom.Closest(n, f.root, dom.IsCaretContainer)
}

func firstText(n *html.Node) *html.Node {
	texts := dom.FindAll(n, dom.IsText)
	if len(texts) == 0 {
		return nil
	}
	return texts[0]
}

// caretContainers returns the live caret containers. The tracked handle is
// trusted while it stays attached; the tree is only scanned to recover.
func (f *Formatter) caretContainers() []*html.Node {
	if f.scanned && (f.caret == nil || dom.IsChildOf(f.caret, f.root)) {
		if f.caret == nil {
			return nil
		}
		return []*html.Node{f.caret}
	}
	f.scanned = true
	found := dom.FindAll(f.root, dom.IsCaretContainer)
	f.caret = nil
	if len(found) > 0 {
		f.caret = found[len(found)-1]
	}
	return found
}

// removeStaleCarets tears down every caret container that does not hold the
// current selection.
func (f *Formatter) removeStaleCarets() {
	r := f.host.Range()
	for _, c := range f.caretContainers() {
		if !r.IsZero() && (dom.Contains(c, r.Start.Node) || dom.Contains(c, r.End.Node)) {
			continue
		}
		f.removeCaretContainer(c)
	}
}

func isCaretContainerEmpty(c *html.Node) bool {
	if dom.TrimZwsp(dom.Text(c)) != "" {
		return false
	}
	return len(dom.FindAll(c, func(n *html.Node) bool { return dom.IsVoid(n) && !dom.IsBr(n) })) == 0
}

// removeCaretContainer dissolves c. An empty container disappears and the
// caret moves to where it stood; otherwise its placeholders are stripped
// and its content is kept in place.
func (f *Formatter) removeCaretContainer(c *html.Node) {
	if c.Parent == nil {
		return
	}
	if c == f.caret {
		f.caret = nil
	}
	r := f.host.Range()
	parent := c.Parent
	idx := dom.Index(c)
	block := dom.Closest(parent, f.root, dom.IsBlock)

	if isCaretContainerEmpty(c) {
		held := !r.IsZero() && (dom.Contains(c, r.Start.Node) || dom.Contains(c, r.End.Node))
		prev := c.PrevSibling
		dom.Detach(c)
		switch {
		case held && dom.IsText(prev):
			f.host.SetRange(selection.Collapsed(point.End(prev)))
		case held:
			f.host.SetRange(selection.Collapsed(point.New(parent, idx)))
		case !r.IsZero():
			f.host.SetRange(selection.New(shiftRemoved(r.Start, parent, idx, 0), shiftRemoved(r.End, parent, idx, 0)))
		}
		return
	}

	for _, t := range dom.FindAll(c, dom.IsText) {
		if !dom.HasZwsp(t.Data) {
			continue
		}
		r.Start = trimPoint(r.Start, t)
		r.End = trimPoint(r.End, t)
		t.Data = dom.TrimZwsp(t.Data)
	}
	count := dom.ChildCount(c)
	dom.Unwrap(c)
	if !r.IsZero() {
		r = selection.New(shiftRemoved(r.Start, parent, idx, count), shiftRemoved(r.End, parent, idx, count))
		f.host.SetRange(r)
	}
	if block != nil && dom.IsEmpty(block) {
		block.AppendChild(dom.NewElement("br"))
	}
}

// trimPoint moves p back over the placeholders of t that precede it.
func trimPoint(p point.Point, t *html.Node) point.Point {
	if p.Node != t {
		return p
	}
	runes := []rune(t.Data)
	cut := min(p.Offset, len(runes))
	p.Offset -= strings.Count(string(runes[:cut]), dom.ZWSP)
	return p
}

// shiftRemoved keeps p valid after the child at idx of parent was replaced
// by count nodes.
func shiftRemoved(p point.Point, parent *html.Node, idx, count int) point.Point {
	if p.Node == parent && p.Offset > idx {
		p.Offset += count - 1
	}
	return p
}

// Blur tears down every caret container, as when the editor loses focus.
func (f *Formatter) Blur() {
	for _, c := range f.caretContainers() {
		f.removeCaretContainer(c)
	}
}

// HandleKey reacts to a key press the host is about to process.
func (f *Formatter) HandleKey(key Key) {
	switch {
	case key.isNavigation():
		f.Blur()
	case key == KeyBackspace || key == KeyDelete:
		r := f.host.Range()
		if r.IsZero() {
			return
		}
		if c := f.parentCaretContainer(r.Start.Node); c != nil && isCaretContainerEmpty(c) {
			f.removeCaretContainer(c)
		}
	}
}

// TypeText inserts s at the end of the selection and collapses the caret
// after it.
func (f *Formatter) TypeText(s string) {
	r := f.host.Range().Ordered()
	if r.IsZero() || s == "" {
		return
	}
	p := r.End
	if dom.IsText(p.Node) {
		dom.InsertText(p.Node, p.Offset, s)
		f.host.SetRange(selection.Collapsed(point.New(p.Node, p.Offset+utf8.RuneCountInString(s))))
		return
	}
	text := dom.NewText(s)
	point.InsertAt(p, text)
	f.host.SetRange(selection.Collapsed(point.End(text)))
}
