package dom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TextName is the pseudo tag name used for text nodes in schema lookups.
const TextName = "#text"

func NewText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

func NewElement(tag string, attrs ...html.Attribute) *html.Node {
	tag = strings.ToLower(tag)
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, a := range attrs {
		SetAttr(n, a.Key, a.Val)
	}
	return n
}

func IsText(n *html.Node) bool {
	return n != nil && n.Type == html.TextNode
}

func IsElement(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode
}

// Name returns the lower case tag name of an element, TextName for text nodes
// and an empty string for everything else.
func Name(n *html.Node) string {
	switch {
	case IsElement(n):
		return strings.ToLower(n.Data)
	case IsText(n):
		return TextName
	}
	return ""
}

// IsTag reports whether n is an element with one of the given tag names.
func IsTag(n *html.Node, tags ...string) bool {
	if !IsElement(n) {
		return false
	}
	name := Name(n)
	for _, t := range tags {
		if strings.EqualFold(name, t) {
			return true
		}
	}
	return false
}

// Len returns the rune length of a text node or the child count of any other node.
func Len(n *html.Node) int {
	if n == nil {
		return 0
	}
	if IsText(n) {
		return utf8.RuneCountInString(n.Data)
	}
	return ChildCount(n)
}

func ChildCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}

func Children(n *html.Node) []*html.Node {
	if n == nil {
		return nil
	}
	children := make([]*html.Node, 0)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

// ChildAt returns the i-th child of n or nil when i is out of range.
func ChildAt(n *html.Node, i int) *html.Node {
	if n == nil || i < 0 {
		return nil
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

// Index returns the position of n among its siblings, or -1 when it has no parent.
func Index(n *html.Node) int {
	if n == nil || n.Parent == nil {
		return -1
	}
	i := 0
	for c := n.PrevSibling; c != nil; c = c.PrevSibling {
		i++
	}
	return i
}

func HasChildren(n *html.Node) bool {
	return n != nil && n.FirstChild != nil
}

// Contains reports whether n is ancestor or n itself.
func Contains(ancestor, n *html.Node) bool {
	for e := n; e != nil; e = e.Parent {
		if e == ancestor {
			return true
		}
	}
	return false
}

// IsChildOf reports whether n is a strict descendant of ancestor.
func IsChildOf(n, ancestor *html.Node) bool {
	return n != nil && n != ancestor && Contains(ancestor, n)
}

// Ancestors lists n and its ancestors, innermost first, stopping after stop
// (inclusive) or at the top of the tree.
func Ancestors(n, stop *html.Node) []*html.Node {
	list := make([]*html.Node, 0)
	for e := n; e != nil; e = e.Parent {
		list = append(list, e)
		if e == stop {
			break
		}
	}
	return list
}

// Closest returns the first node satisfying pred walking from n upwards. The
// walk never goes above root; root itself is not tested.
func Closest(n, root *html.Node, pred func(*html.Node) bool) *html.Node {
	for e := n; e != nil && e != root; e = e.Parent {
		if pred(e) {
			return e
		}
	}
	return nil
}

func CommonAncestor(a, b *html.Node) *html.Node {
	for e := a; e != nil; e = e.Parent {
		if Contains(e, b) {
			return e
		}
	}
	return nil
}

// Root returns the top of the tree containing n.
func Root(n *html.Node) *html.Node {
	for n != nil && n.Parent != nil {
		n = n.Parent
	}
	return n
}

func Detach(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func InsertBefore(n, ref *html.Node) {
	Detach(n)
	ref.Parent.InsertBefore(n, ref)
}

func InsertAfter(n, ref *html.Node) {
	Detach(n)
	ref.Parent.InsertBefore(n, ref.NextSibling)
}

func Append(parent, n *html.Node) {
	Detach(n)
	parent.AppendChild(n)
}

func Prepend(parent, n *html.Node) {
	Detach(n)
	parent.InsertBefore(n, parent.FirstChild)
}

// Remove detaches n. With keepChildren the children of n take its place.
func Remove(n *html.Node, keepChildren bool) {
	if n == nil || n.Parent == nil {
		return
	}
	if keepChildren {
		for c := n.FirstChild; c != nil; {
			next := c.NextSibling
			InsertBefore(c, n)
			c = next
		}
	}
	Detach(n)
}

// Unwrap replaces n with its children.
func Unwrap(n *html.Node) {
	Remove(n, true)
}

// Wrap inserts wrapper in place of n and moves n inside it.
func Wrap(n, wrapper *html.Node) *html.Node {
	InsertBefore(wrapper, n)
	Append(wrapper, n)
	return wrapper
}

// Replace puts n in place of old. With keepChildren the children of old are
// moved into n.
func Replace(n, old *html.Node, keepChildren bool) *html.Node {
	if keepChildren {
		for c := old.FirstChild; c != nil; {
			next := c.NextSibling
			Append(n, c)
			c = next
		}
	}
	InsertBefore(n, old)
	Detach(old)
	return n
}

// Rename retags an element in place; children and attributes are kept.
func Rename(n *html.Node, tag string) *html.Node {
	tag = strings.ToLower(tag)
	n.Data = tag
	n.DataAtom = atom.Lookup([]byte(tag))
	return n
}

func CloneShallow(n *html.Node) *html.Node {
	clone := &html.Node{
		Type:      n.Type,
		Data:      n.Data,
		DataAtom:  n.DataAtom,
		Namespace: n.Namespace,
	}
	if len(n.Attr) > 0 {
		clone.Attr = make([]html.Attribute, len(n.Attr))
		copy(clone.Attr, n.Attr)
	}
	return clone
}

func CloneDeep(n *html.Node) *html.Node {
	clone := CloneShallow(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(CloneDeep(c))
	}
	return clone
}

// Text returns the text content of n.
func Text(n *html.Node) string {
	if n == nil {
		return ""
	}
	if IsText(n) {
		return n.Data
	}
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(e *html.Node) {
		for c := e.FirstChild; c != nil; c = c.NextSibling {
			if IsText(c) {
				sb.WriteString(c.Data)
			} else {
				collect(c)
			}
		}
	}
	collect(n)
	return sb.String()
}

// SplitText splits a text node at a rune offset and returns the right half,
// which is inserted as the next sibling.
func SplitText(n *html.Node, offset int) *html.Node {
	runes := []rune(n.Data)
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	right := NewText(string(runes[offset:]))
	n.Data = string(runes[:offset])
	if n.Parent != nil {
		n.Parent.InsertBefore(right, n.NextSibling)
	}
	return right
}

// InsertText inserts s into a text node at a rune offset.
func InsertText(n *html.Node, offset int, s string) {
	runes := []rune(n.Data)
	if offset > len(runes) {
		offset = len(runes)
	}
	n.Data = string(runes[:offset]) + s + string(runes[offset:])
}

// Normalize merges adjacent text nodes and drops empty ones below n.
func Normalize(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if IsText(c) {
			if c.Data == "" {
				n.RemoveChild(c)
				c = next
				continue
			}
			for next != nil && IsText(next) {
				c.Data += next.Data
				following := next.NextSibling
				n.RemoveChild(next)
				next = following
			}
		} else if IsElement(c) {
			Normalize(c)
		}
		c = next
	}
}

// IsEmpty reports whether n has no length, holds only a padding <br>, or
// holds only empty text.
func IsEmpty(n *html.Node) bool {
	if Len(n) == 0 {
		return true
	}
	if IsText(n) {
		return false
	}
	if n.FirstChild == n.LastChild && IsBr(n.FirstChild) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !IsText(c) || c.Data != "" {
			return false
		}
	}
	return true
}

// IsContentEmpty reports whether n carries no visible content: no text other
// than whitespace or placeholders and no void element except line breaks.
func IsContentEmpty(n *html.Node) bool {
	if IsText(n) {
		return IsBlankText(n.Data)
	}
	if IsVoid(n) && !IsBr(n) {
		return false
	}
	if IsBookmark(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !IsContentEmpty(c) {
			return false
		}
	}
	return true
}

// IsBlankText reports whether s holds only whitespace and placeholder runes.
func IsBlankText(s string) bool {
	for _, r := range s {
		switch r {
		case ' ', '\t', '\r', '\n', '\uFEFF', '\u200B':
		default:
			return false
		}
	}
	return true
}

// IsWhitespaceText reports whether n is a text node made of collapsible
// whitespace only.
func IsWhitespaceText(n *html.Node) bool {
	if !IsText(n) {
		return false
	}
	if Closest(n.Parent, nil, func(e *html.Node) bool { return IsTag(e, "pre") }) != nil {
		return false
	}
	return strings.Trim(n.Data, " \t\r\n") == ""
}
