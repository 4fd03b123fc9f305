package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// ContentEditable returns the explicit editable state of n. ok is false when
// n does not declare one.
func ContentEditable(n *html.Node) (editable bool, ok bool) {
	if !IsElement(n) {
		return false, false
	}
	val, has := GetAttr(n, "contenteditable")
	if !has {
		return false, false
	}
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "", "true", "plaintext-only":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// IsEditingHost reports whether n bounds an editable region: a parentless
// node, or an element declared editable below no other declaration. Editable
// islands nested in non-editable content stay part of the outer region.
func IsEditingHost(n *html.Node) bool {
	if n == nil {
		return false
	}
	if n.Parent == nil || n.Type == html.DocumentNode {
		return true
	}
	if editable, ok := ContentEditable(n); !ok || !editable {
		return false
	}
	for e := n.Parent; e != nil; e = e.Parent {
		if _, ok := ContentEditable(e); ok {
			return false
		}
	}
	return true
}

// EditingHost returns the editing host containing n.
func EditingHost(n *html.Node) *html.Node {
	for e := n; e != nil; e = e.Parent {
		if IsEditingHost(e) {
			return e
		}
	}
	return nil
}

// IsContentEditableFalse reports whether n explicitly opts out of editing.
func IsContentEditableFalse(n *html.Node) bool {
	editable, ok := ContentEditable(n)
	return ok && !editable
}

// IsContentEditableTrue reports whether n explicitly opts into editing.
func IsContentEditableTrue(n *html.Node) bool {
	editable, ok := ContentEditable(n)
	return ok && editable
}

// IsEditable resolves the inherited editable state of n below root. Nodes
// without any declaration up to root are editable.
func IsEditable(n, root *html.Node) bool {
	for e := n; e != nil; e = e.Parent {
		if editable, ok := ContentEditable(e); ok {
			return editable
		}
		if e == root {
			break
		}
	}
	return true
}
