package dom

import (
	"slices"
	"strings"

	"golang.org/x/net/html"
)

func GetAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// Attr returns the attribute value or an empty string.
func Attr(n *html.Node, key string) string {
	val, _ := GetAttr(n, key)
	return val
}

func HasAttr(n *html.Node, key string) bool {
	_, ok := GetAttr(n, key)
	return ok
}

// SetAttr overwrites an existing attribute or appends a new one.
func SetAttr(n *html.Node, key, val string) {
	key = strings.ToLower(key)
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func RemoveAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return strings.EqualFold(a.Key, key)
	})
	if len(n.Attr) == 0 {
		n.Attr = nil
	}
}

// Attributes returns a copy of the attribute list of n.
func Attributes(n *html.Node) []html.Attribute {
	if n == nil || len(n.Attr) == 0 {
		return nil
	}
	attrs := make([]html.Attribute, len(n.Attr))
	copy(attrs, n.Attr)
	return attrs
}

// ID returns the id attribute of an element.
func ID(n *html.Node) string {
	return Attr(n, "id")
}

func Classes(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}

func HasClass(n *html.Node, class string) bool {
	return slices.Contains(Classes(n), class)
}

func AddClass(n *html.Node, class string) {
	classes := Classes(n)
	if slices.Contains(classes, class) {
		return
	}
	SetAttr(n, "class", strings.Join(append(classes, class), " "))
}

func RemoveClass(n *html.Node, class string) {
	classes := slices.DeleteFunc(Classes(n), func(c string) bool { return c == class })
	if len(classes) == 0 {
		RemoveAttr(n, "class")
		return
	}
	SetAttr(n, "class", strings.Join(classes, " "))
}

// IsInternalAttr reports whether an attribute name is reserved for editor
// bookkeeping and must be ignored by comparisons.
func IsInternalAttr(name string) bool {
	name = strings.ToLower(name)
	return strings.HasPrefix(name, InternalAttrPrefix) || strings.HasPrefix(name, "_")
}

// IsInternalClass reports whether a class token is reserved for the editor.
func IsInternalClass(class string) bool {
	return strings.HasPrefix(class, "mce-")
}

// PublicAttributes returns the attributes of n that are not internal.
func PublicAttributes(n *html.Node) []html.Attribute {
	attrs := make([]html.Attribute, 0, len(n.Attr))
	for _, a := range n.Attr {
		if !IsInternalAttr(a.Key) {
			attrs = append(attrs, a)
		}
	}
	return attrs
}
