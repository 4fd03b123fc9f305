package dom

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFragment_RoundTrip(t *testing.T) {
	root, err := ParseFragment(`<p>hello <strong>world</strong></p>`)
	require.NoError(t, err)
	assert.Nil(t, root.Parent)
	assert.Equal(t, `<p>hello <strong>world</strong></p>`, InnerHTML(root))
	assert.Equal(t, "hello world", Text(root))
}

func TestLenAndIndex(t *testing.T) {
	root := MustParseFragment(`<p>héllo</p><p>b</p>`)
	p := root.FirstChild
	assert.Equal(t, 2, Len(root))
	assert.Equal(t, 5, Len(p.FirstChild))
	assert.Equal(t, 0, Index(p))
	assert.Equal(t, 1, Index(p.NextSibling))
	assert.Equal(t, -1, Index(root))
	assert.Nil(t, ChildAt(root, 2))
	assert.Equal(t, p, ChildAt(root, 0))
}

func TestSplitText(t *testing.T) {
	root := MustParseFragment(`<p>añbc</p>`)
	text := root.FirstChild.FirstChild
	right := SplitText(text, 2)
	assert.Equal(t, "añ", text.Data)
	assert.Equal(t, "bc", right.Data)
	assert.Equal(t, text.NextSibling, right)
}

func TestWrapUnwrapRename(t *testing.T) {
	root := MustParseFragment(`<p>abc</p>`)
	p := root.FirstChild
	Wrap(p.FirstChild, NewElement("strong"))
	assert.Equal(t, `<p><strong>abc</strong></p>`, InnerHTML(root))

	Rename(p.FirstChild, "em")
	assert.Equal(t, `<p><em>abc</em></p>`, InnerHTML(root))

	Unwrap(p.FirstChild)
	assert.Equal(t, `<p>abc</p>`, InnerHTML(root))
}

func TestReplaceKeepsChildren(t *testing.T) {
	root := MustParseFragment(`<b>x<i>y</i></b>`)
	Replace(NewElement("strong"), root.FirstChild, true)
	assert.Equal(t, `<strong>x<i>y</i></strong>`, InnerHTML(root))
}

func TestNormalize(t *testing.T) {
	root := NewElement("div")
	root.AppendChild(NewText("a"))
	root.AppendChild(NewText(""))
	root.AppendChild(NewText("b"))
	span := NewElement("span")
	span.AppendChild(NewText("c"))
	span.AppendChild(NewText("d"))
	root.AppendChild(span)

	Normalize(root)
	assert.Equal(t, 2, ChildCount(root))
	assert.Equal(t, "ab", root.FirstChild.Data)
	assert.Equal(t, 1, ChildCount(span))
	assert.Equal(t, "cd", span.FirstChild.Data)
}

func TestCloneShallowCopiesAttributes(t *testing.T) {
	root := MustParseFragment(`<span class="a" style="color: red;">x</span>`)
	span := root.FirstChild
	clone := CloneShallow(span)
	SetAttr(clone, "class", "b")
	assert.Equal(t, "a", Attr(span, "class"))
	assert.Nil(t, clone.FirstChild)
}

func TestStyles(t *testing.T) {
	n := NewElement("span")
	SetStyle(n, "color", "red")
	SetStyle(n, "fontSize", "12px")
	assert.Equal(t, "color: red; font-size: 12px;", Attr(n, "style"))
	assert.Equal(t, "12px", GetStyle(n, "font-size"))

	SetStyle(n, "color", "blue")
	assert.Equal(t, "color: blue; font-size: 12px;", Attr(n, "style"))

	RemoveStyle(n, "color")
	RemoveStyle(n, "font-size")
	assert.False(t, HasAttr(n, "style"))
}

func TestParseStyle_LastDeclarationWithoutSemicolon(t *testing.T) {
	decls := ParseStyle("color: red; text-decoration: underline")
	require.Len(t, decls, 2)
	assert.Equal(t, "text-decoration", decls[1].Property)
	assert.Equal(t, "underline", decls[1].Value)
}

func TestNormalizeStyleValue(t *testing.T) {
	testCases := []struct {
		prop, value, expected string
	}{
		{"color", "rgb(255, 0, 16)", "#ff0010"},
		{"color", "#FF0000", "#ff0000"},
		{"background-color", "rgba(0, 0, 0, 0)", "transparent"},
		{"font-weight", "700", "bold"},
		{"font-family", `"Arial", 'Helvetica'`, "arial,helvetica"},
	}
	for _, tc := range testCases {
		t.Run(tc.prop+" "+tc.value, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeStyleValue(tc.prop, tc.value))
		})
	}
}

func TestClasses(t *testing.T) {
	n := NewElement("p")
	AddClass(n, "one")
	AddClass(n, "two")
	AddClass(n, "one")
	assert.Equal(t, "one two", Attr(n, "class"))
	assert.True(t, HasClass(n, "two"))
	RemoveClass(n, "one")
	RemoveClass(n, "two")
	assert.False(t, HasAttr(n, "class"))
}

func TestIsValidChild(t *testing.T) {
	testCases := []struct {
		parent, child string
		valid         bool
	}{
		{"strong", TextName, true},
		{"p", "strong", true},
		{"strong", "p", false},
		{"p", "p", false},
		{"div", "p", true},
		{"blockquote", "p", true},
		{"ul", "li", true},
		{"ul", "strong", false},
		{"p", "li", false},
		{"tr", "td", true},
		{"td", "strong", true},
		{"a", "a", false},
		{"br", TextName, false},
	}
	for _, tc := range testCases {
		t.Run(tc.parent+">"+tc.child, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidChild(tc.parent, tc.child))
		})
	}
}

func TestEditingHost(t *testing.T) {
	root := MustParseFragment(`<p>a<span contenteditable="false">b<em contenteditable="true">c</em></span></p>`)
	em := root.FirstChild.LastChild.FirstChild.NextSibling
	assert.Equal(t, root, EditingHost(em.FirstChild))
	assert.False(t, IsEditable(em.Parent, root))
	assert.True(t, IsEditable(em.FirstChild, root))
	assert.True(t, IsEditingHost(root))
	assert.False(t, IsEditingHost(em))
}

func TestEmptiness(t *testing.T) {
	root := MustParseFragment(`<p></p><p><br></p><p>x</p><p><span>` + ZWSP + `</span></p>`)
	children := Children(root)
	assert.True(t, IsEmpty(children[0]))
	assert.True(t, IsEmpty(children[1]))
	assert.False(t, IsEmpty(children[2]))
	assert.True(t, IsContentEmpty(children[3]))
	assert.False(t, IsContentEmpty(children[2]))
}

func TestMarkers(t *testing.T) {
	id := gofakeit.Word()
	marker := NewBookmarkMarker(id)
	root := NewElement("div")
	root.AppendChild(marker)
	root.AppendChild(NewCaretContainer())

	assert.True(t, IsBookmark(marker))
	assert.Equal(t, marker, FindByID(root, id))
	assert.True(t, IsCaretContainer(root.LastChild))
	assert.Len(t, FindAll(root, IsMarker), 2)
	assert.True(t, IsInternalAttr(TypeAttr))
	assert.Equal(t, "ab", TrimZwsp("a"+ZWSP+"b"))
}
