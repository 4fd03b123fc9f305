package format

import (
	"github.com/ether/padformat/lib/dom"
	"golang.org/x/net/html"
)

var preserved = []string{"class", "style"}

// DefaultFormats returns fresh copies of the built-in formats.
func DefaultFormats() map[string][]Descriptor {
	formats := map[string][]Descriptor{
		"valigntop":    {{Selector: "td,th", Styles: map[string]string{"verticalAlign": "top"}}},
		"valignmiddle": {{Selector: "td,th", Styles: map[string]string{"verticalAlign": "middle"}}},
		"valignbottom": {{Selector: "td,th", Styles: map[string]string{"verticalAlign": "bottom"}}},

		"bold": {
			{Inline: "strong", Remove: RemoveAll, PreserveAttributes: preserved},
			{Inline: "span", Styles: map[string]string{"fontWeight": "bold"}},
			{Inline: "b", Remove: RemoveAll, PreserveAttributes: preserved},
		},
		"italic": {
			{Inline: "em", Remove: RemoveAll, PreserveAttributes: preserved},
			{Inline: "span", Styles: map[string]string{"fontStyle": "italic"}},
			{Inline: "i", Remove: RemoveAll, PreserveAttributes: preserved},
		},
		"underline": {
			{Inline: "span", Styles: map[string]string{"textDecoration": "underline"}, Exact: true},
			{Inline: "u", Remove: RemoveAll, PreserveAttributes: preserved},
		},
		"strikethrough": {
			{Inline: "span", Styles: map[string]string{"textDecoration": "line-through"}, Exact: true},
			{Inline: "strike", Remove: RemoveAll, PreserveAttributes: preserved},
			{Inline: "s", Remove: RemoveAll, PreserveAttributes: preserved},
		},
		"forecolor": {{
			Inline: "span", Styles: map[string]string{"color": "%value"},
			Links: true, RemoveSimilar: true, ClearChildStyles: true,
		}},
		"hilitecolor": {{
			Inline: "span", Styles: map[string]string{"backgroundColor": "%value"},
			Links: true, RemoveSimilar: true, ClearChildStyles: true,
		}},
		"fontname": {{
			Inline: "span", Toggle: Bool(false), Styles: map[string]string{"fontFamily": "%value"},
			ClearChildStyles: true,
		}},
		"fontsize": {{
			Inline: "span", Toggle: Bool(false), Styles: map[string]string{"fontSize": "%value"},
			ClearChildStyles: true,
		}},
		"lineheight": {{
			Selector: "h1,h2,h3,h4,h5,h6,p,li,td,th,div",
			Styles:   map[string]string{"lineHeight": "%value"},
		}},
		"blockquote":  {{Block: "blockquote", Wrapper: true, Remove: RemoveAll}},
		"subscript":   {{Inline: "sub", Group: "script"}},
		"superscript": {{Inline: "sup", Group: "script"}},
		"code":        {{Inline: "code"}},
		"link": {{
			Inline: "a", Selector: "a", Remove: RemoveAll, Split: Bool(true), Deep: Bool(true),
			Hooks: &Hooks{
				OnMatch: func(n *html.Node, _ *Descriptor, _ Item) bool {
					return dom.IsElement(n) && dom.HasAttr(n, "href")
				},
				OnFormat: func(n *html.Node, _ *Descriptor, vars Vars) {
					for key, value := range vars {
						dom.SetAttr(n, key, value)
					}
				},
			},
		}},
		"lang": {{
			Inline: "span", ClearChildStyles: true, RemoveSimilar: true,
			Attributes: map[string]string{"lang": "%value"},
		}},
		"removeformat": {
			{
				Selector: "b,strong,em,i,font,u,strike,s,sub,sup,dfn,code,samp,kbd,var,cite,mark,q,del,ins,small",
				Remove:   RemoveAll, Split: Bool(true), Expand: Bool(false), BlockExpand: true, Deep: Bool(true),
			},
			{
				Selector: "span", AttributeNames: []string{"style", "class"},
				Remove: RemoveEmpty, Split: Bool(true), Expand: Bool(false), Deep: Bool(true),
			},
			{
				Selector: "*", AttributeNames: []string{"style", "class"},
				Split: Bool(false), Expand: Bool(false), Deep: Bool(true),
			},
		},
	}
	for _, name := range []string{"p", "div", "address", "pre", "dt", "dd", "samp"} {
		formats[name] = []Descriptor{{Block: name, Remove: RemoveAll}}
	}
	return formats
}
