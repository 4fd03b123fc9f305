package dom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

var (
	rgbPattern        = regexp.MustCompile(`(?i)^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+)\s*)?\)$`)
	fontListSeparator = regexp.MustCompile(`,\s+`)
)

// ParseStyle parses a style attribute into its declarations. Input douceur
// cannot read yields no declarations.
func ParseStyle(text string) []*css.Declaration {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if !strings.HasSuffix(text, ";") {
		text += ";"
	}
	decls, err := parser.ParseDeclarations(text)
	if err != nil {
		return nil
	}
	for _, d := range decls {
		d.Property = NormalizeProperty(d.Property)
		d.Value = strings.TrimSpace(d.Value)
	}
	return decls
}

// StyleString serializes declarations in order as "prop: value;" pairs.
func StyleString(decls []*css.Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		if d.Value == "" {
			continue
		}
		if d.Important {
			parts = append(parts, d.Property+": "+d.Value+" !important;")
			continue
		}
		parts = append(parts, d.Property+": "+d.Value+";")
	}
	return strings.Join(parts, " ")
}

func Styles(n *html.Node) []*css.Declaration {
	if !IsElement(n) {
		return nil
	}
	return ParseStyle(Attr(n, "style"))
}

// StyleMap returns the style declarations of n keyed by property.
func StyleMap(n *html.Node) map[string]string {
	styles := make(map[string]string)
	for _, d := range Styles(n) {
		styles[d.Property] = d.Value
	}
	return styles
}

func GetStyle(n *html.Node, prop string) string {
	prop = NormalizeProperty(prop)
	for _, d := range Styles(n) {
		if d.Property == prop {
			return d.Value
		}
	}
	return ""
}

// SetStyle sets one declaration on n; an empty value removes it. The style
// attribute is dropped once no declaration is left.
func SetStyle(n *html.Node, prop, value string) {
	prop = NormalizeProperty(prop)
	value = strings.TrimSpace(value)
	decls := Styles(n)
	found := false
	for _, d := range decls {
		if d.Property == prop {
			d.Value = value
			found = true
		}
	}
	if !found && value != "" {
		decls = append(decls, &css.Declaration{Property: prop, Value: value})
	}
	writeStyles(n, decls)
}

func RemoveStyle(n *html.Node, prop string) {
	SetStyle(n, prop, "")
}

func writeStyles(n *html.Node, decls []*css.Declaration) {
	text := StyleString(decls)
	if text == "" {
		RemoveAttr(n, "style")
		return
	}
	SetAttr(n, "style", text)
}

// NormalizeProperty turns camelCase property names into their dashed form.
func NormalizeProperty(prop string) string {
	prop = strings.TrimSpace(prop)
	var sb strings.Builder
	for i, r := range prop {
		if unicode.IsUpper(r) {
			if i > 0 {
				sb.WriteByte('-')
			}
			sb.WriteRune(unicode.ToLower(r))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// NormalizeStyleValue brings a style value to the canonical form used for
// comparisons: colors become lower case hex, bold weights collapse and font
// family lists lose their quoting.
func NormalizeStyleValue(prop, value string) string {
	prop = NormalizeProperty(prop)
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if strings.Contains(prop, "color") {
		value = ToHex(value)
	}
	switch prop {
	case "font-weight":
		if value == "700" {
			value = "bold"
		}
	case "font-family":
		value = strings.NewReplacer(`'`, "", `"`, "").Replace(value)
		value = fontListSeparator.ReplaceAllString(value, ",")
	}
	return strings.ToLower(value)
}

// ToHex converts rgb() colors to #rrggbb and lower cases hex colors.
func ToHex(value string) string {
	m := rgbPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return strings.ToLower(value)
	}
	if m[4] != "" {
		if alpha, err := strconv.ParseFloat(m[4], 64); err == nil && alpha == 0 {
			return "transparent"
		}
	}
	hex := "#"
	for _, part := range m[1:4] {
		v, _ := strconv.Atoi(part)
		hex += fmt.Sprintf("%02x", min(v, 255))
	}
	return hex
}
