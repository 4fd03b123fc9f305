package ep_heading

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/hooks/events"
	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// analyzeBlock returns the level of a heading block, or 0 for anything else.
func analyzeBlock(n *html.Node) int {
	name := dom.Name(n)
	if len(name) != 2 || name[0] != 'h' {
		return 0
	}
	level, err := strconv.Atoi(name[1:])
	if err != nil || level < 1 || level > 6 {
		return 0
	}
	return level
}

// Slug turns heading text into an anchor id: accents are stripped, letters
// lowercased and every other run of characters becomes a single dash.
func Slug(text string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(stripAccents, text)
	if err != nil {
		plain = text
	}
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(plain), "-"), "-")
}

// getHTMLForExport gives every heading without an id a unique anchor derived
// from its text.
func (e *EpHeadingsPlugin) getHTMLForExport(ctx *events.HTMLForExportContext) {
	used := make(map[string]int)
	for _, n := range dom.FindAll(ctx.Root, func(n *html.Node) bool { return dom.ID(n) != "" }) {
		used[dom.ID(n)]++
	}

	headings := dom.FindAll(ctx.Root, func(n *html.Node) bool {
		return dom.IsElement(n) && analyzeBlock(n) > 0
	})
	for _, heading := range headings {
		if dom.ID(heading) != "" {
			continue
		}
		slug := Slug(dom.TrimZwsp(dom.Text(heading)))
		if slug == "" {
			continue
		}
		id := slug
		for i := 1; used[id] > 0; i++ {
			id = slug + "-" + strconv.Itoa(i)
		}
		used[id]++
		dom.SetAttr(heading, "id", id)
		if e.logger != nil {
			e.logger.Debugw("added heading anchor", "level", analyzeBlock(heading), "id", id)
		}
	}
}
