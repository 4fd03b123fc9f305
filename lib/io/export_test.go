package io

import (
	"strings"
	"testing"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/hooks"
	"github.com/ether/padformat/lib/hooks/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestClean_StripsEditorState(t *testing.T) {
	markup := "<p>a<span id=\"_mce_caret\" data-mce-type=\"format-caret\"><strong>\uFEFFb</strong></span>" +
		"<span id=\"x\" data-mce-type=\"bookmark\"></span> <em class=\"mce-item keep\" data-mce-style=\"x\">c</em></p>"
	root := dom.MustParseFragment(markup)

	clean := Clean(root)
	assert.Equal(t, `<p>a<strong>b</strong> <em class="keep">c</em></p>`, dom.InnerHTML(clean))
	assert.NotNil(t, dom.FindByID(root, dom.CaretID), "the live tree must stay untouched")
}

func TestExportHTML_HooksRewriteCopy(t *testing.T) {
	root := dom.MustParseFragment(`<p><strong>a</strong></p>`)
	hookSystem := hooks.NewHook()
	hookSystem.EnqueueGetHTMLForExportHook(func(ctx *events.HTMLForExportContext) {
		for _, n := range dom.FindAll(ctx.Root, func(n *html.Node) bool { return dom.IsTag(n, "strong") }) {
			dom.Rename(n, "b")
		}
	})
	exporter := NewExporter(&hookSystem, nil, ExportOptions{})

	assert.Equal(t, `<p><b>a</b></p>`, exporter.ExportHTML(root))
	assert.Equal(t, `<p><strong>a</strong></p>`, dom.InnerHTML(root))
}

func TestExportHTML_HookSetsHTML(t *testing.T) {
	root := dom.MustParseFragment(`<p>a</p>`)
	hookSystem := hooks.NewHook()
	hookSystem.EnqueueGetHTMLForExportHook(func(ctx *events.HTMLForExportContext) {
		*ctx.HTML = "<section>" + dom.InnerHTML(ctx.Root) + "</section>"
	})
	exporter := NewExporter(&hookSystem, nil, ExportOptions{})

	assert.Equal(t, `<section><p>a</p></section>`, exporter.ExportHTML(root))
}

func TestExportHTML_Linkify(t *testing.T) {
	root := dom.MustParseFragment(`<p>see https://example.com now <a href="https://x.org">https://x.org</a></p>`)
	exporter := NewExporter(nil, nil, ExportOptions{Linkify: true})

	assert.Equal(t,
		`<p>see <a href="https://example.com">https://example.com</a> now <a href="https://x.org">https://x.org</a></p>`,
		exporter.ExportHTML(root))
}

func TestExportHTMLDocument(t *testing.T) {
	root := dom.MustParseFragment(`<p>a</p>`)
	doc := NewExporter(nil, nil, ExportOptions{}).ExportHTMLDocument(root, "A & B")

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, "<title>A &amp; B</title>")
	assert.Contains(t, doc, "<body>\n<p>a</p>\n</body>")
}

func TestExportText(t *testing.T) {
	root := dom.MustParseFragment(`<h1>Title</h1><p>one <strong>two</strong></p><ol><li>a</li><li>b</li></ol>` +
		`<ul><li>c</li></ul><p><br></p><p>end</p>`)
	hookSystem := hooks.NewHook()
	hookSystem.EnqueueGetTextForExportHook(func(ctx *events.TextForExportContext) {
		*ctx.Text += "--\n"
	})
	exporter := NewExporter(&hookSystem, nil, ExportOptions{})

	assert.Equal(t, "Title\none two\n1. a\n2. b\n• c\n\nend\n--\n", exporter.ExportText(root))
}

func TestExportText_DropsPlaceholders(t *testing.T) {
	root := dom.MustParseFragment("<p>ab<span id=\"_mce_caret\" data-mce-type=\"format-caret\">\uFEFF</span>cd</p>")
	exporter := NewExporter(nil, nil, ExportOptions{})

	assert.Equal(t, "abcd\n", exporter.ExportText(root))
}

func TestExportMarkdown(t *testing.T) {
	root := dom.MustParseFragment(`<h2>Title</h2><p>one <strong>two</strong> <em>three</em> https://example.com</p>` +
		`<ul><li>a</li><li>b</li></ul><blockquote><p>q</p></blockquote>`)
	exporter := NewExporter(nil, nil, ExportOptions{})

	expected := "## Title\n\none **two** *three* <https://example.com>\n\n- a\n- b\n\n> q\n"
	assert.Equal(t, expected, exporter.ExportMarkdown(root))
}

func TestExportMarkdown_LinksAndOrderedLists(t *testing.T) {
	root := dom.MustParseFragment(`<ol><li><a href="https://x.org">x</a></li><li><s>gone</s></li></ol>`)
	exporter := NewExporter(nil, nil, ExportOptions{})

	assert.Equal(t, "1. [x](https://x.org)\n2. ~~gone~~\n", exporter.ExportMarkdown(root))
}

func TestImportHTML_DropsForeignContent(t *testing.T) {
	markup := "<!-- c --><p>a<script>x</script><span data-mce-type=\"bookmark\" id=\"b\"></span>b</p>" +
		"<span id=\"_mce_caret\" data-mce-type=\"format-caret\">\uFEFFc</span>"
	root, err := NewImporter(nil).ImportHTML(markup)
	require.NoError(t, err)

	assert.Nil(t, root.Parent)
	assert.Equal(t, `<p>ab</p>c`, dom.InnerHTML(root))
}

func TestImportText(t *testing.T) {
	root := NewImporter(nil).ImportText("one\r\n\n\n\ntwo\n")

	assert.Equal(t, `<p>one</p><p><br/></p><p>two</p>`, dom.InnerHTML(root))
}
