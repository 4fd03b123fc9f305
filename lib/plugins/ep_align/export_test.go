package ep_align

import (
	"testing"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/format"
	"github.com/ether/padformat/lib/hooks"
	"github.com/ether/padformat/lib/hooks/events"
	"github.com/ether/padformat/lib/plugins/interfaces"
	"github.com/ether/padformat/lib/point"
	"github.com/ether/padformat/lib/selection"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

func initPlugin(t *testing.T) (*format.Registry, *hooks.Hook) {
	t.Helper()
	hookSystem := hooks.NewHook()
	registry := format.NewDefaultRegistry()
	plugin := &EpAlignPlugin{}
	require.NoError(t, plugin.Init(&interfaces.EpPluginStore{
		Logger:     zap.NewNop().Sugar(),
		HookSystem: &hookSystem,
		Registry:   registry,
	}))
	return registry, &hookSystem
}

func TestAnalyzeBlock(t *testing.T) {
	root := dom.MustParseFragment(`<p style="text-align: Center;">a</p><p align="right">b</p><p align="middle">c</p><p>d</p>`)
	blocks := dom.Children(root)

	require.NotNil(t, analyzeBlock(blocks[0]))
	assert.Equal(t, "center", *analyzeBlock(blocks[0]))
	require.NotNil(t, analyzeBlock(blocks[1]))
	assert.Equal(t, "right", *analyzeBlock(blocks[1]))
	assert.Nil(t, analyzeBlock(blocks[2]))
	assert.Nil(t, analyzeBlock(blocks[3]))
}

func TestInit_RegistersAlignGroup(t *testing.T) {
	registry, _ := initPlugin(t)

	for _, value := range Alignments {
		assert.True(t, registry.Has("align"+value))
	}
	assert.Equal(t, []string{"alignjustify", "alignleft", "alignright"}, registry.Group("aligncenter"))
}

func TestApply_AlignmentsAreExclusive(t *testing.T) {
	registry, _ := initPlugin(t)
	root := dom.MustParseFragment(`<p>ab</p>`)
	f := format.NewFormatter(root, nil, registry, nil, nil, format.DefaultOptions())
	text := root.FirstChild.FirstChild
	f.Host().SetRange(selection.New(point.New(text, 0), point.New(text, 2)))

	require.NoError(t, f.Apply("aligncenter", nil))
	assert.Equal(t, `<p style="text-align: center;">ab</p>`, dom.InnerHTML(root))

	require.NoError(t, f.Apply("alignright", nil))
	assert.Equal(t, `<p style="text-align: right;">ab</p>`, dom.InnerHTML(root))
	assert.Nil(t, f.Match("aligncenter", nil, format.Exact))
	assert.NotNil(t, f.Match("alignright", nil, format.Exact))
}

func TestApply_WrapsLooseContentInDiv(t *testing.T) {
	registry, _ := initPlugin(t)
	root := dom.MustParseFragment(`ab`)
	f := format.NewFormatter(root, nil, registry, nil, nil, format.DefaultOptions())
	text := root.FirstChild
	f.Host().SetRange(selection.New(point.New(text, 0), point.New(text, 2)))

	require.NoError(t, f.Apply("aligncenter", nil))
	assert.Equal(t, `<div style="text-align: center;">ab</div>`, dom.InnerHTML(root))
}

func TestGetHTMLForExport(t *testing.T) {
	root := dom.MustParseFragment(`<p align="center">a</p><p style="text-align: left;">b</p>` +
		`<div><p style="text-align: justify;">c</p></div><span align="right">d</span>`)

	GetHTMLForExport(&events.HTMLForExportContext{Root: root})

	assert.Equal(t, `<p style="text-align: center;">a</p><p>b</p>`+
		`<div><p style="text-align: justify;">c</p></div><span align="right">d</span>`, dom.InnerHTML(root))
}

func TestInit_EnqueuesExportHook(t *testing.T) {
	_, hookSystem := initPlugin(t)
	root := dom.MustParseFragment(`<h2 align="right">a</h2>`)
	rendered := ""

	hookSystem.ExecuteGetHTMLForExportHooks(&events.HTMLForExportContext{Root: root, HTML: &rendered})

	assert.Empty(t, rendered)
	heading := dom.FindAll(root, func(n *html.Node) bool { return dom.IsTag(n, "h2") })
	require.Len(t, heading, 1)
	assert.Equal(t, "right", dom.GetStyle(heading[0], "text-align"))
}
