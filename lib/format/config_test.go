package format

import (
	"testing"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/point"
	"github.com/ether/padformat/lib/selection"
	"github.com/ether/padformat/lib/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterConfigured(t *testing.T) {
	cfg, err := settings.ReadConfig(`{
  "forcedRootBlock": "div",
  "caret": {"expandToWord": false},
  "formats": {
    "highlight": [{"inline": "mark", "classes": ["hl"], "remove": "all"}]
  }
}`, "json")
	require.NoError(t, err)

	r := NewDefaultRegistry()
	require.NoError(t, r.RegisterConfigured(cfg))
	list, ok := r.Get("highlight")
	require.True(t, ok)
	assert.Equal(t, "mark", list[0].Inline)
	assert.Equal(t, RemoveAll, list[0].Remove)

	options := OptionsFromSettings(cfg)
	assert.Equal(t, "div", options.ForcedRootBlock)
	assert.False(t, options.ExpandCaretToWord)
	assert.True(t, options.MergeSiblings)

	root := dom.MustParseFragment(`<p>one two</p>`)
	text := root.FirstChild.FirstChild
	f := NewFormatter(root, selection.NewStatic(selection.New(point.New(text, 4), point.New(text, 7))), r, nil, nil, options)
	require.NoError(t, f.Apply("highlight", nil))
	assert.Equal(t, `<p>one <mark class="hl">two</mark></p>`, dom.InnerHTML(root))
}
