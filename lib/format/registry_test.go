package format

import (
	"errors"
	"testing"

	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/exception"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r := NewDefaultRegistry()
	for _, name := range []string{"bold", "italic", "underline", "forecolor", "blockquote", "link", "removeformat", "p", "pre"} {
		assert.True(t, r.Has(name), name)
	}

	bold, ok := r.Get("bold")
	require.True(t, ok)
	require.Len(t, bold, 3)
	assert.Equal(t, "strong", bold[0].Inline)
	assert.Equal(t, KindInline, bold[0].Kind())

	if diff := cmp.Diff([]string{"superscript"}, r.Group("subscript")); diff != "" {
		t.Errorf("group mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, r.Group("bold"))
}

func TestRegister_AppliesDefaults(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("align", Descriptor{
		Selector: "p,div",
		Styles:   map[string]string{"textAlign": "center"},
	}))

	list, ok := r.Get("align")
	require.True(t, ok)
	d := list[0]
	assert.Equal(t, KindSelector, d.Kind())
	assert.Equal(t, RemoveNone, d.Remove)
	assert.False(t, d.IsDeep())
	assert.False(t, d.CanSplit())
	assert.Equal(t, map[string]string{"text-align": "center"}, d.Styles)
	assert.True(t, d.matchesSelector(dom.NewElement("div")))
	assert.False(t, d.matchesSelector(dom.NewElement("span")))
}

func TestRegister_Errors(t *testing.T) {
	r := NewRegistry()
	testCases := []struct {
		name        string
		formatName  string
		descriptors []Descriptor
	}{
		{"empty name", "", []Descriptor{{Inline: "b"}}},
		{"no descriptors", "bold", nil},
		{"no kind", "bold", []Descriptor{{Styles: map[string]string{"color": "red"}}}},
		{"bad selector", "bold", []Descriptor{{Selector: "p[["}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := r.Register(tc.formatName, tc.descriptors...)
			var invalid *exception.InvalidDescriptorError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, "INVALID_DESCRIPTOR", invalid.Code)
		})
	}
	assert.Empty(t, r.Names())
}

func TestReplaceVars(t *testing.T) {
	assert.Equal(t, "red", ReplaceVars("%value", Vars{"value": "red"}))
	assert.Equal(t, "%value", ReplaceVars("%value", nil))
	assert.Equal(t, "1px solid blue", ReplaceVars("%width solid %color", Vars{"width": "1px", "color": "blue"}))
}

func TestUnregister(t *testing.T) {
	r := NewDefaultRegistry()
	r.Unregister("bold")
	assert.False(t, r.Has("bold"))
	assert.NotContains(t, r.Names(), "bold")
}
