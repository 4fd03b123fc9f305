package settings

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ether/padformat/lib/exception"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreApplied(t *testing.T) {
	cfg, err := ReadConfig("", "json")
	require.NoError(t, err)

	require.Equal(t, "INFO", cfg.LogLevel)
	require.Equal(t, "p", cfg.ForcedRootBlock)
	require.True(t, cfg.Caret.ExpandToWord)
	require.True(t, cfg.MergeSiblings)
	require.True(t, cfg.IsPluginEnabled("ep_align"))
	require.True(t, cfg.IsPluginEnabled("ep_heading"))
	require.Empty(t, cfg.Formats)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PADFORMAT_FORCEDROOTBLOCK", "div")
	t.Setenv("PADFORMAT_CARET_EXPANDTOWORD", "false")

	cfg, err := ReadConfig("", "json")
	require.NoError(t, err)
	require.Equal(t, "div", cfg.ForcedRootBlock)
	require.False(t, cfg.Caret.ExpandToWord)
}

func TestReadConfig_JSONWithComments(t *testing.T) {
	raw := `{
  // editor behaviour
  "logLevel": "debug",
  "mergeSiblings": false,
  "plugins": {
    "ep_heading": {"enabled": false},
  },
  /* host formats */
  "formats": {
    "highlight": [
      {"inline": "mark", "classes": ["hl"], "remove": "all"},
    ],
  },
}`
	cfg, err := ReadConfig(raw, "json")
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.False(t, cfg.MergeSiblings)
	assert.True(t, cfg.IsPluginEnabled("ep_align"))
	assert.False(t, cfg.IsPluginEnabled("ep_heading"))

	want := []FormatConfig{{Inline: "mark", Classes: []string{"hl"}, Remove: "all"}}
	if diff := cmp.Diff(want, cfg.Formats["highlight"]); diff != "" {
		t.Errorf("formats mismatch (-want +got):\n%s", diff)
	}
}

func TestReadConfig_YAML(t *testing.T) {
	raw := `
forcedRootBlock: div
formats:
  center:
    - selector: p,div
      styles:
        text-align: center
`
	cfg, err := ReadConfig(raw, "yaml")
	require.NoError(t, err)
	assert.Equal(t, "div", cfg.ForcedRootBlock)
	require.Len(t, cfg.Formats["center"], 1)
	assert.Equal(t, "p,div", cfg.Formats["center"][0].Selector)
	assert.Equal(t, map[string]string{"text-align": "center"}, cfg.Formats["center"][0].Styles)
}

func TestReadConfig_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"broken json", `{"logLevel": `},
		{"unknown log level", `{"logLevel": "LOUD"}`},
		{"format without kind", `{"formats": {"x": [{"styles": {"color": "red"}}]}}`},
		{"bad remove policy", `{"formats": {"x": [{"inline": "b", "remove": "sometimes"}]}}`},
		{"empty format list", `{"formats": {"x": []}}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadConfig(tc.raw, "json")
			var configErr *exception.ConfigError
			require.True(t, errors.As(err, &configErr), "got %v", err)
		})
	}
}

func TestReadConfigFile_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := ReadConfigFile(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	assert.Equal(t, "p", cfg.ForcedRootBlock)
}

func TestGetAllPlugins_SortedByName(t *testing.T) {
	cfg, err := ReadConfig(`{"plugins": {"ep_zeta": {"enabled": true}}}`, "json")
	require.NoError(t, err)

	names := make([]string, 0)
	for _, p := range cfg.GetAllPlugins() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"ep_align", "ep_heading", "ep_zeta"}, names)
}

func TestStripWithOptions(t *testing.T) {
	raw := `{"a": "http://x", // note
"b": [1, 2,], /* gone */ "c": "/* kept */"}`
	stripped := StripWithOptions(raw, &Options{Whitespace: false, TrailingCommas: true})
	assert.Equal(t, "{\"a\": \"http://x\", \n\"b\": [1, 2],  \"c\": \"/* kept */\"}", stripped)
}

func TestHandleConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"forcedRootBlock": "div"}`), 0o600))

	var out bytes.Buffer
	require.NoError(t, HandleConfigCommand([]string{"get", "forcedRootBlock"}, path, &out))
	assert.Equal(t, "div\n", out.String())

	out.Reset()
	require.NoError(t, HandleConfigCommand([]string{"env"}, path, &out))
	assert.Contains(t, out.String(), "PADFORMAT_CARET_EXPANDTOWORD")

	assert.Error(t, HandleConfigCommand([]string{"get", "nope"}, path, &out))
	assert.Error(t, HandleConfigCommand([]string{"explode"}, path, &out))
}
