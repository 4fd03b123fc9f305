package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ether/padformat/lib"
	"github.com/ether/padformat/lib/exception"
	"github.com/ether/padformat/lib/format"
	"github.com/ether/padformat/lib/io"
	"github.com/ether/padformat/lib/settings"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseCLIArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Args
	}{
		{
			name: "positional input",
			args: []string{"doc.html"},
			want: Args{Input: "doc.html", Action: "apply", Vars: format.Vars{}, End: -1, Output: "html"},
		},
		{
			name: "explicit flags",
			args: []string{"-in", "doc.html", "-action", "remove", "-format", "forecolor", "-var", "value=red",
				"-start", "2", "-end", "4", "-similar", "-output", "text"},
			want: Args{Input: "doc.html", Action: "remove", Format: "forecolor", Vars: format.Vars{"value": "red"},
				Start: 2, End: 4, Mode: format.Similar, Output: "text"},
		},
		{
			name: "stdin",
			args: []string{"-", "-o", "text"},
			want: Args{Input: "-", Action: "apply", Vars: format.Vars{}, End: -1, Output: "text"},
		},
		{
			name: "shorthands",
			args: []string{"doc.txt", "-f", "bold", "-o", "markdown"},
			want: Args{Input: "doc.txt", Action: "apply", Format: "bold", Vars: format.Vars{}, End: -1, Output: "markdown"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCLIArgs(tt.args)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parseCLIArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseCLIArgs_Invalid(t *testing.T) {
	for _, args := range [][]string{
		{},
		{"doc.html", "-action", "bolden"},
		{"doc.html", "-o", "pdf"},
		{"doc.html", "-var", "novalue"},
		{"doc.html", "-start", "x"},
	} {
		_, err := parseCLIArgs(args)
		assert.Error(t, err, strings.Join(args, " "))
	}
}

func newStore(t *testing.T) *lib.InitStore {
	t.Helper()
	retrieved, err := settings.ReadConfig("", "json")
	require.NoError(t, err)
	store, err := lib.NewInitStore(retrieved, zap.NewNop().Sugar(), io.ExportOptions{})
	require.NoError(t, err)
	return store
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := RunFromCLI(newStore(t), args, strings.NewReader(""), &out)
	return out.String(), err
}

func TestRunFromCLI_ApplyBold(t *testing.T) {
	path := writeInput(t, "doc.html", `<p>hello world</p>`)

	out, err := run(t, path, "-f", "bold", "-start", "0", "-end", "5")
	require.NoError(t, err)
	assert.Equal(t, "<p><strong>hello</strong> world</p>\n", out)
}

func TestRunFromCLI_RemoveItalic(t *testing.T) {
	path := writeInput(t, "doc.html", `<p><em>a b</em></p>`)

	out, err := run(t, path, "-action", "remove", "-f", "italic")
	require.NoError(t, err)
	assert.Equal(t, "<p>a b</p>\n", out)
}

func TestRunFromCLI_PluginAlignment(t *testing.T) {
	path := writeInput(t, "doc.html", `<p>hello world</p>`)

	out, err := run(t, path, "-action", "toggle", "-f", "aligncenter")
	require.NoError(t, err)
	assert.Equal(t, "<p style=\"text-align: center;\">hello world</p>\n", out)
}

func TestRunFromCLI_TextToMarkdownHeading(t *testing.T) {
	path := writeInput(t, "notes.txt", "Title\nbody\n")

	out, err := run(t, path, "-f", "h1", "-start", "0", "-end", "5", "-o", "markdown")
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody\n", out)
}

func TestRunFromCLI_StdinToText(t *testing.T) {
	var out bytes.Buffer
	err := RunFromCLI(newStore(t), []string{"-", "-o", "text"}, strings.NewReader("<p>x</p><p>y</p>"), &out)

	require.NoError(t, err)
	assert.Equal(t, "x\ny\n", out.String())
}

func TestRunFromCLI_Document(t *testing.T) {
	path := writeInput(t, "report.html", `<p>x</p>`)

	out, err := run(t, path, "-o", "document")
	require.NoError(t, err)
	assert.Contains(t, out, "<title>report</title>")
}

func TestRunFromCLI_Errors(t *testing.T) {
	path := writeInput(t, "doc.html", `<p>ab</p>`)

	_, err := run(t, path, "-f", "blink")
	var notFound *exception.FormatNotFoundError
	require.True(t, errors.As(err, &notFound))

	_, err = run(t, path, "-f", "bold", "-end", "99")
	assert.ErrorContains(t, err, "outside the document")

	_, err = run(t, filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}
