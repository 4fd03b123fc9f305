package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ether/padformat/lib"
	"github.com/ether/padformat/lib/dom"
	"github.com/ether/padformat/lib/format"
	"github.com/ether/padformat/lib/selection"
	"golang.org/x/net/html"
)

// Args are the parsed command line arguments of a format run.
type Args struct {
	Input   string
	Action  string
	Format  string
	Vars    format.Vars
	Start   int
	End     int
	Mode    format.MatchMode
	Output  string
	Title   string
	Linkify bool
}

var actions = []string{"apply", "remove", "toggle"}
var outputs = []string{"html", "document", "text", "markdown"}

type varsFlag format.Vars

func (v varsFlag) String() string {
	parts := make([]string, 0, len(v))
	for k, val := range v {
		parts = append(parts, k+"="+val)
	}
	return strings.Join(parts, ",")
}

func (v varsFlag) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("variable %q must look like name=value", value)
	}
	v[key] = val
	return nil
}

func parseCLIArgs(args []string) (Args, error) {
	parsed := Args{Vars: format.Vars{}}
	fs := flag.NewFlagSet("padformat", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&parsed.Input, "in", "", "HTML or .txt file to format, - for stdin")
	fs.StringVar(&parsed.Action, "action", "apply", "One of apply, remove, toggle")
	fs.StringVar(&parsed.Format, "format", "", "Name of the format, empty to only convert")
	fs.StringVar(&parsed.Format, "f", "", "Name of the format (shorthand)")
	fs.Var(varsFlag(parsed.Vars), "var", "Format variable as name=value, repeatable")
	fs.IntVar(&parsed.Start, "start", 0, "Rune offset where the selection starts")
	fs.IntVar(&parsed.End, "end", -1, "Rune offset where the selection ends, -1 for the end of the text")
	similar := fs.Bool("similar", false, "Remove formats matching by name only")
	fs.StringVar(&parsed.Output, "output", "html", "One of html, document, text, markdown")
	fs.StringVar(&parsed.Output, "o", "html", "Output format (shorthand)")
	fs.StringVar(&parsed.Title, "title", "", "Title of the exported document")
	fs.BoolVar(&parsed.Linkify, "linkify", false, "Turn bare URLs into links in HTML output")

	if len(args) > 0 && (args[0] == "-" || !strings.HasPrefix(args[0], "-")) {
		parsed.Input = args[0]
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return parsed, err
	}
	if *similar {
		parsed.Mode = format.Similar
	}
	if parsed.Input == "" {
		return parsed, errors.New("no input file specified")
	}
	if !slices.Contains(actions, parsed.Action) {
		return parsed, fmt.Errorf("unknown action %q", parsed.Action)
	}
	if !slices.Contains(outputs, parsed.Output) {
		return parsed, fmt.Errorf("unknown output %q", parsed.Output)
	}
	return parsed, nil
}

// RunFromCLI imports the input, runs the requested format action over the
// selected text and writes the export to out.
func RunFromCLI(store *lib.InitStore, args []string, stdin io.Reader, out io.Writer) error {
	parsed, err := parseCLIArgs(args)
	if err != nil {
		return err
	}

	var raw []byte
	if parsed.Input == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(parsed.Input)
	}
	if err != nil {
		return err
	}

	var root *html.Node
	if strings.EqualFold(filepath.Ext(parsed.Input), ".txt") {
		root = store.Importer.ImportText(string(raw))
	} else if root, err = store.Importer.ImportHTML(string(raw)); err != nil {
		return err
	}

	if parsed.Format != "" {
		if err := runAction(store, root, parsed); err != nil {
			return err
		}
	}

	store.Exporter.Options.Linkify = parsed.Linkify
	var rendered string
	switch parsed.Output {
	case "document":
		title := parsed.Title
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(parsed.Input), filepath.Ext(parsed.Input))
		}
		rendered = store.Exporter.ExportHTMLDocument(root, title)
	case "text":
		rendered = store.Exporter.ExportText(root)
	case "markdown":
		rendered = store.Exporter.ExportMarkdown(root)
	default:
		rendered = store.Exporter.ExportHTML(root) + "\n"
	}
	_, err = io.WriteString(out, rendered)
	return err
}

func runAction(store *lib.InitStore, root *html.Node, parsed Args) error {
	end := parsed.End
	if end < 0 {
		end = len([]rune(textOf(root)))
	}
	r, ok := selection.FromTextOffsets(root, parsed.Start, end)
	if !ok {
		return fmt.Errorf("selection %d-%d is outside the document", parsed.Start, end)
	}
	f := store.NewFormatter(root, selection.NewStatic(r))

	store.Logger.Debugw("running format action", "action", parsed.Action, "format", parsed.Format,
		"start", parsed.Start, "end", end)
	switch parsed.Action {
	case "remove":
		return f.Remove(parsed.Format, parsed.Vars, parsed.Mode)
	case "toggle":
		return f.Toggle(parsed.Format, parsed.Vars)
	default:
		return f.Apply(parsed.Format, parsed.Vars)
	}
}

func textOf(root *html.Node) string {
	var sb strings.Builder
	for _, t := range dom.FindAll(root, dom.IsText) {
		sb.WriteString(t.Data)
	}
	return sb.String()
}
