package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ether/padformat/lib/exception"
)

// HandleConfigCommand runs one of the "config" subcommands against the
// settings file at path and writes its report to out.
func HandleConfigCommand(args []string, path string, out io.Writer) error {
	if len(args) < 1 {
		printConfigHelp(out)
		return errors.New("missing config command")
	}

	v := newViper()
	if content, err := os.ReadFile(path); err == nil {
		configType := strings.TrimPrefix(filepath.Ext(path), ".")
		v.SetConfigType(configType)
		raw := string(content)
		if configType == "json" {
			raw = StripWithOptions(raw, &Options{Whitespace: true, TrailingCommas: true})
		}
		if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
			return exception.NewConfigError("settings could not be parsed", err)
		}
	}

	switch args[0] {
	case "show":
		fmt.Fprintf(out, "%-30s %-35s %-10s %-10s %s\n", "KEY", "ENV VAR", "CURRENT", "DEFAULT", "DESCRIPTION")
		for _, c := range Registry {
			fmt.Fprintf(out, "%-30s %-35s %-10v %-10v %s\n", c.Key, EnvVar(c.Key), v.Get(c.Key), c.Default, c.Description)
		}
	case "env":
		fmt.Fprintf(out, "%-35s %s\n", "ENV VAR", "KEY")
		for _, c := range Registry {
			fmt.Fprintf(out, "%-35s %s\n", EnvVar(c.Key), c.Key)
		}
	case "get":
		if len(args) != 2 {
			return errors.New("usage: padformat config get <key>")
		}
		for _, c := range Registry {
			if strings.EqualFold(c.Key, args[1]) {
				fmt.Fprintln(out, v.Get(c.Key))
				return nil
			}
		}
		return fmt.Errorf("unknown config key: %s", args[1])
	case "init":
		defaults := make(map[string]any)
		for _, c := range Registry {
			defaults[c.Key] = c.Default
		}
		b, err := json.MarshalIndent(defaults, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(b))
	default:
		printConfigHelp(out)
		return fmt.Errorf("unknown config command: %s", args[0])
	}
	return nil
}

func printConfigHelp(out io.Writer) {
	fmt.Fprintln(out, `Usage:
  padformat config show
  padformat config env
  padformat config get <key>
  padformat config init`)
}
