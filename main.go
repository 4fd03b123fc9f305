package main

import (
	"os"

	"github.com/ether/padformat/lib"
	"github.com/ether/padformat/lib/cli"
	"github.com/ether/padformat/lib/io"
	settings2 "github.com/ether/padformat/lib/settings"
	"github.com/ether/padformat/lib/utils"
)

func settingsPath() string {
	if path := os.Getenv("PADFORMAT_SETTINGS"); path != "" {
		return path
	}
	return "settings.json"
}

func main() {
	path := settingsPath()
	if len(os.Args) > 1 && os.Args[1] == "config" {
		if err := settings2.HandleConfigCommand(os.Args[2:], path, os.Stdout); err != nil {
			os.Stderr.WriteString(err.Error() + "\n")
			os.Exit(1)
		}
		return
	}

	settings, err := settings2.ReadConfigFile(path)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	setupLogger := utils.SetupLogger(settings.LogLevel)
	defer setupLogger.Sync()

	store, err := lib.NewInitStore(settings, setupLogger, io.ExportOptions{})
	if err != nil {
		setupLogger.Fatalw("Error initializing formats", "error", err)
	}
	setupLogger.Debugw("Loaded formats", "count", len(store.Registry.Names()), "plugins", len(store.Plugins))

	if err := cli.RunFromCLI(store, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		setupLogger.Errorw("Formatting failed", "error", err)
		setupLogger.Sync()
		os.Exit(1)
	}
}
