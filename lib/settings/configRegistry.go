package settings

import (
	"strings"

	"github.com/spf13/viper"
)

type ConfigKey struct {
	Key         string
	Default     any
	Description string
}

const envPrefix = "PADFORMAT"

const (
	LogLevel          = "logLevel"
	ForcedRootBlock   = "forcedRootBlock"
	CaretExpandToWord = "caret.expandToWord"
	MergeSiblings     = "mergeSiblings"
	Plugins           = "plugins"
	EpAlignEnabled    = "plugins.ep_align.enabled"
	EpHeadingEnabled  = "plugins.ep_heading.enabled"
	Formats           = "formats"
)

func EnvVar(key string) string {
	return envPrefix + "_" + strings.ToUpper(
		strings.ReplaceAll(key, ".", "_"),
	)
}

var Registry = []ConfigKey{
	// ---------------------------------------------------------------------
	// Core
	// ---------------------------------------------------------------------
	{Key: LogLevel, Default: "INFO", Description: "Log level (DEBUG, INFO, WARN, ERROR)"},

	// ---------------------------------------------------------------------
	// Formatter
	// ---------------------------------------------------------------------
	{
		Key:         ForcedRootBlock,
		Default:     "p",
		Description: "Block that wraps content left at the root after a block format is removed",
	},
	{
		Key:         CaretExpandToWord,
		Default:     true,
		Description: "Format the whole word when the caret sits inside one",
	},
	{
		Key:         MergeSiblings,
		Default:     true,
		Description: "Merge identical sibling elements after applying a format",
	},

	// ---------------------------------------------------------------------
	// Plugins
	// ---------------------------------------------------------------------
	{Key: EpAlignEnabled, Default: true, Description: "Enable ep_align plugin"},
	{Key: EpHeadingEnabled, Default: true, Description: "Enable ep_heading plugin"},
}

func applyRegistryDefaults(v *viper.Viper) {
	for _, c := range Registry {
		v.SetDefault(c.Key, c.Default)
	}
}
