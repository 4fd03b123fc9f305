package settings

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ether/padformat/lib/exception"
	"github.com/spf13/viper"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	applyRegistryDefaults(v)
	return v
}

// ReadConfig parses raw in the given viper config type ("json", "yaml",
// "toml"). An empty raw yields the defaults, still subject to PADFORMAT_*
// environment overrides.
func ReadConfig(raw string, configType string) (*Settings, error) {
	v := newViper()
	if configType == "" {
		configType = "json"
	}
	v.SetConfigType(configType)
	if configType == "json" {
		raw = StripWithOptions(raw, &Options{Whitespace: true, TrailingCommas: true})
	}
	if strings.TrimSpace(raw) != "" {
		if err := v.ReadConfig(strings.NewReader(raw)); err != nil {
			return nil, exception.NewConfigError("settings could not be parsed", err)
		}
	}
	return fromViper(v)
}

// ReadConfigFile reads settings from path. A missing file yields the
// defaults.
func ReadConfigFile(path string) (*Settings, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ReadConfig("", "json")
		}
		return nil, exception.NewConfigError("settings could not be read", err)
	}
	return ReadConfig(string(content), strings.TrimPrefix(filepath.Ext(path), "."))
}

func fromViper(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		LogLevel:        strings.ToUpper(v.GetString(LogLevel)),
		ForcedRootBlock: v.GetString(ForcedRootBlock),
		Caret: Caret{
			ExpandToWord: v.GetBool(CaretExpandToWord),
		},
		MergeSiblings: v.GetBool(MergeSiblings),
		Plugins:       make(map[string]PluginSettings),
		Formats:       make(map[string][]FormatConfig),
	}

	// viper only merges nested defaults key by key, so plugins are
	// collected from the flattened key list.
	for _, key := range v.AllKeys() {
		name, ok := strings.CutPrefix(key, Plugins+".")
		if !ok {
			continue
		}
		name, ok = strings.CutSuffix(name, ".enabled")
		if !ok || strings.Contains(name, ".") {
			continue
		}
		s.Plugins[name] = PluginSettings{
			Name:    name,
			Enabled: v.GetBool(key),
		}
	}

	if err := v.UnmarshalKey(Formats, &s.Formats); err != nil {
		return nil, exception.NewConfigError("formats could not be decoded", err)
	}

	if err := s.Validate(); err != nil {
		return nil, exception.NewConfigError("settings are invalid", err)
	}
	return s, nil
}
