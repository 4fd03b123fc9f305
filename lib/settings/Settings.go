package settings

import (
	"slices"

	"github.com/go-playground/validator/v10"
)

type Caret struct {
	ExpandToWord bool `json:"expandToWord" mapstructure:"expandToWord"`
}

type PluginSettings struct {
	Name    string `json:"-" mapstructure:"-"`
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
}

// FormatConfig describes a format in the settings file. It mirrors the
// descriptor fields a host may reasonably override.
type FormatConfig struct {
	Inline             string            `json:"inline,omitempty" mapstructure:"inline" validate:"required_without_all=Block Selector"`
	Block              string            `json:"block,omitempty" mapstructure:"block"`
	Selector           string            `json:"selector,omitempty" mapstructure:"selector"`
	Styles             map[string]string `json:"styles,omitempty" mapstructure:"styles"`
	Attributes         map[string]string `json:"attributes,omitempty" mapstructure:"attributes"`
	Classes            []string          `json:"classes,omitempty" mapstructure:"classes"`
	Remove             string            `json:"remove,omitempty" mapstructure:"remove" validate:"omitempty,oneof=all none empty"`
	PreserveAttributes []string          `json:"preserveAttributes,omitempty" mapstructure:"preserveAttributes"`
	Wrapper            bool              `json:"wrapper,omitempty" mapstructure:"wrapper"`
	Exact              bool              `json:"exact,omitempty" mapstructure:"exact"`
	Group              string            `json:"group,omitempty" mapstructure:"group"`
	Uninherited        bool              `json:"uninherited,omitempty" mapstructure:"uninherited"`
	DefaultBlock       string            `json:"defaultBlock,omitempty" mapstructure:"defaultBlock"`
	ClearChildStyles   bool              `json:"clearChildStyles,omitempty" mapstructure:"clearChildStyles"`
	Toggle             *bool             `json:"toggle,omitempty" mapstructure:"toggle"`
	Split              *bool             `json:"split,omitempty" mapstructure:"split"`
	Deep               *bool             `json:"deep,omitempty" mapstructure:"deep"`
}

type Settings struct {
	LogLevel        string                    `json:"logLevel" validate:"oneof=DEBUG INFO WARN ERROR"`
	ForcedRootBlock string                    `json:"forcedRootBlock"`
	Caret           Caret                     `json:"caret"`
	MergeSiblings   bool                      `json:"mergeSiblings"`
	Plugins         map[string]PluginSettings `json:"plugins"`
	Formats         map[string][]FormatConfig `json:"formats" validate:"dive,keys,required,endkeys,min=1,dive"`
}

// GetAllPlugins lists the configured plugins ordered by name.
func (s *Settings) GetAllPlugins() []PluginSettings {
	names := make([]string, 0, len(s.Plugins))
	for name := range s.Plugins {
		names = append(names, name)
	}
	slices.Sort(names)
	plugins := make([]PluginSettings, 0, len(names))
	for _, name := range names {
		p := s.Plugins[name]
		p.Name = name
		plugins = append(plugins, p)
	}
	return plugins
}

func (s *Settings) IsPluginEnabled(name string) bool {
	p, ok := s.Plugins[name]
	return ok && p.Enabled
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// Validate checks the settings, including every configured format.
func (s *Settings) Validate() error {
	return newValidator().Struct(s)
}
