package format

import (
	"github.com/ether/padformat/lib/settings"
)

// DescriptorFromConfig turns a configured format into a descriptor.
func DescriptorFromConfig(c settings.FormatConfig) Descriptor {
	return Descriptor{
		Inline:             c.Inline,
		Block:              c.Block,
		Selector:           c.Selector,
		Styles:             c.Styles,
		Attributes:         c.Attributes,
		Classes:            c.Classes,
		Remove:             RemovePolicy(c.Remove),
		PreserveAttributes: c.PreserveAttributes,
		Wrapper:            c.Wrapper,
		Exact:              c.Exact,
		Group:              c.Group,
		Uninherited:        c.Uninherited,
		DefaultBlock:       c.DefaultBlock,
		ClearChildStyles:   c.ClearChildStyles,
		Toggle:             c.Toggle,
		Split:              c.Split,
		Deep:               c.Deep,
	}
}

// RegisterConfigured registers every format of the settings, replacing
// built-in formats of the same name.
func (r *Registry) RegisterConfigured(s *settings.Settings) error {
	for name, configs := range s.Formats {
		descriptors := make([]Descriptor, 0, len(configs))
		for _, c := range configs {
			descriptors = append(descriptors, DescriptorFromConfig(c))
		}
		if err := r.Register(name, descriptors...); err != nil {
			return err
		}
	}
	return nil
}

// OptionsFromSettings derives formatter options from the settings.
func OptionsFromSettings(s *settings.Settings) Options {
	options := DefaultOptions()
	options.ForcedRootBlock = s.ForcedRootBlock
	options.ExpandCaretToWord = s.Caret.ExpandToWord
	options.MergeSiblings = s.MergeSiblings
	return options
}
