package ep_align

import (
	"github.com/ether/padformat/lib/format"
	"github.com/ether/padformat/lib/hooks/events"
	"github.com/ether/padformat/lib/plugins/interfaces"
)

// Alignments lists the supported text-align values. Each one is registered
// as the format "align<value>".
var Alignments = []string{"left", "center", "right", "justify"}

const alignSelector = "figure,p,h1,h2,h3,h4,h5,h6,td,th,tr,div,ul,ol,li,pre"

type EpAlignPlugin struct {
	enabled bool
}

func (p *EpAlignPlugin) Name() string {
	return "ep_align"
}

func (p *EpAlignPlugin) SetEnabled(enabled bool) {
	p.enabled = enabled
}

func (p *EpAlignPlugin) IsEnabled() bool {
	return p.enabled
}

func (p *EpAlignPlugin) Description() string {
	return "Adds text alignment formats and export handling"
}

// Descriptor returns the format descriptor aligning blocks to value.
func Descriptor(value string) format.Descriptor {
	return format.Descriptor{
		Selector:     alignSelector,
		Styles:       map[string]string{"text-align": value},
		Group:        "align",
		Uninherited:  true,
		DefaultBlock: "div",
	}
}

func (p *EpAlignPlugin) Init(epPluginStore *interfaces.EpPluginStore) error {
	epPluginStore.Logger.Info("Initializing ep_align plugin")

	for _, value := range Alignments {
		if err := epPluginStore.Registry.Register("align"+value, Descriptor(value)); err != nil {
			return err
		}
	}

	// HTML Export hook
	epPluginStore.HookSystem.EnqueueGetHTMLForExportHook(
		func(ctx *events.HTMLForExportContext) {
			GetHTMLForExport(ctx)
		},
	)
	return nil
}

var _ interfaces.EpPlugin = (*EpAlignPlugin)(nil)
