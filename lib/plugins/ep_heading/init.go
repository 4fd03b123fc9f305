package ep_heading

import (
	"fmt"

	"github.com/ether/padformat/lib/format"
	"github.com/ether/padformat/lib/hooks/events"
	"github.com/ether/padformat/lib/plugins/interfaces"
	"go.uber.org/zap"
)

type EpHeadingsPlugin struct {
	enabled bool
	logger  *zap.SugaredLogger
}

func (e *EpHeadingsPlugin) Name() string {
	return "ep_heading"
}

func (e *EpHeadingsPlugin) Description() string {
	return "Adds heading formats and heading anchors on export"
}

func (e *EpHeadingsPlugin) Init(store *interfaces.EpPluginStore) error {
	e.logger = store.Logger

	for level := 1; level <= 6; level++ {
		tag := fmt.Sprintf("h%d", level)
		if err := store.Registry.Register(tag, format.Descriptor{Block: tag, Remove: format.RemoveAll}); err != nil {
			return err
		}
	}

	// HTML Export hook
	store.HookSystem.EnqueueGetHTMLForExportHook(
		func(ctx *events.HTMLForExportContext) {
			e.getHTMLForExport(ctx)
		},
	)
	return nil
}

func (e *EpHeadingsPlugin) SetEnabled(enabled bool) {
	e.enabled = enabled
}

func (e *EpHeadingsPlugin) IsEnabled() bool {
	return e.enabled
}

var _ interfaces.EpPlugin = (*EpHeadingsPlugin)(nil)
