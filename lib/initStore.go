package lib

import (
	"github.com/ether/padformat/lib/format"
	"github.com/ether/padformat/lib/hooks"
	"github.com/ether/padformat/lib/io"
	"github.com/ether/padformat/lib/plugins"
	"github.com/ether/padformat/lib/plugins/interfaces"
	"github.com/ether/padformat/lib/selection"
	"github.com/ether/padformat/lib/settings"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// InitStore holds the shared services one process needs to format and
// export documents.
type InitStore struct {
	RetrievedSettings *settings.Settings
	Logger            *zap.SugaredLogger
	Hooks             *hooks.Hook
	Registry          *format.Registry
	Plugins           []interfaces.EpPlugin
	Importer          *io.Importer
	Exporter          *io.Exporter
}

// NewInitStore wires the registry, hooks and plugins for retrievedSettings.
// Formats from the settings are registered last so they override built-in
// and plugin formats of the same name.
func NewInitStore(retrievedSettings *settings.Settings, logger *zap.SugaredLogger, exportOptions io.ExportOptions) (*InitStore, error) {
	retrievedHooks := hooks.NewHook()
	registry := format.NewDefaultRegistry()

	loaded, err := plugins.InitPlugins(&interfaces.EpPluginStore{
		Logger:            logger,
		HookSystem:        &retrievedHooks,
		Registry:          registry,
		RetrievedSettings: retrievedSettings,
	})
	if err != nil {
		return nil, err
	}
	if err := registry.RegisterConfigured(retrievedSettings); err != nil {
		return nil, err
	}

	return &InitStore{
		RetrievedSettings: retrievedSettings,
		Logger:            logger,
		Hooks:             &retrievedHooks,
		Registry:          registry,
		Plugins:           loaded,
		Importer:          io.NewImporter(logger),
		Exporter:          io.NewExporter(&retrievedHooks, logger, exportOptions),
	}, nil
}

// NewFormatter creates a formatter for root using the store's registry,
// hooks and settings.
func (s *InitStore) NewFormatter(root *html.Node, host selection.Host) *format.Formatter {
	return format.NewFormatter(root, host, s.Registry, s.Hooks, s.Logger, format.OptionsFromSettings(s.RetrievedSettings))
}
