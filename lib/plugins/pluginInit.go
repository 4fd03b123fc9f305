package plugins

import (
	"slices"

	"github.com/ether/padformat/lib/plugins/ep_align"
	"github.com/ether/padformat/lib/plugins/ep_heading"
	"github.com/ether/padformat/lib/plugins/interfaces"
)

// RegisteredPlugins returns fresh instances of the built-in plugins.
func RegisteredPlugins() []interfaces.EpPlugin {
	return []interfaces.EpPlugin{
		&ep_align.EpAlignPlugin{},
		&ep_heading.EpHeadingsPlugin{},
	}
}

// InitPlugins initializes every built-in plugin the settings enable and
// returns them.
func InitPlugins(store *interfaces.EpPluginStore) ([]interfaces.EpPlugin, error) {
	var ts = store.RetrievedSettings.GetAllPlugins()
	enabledPlugins := make([]string, 0)
	for _, pluginSettings := range ts {
		if pluginSettings.Enabled {
			enabledPlugins = append(enabledPlugins, pluginSettings.Name)
		}
	}
	loaded := make([]interfaces.EpPlugin, 0)
	for _, plugin := range RegisteredPlugins() {
		if slices.Contains(enabledPlugins, plugin.Name()) {
			store.Logger.Infof("Loading plugin: %s", plugin.Name())
			if err := plugin.Init(store); err != nil {
				return loaded, err
			}
			plugin.SetEnabled(true)
			loaded = append(loaded, plugin)
		}
	}
	return loaded, nil
}
