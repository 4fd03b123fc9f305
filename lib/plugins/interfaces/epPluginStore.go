package interfaces

import (
	"github.com/ether/padformat/lib/format"
	"github.com/ether/padformat/lib/hooks"
	"github.com/ether/padformat/lib/settings"
	"go.uber.org/zap"
)

type EpPluginStore struct {
	Logger            *zap.SugaredLogger
	HookSystem        *hooks.Hook
	Registry          *format.Registry
	RetrievedSettings *settings.Settings
}
