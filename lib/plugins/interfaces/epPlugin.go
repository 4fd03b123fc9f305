package interfaces

type EpPlugin interface {
	Name() string
	Description() string
	Init(store *EpPluginStore) error
	SetEnabled(enabled bool)
	IsEnabled() bool
}
