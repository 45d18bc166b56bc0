package config

import "go.uber.org/fx"

// Module provides *Config; a validation failure aborts fx startup.
func Module() fx.Option {
	return fx.Module("config",
		fx.Provide(
			NewConfig,
		),
	)
}
