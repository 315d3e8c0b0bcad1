package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable the config reads,
// for example QUICKCARD_EXPORT_PIXEL_RATIO.
const EnvPrefix = "QUICKCARD_"

// ApplyEnv overlays QUICKCARD_* variables onto cfg. Unset variables leave
// fields untouched. A nil environ reads the process environment.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
