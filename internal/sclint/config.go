package sclint

import (
	"github.com/caarlos0/env/v6"

	"github.com/jsscope/core/engine"
	"github.com/jsscope/core/lint"
)

// envConfig is the set of defaults an operator can override without a
// flag, read once at startup — the same role caarlos0/env plays for any
// small service's "which knobs does ops set in the unit file" config
// layer, scaled down to this debug CLI's handful of options.
type envConfig struct {
	ShadowHoisting string `env:"SCOPELINT_SHADOW_HOISTING" envDefault:"never"`
	NoShadow       bool   `env:"SCOPELINT_NO_SHADOW" envDefault:"true"`
	NoUndef        bool   `env:"SCOPELINT_NO_UNDEF" envDefault:"true"`
	NoUnusedVars   bool   `env:"SCOPELINT_NO_UNUSED_VARS" envDefault:"true"`
	NoUseBeforeDef bool   `env:"SCOPELINT_NO_USE_BEFORE_DEF" envDefault:"true"`
	NoTypeofUndef  bool   `env:"SCOPELINT_NO_TYPEOF_UNDEF" envDefault:"true"`
	NoUnusedLabels bool   `env:"SCOPELINT_NO_UNUSED_LABELS" envDefault:"true"`
}

func loadEnvConfig() (envConfig, error) {
	var c envConfig
	if err := env.Parse(&c); err != nil {
		return envConfig{}, err
	}
	return c, nil
}

func (c envConfig) engineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	switch c.ShadowHoisting {
	case "always":
		cfg.ShadowHoisting = engine.HoistingAlways
	case "functions":
		cfg.ShadowHoisting = engine.HoistingFunctions
	default:
		cfg.ShadowHoisting = engine.HoistingNever
	}
	return cfg
}

func (c envConfig) lintConfig() lint.Config {
	return lint.Config{
		NoShadow:       c.NoShadow,
		NoUndef:        c.NoUndef,
		NoUnusedVars:   c.NoUnusedVars,
		NoUseBeforeDef: c.NoUseBeforeDef,
		NoTypeofUndef:  c.NoTypeofUndef,
		NoUnusedLabels: c.NoUnusedLabels,
	}
}
