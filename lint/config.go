// Package lint projects the engine's derived relations into the typed,
// per-option output records a linter actually wants to see (component H).
// It derives nothing itself; disabling an option here only skips
// projecting an already-derived fact, so toggling options at report time
// never touches the engine's fixed rule set.
package lint

import "github.com/jsscope/core/engine"

// Config gates which already-derived relations get projected into
// Report. It carries no engine-affecting fields — no_shadow_hoisting
// governs how ShadowedVariable is *derived* and belongs to engine.Config,
// not here.
type Config struct {
	NoShadow       bool
	NoUndef        bool
	NoUnusedLabels bool
	NoTypeofUndef  bool
	NoUnusedVars   bool
	NoUseBeforeDef bool
}

// DefaultConfig enables every projection; disabling one is always an
// explicit opt-out.
func DefaultConfig() Config {
	return Config{
		NoShadow:       true,
		NoUndef:        true,
		NoUnusedLabels: true,
		NoTypeofUndef:  true,
		NoUnusedVars:   true,
		NoUseBeforeDef: true,
	}
}

// ShadowHoisting is re-exported so callers configuring lint.Config don't
// also need to import engine directly just to pick a hoisting mode.
type ShadowHoisting = engine.ShadowHoisting

const (
	HoistingNever     = engine.HoistingNever
	HoistingAlways    = engine.HoistingAlways
	HoistingFunctions = engine.HoistingFunctions
)
