// Package globals loads the ambient-binding tables (component G): a fixed
// set of group tags, each naming the identifiers a host environment binds
// before any user code runs (the DOM's `window`, Node's `require`, the
// language's own `Object`/`Array`/...), so that referencing one of them
// does not trip InvalidNameUse in code that was never meant to declare it.
package globals

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed tables/*.yaml
var embedded embed.FS

// Table is one group's worth of ambient names, as loaded from
// tables/<group>.yaml.
type Table struct {
	Group string   `yaml:"group"`
	Names []string `yaml:"names"`
}

// Load returns the table for group ("builtin", "es2021", "node",
// "browser"), or an error if no such table is embedded.
func Load(group string) (Table, error) {
	data, err := embedded.ReadFile("tables/" + group + ".yaml")
	if err != nil {
		return Table{}, fmt.Errorf("globals: unknown group %q: %w", group, err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("globals: parsing table %q: %w", group, err)
	}
	return t, nil
}

// Groups lists every recognized group tag, in a fixed order suitable for
// help text and config validation.
func Groups() []string { return []string{"builtin", "es2021", "node", "browser"} }
