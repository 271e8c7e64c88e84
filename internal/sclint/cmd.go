// Package sclint is the command dispatch for cmd/scopelint: a Cmd struct
// whose exported methods of the right shape become subcommands by name,
// found through reflection rather than a hand-maintained switch.
package sclint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mna/mainer"

	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/globals"
	"github.com/jsscope/core/internal/demo"
	"github.com/jsscope/core/lint"
	"github.com/jsscope/core/query"
)

const binName = "scopelint"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [<option>...] <command>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] <command>
       %[1]s -h|--help
       %[1]s -v|--version

Debug driver for the scope-and-name-resolution core: since this module
never includes a JS lexer/parser, every command runs against one bundled
demo snippet (internal/demo) rather than a file on disk.

The <command> can be one of:
       lint                      Analyze the demo snippet and print its
                                 lint report.
       dump                      Print every input and derived relation
                                 row for the demo snippet.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       --group <name>            Inject one or more ambient globals groups
                                 (builtin, es2021, node, browser) before
                                 analyzing; comma-separated.

Configuration defaults (which lints run, shadow-hoisting mode) are read
from SCOPELINT_* environment variables; see internal/sclint/config.go.
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Group string `flag:"group"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

// SetFlags satisfies mainer's Cmd contract; this CLI has no flag whose
// validity depends on which other flags were explicitly set, so there is
// nothing to record.
func (c *Cmd) SetFlags(map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no command specified")
	}
	cmdName := c.args[0]
	commands := buildCmds(c)
	c.cmdFn = commands[cmdName]
	if c.cmdFn == nil {
		return fmt.Errorf("unknown command: %s", cmdName)
	}
	for _, g := range c.groups() {
		valid := false
		for _, known := range globals.Groups() {
			if g == known {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown globals group: %s", g)
		}
	}
	return nil
}

// groups splits the comma-separated --group flag, dropping empty entries
// (a bare --group="" or an unset flag yields none).
func (c *Cmd) groups() []string {
	if c.Group == "" {
		return nil
	}
	var out []string
	for _, g := range strings.Split(c.Group, ",") {
		if g != "" {
			out = append(out, g)
		}
	}
	return out
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: binName + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.Failure
	}
	return mainer.Success
}

// buildEngine analyzes the bundled demo snippet and injects every
// requested globals group, the setup shared by every subcommand.
func (c *Cmd) buildEngine() (*query.Engine, facts.FileID, error) {
	envCfg, err := loadEnvConfig()
	if err != nil {
		return nil, 0, fmt.Errorf("reading environment config: %w", err)
	}

	eng := query.New(envCfg.engineConfig(), newLogger())
	root, file := demo.Program()
	if err := eng.Analyze(file, root, extractKind()); err != nil {
		return nil, 0, fmt.Errorf("analyzing demo snippet: %w", err)
	}
	for _, g := range c.groups() {
		if err := eng.InjectGlobals(file, g); err != nil {
			return nil, 0, fmt.Errorf("injecting globals group %q: %w", g, err)
		}
	}
	return eng, file, nil
}

func (c *Cmd) Lint(ctx context.Context, stdio mainer.Stdio, args []string) error {
	envCfg, err := loadEnvConfig()
	if err != nil {
		return err
	}
	eng, file, err := c.buildEngine()
	if err != nil {
		return err
	}
	report := lint.Project(eng.Outputs(), eng.Interner(), file, envCfg.lintConfig())
	printReport(stdio, report)
	return nil
}

func (c *Cmd) Dump(ctx context.Context, stdio mainer.Stdio, args []string) error {
	eng, file, err := c.buildEngine()
	if err != nil {
		return err
	}
	for _, line := range eng.DumpInput(file) {
		fmt.Fprintln(stdio.Stdout, line)
	}
	for _, line := range eng.DumpDerived(file) {
		fmt.Fprintln(stdio.Stdout, line)
	}
	return nil
}

// valid commands are those that take a mainer.Stdio and a slice of
// strings as input, and return an error as output.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type
		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
