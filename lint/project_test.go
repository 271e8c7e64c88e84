package lint_test

import (
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsscope/core/engine"
	"github.com/jsscope/core/extract"
	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/internal/demo"
	"github.com/jsscope/core/lint"
	"github.com/jsscope/core/query"
)

func analyzeDemo(t *testing.T) (*query.Engine, facts.FileID) {
	t.Helper()
	eng := query.New(engine.DefaultConfig(), zerolog.New(io.Discard))
	root, file := demo.Program()
	require.NoError(t, eng.Analyze(file, root, extract.Script))
	return eng, file
}

func TestProjectReportsEveryConfiguredRule(t *testing.T) {
	eng, file := analyzeDemo(t)
	report := lint.Project(eng.Outputs(), eng.Interner(), file, lint.DefaultConfig())

	assert.NotEmpty(t, report.NoUnusedVars, "the demo snippet declares `unused` and never reads it")
	assert.NotEmpty(t, report.UnusedLabel, "the demo's `inner` label is never targeted by a break/continue")
	assert.NotEmpty(t, report.TypeofUndef, "typeof neverDeclared is statically always \"undefined\"")
}

func TestProjectGatingSkipsDisabledRules(t *testing.T) {
	eng, file := analyzeDemo(t)

	cfg := lint.DefaultConfig()
	cfg.NoUnusedVars = false
	report := lint.Project(eng.Outputs(), eng.Interner(), file, cfg)

	assert.Empty(t, report.NoUnusedVars, "disabling a rule in Config must skip its projection entirely")
}
