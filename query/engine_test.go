package query_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsscope/core/cst"
	"github.com/jsscope/core/cstfixture"
	"github.com/jsscope/core/engine"
	"github.com/jsscope/core/extract"
	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/internal/demo"
	"github.com/jsscope/core/query"
)

func newTestEngine() *query.Engine {
	return query.New(engine.DefaultConfig(), zerolog.New(io.Discard))
}

// oneVarProgram builds the smallest possible CST: a program declaring one
// `let` binding that is never referenced, so Analyze has something concrete
// to derive an UnusedVariable row from.
func oneVarProgram(name string) cst.Node {
	declarator := cstfixture.New(cst.KindVariableDeclarator, "", facts.Span{Start: 4, End: 4 + len(name)}).
		SetField("id", cstfixture.New(cst.KindIdentifier, name, facts.Span{Start: 4, End: 4 + len(name)}))
	decl := cstfixture.New(cst.KindVariableDeclaration, "let", facts.Span{Start: 0, End: 5 + len(name)}, declarator)
	return cstfixture.New(cst.KindProgram, "", facts.Span{Start: 0, End: 5 + len(name)}, decl)
}

func TestEngineAnalyzeAndOutputs(t *testing.T) {
	eng := newTestEngine()
	const file facts.FileID = 1

	require.NoError(t, eng.Analyze(file, oneVarProgram("unused"), extract.Script))
	assert.True(t, eng.Known(file))

	snap := eng.Outputs()
	assert.NotEmpty(t, snap.UnusedVariable(file))
	assert.Empty(t, snap.UnusedVariable(facts.FileID(999)), "an unanalyzed file yields empty results, not an error")
}

func TestEngineUnknownFileIsEmptyNotError(t *testing.T) {
	eng := newTestEngine()
	assert.False(t, eng.Known(facts.FileID(42)))
	assert.Empty(t, eng.Outputs().InvalidNameUse(facts.FileID(42)))
}

func TestEnginePurgeRemovesEveryTrace(t *testing.T) {
	eng := newTestEngine()
	const file facts.FileID = 1
	require.NoError(t, eng.Analyze(file, oneVarProgram("x"), extract.Script))
	require.True(t, eng.Known(file))
	require.NotEmpty(t, eng.Outputs().UnusedVariable(file))

	eng.Purge(file)
	assert.False(t, eng.Known(file))
	assert.Empty(t, eng.Outputs().UnusedVariable(file))

	// Purging an already-purged (or never-registered) file is a no-op, not
	// an error.
	eng.Purge(file)
	assert.False(t, eng.Known(file))
}

func TestEngineReanalyzeReplacesFileContent(t *testing.T) {
	eng := newTestEngine()
	const file facts.FileID = 1
	require.NoError(t, eng.Analyze(file, oneVarProgram("first"), extract.Script))
	first := eng.Outputs().UnusedVariable(file)
	require.Len(t, first, 1)

	require.NoError(t, eng.Analyze(file, oneVarProgram("second"), extract.Script))
	second := eng.Outputs().UnusedVariable(file)
	require.Len(t, second, 1, "re-Analyze replaces, rather than accumulates, a file's rows")
	assert.NotEqual(t, first[0].Name, second[0].Name)
}

func TestEngineInjectGlobalsIsKnownOnlyAfterAnalyze(t *testing.T) {
	eng := newTestEngine()
	const file facts.FileID = 5
	err := eng.InjectGlobals(file, "builtin")
	assert.Error(t, err, "injecting into a never-analyzed file must fail rather than silently create one")
}

func TestEngineInjectAndClearGlobals(t *testing.T) {
	eng := newTestEngine()
	const file facts.FileID = 1
	require.NoError(t, eng.Analyze(file, oneVarProgram("x"), extract.Script))

	require.NoError(t, eng.InjectGlobals(file, "builtin"))
	withGlobals := eng.DumpInput(file)
	assert.Condition(t, func() bool { return len(withGlobals) > 0 })

	// Re-injecting the same group, or injecting a second group, is
	// accepted (the second group only logs a warning, not an error) per the
	// ConfigConflict contract: the union of every injected group stays
	// visible.
	require.NoError(t, eng.InjectGlobals(file, "builtin"))
	require.NoError(t, eng.InjectGlobals(file, "node"))

	require.NoError(t, eng.ClearGlobals(file))
}

func TestEngineAnalyzeAllCommitsEveryFile(t *testing.T) {
	eng := newTestEngine()
	const fileA, fileB facts.FileID = 1, 2

	err := eng.AnalyzeAll(context.Background(), []query.FileInput{
		{File: fileA, Root: oneVarProgram("a"), Kind: extract.Script},
		{File: fileB, Root: oneVarProgram("b"), Kind: extract.Script},
	})
	require.NoError(t, err)

	assert.True(t, eng.Known(fileA))
	assert.True(t, eng.Known(fileB))
	assert.NotEmpty(t, eng.Outputs().UnusedVariable(fileA))
	assert.NotEmpty(t, eng.Outputs().UnusedVariable(fileB))
}

func TestEngineDumpInputAndDerivedCoverTheDemoSnippet(t *testing.T) {
	eng := newTestEngine()
	root, file := demo.Program()
	require.NoError(t, eng.Analyze(file, root, extract.Script))

	assert.NotEmpty(t, eng.DumpInput(file))
	assert.NotEmpty(t, eng.DumpDerived(file))
}
