package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsscope/core/cst"
	"github.com/jsscope/core/cstfixture"
	"github.com/jsscope/core/extract"
	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/ident"
	"github.com/jsscope/core/store"
)

// program wraps a list of top-level statements in a KindProgram node.
func program(children ...cst.Node) cst.Node {
	return cstfixture.New(cst.KindProgram, "", facts.Span{Start: 0, End: 1}, children...)
}

func TestWalkProducesLexicalDeclAndNameRef(t *testing.T) {
	const file facts.FileID = 1
	interner := ident.New()

	id := cstfixture.New(cst.KindIdentifier, "x", facts.Span{Start: 4, End: 5})
	declarator := cstfixture.New(cst.KindVariableDeclarator, "", facts.Span{Start: 4, End: 5}).SetField("id", id)
	decl := cstfixture.New(cst.KindVariableDeclaration, "let", facts.Span{Start: 0, End: 6}, declarator)

	use := cstfixture.New(cst.KindIdentifierReference, "x", facts.Span{Start: 10, End: 11})
	exprStmt := cstfixture.New(cst.KindExpressionStatement, "", facts.Span{Start: 10, End: 11}, use)

	root := program(decl, exprStmt)

	x := extract.New(file, extract.Script, interner)
	batch, err := x.Walk(root)
	require.NoError(t, err)
	require.False(t, batch.Empty())

	s := store.New()
	s.Apply(batch)

	lexicals := s.Lexicals.Snapshot()
	require.Len(t, lexicals, 1)
	assert.Equal(t, interner.Intern("x"), lexicals[0].Name)
	assert.Equal(t, facts.DeclLet, lexicals[0].Kind)

	refs := s.NameRefs.Snapshot()
	require.Len(t, refs, 1)
	assert.Equal(t, interner.Intern("x"), refs[0].Name)
}

func TestWalkRejectsNonProgramRoot(t *testing.T) {
	const file facts.FileID = 1
	interner := ident.New()

	notAProgram := cstfixture.New(cst.KindBlockStatement, "", facts.Span{Start: 0, End: 1})

	x := extract.New(file, extract.Script, interner)
	_, err := x.Walk(notAProgram)
	assert.Error(t, err)
}

func TestWalkRecordsExtractionAbortForUnhandledStatementKind(t *testing.T) {
	const file facts.FileID = 1
	interner := ident.New()

	// KindSwitchCase is only ever consumed structurally by switchStatement;
	// reached directly as a top-level statement it falls through stmt's
	// default case, so this exercises the same recovery path without
	// needing to fabricate an entirely made-up cst.Kind.
	stray := cstfixture.New(cst.KindSwitchCase, "", facts.Span{Start: 0, End: 1})
	root := program(stray)

	x := extract.New(file, extract.Script, interner)
	batch, err := x.Walk(root)
	assert.Error(t, err, "an unhandled statement kind must surface as an error rather than being silently dropped")
	assert.NotNil(t, batch, "the partial batch is still returned so a caller can choose to use a best-effort result")
}
