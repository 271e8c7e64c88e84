package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsscope/core/engine"
	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/ident"
	"github.com/jsscope/core/store"
)

// buildFixture wires up one small file by hand: a top-level function
// `outer` whose body declares a shadowed `x`, an unused `let`, a use of a
// `let` before its declaration, a reference to an undeclared name, a
// `typeof` of another undeclared name, and a used/unused label pair.
func buildFixture(t *testing.T) (*store.Store, *ident.Interner, facts.FileID, facts.ScopeID, facts.ScopeID, facts.ScopeID) {
	t.Helper()

	const file facts.FileID = 1
	interner := ident.New()
	s := store.New()
	b := store.NewBatch()

	scope0 := facts.ScopeID{Counter: 0, File: file} // global/script top scope
	scope1 := facts.ScopeID{Counter: 1, File: file} // outer's function body
	scope2 := facts.ScopeID{Counter: 2, File: file} // nested block inside outer

	b.InsertScope(facts.InputScope{File: file, Scope: scope0, Parent: scope0, Kind: facts.ScopeGlobal})
	b.InsertScope(facts.InputScope{File: file, Scope: scope1, Parent: scope0, Kind: facts.ScopeFunctionBody})
	b.InsertScope(facts.InputScope{File: file, Scope: scope2, Parent: scope1, Kind: facts.ScopeBlock})

	b.InsertFunc(facts.FunctionDecl{
		ID: facts.FuncID{Counter: 0, File: file}.Any(), File: file,
		Scope: scope0, FuncScope: scope0, BodyScope: scope1,
		Name: interner.Intern("outer"), Span: facts.Span{Start: 0, End: 20}, HoistsLikeVar: true,
	})

	b.InsertLexical(facts.LexicalDecl{
		ID: facts.StmtID{Counter: 0, File: file}.Any(), File: file, Scope: scope1,
		Kind: facts.DeclLet, Name: interner.Intern("used"), Span: facts.Span{Start: 30, End: 40},
	})
	b.InsertNameRef(facts.NameRef{
		Expr: facts.ExprID{Counter: 0, File: file}, File: file, Scope: scope2,
		Name: interner.Intern("used"), Span: facts.Span{Start: 100, End: 104},
	})

	b.InsertLexical(facts.LexicalDecl{
		ID: facts.StmtID{Counter: 1, File: file}.Any(), File: file, Scope: scope1,
		Kind: facts.DeclLet, Name: interner.Intern("unused"), Span: facts.Span{Start: 50, End: 60},
	})

	b.InsertNameRef(facts.NameRef{
		Expr: facts.ExprID{Counter: 1, File: file}, File: file, Scope: scope1,
		Name: interner.Intern("undeclared"), Span: facts.Span{Start: 70, End: 80},
	})

	b.InsertNameRef(facts.NameRef{
		Expr: facts.ExprID{Counter: 2, File: file}, File: file, Scope: scope1,
		Name: interner.Intern("z"), Span: facts.Span{Start: 104, End: 105},
	})
	b.InsertTypeofOperand(facts.TypeofOperand{
		File: file, Whole: facts.ExprID{Counter: 3, File: file},
		WholeSpan: facts.Span{Start: 90, End: 110}, Inner: facts.ExprID{Counter: 2, File: file},
	})

	b.InsertLexical(facts.LexicalDecl{
		ID: facts.StmtID{Counter: 2, File: file}.Any(), File: file, Scope: scope1,
		Kind: facts.DeclLet, Name: interner.Intern("w"), Span: facts.Span{Start: 200, End: 210},
	})
	b.InsertNameRef(facts.NameRef{
		Expr: facts.ExprID{Counter: 4, File: file}, File: file, Scope: scope1,
		Name: interner.Intern("w"), Span: facts.Span{Start: 10, End: 11},
	})

	b.InsertLabel(facts.LabelDecl{
		ID: facts.StmtID{Counter: 3, File: file}.Any(), File: file, Scope: scope1,
		Name: interner.Intern("usedLabel"), Span: facts.Span{Start: 300, End: 310}, Loop: true,
	})
	b.InsertLabelUse(facts.LabelUse{
		Use: facts.StmtID{Counter: 4, File: file}.Any(), File: file, Scope: scope2,
		Name: interner.Intern("usedLabel"), Span: facts.Span{Start: 320, End: 330}, RequireLoop: true,
	})
	b.InsertLabel(facts.LabelDecl{
		ID: facts.StmtID{Counter: 5, File: file}.Any(), File: file, Scope: scope1,
		Name: interner.Intern("unusedLabel"), Span: facts.Span{Start: 400, End: 410}, Loop: true,
	})

	b.InsertLexical(facts.LexicalDecl{
		ID: facts.StmtID{Counter: 6, File: file}.Any(), File: file, Scope: scope1,
		Kind: facts.DeclLet, Name: interner.Intern("x"), Span: facts.Span{Start: 500, End: 510},
	})
	b.InsertLexical(facts.LexicalDecl{
		ID: facts.StmtID{Counter: 7, File: file}.Any(), File: file, Scope: scope2,
		Kind: facts.DeclLet, Name: interner.Intern("x"), Span: facts.Span{Start: 520, End: 530},
	})

	s.Apply(b)
	require.False(t, b.Empty())
	return s, interner, file, scope0, scope1, scope2
}

func TestRecomputeScopeTopology(t *testing.T) {
	s, _, file, scope0, scope1, scope2 := buildFixture(t)
	d := engine.NewDerived()
	require.NoError(t, engine.Recompute(s, d, engine.DefaultConfig(), file))

	assert.ElementsMatch(t, []facts.ChildScope{
		{File: file, Parent: scope0, Child: scope1},
		{File: file, Parent: scope1, Child: scope2},
	}, d.ChildScope.Snapshot())

	assert.ElementsMatch(t, []facts.ScopeReach{
		{File: file, Ancestor: scope0, Descendant: scope0},
		{File: file, Ancestor: scope0, Descendant: scope1},
		{File: file, Ancestor: scope0, Descendant: scope2},
		{File: file, Ancestor: scope1, Descendant: scope1},
		{File: file, Ancestor: scope1, Descendant: scope2},
		{File: file, Ancestor: scope2, Descendant: scope2},
	}, d.ScopeReach.Snapshot())

	assert.ElementsMatch(t, []facts.FunctionLevelScope{
		{File: file, Scope: scope0, Nearest: scope0},
		{File: file, Scope: scope1, Nearest: scope1},
		{File: file, Scope: scope2, Nearest: scope1},
	}, d.FunctionLevelScope.Snapshot())
}

func TestRecomputeNameResolutionFacts(t *testing.T) {
	s, interner, file, _, scope1, _ := buildFixture(t)
	d := engine.NewDerived()
	require.NoError(t, engine.Recompute(s, d, engine.DefaultConfig(), file))

	undeclared := interner.Intern("undeclared")
	assert.Equal(t, []facts.InvalidNameUse{
		{File: file, Name: undeclared, UseSpan: facts.Span{Start: 70, End: 80}, Scope: scope1},
	}, d.InvalidNameUse.Snapshot())

	assert.Equal(t, []facts.TypeofUndefinedAlwaysUndefined{
		{File: file, WholeSpan: facts.Span{Start: 90, End: 110}, OperandSpan: facts.Span{Start: 104, End: 105}},
	}, d.TypeofUndef.Snapshot())

	w := interner.Intern("w")
	assert.Equal(t, []facts.VarUseBeforeDeclaration{
		{File: file, Name: w, UsedAt: facts.Span{Start: 10, End: 11}, DeclaredAt: facts.Span{Start: 200, End: 210}},
	}, d.UseBeforeDecl.Snapshot())
}

func TestRecomputeUnusedVariableAndLabel(t *testing.T) {
	s, interner, file, _, _, _ := buildFixture(t)
	d := engine.NewDerived()
	require.NoError(t, engine.Recompute(s, d, engine.DefaultConfig(), file))

	unused := interner.Intern("unused")
	x := interner.Intern("x")
	outer := interner.Intern("outer")
	var gotNames []ident.Name
	for _, row := range d.UnusedVariable.Snapshot() {
		gotNames = append(gotNames, row.Name)
	}
	// "used" and "w" are referenced, so the rest of the file's declarations
	// — "outer" (never called), "unused", and both (shadowing) declarations
	// of "x" — are unreferenced anywhere in the file.
	assert.ElementsMatch(t, []ident.Name{outer, unused, x, x}, gotNames)

	unusedLabel := interner.Intern("unusedLabel")
	assert.Equal(t, []facts.UnusedLabel{
		{File: file, Label: unusedLabel, Span: facts.Span{Start: 400, End: 410}},
	}, d.UnusedLabel.Snapshot())
}

func TestRecomputeShadowedVariable(t *testing.T) {
	s, interner, file, _, _, _ := buildFixture(t)
	d := engine.NewDerived()
	require.NoError(t, engine.Recompute(s, d, engine.DefaultConfig(), file))

	x := interner.Intern("x")
	assert.Equal(t, []facts.ShadowedVariable{
		{File: file, Name: x, OuterSpan: facts.Span{Start: 500, End: 510}, InnerSpan: facts.Span{Start: 520, End: 530}},
	}, d.Shadowed.Snapshot())
}

// A second let/const/class of the same name in the same scope is never
// legal JS and must raise its own ShadowedVariable fact (reusing the
// relation with both spans drawn from the same scope), distinct from a
// `var` redeclaration, which legitimately collapses with no diagnostic.
func TestRecomputeDuplicateLexicalDeclarationSameScope(t *testing.T) {
	const file facts.FileID = 11
	interner := ident.New()
	s := store.New()
	b := store.NewBatch()

	scope0 := facts.ScopeID{Counter: 0, File: file}
	b.InsertScope(facts.InputScope{File: file, Scope: scope0, Parent: scope0, Kind: facts.ScopeGlobal})

	y := interner.Intern("y")
	b.InsertLexical(facts.LexicalDecl{
		ID: facts.StmtID{Counter: 0, File: file}.Any(), File: file, Scope: scope0,
		Kind: facts.DeclLet, Name: y, Span: facts.Span{Start: 10, End: 20},
	})
	b.InsertLexical(facts.LexicalDecl{
		ID: facts.StmtID{Counter: 1, File: file}.Any(), File: file, Scope: scope0,
		Kind: facts.DeclConst, Name: y, Span: facts.Span{Start: 30, End: 40},
	})

	v := interner.Intern("v")
	b.InsertVar(facts.VarDecl{
		ID: facts.StmtID{Counter: 2, File: file}.Any(), File: file, Scope: scope0, FuncScope: scope0,
		Name: v, Span: facts.Span{Start: 50, End: 60},
	})
	b.InsertVar(facts.VarDecl{
		ID: facts.StmtID{Counter: 3, File: file}.Any(), File: file, Scope: scope0, FuncScope: scope0,
		Name: v, Span: facts.Span{Start: 70, End: 80},
	})
	s.Apply(b)

	d := engine.NewDerived()
	require.NoError(t, engine.Recompute(s, d, engine.DefaultConfig(), file))

	assert.Equal(t, []facts.ShadowedVariable{
		{File: file, Name: y, OuterSpan: facts.Span{Start: 10, End: 20}, InnerSpan: facts.Span{Start: 30, End: 40}},
	}, d.Shadowed.Snapshot())

	// The redeclared var collapses silently: one NameInScope row, at the
	// earliest span, with no accompanying diagnostic.
	var vRows []facts.NameInScope
	for _, row := range d.NameInScope.Snapshot() {
		if row.Scope == scope0 && row.Name == v {
			vRows = append(vRows, row)
		}
	}
	assert.Equal(t, []facts.NameInScope{
		{File: file, Scope: scope0, Name: v, DeclaredIn: facts.StmtID{Counter: 2, File: file}.Any(), Span: facts.Span{Start: 50, End: 60}},
	}, vRows)
}

// Purging a file clears every derived relation and leaves a second
// Recompute on an empty store a no-op, matching the purge-idempotence
// property.
func TestRecomputePurgeIdempotence(t *testing.T) {
	s, _, file, _, _, _ := buildFixture(t)
	d := engine.NewDerived()
	require.NoError(t, engine.Recompute(s, d, engine.DefaultConfig(), file))
	require.NotZero(t, d.ChildScope.Len())

	s.ClearFile(file)
	d.ClearFile(file)
	assert.Zero(t, d.ChildScope.Len())
	assert.Zero(t, d.UnusedVariable.Len())

	require.NoError(t, engine.Recompute(s, d, engine.DefaultConfig(), file))
	assert.Zero(t, d.ChildScope.Len())
}

// Two root scopes in the same file is a structurally invalid store and must
// surface as TransactionFailed rather than silently picking one.
func TestRecomputeRejectsMultipleRoots(t *testing.T) {
	const file facts.FileID = 7
	s := store.New()
	b := store.NewBatch()
	scopeA := facts.ScopeID{Counter: 0, File: file}
	scopeB := facts.ScopeID{Counter: 1, File: file}
	b.InsertScope(facts.InputScope{File: file, Scope: scopeA, Parent: scopeA, Kind: facts.ScopeGlobal})
	b.InsertScope(facts.InputScope{File: file, Scope: scopeB, Parent: scopeB, Kind: facts.ScopeGlobal})
	s.Apply(b)

	d := engine.NewDerived()
	err := engine.Recompute(s, d, engine.DefaultConfig(), file)
	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrTransactionFailed)
}

// HoistingAlways makes a shadowing `var` participate in shadow detection,
// where the default HoistingNever config would not.
func TestRecomputeShadowHoistingConfig(t *testing.T) {
	const file facts.FileID = 9
	interner := ident.New()
	s := store.New()
	b := store.NewBatch()

	scope0 := facts.ScopeID{Counter: 0, File: file}
	scope1 := facts.ScopeID{Counter: 1, File: file}
	b.InsertScope(facts.InputScope{File: file, Scope: scope0, Parent: scope0, Kind: facts.ScopeGlobal})
	b.InsertScope(facts.InputScope{File: file, Scope: scope1, Parent: scope0, Kind: facts.ScopeFunctionBody})

	b.InsertLexical(facts.LexicalDecl{
		ID: facts.StmtID{Counter: 0, File: file}.Any(), File: file, Scope: scope0,
		Kind: facts.DeclLet, Name: interner.Intern("v"), Span: facts.Span{Start: 0, End: 10},
	})
	b.InsertVar(facts.VarDecl{
		ID: facts.StmtID{Counter: 1, File: file}.Any(), File: file, Scope: scope1, FuncScope: scope1,
		Name: interner.Intern("v"), Span: facts.Span{Start: 20, End: 30},
	})
	s.Apply(b)

	never := engine.NewDerived()
	require.NoError(t, engine.Recompute(s, never, engine.DefaultConfig(), file))
	assert.Empty(t, never.Shadowed.Snapshot())

	always := engine.NewDerived()
	require.NoError(t, engine.Recompute(s, always, engine.Config{ShadowHoisting: engine.HoistingAlways}, file))
	assert.Len(t, always.Shadowed.Snapshot(), 1)
}
