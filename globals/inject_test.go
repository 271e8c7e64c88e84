package globals_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/globals"
	"github.com/jsscope/core/ident"
	"github.com/jsscope/core/store"
)

func TestLoadKnownGroups(t *testing.T) {
	for _, g := range globals.Groups() {
		tbl, err := globals.Load(g)
		require.NoError(t, err)
		assert.Equal(t, g, tbl.Group)
		assert.NotEmpty(t, tbl.Names)
	}
}

func TestLoadUnknownGroup(t *testing.T) {
	_, err := globals.Load("not-a-real-group")
	assert.Error(t, err)
}

func TestInjectIsIdempotentAcrossRepeatedCalls(t *testing.T) {
	const file facts.FileID = 1
	top := facts.ScopeID{Counter: 0, File: file}
	interner := ident.New()
	tbl, err := globals.Load("builtin")
	require.NoError(t, err)

	s := store.New()

	b1 := store.NewBatch()
	globals.Inject(b1, file, top, tbl, interner)
	s.Apply(b1)
	first := s.Globals.Snapshot()
	assert.Len(t, first, len(tbl.Names))

	// Re-injecting the exact same table produces byte-identical rows, so
	// the weighted multiset only raises each row's weight and the set of
	// present rows is unchanged rather than doubled.
	b2 := store.NewBatch()
	globals.Inject(b2, file, top, tbl, interner)
	s.Apply(b2)
	second := s.Globals.Snapshot()
	assert.ElementsMatch(t, first, second)
}

func TestInjectBindsIntoRequestedScope(t *testing.T) {
	const file facts.FileID = 2
	top := facts.ScopeID{Counter: 0, File: file}
	interner := ident.New()
	tbl := globals.Table{Group: "test", Names: []string{"alpha", "beta"}}

	b := store.NewBatch()
	globals.Inject(b, file, top, tbl, interner)
	s := store.New()
	s.Apply(b)

	rows := s.Globals.Snapshot()
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, file, r.File)
		assert.Equal(t, top, r.Scope)
		assert.Equal(t, "test", r.Group)
	}
}
