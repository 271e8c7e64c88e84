package globals

import (
	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/ident"
	"github.com/jsscope/core/store"
)

// Inject queues one ImplicitGlobal row per name in table, bound into
// scope (the file's top scope). Each row's id is derived from the name's
// position within table.Names rather than a counter allocated fresh per
// call, so re-injecting the same table twice produces byte-identical rows:
// the store's weighted multiset raises each row's weight but still holds
// it once, leaving the set of present rows unchanged — the idempotence the
// query layer promises without needing separate "already injected"
// bookkeeping.
func Inject(b *store.Batch, file facts.FileID, scope facts.ScopeID, table Table, interner *ident.Interner) {
	for i, name := range table.Names {
		b.InsertGlobal(facts.ImplicitGlobal{
			ID:    facts.GlobalID{Counter: uint32(i), File: file}.Any(),
			File:  file,
			Scope: scope,
			Name:  interner.Intern(name),
			Group: table.Group,
		})
	}
}
