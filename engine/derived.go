package engine

import (
	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/store"
)

// Derived holds every derived relation the engine maintains, materialized
// exactly like the input tables in store.Store (a keyed multiset grouped by
// file so a single file's derived rows can be replaced without touching any
// other file's).
type Derived struct {
	ChildScope         *store.Table[facts.ChildScope]
	ScopeReach         *store.Table[facts.ScopeReach]
	FunctionLevelScope *store.Table[facts.FunctionLevelScope]
	NameInScope        *store.Table[facts.NameInScope]
	InvalidNameUse     *store.Table[facts.InvalidNameUse]
	UseBeforeDecl      *store.Table[facts.VarUseBeforeDeclaration]
	UnusedVariable     *store.Table[facts.UnusedVariable]
	UnusedLabel        *store.Table[facts.UnusedLabel]
	TypeofUndef        *store.Table[facts.TypeofUndefinedAlwaysUndefined]
	Shadowed           *store.Table[facts.ShadowedVariable]
}

// NewDerived returns an empty set of derived relation tables.
func NewDerived() *Derived {
	return &Derived{
		ChildScope:         store.NewTable[facts.ChildScope](),
		ScopeReach:         store.NewTable[facts.ScopeReach](),
		FunctionLevelScope: store.NewTable[facts.FunctionLevelScope](),
		NameInScope:        store.NewTable[facts.NameInScope](),
		InvalidNameUse:     store.NewTable[facts.InvalidNameUse](),
		UseBeforeDecl:      store.NewTable[facts.VarUseBeforeDeclaration](),
		UnusedVariable:     store.NewTable[facts.UnusedVariable](),
		UnusedLabel:        store.NewTable[facts.UnusedLabel](),
		TypeofUndef:        store.NewTable[facts.TypeofUndefinedAlwaysUndefined](),
		Shadowed:           store.NewTable[facts.ShadowedVariable](),
	}
}

// ClearFile drops every derived row for file, the derived-relation half of
// invariant 4 (purge leaves no trace of f).
func (d *Derived) ClearFile(f facts.FileID) {
	d.ChildScope.ClearFile(f)
	d.ScopeReach.ClearFile(f)
	d.FunctionLevelScope.ClearFile(f)
	d.NameInScope.ClearFile(f)
	d.InvalidNameUse.ClearFile(f)
	d.UseBeforeDecl.ClearFile(f)
	d.UnusedVariable.ClearFile(f)
	d.UnusedLabel.ClearFile(f)
	d.TypeofUndef.ClearFile(f)
	d.Shadowed.ClearFile(f)
}
