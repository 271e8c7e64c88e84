package store

import "github.com/jsscope/core/facts"

// Store is the full set of input relation tables, one per input relation
// the extractor and globals injector produce. It is guarded by the
// engine's commit mutex (query package); Store itself performs no
// locking, since its only callers serialize access around a transaction
// boundary.
type Store struct {
	Scopes        *Table[facts.InputScope]
	Vars          *Table[facts.VarDecl]
	Lexicals      *Table[facts.LexicalDecl]
	Funcs         *Table[facts.FunctionDecl]
	Args          *Table[facts.FunctionArg]
	Imports       *Table[facts.ImportClause]
	Globals       *Table[facts.ImplicitGlobal]
	Labels        *Table[facts.LabelDecl]
	NameRefs      *Table[facts.NameRef]
	TypeofOps     *Table[facts.TypeofOperand]
	AssignTargets *Table[facts.AssignTarget]
	LabelUses     *Table[facts.LabelUse]
}

// New returns an empty Store with every relation table initialized.
func New() *Store {
	return &Store{
		Scopes:        NewTable[facts.InputScope](),
		Vars:          NewTable[facts.VarDecl](),
		Lexicals:      NewTable[facts.LexicalDecl](),
		Funcs:         NewTable[facts.FunctionDecl](),
		Args:          NewTable[facts.FunctionArg](),
		Imports:       NewTable[facts.ImportClause](),
		Globals:       NewTable[facts.ImplicitGlobal](),
		Labels:        NewTable[facts.LabelDecl](),
		NameRefs:      NewTable[facts.NameRef](),
		TypeofOps:     NewTable[facts.TypeofOperand](),
		AssignTargets: NewTable[facts.AssignTarget](),
		LabelUses:     NewTable[facts.LabelUse](),
	}
}

// ClearFile removes every row across every relation whose file equals f
// (invariant 4). The caller (query.Engine) holds the commit mutex for the
// duration.
func (s *Store) ClearFile(f facts.FileID) {
	s.Scopes.ClearFile(f)
	s.Vars.ClearFile(f)
	s.Lexicals.ClearFile(f)
	s.Funcs.ClearFile(f)
	s.Args.ClearFile(f)
	s.Imports.ClearFile(f)
	s.Globals.ClearFile(f)
	s.Labels.ClearFile(f)
	s.NameRefs.ClearFile(f)
	s.TypeofOps.ClearFile(f)
	s.AssignTargets.ClearFile(f)
	s.LabelUses.ClearFile(f)
}

// Apply commits every insertion and deletion queued in b into the store.
// Batch application itself is not atomic with respect to readers — that
// guarantee is provided by query.Engine, which only lets readers observe
// the store between commits, never mid-Apply.
func (s *Store) Apply(b *Batch) {
	for _, r := range b.scopes {
		applyRow(s.Scopes, r)
	}
	for _, r := range b.vars {
		applyRow(s.Vars, r)
	}
	for _, r := range b.lexicals {
		applyRow(s.Lexicals, r)
	}
	for _, r := range b.funcs {
		applyRow(s.Funcs, r)
	}
	for _, r := range b.args {
		applyRow(s.Args, r)
	}
	for _, r := range b.imports {
		applyRow(s.Imports, r)
	}
	for _, r := range b.globals {
		applyRow(s.Globals, r)
	}
	for _, r := range b.labels {
		applyRow(s.Labels, r)
	}
	for _, r := range b.nameRefs {
		applyRow(s.NameRefs, r)
	}
	for _, r := range b.typeofOps {
		applyRow(s.TypeofOps, r)
	}
	for _, r := range b.assignTargets {
		applyRow(s.AssignTargets, r)
	}
	for _, r := range b.labelUses {
		applyRow(s.LabelUses, r)
	}
}

func applyRow[T comparable](t *Table[T], r rowOp[T]) {
	if r.delete {
		t.Delete(r.row, r.owner)
	} else {
		t.Insert(r.row, r.owner)
	}
}
