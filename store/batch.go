package store

import "github.com/jsscope/core/facts"

type rowOp[T any] struct {
	row    T
	owner  facts.FileID
	delete bool
}

// Batch is a write-batch: extraction (or the globals injector) appends rows
// into a Batch, then hands it to Store.Apply inside a single commit. A
// Batch is not safe for concurrent writers; one goroutine builds it, after
// which it is handed off (the "Building" state of the commit state
// machine — see query.Engine).
type Batch struct {
	scopes        []rowOp[facts.InputScope]
	vars          []rowOp[facts.VarDecl]
	lexicals      []rowOp[facts.LexicalDecl]
	funcs         []rowOp[facts.FunctionDecl]
	args          []rowOp[facts.FunctionArg]
	imports       []rowOp[facts.ImportClause]
	globals       []rowOp[facts.ImplicitGlobal]
	labels        []rowOp[facts.LabelDecl]
	nameRefs      []rowOp[facts.NameRef]
	typeofOps     []rowOp[facts.TypeofOperand]
	assignTargets []rowOp[facts.AssignTarget]
	labelUses     []rowOp[facts.LabelUse]
}

// NewBatch returns an empty Batch.
func NewBatch() *Batch { return &Batch{} }

func (b *Batch) InsertScope(r facts.InputScope) { b.scopes = append(b.scopes, rowOp[facts.InputScope]{row: r, owner: r.File}) }
func (b *Batch) InsertVar(r facts.VarDecl)       { b.vars = append(b.vars, rowOp[facts.VarDecl]{row: r, owner: r.File}) }
func (b *Batch) InsertLexical(r facts.LexicalDecl) {
	b.lexicals = append(b.lexicals, rowOp[facts.LexicalDecl]{row: r, owner: r.File})
}
func (b *Batch) InsertFunc(r facts.FunctionDecl) { b.funcs = append(b.funcs, rowOp[facts.FunctionDecl]{row: r, owner: r.File}) }
func (b *Batch) InsertArg(r facts.FunctionArg)   { b.args = append(b.args, rowOp[facts.FunctionArg]{row: r, owner: r.File}) }
func (b *Batch) InsertImport(r facts.ImportClause) {
	b.imports = append(b.imports, rowOp[facts.ImportClause]{row: r, owner: r.File})
}
func (b *Batch) InsertGlobal(r facts.ImplicitGlobal) {
	b.globals = append(b.globals, rowOp[facts.ImplicitGlobal]{row: r, owner: r.File})
}
func (b *Batch) InsertLabel(r facts.LabelDecl) { b.labels = append(b.labels, rowOp[facts.LabelDecl]{row: r, owner: r.File}) }
func (b *Batch) InsertNameRef(r facts.NameRef) {
	b.nameRefs = append(b.nameRefs, rowOp[facts.NameRef]{row: r, owner: r.File})
}
func (b *Batch) InsertTypeofOperand(r facts.TypeofOperand) {
	b.typeofOps = append(b.typeofOps, rowOp[facts.TypeofOperand]{row: r, owner: r.File})
}
func (b *Batch) InsertAssignTarget(r facts.AssignTarget) {
	b.assignTargets = append(b.assignTargets, rowOp[facts.AssignTarget]{row: r, owner: r.File})
}
func (b *Batch) InsertLabelUse(r facts.LabelUse) {
	b.labelUses = append(b.labelUses, rowOp[facts.LabelUse]{row: r, owner: r.File})
}

// Empty reports whether the batch has nothing queued.
func (b *Batch) Empty() bool {
	return len(b.scopes) == 0 && len(b.vars) == 0 && len(b.lexicals) == 0 &&
		len(b.funcs) == 0 && len(b.args) == 0 && len(b.imports) == 0 &&
		len(b.globals) == 0 && len(b.labels) == 0 && len(b.nameRefs) == 0 &&
		len(b.typeofOps) == 0 && len(b.assignTargets) == 0 && len(b.labelUses) == 0
}
