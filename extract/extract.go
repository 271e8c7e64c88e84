// Package extract walks a cst.Node tree and produces the input relation
// rows (facts package) that the engine derives everything else from. It
// never raises a lint diagnostic itself — that is the engine's and the
// lint package's job — it only binds and refers.
package extract

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/jsscope/core/cst"
	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/idalloc"
	"github.com/jsscope/core/ident"
	"github.com/jsscope/core/store"
)

// FileKind distinguishes script semantics (function declarations hoist like
// var) from module semantics (function declarations are block-scoped like
// let, and import/export clauses are meaningful).
type FileKind int

const (
	Script FileKind = iota
	Module
)

// Extractor walks one file's CST once and accumulates a store.Batch.
// It is not safe for concurrent use; the query package runs one Extractor
// per file, possibly several files concurrently (each with its own
// Extractor and its own portion of the id space via idalloc.Allocators).
type Extractor struct {
	file     facts.FileID
	kind     FileKind
	ids      *idalloc.Allocators
	interner *ident.Interner
	batch    *store.Batch
	errs     *multierror.Error
}

// New returns an Extractor for file, sharing interner across every file in
// a run (identifiers intern process-wide) but starting a fresh id allocator
// scoped to file alone.
func New(file facts.FileID, kind FileKind, interner *ident.Interner) *Extractor {
	return &Extractor{
		file:     file,
		kind:     kind,
		ids:      idalloc.New(file),
		interner: interner,
		batch:    store.NewBatch(),
	}
}

// Walk extracts every input relation row reachable from root, which must be
// a cst.KindProgram node. It returns the accumulated batch even on error, so
// a caller may choose to commit the partial result of a best-effort
// extraction; query.Engine does this, logging the error and committing the
// batch regardless.
func (x *Extractor) Walk(root cst.Node) (*store.Batch, error) {
	if root.Kind() != cst.KindProgram {
		return x.batch, fmt.Errorf("extract: root node must be KindProgram, got %v", root.Kind())
	}

	rootKind := facts.ScopeGlobal
	if x.kind == Module {
		rootKind = facts.ScopeModule
	}
	top := x.ids.Scope()
	x.batch.InsertScope(facts.InputScope{File: x.file, Scope: top, Parent: top, Kind: rootKind})

	env := newEnv(top, top)
	for _, c := range root.Children() {
		x.stmt(c, env)
	}

	return x.batch, x.errs.ErrorOrNil()
}

func (x *Extractor) abortf(format string, args ...interface{}) {
	x.errs = multierror.Append(x.errs, fmt.Errorf(format, args...))
}
