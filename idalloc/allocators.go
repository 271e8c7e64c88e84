// Package idalloc hands out the monotonic per-file counters that back every
// scope/function/statement/expression/class/import/global id.
package idalloc

import "github.com/jsscope/core/facts"

// Allocators is a per-file struct of seven counters, each starting at zero
// when the owning file is registered. Each allocation returns the current
// value and then increments; counters are never externally settable except
// by Reset. The extractor does not call Reset: each extract.New starts the
// file from a fresh New.
type Allocators struct {
	file facts.FileID

	scope  uint32
	fn     uint32
	stmt   uint32
	expr   uint32
	class  uint32
	imp    uint32
	global uint32
}

// New returns a fresh set of allocators for file, all counters at zero.
func New(file facts.FileID) *Allocators {
	return &Allocators{file: file}
}

// Reset zeroes every counter, returning the allocators to the state New
// produces. Nothing outside of a Reset call can rewind a counter.
func (a *Allocators) Reset() {
	a.scope, a.fn, a.stmt, a.expr, a.class, a.imp, a.global = 0, 0, 0, 0, 0, 0, 0
}

func (a *Allocators) Scope() facts.ScopeID {
	id := facts.ScopeID{Counter: a.scope, File: a.file}
	a.scope++
	return id
}

func (a *Allocators) Function() facts.FuncID {
	id := facts.FuncID{Counter: a.fn, File: a.file}
	a.fn++
	return id
}

func (a *Allocators) Stmt() facts.StmtID {
	id := facts.StmtID{Counter: a.stmt, File: a.file}
	a.stmt++
	return id
}

func (a *Allocators) Expr() facts.ExprID {
	id := facts.ExprID{Counter: a.expr, File: a.file}
	a.expr++
	return id
}

func (a *Allocators) Class() facts.ClassID {
	id := facts.ClassID{Counter: a.class, File: a.file}
	a.class++
	return id
}

func (a *Allocators) Import() facts.ImportID {
	id := facts.ImportID{Counter: a.imp, File: a.file}
	a.imp++
	return id
}

func (a *Allocators) Global() facts.GlobalID {
	id := facts.GlobalID{Counter: a.global, File: a.file}
	a.global++
	return id
}

// SentinelExpr returns the opaque "unhandled expression kind" id, a
// dedicated sentinel rather than a counter-allocated id: it is never unique
// per occurrence, and must never be mistaken for a real binding or
// reference.
func (a *Allocators) SentinelExpr() facts.ExprID {
	return facts.ExprID{Counter: facts.SentinelExprID, File: a.file}
}
