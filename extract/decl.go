package extract

import (
	"github.com/jsscope/core/cst"
	"github.com/jsscope/core/facts"
)

// declareVar binds name as a `var`, which hoists to e.funcScope regardless
// of the block it is lexically written in (rule: VarDecl.FuncScope is
// always a FunctionLevelScope).
func (x *Extractor) declareVar(e env, name facts.Span, text string, exported bool) {
	x.batch.InsertVar(facts.VarDecl{
		ID:        x.ids.Stmt().Any(),
		File:      x.file,
		Scope:     e.scope,
		FuncScope: e.funcScope,
		Name:      x.interner.Intern(text),
		Span:      name,
		Exported:  exported,
	})
}

// declareLexical binds name as a let/const/class, confined to e.scope with
// a temporal dead zone starting at span.Start.
func (x *Extractor) declareLexical(e env, kind facts.DeclKind, span facts.Span, text string, exported bool) {
	x.batch.InsertLexical(facts.LexicalDecl{
		ID:       x.ids.Stmt().Any(),
		File:     x.file,
		Scope:    e.scope,
		Kind:     kind,
		Name:     x.interner.Intern(text),
		Span:     span,
		Exported: exported,
	})
}

func (x *Extractor) declareParam(bodyScope facts.ScopeID, span facts.Span, text string) {
	x.batch.InsertArg(facts.FunctionArg{
		ID:        x.ids.Stmt().Any(),
		File:      x.file,
		BodyScope: bodyScope,
		Name:      x.interner.Intern(text),
		Span:      span,
	})
}

func (x *Extractor) declareImport(scope facts.ScopeID, span facts.Span, text string) {
	x.batch.InsertImport(facts.ImportClause{
		ID:    x.ids.Import().Any(),
		File:  x.file,
		Scope: scope,
		Name:  x.interner.Intern(text),
		Span:  span,
	})
}

func (x *Extractor) declareLabel(scope facts.ScopeID, span facts.Span, text string, loop bool) facts.LabelDecl {
	decl := facts.LabelDecl{
		ID:    x.ids.Stmt().Any(),
		File:  x.file,
		Scope: scope,
		Name:  x.interner.Intern(text),
		Span:  span,
		Loop:  loop,
	}
	x.batch.InsertLabel(decl)
	return decl
}

// bindPattern flattens a binding pattern (Identifier, ObjectPattern,
// ArrayPattern, AssignmentPattern, RestElement, possibly nested) to its
// simple names, calling declare for each leaf. A default value on an
// AssignmentPattern is walked as an expression in e, so names it references
// are recorded as uses in the scope the pattern is being bound into — the
// init-order subtlety (TDZ for siblings bound earlier in the same pattern)
// is not modeled; this core reasons about static scope, not evaluation
// order within a single destructuring expression.
func (x *Extractor) bindPattern(e env, n cst.Node, declare func(span facts.Span, text string)) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case cst.KindIdentifier:
		declare(n.Span(), n.Text())
	case cst.KindAssignmentPattern:
		x.bindPattern(e, n.Field("left"), declare)
		if right := n.Field("right"); right != nil {
			x.expr(right, e)
		}
	case cst.KindRestElement:
		x.bindPattern(e, n.Field("argument"), declare)
	case cst.KindObjectPattern, cst.KindArrayPattern:
		for _, c := range n.Children() {
			x.bindPattern(e, c, declare)
		}
	default:
		// A computed property key or other non-binding child that ended up
		// inside a pattern subtree; treat it as an expression so any name it
		// references is still recorded.
		x.expr(n, e)
	}
}
