package extract

import (
	"github.com/jsscope/core/cst"
	"github.com/jsscope/core/facts"
)

// walkAny dispatches a node that may be either a statement or an expression
// (an If branch, a For part, a SwitchCase body entry) to the right walker.
func (x *Extractor) walkAny(n cst.Node, e env) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case cst.KindBlockStatement, cst.KindVariableDeclaration, cst.KindFunctionDeclaration,
		cst.KindClassDeclaration, cst.KindIfStatement, cst.KindForStatement, cst.KindForInStatement,
		cst.KindForOfStatement, cst.KindWhileStatement, cst.KindDoWhileStatement, cst.KindSwitchStatement,
		cst.KindSwitchCase, cst.KindTryStatement, cst.KindCatchClause, cst.KindWithStatement,
		cst.KindLabeledStatement, cst.KindBreakStatement, cst.KindContinueStatement, cst.KindReturnStatement,
		cst.KindExpressionStatement, cst.KindImportDeclaration:
		x.stmt(n, e)
	default:
		x.expr(n, e)
	}
}

func (x *Extractor) stmt(n cst.Node, e env) {
	switch n.Kind() {
	case cst.KindExpressionStatement:
		for _, c := range n.Children() {
			x.expr(c, e)
		}

	case cst.KindBlockStatement:
		inner := e.withScope(x.pushScope(e.scope, facts.ScopeBlock, false))
		for _, c := range n.Children() {
			x.stmt(c, inner)
		}

	case cst.KindVariableDeclaration:
		x.variableDeclaration(n, e)

	case cst.KindFunctionDeclaration:
		x.functionDeclaration(n, e, false)

	case cst.KindClassDeclaration:
		x.classLike(n, e, true)

	case cst.KindIfStatement:
		x.expr(n.Field("test"), e)
		x.walkAny(n.Field("consequent"), e)
		x.walkAny(n.Field("alternate"), e)

	case cst.KindWhileStatement:
		x.expr(n.Field("test"), e)
		x.walkAny(n.Field("body"), e)

	case cst.KindDoWhileStatement:
		x.walkAny(n.Field("body"), e)
		x.expr(n.Field("test"), e)

	case cst.KindForStatement:
		x.forStatement(n, e)

	case cst.KindForInStatement, cst.KindForOfStatement:
		x.forInOfStatement(n, e)

	case cst.KindSwitchStatement:
		x.switchStatement(n, e)

	case cst.KindTryStatement:
		x.walkAny(n.Field("block"), e)
		if h := n.Field("handler"); h != nil {
			x.stmt(h, e)
		}
		x.walkAny(n.Field("finalizer"), e)

	case cst.KindCatchClause:
		x.catchClause(n, e)

	case cst.KindWithStatement:
		x.expr(n.Field("object"), e)
		inner := e.withScope(x.pushScope(e.scope, facts.ScopeWith, true))
		x.walkAny(n.Field("body"), inner)

	case cst.KindLabeledStatement:
		x.labeledStatement(n, e)

	case cst.KindBreakStatement:
		x.labelUse(n, e, true)

	case cst.KindContinueStatement:
		x.labelUse(n, e, true)

	case cst.KindReturnStatement:
		x.expr(n.Field("argument"), e)

	case cst.KindImportDeclaration:
		x.importDeclaration(n, e)

	default:
		inner := x.recoverFrom(n, e)
		for _, c := range n.Children() {
			x.walkAny(c, inner)
		}
	}
}

// recoverFrom records an ExtractionAbort for an unclassified node and opens
// a synthetic opaque scope for its subtree, so that whatever identifiers
// parser error recovery still produced inside it are bound and referenced
// normally (still counting toward UnusedVariable/UnusedLabel, still naming
// real bindings) without the scope's own opacity being able to cascade a
// single unrecognized node shape into a flood of InvalidNameUse/TDZ/typeof
// diagnostics from garbage structure.
func (x *Extractor) recoverFrom(n cst.Node, e env) env {
	x.abortf("extract: unclassified node (kind %v) at %v; subtree isolated", n.Kind(), n.Span())
	return e.withScope(x.pushScope(e.scope, facts.ScopeBlock, true))
}

// pushScope allocates and records a new child scope of parent.
func (x *Extractor) pushScope(parent facts.ScopeID, kind facts.ScopeKind, opaque bool) facts.ScopeID {
	s := x.ids.Scope()
	x.batch.InsertScope(facts.InputScope{File: x.file, Scope: s, Parent: parent, Kind: kind, Opaque: opaque})
	return s
}

func (x *Extractor) variableDeclaration(n cst.Node, e env) {
	kind := declKindFromText(n.Text())
	for _, d := range n.Children() {
		if d.Kind() != cst.KindVariableDeclarator {
			continue
		}
		id := d.Field("id")
		declare := func(span facts.Span, text string) {
			if kind == facts.DeclVar {
				x.declareVar(e, span, text, false)
			} else {
				x.declareLexical(e, kind, span, text, false)
			}
		}
		x.bindPattern(e, id, declare)
		if init := d.Field("init"); init != nil {
			x.expr(init, e)
		}
	}
}

func declKindFromText(text string) facts.DeclKind {
	switch text {
	case "let":
		return facts.DeclLet
	case "const":
		return facts.DeclConst
	default:
		return facts.DeclVar
	}
}

// functionDeclaration binds the function's own name and walks its body in a
// fresh function-level scope. namedExprOnly is true when this is a named
// function expression, whose name is visible only inside its own body.
func (x *Extractor) functionDeclaration(n cst.Node, e env, namedExprOnly bool) {
	bodyScope := x.pushScope(e.scope, facts.ScopeFunctionBody, false)

	if idNode := n.Field("id"); idNode != nil {
		decl := facts.FunctionDecl{
			ID:            x.ids.Function().Any(),
			File:          x.file,
			Scope:         e.scope,
			FuncScope:     e.funcScope,
			BodyScope:     bodyScope,
			Name:          x.interner.Intern(idNode.Text()),
			Span:          idNode.Span(),
			HoistsLikeVar: !namedExprOnly && x.kind == Script,
			NamedExprOnly: namedExprOnly,
		}
		x.batch.InsertFunc(decl)
	}

	inner := e.withFunction(bodyScope)
	if params := n.Field("params"); params != nil {
		for _, p := range params.Children() {
			target := p
			if p.Kind() == cst.KindParameter && len(p.Children()) > 0 {
				target = p.Children()[0]
			}
			x.bindPattern(inner, target, func(span facts.Span, text string) {
				x.declareParam(bodyScope, span, text)
			})
		}
	}

	if body := n.Field("body"); body != nil {
		if body.Kind() == cst.KindBlockStatement {
			for _, c := range body.Children() {
				x.stmt(c, inner)
			}
		} else {
			// Arrow function with an expression body.
			x.expr(body, inner)
		}
	}
}

func (x *Extractor) forStatement(n cst.Node, e env) {
	forScope := e.withScope(x.pushScope(e.scope, facts.ScopeForInit, false))
	if init := n.Field("init"); init != nil {
		x.walkAny(init, forScope)
	}
	x.expr(n.Field("test"), forScope)
	x.expr(n.Field("update"), forScope)
	x.walkAny(n.Field("body"), forScope)
}

func (x *Extractor) forInOfStatement(n cst.Node, e env) {
	forScope := e.withScope(x.pushScope(e.scope, facts.ScopeForInit, false))
	left := n.Field("left")
	if left != nil && left.Kind() == cst.KindVariableDeclaration {
		x.variableDeclaration(left, forScope)
	} else if left != nil {
		// Plain identifier/pattern target, e.g. `for (x of xs)`: an
		// assignment, not a declaration.
		x.bindAssignTarget(forScope, left)
	}
	x.expr(n.Field("right"), e)
	x.walkAny(n.Field("body"), forScope)
}

func (x *Extractor) switchStatement(n cst.Node, e env) {
	x.expr(n.Field("discriminant"), e)
	switchScope := e.withScope(x.pushScope(e.scope, facts.ScopeSwitch, false))
	for _, c := range n.Children() {
		if c.Kind() != cst.KindSwitchCase {
			continue
		}
		x.expr(c.Field("test"), switchScope)
		for _, stmt := range c.Children() {
			if stmt.Kind() == cst.KindSwitchCase {
				continue
			}
			x.walkAny(stmt, switchScope)
		}
	}
}

func (x *Extractor) catchClause(n cst.Node, e env) {
	catchScope := e.withScope(x.pushScope(e.scope, facts.ScopeCatch, false))
	if param := n.Field("param"); param != nil {
		x.bindPattern(catchScope, param, func(span facts.Span, text string) {
			x.declareLexical(catchScope, facts.DeclLet, span, text, false)
		})
	}
	if body := n.Field("body"); body != nil {
		for _, c := range body.Children() {
			x.stmt(c, catchScope)
		}
	}
}

func (x *Extractor) labeledStatement(n cst.Node, e env) {
	labelNode := n.Field("label")
	body := n.Field("body")

	// Labels may stack directly in front of a loop (`outer: inner: for
	// (...) {}`); peel through the chain to decide whether this label
	// itself attaches to a loop.
	target := body
	for target != nil && target.Kind() == cst.KindLabeledStatement {
		target = target.Field("body")
	}
	loop := target != nil && isLoopKind(target.Kind())

	x.declareLabel(e.scope, labelNode.Span(), labelNode.Text(), loop)
	x.walkAny(body, e)
}

func isLoopKind(k cst.Kind) bool {
	switch k {
	case cst.KindForStatement, cst.KindForInStatement, cst.KindForOfStatement,
		cst.KindWhileStatement, cst.KindDoWhileStatement:
		return true
	default:
		return false
	}
}

// labelUse records a break/continue target. An unlabeled break/continue
// targets its nearest enclosing loop/switch implicitly, which this core
// does not model as a LabelUse (there is no user-written label to mark
// used or unused); only an explicit Field("label") produces a row.
func (x *Extractor) labelUse(n cst.Node, e env, requireLoop bool) {
	labelNode := n.Field("label")
	if labelNode == nil {
		return
	}
	x.batch.InsertLabelUse(facts.LabelUse{
		Use:         x.ids.Stmt().Any(),
		File:        x.file,
		Scope:       e.scope,
		Name:        x.interner.Intern(labelNode.Text()),
		Span:        labelNode.Span(),
		RequireLoop: requireLoop,
	})
}

func (x *Extractor) importDeclaration(n cst.Node, e env) {
	for _, c := range n.Children() {
		switch c.Kind() {
		case cst.KindImportSpecifier:
			local := c.Field("local")
			if local == nil {
				local = c.Field("imported")
			}
			x.declareImport(e.scope, local.Span(), local.Text())
		case cst.KindImportDefaultSpecifier, cst.KindImportNamespaceSpecifier:
			local := c.Field("local")
			x.declareImport(e.scope, local.Span(), local.Text())
		}
	}
}

func (x *Extractor) classLike(n cst.Node, e env, isDeclaration bool) {
	if idNode := n.Field("id"); idNode != nil && isDeclaration {
		x.declareLexical(e, facts.DeclClass, idNode.Span(), idNode.Text(), false)
	}
	for _, member := range n.Children() {
		switch member.Kind() {
		case cst.KindMethodDefinition, cst.KindPropertyDefinition:
			if v := member.Field("value"); v != nil {
				x.expr(v, e)
			}
		}
	}
}
