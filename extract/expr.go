package extract

import (
	"github.com/jsscope/core/cst"
	"github.com/jsscope/core/facts"
)

func (x *Extractor) expr(n cst.Node, e env) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case cst.KindIdentifierReference:
		x.nameRef(n, e)

	case cst.KindAssignmentExpression:
		x.assignmentExpression(n, e)

	case cst.KindUnaryExpression:
		x.unaryExpression(n, e)

	case cst.KindMemberExpression:
		x.memberExpression(n, e)

	case cst.KindFunctionExpression:
		x.functionDeclaration(n, e, n.Field("id") != nil)

	case cst.KindArrowFunction:
		x.functionDeclaration(n, e, false)

	case cst.KindClassExpression:
		x.classLike(n, e, false)

	case cst.KindIdentifier:
		// A bare identifier reached in expression position without having
		// been disambiguated as a reference (e.g. an object literal's
		// shorthand property value); treat it as a use like any other name.
		x.nameRef(n, e)

	case cst.KindOther:
		inner := x.recoverFrom(n, e)
		for _, c := range n.Children() {
			x.walkAny(c, inner)
		}

	default:
		// Call/New/array and object literals, template literals, binary,
		// logical, conditional, sequence expressions and anything else:
		// none of these have scope semantics of their own, so recurse into
		// every child uniformly.
		for _, c := range n.Children() {
			x.expr(c, e)
		}
	}
}

func (x *Extractor) nameRef(n cst.Node, e env) facts.ExprID {
	id := x.ids.Expr()
	x.batch.InsertNameRef(facts.NameRef{
		Expr: id, File: x.file, Scope: e.scope,
		Name: x.interner.Intern(n.Text()), Span: n.Span(),
	})
	return id
}

func (x *Extractor) assignmentExpression(n cst.Node, e env) {
	x.bindAssignTarget(e, n.Field("left"))
	if right := n.Field("right"); right != nil {
		x.expr(right, e)
	}
}

// bindAssignTarget flattens an assignment's left-hand side (a bare name, a
// destructuring pattern, or a member expression) into AssignTarget rows for
// every simple name written to; a member expression's object is still a
// read (`obj.x = 1` uses obj), recorded via the ordinary expr walk.
func (x *Extractor) bindAssignTarget(e env, n cst.Node) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case cst.KindIdentifier, cst.KindIdentifierReference:
		x.batch.InsertAssignTarget(facts.AssignTarget{
			Expr: x.ids.Expr(), File: x.file, Scope: e.scope,
			Name: x.interner.Intern(n.Text()), Span: n.Span(),
		})
	case cst.KindObjectPattern, cst.KindArrayPattern:
		for _, c := range n.Children() {
			x.bindAssignTarget(e, c)
		}
	case cst.KindAssignmentPattern:
		x.bindAssignTarget(e, n.Field("left"))
		if right := n.Field("right"); right != nil {
			x.expr(right, e)
		}
	case cst.KindRestElement:
		x.bindAssignTarget(e, n.Field("argument"))
	default:
		// KindMemberExpression or anything else: not a simple-name write,
		// just a read of whatever it contains.
		x.expr(n, e)
	}
}

// unaryExpression special-cases `typeof` on a bare identifier: its operand
// is still recorded as a NameRef (so no-undef style joins see it), and
// additionally as a TypeofOperand so an unresolved operand derives
// TypeofUndefinedAlwaysUndefined rather than InvalidNameUse (rule 11
// supersedes rule 8 for this shape).
func (x *Extractor) unaryExpression(n cst.Node, e env) {
	operand := n.Field("argument")
	if n.Text() != "typeof" || operand == nil {
		for _, c := range n.Children() {
			x.expr(c, e)
		}
		return
	}

	if operand.Kind() == cst.KindIdentifierReference || operand.Kind() == cst.KindIdentifier {
		innerID := x.nameRef(operand, e)
		x.batch.InsertTypeofOperand(facts.TypeofOperand{
			File: x.file, Whole: x.ids.Expr(), WholeSpan: n.Span(), Inner: innerID,
		})
		return
	}
	if operand.Kind() == cst.KindOther {
		// Parser error recovery handed us an unclassifiable typeof operand.
		// Record the TypeofOperand row anyway (Whole is a real, freshly
		// minted id) but key it to the sentinel Inner id: no NameRef ever
		// carries that id, so the row can never join into
		// TypeofUndefinedAlwaysUndefined — we genuinely don't know whether
		// the operand is bound, so we emit nothing rather than guess.
		x.abortf("extract: unclassified typeof operand at %v", operand.Span())
		x.batch.InsertTypeofOperand(facts.TypeofOperand{
			File: x.file, Whole: x.ids.Expr(), WholeSpan: n.Span(), Inner: x.ids.SentinelExpr(),
		})
		return
	}
	x.expr(operand, e)
}

func (x *Extractor) memberExpression(n cst.Node, e env) {
	if obj := n.Field("object"); obj != nil {
		x.expr(obj, e)
	}
	prop := n.Field("property")
	if prop == nil {
		return
	}
	if prop.Kind() == cst.KindIdentifier {
		// Non-computed property name (`obj.prop`): not a variable use.
		return
	}
	x.expr(prop, e)
}
