// Package demo builds one hand-authored CST, standing in for a small JS
// snippet, as a ready-made input for the debug CLI (and for smoke-testing
// the rest of the module without a real lexer/parser, which this
// repository deliberately does not include).
//
// The snippet it models:
//
//	let used = 1;
//	console.log(used);
//	let unused = 2;
//	outer: for (;;) { break outer; }
//	inner: for (;;) {}
//	console.log(typeof neverDeclared);
//	console.log(missing);
//
// The tree follows the shape of this snippet, but its node spans are
// made-up offsets that do not match byte positions in the text above, and
// every `let` initializer is the same placeholder literal.
package demo

import (
	"github.com/jsscope/core/cst"
	"github.com/jsscope/core/cstfixture"
	"github.com/jsscope/core/facts"
)

// File is the FileID the bundled snippet is registered under.
const File facts.FileID = 1

func span(start, end int) facts.Span { return facts.Span{Start: start, End: end} }

func ident(name string, start int) *cstfixture.Node {
	return cstfixture.New(cst.KindIdentifier, name, span(start, start+len(name)))
}

func ref(name string, start int) *cstfixture.Node {
	return cstfixture.New(cst.KindIdentifierReference, name, span(start, start+len(name)))
}

func consoleLog(arg cst.Node, start int) *cstfixture.Node {
	member := cstfixture.New(cst.KindMemberExpression, "", span(start, start+11)).
		SetField("object", ref("console", start)).
		SetField("property", ident("log", start+8))
	call := cstfixture.New(cst.KindCallExpression, "", span(start, start+20), member, arg)
	return cstfixture.New(cst.KindExpressionStatement, "", span(start, start+21), call)
}

func letDecl(name string, start int) *cstfixture.Node {
	declarator := cstfixture.New(cst.KindVariableDeclarator, "", span(start, start+len(name)+8)).
		SetField("id", ident(name, start+4)).
		SetField("init", cstfixture.New(cst.KindOtherExpression, "1", span(start+len(name)+7, start+len(name)+8)))
	return cstfixture.New(cst.KindVariableDeclaration, "let", span(start, start+len(name)+9), declarator)
}

func emptyForLoop(body cst.Node, start int) *cstfixture.Node {
	return cstfixture.New(cst.KindForStatement, "", span(start, start+20)).
		SetField("body", body)
}

// Program returns the root node of the bundled demo snippet and the FileID
// it should be analyzed under.
func Program() (cst.Node, facts.FileID) {
	pos := 0
	next := func(n int) int { pos += n; return pos }

	usedDecl := letDecl("used", next(14))
	logUsed := consoleLog(ref("used", next(21)), pos)
	unusedDecl := letDecl("unused", next(22))

	breakOuter := cstfixture.New(cst.KindBreakStatement, "", span(next(20), pos+13)).
		SetField("label", ident("outer", pos))
	outerBody := cstfixture.New(cst.KindBlockStatement, "", span(pos, pos+20), breakOuter)
	outerLabel := cstfixture.New(cst.KindLabeledStatement, "", span(pos, pos+34)).
		SetField("label", ident("outer", pos)).
		SetField("body", emptyForLoop(outerBody, pos))

	innerBody := cstfixture.New(cst.KindBlockStatement, "", span(next(34), pos+2))
	innerLabel := cstfixture.New(cst.KindLabeledStatement, "", span(pos, pos+22)).
		SetField("label", ident("inner", pos)).
		SetField("body", emptyForLoop(innerBody, pos))

	typeofArg := cstfixture.New(cst.KindUnaryExpression, "typeof", span(next(22), pos+24)).
		SetField("argument", ref("neverDeclared", pos+7))
	logTypeof := consoleLog(typeofArg, next(24))

	logMissing := consoleLog(ref("missing", next(35)), pos)

	root := cstfixture.New(cst.KindProgram, "", span(0, pos+22),
		usedDecl, logUsed, unusedDecl, outerLabel, innerLabel, logTypeof, logMissing)
	return root, File
}
