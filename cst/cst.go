// Package cst declares the boundary the scope-resolution core consumes: a
// concrete syntax tree node shape exposing a kind, children and a source
// byte range. The lexer/parser that produces these trees, and the CST data
// structure itself, are out of scope for this repository — we only need the
// contract extract.Walk requires to operate on whatever tree a caller hands
// it (the shape a go-tree-sitter or hand-rolled JS CST would satisfy).
package cst

import "github.com/jsscope/core/facts"

// Kind enumerates the JS syntax shapes the extractor recognizes. A KindOther
// node (an unhandled form, a parser recovery node) still satisfies Node;
// reached as a statement or expression, the extractor records an
// extraction abort for it and walks its subtree inside a synthetic opaque
// scope rather than failing. A KindOther typeof operand is keyed to
// facts.SentinelExprID.
type Kind int

const (
	KindOther Kind = iota

	// Program-level.
	KindProgram
	KindBlockStatement

	// Declarations.
	KindVariableDeclaration // Text() is one of "var", "let", "const"
	KindVariableDeclarator  // Field("id"), Field("init")
	KindFunctionDeclaration // Field("id"), Field("params"), Field("body")
	KindFunctionExpression
	KindArrowFunction
	KindParameter // a single formal parameter pattern
	KindClassDeclaration
	KindClassExpression
	KindMethodDefinition  // Field("key"), Field("value") (a FunctionExpression)
	KindPropertyDefinition // class field: Field("key"), Field("value")

	// Patterns.
	KindIdentifier // Text() is the identifier/label name
	KindObjectPattern
	KindArrayPattern
	KindAssignmentPattern // Field("left") is the bound pattern, Field("right") the default
	KindRestElement       // Field("argument")

	// Statements.
	KindExpressionStatement
	KindIfStatement      // Field("test"), Field("consequent"), Field("alternate") may be absent
	KindForStatement     // Field("init"), Field("test"), Field("update"), Field("body")
	KindForInStatement   // Field("left"), Field("right"), Field("body")
	KindForOfStatement   // Field("left"), Field("right"), Field("body")
	KindWhileStatement   // Field("test"), Field("body")
	KindDoWhileStatement // Field("test"), Field("body")
	KindSwitchStatement  // Field("discriminant"); Children() are the KindSwitchCase clauses
	KindSwitchCase       // Field("test") absent for the default clause; Children() are the body statements
	KindTryStatement     // Field("block"), Field("handler"), Field("finalizer")
	KindCatchClause      // Field("param") may be absent, Field("body")
	KindWithStatement    // Field("object"), Field("body")
	KindLabeledStatement // Field("label"), Field("body")
	KindBreakStatement   // Field("label") may be absent
	KindContinueStatement // Field("label") may be absent
	KindReturnStatement  // Field("argument") may be absent

	// Imports (binding only; no cross-file resolution).
	KindImportDeclaration
	KindImportSpecifier       // named import: Field("imported"), Field("local")
	KindImportDefaultSpecifier // Field("local")
	KindImportNamespaceSpecifier // Field("local")

	// Expressions.
	KindIdentifierReference // a bare-name use (as opposed to a binding occurrence)
	KindAssignmentExpression // Field("left"), Field("right")
	KindUnaryExpression // Text() is the operator, e.g. "typeof"; Field("argument")
	KindCallExpression
	KindNewExpression
	KindMemberExpression // Field("object"), Field("property") (a KindIdentifier iff non-computed)
	KindOtherExpression // any expression kind with no scope semantics of its own; its children are walked as expressions
)

// Node is the shape a CST node must satisfy. Kind and Span are cheap,
// Children and Field may allocate or walk internal structure; the extractor
// never calls them more than once per node.
type Node interface {
	Kind() Kind
	Span() facts.Span
	// Text returns the leaf text relevant to this node's kind (an
	// identifier's name, a declaration's var/let/const keyword, an
	// operator's token). Empty for kinds that carry no such text.
	Text() string
	// Children returns every direct child, named or not, in source order.
	Children() []Node
	// Field returns the named child for kinds that document one (see the
	// Kind constants above), or nil if absent or not applicable.
	Field(name string) Node
}

// FileID identifies which file a Node's ids and spans belong to; supplied
// by the caller alongside the root Node, not derived from the tree itself.
type FileID = facts.FileID
