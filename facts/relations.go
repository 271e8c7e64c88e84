package facts

import "github.com/jsscope/core/ident"

// Input relations — produced by the extractor (component C) and the
// globals injector (component G), consumed by the engine (component E).
// Every row carries its File so store.ClearFile can purge them in one pass.

// InputScope records one scope's existence and static shape. The top scope
// of a file (kind ScopeGlobal or ScopeModule depending on the analyzed
// file's kind) has Parent equal to its own Scope (self-loop), which the
// engine's ChildScope rule filters out explicitly (rule 1: p != c).
type InputScope struct {
	File   FileID
	Scope  ScopeID
	Parent ScopeID
	Kind   ScopeKind
	// Opaque marks a scope whose subtree suppresses diagnostics the way a
	// `with` scope does, even though the scope's own Kind may be e.g. Block.
	// The extractor sets it for `with` bodies and for the synthetic scope it
	// opens around an unclassified subtree; it does not detect `eval` calls,
	// so a scope containing one is not marked.
	Opaque bool
}

// VarDecl is a `var` declared in Scope but hoisted for visibility purposes
// to FuncScope, the nearest enclosing function-level scope. Hoisted function
// declarations are recorded as FunctionDecl rows, not as VarDecl.
type VarDecl struct {
	ID        AnyID
	File      FileID
	Scope     ScopeID
	FuncScope ScopeID
	Name      ident.Name
	Span      Span
	Exported  bool
}

// LexicalDecl is a let/const/class declaration, block-scoped with a
// temporal dead zone starting at Span.Start.
type LexicalDecl struct {
	ID       AnyID
	File     FileID
	Scope    ScopeID
	Kind     DeclKind // DeclLet, DeclConst or DeclClass
	Name     ident.Name
	Span     Span
	Exported bool
}

// FunctionDecl binds a function declaration's name. In a module it is
// block-scoped like a LexicalDecl; in a script it hoists to the nearest
// function-level scope like a VarDecl. Which behavior applies is carried by
// HoistsLikeVar so the engine does not need to know the file's Kind.
type FunctionDecl struct {
	ID            AnyID
	File          FileID
	Scope         ScopeID
	FuncScope     ScopeID // meaningful only if HoistsLikeVar
	BodyScope     ScopeID // the function's own body scope, a FunctionLevelScope
	Name          ident.Name
	Span          Span
	Exported      bool
	HoistsLikeVar bool
	// NamedExprOnly marks a named function expression's self-binding, visible
	// only inside BodyScope, never in Scope.
	NamedExprOnly bool
}

// FunctionArg binds one parameter pattern's simple name inside the
// function's body scope.
type FunctionArg struct {
	ID        AnyID
	File      FileID
	BodyScope ScopeID
	Name      ident.Name
	Span      Span
}

// ImportClause binds one imported name into a module's top scope.
// Specifiers are assumed used unless nothing references them, exactly like
// any other declaration — no special-casing in the engine, just reflected
// by Exported staying false and the usual UnusedVariable join applying.
type ImportClause struct {
	ID    AnyID
	File  FileID
	Scope ScopeID
	Name  ident.Name
	Span  Span
}

// ImplicitGlobal is an ambient binding injected by the globals table
// (component G) into a file's top scope.
type ImplicitGlobal struct {
	ID    AnyID
	File  FileID
	Scope ScopeID
	Name  ident.Name
	Group string // e.g. "builtin", "es2021", "node", "browser"
}

// LabelDecl binds a statement label, in the separate label namespace
// attached to its enclosing statement.
type LabelDecl struct {
	ID    AnyID
	File  FileID
	Scope ScopeID
	Name  ident.Name
	Span  Span
	// Loop marks a label associated with a loop (immediately precedes a
	// for/while/do-while), the only kind `break`/`continue` may target.
	Loop bool
}

// NameRef is a read of a bare identifier.
type NameRef struct {
	Expr  ExprID
	File  FileID
	Scope ScopeID
	Name  ident.Name
	Span  Span
}

// TypeofOperand marks a NameRef whose only consumer is a `typeof` operator.
type TypeofOperand struct {
	File      FileID
	Whole     ExprID // the typeof expression itself
	WholeSpan Span
	Inner     ExprID // the operand NameRef's Expr
}

// AssignTarget is a write whose target is a bare identifier or a
// destructuring-bound simple name.
type AssignTarget struct {
	Expr  ExprID
	File  FileID
	Scope ScopeID
	Name  ident.Name
	Span  Span
}

// LabelUse is a `break label` / `continue label` / `goto label` reference.
type LabelUse struct {
	Use   AnyID
	File  FileID
	Scope ScopeID
	Name  ident.Name
	Span  Span
	// RequireLoop is true for break/continue (which may only target a loop
	// label), false for goto (which may target any visible label).
	RequireLoop bool
}

// Derived relations — maintained by the engine (component E), read by the
// query layer (component F) and projected by the lint extractor
// (component H).

// ChildScope is a direct parent->child scope edge (rule 1).
type ChildScope struct {
	File   FileID
	Parent ScopeID
	Child  ScopeID
}

// ScopeReach is the reflexive transitive closure of ChildScope within one
// file (rules 2-3, invariant 2).
type ScopeReach struct {
	File       FileID
	Ancestor   ScopeID
	Descendant ScopeID
}

// FunctionLevelScope maps every scope to its nearest enclosing
// function/module/global scope (rule 4), the scope a `var` inside it hoists
// to.
type FunctionLevelScope struct {
	File    FileID
	Scope   ScopeID
	Nearest ScopeID
}

// NameInScope is the central visibility relation: for each (scope, name)
// there may be zero or more binders (rules 5-7).
type NameInScope struct {
	File       FileID
	Scope      ScopeID
	Name       ident.Name
	DeclaredIn AnyID
	Span       Span
	Implicit   bool
}

// InvalidNameUse is a NameRef with no binder in its scope chain (rule 8).
type InvalidNameUse struct {
	File    FileID
	Name    ident.Name
	UseSpan Span
	Scope   ScopeID
}

// VarUseBeforeDeclaration is a use that lexically precedes the let/const/
// class declaration it resolves to, within the same function-level scope
// (rule 9).
type VarUseBeforeDeclaration struct {
	File       FileID
	Name       ident.Name
	UsedAt     Span
	DeclaredAt Span
}

// UnusedVariable is a declared binding never read from any descendant scope
// (rule 10).
type UnusedVariable struct {
	File FileID
	Name ident.Name
	Span Span
}

// UnusedLabel is a label with no break/continue/goto targeting it from
// within its reach (rule 12).
type UnusedLabel struct {
	File  FileID
	Label ident.Name
	Span  Span
}

// TypeofUndefinedAlwaysUndefined is a `typeof x` whose x is unbound (rule
// 11): the expression is statically known to always evaluate to the string
// "undefined".
type TypeofUndefinedAlwaysUndefined struct {
	File        FileID
	WholeSpan   Span
	OperandSpan Span
}

// ShadowedVariable is a binding in an inner scope that hides a same-name
// binder from an enclosing scope. Whether hoisted (var/function) bindings
// participate is governed by the engine's configured ShadowHoisting mode.
type ShadowedVariable struct {
	File      FileID
	Name      ident.Name
	OuterSpan Span
	InnerSpan Span
}
