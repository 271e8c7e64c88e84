package lint

import (
	"github.com/jsscope/core/facts"
)

// NoUndef reports a NameRef with no visible binder anywhere in its scope
// chain (InvalidNameUse, projected).
type NoUndef struct {
	File facts.FileID
	Name string
	Span facts.Span
}

// NoUnusedVars reports a declared binding nothing ever reads; a binding
// that is only assigned to is still reported (UnusedVariable, projected).
type NoUnusedVars struct {
	File         facts.FileID
	Name         string
	DeclaredSpan facts.Span
}

// UseBeforeDef reports a use that lexically precedes the let/const/class
// declaration it resolves to, within the same function-level scope
// (VarUseBeforeDeclaration, projected).
type UseBeforeDef struct {
	File         facts.FileID
	Name         string
	UsedSpan     facts.Span
	DeclaredSpan facts.Span
}

// TypeofUndef reports a `typeof x` whose x is statically unbound
// (TypeofUndefinedAlwaysUndefined, projected).
type TypeofUndef struct {
	File        facts.FileID
	WholeSpan   facts.Span
	OperandSpan facts.Span
}

// UnusedLabel reports a label nothing breaks or continues to
// (UnusedLabel, projected).
type UnusedLabel struct {
	File facts.FileID
	Name string
	Span facts.Span
}

// ShadowedVariable reports an inner binding hiding an outer one of the
// same name (ShadowedVariable, projected, gated the same way the other
// records are).
type ShadowedVariable struct {
	File      facts.FileID
	Name      string
	OuterSpan facts.Span
	InnerSpan facts.Span
}

// Report is every projected record for one file, grouped by kind. A
// disabled Config option leaves the corresponding slice nil, not empty —
// callers distinguish "lint ran and found nothing" from "lint was off"
// only if they also have the Config that produced the Report, the same
// way the engine itself treats disabled projections as "dropped, not
// computed differently."
type Report struct {
	NoUndef          []NoUndef
	NoUnusedVars     []NoUnusedVars
	UseBeforeDef     []UseBeforeDef
	TypeofUndef      []TypeofUndef
	UnusedLabel      []UnusedLabel
	ShadowedVariable []ShadowedVariable
}
