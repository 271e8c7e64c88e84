// Package facts defines the normalized, id-addressed fact model that the
// extractor produces and the engine consumes: identifiers, spans and the
// input/derived relation row shapes described by the scope-resolution core.
package facts

import "fmt"

// FileID is an opaque handle the caller uses to identify a source file. The
// core never interprets it beyond equality and use as a map/relation key.
type FileID uint32

// Kind distinguishes the seven id spaces that share the (counter, file)
// shape: scopes, functions, statements, expressions, classes, imports and
// implicit globals each have their own monotonic counter per file.
type Kind uint8

const (
	KindScope Kind = iota
	KindFunction
	KindStmt
	KindExpr
	KindClass
	KindImport
	KindGlobal
)

func (k Kind) String() string {
	switch k {
	case KindScope:
		return "scope"
	case KindFunction:
		return "function"
	case KindStmt:
		return "stmt"
	case KindExpr:
		return "expr"
	case KindClass:
		return "class"
	case KindImport:
		return "import"
	case KindGlobal:
		return "global"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ID is the (counter, file) pair shared by every scope/function/statement/
// expression/class/import/global id. Two ids are the same entity iff all
// three fields (including Kind, carried by AnyID) are equal.
type ID struct {
	Counter uint32
	File    FileID
}

func (id ID) String() string { return fmt.Sprintf("%d@%d", id.Counter, id.File) }

// AnyID is a tagged-variant id: an ID plus the Kind that disambiguates which
// counter space it was allocated from. Two AnyIDs are the "same" entity iff
// Kind, Counter and File are all equal.
type AnyID struct {
	Kind Kind
	ID   ID
}

func (a AnyID) String() string { return fmt.Sprintf("%s:%s", a.Kind, a.ID) }

// Scope-typed aliases. These are distinct Go types (not just ID) so that
// extraction code cannot accidentally pass a StmtID where a ScopeID is
// expected; each converts to AnyID via its Any method for storage in
// kind-erased relations.
type (
	ScopeID  ID
	FuncID   ID
	StmtID   ID
	ExprID   ID
	ClassID  ID
	ImportID ID
	GlobalID ID
)

func (s ScopeID) Any() AnyID  { return AnyID{Kind: KindScope, ID: ID(s)} }
func (f FuncID) Any() AnyID   { return AnyID{Kind: KindFunction, ID: ID(f)} }
func (s StmtID) Any() AnyID   { return AnyID{Kind: KindStmt, ID: ID(s)} }
func (e ExprID) Any() AnyID   { return AnyID{Kind: KindExpr, ID: ID(e)} }
func (c ClassID) Any() AnyID  { return AnyID{Kind: KindClass, ID: ID(c)} }
func (i ImportID) Any() AnyID { return AnyID{Kind: KindImport, ID: ID(i)} }
func (g GlobalID) Any() AnyID { return AnyID{Kind: KindGlobal, ID: ID(g)} }

func (s ScopeID) String() string  { return s.Any().String() }
func (f FuncID) String() string   { return f.Any().String() }
func (s StmtID) String() string   { return s.Any().String() }
func (e ExprID) String() string   { return e.Any().String() }
func (c ClassID) String() string  { return c.Any().String() }
func (i ImportID) String() string { return i.Any().String() }
func (g GlobalID) String() string { return g.Any().String() }

// SentinelExprID is the expression counter the extractor records as the
// Inner id of a TypeofOperand whose operand it cannot classify. Rules that
// join on expression identity never match a sentinel: no NameRef carries
// it, so it never participates in InvalidNameUse, VarUseBeforeDeclaration
// or TypeofUndefinedAlwaysUndefined. It exists so that an unrecognized
// operand degrades to "invisible to the engine" rather than aborting
// extraction of the surrounding function.
const SentinelExprID uint32 = ^uint32(0)

// IsSentinel reports whether e was never meaningfully classified.
func (e ExprID) IsSentinel() bool { return e.Counter == SentinelExprID }
