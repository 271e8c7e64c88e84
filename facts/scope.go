package facts

// ScopeKind determines a scope's hoisting behavior: whether it is a
// function-level scope (where `var` and hoisted function declarations
// land), and whether it is opaque to static name resolution.
type ScopeKind uint8

const (
	ScopeGlobal ScopeKind = iota
	ScopeModule
	ScopeFunctionBody
	ScopeBlock
	ScopeWith
	ScopeCatch
	ScopeForInit
	ScopeClass
	ScopeArrowBody
	ScopeSwitch
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeModule:
		return "module"
	case ScopeFunctionBody:
		return "function-body"
	case ScopeBlock:
		return "block"
	case ScopeWith:
		return "with"
	case ScopeCatch:
		return "catch"
	case ScopeForInit:
		return "for-init"
	case ScopeClass:
		return "class"
	case ScopeArrowBody:
		return "arrow-body"
	case ScopeSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// IsFunctionLevel reports whether a scope of this kind is one of the three
// kinds `var` hoists to: module, function-body or global.
func (k ScopeKind) IsFunctionLevel() bool {
	return k == ScopeGlobal || k == ScopeModule || k == ScopeFunctionBody
}

// Opaque reports whether name resolution cannot be statically decided
// inside a scope of this kind. Only `with` is opaque by construction; other
// scopes can be flagged opaque per instance through InputScope.Opaque. The
// extractor does not detect `eval` calls, so an `eval`-containing scope is
// not treated as opaque.
func (k ScopeKind) Opaque() bool { return k == ScopeWith }

// DeclKind distinguishes the binding forms the extractor can produce.
type DeclKind uint8

const (
	DeclVar DeclKind = iota
	DeclLet
	DeclConst
	DeclFunction
	DeclClass
	DeclParam
	DeclImport
	DeclImplicitGlobal
	DeclLabel
)

func (k DeclKind) String() string {
	switch k {
	case DeclVar:
		return "var"
	case DeclLet:
		return "let"
	case DeclConst:
		return "const"
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	case DeclParam:
		return "param"
	case DeclImport:
		return "import"
	case DeclImplicitGlobal:
		return "implicit-global"
	case DeclLabel:
		return "label"
	default:
		return "unknown"
	}
}

// HasTDZ reports whether a binding of this kind is in a temporal dead zone
// before its declaration span: true for let/const/class, false for
// var/function (hoisted and usable throughout their function-level scope),
// params, imports and implicit globals (bound before any code runs).
func (k DeclKind) HasTDZ() bool {
	return k == DeclLet || k == DeclConst || k == DeclClass
}

// Redeclarable reports whether a second declaration of the same name in the
// same scope collapses into the first (true for var) rather than raising a
// duplicate-declaration fact (false for let/const/class — invariant 3).
func (k DeclKind) Redeclarable() bool { return k == DeclVar }
