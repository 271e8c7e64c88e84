package query

import "github.com/jsscope/core/facts"

// Snapshot is a cheap, immutable read view of every derived relation,
// frozen at the moment Engine.Outputs was called. It shares no mutable
// state with the engine, so a caller holds it and reads from it without
// any further synchronization — the "readers are lock-free against a
// snapshot" half of the concurrency model; the lock is only held for the
// duration of the copy in Engine.Outputs, not for the snapshot's lifetime.
type Snapshot struct {
	childScope     []facts.ChildScope
	scopeReach     []facts.ScopeReach
	funcLevelScope []facts.FunctionLevelScope
	nameInScope    []facts.NameInScope
	invalidNameUse []facts.InvalidNameUse
	useBeforeDecl  []facts.VarUseBeforeDeclaration
	unusedVariable []facts.UnusedVariable
	unusedLabel    []facts.UnusedLabel
	typeofUndef    []facts.TypeofUndefinedAlwaysUndefined
	shadowed       []facts.ShadowedVariable
}

func (s Snapshot) ChildScope(file facts.FileID) []facts.ChildScope {
	return filterByFile(s.childScope, file, func(r facts.ChildScope) facts.FileID { return r.File })
}

func (s Snapshot) ScopeReach(file facts.FileID) []facts.ScopeReach {
	return filterByFile(s.scopeReach, file, func(r facts.ScopeReach) facts.FileID { return r.File })
}

func (s Snapshot) FunctionLevelScope(file facts.FileID) []facts.FunctionLevelScope {
	return filterByFile(s.funcLevelScope, file, func(r facts.FunctionLevelScope) facts.FileID { return r.File })
}

func (s Snapshot) NameInScope(file facts.FileID) []facts.NameInScope {
	return filterByFile(s.nameInScope, file, func(r facts.NameInScope) facts.FileID { return r.File })
}

func (s Snapshot) InvalidNameUse(file facts.FileID) []facts.InvalidNameUse {
	return filterByFile(s.invalidNameUse, file, func(r facts.InvalidNameUse) facts.FileID { return r.File })
}

func (s Snapshot) UseBeforeDecl(file facts.FileID) []facts.VarUseBeforeDeclaration {
	return filterByFile(s.useBeforeDecl, file, func(r facts.VarUseBeforeDeclaration) facts.FileID { return r.File })
}

func (s Snapshot) UnusedVariable(file facts.FileID) []facts.UnusedVariable {
	return filterByFile(s.unusedVariable, file, func(r facts.UnusedVariable) facts.FileID { return r.File })
}

func (s Snapshot) UnusedLabel(file facts.FileID) []facts.UnusedLabel {
	return filterByFile(s.unusedLabel, file, func(r facts.UnusedLabel) facts.FileID { return r.File })
}

func (s Snapshot) TypeofUndef(file facts.FileID) []facts.TypeofUndefinedAlwaysUndefined {
	return filterByFile(s.typeofUndef, file, func(r facts.TypeofUndefinedAlwaysUndefined) facts.FileID { return r.File })
}

func (s Snapshot) Shadowed(file facts.FileID) []facts.ShadowedVariable {
	return filterByFile(s.shadowed, file, func(r facts.ShadowedVariable) facts.FileID { return r.File })
}

// Index names one of the relations Lookup can address by a stable id
// rather than a typed accessor, the shape the debug dump CLI and any
// future out-of-process query protocol wants: a flat (index, key) pair
// instead of a Go method per relation.
type Index int

const (
	IndexChildScope Index = iota
	IndexScopeReach
	IndexFunctionLevelScope
	IndexNameInScope
	IndexInvalidNameUse
	IndexUseBeforeDecl
	IndexUnusedVariable
	IndexUnusedLabel
	IndexTypeofUndef
	IndexShadowed
)

func (i Index) String() string {
	switch i {
	case IndexChildScope:
		return "ChildScope"
	case IndexScopeReach:
		return "ScopeReach"
	case IndexFunctionLevelScope:
		return "FunctionLevelScope"
	case IndexNameInScope:
		return "NameInScope"
	case IndexInvalidNameUse:
		return "InvalidNameUse"
	case IndexUseBeforeDecl:
		return "VarUseBeforeDeclaration"
	case IndexUnusedVariable:
		return "UnusedVariable"
	case IndexUnusedLabel:
		return "UnusedLabel"
	case IndexTypeofUndef:
		return "TypeofUndefinedAlwaysUndefined"
	case IndexShadowed:
		return "ShadowedVariable"
	default:
		return "unknown"
	}
}

// Lookup returns every row of the named relation for file, boxed as
// interface{} (the rows are heterogeneous structs); callers that know
// which Index they asked for type-assert back to the concrete row type.
// An unrecognized Index returns nil, not a panic — this is the one
// query-layer entry point meant to be reachable from outside this
// process's Go type system (a debug CLI flag, eventually a wire
// protocol), so it degrades rather than traps on a bad argument.
func (s Snapshot) Lookup(idx Index, file facts.FileID) []interface{} {
	var rows []interface{}
	switch idx {
	case IndexChildScope:
		for _, r := range s.ChildScope(file) {
			rows = append(rows, r)
		}
	case IndexScopeReach:
		for _, r := range s.ScopeReach(file) {
			rows = append(rows, r)
		}
	case IndexFunctionLevelScope:
		for _, r := range s.FunctionLevelScope(file) {
			rows = append(rows, r)
		}
	case IndexNameInScope:
		for _, r := range s.NameInScope(file) {
			rows = append(rows, r)
		}
	case IndexInvalidNameUse:
		for _, r := range s.InvalidNameUse(file) {
			rows = append(rows, r)
		}
	case IndexUseBeforeDecl:
		for _, r := range s.UseBeforeDecl(file) {
			rows = append(rows, r)
		}
	case IndexUnusedVariable:
		for _, r := range s.UnusedVariable(file) {
			rows = append(rows, r)
		}
	case IndexUnusedLabel:
		for _, r := range s.UnusedLabel(file) {
			rows = append(rows, r)
		}
	case IndexTypeofUndef:
		for _, r := range s.TypeofUndef(file) {
			rows = append(rows, r)
		}
	case IndexShadowed:
		for _, r := range s.Shadowed(file) {
			rows = append(rows, r)
		}
	}
	return rows
}
