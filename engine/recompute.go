package engine

import (
	"sort"

	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/ident"
	"github.com/jsscope/core/store"
)

// binder is one local declaration as seen from the scope it is bound in —
// the unit localBinders and nearestBinder reason about.
type binder struct {
	id       facts.AnyID
	span     facts.Span
	kind     facts.DeclKind
	implicit bool
	exported bool
}

// scopeInfo is the per-scope shape the recompute walk needs, assembled from
// facts.InputScope rows for one file.
type scopeInfo struct {
	id       facts.ScopeID
	parent   facts.ScopeID
	isRoot   bool
	kind     facts.ScopeKind
	opaque   bool
	children []facts.ScopeID
}

// Recompute derives every relation in Derived for exactly one file, reading
// only that file's rows from in. This is the engine's incrementality
// strategy: every rule joins relations confined to a single file
// (ScopeReach is explicitly file-local), so recomputing one file's derived
// rows from scratch never needs to touch, and never changes, any other
// file's already-derived facts — only facts whose inputs changed are
// recomputed, at file granularity, without needing row-level delta
// propagation.
func Recompute(in *store.Store, out *Derived, cfg Config, file facts.FileID) error {
	out.ClearFile(file)

	scopes, root, err := buildScopeTree(in, file)
	if err != nil {
		return err
	}
	if len(scopes) == 0 {
		return nil // file has no scopes registered (e.g. already purged)
	}

	emitChildScopeAndReach(out, file, scopes, root)
	emitFunctionLevelScope(out, file, scopes, root)
	funcLevelOf := make(map[facts.ScopeID]facts.ScopeID, len(scopes))
	for _, row := range out.FunctionLevelScope.Snapshot() {
		if row.File == file {
			funcLevelOf[row.Scope] = row.Nearest
		}
	}

	localBinders := collectLocalBinders(in, file)

	nearest := func(from facts.ScopeID, name ident.Name) (binder, facts.ScopeID, bool) {
		s := from
		for {
			if byName, ok := localBinders[s]; ok {
				if b, ok := byName[name]; ok {
					return b, s, true
				}
			}
			info, ok := scopes[s]
			if !ok || info.isRoot {
				return binder{}, facts.ScopeID{}, false
			}
			s = info.parent
		}
	}
	emitNameInScope(out, file, scopes, root, localBinders, nearest)

	opaque := opaqueScopes(scopes, root)

	typeofInner := make(map[facts.ExprID]facts.TypeofOperand)
	for _, t := range in.TypeofOps.Snapshot() {
		if t.File == file {
			typeofInner[t.Inner] = t
		}
	}

	emitNameUseFacts(out, file, in, nearest, opaque, typeofInner, funcLevelOf)
	emitUnusedVariable(out, file, in, localBinders, scopes, root)
	emitUnusedLabel(out, file, in, scopes, root)
	emitShadowedVariable(out, file, scopes, root, localBinders, cfg)
	emitDuplicateLexicalDeclarations(out, file, in)

	return nil
}

func buildScopeTree(in *store.Store, file facts.FileID) (map[facts.ScopeID]*scopeInfo, facts.ScopeID, error) {
	scopes := make(map[facts.ScopeID]*scopeInfo)
	var root facts.ScopeID
	haveRoot := false

	for _, row := range in.Scopes.Snapshot() {
		if row.File != file {
			continue
		}
		scopes[row.Scope] = &scopeInfo{
			id:     row.Scope,
			parent: row.Parent,
			isRoot: row.Parent == row.Scope,
			kind:   row.Kind,
			opaque: row.Opaque,
		}
		if row.Parent == row.Scope {
			if haveRoot {
				return nil, facts.ScopeID{}, transactionFailedf("file %v: more than one root scope", file)
			}
			root = row.Scope
			haveRoot = true
		}
	}
	if len(scopes) == 0 {
		return scopes, root, nil
	}
	if !haveRoot {
		return nil, facts.ScopeID{}, transactionFailedf("file %v: no root scope among %d scopes", file, len(scopes))
	}
	for id, info := range scopes {
		if info.isRoot {
			continue
		}
		parent, ok := scopes[info.parent]
		if !ok {
			return nil, facts.ScopeID{}, transactionFailedf("file %v: scope %v has unknown parent %v", file, id, info.parent)
		}
		parent.children = append(parent.children, id)
	}
	return scopes, root, nil
}

func emitChildScopeAndReach(out *Derived, file facts.FileID, scopes map[facts.ScopeID]*scopeInfo, root facts.ScopeID) {
	for id, info := range scopes {
		if !info.isRoot {
			out.ChildScope.Insert(facts.ChildScope{File: file, Parent: info.parent, Child: id}, file)
		}
	}

	// ScopeReach(a, d) for every descendant d of a, reflexive. A plain DFS
	// from each node suffices since the scope tree is acyclic and typically
	// shallow; this is rule 2 + rule 3 evaluated to their closed form
	// directly rather than via iterative semi-naive joins.
	var descendants func(facts.ScopeID) []facts.ScopeID
	memo := make(map[facts.ScopeID][]facts.ScopeID)
	descendants = func(s facts.ScopeID) []facts.ScopeID {
		if v, ok := memo[s]; ok {
			return v
		}
		res := []facts.ScopeID{s}
		for _, c := range scopes[s].children {
			res = append(res, descendants(c)...)
		}
		memo[s] = res
		return res
	}
	for id := range scopes {
		for _, d := range descendants(id) {
			out.ScopeReach.Insert(facts.ScopeReach{File: file, Ancestor: id, Descendant: d}, file)
		}
	}
}

func emitFunctionLevelScope(out *Derived, file facts.FileID, scopes map[facts.ScopeID]*scopeInfo, root facts.ScopeID) {
	for id := range scopes {
		s := id
		for {
			info := scopes[s]
			if info.kind.IsFunctionLevel() || info.isRoot {
				break
			}
			s = info.parent
		}
		out.FunctionLevelScope.Insert(facts.FunctionLevelScope{File: file, Scope: id, Nearest: s}, file)
	}
}

// collectLocalBinders groups every declaration by the scope it is actually
// bound in (VarDecl/hoisted FunctionDecl at their FuncScope, everything
// else at its own Scope/BodyScope), collapsing same-(scope,name) duplicates
// to the earliest span (rule 5's edge case) so NameInScope always has a
// single winner. Among lexical, function and var declarations the earliest
// span wins; params, imports and implicit globals, in that order, only
// bind a name no earlier kind bound in that scope (a user redeclaring a
// builtin name shadows it, the common JS idiom). Collapsing the winner here does not discard a
// same-scope lexical duplicate's existence: emitDuplicateLexicalDeclarations
// walks the same input rows separately and raises a diagnostic for it.
func collectLocalBinders(in *store.Store, file facts.FileID) map[facts.ScopeID]map[ident.Name]binder {
	out := make(map[facts.ScopeID]map[ident.Name]binder)

	place := func(scope facts.ScopeID, name ident.Name, b binder, overwriteIfEarlier bool) {
		byName, ok := out[scope]
		if !ok {
			byName = make(map[ident.Name]binder)
			out[scope] = byName
		}
		existing, present := byName[name]
		if !present {
			byName[name] = b
			return
		}
		if overwriteIfEarlier && b.span.Start < existing.span.Start {
			byName[name] = b
		}
	}

	for _, row := range in.Lexicals.Snapshot() {
		if row.File != file {
			continue
		}
		place(row.Scope, row.Name, binder{id: row.ID, span: row.Span, kind: row.Kind, exported: row.Exported}, true)
	}
	for _, row := range in.Funcs.Snapshot() {
		if row.File != file || row.NamedExprOnly {
			continue
		}
		target := row.Scope
		if row.HoistsLikeVar {
			target = row.FuncScope
		}
		place(target, row.Name, binder{id: row.ID, span: row.Span, kind: facts.DeclFunction, exported: row.Exported}, true)
	}
	for _, row := range in.Funcs.Snapshot() {
		if row.File != file || !row.NamedExprOnly {
			continue
		}
		place(row.BodyScope, row.Name, binder{id: row.ID, span: row.Span, kind: facts.DeclFunction}, true)
	}
	for _, row := range in.Vars.Snapshot() {
		if row.File != file {
			continue
		}
		place(row.FuncScope, row.Name, binder{id: row.ID, span: row.Span, kind: facts.DeclVar, exported: row.Exported}, true)
	}
	for _, row := range in.Args.Snapshot() {
		if row.File != file {
			continue
		}
		place(row.BodyScope, row.Name, binder{id: row.ID, span: row.Span, kind: facts.DeclParam}, false)
	}
	for _, row := range in.Imports.Snapshot() {
		if row.File != file {
			continue
		}
		place(row.Scope, row.Name, binder{id: row.ID, span: row.Span, kind: facts.DeclImport}, false)
	}
	for _, row := range in.Globals.Snapshot() {
		if row.File != file {
			continue
		}
		place(row.Scope, row.Name, binder{id: row.ID, span: facts.Span{}, kind: facts.DeclImplicitGlobal, implicit: true}, false)
	}

	return out
}

// emitDuplicateLexicalDeclarations records a ShadowedVariable fact for
// every let/const/class declaration that redeclares an earlier same-name
// lexical declaration in the same scope, rather than an enclosing one.
// Unlike var (DeclKind.Redeclarable true), whose repeated declarations in
// one function-level scope legitimately collapse to a single NameInScope row
// (collectLocalBinders keeps only the earliest span), a repeated lexical
// declaration is never legal and must surface its own diagnostic rather
// than disappear silently. Rows are sorted by span before pairing so the
// emitted facts do not depend on the store's iteration order.
func emitDuplicateLexicalDeclarations(out *Derived, file facts.FileID, in *store.Store) {
	type dupKey struct {
		scope facts.ScopeID
		name  ident.Name
	}
	groups := make(map[dupKey][]facts.LexicalDecl)
	for _, row := range in.Lexicals.Snapshot() {
		if row.File != file || row.Kind.Redeclarable() {
			continue
		}
		k := dupKey{row.Scope, row.Name}
		groups[k] = append(groups[k], row)
	}

	for _, rows := range groups {
		if len(rows) < 2 {
			continue
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Span.Start != rows[j].Span.Start {
				return rows[i].Span.Start < rows[j].Span.Start
			}
			return rows[i].ID.ID.Counter < rows[j].ID.ID.Counter
		})
		outer := rows[0]
		for _, inner := range rows[1:] {
			out.Shadowed.Insert(facts.ShadowedVariable{
				File: file, Name: outer.Name, OuterSpan: outer.Span, InnerSpan: inner.Span,
			}, file)
		}
	}
}

// emitNameInScope materializes, for every (scope, name) pair reachable from
// some declaration, the binder that a reference at that scope would
// actually resolve to. Per rule 7 the relation must propagate every
// ancestor binder to every descendant scope; per invariant 4 the reader is
// expected to apply nearest-binder-wins when more than one row exists for
// the same (scope, name). We resolve nearest-binder once here, at
// materialization time, rather than storing every shadowed row and
// resolving on each read: the two are observationally equivalent for every
// query this core exposes (component F never needs the shadowed rows
// themselves — a dedicated ShadowedVariable relation covers that need
// instead).
func emitNameInScope(out *Derived, file facts.FileID, scopes map[facts.ScopeID]*scopeInfo, root facts.ScopeID,
	localBinders map[facts.ScopeID]map[ident.Name]binder,
	nearest func(facts.ScopeID, ident.Name) (binder, facts.ScopeID, bool)) {

	names := make(map[ident.Name]struct{})
	for _, byName := range localBinders {
		for n := range byName {
			names[n] = struct{}{}
		}
	}
	for scope := range scopes {
		for n := range names {
			if b, _, ok := nearest(scope, n); ok {
				out.NameInScope.Insert(facts.NameInScope{
					File: file, Scope: scope, Name: n,
					DeclaredIn: b.id, Span: b.span, Implicit: b.implicit,
				}, file)
			}
		}
	}
}

func opaqueScopes(scopes map[facts.ScopeID]*scopeInfo, root facts.ScopeID) map[facts.ScopeID]bool {
	opaque := make(map[facts.ScopeID]bool, len(scopes))
	var mark func(facts.ScopeID, bool)
	mark = func(id facts.ScopeID, inherited bool) {
		info := scopes[id]
		this := inherited || info.kind.Opaque() || info.opaque
		opaque[id] = this
		for _, c := range info.children {
			mark(c, this)
		}
	}
	mark(root, false)
	return opaque
}

func emitNameUseFacts(out *Derived, file facts.FileID, in *store.Store,
	nearest func(facts.ScopeID, ident.Name) (binder, facts.ScopeID, bool),
	opaque map[facts.ScopeID]bool,
	typeofInner map[facts.ExprID]facts.TypeofOperand,
	funcLevelOf map[facts.ScopeID]facts.ScopeID) {

	for _, ref := range in.NameRefs.Snapshot() {
		if ref.File != file {
			continue
		}
		suppressed := opaque[ref.Scope]
		b, atScope, found := nearest(ref.Scope, ref.Name)
		if found {
			// Rule 9: a TDZ violation only fires when the use and the
			// binder share the same function-level scope — a closure that
			// captures an outer `let` declared later in the same function
			// is not statically an error, since the closure may run after
			// the declaration executes.
			sameFuncLevel := funcLevelOf[ref.Scope] == funcLevelOf[atScope]
			if b.kind.HasTDZ() && sameFuncLevel && b.span.Start > ref.Span.Start && !suppressed {
				out.UseBeforeDecl.Insert(facts.VarUseBeforeDeclaration{
					File: file, Name: ref.Name, UsedAt: ref.Span, DeclaredAt: b.span,
				}, file)
			}
			continue
		}

		if t, isTypeof := typeofInner[ref.Expr]; isTypeof {
			if !suppressed {
				out.TypeofUndef.Insert(facts.TypeofUndefinedAlwaysUndefined{
					File: file, WholeSpan: t.WholeSpan, OperandSpan: ref.Span,
				}, file)
			}
			continue
		}

		if !suppressed {
			out.InvalidNameUse.Insert(facts.InvalidNameUse{
				File: file, Name: ref.Name, UseSpan: ref.Span, Scope: ref.Scope,
			}, file)
		}
	}
}

// scopeReachIndex turns the already-emitted ScopeReach rows for file into an
// ancestor -> set-of-descendants index, used by the "used/referenced from
// within reach" joins below.
func scopeReachIndex(out *Derived, file facts.FileID) map[facts.ScopeID]map[facts.ScopeID]bool {
	reach := make(map[facts.ScopeID]map[facts.ScopeID]bool)
	for _, row := range out.ScopeReach.Snapshot() {
		if row.File != file {
			continue
		}
		m, ok := reach[row.Ancestor]
		if !ok {
			m = make(map[facts.ScopeID]bool)
			reach[row.Ancestor] = m
		}
		m[row.Descendant] = true
	}
	return reach
}

func emitUnusedVariable(out *Derived, file facts.FileID, in *store.Store,
	localBinders map[facts.ScopeID]map[ident.Name]binder,
	scopes map[facts.ScopeID]*scopeInfo, root facts.ScopeID) {

	reach := scopeReachIndex(out, file)

	refsByName := make(map[ident.Name][]facts.ScopeID)
	for _, ref := range in.NameRefs.Snapshot() {
		if ref.File != file {
			continue
		}
		refsByName[ref.Name] = append(refsByName[ref.Name], ref.Scope)
	}

	usedFrom := func(scope facts.ScopeID, name ident.Name) bool {
		r := reach[scope]
		for _, s := range refsByName[name] {
			if r[s] {
				return true
			}
		}
		return false
	}

	for scope, byName := range localBinders {
		for name, b := range byName {
			if b.kind == facts.DeclImplicitGlobal || b.kind == facts.DeclLabel {
				continue
			}
			if b.exported {
				continue
			}
			if usedFrom(scope, name) {
				continue
			}
			out.UnusedVariable.Insert(facts.UnusedVariable{File: file, Name: name, Span: b.span}, file)
		}
	}
}

func emitUnusedLabel(out *Derived, file facts.FileID, in *store.Store, scopes map[facts.ScopeID]*scopeInfo, root facts.ScopeID) {
	reach := scopeReachIndex(out, file)

	usesByLabel := make(map[ident.Name][]facts.ScopeID)
	for _, u := range in.LabelUses.Snapshot() {
		if u.File != file {
			continue
		}
		usesByLabel[u.Name] = append(usesByLabel[u.Name], u.Scope)
	}

	for _, l := range in.Labels.Snapshot() {
		if l.File != file {
			continue
		}
		used := false
		r := reach[l.Scope]
		for _, s := range usesByLabel[l.Name] {
			if r[s] {
				used = true
				break
			}
		}
		if !used {
			out.UnusedLabel.Insert(facts.UnusedLabel{File: file, Label: l.Name, Span: l.Span}, file)
		}
	}
}

func emitShadowedVariable(out *Derived, file facts.FileID, scopes map[facts.ScopeID]*scopeInfo, root facts.ScopeID,
	localBinders map[facts.ScopeID]map[ident.Name]binder, cfg Config) {

	hoisted := func(k facts.DeclKind) bool { return k == facts.DeclVar || k == facts.DeclFunction }

	participates := func(k facts.DeclKind) bool {
		switch cfg.ShadowHoisting {
		case HoistingAlways:
			return true
		case HoistingFunctions:
			return !hoisted(k) || k == facts.DeclFunction
		default: // HoistingNever
			return !hoisted(k)
		}
	}

	var walk func(id facts.ScopeID, visible map[ident.Name]binder)
	walk = func(id facts.ScopeID, visible map[ident.Name]binder) {
		info := scopes[id]
		next := make(map[ident.Name]binder, len(visible))
		for k, v := range visible {
			next[k] = v
		}
		for name, b := range localBinders[id] {
			if !participates(b.kind) {
				next[name] = b
				continue
			}
			if outer, ok := visible[name]; ok && participates(outer.kind) {
				out.Shadowed.Insert(facts.ShadowedVariable{
					File: file, Name: name, OuterSpan: outer.span, InnerSpan: b.span,
				}, file)
			}
			next[name] = b
		}
		for _, c := range info.children {
			walk(c, next)
		}
	}
	walk(root, make(map[ident.Name]binder))
}
