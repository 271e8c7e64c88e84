package query

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/ident"
)

// DumpInput serializes every input-relation row belonging to file as one
// line per row: the relation name, then every field as name=value. This
// is the "optional dump" debugging interface — the one place this layer
// reaches for reflection instead of a typed accessor, because its whole
// point is to print rows nobody wrote a dedicated formatter for yet.
func (e *Engine) DumpInput(file facts.FileID) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var lines []string
	lines = append(lines, dumpRows("InputScope", e.store.Scopes.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("VarDecl", e.store.Vars.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("LexicalDecl", e.store.Lexicals.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("FunctionDecl", e.store.Funcs.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("FunctionArg", e.store.Args.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("ImportClause", e.store.Imports.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("ImplicitGlobal", e.store.Globals.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("LabelDecl", e.store.Labels.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("NameRef", e.store.NameRefs.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("TypeofOperand", e.store.TypeofOps.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("AssignTarget", e.store.AssignTargets.Snapshot(), file, e.interner)...)
	lines = append(lines, dumpRows("LabelUse", e.store.LabelUses.Snapshot(), file, e.interner)...)
	return lines
}

// DumpDerived does the same for every derived relation, reading from a
// frozen Outputs snapshot so it needs no separate locking.
func (e *Engine) DumpDerived(file facts.FileID) []string {
	snap := e.Outputs()
	interner := e.Interner()

	var lines []string
	lines = append(lines, dumpRows("ChildScope", snap.childScope, file, interner)...)
	lines = append(lines, dumpRows("ScopeReach", snap.scopeReach, file, interner)...)
	lines = append(lines, dumpRows("FunctionLevelScope", snap.funcLevelScope, file, interner)...)
	lines = append(lines, dumpRows("NameInScope", snap.nameInScope, file, interner)...)
	lines = append(lines, dumpRows("InvalidNameUse", snap.invalidNameUse, file, interner)...)
	lines = append(lines, dumpRows("VarUseBeforeDeclaration", snap.useBeforeDecl, file, interner)...)
	lines = append(lines, dumpRows("UnusedVariable", snap.unusedVariable, file, interner)...)
	lines = append(lines, dumpRows("UnusedLabel", snap.unusedLabel, file, interner)...)
	lines = append(lines, dumpRows("TypeofUndefinedAlwaysUndefined", snap.typeofUndef, file, interner)...)
	lines = append(lines, dumpRows("ShadowedVariable", snap.shadowed, file, interner)...)
	return lines
}

func dumpRows[T any](relation string, rows []T, file facts.FileID, interner *ident.Interner) []string {
	var lines []string
	for _, row := range rows {
		v := reflect.ValueOf(row)
		fv := v.FieldByName("File")
		if !fv.IsValid() || facts.FileID(fv.Uint()) != file {
			continue
		}

		var b strings.Builder
		b.WriteString(relation)
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			b.WriteByte(' ')
			b.WriteString(t.Field(i).Name)
			b.WriteByte('=')
			b.WriteString(formatField(v.Field(i).Interface(), interner))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func formatField(val interface{}, interner *ident.Interner) string {
	switch v := val.(type) {
	case ident.Name:
		return interner.Text(v)
	case facts.Span:
		return fmt.Sprintf("%d:%d", v.Start, v.End)
	default:
		return fmt.Sprintf("%v", v)
	}
}
