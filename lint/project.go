package lint

import (
	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/ident"
	"github.com/jsscope/core/query"
)

// Project turns file's derived relations, as of snap, into a Report,
// skipping any relation cfg disables — the underlying facts were still
// derived (the engine has no knob for that), only their projection is
// conditional. A file snap knows nothing about (one never analyzed, or
// since purged) projects to a Report with every field nil, identical to a
// file with genuinely zero lints; callers that need to tell those apart
// check query.Engine.Known first.
func Project(snap query.Snapshot, interner *ident.Interner, file facts.FileID, cfg Config) Report {
	var r Report

	if cfg.NoUndef {
		for _, row := range snap.InvalidNameUse(file) {
			r.NoUndef = append(r.NoUndef, NoUndef{
				File: row.File,
				Name: interner.Text(row.Name),
				Span: row.UseSpan,
			})
		}
	}

	if cfg.NoUnusedVars {
		for _, row := range snap.UnusedVariable(file) {
			r.NoUnusedVars = append(r.NoUnusedVars, NoUnusedVars{
				File:         row.File,
				Name:         interner.Text(row.Name),
				DeclaredSpan: row.Span,
			})
		}
	}

	if cfg.NoUseBeforeDef {
		for _, row := range snap.UseBeforeDecl(file) {
			r.UseBeforeDef = append(r.UseBeforeDef, UseBeforeDef{
				File:         row.File,
				Name:         interner.Text(row.Name),
				UsedSpan:     row.UsedAt,
				DeclaredSpan: row.DeclaredAt,
			})
		}
	}

	if cfg.NoTypeofUndef {
		for _, row := range snap.TypeofUndef(file) {
			r.TypeofUndef = append(r.TypeofUndef, TypeofUndef{
				File:        row.File,
				WholeSpan:   row.WholeSpan,
				OperandSpan: row.OperandSpan,
			})
		}
	}

	if cfg.NoUnusedLabels {
		for _, row := range snap.UnusedLabel(file) {
			r.UnusedLabel = append(r.UnusedLabel, UnusedLabel{
				File: row.File,
				Name: interner.Text(row.Label),
				Span: row.Span,
			})
		}
	}

	if cfg.NoShadow {
		for _, row := range snap.Shadowed(file) {
			r.ShadowedVariable = append(r.ShadowedVariable, ShadowedVariable{
				File:      row.File,
				Name:      interner.Text(row.Name),
				OuterSpan: row.OuterSpan,
				InnerSpan: row.InnerSpan,
			})
		}
	}

	return r
}
