// Package query is the engine's external surface (component F): it owns
// the input store and derived relations, serializes commits behind one
// mutex, and hands out lock-free read snapshots. Everything above it — the
// globals injector, the lint extractor, the debug CLI — talks to the
// engine only through an *Engine.
package query

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jsscope/core/cst"
	"github.com/jsscope/core/engine"
	"github.com/jsscope/core/extract"
	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/ident"
	"github.com/jsscope/core/store"
)

// Engine is the query and subscription layer described by component F: a
// single mutex serializes commits, while Outputs hands out an immutable
// snapshot readers can use without ever touching that mutex again.
type Engine struct {
	mu       sync.Mutex
	store    *store.Store
	derived  *engine.Derived
	cfg      engine.Config
	interner *ident.Interner
	log      zerolog.Logger

	kinds        map[facts.FileID]extract.FileKind
	globalGroups map[facts.FileID]map[string]struct{}
}

// New returns an empty Engine. cfg governs the shadow-hoisting behavior of
// every file's recompute; logger receives a structured event at every
// commit boundary (including rolled-back ones).
func New(cfg engine.Config, logger zerolog.Logger) *Engine {
	return &Engine{
		store:        store.New(),
		derived:      engine.NewDerived(),
		cfg:          cfg,
		interner:     ident.New(),
		log:          logger,
		kinds:        make(map[facts.FileID]extract.FileKind),
		globalGroups: make(map[facts.FileID]map[string]struct{}),
	}
}

// Analyze extracts root and commits the result as file's entire content,
// replacing whatever file previously held. Extraction itself runs outside
// the commit mutex (it is pure CPU over an immutable CST); only the
// store/derived mutation is serialized.
func (e *Engine) Analyze(file facts.FileID, root cst.Node, kind extract.FileKind) error {
	x := extract.New(file, kind, e.interner)
	batch, extractErr := x.Walk(root)
	if extractErr != nil {
		e.log.Warn().Err(extractErr).Uint32("file", uint32(file)).
			Msg("extraction aborted on one or more subtrees; isolated and continuing")
	}
	return e.commitFile(file, kind, batch)
}

// AnalyzeAll extracts every input concurrently (bounded by errgroup's
// default unlimited fan-out, since extraction is pure CPU with no shared
// mutable state across files) and then commits each result in order,
// reacquiring the commit mutex per file so a concurrent caller's single
// Analyze is never starved behind the whole batch. Every file is attempted
// even if an earlier one fails to commit; all commit failures are
// aggregated into one error rather than reporting only the first, since a
// caller batching many files wants to know which ones failed, not just
// that at least one did.
func (e *Engine) AnalyzeAll(ctx context.Context, inputs []FileInput) error {
	type extracted struct {
		file  facts.FileID
		kind  extract.FileKind
		batch *store.Batch
	}
	results := make([]extracted, len(inputs))

	g, _ := errgroup.WithContext(ctx)
	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			x := extract.New(in.File, in.Kind, e.interner)
			batch, extractErr := x.Walk(in.Root)
			if extractErr != nil {
				e.log.Warn().Err(extractErr).Uint32("file", uint32(in.File)).
					Msg("extraction aborted on one or more subtrees; isolated and continuing")
			}
			results[i] = extracted{file: in.File, kind: in.Kind, batch: batch}
			return nil
		})
	}
	_ = g.Wait() // extraction errors are already logged per-file above, never fatal to the group

	var merr *multierror.Error
	for _, r := range results {
		if err := e.commitFile(r.file, r.kind, r.batch); err != nil {
			merr = multierror.Append(merr, fmt.Errorf("file %d: %w", r.file, err))
		}
	}
	return merr.ErrorOrNil()
}

// FileInput pairs a file with the CST to analyze and the semantics
// (script/module) it should be extracted under, for AnalyzeAll.
type FileInput struct {
	File facts.FileID
	Root cst.Node
	Kind extract.FileKind
}

// commitFile is the one place that mutates e.store/e.derived. It preserves
// any globals previously injected into file (those rows belong to the
// globals injector, not to this extraction) across the replace, applies
// the new batch, and recomputes file's derived relations; a
// TransactionFailed recompute rolls the whole file back to empty rather
// than leaving a half-derived state visible to readers.
func (e *Engine) commitFile(file facts.FileID, kind extract.FileKind, batch *store.Batch) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	preserved := filterByFile(e.store.Globals.Snapshot(), file, func(r facts.ImplicitGlobal) facts.FileID { return r.File })

	e.store.ClearFile(file)
	e.derived.ClearFile(file)
	e.store.Apply(batch)
	for _, g := range preserved {
		e.store.Globals.Insert(g, file)
	}

	if err := e.recomputeLocked(file); err != nil {
		delete(e.kinds, file)
		return err
	}

	e.kinds[file] = kind
	e.log.Debug().Uint32("file", uint32(file)).Msg("commit applied")
	return nil
}

// recomputeLocked runs engine.Recompute for file and, on failure, rolls
// the file back to empty so no reader ever observes a half-derived state.
// Callers must hold e.mu.
func (e *Engine) recomputeLocked(file facts.FileID) error {
	if err := engine.Recompute(e.store, e.derived, e.cfg, file); err != nil {
		e.store.ClearFile(file)
		e.derived.ClearFile(file)
		e.log.Error().Err(err).Uint32("file", uint32(file)).Msg("commit rolled back")
		return err
	}
	return nil
}

// Purge clears every row belonging to file, input and derived alike
// (universal property 1: no trace of file survives a purge). Purging a
// file that was never registered is a silent no-op, matching UnknownFile's
// "empty result, not an error" treatment elsewhere in this layer.
func (e *Engine) Purge(file facts.FileID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.store.ClearFile(file)
	e.derived.ClearFile(file)
	delete(e.kinds, file)
	delete(e.globalGroups, file)
}

// Outputs returns a frozen snapshot of every derived relation, safe to
// read from after this call returns without any further locking.
func (e *Engine) Outputs() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{
		childScope:     e.derived.ChildScope.Snapshot(),
		scopeReach:     e.derived.ScopeReach.Snapshot(),
		funcLevelScope: e.derived.FunctionLevelScope.Snapshot(),
		nameInScope:    e.derived.NameInScope.Snapshot(),
		invalidNameUse: e.derived.InvalidNameUse.Snapshot(),
		useBeforeDecl:  e.derived.UseBeforeDecl.Snapshot(),
		unusedVariable: e.derived.UnusedVariable.Snapshot(),
		unusedLabel:    e.derived.UnusedLabel.Snapshot(),
		typeofUndef:    e.derived.TypeofUndef.Snapshot(),
		shadowed:       e.derived.Shadowed.Snapshot(),
	}
}

// Interner returns the identifier interner backing every Name on every
// relation this Engine produces, so a caller projecting rows into
// human-readable records (lint.Project) can turn a Name back into text.
func (e *Engine) Interner() *ident.Interner { return e.interner }

// Known reports whether file has ever been successfully analyzed and not
// since purged — the distinction lint.Project and Lookup-style callers
// need to tell "file genuinely has zero lints" from "file was never
// registered" (UnknownFile), both of which otherwise look like an empty
// slice.
func (e *Engine) Known(file facts.FileID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.kinds[file]
	return ok
}
