package query

import (
	"github.com/cockroachdb/errors"

	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/globals"
	"github.com/jsscope/core/store"
)

// InjectGlobals adds group's ambient names to file's top scope and
// recomputes file's derived relations to reflect them. file must already
// have been analyzed at least once (InjectGlobals has nowhere to attach
// rows to otherwise); calling it on an unanalyzed file returns a
// "never analyzed" error rather than silently doing nothing, since
// that ordering mistake is a caller bug, unlike a Lookup against an
// unknown file, which is a legitimate "nothing there yet" query.
//
// Re-injecting a group already active for file is idempotent. Injecting a
// second, different group without an intervening ClearGlobals is a
// ConfigConflict: both groups' names end up visible (the union), and the
// conflict is only logged, never returned as an error — per spec this is
// a caller-coordination problem the engine can route around rather than
// one it needs to refuse.
func (e *Engine) InjectGlobals(file facts.FileID, group string) error {
	table, err := globals.Load(group)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.kinds[file]; !ok {
		return errors.Newf("query: inject globals: file %d was never analyzed", file)
	}

	applied := e.globalGroups[file]
	if applied == nil {
		applied = make(map[string]struct{})
		e.globalGroups[file] = applied
	}
	if _, already := applied[group]; !already && len(applied) > 0 {
		e.log.Warn().Err(configConflictf("file %d: group %q injected alongside %v without a prior clear", file, group, groupList(applied))).
			Uint32("file", uint32(file)).Msg("globals config conflict")
	}
	applied[group] = struct{}{}

	top := facts.ScopeID{Counter: 0, File: file}
	b := store.NewBatch()
	globals.Inject(b, file, top, table, e.interner)
	e.store.Apply(b)

	if err := e.recomputeLocked(file); err != nil {
		return err
	}
	e.log.Debug().Uint32("file", uint32(file)).Str("group", group).Msg("globals injected")
	return nil
}

// ClearGlobals removes every ImplicitGlobal row belonging to file (every
// group previously injected, not just one) and recomputes. Callers must
// call this before switching which groups are injected for a file; doing
// so without clearing first produces ErrConfigConflict.
func (e *Engine) ClearGlobals(file facts.FileID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.store.Globals.ClearFile(file)
	delete(e.globalGroups, file)

	if _, ok := e.kinds[file]; !ok {
		return nil
	}
	return e.recomputeLocked(file)
}

func groupList(applied map[string]struct{}) []string {
	out := make([]string, 0, len(applied))
	for g := range applied {
		out = append(out, g)
	}
	return out
}
