package query

import "github.com/cockroachdb/errors"

// ErrConfigConflict is the sentinel cause wrapped around a globals
// injection that changed the active group set for a file without an
// intervening ClearGlobals. Per spec it is not fatal: the union of the old
// and new groups is what ends up injected, and the caller is only warned.
var ErrConfigConflict = errors.New("query: globals injected without prior clear; union applied")

func configConflictf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrConfigConflict, format, args...)
}
