// Package store holds the input relations the extractor and globals
// injector write into, as keyed multisets grouped by file so a single file
// can be purged in one pass without touching any other file's rows.
package store

import (
	"github.com/dolthub/swiss"
	"github.com/jsscope/core/facts"
)

// Table is a keyed multiset of rows of one input relation, weighted the
// same way the engine's derived relations are (a row is "present" iff its
// weight is > 0), grouped by file for O(rows in file) purge instead of
// O(rows in store).
type Table[T comparable] struct {
	weights *swiss.Map[T, int]
	byFile  map[facts.FileID]map[T]struct{}
}

// NewTable returns an empty table.
func NewTable[T comparable]() *Table[T] {
	return &Table[T]{
		weights: swiss.NewMap[T, int](64),
		byFile:  make(map[facts.FileID]map[T]struct{}),
	}
}

// Insert adds one occurrence of row, queued for the file it names via
// owner. Safe to call multiple times with an identical row (e.g. the same
// globals table injected twice): weight accumulates, and the row is
// present as long as the accumulated weight is positive.
func (t *Table[T]) Insert(row T, owner facts.FileID) {
	w, _ := t.weights.Get(row)
	t.weights.Put(row, w+1)

	rows, ok := t.byFile[owner]
	if !ok {
		rows = make(map[T]struct{})
		t.byFile[owner] = rows
	}
	rows[row] = struct{}{}
}

// Delete removes one occurrence of row.
func (t *Table[T]) Delete(row T, owner facts.FileID) {
	w, ok := t.weights.Get(row)
	if !ok {
		return
	}
	w--
	if w <= 0 {
		t.weights.Delete(row)
		if rows, ok := t.byFile[owner]; ok {
			delete(rows, row)
			if len(rows) == 0 {
				delete(t.byFile, owner)
			}
		}
	} else {
		t.weights.Put(row, w)
	}
}

// ClearFile removes every row (regardless of weight) belonging to file,
// atomically with respect to the rest of the store from the caller's point
// of view (the caller of store.Store.ClearFile, query.Engine, holds its
// commit mutex around every table's ClearFile call).
func (t *Table[T]) ClearFile(file facts.FileID) {
	rows, ok := t.byFile[file]
	if !ok {
		return
	}
	for row := range rows {
		t.weights.Delete(row)
	}
	delete(t.byFile, file)
}

// Snapshot returns every row currently present (weight > 0), in no
// particular order. The caller must not mutate the table concurrently; the
// engine only calls this while holding query.Engine's commit mutex.
func (t *Table[T]) Snapshot() []T {
	out := make([]T, 0, t.weights.Count())
	t.weights.Iter(func(row T, w int) bool {
		if w > 0 {
			out = append(out, row)
		}
		return false
	})
	return out
}

// Len returns the number of distinct rows with positive weight.
func (t *Table[T]) Len() int {
	n := 0
	t.weights.Iter(func(_ T, w int) bool {
		if w > 0 {
			n++
		}
		return false
	})
	return n
}
