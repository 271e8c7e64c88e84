// Package ident interns identifier and label strings into compact, stable
// tokens so the extractor, store and engine never compare or hash raw
// strings on their hot paths.
package ident

import (
	"sync"

	"github.com/dolthub/swiss"
)

// Name is a compact, stable token standing in for an interned string. Two
// Names compare equal iff the strings they were interned from are equal.
// Names are never freed for the lifetime of the Interner.
type Name uint32

// Interner deduplicates strings into Names. It is safe for concurrent use:
// extraction of many files in parallel shares one Interner, synchronized
// internally so callers never need their own lock.
//
// The forward table (string -> Name) uses a swiss-table map, the same
// open-addressing structure used elsewhere in this module for hot-path
// value maps, because the interner's insert-or-lookup is called once per
// identifier occurrence in every file and benefits from that locality.
type Interner struct {
	mu      sync.RWMutex
	byText  *swiss.Map[string, Name]
	byToken []string
}

// New returns an empty Interner.
func New() *Interner {
	return &Interner{
		byText:  swiss.NewMap[string, Name](1024),
		byToken: make([]string, 0, 1024),
	}
}

// Intern returns the Name for s, allocating a new one if s was never seen
// before. Concurrent calls from multiple extraction goroutines are safe.
func (in *Interner) Intern(s string) Name {
	in.mu.RLock()
	if n, ok := in.byText.Get(s); ok {
		in.mu.RUnlock()
		return n
	}
	in.mu.RUnlock()

	in.mu.Lock()
	defer in.mu.Unlock()
	if n, ok := in.byText.Get(s); ok {
		return n
	}
	n := Name(len(in.byToken))
	in.byToken = append(in.byToken, s)
	in.byText.Put(s, n)
	return n
}

// Text returns the original string for a Name. Panics if n was never
// returned by this Interner's Intern method, which would indicate a bug in
// the caller (names are never invalidated, including across file purges).
func (in *Interner) Text(n Name) string {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.byToken[int(n)]
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.byToken)
}
