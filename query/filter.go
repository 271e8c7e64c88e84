package query

import "github.com/jsscope/core/facts"

// filterByFile returns the subset of rows whose file (as extracted by
// fileOf) equals file, preserving relative order. Every typed accessor on
// Snapshot is a one-line call into this.
func filterByFile[T any](rows []T, file facts.FileID, fileOf func(T) facts.FileID) []T {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		if fileOf(r) == file {
			out = append(out, r)
		}
	}
	return out
}
