package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jsscope/core/facts"
	"github.com/jsscope/core/store"
)

type fakeRow struct {
	File facts.FileID
	N    int
}

func TestTableWeightedPresence(t *testing.T) {
	tbl := store.NewTable[fakeRow]()
	const file facts.FileID = 1
	row := fakeRow{File: file, N: 1}

	tbl.Insert(row, file)
	tbl.Insert(row, file) // two independent declarations of the "same" row
	assert.Equal(t, 1, tbl.Len())
	assert.Contains(t, tbl.Snapshot(), row)

	tbl.Delete(row, file)
	assert.Equal(t, 1, tbl.Len(), "weight is 1 after one delete, row still present")

	tbl.Delete(row, file)
	assert.Equal(t, 0, tbl.Len(), "weight reaches 0, row no longer present")
	assert.Empty(t, tbl.Snapshot())
}

func TestTableDeleteBelowZeroIsNoop(t *testing.T) {
	tbl := store.NewTable[fakeRow]()
	const file facts.FileID = 1
	row := fakeRow{File: file, N: 1}

	tbl.Delete(row, file) // never inserted
	assert.Equal(t, 0, tbl.Len())

	tbl.Insert(row, file)
	assert.Equal(t, 1, tbl.Len())
}

func TestTableClearFileIsScopedToOwner(t *testing.T) {
	tbl := store.NewTable[fakeRow]()
	const fileA, fileB facts.FileID = 1, 2
	rowA := fakeRow{File: fileA, N: 1}
	rowB := fakeRow{File: fileB, N: 2}

	tbl.Insert(rowA, fileA)
	tbl.Insert(rowB, fileB)
	assert.Equal(t, 2, tbl.Len())

	tbl.ClearFile(fileA)
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, []fakeRow{rowB}, tbl.Snapshot())

	// Clearing an already-cleared (or never-registered) file is a no-op.
	tbl.ClearFile(fileA)
	assert.Equal(t, 1, tbl.Len())
}
