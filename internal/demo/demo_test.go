package demo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsscope/core/cst"
	"github.com/jsscope/core/internal/demo"
)

func TestProgramIsAWellFormedTree(t *testing.T) {
	root, file := demo.Program()
	require.Equal(t, demo.File, file)
	require.Equal(t, cst.KindProgram, root.Kind())
	assert.NotEmpty(t, root.Children())

	var walk func(n cst.Node)
	walk = func(n cst.Node) {
		require.NotNil(t, n)
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(root)
}
