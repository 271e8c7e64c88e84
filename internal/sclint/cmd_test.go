package sclint

import (
	"bytes"
	"context"
	"testing"

	"github.com/mna/mainer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupsSplitsCommaSeparatedFlag(t *testing.T) {
	c := &Cmd{}
	assert.Nil(t, c.groups())

	c.Group = "builtin,node"
	assert.Equal(t, []string{"builtin", "node"}, c.groups())

	c.Group = "builtin,,node"
	assert.Equal(t, []string{"builtin", "node"}, c.groups(), "empty entries between commas are dropped")
}

func TestValidateRejectsUnknownCommand(t *testing.T) {
	c := &Cmd{}
	c.SetArgs([]string{"bogus"})
	err := c.Validate()
	assert.ErrorContains(t, err, "unknown command")
}

func TestValidateRejectsUnknownGroup(t *testing.T) {
	c := &Cmd{Group: "not-a-real-group"}
	c.SetArgs([]string{"lint"})
	err := c.Validate()
	assert.ErrorContains(t, err, "unknown globals group")
}

func TestValidateRejectsNoCommand(t *testing.T) {
	c := &Cmd{}
	c.SetArgs(nil)
	err := c.Validate()
	assert.Error(t, err)
}

func TestValidateAcceptsKnownCommandAndGroup(t *testing.T) {
	c := &Cmd{Group: "builtin,node"}
	c.SetArgs([]string{"lint"})
	require.NoError(t, c.Validate())
}

func TestLintAndDumpRunAgainstTheBundledSnippet(t *testing.T) {
	c := &Cmd{}
	c.SetArgs([]string{"lint"})
	require.NoError(t, c.Validate())

	var out, errOut bytes.Buffer
	stdio := mainer.Stdio{Stdout: &out, Stderr: &errOut}
	require.NoError(t, c.Lint(context.Background(), stdio, nil))
	assert.NotEmpty(t, out.String())

	d := &Cmd{}
	d.SetArgs([]string{"dump"})
	require.NoError(t, d.Validate())
	var dumpOut, dumpErr bytes.Buffer
	require.NoError(t, d.Dump(context.Background(), mainer.Stdio{Stdout: &dumpOut, Stderr: &dumpErr}, nil))
	assert.NotEmpty(t, dumpOut.String())
}
