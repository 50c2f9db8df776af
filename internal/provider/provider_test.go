package provider_test

import (
	"context"
	"errors"
	"testing"

	"github.com/hbjs97/denv/internal/provider"
	"github.com/hbjs97/denv/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecDiff(t *testing.T) {
	t.Parallel()

	fc := testutil.NewFakeCommander()
	fc.Register("envdiff --shell zsh", "export FOO='bar'\n", nil)

	e := provider.NewExec(fc, "envdiff", "--shell", "zsh")
	res, err := e.Diff(context.Background(), "/work/proj")
	require.NoError(t, err)

	assert.Equal(t, "export FOO='bar'\n", res.Text)
	assert.False(t, res.NoChange)
	// The provider runs in the target directory.
	assert.Equal(t, []string{"/work/proj"}, fc.DirCalls)
}

func TestExecDiff_EmptyOutputIsNoChange(t *testing.T) {
	t.Parallel()

	fc := testutil.NewFakeCommander()
	fc.Register("envdiff", "  \n", nil)

	e := provider.NewExec(fc, "envdiff")
	res, err := e.Diff(context.Background(), "/work/proj")
	require.NoError(t, err)
	assert.True(t, res.NoChange)
	assert.Empty(t, res.Text)
}

func TestExecDiff_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("exit status 1")
	fc := testutil.NewFakeCommander()
	fc.Register("envdiff", "", boom)

	e := provider.NewExec(fc, "envdiff")
	_, err := e.Diff(context.Background(), "/work/proj")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "envdiff")
}
