package envdiff_test

import (
	"testing"

	"github.com/hbjs97/denv/internal/config"
	"github.com/hbjs97/denv/internal/envdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opsByKey(ops []envdiff.Op) map[string]envdiff.Op {
	m := make(map[string]envdiff.Op, len(ops))
	for _, op := range ops {
		m[op.Key] = op
	}
	return m
}

func TestCompute_EnterDirectory(t *testing.T) {
	t.Parallel()

	cfg := &config.DirConfig{
		Env:  map[string]string{"FOO": "bar", "BAZ": "qux"},
		Path: []string{"bin"},
	}
	environ := map[string]string{
		"FOO":  "old",
		"PATH": "/usr/bin:/bin",
	}

	ops, next := envdiff.Compute(cfg, "/proj", environ, nil)
	byKey := opsByKey(ops)

	assert.Equal(t, "bar", byKey["FOO"].Value)
	assert.Equal(t, "qux", byKey["BAZ"].Value)
	assert.Equal(t, "/proj/bin:/usr/bin:/bin", byKey["PATH"].Value)

	// The journal remembers the original values for restore:
	// FOO existed, BAZ did not.
	require.NotNil(t, next.Vars["FOO"])
	assert.Equal(t, "old", *next.Vars["FOO"])
	v, tracked := next.Vars["BAZ"]
	assert.True(t, tracked)
	assert.Nil(t, v)
	assert.Equal(t, []string{"/proj/bin"}, next.Path)
}

func TestCompute_AlreadyAppliedIsNoop(t *testing.T) {
	t.Parallel()

	cfg := &config.DirConfig{Env: map[string]string{"FOO": "bar"}}
	old := "old"
	prev := envdiff.NewJournal()
	prev.Vars["FOO"] = &old
	environ := map[string]string{"FOO": "bar", "PATH": "/usr/bin"}

	ops, next := envdiff.Compute(cfg, "/proj", environ, prev)

	assert.Empty(t, ops)
	// The original value keeps riding in the journal.
	require.NotNil(t, next.Vars["FOO"])
	assert.Equal(t, "old", *next.Vars["FOO"])
}

func TestCompute_LeaveDirectoryRestores(t *testing.T) {
	t.Parallel()

	old := "old"
	prev := envdiff.NewJournal()
	prev.Vars["FOO"] = &old
	prev.Vars["BAZ"] = nil
	prev.Path = []string{"/proj/bin"}
	environ := map[string]string{
		"FOO":  "bar",
		"BAZ":  "qux",
		"PATH": "/proj/bin:/usr/bin",
	}

	ops, next := envdiff.Compute(nil, "", environ, prev)
	byKey := opsByKey(ops)

	// FOO goes back to its original value, BAZ is unset, PATH loses
	// the prepended entry.
	assert.Equal(t, "old", byKey["FOO"].Value)
	assert.True(t, byKey["BAZ"].Unset)
	assert.Equal(t, "/usr/bin", byKey["PATH"].Value)
	assert.True(t, next.Empty())
}

func TestCompute_SwitchDirectory(t *testing.T) {
	t.Parallel()

	old := "old"
	prev := envdiff.NewJournal()
	prev.Vars["FOO"] = &old
	cfg := &config.DirConfig{Env: map[string]string{"BAR": "two"}}
	environ := map[string]string{"FOO": "one", "PATH": "/usr/bin"}

	ops, next := envdiff.Compute(cfg, "/other", environ, prev)
	byKey := opsByKey(ops)

	// The old directory's var is restored, the new one's is applied.
	assert.Equal(t, "old", byKey["FOO"].Value)
	assert.Equal(t, "two", byKey["BAR"].Value)
	_, tracked := next.Vars["FOO"]
	assert.False(t, tracked)
	_, tracked = next.Vars["BAR"]
	assert.True(t, tracked)
}

func TestCompute_PathPrependIdempotent(t *testing.T) {
	t.Parallel()

	cfg := &config.DirConfig{Path: []string{"/proj/bin"}}
	prev := envdiff.NewJournal()
	prev.Path = []string{"/proj/bin"}
	environ := map[string]string{"PATH": "/proj/bin:/usr/bin"}

	ops, next := envdiff.Compute(cfg, "/proj", environ, prev)

	// Re-entering the same config produces no PATH churn.
	assert.Empty(t, ops)
	assert.Equal(t, []string{"/proj/bin"}, next.Path)
}

func TestCompute_PathDedupe(t *testing.T) {
	t.Parallel()

	cfg := &config.DirConfig{Path: []string{"/usr/bin", "/proj/bin"}}
	environ := map[string]string{"PATH": "/usr/bin:/bin"}

	ops, _ := envdiff.Compute(cfg, "/proj", environ, nil)
	byKey := opsByKey(ops)

	// /usr/bin is already present and is not duplicated.
	assert.Equal(t, "/usr/bin:/proj/bin:/bin", byKey["PATH"].Value)
}

func TestCompute_DeterministicOrder(t *testing.T) {
	t.Parallel()

	cfg := &config.DirConfig{Env: map[string]string{"B": "2", "A": "1", "C": "3"}}
	environ := map[string]string{"PATH": "/usr/bin"}

	ops, _ := envdiff.Compute(cfg, "/proj", environ, nil)

	keys := make([]string, 0, len(ops))
	for _, op := range ops {
		keys = append(keys, op.Key)
	}
	assert.Equal(t, []string{"A", "B", "C"}, keys)
}

func TestJournal_EncodeDecode(t *testing.T) {
	t.Parallel()

	old := "old"
	j := envdiff.NewJournal()
	j.Vars["FOO"] = &old
	j.Vars["BAZ"] = nil
	j.Path = []string{"/proj/bin"}

	encoded, err := j.Encode()
	require.NoError(t, err)

	got, err := envdiff.DecodeJournal(encoded)
	require.NoError(t, err)
	require.NotNil(t, got.Vars["FOO"])
	assert.Equal(t, "old", *got.Vars["FOO"])
	v, tracked := got.Vars["BAZ"]
	assert.True(t, tracked)
	assert.Nil(t, v)
	assert.Equal(t, []string{"/proj/bin"}, got.Path)
}

func TestDecodeJournal_Empty(t *testing.T) {
	t.Parallel()

	j, err := envdiff.DecodeJournal("")
	require.NoError(t, err)
	assert.True(t, j.Empty())
}

func TestDecodeJournal_Corrupt(t *testing.T) {
	t.Parallel()

	// A corrupt journal yields an error plus a usable empty journal.
	j, err := envdiff.DecodeJournal("not-base64!!!")
	assert.Error(t, err)
	require.NotNil(t, j)
	assert.True(t, j.Empty())
}
