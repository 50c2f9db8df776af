package state_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hbjs97/denv/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	st := state.NewStore(filepath.Join(t.TempDir(), "sessions"))
	sess := &state.Session{
		SessionID:  "sess-1",
		LastDir:    "/work/proj",
		ConfigPath: "/work/proj/denv.toml",
		Journal:    "abc",
	}
	require.NoError(t, st.Save(sess))

	got := st.Load("sess-1")
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Version)
	assert.Equal(t, "/work/proj", got.LastDir)
	assert.Equal(t, "abc", got.Journal)
	assert.NotEmpty(t, got.SavedAt)
}

func TestStore_SaveFilePermissions(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "sessions")
	st := state.NewStore(dir)
	require.NoError(t, st.Save(&state.Session{SessionID: "sess-1"}))

	info, err := os.Stat(filepath.Join(dir, "sess-1.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestStore_SaveWithoutID(t *testing.T) {
	t.Parallel()

	st := state.NewStore(t.TempDir())
	assert.Error(t, st.Save(&state.Session{}))
}

func TestStore_LoadMissing(t *testing.T) {
	t.Parallel()

	st := state.NewStore(t.TempDir())
	assert.Nil(t, st.Load("nope"))
	assert.Nil(t, st.Load(""))
}

func TestStore_LoadCorrupt(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{broken"), 0600))

	st := state.NewStore(dir)
	assert.Nil(t, st.Load("bad"))
}

func TestSession_Fresh(t *testing.T) {
	t.Parallel()

	mod := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	sess := &state.Session{
		LastDir:    "/work/proj",
		ConfigPath: "/work/proj/denv.toml",
		ConfigMod:  mod.Format(time.RFC3339),
		Journal:    "abc",
	}

	assert.True(t, sess.Fresh("/work/proj", "/work/proj/denv.toml", mod, "abc"))
	assert.False(t, sess.Fresh("/work/other", "/work/proj/denv.toml", mod, "abc"))
	assert.False(t, sess.Fresh("/work/proj", "/work/proj/denv.toml", mod.Add(time.Second), "abc"))
	assert.False(t, sess.Fresh("/work/proj", "/work/proj/denv.toml", mod, "xyz"))

	// nil receiver is always stale.
	var none *state.Session
	assert.False(t, none.Fresh("/work/proj", "", time.Time{}, ""))
}

func TestSession_FreshWithoutConfig(t *testing.T) {
	t.Parallel()

	sess := &state.Session{LastDir: "/work/proj"}
	// No config file means mtime is irrelevant.
	assert.True(t, sess.Fresh("/work/proj", "", time.Now(), ""))
}

func TestStore_Prune(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	oldFile := filepath.Join(dir, "old.json")
	newFile := filepath.Join(dir, "new.json")
	require.NoError(t, os.WriteFile(oldFile, []byte("{}"), 0600))
	require.NoError(t, os.WriteFile(newFile, []byte("{}"), 0600))
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(oldFile, stale, stale))

	st := state.NewStore(dir)
	require.NoError(t, st.Prune(24*time.Hour))

	_, err := os.Stat(oldFile)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(newFile)
	assert.NoError(t, err)
}

func TestStore_PruneMissingDir(t *testing.T) {
	t.Parallel()

	st := state.NewStore(filepath.Join(t.TempDir(), "nope"))
	assert.NoError(t, st.Prune(time.Hour))
}
