package hook_test

import (
	"testing"

	"github.com/hbjs97/denv/internal/hook"
	"github.com/hbjs97/denv/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"prompt", "cd", "preexec"} {
		ev, err := hook.ParseEvent(s)
		require.NoError(t, err)
		assert.Equal(t, hook.TriggerEvent(s), ev)
	}

	_, err := hook.ParseEvent("chpwd")
	assert.Error(t, err)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		mode hook.Mode
		ok   bool
	}{
		{"", hook.ModeDefault, true},
		{"default", hook.ModeDefault, true},
		{"defer", hook.ModeDefer, true},
		{"off", hook.ModeOff, true},
		{"aggressive", hook.ModeDefault, false},
	}
	for _, tt := range tests {
		mode, ok := hook.ParseMode(tt.in)
		assert.Equal(t, tt.mode, mode, "input %q", tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
	}
}

func TestNewSession_StaticBindings(t *testing.T) {
	t.Parallel()

	s := hook.NewSession(hook.ModeDefault)
	assert.True(t, s.HasBinding(hook.PromptDisplayed))
	assert.True(t, s.HasBinding(hook.PreCommandExecution))
	assert.False(t, s.HasBinding(hook.DirectoryChanged))
}

func TestSession_BindingSetSemantics(t *testing.T) {
	t.Parallel()

	s := hook.NewSession(hook.ModeDefault)
	s.InstallBinding(hook.DirectoryChanged)
	s.InstallBinding(hook.DirectoryChanged) // re-register, not duplicate
	assert.True(t, s.HasBinding(hook.DirectoryChanged))

	s.RemoveBinding(hook.DirectoryChanged)
	assert.False(t, s.HasBinding(hook.DirectoryChanged))

	// Removing an absent binding is a no-op.
	s.RemoveBinding(hook.DirectoryChanged)
	assert.False(t, s.HasBinding(hook.DirectoryChanged))
}

func TestSessionFromEnv(t *testing.T) {
	t.Parallel()

	s := hook.SessionFromEnv(testutil.Env(map[string]string{
		hook.EnvMode:    "defer",
		hook.EnvPending: "1",
		hook.EnvWatch:   "1",
	}))
	assert.Equal(t, hook.ModeDefer, s.Mode)
	assert.True(t, s.PendingReeval)
	assert.True(t, s.HasBinding(hook.DirectoryChanged))

	empty := hook.SessionFromEnv(testutil.Env(nil))
	assert.Equal(t, hook.ModeDefault, empty.Mode)
	assert.False(t, empty.PendingReeval)
	assert.False(t, empty.HasBinding(hook.DirectoryChanged))
}
