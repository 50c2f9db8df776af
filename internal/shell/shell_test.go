package shell_test

import (
	"strings"
	"testing"

	"github.com/hbjs97/denv/internal/hook"
	"github.com/hbjs97/denv/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOpts(mode hook.Mode) shell.ActivateOptions {
	return shell.ActivateOptions{
		BinPath:    "/usr/local/bin/denv",
		InstallDir: "/usr/local/bin",
		Mode:       mode,
		SessionID:  "sess-1234",
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	for _, name := range shell.Names() {
		d, err := shell.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}

	_, err := shell.Get("powershell")
	assert.ErrorIs(t, err, shell.ErrUnsupported)
}

func TestActivate_Deterministic(t *testing.T) {
	t.Parallel()

	// Same inputs always render the same script, so a double load
	// re-registers the same bindings instead of stacking new ones.
	for _, name := range shell.Names() {
		d, err := shell.Get(name)
		require.NoError(t, err)
		assert.Equal(t, d.Activate(testOpts(hook.ModeDefault)), d.Activate(testOpts(hook.ModeDefault)), name)
	}
}

func TestZshActivate(t *testing.T) {
	t.Parallel()

	script := shell.Zsh{}.Activate(testOpts(hook.ModeDefault))

	// PATH guard before prepend, session export, hook registrations.
	assert.Contains(t, script, `case ":$PATH:"`)
	assert.Contains(t, script, "export __DENV_SESSION='sess-1234'")
	assert.Contains(t, script, "add-zsh-hook precmd _denv_prompt")
	assert.Contains(t, script, "add-zsh-hook preexec _denv_preexec")
	assert.Contains(t, script, "hook-env --shell zsh")
	// Initial sync at the end of activation.
	assert.True(t, strings.HasSuffix(script, "_denv_prompt\n"))
	// chpwd is not registered statically; the watch binding is dynamic.
	assert.NotContains(t, script, "add-zsh-hook chpwd")
}

func TestZshActivate_DeferMode(t *testing.T) {
	t.Parallel()

	script := shell.Zsh{}.Activate(testOpts(hook.ModeDefer))
	// Defer mode bakes the flag set into the chpwd body, no fork per cd.
	assert.Contains(t, script, "export __DENV_PENDING=1")
	def := shell.Zsh{}.Activate(testOpts(hook.ModeDefault))
	assert.Contains(t, def, "_denv_hook_env cd")
}

func TestZshSyntax(t *testing.T) {
	t.Parallel()

	z := shell.Zsh{}
	assert.Equal(t, "export FOO='a b'\n", z.Export("FOO", "a b"))
	assert.Equal(t, `export FOO='it'\''s'`+"\n", z.Export("FOO", "it's"))
	assert.Equal(t, "unset FOO\n", z.Unset("FOO"))
	assert.Equal(t, "echo ''\n", z.BlankLine())
	assert.Equal(t, "add-zsh-hook chpwd _denv_chpwd\n", z.WatchOn())
	assert.Equal(t, "add-zsh-hook -d chpwd _denv_chpwd\n", z.WatchOff())
}

func TestBashActivate(t *testing.T) {
	t.Parallel()

	script := shell.Bash{}.Activate(testOpts(hook.ModeDefault))

	// PROMPT_COMMAND registration is guarded against double load.
	assert.Contains(t, script, `case ";$PROMPT_COMMAND;"`)
	assert.Contains(t, script, "trap '_denv_preexec' DEBUG")
	// chpwd is emulated by comparing $PWD inside the prompt hook,
	// gated on the watch flag.
	assert.Contains(t, script, `"$PWD" != "$__DENV_LAST_PWD"`)
	assert.Contains(t, script, "__DENV_WATCH")
}

func TestBashWatchIsFlagOnly(t *testing.T) {
	t.Parallel()

	// The watch flag itself is the binding in bash.
	assert.Empty(t, shell.Bash{}.WatchOn())
	assert.Empty(t, shell.Bash{}.WatchOff())
}

func TestFishActivate(t *testing.T) {
	t.Parallel()

	script := shell.Fish{}.Activate(testOpts(hook.ModeDefault))

	assert.Contains(t, script, "if not contains -- '/usr/local/bin' $PATH")
	assert.Contains(t, script, "set -gx __DENV_SESSION 'sess-1234'")
	assert.Contains(t, script, "--on-event fish_prompt")
	assert.Contains(t, script, "--on-event fish_preexec")
	assert.NotContains(t, script, "--on-variable PWD")
}

func TestFishSyntax(t *testing.T) {
	t.Parallel()

	f := shell.Fish{}
	assert.Equal(t, "set -gx FOO 'a b'\n", f.Export("FOO", "a b"))
	assert.Equal(t, `set -gx FOO 'it\'s'`+"\n", f.Export("FOO", "it's"))
	assert.Equal(t, "set -e FOO\n", f.Unset("FOO"))
	assert.Contains(t, f.WatchOn(), "--on-variable PWD")
	assert.Equal(t, "functions -e _denv_chpwd\n", f.WatchOff())
}

func TestXonshActivate(t *testing.T) {
	t.Parallel()

	script := shell.Xonsh{}.Activate(testOpts(hook.ModeDefault))

	assert.Contains(t, script, "from xonsh.built_ins import XSH")
	assert.Contains(t, script, "_denv_register('on_pre_prompt', _denv_prompt)")
	assert.Contains(t, script, "_denv_register('on_precommand', _denv_preexec)")
	// on_chdir is dynamic, not part of activation.
	assert.NotContains(t, script, "_denv_register('on_chdir'")
	// Handler registration dedupes by __name__, so a double load is safe.
	assert.Contains(t, script, "__name__")
}

func TestXonshExport_PathVarsAsList(t *testing.T) {
	t.Parallel()

	x := shell.Xonsh{}
	assert.Equal(t, "$PATH = ['/a', '/b']\n", x.Export("PATH", "/a:/b"))
	assert.Equal(t, "$FOO = 'bar'\n", x.Export("FOO", "bar"))
	assert.Equal(t, `$FOO = 'it\'s'`+"\n", x.Export("FOO", "it's"))
	assert.Equal(t, "del $FOO\n", x.Unset("FOO"))
}

func TestRenderActions(t *testing.T) {
	t.Parallel()

	z := shell.Zsh{}

	out := shell.RenderActions(z, hook.Actions{
		Eval:         "export FOO='bar'",
		BlankLine:    true,
		ClearPending: true,
		RemoveWatch:  true,
	})

	// Eval first, then alignment blank line, then state updates.
	assert.Equal(t, "export FOO='bar'\n"+
		"echo ''\n"+
		"unset __DENV_PENDING\n"+
		"add-zsh-hook -d chpwd _denv_chpwd\n"+
		"unset __DENV_WATCH\n", out)
}

func TestRenderActions_InstallWatch(t *testing.T) {
	t.Parallel()

	out := shell.RenderActions(shell.Zsh{}, hook.Actions{InstallWatch: true})
	assert.Equal(t, "add-zsh-hook chpwd _denv_chpwd\nexport __DENV_WATCH='1'\n", out)

	out = shell.RenderActions(shell.Zsh{}, hook.Actions{SetPending: true})
	assert.Equal(t, "export __DENV_PENDING='1'\n", out)
}

func TestRenderActions_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shell.RenderActions(shell.Zsh{}, hook.Actions{}))
}
