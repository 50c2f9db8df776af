package shell

import (
	"fmt"

	"github.com/hbjs97/denv/internal/hook"
)

// Zsh는 zsh dialect 어댑터다 (참조 구현). precmd/chpwd/preexec hook이
// 추상 이벤트와 일대일로 대응한다.
type Zsh struct{}

// Name은 dialect 이름을 반환한다.
func (Zsh) Name() string { return "zsh" }

// Activate는 zsh 활성화 스크립트를 만든다. add-zsh-hook은 중복 등록을
// 걸러주므로 두 번 로드해도 binding 집합이 같다.
func (Zsh) Activate(opts ActivateOptions) string {
	chpwdBody := "_denv_hook_env cd"
	switch opts.Mode {
	case hook.ModeDefer:
		chpwdBody = "export " + hook.EnvPending + "=1"
	}

	return fmt.Sprintf(`# denv shell integration (zsh)
case ":$PATH:" in
  *:%[1]s:*) ;;
  *) export PATH=%[1]s":$PATH" ;;
esac
export %[4]s=%[3]s

_denv_hook_env() {
  local __denv_out
  __denv_out="$(%[2]s hook-env --shell zsh --event "$1")" || return 0
  [ -n "$__denv_out" ] && eval "$__denv_out"
  return 0
}

_denv_prompt() {
  _denv_hook_env prompt
}

_denv_chpwd() {
  %[5]s
}

_denv_preexec() {
  if [ -n "$%[6]s" ] || [ -n "$%[7]s" ]; then
    _denv_hook_env preexec
  fi
}

autoload -Uz add-zsh-hook
add-zsh-hook precmd _denv_prompt
add-zsh-hook preexec _denv_preexec
_denv_prompt
`,
		posixQuote(opts.InstallDir),
		posixQuote(opts.BinPath),
		posixQuote(opts.SessionID),
		hook.EnvSession,
		chpwdBody,
		hook.EnvPending,
		hook.EnvWatch,
	)
}

// Deactivate는 등록된 hook과 세션 상태를 제거한다.
func (Zsh) Deactivate() string {
	return fmt.Sprintf(`add-zsh-hook -d precmd _denv_prompt 2>/dev/null
add-zsh-hook -d preexec _denv_preexec 2>/dev/null
add-zsh-hook -d chpwd _denv_chpwd 2>/dev/null
unfunction _denv_hook_env _denv_prompt _denv_chpwd _denv_preexec 2>/dev/null
unset %s %s %s
`, hook.EnvSession, hook.EnvPending, hook.EnvWatch)
}

// Export는 export 구문을 렌더링한다.
func (Zsh) Export(key, value string) string {
	return fmt.Sprintf("export %s=%s\n", key, posixQuote(value))
}

// Unset은 unset 구문을 렌더링한다.
func (Zsh) Unset(key string) string {
	return fmt.Sprintf("unset %s\n", key)
}

// BlankLine는 빈 줄 출력 구문이다.
func (Zsh) BlankLine() string { return "echo ''\n" }

// WatchOn은 chpwd binding을 (재)등록한다.
func (Zsh) WatchOn() string { return "add-zsh-hook chpwd _denv_chpwd\n" }

// WatchOff는 chpwd binding을 철거한다.
func (Zsh) WatchOff() string { return "add-zsh-hook -d chpwd _denv_chpwd\n" }
