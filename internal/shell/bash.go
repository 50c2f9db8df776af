package shell

import (
	"fmt"

	"github.com/hbjs97/denv/internal/hook"
)

// Bash는 bash dialect 어댑터다. bash에는 chpwd/preexec 원형이 없어
// 디렉토리 변경은 PROMPT_COMMAND 안의 $PWD 비교로, 명령 실행 전
// 이벤트는 DEBUG trap으로 근사한다 (문서화된 허용 근사).
type Bash struct{}

// Name은 dialect 이름을 반환한다.
func (Bash) Name() string { return "bash" }

// Activate는 bash 활성화 스크립트를 만든다. PROMPT_COMMAND 등록은
// 부분 문자열 검사로, DEBUG trap은 덮어쓰기로 멱등이다.
func (Bash) Activate(opts ActivateOptions) string {
	chpwdBody := "_denv_hook_env cd"
	switch opts.Mode {
	case hook.ModeDefer:
		chpwdBody = "export " + hook.EnvPending + "=1"
	}

	return fmt.Sprintf(`# denv shell integration (bash)
case ":$PATH:" in
  *:%[1]s:*) ;;
  *) export PATH=%[1]s":$PATH" ;;
esac
export %[4]s=%[3]s

_denv_hook_env() {
  local __denv_out
  __denv_out="$(%[2]s hook-env --shell bash --event "$1")" || return 0
  [ -n "$__denv_out" ] && eval "$__denv_out"
  return 0
}

_denv_prompt() {
  if [ -n "$%[7]s" ] && [ "$PWD" != "$__DENV_LAST_PWD" ]; then
    %[5]s
  fi
  _denv_hook_env prompt
  __DENV_LAST_PWD="$PWD"
}

_denv_preexec() {
  [ -n "$COMP_LINE" ] && return 0
  [ "$BASH_COMMAND" = "$PROMPT_COMMAND" ] && return 0
  case "$BASH_COMMAND" in _denv_*) return 0 ;; esac
  if [ -n "$%[6]s" ] || [ -n "$%[7]s" ]; then
    _denv_hook_env preexec
  fi
  return 0
}

case ";$PROMPT_COMMAND;" in
  *";_denv_prompt;"*) ;;
  *) PROMPT_COMMAND="_denv_prompt${PROMPT_COMMAND:+;$PROMPT_COMMAND}" ;;
esac
trap '_denv_preexec' DEBUG
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
func (Bash) Deactivate() string {
	return fmt.Sprintf(`PROMPT_COMMAND="${PROMPT_COMMAND//_denv_prompt;/}"
PROMPT_COMMAND="${PROMPT_COMMAND//_denv_prompt/}"
trap - DEBUG
unset -f _denv_hook_env _denv_prompt _denv_preexec 2>/dev/null
unset %s %s %s __DENV_LAST_PWD
`, hook.EnvSession, hook.EnvPending, hook.EnvWatch)
}

// Export는 export 구문을 렌더링한다.
func (Bash) Export(key, value string) string {
	return fmt.Sprintf("export %s=%s\n", key, posixQuote(value))
}

// Unset은 unset 구문을 렌더링한다.
func (Bash) Unset(key string) string {
	return fmt.Sprintf("unset %s\n", key)
}

// BlankLine는 빈 줄 출력 구문이다.
func (Bash) BlankLine() string { return "echo ''\n" }

// WatchOn/WatchOff: bash의 감시 binding 실체는 __DENV_WATCH 플래그
// 자체다 (프롬프트 hook이 플래그를 보고 $PWD 비교를 수행).
// RenderActions가 플래그를 갱신하므로 별도 구문이 없다.
func (Bash) WatchOn() string { return "" }

// WatchOff는 WatchOn 참조.
func (Bash) WatchOff() string { return "" }
