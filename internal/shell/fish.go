package shell

import (
	"fmt"
	"strings"

	"github.com/hbjs97/denv/internal/hook"
)

// Fish는 fish dialect 어댑터다. 디렉토리 변경은 --on-variable PWD
// 함수로, 프롬프트/명령 실행 전 이벤트는 fish_prompt/fish_preexec
// 이벤트 함수로 받는다.
type Fish struct{}

// Name은 dialect 이름을 반환한다.
func (Fish) Name() string { return "fish" }

// fishQuote는 값을 fish 단일 인용으로 감싼다. fish의 단일 인용에서는
// 백슬래시와 작은따옴표만 이스케이프 대상이다.
func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}

// Activate는 fish 활성화 스크립트를 만든다. 함수 재정의는 교체이므로
// 두 번 로드해도 binding이 중복되지 않는다.
func (Fish) Activate(opts ActivateOptions) string {
	chpwdBody := "_denv_hook_env cd"
	switch opts.Mode {
	case hook.ModeDefer:
		chpwdBody = "set -gx " + hook.EnvPending + " 1"
	}

	return fmt.Sprintf(`# denv shell integration (fish)
if not contains -- %[1]s $PATH
    set -gx PATH %[1]s $PATH
end
set -gx %[4]s %[3]s

function _denv_hook_env
    set -l __denv_out (%[2]s hook-env --shell fish --event $argv[1] | string collect)
    if test -n "$__denv_out"
        eval "$__denv_out"
    end
end

function _denv_chpwd_handler
    %[5]s
end

function _denv_prompt --on-event fish_prompt
    _denv_hook_env prompt
end

function _denv_preexec --on-event fish_preexec
    if test -n "$%[6]s"; or test -n "$%[7]s"
        _denv_hook_env preexec
    end
end

_denv_hook_env prompt
`,
		fishQuote(opts.InstallDir),
		fishQuote(opts.BinPath),
		fishQuote(opts.SessionID),
		hook.EnvSession,
		chpwdBody,
		hook.EnvPending,
		hook.EnvWatch,
	)
}

// Deactivate는 등록된 함수와 세션 상태를 제거한다.
func (Fish) Deactivate() string {
	return fmt.Sprintf(`functions -e _denv_prompt _denv_preexec _denv_chpwd _denv_chpwd_handler _denv_hook_env
set -e %s
set -e %s
set -e %s
`, hook.EnvSession, hook.EnvPending, hook.EnvWatch)
}

// Export는 set -gx 구문을 렌더링한다.
func (Fish) Export(key, value string) string {
	return fmt.Sprintf("set -gx %s %s\n", key, fishQuote(value))
}

// Unset은 set -e 구문을 렌더링한다.
func (Fish) Unset(key string) string {
	return fmt.Sprintf("set -e %s\n", key)
}

// BlankLine는 빈 줄 출력 구문이다.
func (Fish) BlankLine() string { return "echo ''\n" }

// WatchOn은 --on-variable PWD 함수를 정의해 binding을 설치한다.
// 본문은 활성화 시점에 모드가 구워진 handler로 위임한다.
func (Fish) WatchOn() string {
	return `function _denv_chpwd --on-variable PWD
    _denv_chpwd_handler
end
`
}

// WatchOff는 binding 함수를 삭제한다.
func (Fish) WatchOff() string { return "functions -e _denv_chpwd\n" }
