package shell

import (
	"fmt"
	"strings"

	"github.com/hbjs97/denv/internal/hook"
)

// Xonsh는 xonsh dialect 어댑터다. XSH.builtins.events의
// on_pre_prompt/on_chdir/on_precommand에 붙는다. xonsh는 히스토리
// 탐색 중 PWD를 일시적으로 바꾸므로 defer 모드의 주 대상이다.
type Xonsh struct{}

// Name은 dialect 이름을 반환한다.
func (Xonsh) Name() string { return "xonsh" }

// xonshEscape는 python 단일 인용 문자열 이스케이프를 적용한다.
func xonshEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`).Replace(s)
}

// xonsh에서 리스트로 다뤄지는 경로형 변수들.
var xonshPathVars = map[string]bool{
	"PATH":     true,
	"MANPATH":  true,
	"INFOPATH": true,
}

// Activate는 xonsh 활성화 스크립트를 만든다. handler 등록은 함수
// 이름 검사로 멱등이다. subprocess 경유라 순수 .py 설정에서도 쓸 수 있다.
func (Xonsh) Activate(opts ActivateOptions) string {
	chpwdBody := "_denv_hook_env('cd')"
	switch opts.Mode {
	case hook.ModeDefer:
		chpwdBody = "environ['" + hook.EnvPending + "'] = '1'"
	}

	return fmt.Sprintf(`# denv shell integration (xonsh)
import subprocess
from os import environ
from xonsh.built_ins import XSH

if '%[1]s' not in environ.get('PATH', '').split(':'):
    environ['PATH'] = '%[1]s' + ':' + environ.get('PATH', '')
environ['%[4]s'] = '%[3]s'

def _denv_hook_env(event):
    _proc = subprocess.run(['%[2]s', 'hook-env', '--shell', 'xonsh', '--event', event], capture_output=True)
    if _proc.stderr:
        print(_proc.stderr.decode(), end='')
    if _proc.stdout:
        execx(_proc.stdout.decode(), 'exec', XSH.ctx, filename='denv')

def _denv_prompt():
    _denv_hook_env('prompt')

def _denv_chpwd(olddir, newdir, **kwargs):
    %[5]s

def _denv_preexec(cmd):
    if environ.get('%[6]s') or environ.get('%[7]s'):
        _denv_hook_env('preexec')

def _denv_register(hook, fn):
    _handler = getattr(XSH.builtins.events, hook)
    for _f in _handler:
        if getattr(_f, '__name__', '') == fn.__name__:
            return
    _handler(fn)

_denv_register('on_pre_prompt', _denv_prompt)
_denv_register('on_precommand', _denv_preexec)
_denv_prompt()
`,
		xonshEscape(opts.InstallDir),
		xonshEscape(opts.BinPath),
		xonshEscape(opts.SessionID),
		hook.EnvSession,
		chpwdBody,
		hook.EnvPending,
		hook.EnvWatch,
	)
}

// Deactivate는 이름으로 handler를 찾아 제거하고 세션 상태를 지운다.
func (Xonsh) Deactivate() string {
	return fmt.Sprintf(`from os import environ
from xonsh.built_ins import XSH

_denv_hooks = {
    'on_pre_prompt': ['_denv_prompt'],
    'on_precommand': ['_denv_preexec'],
    'on_chdir': ['_denv_chpwd'],
}
for _hook_type, _hook_fns in _denv_hooks.items():
    _handler = getattr(XSH.builtins.events, _hook_type)
    for _fn_name in _hook_fns:
        for _f in list(_handler):
            if getattr(_f, '__name__', '') == _fn_name:
                _handler.remove(_f)
for _k in ('%s', '%s', '%s'):
    environ.pop(_k, None)
`, hook.EnvSession, hook.EnvPending, hook.EnvWatch)
}

// Export는 변수 대입 구문을 렌더링한다. 경로형 변수는 문자열이 아니라
// 리스트이므로 콜론 분리 값을 리스트 리터럴로 바꾼다.
func (Xonsh) Export(key, value string) string {
	if xonshPathVars[strings.ToUpper(key)] {
		parts := strings.Split(value, ":")
		quoted := make([]string, 0, len(parts))
		for _, p := range parts {
			quoted = append(quoted, "'"+xonshEscape(p)+"'")
		}
		return fmt.Sprintf("$%s = [%s]\n", key, strings.Join(quoted, ", "))
	}
	return fmt.Sprintf("$%s = '%s'\n", key, xonshEscape(value))
}

// Unset은 del 구문을 렌더링한다.
func (Xonsh) Unset(key string) string {
	return fmt.Sprintf("del $%s\n", key)
}

// BlankLine는 빈 줄 출력 구문이다.
func (Xonsh) BlankLine() string { return "print()\n" }

// WatchOn은 on_chdir handler를 등록한다 (_denv_register가 중복을 거른다).
func (Xonsh) WatchOn() string {
	return "_denv_register('on_chdir', _denv_chpwd)\n"
}

// WatchOff는 on_chdir handler를 이름으로 제거한다.
func (Xonsh) WatchOff() string {
	return `for _denv_f in list(XSH.builtins.events.on_chdir):
    if getattr(_denv_f, '__name__', '') == '_denv_chpwd':
        XSH.builtins.events.on_chdir.remove(_denv_f)
`
}
