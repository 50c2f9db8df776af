// Package hook은 셸 세션의 환경 동기화 상태 기계를 구현한다.
// 셸 어댑터가 설치한 hook이 이벤트를 전달하면 DebounceController가
// diff provider 호출 시점을 결정한다.
package hook

import (
	"fmt"
)

// 세션 상태를 나르는 환경변수 이름들. 값은 해당 셸 프로세스에만 존재한다.
const (
	// EnvMode는 동기화 모드 설정이다 (default, defer, off).
	EnvMode = "DENV_HOOK_MODE"
	// EnvPending는 디렉토리 변경 후 재평가가 보류 중임을 나타낸다.
	EnvPending = "__DENV_PENDING"
	// EnvWatch는 디렉토리 변경 binding이 설치되어 있음을 나타낸다.
	EnvWatch = "__DENV_WATCH"
	// EnvDiff는 적용된 환경 변경의 원복 저널이다 (base64 JSON).
	EnvDiff = "__DENV_DIFF"
	// EnvSession는 활성화 시점에 발급된 세션 ID다.
	EnvSession = "__DENV_SESSION"
	// EnvProvider는 외부 diff provider 바이너리 경로다 (선택).
	EnvProvider = "DENV_PROVIDER"
)

// TriggerEvent는 셸이 전달하는 추상 이벤트다.
type TriggerEvent string

const (
	// PromptDisplayed는 프롬프트 출력 직전 이벤트다.
	PromptDisplayed TriggerEvent = "prompt"
	// DirectoryChanged는 작업 디렉토리 변경 이벤트다.
	DirectoryChanged TriggerEvent = "cd"
	// PreCommandExecution는 명령 실행 직전 이벤트다.
	PreCommandExecution TriggerEvent = "preexec"
)

// ParseEvent는 hook-env --event 값을 TriggerEvent로 변환한다.
func ParseEvent(s string) (TriggerEvent, error) {
	switch TriggerEvent(s) {
	case PromptDisplayed, DirectoryChanged, PreCommandExecution:
		return TriggerEvent(s), nil
	default:
		return "", fmt.Errorf("hook.ParseEvent: 알 수 없는 이벤트: %q", s)
	}
}

// Mode는 세션의 동기화 모드다.
type Mode string

const (
	// ModeDefault는 디렉토리 변경 즉시 동기화한다.
	ModeDefault Mode = "default"
	// ModeDefer는 다음 명령 실행 시점까지 동기화를 미룬다.
	// 일부 셸은 히스토리/화살표 탐색 중 PWD를 일시적으로 바꾸므로
	// 매 키 입력마다 provider를 호출하면 눈에 띄게 느려진다.
	ModeDefer Mode = "defer"
	// ModeOff는 프롬프트 시점에만 동기화한다 (디렉토리 감시 없음).
	ModeOff Mode = "off"
)

// ParseMode는 DENV_HOOK_MODE 값을 해석한다. 빈 값은 ModeDefault,
// 알 수 없는 값은 ok=false와 함께 ModeDefault를 반환한다.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case "", ModeDefault:
		return ModeDefault, true
	case ModeDefer:
		return ModeDefer, true
	case ModeOff:
		return ModeOff, true
	default:
		return ModeDefault, false
	}
}

// Session은 하나의 대화형 셸 프로세스에 대응하는 상태다.
// 셸 프로세스가 단독 소유하며 영속화되지 않는다. 실제 값은
// __DENV_* 환경변수로 셸 안에 실려 있고, hook-env 호출마다
// SessionFromEnv로 재구성된다.
type Session struct {
	Mode          Mode
	PendingReeval bool

	bindings map[TriggerEvent]bool
}

// NewSession은 주어진 모드의 세션을 만든다. 프롬프트와 명령 실행
// binding은 활성화 스크립트가 정적으로 등록하므로 항상 설치 상태다.
func NewSession(mode Mode) *Session {
	return &Session{
		Mode: mode,
		bindings: map[TriggerEvent]bool{
			PromptDisplayed:     true,
			PreCommandExecution: true,
		},
	}
}

// SessionFromEnv는 셸 환경변수에서 세션 상태를 복원한다.
func SessionFromEnv(getenv func(string) string) *Session {
	mode, _ := ParseMode(getenv(EnvMode))
	s := NewSession(mode)
	s.PendingReeval = getenv(EnvPending) != ""
	if getenv(EnvWatch) != "" {
		s.InstallBinding(DirectoryChanged)
	}
	return s
}

// InstallBinding은 binding을 설치한다. 이미 설치된 경우 재등록이며
// 중복되지 않는다 (집합 의미론).
func (s *Session) InstallBinding(ev TriggerEvent) {
	s.bindings[ev] = true
}

// RemoveBinding은 binding을 제거한다. 없는 binding 제거는 no-op이다.
func (s *Session) RemoveBinding(ev TriggerEvent) {
	delete(s.bindings, ev)
}

// HasBinding은 binding 설치 여부를 반환한다.
func (s *Session) HasBinding(ev TriggerEvent) bool {
	return s.bindings[ev]
}
