package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hbjs97/denv/internal/hook"
)

// ErrUnsupported는 지원하지 않는 셸 dialect를 나타내는 sentinel error다.
var ErrUnsupported = errors.New("지원하지 않는 셸")

// ActivateOptions는 활성화 스크립트 생성 입력이다. 같은 입력이면
// 항상 같은 스크립트가 나온다 (순수 함수).
type ActivateOptions struct {
	// BinPath는 denv 바이너리의 절대 경로다.
	BinPath string
	// InstallDir는 PATH에 보장할 설치 디렉토리다.
	InstallDir string
	// Mode는 스크립트에 구워 넣는 동기화 모드다.
	Mode hook.Mode
	// SessionID는 세션 식별자다. 재로딩 시 기존 값을 넘기면
	// 두 번 로드해도 같은 세션이 유지된다.
	SessionID string
}

// Dialect는 하나의 셸 dialect 어댑터다. 모든 메서드는 부수효과 없이
// 텍스트만 생성한다.
type Dialect interface {
	Name() string

	// Activate는 세션 시작 시 한 번 eval되는 활성화 스크립트를 만든다.
	// 두 번 로드해도 binding 집합이 같아야 한다 (재등록, 중복 아님).
	Activate(opts ActivateOptions) string
	// Deactivate는 hook 해제 스크립트를 만든다.
	Deactivate() string

	// Export/Unset은 환경변수 변경을 dialect 구문으로 렌더링한다.
	Export(key, value string) string
	Unset(key string) string

	// BlankLine는 빈 줄 하나를 출력하는 구문이다.
	BlankLine() string
	// WatchOn/WatchOff는 디렉토리 변경 binding의 동적 설치/철거 구문이다.
	WatchOn() string
	WatchOff() string
}

// Get은 이름으로 dialect 어댑터를 찾는다.
func Get(name string) (Dialect, error) {
	switch name {
	case "zsh":
		return Zsh{}, nil
	case "bash":
		return Bash{}, nil
	case "fish":
		return Fish{}, nil
	case "xonsh":
		return Xonsh{}, nil
	default:
		return nil, fmt.Errorf("shell.Get: %w: %s", ErrUnsupported, name)
	}
}

// Names는 지원하는 dialect 이름 목록이다.
func Names() []string {
	return []string{"bash", "fish", "xonsh", "zsh"}
}

// RenderActions는 컨트롤러 결정을 dialect 구문으로 변환한다.
// 출력은 현재 세션에서 그대로 eval된다.
func RenderActions(d Dialect, a hook.Actions) string {
	var b strings.Builder
	if a.Eval != "" {
		b.WriteString(a.Eval)
		if !strings.HasSuffix(a.Eval, "\n") {
			b.WriteString("\n")
		}
	}
	if a.BlankLine {
		b.WriteString(d.BlankLine())
	}
	if a.SetPending {
		b.WriteString(d.Export(hook.EnvPending, "1"))
	}
	if a.ClearPending {
		b.WriteString(d.Unset(hook.EnvPending))
	}
	if a.RemoveWatch {
		b.WriteString(d.WatchOff())
		b.WriteString(d.Unset(hook.EnvWatch))
	}
	if a.InstallWatch {
		b.WriteString(d.WatchOn())
		b.WriteString(d.Export(hook.EnvWatch, "1"))
	}
	return b.String()
}

// posixQuote는 값을 POSIX 단일 인용으로 감싼다.
func posixQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
