package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/denv/internal/shell"
)

// hookMarker는 중복 설치 검사용 표식이다.
const hookMarker = "denv shell integration"

// HookLine은 rc 파일에 들어갈 활성화 라인을 반환한다. 활성화 스크립트
// 자체는 매 세션 denv activate가 새로 렌더링한다.
func HookLine(shellType string) string {
	switch shellType {
	case "zsh":
		return `# denv shell integration (zsh)
eval "$(denv activate --shell zsh)"
`
	case "bash":
		return `# denv shell integration (bash)
eval "$(denv activate --shell bash)"
`
	case "fish":
		return `# denv shell integration (fish)
denv activate --shell fish | source
`
	case "xonsh":
		return `# denv shell integration (xonsh)
execx($(denv activate --shell xonsh))
`
	default:
		return ""
	}
}

// InstallShellHook은 셸 RC 파일에 denv 활성화 라인을 추가한다.
// 이미 설치되어 있으면 건너뛴다.
func InstallShellHook(shellType, rcPath string) error {
	line := HookLine(shellType)
	if line == "" {
		return fmt.Errorf("setup.InstallShellHook: %w: %s", shell.ErrUnsupported, shellType)
	}

	existing, _ := os.ReadFile(rcPath) // 파일이 없으면 빈 바이트
	if strings.Contains(string(existing), hookMarker) {
		return nil // 이미 설치됨
	}

	// fish conf.d처럼 상위 디렉토리가 없는 경우가 있다.
	if err := os.MkdirAll(filepath.Dir(rcPath), 0700); err != nil {
		return fmt.Errorf("setup.InstallShellHook: %w", err)
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s", line); err != nil {
		return fmt.Errorf("setup.InstallShellHook: %w", err)
	}

	return nil
}
