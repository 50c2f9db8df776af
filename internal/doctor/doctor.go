// Package doctor는 denv 설치 상태를 진단한다.
package doctor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hbjs97/denv/internal/config"
	"github.com/hbjs97/denv/internal/setup"
	"github.com/hbjs97/denv/internal/shell"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// CheckShell은 현재 셸이 지원 대상인지 확인한다.
func CheckShell(shellType string) DiagResult {
	if _, err := shell.Get(shellType); err != nil {
		return DiagResult{
			Name:    "shell",
			Status:  StatusFail,
			Message: fmt.Sprintf("지원하지 않는 셸: %s", shellType),
			Fix:     fmt.Sprintf("지원 셸: %s", strings.Join(shell.Names(), ", ")),
		}
	}
	return DiagResult{
		Name:    "shell",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s 지원됨", shellType),
	}
}

// CheckHookInstalled는 rc 파일에 활성화 라인이 있는지 확인한다.
func CheckHookInstalled(shellType, rcPath string) DiagResult {
	data, err := os.ReadFile(rcPath)
	if err != nil || !strings.Contains(string(data), "denv shell integration") {
		return DiagResult{
			Name:    "rc_hook",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s에 hook이 없음", rcPath),
			Fix:     fmt.Sprintf("denv setup --shell %s 실행", shellType),
		}
	}
	return DiagResult{
		Name:    "rc_hook",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s에 설치됨", rcPath),
	}
}

// CheckBinaryOnPath는 denv 바이너리가 PATH에서 찾아지는지 확인한다.
// rc의 활성화 라인이 bare 이름으로 denv를 부르기 때문이다.
func CheckBinaryOnPath() DiagResult {
	path, err := exec.LookPath("denv")
	if err != nil {
		return DiagResult{
			Name:    "binary",
			Status:  StatusWarn,
			Message: "denv가 PATH에 없음",
			Fix:     "설치 디렉토리를 PATH에 추가하세요",
		}
	}
	return DiagResult{
		Name:    "binary",
		Status:  StatusOK,
		Message: path,
	}
}

// CheckDirConfig는 dir 기준 가장 가까운 설정 파일을 검증한다.
func CheckDirConfig(dir string) DiagResult {
	cfgPath := config.Find(dir)
	if cfgPath == "" {
		return DiagResult{
			Name:    "dir_config",
			Status:  StatusOK,
			Message: "디렉토리 설정 없음 (동기화 대상 아님)",
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return DiagResult{
			Name:    "dir_config",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 파싱 실패", cfgPath),
			Fix:     err.Error(),
		}
	}
	return DiagResult{
		Name:    "dir_config",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s (env %d개, path %d개)", cfgPath, len(cfg.Env), len(cfg.Path)),
	}
}

// CheckStateDir는 세션 캐시 디렉토리에 쓸 수 있는지 확인한다.
func CheckStateDir(dir string) DiagResult {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return DiagResult{
			Name:    "state_dir",
			Status:  StatusWarn,
			Message: fmt.Sprintf("세션 캐시 디렉토리 생성 실패: %v", err),
			Fix:     "캐시 없이도 동작하지만 매번 diff를 재계산한다",
		}
	}
	return DiagResult{
		Name:    "state_dir",
		Status:  StatusOK,
		Message: dir,
	}
}

// RunAll은 모든 진단을 실행한다.
func RunAll(shellType, stateDir, cwd string) []DiagResult {
	rcPath := setup.ShellRCPath(shellType)
	return []DiagResult{
		CheckShell(shellType),
		CheckHookInstalled(shellType, rcPath),
		CheckBinaryOnPath(),
		CheckDirConfig(cwd),
		CheckStateDir(stateDir),
	}
}
