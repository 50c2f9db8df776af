package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/denv/internal/cmdexec"
	"github.com/spf13/cobra"
)

// App은 denv CLI의 의존성 묶음이다. 테스트는 FakeCommander와 가짜
// 환경을 주입한다.
type App struct {
	Commander cmdexec.Commander
	// StateDir는 provider 세션 캐시 디렉토리다.
	StateDir string
	// BinPath는 활성화 스크립트에 박히는 denv 바이너리 경로다.
	BinPath string
	Getenv  func(string) string
	Environ func() []string
}

// NewApp은 실제 실행 환경의 App을 만든다.
func NewApp() *App {
	bin, err := os.Executable()
	if err != nil {
		bin = "denv"
	}
	return &App{
		Commander: &cmdexec.RealCommander{},
		StateDir:  defaultStateDir(),
		BinPath:   bin,
		Getenv:    os.Getenv,
		Environ:   os.Environ,
	}
}

// NewRootCmd는 denv CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "denv",
		Short:        "디렉토리 단위 환경 동기화 도구",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		a.newActivateCmd(),
		a.newDeactivateCmd(),
		a.newHookEnvCmd(),
		a.newSetupCmd(),
		a.newStatusCmd(),
		a.newDoctorCmd(),
	)
	return cmd
}

func defaultStateDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "denv", "sessions")
}

// envMap은 os.Environ 형식 슬라이스를 맵으로 바꾼다.
func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			m[kv[:i]] = kv[i+1:]
		}
	}
	return m
}
