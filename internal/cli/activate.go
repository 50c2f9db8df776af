package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/hbjs97/denv/internal/hook"
	"github.com/hbjs97/denv/internal/observability"
	"github.com/hbjs97/denv/internal/setup"
	"github.com/hbjs97/denv/internal/shell"
	"github.com/hbjs97/denv/internal/state"
	"github.com/spf13/cobra"
)

// sessionTTL은 세션 캐시 파일의 보존 기간이다. 셸은 종료를 알리지
// 않으므로 활성화 시점에 오래된 파일을 정리한다.
const sessionTTL = 7 * 24 * time.Hour

func (a *App) newActivateCmd() *cobra.Command {
	var shellType string

	cmd := &cobra.Command{
		Use:   "activate",
		Short: "셸 활성화 스크립트를 출력한다 (RC 파일에서 eval)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runActivate(cmd, shellType)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", setup.DetectShell(), "셸 유형 (bash, zsh, fish, xonsh)")
	return cmd
}

func (a *App) runActivate(cmd *cobra.Command, shellType string) error {
	d, err := shell.Get(shellType)
	if err != nil {
		// 부분 설치 없이 그대로 실패한다.
		return fmt.Errorf("cli.activate: %w", err)
	}

	mode, ok := hook.ParseMode(a.Getenv(hook.EnvMode))
	if !ok {
		observability.Logger().Warn("denv: 알 수 없는 DENV_HOOK_MODE, default로 동작합니다",
			"value", a.Getenv(hook.EnvMode))
	}

	// 스크립트를 두 번 로드해도 같은 세션이 되도록 기존 ID를 유지한다.
	sid := a.Getenv(hook.EnvSession)
	if sid == "" {
		sid = uuid.NewString()
	}

	script := d.Activate(shell.ActivateOptions{
		BinPath:    a.BinPath,
		InstallDir: filepath.Dir(a.BinPath),
		Mode:       mode,
		SessionID:  sid,
	})
	fmt.Fprint(cmd.OutOrStdout(), script)

	// 끝난 세션의 캐시 회수. 실패해도 활성화는 계속한다.
	_ = state.NewStore(a.StateDir).Prune(sessionTTL)
	return nil
}
