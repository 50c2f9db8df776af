package cli

import (
	"fmt"

	"github.com/hbjs97/denv/internal/setup"
	"github.com/spf13/cobra"
)

func (a *App) newSetupCmd() *cobra.Command {
	var shellType string
	var rcPath string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "셸 RC 파일에 denv hook을 설치한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSetup(cmd, shellType, rcPath)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", setup.DetectShell(), "셸 유형 (bash, zsh, fish, xonsh)")
	cmd.Flags().StringVar(&rcPath, "rc", "", "RC 파일 경로 (기본: 셸별 표준 경로)")
	return cmd
}

func (a *App) runSetup(cmd *cobra.Command, shellType, rcPath string) error {
	if rcPath == "" {
		rcPath = setup.ShellRCPath(shellType)
	}
	if err := setup.InstallShellHook(shellType, rcPath); err != nil {
		return fmt.Errorf("cli.setup: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s에 denv hook 설치 완료\n", rcPath)
	fmt.Fprintf(cmd.OutOrStdout(), "새 셸을 열거나 해당 파일을 다시 로드하세요.\n")
	return nil
}
