package cli

import (
	"fmt"

	"github.com/hbjs97/denv/internal/setup"
	"github.com/hbjs97/denv/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newDeactivateCmd() *cobra.Command {
	var shellType string

	cmd := &cobra.Command{
		Use:   "deactivate",
		Short: "셸 hook 해제 스크립트를 출력한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDeactivate(cmd, shellType)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", setup.DetectShell(), "셸 유형 (bash, zsh, fish, xonsh)")
	return cmd
}

func (a *App) runDeactivate(cmd *cobra.Command, shellType string) error {
	d, err := shell.Get(shellType)
	if err != nil {
		return fmt.Errorf("cli.deactivate: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), d.Deactivate())
	return nil
}
