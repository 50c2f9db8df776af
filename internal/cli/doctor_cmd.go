package cli

import (
	"fmt"
	"os"

	"github.com/hbjs97/denv/internal/doctor"
	"github.com/hbjs97/denv/internal/setup"
	"github.com/spf13/cobra"
)

func (a *App) newDoctorCmd() *cobra.Command {
	var shellType string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "denv 설치 상태를 진단한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd, shellType)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", setup.DetectShell(), "셸 유형 (bash, zsh, fish, xonsh)")
	return cmd
}

func (a *App) runDoctor(cmd *cobra.Command, shellType string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.doctor: %w", err)
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, r := range doctor.RunAll(shellType, a.StateDir, cwd) {
		fmt.Fprintf(out, "%s %s: %s\n", statusIcon(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(out, "    fix: %s\n", r.Fix)
		}
		if r.Status == doctor.StatusFail {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("cli.doctor: 진단 실패 항목이 있습니다")
	}
	return nil
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return "✅"
	case doctor.StatusWarn:
		return "⚠️"
	default:
		return "❌"
	}
}
