package cli

import (
	"fmt"
	"os"

	"github.com/hbjs97/denv/internal/config"
	"github.com/hbjs97/denv/internal/envdiff"
	"github.com/hbjs97/denv/internal/hook"
	"github.com/hbjs97/denv/internal/setup"
	"github.com/spf13/cobra"
)

func (a *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "현재 세션의 동기화 상태를 보여준다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd)
		},
	}
}

func (a *App) runStatus(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	sid := a.Getenv(hook.EnvSession)
	if sid == "" {
		fmt.Fprintln(out, "세션: 없음 (denv activate가 실행되지 않음)")
	} else {
		fmt.Fprintf(out, "세션: %s\n", sid)
	}

	mode, _ := hook.ParseMode(a.Getenv(hook.EnvMode))
	fmt.Fprintf(out, "셸: %s\n", setup.DetectShell())
	fmt.Fprintf(out, "모드: %s\n", mode)
	fmt.Fprintf(out, "재평가 보류: %s\n", yesNo(a.Getenv(hook.EnvPending) != ""))
	fmt.Fprintf(out, "디렉토리 감시: %s\n", yesNo(a.Getenv(hook.EnvWatch) != ""))

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.status: %w", err)
	}
	if cfgPath := config.Find(cwd); cfgPath == "" {
		fmt.Fprintln(out, "디렉토리 설정: 없음")
	} else {
		fmt.Fprintf(out, "디렉토리 설정: %s\n", cfgPath)
	}

	journal, err := envdiff.DecodeJournal(a.Getenv(hook.EnvDiff))
	if err != nil {
		fmt.Fprintln(out, "적용된 변경: 저널 손상됨")
		return nil
	}
	if journal.Empty() {
		fmt.Fprintln(out, "적용된 변경: 없음")
		return nil
	}
	fmt.Fprintf(out, "적용된 변경: 변수 %d개, PATH 항목 %d개\n", len(journal.Vars), len(journal.Path))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "예"
	}
	return "아니오"
}
