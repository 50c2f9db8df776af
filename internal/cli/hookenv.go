package cli

import (
	"fmt"
	"os"

	"github.com/hbjs97/denv/internal/envdiff"
	"github.com/hbjs97/denv/internal/hook"
	"github.com/hbjs97/denv/internal/provider"
	"github.com/hbjs97/denv/internal/shell"
	"github.com/hbjs97/denv/internal/state"
	"github.com/spf13/cobra"
)

// newHookEnvCmd는 셸 hook이 호출하는 숨은 명령이다. 이벤트를 받아
// 컨트롤러 결정을 dialect 구문으로 출력하며, 출력은 셸에서 eval된다.
func (a *App) newHookEnvCmd() *cobra.Command {
	var shellType string
	var event string

	cmd := &cobra.Command{
		Use:    "hook-env",
		Short:  "셸 hook 이벤트를 처리한다 (내부용)",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHookEnv(cmd, shellType, event)
		},
	}
	cmd.Flags().StringVar(&shellType, "shell", "", "셸 유형")
	cmd.Flags().StringVar(&event, "event", "", "이벤트 (prompt, cd, preexec)")
	return cmd
}

func (a *App) runHookEnv(cmd *cobra.Command, shellType, event string) error {
	d, err := shell.Get(shellType)
	if err != nil {
		return fmt.Errorf("cli.hook-env: %w", err)
	}
	ev, err := hook.ParseEvent(event)
	if err != nil {
		return fmt.Errorf("cli.hook-env: %w", err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.hook-env: %w", err)
	}

	sess := hook.SessionFromEnv(a.Getenv)
	ctrl := hook.NewController(sess, a.diffProvider(d))

	act, err := ctrl.Handle(cmd.Context(), ev, cwd)
	if err != nil {
		return fmt.Errorf("cli.hook-env: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), shell.RenderActions(d, act))
	return nil
}

// diffProvider는 세션의 diff provider를 고른다. DENV_PROVIDER가
// 설정되어 있으면 외부 바이너리를, 아니면 내장 envdiff를 쓴다.
func (a *App) diffProvider(d shell.Dialect) provider.DiffProvider {
	if bin := a.Getenv(hook.EnvProvider); bin != "" {
		return provider.NewExec(a.Commander, bin, "--shell", d.Name())
	}
	return &envdiff.Provider{
		Dialect:   d,
		Environ:   envMap(a.Environ()),
		Store:     state.NewStore(a.StateDir),
		SessionID: a.Getenv(hook.EnvSession),
	}
}
