// Package provider는 환경 diff provider의 호출 경계를 정의한다.
// 코어는 반환된 텍스트를 불투명하게 다루며 그대로 셸에서 eval한다.
package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/hbjs97/denv/internal/cmdexec"
)

// Result는 한 번의 provider 호출 결과다. 호출 간에 캐시되지 않는다
// (캐싱이 필요하면 provider 구현의 책임이다).
type Result struct {
	// Text는 현재 세션에서 eval할 셸 구문 텍스트다.
	Text string
	// NoChange는 적용할 변경이 없음을 나타내는 sentinel이다.
	NoChange bool
}

// DiffProvider는 작업 디렉토리에 대한 환경 변경을 계산한다.
type DiffProvider interface {
	// Diff는 dir 기준의 환경 변경을 동기적으로 계산한다.
	// 타임아웃 정책은 구현이 소유한다.
	Diff(ctx context.Context, dir string) (Result, error)
}

// Exec는 외부 바이너리를 호출하는 DiffProvider다. DENV_PROVIDER로
// 지정된 바이너리를 대상 디렉토리에서 실행하고 stdout을 그대로 쓴다.
type Exec struct {
	commander cmdexec.Commander
	bin       string
	args      []string
}

// NewExec는 외부 provider를 만든다.
func NewExec(c cmdexec.Commander, bin string, args ...string) *Exec {
	return &Exec{commander: c, bin: bin, args: args}
}

// Diff는 provider 바이너리를 dir에서 실행한다. 빈 출력은 no-op sentinel이다.
func (e *Exec) Diff(ctx context.Context, dir string) (Result, error) {
	out, err := e.commander.RunInDir(ctx, dir, e.bin, e.args...)
	if err != nil {
		return Result{}, fmt.Errorf("provider.Exec: %s: %w", e.bin, err)
	}
	text := string(out)
	if strings.TrimSpace(text) == "" {
		return Result{NoChange: true}, nil
	}
	return Result{Text: text}, nil
}
