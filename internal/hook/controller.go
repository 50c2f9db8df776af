package hook

import (
	"context"
	"log/slog"

	"github.com/hbjs97/denv/internal/observability"
	"github.com/hbjs97/denv/internal/provider"
)

// Binder는 셸 네이티브 binding의 설치/제거를 추상화한다.
// nil이면 세션 내부 집합만 갱신된다 (실제 등록은 어댑터가 출력한
// 스크립트가 수행).
type Binder interface {
	Install(ev TriggerEvent) error
	Remove(ev TriggerEvent) error
}

// Actions는 컨트롤러 결정의 결과다. 셸 어댑터가 dialect 구문으로
// 변환하여 현재 세션에서 eval한다.
type Actions struct {
	// Eval은 provider가 반환한 환경 변경 텍스트다. 빈 값이면 변경 없음.
	Eval string
	// BlankLine는 보류된 동기화가 명령 실행 직전에 수행되었을 때
	// 프롬프트/출력 정렬을 맞추기 위한 빈 줄 출력이다.
	BlankLine bool
	// SetPending/ClearPending는 보류 플래그의 셸 측 갱신이다.
	SetPending   bool
	ClearPending bool
	// InstallWatch/RemoveWatch는 디렉토리 변경 binding의 설치/철거다.
	InstallWatch bool
	RemoveWatch  bool
}

// Controller는 이벤트별로 diff provider 호출 여부를 결정하는
// 세션 단위 상태 기계다. 셸의 이벤트 루프가 단일 제어 흐름이므로
// 이벤트는 항상 순차 처리된다.
type Controller struct {
	session  *Session
	provider provider.DiffProvider
	binder   Binder
	log      *slog.Logger

	// watchBroken는 binding 설치 실패 후 감시를 포기했음을 나타낸다.
	// 세션은 ModeOff 상당으로 동작을 계속한다.
	watchBroken bool
}

// NewController는 세션과 provider로 컨트롤러를 만든다.
func NewController(s *Session, p provider.DiffProvider) *Controller {
	return &Controller{
		session:  s,
		provider: p,
		log:      observability.Logger(),
	}
}

// WithBinder는 네이티브 binding 설치기를 연결한다.
func (c *Controller) WithBinder(b Binder) *Controller {
	c.binder = b
	return c
}

// Handle은 하나의 셸 이벤트를 처리한다. provider 실패는 치명적이지
// 않다: 이전 환경을 유지한 채 경고만 남기고 세션은 계속 동작한다.
func (c *Controller) Handle(ctx context.Context, ev TriggerEvent, dir string) (Actions, error) {
	var act Actions

	switch ev {
	case PromptDisplayed:
		act.Eval = c.sync(ctx, dir)
		if c.session.Mode != ModeOff && !c.watchBroken {
			if c.installWatch() {
				act.InstallWatch = true
			}
		}

	case DirectoryChanged:
		// binding이 없으면 발생할 수 없는 이벤트다. 도착하더라도 무시한다.
		if !c.session.HasBinding(DirectoryChanged) {
			return act, nil
		}
		switch c.session.Mode {
		case ModeDefer:
			if !c.session.PendingReeval {
				c.session.PendingReeval = true
				act.SetPending = true
			}
		case ModeOff:
			// no-op
		default:
			act.Eval = c.sync(ctx, dir)
		}

	case PreCommandExecution:
		if c.session.PendingReeval {
			c.session.PendingReeval = false
			act.ClearPending = true
			act.Eval = c.sync(ctx, dir)
			act.BlankLine = true
		}
		// 보류 여부와 무관하게 binding을 철거한다. 프롬프트 이벤트가
		// 명령 없이 여러 번 발생하는 셸에서 binding이 누적되는 것을 막는다.
		c.session.RemoveBinding(DirectoryChanged)
		if c.binder != nil {
			if err := c.binder.Remove(DirectoryChanged); err != nil {
				c.log.Warn("binding 제거 실패", "event", ev, "error", err)
			}
		}
		act.RemoveWatch = true
	}

	return act, nil
}

// sync는 provider를 동기 호출하고 적용할 텍스트를 반환한다.
// 실패 시 빈 텍스트를 반환한다 (stale-but-usable).
func (c *Controller) sync(ctx context.Context, dir string) string {
	res, err := c.provider.Diff(ctx, dir)
	if err != nil {
		c.log.Warn("denv: 환경 동기화 실패, 이전 환경을 유지합니다", "dir", dir, "error", err)
		return ""
	}
	if res.NoChange {
		return ""
	}
	return res.Text
}

// installWatch는 디렉토리 변경 binding을 (재)설치한다. 네이티브
// 설치가 실패하면 이 세션의 감시를 포기하고 false를 반환한다.
func (c *Controller) installWatch() bool {
	if c.binder != nil {
		if err := c.binder.Install(DirectoryChanged); err != nil {
			c.log.Warn("denv: 디렉토리 감시 설치 실패, 프롬프트 동기화만 수행합니다", "error", err)
			c.watchBroken = true
			return false
		}
	}
	c.session.InstallBinding(DirectoryChanged)
	return true
}
