package envdiff

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hbjs97/denv/internal/config"
	"github.com/hbjs97/denv/internal/hook"
	"github.com/hbjs97/denv/internal/observability"
	"github.com/hbjs97/denv/internal/provider"
	"github.com/hbjs97/denv/internal/shell"
	"github.com/hbjs97/denv/internal/state"
)

// Provider는 기본 DiffProvider 구현이다. 디렉토리 설정을 찾아 diff를
// 계산하고 dialect 구문으로 렌더링한다. 세션 캐시로 재계산을 생략한다.
type Provider struct {
	// Dialect는 출력 구문 렌더링에 쓰는 어댑터다.
	Dialect shell.Dialect
	// Environ은 호출 시점의 환경 스냅샷이다.
	Environ map[string]string
	// Store와 SessionID는 재계산 생략 캐시다. Store가 nil이거나
	// SessionID가 비면 캐시를 쓰지 않는다.
	Store     *state.Store
	SessionID string

	log *slog.Logger
}

// Diff는 dir에 대한 환경 변경 텍스트를 계산한다.
func (p *Provider) Diff(ctx context.Context, dir string) (provider.Result, error) {
	if p.log == nil {
		p.log = observability.WithComponent("envdiff")
	}

	cfgPath := p.findConfig(dir)
	journalRaw := p.Environ[hook.EnvDiff]

	var cfgMod time.Time
	if cfgPath != "" {
		info, err := os.Stat(cfgPath)
		if err != nil {
			return provider.Result{}, fmt.Errorf("envdiff.Diff: %w", err)
		}
		cfgMod = info.ModTime()
	}

	// 같은 디렉토리/설정/저널이면 재계산을 생략한다.
	if p.Store != nil && p.SessionID != "" {
		if sess := p.Store.Load(p.SessionID); sess.Fresh(dir, cfgPath, cfgMod, journalRaw) {
			p.log.Debug("변경 없음 (캐시)", "dir", dir)
			return provider.Result{NoChange: true}, nil
		}
	}

	cfg, err := p.loadConfig(cfgPath)
	if err != nil {
		return provider.Result{}, fmt.Errorf("envdiff.Diff: %w", err)
	}

	prev, err := DecodeJournal(journalRaw)
	if err != nil {
		// 깨진 저널은 버리고 진행한다. 원복 불가 항목이 남을 수 있지만
		// 세션을 멈추는 것보다 낫다.
		p.log.Warn("원복 저널이 손상되어 초기화합니다", "error", err)
	}

	ops, next := Compute(cfg, cfgDirOf(cfgPath), p.Environ, prev)

	text, changed, err := p.render(ops, prev, next)
	if err != nil {
		return provider.Result{}, fmt.Errorf("envdiff.Diff: %w", err)
	}

	p.saveState(dir, cfgPath, cfgMod, next, changed, journalRaw)

	if !changed {
		return provider.Result{NoChange: true}, nil
	}
	p.log.Debug("환경 변경 적용", "dir", dir, "ops", len(ops))
	return provider.Result{Text: text}, nil
}

// render는 Op 목록과 저널 갱신을 dialect 구문으로 바꾼다.
func (p *Provider) render(ops []Op, prev, next *Journal) (string, bool, error) {
	var b strings.Builder
	for _, op := range ops {
		if op.Unset {
			b.WriteString(p.Dialect.Unset(op.Key))
			continue
		}
		b.WriteString(p.Dialect.Export(op.Key, op.Value))
	}

	encoded := ""
	if !next.Empty() {
		var err error
		encoded, err = next.Encode()
		if err != nil {
			return "", false, err
		}
	}
	prevEncoded := ""
	if !prev.Empty() {
		prevEncoded, _ = prev.Encode()
	}

	switch {
	case encoded == prevEncoded:
		// 저널 갱신 불필요
	case encoded == "":
		b.WriteString(p.Dialect.Unset(hook.EnvDiff))
	default:
		b.WriteString(p.Dialect.Export(hook.EnvDiff, encoded))
	}

	changed := len(ops) > 0 || encoded != prevEncoded
	return b.String(), changed, nil
}

func (p *Provider) findConfig(dir string) string {
	return config.Find(dir)
}

func (p *Provider) loadConfig(path string) (*config.DirConfig, error) {
	if path == "" {
		return nil, nil
	}
	return config.Load(path)
}

func cfgDirOf(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Dir(path)
}

func (p *Provider) saveState(dir, cfgPath string, cfgMod time.Time, next *Journal, changed bool, prevRaw string) {
	if p.Store == nil || p.SessionID == "" {
		return
	}
	journal := prevRaw
	if changed {
		if next.Empty() {
			journal = ""
		} else if enc, err := next.Encode(); err == nil {
			journal = enc
		}
	}
	sess := &state.Session{
		SessionID:  p.SessionID,
		LastDir:    dir,
		ConfigPath: cfgPath,
		Journal:    journal,
	}
	if cfgPath != "" {
		sess.ConfigMod = cfgMod.UTC().Format(time.RFC3339)
	}
	if err := p.Store.Save(sess); err != nil {
		p.log.Debug("세션 캐시 저장 실패", "error", err)
	}
}
