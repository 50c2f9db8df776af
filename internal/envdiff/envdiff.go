// Package envdiff는 디렉토리 설정으로부터 환경 변경(diff)을 계산하는
// 기본 diff provider다. 적용한 변경의 원복 정보는 __DENV_DIFF 환경변수에
// 저널로 실려 다니므로, 디렉토리를 벗어나면 이전 환경이 복원된다.
package envdiff

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hbjs97/denv/internal/config"
)

// Journal은 적용된 변경의 원복 정보다.
type Journal struct {
	// Vars는 키별 원래 값이다. nil이면 원래 없던 변수다.
	Vars map[string]*string `json:"vars,omitempty"`
	// Path는 PATH 앞에 덧붙인 항목들이다.
	Path []string `json:"path,omitempty"`
}

// NewJournal은 빈 저널을 만든다.
func NewJournal() *Journal {
	return &Journal{Vars: make(map[string]*string)}
}

// Empty는 저널에 원복할 내용이 없으면 true다.
func (j *Journal) Empty() bool {
	return len(j.Vars) == 0 && len(j.Path) == 0
}

// Encode는 저널을 base64 JSON으로 직렬화한다.
func (j *Journal) Encode() (string, error) {
	data, err := json.Marshal(j)
	if err != nil {
		return "", fmt.Errorf("envdiff.Encode: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// DecodeJournal은 __DENV_DIFF 값을 역직렬화한다. 빈 값은 빈 저널,
// 깨진 값은 빈 저널과 에러를 함께 반환한다 (호출 쪽에서 경고 후 진행).
func DecodeJournal(s string) (*Journal, error) {
	j := NewJournal()
	if s == "" {
		return j, nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return NewJournal(), fmt.Errorf("envdiff.DecodeJournal: %w", err)
	}
	if err := json.Unmarshal(data, j); err != nil {
		return NewJournal(), fmt.Errorf("envdiff.DecodeJournal: %w", err)
	}
	if j.Vars == nil {
		j.Vars = make(map[string]*string)
	}
	return j, nil
}

// Op는 하나의 환경 변경이다.
type Op struct {
	Key   string
	Value string
	Unset bool
}

// Compute는 설정이 요구하는 환경과 현재 환경, 이전 저널을 비교해
// 적용할 Op 목록과 새 저널을 만든다. cfg가 nil이면 (설정 파일 없음)
// 이전 저널의 원복만 수행한다. 결과 순서는 결정적이다.
func Compute(cfg *config.DirConfig, cfgDir string, environ map[string]string, prev *Journal) ([]Op, *Journal) {
	if prev == nil {
		prev = NewJournal()
	}
	next := NewJournal()
	var ops []Op

	desired := map[string]string{}
	if cfg != nil {
		for k, v := range cfg.Env {
			desired[k] = v
		}
	}

	// PATH: 설정의 prepend 항목과 이전 prepend를 비교해 하나의
	// 일반 변수 변경으로 환원한다.
	var prepend []string
	if cfg != nil {
		for _, p := range cfg.Path {
			if !filepath.IsAbs(p) {
				p = filepath.Join(cfgDir, p)
			}
			prepend = append(prepend, filepath.Clean(p))
		}
	}
	if len(prepend) > 0 || len(prev.Path) > 0 {
		base := stripEntries(environ["PATH"], prev.Path)
		want := joinPath(dedupe(append(append([]string{}, prepend...), splitPath(base)...)))
		if want != environ["PATH"] {
			ops = append(ops, Op{Key: "PATH", Value: want})
		}
		next.Path = prepend
	}

	// 설정이 요구하는 변수들.
	keys := make([]string, 0, len(desired))
	for k := range desired {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := desired[k]
		cur, has := environ[k]
		if orig, tracked := prev.Vars[k]; tracked {
			next.Vars[k] = orig
		} else if has {
			c := cur
			next.Vars[k] = &c
		} else {
			next.Vars[k] = nil
		}
		if !has || cur != v {
			ops = append(ops, Op{Key: k, Value: v})
		}
	}

	// 더 이상 요구되지 않는 변수들의 원복.
	restore := make([]string, 0, len(prev.Vars))
	for k := range prev.Vars {
		if _, still := desired[k]; !still {
			restore = append(restore, k)
		}
	}
	sort.Strings(restore)
	for _, k := range restore {
		orig := prev.Vars[k]
		cur, has := environ[k]
		if orig == nil {
			if has {
				ops = append(ops, Op{Key: k, Unset: true})
			}
			continue
		}
		if !has || cur != *orig {
			ops = append(ops, Op{Key: k, Value: *orig})
		}
	}

	return ops, next
}

func splitPath(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, string(filepath.ListSeparator))
}

func joinPath(entries []string) string {
	return strings.Join(entries, string(filepath.ListSeparator))
}

// stripEntries는 PATH 문자열에서 항목들의 첫 등장을 제거한다.
func stripEntries(path string, entries []string) string {
	if len(entries) == 0 {
		return path
	}
	remove := make(map[string]int)
	for _, e := range entries {
		remove[e]++
	}
	var kept []string
	for _, p := range splitPath(path) {
		if remove[p] > 0 {
			remove[p]--
			continue
		}
		kept = append(kept, p)
	}
	return joinPath(kept)
}

func dedupe(entries []string) []string {
	seen := make(map[string]bool, len(entries))
	var out []string
	for _, e := range entries {
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}
