// Package state는 diff provider의 세션별 재계산 생략 캐시다.
// 코어 상태 기계는 이 캐시를 알지 못한다. 캐싱은 전적으로 provider의
// 책임이며, 세션이 끝나면 TTL prune으로 정리된다.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Session은 마지막 provider 호출의 요약이다.
type Session struct {
	Version    int    `json:"version"`
	SessionID  string `json:"session_id"`
	LastDir    string `json:"last_dir"`
	ConfigPath string `json:"config_path"`
	ConfigMod  string `json:"config_mtime"` // RFC3339
	Journal    string `json:"journal"`      // 적용 시점의 __DENV_DIFF 값
	SavedAt    string `json:"saved_at"`     // RFC3339
}

// Fresh는 동일 디렉토리/설정 파일/수정 시각/저널이면 true를 반환한다.
// 이때 provider는 diff 재계산을 생략할 수 있다.
func (s *Session) Fresh(dir, cfgPath string, cfgMod time.Time, journal string) bool {
	if s == nil || s.LastDir != dir || s.ConfigPath != cfgPath || s.Journal != journal {
		return false
	}
	if cfgPath == "" {
		return true
	}
	return s.ConfigMod == cfgMod.UTC().Format(time.RFC3339)
}

// Store는 세션 캐시 파일 저장소다.
type Store struct {
	Dir string
}

// NewStore는 dir 아래에 세션 파일을 두는 저장소를 만든다.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

func (st *Store) path(sessionID string) string {
	return filepath.Join(st.Dir, sessionID+".json")
}

// Load는 세션 캐시를 읽는다. 파일 없음/파싱 실패 시 nil 반환 (graceful).
func (st *Store) Load(sessionID string) *Session {
	if sessionID == "" {
		return nil
	}
	data, err := os.ReadFile(st.path(sessionID))
	if err != nil {
		return nil
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	return &s
}

// Save는 세션 캐시를 JSON 파일로 저장한다 (0600 권한).
func (st *Store) Save(s *Session) error {
	if s.SessionID == "" {
		return fmt.Errorf("state.Save: 세션 ID 없음")
	}
	s.Version = 1
	s.SavedAt = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("state.Save: %w", err)
	}
	if err := os.MkdirAll(st.Dir, 0700); err != nil {
		return fmt.Errorf("state.Save: %w", err)
	}
	return os.WriteFile(st.path(s.SessionID), data, 0600)
}

// Prune은 ttl보다 오래된 세션 파일을 제거한다. 셸 세션은 종료를
// 알리지 않으므로 주기적인 정리가 유일한 수거 경로다.
func (st *Store) Prune(ttl time.Duration) error {
	entries, err := os.ReadDir(st.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("state.Prune: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) > ttl {
			_ = os.Remove(filepath.Join(st.Dir, e.Name()))
		}
	}
	return nil
}
