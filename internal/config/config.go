// Package config는 디렉토리 단위 환경 설정 파일(denv.toml/denv.yaml)을
// 탐색하고 파싱한다.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("설정 파일 오류")

// fileNames는 탐색 대상 파일 이름들이다 (우선순위 순).
var fileNames = []string{"denv.toml", ".denv.toml", "denv.yaml", ".denv.yaml"}

// DirConfig는 하나의 디렉토리 설정이다.
type DirConfig struct {
	// Env는 디렉토리 안에서 export할 환경변수들이다.
	Env map[string]string `toml:"env" yaml:"env" validate:"omitempty,dive,keys,envname,endkeys"`
	// Path는 PATH 앞에 덧붙일 항목들이다. 상대 경로는 설정 파일
	// 디렉토리 기준으로 해석된다.
	Path []string `toml:"path" yaml:"path" validate:"omitempty,dive,required"`
}

var envNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// validate is the shared validator instance.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// env 키는 셸 구문에 그대로 들어가므로 식별자 형식만 허용한다.
	_ = v.RegisterValidation("envname", func(fl validator.FieldLevel) bool {
		return envNameRe.MatchString(fl.Field().String())
	})
	return v
}

// Find는 dir에서 파일시스템 루트까지 올라가며 가장 가까운 설정 파일
// 경로를 반환한다. 없으면 빈 문자열.
func Find(dir string) string {
	dir = filepath.Clean(dir)
	for {
		for _, name := range fileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load는 설정 파일을 파싱하고 검증한다.
func Load(path string) (*DirConfig, error) {
	var cfg DirConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
		}
	default:
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
		}
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w: %s: %v", ErrConfig, path, err)
	}
	return &cfg, nil
}
