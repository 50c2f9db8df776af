package cli

import (
	"github.com/hbjs97/denv/internal/config"
	"github.com/hbjs97/denv/internal/shell"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrUnsupportedShell는 지원하지 않는 셸 dialect를 나타내는 sentinel error다.
	ErrUnsupportedShell = shell.ErrUnsupported
	// ErrConfig는 디렉토리 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
)
