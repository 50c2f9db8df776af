package cli

import (
	"errors"
)

// ExitCode는 denv의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitUnsupportedShell는 지원하지 않는 셸 dialect다.
	ExitUnsupportedShell ExitCode = 2
	// ExitConfigError는 디렉토리 설정 파일 오류다.
	ExitConfigError ExitCode = 3
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrUnsupportedShell):
		return ExitUnsupportedShell
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitGeneral
	}
}
