// Package observability는 denv의 진단 로그를 담당한다.
// stdout은 셸이 eval하는 텍스트 전용이므로 로그는 항상 stderr로 나간다.
package observability

import (
	"log/slog"
	"os"
	"strings"
)

var logger = newLogger()

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	switch strings.ToLower(os.Getenv("DENV_LOG")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Logger는 전역 로거를 반환한다.
func Logger() *slog.Logger {
	return logger
}

// WithComponent는 component 필드가 붙은 로거를 반환한다.
func WithComponent(name string) *slog.Logger {
	return logger.With("component", name)
}
