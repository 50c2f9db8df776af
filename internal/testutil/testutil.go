// Package testutil provides common test helpers for the denv project.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteDirConfig writes a denv.toml with the given content into dir and
// returns its path.
func WriteDirConfig(t *testing.T, dir string, content string) string {
	t.Helper()

	path := filepath.Join(dir, "denv.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteDirConfig: write failed: %v", err)
	}
	return path
}

// TempDirConfig creates a temporary directory containing a denv.toml with
// the given content and returns the directory path.
func TempDirConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	WriteDirConfig(t, dir, content)
	return dir
}

// Env builds a getenv func backed by the given map, for session
// reconstruction in tests.
func Env(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

// EnvSlice converts the map into "KEY=VALUE" form, mirroring os.Environ.
func EnvSlice(vars map[string]string) []string {
	out := make([]string, 0, len(vars))
	for k, v := range vars {
		out = append(out, k+"="+v)
	}
	return out
}
