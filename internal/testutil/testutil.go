// Package testutil provides common test utilities.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnv provides a sandboxed test directory that validates all paths stay
// within it. Cleanup happens automatically when the test completes.
type TestEnv struct {
	t       *testing.T
	rootDir string
}

// NewTestEnv creates a new sandboxed test environment.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return &TestEnv{
		t:       t,
		rootDir: t.TempDir(),
	}
}

// RootDir returns the root directory of the test environment.
func (e *TestEnv) RootDir() string {
	return e.rootDir
}

// Path returns an absolute path within the test environment, failing the
// test if the path would escape the sandbox.
func (e *TestEnv) Path(elem ...string) string {
	e.t.Helper()

	cleanPath := filepath.Clean(filepath.Join(e.rootDir, filepath.Join(elem...)))
	cleanRoot := filepath.Clean(e.rootDir)
	if cleanPath != cleanRoot && !strings.HasPrefix(cleanPath, cleanRoot+string(filepath.Separator)) {
		e.t.Fatalf("path %q escapes test sandbox %q", cleanPath, e.rootDir)
	}
	return cleanPath
}

// WriteFile writes content to a file within the test environment, creating
// parent directories as needed.
func (e *TestEnv) WriteFile(path string, content []byte) {
	e.t.Helper()

	absPath := e.Path(path)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		e.t.Fatalf("failed to create directory for %q: %v", absPath, err)
	}
	if err := os.WriteFile(absPath, content, 0o644); err != nil {
		e.t.Fatalf("failed to write file %q: %v", absPath, err)
	}
}

// ReadFile reads a file from within the test environment.
func (e *TestEnv) ReadFile(path string) []byte {
	e.t.Helper()

	content, err := os.ReadFile(e.Path(path))
	if err != nil {
		e.t.Fatalf("failed to read file %q: %v", e.Path(path), err)
	}
	return content
}

// FileExists checks if a file exists within the test environment.
func (e *TestEnv) FileExists(path string) bool {
	e.t.Helper()

	_, err := os.Stat(e.Path(path))
	return err == nil
}
