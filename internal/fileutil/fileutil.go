// Package fileutil holds small filesystem helpers for the CLI.
package fileutil

import (
	"os"
	"strings"
)

// SanitizeFilename cleans a filename by replacing problematic characters.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, ":", " -")
	name = strings.ReplaceAll(name, "/", "-")
	name = strings.ReplaceAll(name, "\\", "-")
	return name
}

// FileExists checks if a regular file exists at the given path.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
