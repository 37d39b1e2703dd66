package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// BuildCoverFilename creates a standard cover filename from a title.
// Returns: "Title - cover.jpg"
func BuildCoverFilename(title string) string {
	return SanitizeFilename(title) + " - cover.jpg"
}

// WriteCover writes downloaded cover bytes into dir under a sanitized
// filename and returns the full path.
func WriteCover(dir, title string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cover directory: %w", err)
	}

	path := filepath.Join(dir, BuildCoverFilename(title))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cover file: %w", err)
	}
	return path, nil
}
