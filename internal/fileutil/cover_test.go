package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cusox/bgmeta/internal/testutil"
)

func TestBuildCoverFilename(t *testing.T) {
	assert.Equal(t, "Overlord - cover.jpg", BuildCoverFilename("Overlord"))
	assert.Equal(t, "Re - Zero - cover.jpg", BuildCoverFilename("Re: Zero"))
	assert.Equal(t, "a-b - cover.jpg", BuildCoverFilename("a/b"))
}

func TestWriteCover(t *testing.T) {
	env := testutil.NewTestEnv(t)
	data := []byte{0xFF, 0xD8, 0xFF}

	path, err := WriteCover(env.Path("covers"), "Overlord", data)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(env.Path("covers"), "Overlord - cover.jpg"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, data, written)
}

func TestFileExists(t *testing.T) {
	env := testutil.NewTestEnv(t)

	assert.False(t, FileExists(env.Path("missing.jpg")))

	env.WriteFile("present.jpg", []byte("x"))
	assert.True(t, FileExists(env.Path("present.jpg")))

	// Directories are not files.
	assert.False(t, FileExists(env.RootDir()))
}
