package model

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasAcceptedExtension(t *testing.T) {
	assert.True(t, (&FileHandle{Name: "app.log"}).HasAcceptedExtension())
	assert.True(t, (&FileHandle{Name: "NOTES.TXT"}).HasAcceptedExtension())
	assert.False(t, (&FileHandle{Name: "dump.json"}).HasAcceptedExtension())
	assert.False(t, (&FileHandle{Name: "log"}).HasAcceptedExtension())
}

func TestFileFromPathCanBeReopened(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	f, err := FileFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "app.log", f.Name)
	assert.Equal(t, int64(5), f.Size)

	for i := 0; i < 2; i++ {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		assert.Equal(t, "hello", string(data))
	}
}

func TestFileFromPathMissing(t *testing.T) {
	_, err := FileFromPath(filepath.Join(t.TempDir(), "missing.log"))
	assert.Error(t, err)
}
