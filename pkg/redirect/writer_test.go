package redirect

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConf(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "redirects.conf")
	conf := BuildConf([]Rule{{MatchPattern: "^/a$", RedirectPattern: "/b"}})

	require.NoError(t, WriteConf(path, conf))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, conf, string(got))

	t.Run("overwrites existing file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("a much longer previous document\n\n\n"), 0o644))
		require.NoError(t, WriteConf(path, "short\n"))
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "short\n", string(got))
	})

	t.Run("empty document", func(t *testing.T) {
		require.NoError(t, WriteConf(path, ""))
		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestWriteConf_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "redirects.conf")

	err := WriteConf(path, "x")
	require.Error(t, err)

	var we *WriteError
	require.True(t, errors.As(err, &we))
	assert.Equal(t, path, we.Path)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
