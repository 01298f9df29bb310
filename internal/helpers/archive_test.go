package helpers

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildZip creates an in-memory zip. Names ending in "/" become directories.
func buildZip(t *testing.T, entries map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if content != "" {
			_, err = w.Write([]byte(content))
			require.NoError(t, err)
		}
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractZipBytes(t *testing.T) {
	t.Run("valid zip", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		data := buildZip(t, map[string]string{
			"demo-main/":               "",
			"demo-main/run.py":         "print('hi')",
			"demo-main/sub/install.sh": "echo hi",
		})

		err := ExtractZipBytes(fs, data, "/work")
		require.NoError(t, err)

		content, err := afero.ReadFile(fs, filepath.Join("/work", "demo-main", "run.py"))
		require.NoError(t, err)
		assert.Equal(t, "print('hi')", string(content))

		exists, err := afero.Exists(fs, filepath.Join("/work", "demo-main", "sub", "install.sh"))
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("corrupted archive", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		err := ExtractZipBytes(fs, []byte("not a zip"), "/work")
		assert.Error(t, err)
	})

	t.Run("zip slip rejected", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		data := buildZip(t, map[string]string{
			"../evil.sh": "rm -rf /",
		})

		err := ExtractZipBytes(fs, data, "/work")
		assert.Error(t, err)

		exists, _ := afero.Exists(fs, "/evil.sh")
		assert.False(t, exists)
	})
}

func TestDirMode(t *testing.T) {
	assert.Equal(t, 0755, int(dirMode(0)))
	assert.Equal(t, 0700, int(dirMode(0700)))
	assert.Equal(t, 0755, int(dirMode(0500)))
}
