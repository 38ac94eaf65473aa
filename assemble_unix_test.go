//go:build unix

package jpgpdf

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler_WriteFile_Permissions(t *testing.T) {
	old := syscall.Umask(0o027)
	defer syscall.Umask(old)

	dir := t.TempDir()
	pages := loadPages(t, writeJPEG(t, dir, "a.jpg", red, 20, 20))

	t.Run("new file follows umask", func(t *testing.T) {
		out := filepath.Join(dir, "new.pdf")
		require.NoError(t, NewAssembler().WriteFile(pages, out))
		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
	})

	t.Run("replaced file keeps its mode", func(t *testing.T) {
		out := filepath.Join(dir, "private.pdf")
		require.NoError(t, os.WriteFile(out, []byte("old"), 0o600))
		require.NoError(t, os.Chmod(out, 0o600))
		require.NoError(t, NewAssembler().WriteFile(pages, out))
		info, err := os.Stat(out)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.NotEqual(t, "old", string(data))
	})
}
