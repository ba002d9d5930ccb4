package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToolImagePath(t *testing.T) {
	require.Equal(t, "tools/u1/drill.jpg", ToolImagePath("u1", "drill.jpg"))
	// path components in the filename are stripped
	require.Equal(t, "tools/u1/drill.jpg", ToolImagePath("u1", "../../drill.jpg"))
}

func TestBlobStoreSaveRemove(t *testing.T) {
	b := NewBlobStore(t.TempDir())

	rel, err := b.Save("tools/u1/saw.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "tools/u1/saw.png", rel)

	data, err := os.ReadFile(filepath.Join(b.Root, rel))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(data))

	require.NoError(t, b.Remove(rel))
	_, err = os.Stat(filepath.Join(b.Root, rel))
	require.True(t, os.IsNotExist(err))

	// removing again is fine
	require.NoError(t, b.Remove(rel))
	// empty path is a no-op
	require.NoError(t, b.Remove(""))
}

func TestBlobStoreRejectsEscapingPaths(t *testing.T) {
	b := NewBlobStore(t.TempDir())

	_, err := b.Save("../outside.txt", strings.NewReader("x"))
	require.Error(t, err)

	_, err = b.Save("/etc/passwd", strings.NewReader("x"))
	require.Error(t, err)

	require.Error(t, b.Remove("../outside.txt"))
}
