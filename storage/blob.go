package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BlobStore keeps tool images on local disk under a media root.
// Paths are relative, `tools/{owner_id}/{filename}`, and that relative
// path is what gets persisted on the Tool row.
type BlobStore struct {
	Root string
}

func NewBlobStore(root string) *BlobStore { return &BlobStore{Root: root} }

// ToolImagePath builds the canonical blob path for a tool image.
func ToolImagePath(ownerID, filename string) string {
	return fmt.Sprintf("tools/%s/%s", ownerID, filepath.Base(filename))
}

func (b *BlobStore) abs(rel string) (string, error) {
	rel = filepath.Clean(rel)
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("bad blob path %q", rel)
	}
	return filepath.Join(b.Root, rel), nil
}

// Save writes the blob and returns the stored relative path.
func (b *BlobStore) Save(rel string, src io.Reader) (string, error) {
	abs, err := b.abs(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(abs)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, src); err != nil {
		os.Remove(abs)
		return "", err
	}
	return rel, nil
}

// Remove releases a blob. A missing file is not an error: the row is
// the source of truth, the file is best-effort.
func (b *BlobStore) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	abs, err := b.abs(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
