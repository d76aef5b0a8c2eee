package ingestion

import (
	"fmt"
	"os"
	"path/filepath"
)

// AttachmentCache resolves local paths for downloaded attachments, keyed
// by filename, so each attachment is downloaded at most once.
type AttachmentCache struct {
	dir string
}

func NewAttachmentCache(dir string) (*AttachmentCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachment cache directory: %w", err)
	}
	return &AttachmentCache{dir: dir}, nil
}

// Resolve returns the local path for filename and whether the file is
// already materialized.
func (c *AttachmentCache) Resolve(filename string) (string, bool) {
	path := filepath.Join(c.dir, filepath.Base(filename))
	info, err := os.Stat(path)
	return path, err == nil && info.Size() > 0
}

func (c *AttachmentCache) Dir() string { return c.dir }
