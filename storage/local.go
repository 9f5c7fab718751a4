package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore writes uploaded files under a base directory on local disk and
// hands back the relative path that gets recorded on the owning entity.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates the base directory if needed.
func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// Save streams r into subDir under the base directory. The stored name is
// uuid-prefixed so concurrent uploads of the same filename never collide.
// Returns the relative path (forward slashes) to record on the entity.
func (s *LocalStore) Save(r io.Reader, subDir, suggestedName string) (string, error) {
	name := filepath.Base(suggestedName)
	if name == "." || name == "/" || name == "" {
		name = "upload"
	}
	name = uuid.NewString() + "_" + name

	dir := filepath.Join(s.baseDir, subDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	fullPath := filepath.Join(dir, name)
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("write file: %w", err)
	}

	rel := filepath.Join(s.baseDir, subDir, name)
	return strings.ReplaceAll(rel, "\\", "/"), nil
}

// Remove deletes a previously stored file, used to roll back when the record
// write that should reference it fails.
func (s *LocalStore) Remove(relPath string) error {
	return os.Remove(filepath.FromSlash(relPath))
}
