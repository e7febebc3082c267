package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore keeps uploaded resume files on local disk under a single
// root directory. File names are server-generated, so client-supplied
// names never touch the filesystem.
type FileStore struct {
	root string
}

// NewFileStore creates the store, making the root directory if needed.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{root: root}, nil
}

// Save writes the file and returns its storage path. The name encodes
// the owning user and a fresh uuid: resume_<userID>_<uuid>.<ext>.
func (fs *FileStore) Save(userID int, originalName string, data []byte) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(originalName), ".")
	if ext == "" {
		ext = "bin"
	}

	name := fmt.Sprintf("resume_%d_%s.%s", userID, uuid.NewString(), ext)
	path := filepath.Join(fs.root, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write resume file: %w", err)
	}
	return path, nil
}
