package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveWritesFile(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	path, err := fs.Save(7, "My Resume.pdf", []byte("%PDF-1.4 data"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "resume_7_") || !strings.HasSuffix(name, ".pdf") {
		t.Errorf("unexpected file name %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "%PDF-1.4 data" {
		t.Errorf("content = %q", data)
	}
}

func TestSaveIgnoresClientPath(t *testing.T) {
	root := t.TempDir()
	fs, err := NewFileStore(root)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	path, err := fs.Save(1, "../../etc/passwd", []byte("x"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		t.Errorf("file escaped the upload root: %q", path)
	}
}

func TestSaveMissingExtension(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	path, err := fs.Save(1, "resume", []byte("plain text"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if !strings.HasSuffix(path, ".bin") {
		t.Errorf("path = %q, want .bin fallback", path)
	}
}
