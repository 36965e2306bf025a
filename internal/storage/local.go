package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// LocalStore writes uploads to a directory on disk. The directory is
// served read-only under /uploads by the HTTP layer.
type LocalStore struct {
	root string
}

// NewLocalStore creates the images/videos subdirectories under root.
func NewLocalStore(root string) (*LocalStore, error) {
	for _, sub := range subdirs {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, err
		}
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) Save(field string, fh *multipart.FileHeader) (string, error) {
	if err := CheckUpload(field, fh); err != nil {
		return "", err
	}

	name := uploadName(field, fh.Filename)
	sub := subdirs[field]

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, sub, name))
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return fmt.Sprintf("/uploads/%s/%s", sub, name), nil
}
