// Package storage holds the store/fetch-by-URL contract for uploaded
// images. LocalStore keeps files on disk under a directory that the HTTP
// layer serves statically.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore persists an uploaded file and returns the public URL it will be
// served from.
type FileStore interface {
	Save(filename string, r io.Reader) (string, error)
}

// LocalStore writes uploads to a local directory.
type LocalStore struct {
	dir     string
	baseURL string // e.g. http://localhost:8080
}

// NewLocalStore creates a LocalStore rooted at dir. The directory is
// created if missing.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Save writes the file under a timestamp-prefixed name and returns its URL.
func (s *LocalStore) Save(filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitize(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return s.baseURL + "/uploads/" + name, nil
}

// sanitize strips any path component and characters that would break the
// served URL.
func sanitize(filename string) string {
	name := filepath.Base(filename)
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" || name == "." {
		name = "file"
	}
	return name
}
