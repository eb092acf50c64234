// Package storage persists uploaded media files under a local directory.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9.]`)

type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the upload to disk under a sanitized, timestamp-prefixed
// name so that display names can never collide or escape the uploads dir.
// Returns the absolute stored path.
func (s *LocalStore) Save(src io.Reader, originalName string) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), SanitizeName(originalName))

	fullPath, err := filepath.Abs(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(fullPath)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return fullPath, nil
}

// SanitizeName replaces every character outside [a-zA-Z0-9.] with an
// underscore.
func SanitizeName(name string) string {
	return unsafeChars.ReplaceAllString(filepath.Base(name), "_")
}

// IsAllowedMediaName reports whether the file extension is one of the
// accepted media container types.
func IsAllowedMediaName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp4", ".webm", ".ogg":
		return true
	default:
		return false
	}
}
