package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"veridia/internal/common"
)

type FilesystemStore struct {
	dir     string
	baseURL string
}

// NewFilesystemStore writes uploads under dir and returns URLs rooted at
// baseURL (e.g. http://localhost:8000/media/resumes).
func NewFilesystemStore(dir, baseURL string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FilesystemStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *FilesystemStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	// Prefix with a fresh UUID so uploads never collide or overwrite.
	name := common.NewUUID().String() + "_" + sanitize(filename)
	target := filepath.Join(s.dir, name)
	file, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer file.Close()
	if _, err := io.Copy(file, content); err != nil {
		_ = os.Remove(target)
		return "", err
	}
	return s.baseURL + "/" + name, nil
}

func sanitize(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		return "resume"
	}
	return base
}
