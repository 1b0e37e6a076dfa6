package storage

import (
	"errors"
	"os"
	"path"
	"path/filepath"
)

// LocalStorage writes media files to a directory served statically by the
// HTTP layer.
type LocalStorage struct {
	dir        string // filesystem directory files are written to
	publicPath string // URL prefix the directory is mounted under
}

func NewLocalStorage(dir, publicPath string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStorage{dir: dir, publicPath: publicPath}, nil
}

func (l *LocalStorage) Save(data []byte, filename string) (string, error) {
	if filename == "" {
		return "", errors.New("filename is empty")
	}

	target := filepath.Join(l.dir, filename)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	return path.Join(l.publicPath, filename), nil
}
