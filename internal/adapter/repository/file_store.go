package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/eslsoft/lingualatina/internal/repository"
)

// FileStore keeps every slot as <dir>/<key>.json on an afero filesystem.
type FileStore struct {
	fs  afero.Fs
	dir string
}

var _ repository.SlotStore = (*FileStore)(nil)

// NewFileStore creates dir when missing.
func NewFileStore(fsys afero.Fs, dir string) (*FileStore, error) {
	dir = filepath.Clean(strings.TrimSpace(dir))
	if dir == "" || dir == "." {
		dir = "."
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{fs: fsys, dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, slotFileName(key))
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, repository.ErrSlotNotFound
		}
		return nil, fmt.Errorf("read slot %q: %w", key, err)
	}
	return data, nil
}

// Put writes through a temporary file so a crash never leaves a torn document.
func (s *FileStore) Put(_ context.Context, key string, value []byte) error {
	target := s.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, value, 0o600); err != nil {
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace slot %q: %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	if err := s.fs.Remove(s.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}

func slotFileName(key string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ":", "_")
	return replacer.Replace(key) + ".json"
}
