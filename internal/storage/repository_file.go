package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ericogr/battleships/internal/keys"
)

const saveFileExt = ".txt"

type fileRepository struct {
	dir string
}

// NewFileRepository stores each slot as <dir>/<slot key>.txt. The directory
// must exist; writes into a missing directory fail with ErrNotFound.
func NewFileRepository(dir string) Repository {
	return &fileRepository{dir: dir}
}

func (r *fileRepository) path(name string) (string, error) {
	key := keys.SlotKey(name)
	if key == "" {
		return "", fmt.Errorf("%w: invalid slot name %q", ErrNotFound, name)
	}
	return filepath.Join(r.dir, key+saveFileExt), nil
}

func (r *fileRepository) Exists(name string) (bool, error) {
	p, err := r.path(name)
	if err != nil {
		return false, nil
	}
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.Size() > 0, nil
}

func (r *fileRepository) Read(name string) ([]byte, error) {
	p, err := r.path(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, fmt.Errorf("%w in slot %q", ErrNoSavedGame, name)
	}
	return b, nil
}

// Write stores data followed by a newline, as text files end with one.
func (r *fileRepository) Write(name string, data []byte) error {
	p, err := r.path(name)
	if err != nil {
		return err
	}
	if info, err := os.Stat(r.dir); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: save directory %s is missing", ErrNotFound, r.dir)
	}
	out := data
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(append([]byte(nil), data...), '\n')
	}
	return os.WriteFile(p, out, 0o644)
}

func (r *fileRepository) Clear(name string) error {
	p, err := r.path(name)
	if err != nil {
		return err
	}
	if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return os.WriteFile(p, nil, 0o644)
}
