package filestore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	appErr "github.com/xxxsen/bizdir/internal/pkg/errors"
)

type localConfig struct {
	Dir       string `json:"dir"`
	PublicURL string `json:"public_url"`
}

// localStore writes each object to a temp file first and renames it into
// place, readers never observe a partial upload.
type localStore struct {
	dir       string
	publicURL string
}

func newLocalStore(args interface{}) (*localStore, error) {
	cfg := &localConfig{}
	if err := decodeConfig(args, cfg); err != nil {
		return nil, err
	}
	if cfg.Dir == "" {
		return nil, fmt.Errorf("local store dir is required")
	}
	return &localStore{dir: cfg.Dir, publicURL: cfg.PublicURL}, nil
}

func (s *localStore) Type() string {
	return TypeLocal
}

func (s *localStore) URL(key, baseURL string) string {
	if s.publicURL == "" {
		return fallbackURL(key, baseURL)
	}
	return strings.TrimSuffix(s.publicURL, "/") + "/" + strings.TrimPrefix(key, "/")
}

func (s *localStore) Put(_ context.Context, obj Object) error {
	if !ValidKey(obj.Key) {
		return ErrInvalidKey
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if _, err := obj.Body.Seek(0, io.SeekStart); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, obj.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", obj.Key, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, obj.Key))
}

func (s *localStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	if !ValidKey(key) {
		return nil, ErrInvalidKey
	}
	file, err := os.Open(filepath.Join(s.dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, appErr.ErrNotFound
	}
	return file, err
}

func (s *localStore) Delete(_ context.Context, key string) error {
	if !ValidKey(key) {
		return ErrInvalidKey
	}
	if err := os.Remove(filepath.Join(s.dir, key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
