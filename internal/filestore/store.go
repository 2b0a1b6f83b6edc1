package filestore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xxxsen/bizdir/internal/config"
)

const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

var ErrInvalidKey = errors.New("invalid file key")

// Object is a single upload, Body is rewound before it is written.
type Object struct {
	Key         string
	Body        io.ReadSeeker
	Size        int64
	ContentType string
}

// Store keeps uploaded company logos and blog images.
// Open returns errors.ErrNotFound for missing keys.
type Store interface {
	Type() string
	Put(ctx context.Context, obj Object) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	URL(key, baseURL string) string
}

func New(cfg config.FileStoreConfig) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case "":
		return nil, fmt.Errorf("file_store.type is required")
	case TypeLocal:
		return newLocalStore(cfg.Data)
	case TypeS3:
		return newS3Store(cfg.Data)
	default:
		return nil, fmt.Errorf("unsupported file store type: %s", cfg.Type)
	}
}

// ValidKey rejects keys that could escape the store root.
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." {
		return false
	}
	return !strings.ContainsAny(key, "/\\")
}

// NewKey returns a random key keeping the lowercased extension of filename.
func NewKey(filename string) string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	key := hex.EncodeToString(buf)
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" || !ValidKey(ext) {
		return key
	}
	return key + ext
}

func fallbackURL(key, baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/api/v1/files/" + strings.TrimPrefix(key, "/")
}

func decodeConfig(args interface{}, dst interface{}) error {
	if args == nil {
		return fmt.Errorf("store config is required")
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode store config: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode store config: %w", err)
	}
	return nil
}
