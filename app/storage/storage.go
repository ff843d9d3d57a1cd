package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// PhotoStorage is the object store holding product photos. Keys are
// relative to the product bucket.
type PhotoStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
	Remove(ctx context.Context, keys []string) error
	PublicURL(key string) string
}

// IsExternal reports whether a photo reference is a full URL rather than a
// key owned by the store.
func IsExternal(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// InternalKeys filters out external URLs.
func InternalKeys(refs []string) []string {
	var keys []string
	for _, ref := range refs {
		if ref != "" && !IsExternal(ref) {
			keys = append(keys, ref)
		}
	}
	return keys
}

// URLFor resolves a photo reference for display.
func URLFor(s PhotoStorage, ref string) string {
	if ref == "" || IsExternal(ref) {
		return ref
	}
	return s.PublicURL(ref)
}

type Config struct {
	Driver    string
	BaseURL   string
	APIKey    string
	Bucket    string
	UploadDir string
}

func New(cfg Config) (PhotoStorage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalStorage(cfg.UploadDir, "/uploads")
	case "hosted":
		if cfg.BaseURL == "" || cfg.APIKey == "" {
			return nil, fmt.Errorf("hosted storage requires STORAGE_URL and STORAGE_KEY")
		}
		return NewHostedStorage(cfg.BaseURL, cfg.APIKey, cfg.Bucket), nil
	case "memory":
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.Driver)
	}
}
