package store

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/peterbourgon/diskv/v3"
)

const (
	fileExt   = ".json"
	tmpSuffix = ".tmp"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		TempDir:           basePath + tmpSuffix,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	mu       sync.Mutex
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) Get(key string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	// Read past the cache: another process may have rewritten the file.
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *persistence) Set(key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.d.Write(key, value)
}

func (p *persistence) Keys(ctx context.Context) []string {
	keys := make([]string, 0)
	if _, err := os.Stat(p.basePath); err != nil {
		return keys
	}
	for key := range p.d.Keys(ctx.Done()) {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: s + fileExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.TrimSuffix(pathKey.FileName, fileExt)
}
