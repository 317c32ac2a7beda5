package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path"
	"path/filepath"
	"sync"
)

// DiskCache keeps downloaded archives on disk, keyed by their source URL.
type DiskCache struct {
	sync.RWMutex
	dir string
}

func New(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) GetPath(url string) string {
	c.RLock()
	defer c.RUnlock()
	return c.getPath(url)
}

func (c *DiskCache) getPath(url string) string {
	return filepath.Join(c.dir, urlKey(url), path.Base(url))
}

func (c *DiskCache) Has(url string) bool {
	c.RLock()
	defer c.RUnlock()
	_, err := os.Stat(c.getPath(url))
	return err == nil
}

func (c *DiskCache) Store(url, src string) (string, error) {
	c.Lock()
	defer c.Unlock()

	destPath := c.getPath(url)
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return "", err
	}

	if err := os.Rename(src, destPath); err != nil {
		return "", err
	}

	return destPath, nil
}

func (c *DiskCache) Size() (int64, error) {
	c.RLock()
	defer c.RUnlock()

	var size int64

	err := filepath.Walk(c.dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})

	return size, err
}

func (c *DiskCache) Clear() error {
	c.Lock()
	defer c.Unlock()

	return os.RemoveAll(c.dir)
}

func urlKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return hex.EncodeToString(sum[:])[:16]
}
