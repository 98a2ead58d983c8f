package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Cache manages the local manifest cache.
type Cache struct {
	config *Config
}

// NewCache creates a Cache with the given configuration. A nil config uses
// DefaultConfig.
func NewCache(config *Config) *Cache {
	if config == nil {
		config = DefaultConfig()
	}
	return &Cache{config: config}
}

// Config returns the cache configuration.
func (c *Cache) Config() *Config {
	return c.config
}

// Resolve returns the filesystem path for a cached repository ref.
func (c *Cache) Resolve(repoPath, ref string) (string, error) {
	if !c.config.IsCached(repoPath, ref) {
		return "", fmt.Errorf("manifest not cached: %s@%s", repoPath, ref)
	}
	return c.config.ManifestPath(repoPath, ref), nil
}

// Store copies the manifest files of a checked-out repository into the
// cache. Only manifest files (.yaml, .yml) are kept.
func (c *Cache) Store(repoPath, ref, sourceDir string) error {
	destDir := c.config.ManifestPath(repoPath, ref)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	return filepath.Walk(sourceDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		relPath, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		destPath := filepath.Join(destDir, relPath)
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(destPath, content, 0644)
	})
}

// Remove removes a cached repository ref.
func (c *Cache) Remove(repoPath, ref string) error {
	return os.RemoveAll(c.config.ManifestPath(repoPath, ref))
}

// Clean removes the entire cache.
func (c *Cache) Clean() error {
	return os.RemoveAll(c.config.CacheDir)
}

// Hash computes a content hash over a cached repository ref.
func (c *Cache) Hash(repoPath, ref string) (string, error) {
	if !c.config.IsCached(repoPath, ref) {
		return "", fmt.Errorf("manifest not cached: %s@%s", repoPath, ref)
	}
	return hashDir(c.config.ManifestPath(repoPath, ref))
}

// hashDir computes a deterministic sha256 over a directory's files: each
// file's relative path and content feed the digest in sorted path order.
func hashDir(dir string) (string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	sort.Strings(files)

	h := sha256.New()
	for _, path := range files {
		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			return "", err
		}
		io.WriteString(h, relPath)
		content, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		h.Write(content)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
