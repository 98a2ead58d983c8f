// Package fetch downloads universe manifest repositories into a local
// cache, so teams can share the manifests that define their universes the
// same way they share code.
package fetch

import (
	"os"
	"path/filepath"
	"strings"
)

// Config holds the cache layout for fetched manifests.
type Config struct {
	// CacheDir is the root directory for cached manifest checkouts.
	CacheDir string
}

// DefaultConfig returns the default cache configuration under the user's
// home directory.
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		CacheDir: filepath.Join(home, ".retarget", "manifests"),
	}
}

// EnsureDirs creates the cache directory if it does not exist.
func (c *Config) EnsureDirs() error {
	return os.MkdirAll(c.CacheDir, 0755)
}

// ManifestPath returns the cache path for a repository at a ref.
func (c *Config) ManifestPath(repoPath, ref string) string {
	return filepath.Join(c.CacheDir, sanitizePath(repoPath)+"@"+sanitizeRef(ref))
}

// IsCached reports whether a repository ref is already in the cache.
func (c *Config) IsCached(repoPath, ref string) bool {
	info, err := os.Stat(c.ManifestPath(repoPath, ref))
	return err == nil && info.IsDir()
}

// sanitizePath makes a repository path safe to use as a directory name.
func sanitizePath(repoPath string) string {
	return strings.ReplaceAll(repoPath, "/", "_")
}

// sanitizeRef makes a git ref safe to use in a directory name.
func sanitizeRef(ref string) string {
	return strings.ReplaceAll(ref, "/", "_")
}
