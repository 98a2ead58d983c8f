package fetch

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitFetcher fetches universe manifest repositories from Git.
type GitFetcher struct {
	cache *Cache
}

// NewGitFetcher creates a new GitFetcher.
func NewGitFetcher(cache *Cache) *GitFetcher {
	return &GitFetcher{cache: cache}
}

// Fetch downloads a manifest repository at a ref and stores it in the
// cache. Returns the cached path and content hash.
func (f *GitFetcher) Fetch(repoPath, ref string) (string, string, error) {
	if f.cache.config.IsCached(repoPath, ref) {
		path := f.cache.config.ManifestPath(repoPath, ref)
		hash, err := hashDir(path)
		if err != nil {
			return "", "", err
		}
		return path, hash, nil
	}

	if err := f.cache.config.EnsureDirs(); err != nil {
		return "", "", fmt.Errorf("failed to create cache directories: %w", err)
	}

	gitURL := repoPathToGitURL(repoPath)

	tempDir, err := os.MkdirTemp("", "retarget-fetch-*")
	if err != nil {
		return "", "", fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	repo, err := git.PlainClone(tempDir, false, &git.CloneOptions{
		URL:      gitURL,
		Progress: nil,
		Tags:     git.AllTags,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to clone repository %s: %w", gitURL, err)
	}

	if err := f.checkoutRef(repo, ref); err != nil {
		return "", "", fmt.Errorf("failed to checkout %s: %w", ref, err)
	}

	if err := f.cache.Store(repoPath, ref, tempDir); err != nil {
		return "", "", fmt.Errorf("failed to store in cache: %w", err)
	}

	path := f.cache.config.ManifestPath(repoPath, ref)
	hash, err := hashDir(path)
	if err != nil {
		return "", "", err
	}
	return path, hash, nil
}

// checkoutRef checks out a ref, trying tag, branch, and commit hash in
// that order.
func (f *GitFetcher) checkoutRef(repo *git.Repository, ref string) error {
	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}

	tagRef := plumbing.NewTagReferenceName(ref)
	hash, err := repo.ResolveRevision(plumbing.Revision(tagRef))
	if err == nil {
		return worktree.Checkout(&git.CheckoutOptions{Hash: *hash})
	}

	branchRef := plumbing.NewBranchReferenceName(ref)
	hash, err = repo.ResolveRevision(plumbing.Revision(branchRef))
	if err == nil {
		return worktree.Checkout(&git.CheckoutOptions{Hash: *hash})
	}

	hash, err = repo.ResolveRevision(plumbing.Revision(ref))
	if err == nil {
		return worktree.Checkout(&git.CheckoutOptions{Hash: *hash})
	}

	return fmt.Errorf("ref not found: %s", ref)
}

// repoPathToGitURL converts a repository path to a Git URL. Supports the
// common hosting services.
func repoPathToGitURL(repoPath string) string {
	parts := strings.Split(repoPath, "/")
	if len(parts) < 2 {
		return "https://" + repoPath + ".git"
	}

	host := parts[0]
	switch host {
	case "github.com", "gitlab.com", "bitbucket.org":
		if len(parts) >= 3 {
			return fmt.Sprintf("https://%s/%s/%s.git", host, parts[1], parts[2])
		}
		return "https://" + repoPath + ".git"
	default:
		return "https://" + repoPath + ".git"
	}
}
