package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevmal/retarget/internal/manifest/fetch"
)

var fetchRef string

var fetchCmd = &cobra.Command{
	Use:   "fetch <repo>",
	Short: "Fetch a universe manifest repository into the local cache",
	Long: `Fetch clones a manifest repository and stores its manifest files in
the local cache, keyed by repository path and ref.

Examples:
  retarget fetch github.com/example/universes
  retarget fetch github.com/example/universes --ref v1.2.0`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchRef, "ref", "main", "Git ref to fetch (tag, branch, or commit)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cache := fetch.NewCache(nil)
	fetcher := fetch.NewGitFetcher(cache)

	path, hash, err := fetcher.Fetch(args[0], fetchRef)
	if err != nil {
		return err
	}

	fmt.Printf("Fetched %s@%s\n", args[0], fetchRef)
	fmt.Printf("  Path: %s\n", path)
	fmt.Printf("  Hash: %s\n", hash)
	return nil
}
