// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ionscan/internal/fetchcache"
	"github.com/pdiddy/ionscan/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [identifiers...]",
	Short: "Warm the structure file cache for explicit identifiers",
	Long: `Fetch ensures a decompressed structure file exists in the cache for each
identifier. Entries already cached are skipped; --force removes the cached
artifacts first. Failures are reported per entry and do not abort the batch.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("cache", defaultCacheDir, "directory for downloaded structure files")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	fetchCmd.Flags().Bool("force", false, "re-download even if cached")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more entry identifiers")
	}

	cacheDir, _ := cmd.Flags().GetString("cache")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	force, _ := cmd.Flags().GetBool("force")

	client := &http.Client{Timeout: timeout}
	cache, err := fetchcache.New(client, types.CacheConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		Dir:        cacheDir,
	})
	if err != nil {
		return err
	}

	ctx := context.Background()
	var fetched, skipped, failed int

	for _, id := range args {
		key := fetchcache.Key(id)
		cached := false
		if !force {
			if _, statErr := os.Stat(filepath.Join(cache.Dir(), key+".cif")); statErr == nil {
				cached = true
			}
		} else {
			if err := cache.Remove(id); err != nil {
				fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", key, err)
				failed++
				continue
			}
		}

		if cached {
			if m, metaErr := cache.ReadMetadata(id); metaErr == nil {
				fmt.Fprintf(os.Stdout, "skipped: %s (fetched %s)\n", key, m.FetchedAt.Format("2006-01-02"))
			} else {
				fmt.Fprintf(os.Stdout, "skipped: %s (already cached)\n", key)
			}
			skipped++
			continue
		}

		if _, err := cache.Ensure(ctx, id); err != nil {
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", key, err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "fetched: %s\n", key)
		fetched++
	}

	fmt.Fprintf(os.Stdout, "\nBatch summary: %d fetched, %d skipped, %d failed (total: %d)\n",
		fetched, skipped, failed, len(args))
	if failed > 0 {
		return fmt.Errorf("%d entr%s failed to fetch", failed, plural(failed, "y", "ies"))
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
