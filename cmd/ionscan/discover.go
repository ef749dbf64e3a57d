// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ionscan/internal/discover"
	"github.com/pdiddy/ionscan/pkg/types"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Enumerate candidate entries containing the target ion",
	Long: `Discover pages through the search service and prints every entry
identifier containing the target ion, one per line. Use it to inspect the
candidate set or to drive fetch separately from scan.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().String("ion", defaultIon, "target metal ion residue name")
	discoverCmd.Flags().Bool("human-only", false, "restrict search to Homo sapiens entries")
	discoverCmd.Flags().Int("page-size", defaultPageSize, "identifiers per search page")
	discoverCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	ion, _ := cmd.Flags().GetString("ion")
	humanOnly, _ := cmd.Flags().GetBool("human-only")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	client := &http.Client{Timeout: timeout}
	ids, err := discover.Enumerate(context.Background(), client,
		discover.EntryQuery(ion, humanOnly),
		types.DiscoveryConfig{
			HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
			PageSize:   pageSize,
			HumanOnly:  humanOnly,
		})
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	for _, id := range ids {
		fmt.Fprintln(os.Stdout, id)
	}
	fmt.Fprintf(os.Stderr, "%d entries\n", len(ids))
	return nil
}
