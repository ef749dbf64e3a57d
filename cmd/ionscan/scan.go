// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ionscan/internal/discover"
	"github.com/pdiddy/ionscan/internal/fetchcache"
	"github.com/pdiddy/ionscan/internal/report"
	"github.com/pdiddy/ionscan/internal/scan"
	"github.com/pdiddy/ionscan/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultPageSize  = 1000
	defaultRadius    = 5.0
	defaultIon       = "ZN"
	defaultCacheDir  = "pdbs"
	defaultDBDir     = "index"
	defaultOutput    = "ion_ligand_hits.xlsx"
	defaultUserAgent = "ionscan/0.1"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Discover, fetch, and scan entries; write the spreadsheet report",
	Long: `Scan runs the full pipeline: enumerate entries containing the target ion,
ensure each structure file is cached locally, scan every structure for
heteroatom residues near the ion atoms, and write the hits to a spreadsheet
sorted by minimum distance. Individual entry failures are logged and dropped;
only a discovery failure aborts the run.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().Float64("radius", defaultRadius, "cut-off distance in Angstroms")
	scanCmd.Flags().String("ion", defaultIon, "target metal ion residue name")
	scanCmd.Flags().Bool("human-only", false, "restrict search to Homo sapiens entries")
	scanCmd.Flags().Int("workers", 0, "parallel scan jobs (default = host CPU count)")
	scanCmd.Flags().String("cache", defaultCacheDir, "directory for downloaded structure files")
	scanCmd.Flags().String("out", defaultOutput, "output spreadsheet file")
	scanCmd.Flags().Int("page-size", defaultPageSize, "identifiers per search page")
	scanCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	scanCmd.Flags().String("db-dir", defaultDBDir, "directory for the run database")
	scanCmd.Flags().Bool("no-store", false, "skip recording the run in the database")

	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	radius, _ := cmd.Flags().GetFloat64("radius")
	ion, _ := cmd.Flags().GetString("ion")
	humanOnly, _ := cmd.Flags().GetBool("human-only")
	workers, _ := cmd.Flags().GetInt("workers")
	cacheDir, _ := cmd.Flags().GetString("cache")
	out, _ := cmd.Flags().GetString("out")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	dbDir, _ := cmd.Flags().GetString("db-dir")
	noStore, _ := cmd.Flags().GetBool("no-store")

	httpCfg := types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent}
	client := &http.Client{Timeout: timeout}
	ctx := context.Background()

	fmt.Fprintln(os.Stdout, "Fetching candidate entry identifiers ...")
	ids, err := discover.Enumerate(ctx, client,
		discover.EntryQuery(ion, humanOnly),
		types.DiscoveryConfig{HTTPConfig: httpCfg, PageSize: pageSize, HumanOnly: humanOnly})
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}
	fmt.Fprintf(os.Stdout, "-> %d entries contain %s\n", len(ids), ion)

	cache, err := fetchcache.New(client, types.CacheConfig{HTTPConfig: httpCfg, Dir: cacheDir})
	if err != nil {
		return err
	}

	scanCfg := types.ScanConfig{Ion: ion, Radius: radius, Workers: workers}
	fmt.Fprintf(os.Stdout, "Scanning structures with %d workers ...\n", effectiveWorkers(workers))
	batch := scan.RunBatch(ctx, ids, cache, scanCfg, logger)
	fmt.Fprintln(os.Stdout, batch.Summary(radius))

	rows := report.Rows(batch.Hits)

	if !noStore {
		if err := recordRun(ctx, dbDir, ion, radius, len(ids), rows); err != nil {
			// The report still gets written; persistence is best-effort.
			fmt.Fprintf(os.Stderr, "warning: recording run failed: %v\n", err)
		}
	}

	if err := report.WriteXLSX(rows, out); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Results written to %s\n", out)
	return nil
}

func effectiveWorkers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

func recordRun(ctx context.Context, dbDir, ion string, radius float64, candidates int, rows []report.Row) error {
	store, err := report.NewStore(types.ReportConfig{DBDir: dbDir})
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Record(ctx, report.Run{
		Started:    time.Now(),
		Ion:        ion,
		Radius:     radius,
		Candidates: candidates,
	}, rows)
	return err
}
