// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ionscan/internal/report"
	"github.com/pdiddy/ionscan/pkg/types"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect past scan runs recorded in the run database",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded scan runs",
	RunE:  runRunsList,
}

var runsExportCmd = &cobra.Command{
	Use:   "export [run-id]",
	Short: "Re-export a recorded run as a spreadsheet or table",
	RunE:  runRunsExport,
}

func init() {
	runsCmd.PersistentFlags().String("db-dir", defaultDBDir, "directory for the run database")
	runsExportCmd.Flags().String("out", "", "output spreadsheet file (default: run-[id].xlsx)")
	runsExportCmd.Flags().String("format", "xlsx", "output format: xlsx or table")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsExportCmd)
	rootCmd.AddCommand(runsCmd)
}

func openStore(cmd *cobra.Command) (*report.Store, error) {
	dbDir, _ := cmd.Flags().GetString("db-dir")
	return report.NewStore(types.ReportConfig{DBDir: dbDir})
}

func runRunsList(cmd *cobra.Command, args []string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Runs(context.Background())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No recorded runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-20s  %-4s  %-6s  %-10s  %s\n",
		"ID", "Started", "Ion", "Radius", "Candidates", "Reported")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-4d  %-20s  %-4s  %-6.1f  %-10d  %d\n",
			r.ID, r.Started.Format("2006-01-02 15:04:05"), r.Ion, r.Radius, r.Candidates, r.Reported)
	}
	return nil
}

func runRunsExport(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("provide exactly one run id")
	}
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q", args[0])
	}

	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	rows, err := store.HitRows(context.Background(), runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("run %d has no recorded hits", runID)
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table":
		report.FormatTable(rows, os.Stdout)
		return nil
	case "xlsx":
		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = fmt.Sprintf("run-%d.xlsx", runID)
		}
		if err := report.WriteXLSX(rows, out); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Results written to %s\n", out)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want xlsx or table)", format)
	}
}
