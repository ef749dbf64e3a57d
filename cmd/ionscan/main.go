// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ionscan CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in the persistent pre-run and shared by all subcommands.
var logger *zap.Logger

// rootCmd is the base command for the ionscan CLI.
var rootCmd = &cobra.Command{
	Use:   "ionscan",
	Short: "Find ligands near metal ions across the PDB",
	Long: `ionscan discovers structure entries containing a target metal ion,
downloads their mmCIF files into a local cache, and scans each structure for
non-solvent heteroatom residues within a cut-off radius of an ion atom.

Each pipeline stage is a subcommand: discover enumerates candidate entries,
fetch warms the file cache, and scan runs the full pipeline and writes a
spreadsheet report sorted by minimum distance.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./ionscan.yaml or ~/.config/ionscan/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose (development) logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ionscan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ionscan"))
		}
	}

	viper.SetEnvPrefix("IONSCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
