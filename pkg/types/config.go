// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "ionscan/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// DiscoveryConfig holds settings for the discovery stage.
type DiscoveryConfig struct {
	HTTPConfig `yaml:",inline"`

	// PageSize is the number of identifiers requested per search page (default 1000).
	PageSize int `json:"page_size" yaml:"page_size"`

	// HumanOnly restricts discovery to Homo sapiens entries.
	HumanOnly bool `json:"human_only" yaml:"human_only"`
}

// CacheConfig holds settings for the structure file cache.
type CacheConfig struct {
	HTTPConfig `yaml:",inline"`

	// Dir is the directory holding downloaded structure files
	// ({id}.cif.gz, {id}.cif, and {id}.yaml sidecars).
	Dir string `json:"dir" yaml:"dir"`
}

// ScanConfig holds settings for the proximity scan stage.
type ScanConfig struct {
	// Ion is the heteroatom residue name of the target metal species (default "ZN").
	Ion string `json:"ion" yaml:"ion"`

	// Radius is the cut-off distance in Angstroms (default 5.0).
	Radius float64 `json:"radius" yaml:"radius"`

	// Workers is the number of concurrent scan jobs (default = host CPU count).
	Workers int `json:"workers" yaml:"workers"`
}

// ReportConfig holds settings for report output and run persistence.
type ReportConfig struct {
	// OutputPath is the spreadsheet file written after a scan
	// (e.g. "ion_ligand_hits.xlsx").
	OutputPath string `json:"output_path" yaml:"output_path"`

	// DBDir is the directory holding the run database (contains ionscan.db).
	DBDir string `json:"db_dir" yaml:"db_dir"`
}

// PipelineConfig groups all stage configurations for the pipeline.
type PipelineConfig struct {
	Discovery DiscoveryConfig `json:"discovery" yaml:"discovery"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Scan      ScanConfig      `json:"scan" yaml:"scan"`
	Report    ReportConfig    `json:"report" yaml:"report"`
}
