// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetchcache

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"
)

// Metadata records where and when a cached structure file was fetched.
// It lives next to the artifacts as {key}.yaml.
type Metadata struct {
	// Entry is the lowercase identifier.
	Entry string `yaml:"entry"`

	// SourceURL is the file-store URL the compressed file came from.
	SourceURL string `yaml:"source_url"`

	// FetchedAt is the UTC download time.
	FetchedAt time.Time `yaml:"fetched_at"`

	// Size is the compressed artifact size in bytes.
	Size int64 `yaml:"size"`
}

// writeMetadata writes the sidecar for key.
func writeMetadata(dir, key string, m Metadata) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, key+".yaml"), data, 0o644)
}

// ReadMetadata reads the sidecar for id. Entries cached before the sidecar
// existed, or decompressed by hand, have none.
func (c *Cache) ReadMetadata(id string) (*Metadata, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, Key(id)+".yaml"))
	if err != nil {
		return nil, err
	}
	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing metadata for %s: %w", Key(id), err)
	}
	return &m, nil
}
