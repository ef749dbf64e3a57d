// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetchcache keeps a local, decompressed copy of each entry's
// structure file. An existing decompressed file is trusted as-is and never
// re-validated; a truncated artifact left by an interrupted run surfaces
// as a decompression error on reuse and fails only that entry's job.
package fetchcache

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/ionscan/internal/httputil"
	"github.com/pdiddy/ionscan/pkg/types"
)

// fileBase is the RCSB file-store URL template, keyed by lowercase
// identifier. Declared as a var so tests can substitute an httptest server.
var fileBase = "https://files.rcsb.org/download/%s.cif.gz"

// Cache manages the structure file directory. The directory is injected at
// construction so tests can point it at a temporary location.
type Cache struct {
	dir    string
	client *http.Client
	cfg    types.CacheConfig
}

// New returns a Cache rooted at cfg.Dir, creating the directory if needed.
func New(client *http.Client, cfg types.CacheConfig) (*Cache, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory %s: %w", cfg.Dir, err)
	}
	return &Cache{dir: cfg.Dir, client: client, cfg: cfg}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Key returns the canonical cache key for an identifier.
func Key(id string) string { return strings.ToLower(id) }

// Ensure guarantees a decompressed structure file exists for id and returns
// its path. The decompressed file is reused if present; otherwise an
// existing compressed artifact is decompressed; otherwise the compressed
// file is fetched from the file store first. Callers must not run two
// concurrent Ensure calls for the same identifier — the cache has no
// cross-call locking.
func (c *Cache) Ensure(ctx context.Context, id string) (string, error) {
	key := Key(id)
	gzPath := filepath.Join(c.dir, key+".cif.gz")
	cifPath := filepath.Join(c.dir, key+".cif")

	if _, err := os.Stat(cifPath); err == nil {
		return cifPath, nil
	}

	if _, err := os.Stat(gzPath); os.IsNotExist(err) {
		if err := c.fetch(ctx, key, gzPath); err != nil {
			return "", err
		}
	}

	if err := decompress(gzPath, cifPath); err != nil {
		return "", fmt.Errorf("decompressing %s: %w", key, err)
	}
	return cifPath, nil
}

// fetch downloads the compressed structure file to destPath via a temporary
// file, renaming on success so a crashed run never leaves a partial file at
// the final path. It also writes the metadata sidecar.
func (c *Cache) fetch(ctx context.Context, key, destPath string) error {
	url := fmt.Sprintf(fileBase, key)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("file store returned HTTP %d for %s", resp.StatusCode, key)
	}

	tmpFile, err := os.CreateTemp(c.dir, ".fetch-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	size, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}

	if err := writeMetadata(c.dir, key, Metadata{
		Entry:     key,
		SourceURL: url,
		FetchedAt: time.Now().UTC(),
		Size:      size,
	}); err != nil {
		// The artifact itself landed; a missing sidecar is not fatal.
		return nil
	}
	return nil
}

// Remove deletes the cached artifacts and sidecar for id, forcing the next
// Ensure to re-download.
func (c *Cache) Remove(id string) error {
	key := Key(id)
	for _, name := range []string{key + ".cif", key + ".cif.gz", key + ".yaml"} {
		if err := os.Remove(filepath.Join(c.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", name, err)
		}
	}
	return nil
}

// decompress writes the fully decompressed contents of gzPath to cifPath.
func decompress(gzPath, cifPath string) error {
	in, err := os.Open(gzPath)
	if err != nil {
		return err
	}
	defer in.Close()

	zr, err := gzip.NewReader(in)
	if err != nil {
		return err
	}
	defer zr.Close()

	out, err := os.Create(cifPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, zr); err != nil {
		out.Close()
		os.Remove(cifPath)
		return err
	}
	return out.Close()
}
