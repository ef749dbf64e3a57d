// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scan

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/ionscan/internal/fetchcache"
	"github.com/pdiddy/ionscan/internal/mmcif"
	"github.com/pdiddy/ionscan/pkg/types"
)

// BatchResult holds the outcome of a batch scan run. Hits are in completion
// order, not submission order; callers needing a deterministic ordering
// sort afterwards.
type BatchResult struct {
	Hits   []types.ScanResult
	NoHit  int
	Failed int
}

// Total returns the number of identifiers processed.
func (r BatchResult) Total() int {
	return len(r.Hits) + r.NoHit + r.Failed
}

// RunBatch fans the identifiers out across cfg.Workers concurrent jobs.
// Each job fetches the structure through cache, parses it with a fresh
// parser, and scans it for ligands near cfg.Ion. Every job error is
// converted to a failed outcome at the job boundary and logged — one
// malformed entry never aborts the batch. Only hit outcomes are returned.
func RunBatch(ctx context.Context, ids []string, cache *fetchcache.Cache, cfg types.ScanConfig, logger *zap.Logger) BatchResult {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	jobs := make(chan string)
	results := make(chan types.ScanResult, len(ids))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				results <- runJob(ctx, id, cache, cfg)
			}
		}()
	}

	go func() {
		for _, id := range ids {
			jobs <- id
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var batch BatchResult
	for r := range results {
		switch r.Outcome {
		case types.OutcomeHit:
			batch.Hits = append(batch.Hits, r)
		case types.OutcomeNoHit:
			batch.NoHit++
		case types.OutcomeFailed:
			batch.Failed++
			logger.Warn("scan job failed",
				zap.String("entry", r.Entry),
				zap.String("kind", string(r.Kind)))
		}
	}
	return batch
}

// runJob is one identifier's job: ensure → parse → scan. The deferred
// recover converts a panic anywhere in the job into a failed scan outcome,
// keeping the batch alive.
func runJob(ctx context.Context, id string, cache *fetchcache.Cache, cfg types.ScanConfig) (result types.ScanResult) {
	entry := strings.ToUpper(id)
	result = types.ScanResult{Entry: entry}

	defer func() {
		if recover() != nil {
			result = types.ScanResult{Entry: entry, Outcome: types.OutcomeFailed, Kind: types.FailureScan}
		}
	}()

	path, err := cache.Ensure(ctx, id)
	if err != nil {
		return types.ScanResult{Entry: entry, Outcome: types.OutcomeFailed, Kind: types.FailureFetch}
	}

	f, err := os.Open(path)
	if err != nil {
		return types.ScanResult{Entry: entry, Outcome: types.OutcomeFailed, Kind: types.FailureFetch}
	}
	defer f.Close()

	structure, err := mmcif.New().Parse(id, f)
	if err != nil {
		return types.ScanResult{Entry: entry, Outcome: types.OutcomeFailed, Kind: types.FailureParse}
	}

	hits := FindLigands(structure, cfg.Ion, cfg.Radius)
	if len(hits) == 0 {
		return types.ScanResult{Entry: entry, Outcome: types.OutcomeNoHit}
	}
	return types.ScanResult{Entry: entry, Outcome: types.OutcomeHit, Hits: hits}
}

// Summary renders the batch counts for the progress writer.
func (r BatchResult) Summary(radius float64) string {
	return fmt.Sprintf("%d of %d structures have at least one ligand within %.1f A (%d without hits, %d failed)",
		len(r.Hits), r.Total(), radius, r.NoHit, r.Failed)
}
