// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover enumerates candidate entry identifiers from the RCSB
// search service. Discovery is the one stage that is not fault-isolated:
// any transport or non-success response aborts the run.
package discover

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/ionscan/internal/httputil"
	"github.com/pdiddy/ionscan/pkg/types"
)

// searchBase is the RCSB search endpoint. Declared as a var so tests can
// substitute an httptest server.
var searchBase = "https://search.rcsb.org/rcsbsearch/v2/query"

// Attribute names understood by the search service.
const (
	attrCompID   = "rcsb_nonpolymer_instance_annotation.comp_id"
	attrOrganism = "rcsb_entity_source_organism.taxonomy_lineage.name"
)

// Node is one node of the query predicate tree. Terminal nodes carry
// Parameters; group nodes carry a logical operator and child nodes.
// Build nodes with ExactMatch, CompID, Organism, and And; a built tree
// is never mutated.
type Node struct {
	Type            string      `json:"type"`
	Service         string      `json:"service,omitempty"`
	Parameters      *Parameters `json:"parameters,omitempty"`
	LogicalOperator string      `json:"logical_operator,omitempty"`
	Nodes           []Node      `json:"nodes,omitempty"`
}

// Parameters holds a terminal node's attribute match.
type Parameters struct {
	Attribute string `json:"attribute"`
	Operator  string `json:"operator"`
	Value     string `json:"value"`
}

// ExactMatch returns a terminal text-service node matching attribute == value.
func ExactMatch(attribute, value string) Node {
	return Node{
		Type:    "terminal",
		Service: "text",
		Parameters: &Parameters{
			Attribute: attribute,
			Operator:  "exact_match",
			Value:     value,
		},
	}
}

// CompID returns a node matching entries that contain the named chemical
// component (e.g. "ZN").
func CompID(value string) Node {
	return ExactMatch(attrCompID, value)
}

// Organism returns a node matching entries from the named source organism
// (e.g. "Homo sapiens").
func Organism(value string) Node {
	return ExactMatch(attrOrganism, value)
}

// And combines nodes into a logical-AND group. A single node is returned
// unwrapped.
func And(nodes ...Node) Node {
	if len(nodes) == 1 {
		return nodes[0]
	}
	return Node{Type: "group", LogicalOperator: "and", Nodes: nodes}
}

// EntryQuery builds the filter for a scan run: entries containing ion,
// optionally restricted to human entries.
func EntryQuery(ion string, humanOnly bool) Node {
	if humanOnly {
		return And(CompID(ion), Organism("Homo sapiens"))
	}
	return CompID(ion)
}

// Search request/response JSON structures.
type searchRequest struct {
	Query          Node           `json:"query"`
	ReturnType     string         `json:"return_type"`
	RequestOptions requestOptions `json:"request_options"`
}

type requestOptions struct {
	Paginate paginate `json:"paginate"`
}

type paginate struct {
	Start int `json:"start"`
	Rows  int `json:"rows"`
}

type searchResponse struct {
	ResultSet  []searchHit `json:"result_set"`
	TotalCount int         `json:"total_count"`
}

type searchHit struct {
	Identifier string `json:"identifier"`
}

// Enumerate pages through the search service and returns the deduplicated
// identifiers matching query. The advertised total_count may be zero on the
// first page while the service warms up, so it is trusted only after it is
// first observed positive; termination otherwise relies on the empty-page
// and short-page checks.
func Enumerate(ctx context.Context, client *http.Client, query Node, cfg types.DiscoveryConfig) ([]string, error) {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	var ids []string
	seen := make(map[string]struct{})

	start := 0
	totalKnown := false
	total := 0

	for {
		page, pageTotal, err := fetchPage(ctx, client, query, start, pageSize, cfg)
		if err != nil {
			return nil, err
		}

		if !totalKnown && pageTotal > 0 {
			total = pageTotal
			totalKnown = true
		}

		if len(page) == 0 {
			break
		}

		for _, hit := range page {
			if _, ok := seen[hit.Identifier]; ok {
				continue
			}
			seen[hit.Identifier] = struct{}{}
			ids = append(ids, hit.Identifier)
		}
		start += len(page)

		if totalKnown && start >= total {
			break
		}
		if len(page) < pageSize {
			break
		}
	}

	return ids, nil
}

// fetchPage issues one paginated search request.
func fetchPage(ctx context.Context, client *http.Client, query Node, start, rows int, cfg types.DiscoveryConfig) ([]searchHit, int, error) {
	body, err := json.Marshal(searchRequest{
		Query:          query,
		ReturnType:     "entry",
		RequestOptions: requestOptions{Paginate: paginate{Start: start, Rows: rows}},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchBase, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, client, req, 0)
	if err != nil {
		return nil, 0, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("search service returned HTTP %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, 0, fmt.Errorf("parsing search response: %w", err)
	}
	return sr.ResultSet, sr.TotalCount, nil
}
