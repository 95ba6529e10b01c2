package providers

import (
	"context"

	"github.com/zatekoja/clinicsearch/internal/domain/entities"
)

// IndexRecord is one searchable document handed to the index engine. Ref must
// be the string form of the record's position in the original clinic slice so
// matches can be mapped back to clinics.
type IndexRecord struct {
	Ref    string
	Fields map[string]string
}

// SearchIndex is the external inverted-index engine consumed by the fallback
// text search. The query string supports two per-token syntax extensions the
// orchestration relies on: a `~N` suffix for fuzzy matching at edit distance
// N, and a `*` suffix for prefix matching.
type SearchIndex interface {
	// Search runs a query against the index and returns scored matches.
	Search(ctx context.Context, query string) ([]entities.IndexMatch, error)
}

// IndexBuilder constructs a SearchIndex from a set of records.
type IndexBuilder interface {
	// BuildIndex indexes the records with per-field boost weights and returns
	// a queryable index over them.
	BuildIndex(ctx context.Context, records []IndexRecord, fieldBoosts map[string]float64) (SearchIndex, error)
}
