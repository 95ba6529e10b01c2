package search

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/zatekoja/clinicsearch/internal/domain/entities"
	"github.com/zatekoja/clinicsearch/internal/domain/providers"
	tsclient "github.com/zatekoja/clinicsearch/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/clinicsearch/pkg/retry"
)

const collectionName = "clinics"

// maxHits bounds a single index query; the dataset is a few hundred clinics
const maxHits = 250

// TypesenseBuilder implements IndexBuilder on a Typesense collection
type TypesenseBuilder struct {
	client *tsclient.Client
}

var _ providers.IndexBuilder = (*TypesenseBuilder)(nil)

// NewTypesenseBuilder creates a new Typesense index builder
func NewTypesenseBuilder(client *tsclient.Client) *TypesenseBuilder {
	return &TypesenseBuilder{client: client}
}

// BuildIndex recreates the clinics collection and indexes the records. The
// returned index queries the fields present in fieldBoosts, weighted by their
// boost values.
func (b *TypesenseBuilder) BuildIndex(ctx context.Context, records []providers.IndexRecord, fieldBoosts map[string]float64) (providers.SearchIndex, error) {
	fields := boostedFields(fieldBoosts)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no boosted fields to index")
	}

	if err := b.recreateCollection(ctx, fields); err != nil {
		return nil, err
	}

	for _, record := range records {
		document := make(map[string]interface{}, len(record.Fields)+1)
		document["id"] = record.Ref
		for name, value := range record.Fields {
			document[name] = value
		}

		err := retry.Do(ctx, retry.DefaultConfig(), "Typesense", func() error {
			_, err := b.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
			return err
		})
		if err != nil {
			return nil, fmt.Errorf("failed to index record %s: %w", record.Ref, err)
		}
	}

	return &typesenseIndex{
		client:  b.client,
		queryBy: strings.Join(fields, ","),
		weights: weightsFor(fields, fieldBoosts),
	}, nil
}

func (b *TypesenseBuilder) recreateCollection(ctx context.Context, fields []string) error {
	// Drop any stale copy; a rebuild replaces the whole collection
	_, err := b.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		if _, err := b.client.Client().Collection(collectionName).Delete(ctx); err != nil {
			return fmt.Errorf("failed to drop stale collection: %w", err)
		}
	}

	schemaFields := make([]api.Field, 0, len(fields))
	for _, name := range fields {
		schemaFields = append(schemaFields, api.Field{
			Name:     name,
			Type:     "string",
			Optional: pointer.True(),
		})
	}

	schema := &api.CollectionSchema{
		Name:   collectionName,
		Fields: schemaFields,
	}

	if _, err := b.client.Client().Collections().Create(ctx, schema); err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// typesenseIndex implements SearchIndex over the clinics collection
type typesenseIndex struct {
	client  *tsclient.Client
	queryBy string
	weights string
}

// Search runs a query against the collection. The query may carry per-token
// `~N` fuzzy suffixes and `*` prefix suffixes; Typesense expresses both as
// query-wide options, so the strongest token option wins.
func (i *typesenseIndex) Search(ctx context.Context, query string) ([]entities.IndexMatch, error) {
	cleaned, numTypos, prefix := parseQuerySyntax(query)
	if cleaned == "" {
		return nil, nil
	}

	params := &api.SearchCollectionParams{
		Q:              pointer.String(cleaned),
		QueryBy:        pointer.String(i.queryBy),
		QueryByWeights: pointer.String(i.weights),
		NumTypos:       pointer.String(strconv.Itoa(numTypos)),
		Prefix:         pointer.String(strconv.FormatBool(prefix)),
		PerPage:        pointer.Int(maxHits),
	}

	result, err := i.client.Client().Collection(collectionName).Documents().Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to search clinics index: %w", err)
	}

	if result.Hits == nil {
		return nil, nil
	}

	matches := make([]entities.IndexMatch, 0, len(*result.Hits))
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document
		ref, ok := doc["id"].(string)
		if !ok {
			continue
		}

		var score float64
		if hit.TextMatch != nil {
			score = float64(*hit.TextMatch)
		}

		matches = append(matches, entities.IndexMatch{Ref: ref, Score: score})
	}

	return matches, nil
}

// parseQuerySyntax strips `~N` and `*` token suffixes from a query and
// returns the cleaned query plus the fuzzy distance and prefix flag to apply.
func parseQuerySyntax(query string) (cleaned string, numTypos int, prefix bool) {
	tokens := strings.Fields(query)
	out := make([]string, 0, len(tokens))

	for _, token := range tokens {
		if strings.HasSuffix(token, "*") {
			prefix = true
			token = strings.TrimSuffix(token, "*")
		}
		if idx := strings.LastIndex(token, "~"); idx >= 0 {
			if n, err := strconv.Atoi(token[idx+1:]); err == nil && n > 0 {
				if n > numTypos {
					numTypos = n
				}
				token = token[:idx]
			}
		}
		if token != "" {
			out = append(out, token)
		}
	}

	return strings.Join(out, " "), numTypos, prefix
}

func boostedFields(fieldBoosts map[string]float64) []string {
	fields := make([]string, 0, len(fieldBoosts))
	for name := range fieldBoosts {
		fields = append(fields, name)
	}
	// Highest boost first, name as tiebreak
	sort.Slice(fields, func(a, b int) bool {
		if fieldBoosts[fields[a]] != fieldBoosts[fields[b]] {
			return fieldBoosts[fields[a]] > fieldBoosts[fields[b]]
		}
		return fields[a] < fields[b]
	})
	return fields
}

func weightsFor(fields []string, fieldBoosts map[string]float64) string {
	weights := make([]string, 0, len(fields))
	for _, name := range fields {
		weights = append(weights, strconv.Itoa(int(fieldBoosts[name])))
	}
	return strings.Join(weights, ",")
}
