package services

import (
	"context"
	"strings"
	"sync"

	"github.com/zatekoja/clinicsearch/internal/domain/entities"
	"github.com/zatekoja/clinicsearch/pkg/usgeo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// QueryClassifierService tokenizes a free-text query and classifies each
// token as a location term (zip, state, or city), a procedure abbreviation,
// or an unclassified remaining term. City recognition is driven by the city
// names actually present in the dataset, so classification always takes the
// current clinic slice.
type QueryClassifierService struct{}

// NewQueryClassifierService creates a new query classifier.
func NewQueryClassifierService() *QueryClassifierService {
	return &QueryClassifierService{}
}

var (
	remainingTermCounterOnce sync.Once
	remainingTermCounter     metric.Int64Counter
)

// Parse classifies the query against the given dataset. Each token lands in
// exactly one of the three term lists. An empty or whitespace-only query
// yields the zero ParsedQuery.
func (s *QueryClassifierService) Parse(query string, clinics []*entities.Clinic) entities.ParsedQuery {
	parsed := entities.ParsedQuery{}

	tokens := strings.Fields(strings.ToLower(strings.TrimSpace(query)))
	if len(tokens) == 0 {
		return parsed
	}

	cities := datasetCities(clinics)

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if usgeo.IsZipCode(tok) {
			parsed.LocationTerms = append(parsed.LocationTerms, entities.LocationTerm{
				Type:  entities.LocationTermZip,
				Value: tok,
			})
			continue
		}

		if len(tok) == 2 && usgeo.IsStateAbbreviation(tok) {
			parsed.LocationTerms = append(parsed.LocationTerms, entities.LocationTerm{
				Type:  entities.LocationTermState,
				Value: strings.ToUpper(tok),
			})
			continue
		}

		if abbr, ok := usgeo.AbbreviationFor(tok); ok {
			parsed.LocationTerms = append(parsed.LocationTerms, entities.LocationTerm{
				Type:  entities.LocationTermState,
				Value: abbr,
			})
			continue
		}

		// Abbreviations outrank cities: "bbl" must never be consumed as a
		// city-name candidate.
		if full, ok := procedureAbbreviations[tok]; ok {
			parsed.ProcedureTerms = append(parsed.ProcedureTerms, entities.ProcedureTerm{
				Value:    tok,
				FullName: full,
			})
			continue
		}

		if _, ok := cities[tok]; ok {
			parsed.LocationTerms = append(parsed.LocationTerms, entities.LocationTerm{
				Type:  entities.LocationTermCity,
				Value: tok,
			})
			continue
		}

		// Two-word city: either the pair exists in the dataset, or the first
		// word is a known multi-word city prefix and the second is not a
		// procedure abbreviation.
		if i+1 < len(tokens) {
			next := tokens[i+1]
			pair := tok + " " + next
			_, inDataset := cities[pair]
			_, isPrefix := cityPrefixes[tok]
			_, nextIsAbbrev := procedureAbbreviations[next]
			if inDataset || (isPrefix && !nextIsAbbrev) {
				parsed.LocationTerms = append(parsed.LocationTerms, entities.LocationTerm{
					Type:  entities.LocationTermCity,
					Value: pair,
				})
				i++ // both tokens consumed
				continue
			}
		}

		parsed.RemainingTerms = append(parsed.RemainingTerms, tok)
	}

	// Compatibility pass: when nothing matched the abbreviation table on the
	// first sweep, rescan the remaining terms and promote any that do.
	if len(parsed.RemainingTerms) > 0 && len(parsed.ProcedureTerms) == 0 {
		kept := parsed.RemainingTerms[:0]
		for _, term := range parsed.RemainingTerms {
			if full, ok := procedureAbbreviations[term]; ok {
				parsed.ProcedureTerms = append(parsed.ProcedureTerms, entities.ProcedureTerm{
					Value:    term,
					FullName: full,
				})
				continue
			}
			kept = append(kept, term)
		}
		parsed.RemainingTerms = kept
	}

	parsed.HasLocation = len(parsed.LocationTerms) > 0
	parsed.HasProcedure = len(parsed.ProcedureTerms) > 0

	s.recordRemainingTerms(parsed.RemainingTerms)

	return parsed
}

// datasetCities builds the set of distinct lowercase city names present in
// the dataset.
func datasetCities(clinics []*entities.Clinic) map[string]struct{} {
	cities := make(map[string]struct{}, len(clinics))
	for _, c := range clinics {
		city := strings.ToLower(strings.TrimSpace(c.City))
		if city != "" {
			cities[city] = struct{}{}
		}
	}
	return cities
}

func initRemainingTermCounter() {
	meter := otel.Meter("github.com/zatekoja/clinicsearch/query_classifier")
	counter, err := meter.Int64Counter(
		"search.term_unclassified.count",
		metric.WithDescription("Count of query terms not classified as location or procedure"),
	)
	if err == nil {
		remainingTermCounter = counter
	}
}

func (s *QueryClassifierService) recordRemainingTerms(terms []string) {
	if len(terms) == 0 {
		return
	}
	remainingTermCounterOnce.Do(initRemainingTermCounter)
	if remainingTermCounter == nil {
		return
	}
	for _, term := range terms {
		remainingTermCounter.Add(
			context.Background(),
			1,
			metric.WithAttributes(attribute.String("search.term", term)),
		)
	}
}
