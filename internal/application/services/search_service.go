package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/clinicsearch/internal/domain/entities"
	"github.com/zatekoja/clinicsearch/internal/domain/providers"
	"github.com/zatekoja/clinicsearch/pkg/usgeo"
)

// DefaultMinResults is the result count a location search tops up to with
// nearby matches before giving up.
const DefaultMinResults = 9

// SearchService orchestrates the full search pipeline: query classification,
// location and procedure filtering, and the fallback text-search cascade
// against the external index engine. It holds no mutable state; every search
// is a pure transformation of its inputs.
type SearchService struct {
	classifier *QueryClassifierService
	locations  *LocationFilterService
	minResults int
}

// NewSearchService creates a search service. A non-positive minResults falls
// back to DefaultMinResults.
func NewSearchService(classifier *QueryClassifierService, locations *LocationFilterService, minResults int) *SearchService {
	if minResults <= 0 {
		minResults = DefaultMinResults
	}
	return &SearchService{
		classifier: classifier,
		locations:  locations,
		minResults: minResults,
	}
}

// PerformSearch resolves a query against the dataset, degrading through
// location matching, procedure matching, and the index-engine cascade. It
// always returns a valid outcome; index-engine failures degrade to the naive
// substring fallback instead of propagating.
func (s *SearchService) PerformSearch(ctx context.Context, index providers.SearchIndex, clinics []*entities.Clinic, query string) entities.SearchOutcome {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return entities.SearchOutcome{ExactResults: clinics}
	}

	parsed := s.classifier.Parse(query, clinics)

	if parsed.HasLocation {
		exact := s.locations.FilterExact(clinics, parsed.LocationTerms)
		candidates := s.locations.FilterNearby(clinics, parsed.LocationTerms, exact)

		if parsed.HasProcedure {
			exact = FilterByProcedure(exact, parsed.ProcedureTerms, parsed.RemainingTerms)
			candidates = FilterByProcedure(candidates, parsed.ProcedureTerms, parsed.RemainingTerms)
		}

		nearby := topUpNearby(exact, candidates, s.minResults)
		return entities.SearchOutcome{
			ExactResults:     exact,
			NearbyResults:    nearby,
			IsLocationSearch: true,
			HasNearbyResults: len(nearby) > 0,
		}
	}

	// Defensive double-check: a bare 5-digit zip should behave as a zip
	// search even if classification produced no location term.
	if usgeo.IsZipCode(trimmed) {
		return s.searchByZip(clinics, trimmed)
	}

	if parsed.HasProcedure {
		exact := FilterByProcedure(clinics, parsed.ProcedureTerms, parsed.RemainingTerms)
		return entities.SearchOutcome{ExactResults: exact}
	}

	return s.fallbackSearch(ctx, index, clinics, trimmed)
}

func (s *SearchService) searchByZip(clinics []*entities.Clinic, zip string) entities.SearchOutcome {
	var exact []*entities.Clinic
	exactIDs := make(map[string]struct{})
	for _, c := range clinics {
		if c.ZipCode == zip {
			exact = append(exact, c)
			exactIDs[c.ID] = struct{}{}
		}
	}

	prefix := usgeo.ZipPrefix(zip)
	var candidates []*entities.Clinic
	for _, c := range clinics {
		if _, isExact := exactIDs[c.ID]; isExact {
			continue
		}
		if prefix != "" && usgeo.ZipPrefix(c.ZipCode) == prefix {
			candidates = append(candidates, c)
		}
	}

	nearby := topUpNearby(exact, candidates, s.minResults)
	return entities.SearchOutcome{
		ExactResults:     exact,
		NearbyResults:    nearby,
		IsLocationSearch: true,
		HasNearbyResults: len(nearby) > 0,
	}
}

// topUpNearby takes only as many nearby candidates as needed to reach
// minResults in total. With minResults or more exact results nothing is
// padded.
func topUpNearby(exact, candidates []*entities.Clinic, minResults int) []*entities.Clinic {
	if len(exact) >= minResults {
		return nil
	}
	want := minResults - len(exact)
	if want > len(candidates) {
		want = len(candidates)
	}
	if want == 0 {
		return nil
	}
	return candidates[:want]
}

// cascadeStrategy is one retry strategy of the fallback text search. The
// strategies run in fixed order, stopping at the first that yields matches.
type cascadeStrategy struct {
	name string
	run  func(ctx context.Context) ([]entities.IndexMatch, error)
}

// fallbackSearch drives the retry cascade against the index engine for
// queries with no location and no recognized procedure term. A strategy
// error counts as zero results for that step; if every strategy fails or
// comes back empty, the naive substring fallback runs over the clinics
// themselves.
func (s *SearchService) fallbackSearch(ctx context.Context, index providers.SearchIndex, clinics []*entities.Clinic, query string) entities.SearchOutcome {
	lowered := strings.ToLower(query)
	tokens := strings.Fields(lowered)

	if index != nil {
		for _, strat := range s.cascadeStrategies(index, lowered, tokens) {
			matches, err := strat.run(ctx)
			if err != nil {
				log.Debug().Err(err).Str("strategy", strat.name).Msg("search strategy failed, continuing cascade")
				continue
			}
			if len(matches) > 0 {
				return outcomeFromMatches(clinics, matches)
			}
		}
	}

	return entities.SearchOutcome{ExactResults: substringFallback(clinics, lowered)}
}

func (s *SearchService) cascadeStrategies(index providers.SearchIndex, query string, tokens []string) []cascadeStrategy {
	strategies := []cascadeStrategy{
		{
			name: "exact",
			run: func(ctx context.Context) ([]entities.IndexMatch, error) {
				return index.Search(ctx, query)
			},
		},
		{
			name: "fuzzy",
			run: func(ctx context.Context) ([]entities.IndexMatch, error) {
				return index.Search(ctx, suffixTokens(tokens, "~1"))
			},
		},
		{
			name: "wildcard",
			run: func(ctx context.Context) ([]entities.IndexMatch, error) {
				return index.Search(ctx, suffixTokens(tokens, "*"))
			},
		},
		{
			name: "suffix-stripped",
			run: func(ctx context.Context) ([]entities.IndexMatch, error) {
				return accumulateSearches(ctx, index, strippedVariants(tokens))
			},
		},
	}

	if len(tokens) > 1 {
		perTerm := make([]string, len(tokens))
		for i, tok := range tokens {
			perTerm[i] = tok + "~1"
		}
		strategies = append(strategies, cascadeStrategy{
			name: "per-term-fuzzy",
			run: func(ctx context.Context) ([]entities.IndexMatch, error) {
				return accumulateSearches(ctx, index, perTerm)
			},
		})
	}

	return strategies
}

// strippedVariants generates, for every token of length >= 5, the token with
// 1 to 3 trailing characters removed.
func strippedVariants(tokens []string) []string {
	var variants []string
	for _, tok := range tokens {
		if len(tok) < 5 {
			continue
		}
		for cut := 1; cut <= 3; cut++ {
			variants = append(variants, tok[:len(tok)-cut])
		}
	}
	return variants
}

// accumulateSearches runs each query in turn, unioning the matches and
// de-duplicating by ref. Individual query errors abort the strategy.
func accumulateSearches(ctx context.Context, index providers.SearchIndex, queries []string) ([]entities.IndexMatch, error) {
	var all []entities.IndexMatch
	seen := make(map[string]struct{})
	for _, q := range queries {
		matches, err := index.Search(ctx, q)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, dup := seen[m.Ref]; dup {
				continue
			}
			seen[m.Ref] = struct{}{}
			all = append(all, m)
		}
	}
	return all, nil
}

// outcomeFromMatches maps index matches back to the original clinic objects.
// Refs that do not resolve to a clinic position are dropped.
func outcomeFromMatches(clinics []*entities.Clinic, matches []entities.IndexMatch) entities.SearchOutcome {
	var exact []*entities.Clinic
	info := make(map[string]entities.IndexMatch, len(matches))
	for _, m := range matches {
		idx, err := strconv.Atoi(m.Ref)
		if err != nil || idx < 0 || idx >= len(clinics) {
			continue
		}
		clinic := clinics[idx]
		exact = append(exact, clinic)
		info[clinic.ID] = m
	}
	return entities.SearchOutcome{
		ExactResults: exact,
		MatchInfo:    info,
	}
}

// substringFallback is the path of last resort: a case-insensitive substring
// scan over every text field of every clinic, including concatenated
// procedure names and categories. It never fails; no matches is a valid
// empty outcome.
func substringFallback(clinics []*entities.Clinic, query string) []*entities.Clinic {
	var matched []*entities.Clinic
	for _, c := range clinics {
		var sb strings.Builder
		sb.WriteString(c.Name)
		sb.WriteByte(' ')
		sb.WriteString(c.City)
		sb.WriteByte(' ')
		sb.WriteString(c.State)
		sb.WriteByte(' ')
		sb.WriteString(c.Address)
		sb.WriteByte(' ')
		sb.WriteString(c.Category)
		for _, p := range c.Procedures {
			sb.WriteByte(' ')
			sb.WriteString(p.Name)
			sb.WriteByte(' ')
			sb.WriteString(p.Category)
		}
		if strings.Contains(strings.ToLower(sb.String()), query) {
			matched = append(matched, c)
		}
	}
	return matched
}

func suffixTokens(tokens []string, suffix string) string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok + suffix
	}
	return strings.Join(out, " ")
}
