package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/zatekoja/clinicsearch/internal/domain/entities"
)

// Sort modes accepted by SortResults. Anything else falls back to relevance.
const (
	SortByRelevance   = "relevance"
	SortByRating      = "rating"
	SortByReviewCount = "reviewCount"
)

// FilterParams are the caller-supplied category and price filters. Prices
// arrive as numeric strings straight from the request; empty means no bound.
type FilterParams struct {
	Category string
	MinPrice string
	MaxPrice string
}

// popularProcedures is a fixed, hand-curated popularity ranking per category,
// used to pick display procedures when a query matched nothing specific.
// Order within a category is the ranking.
var popularProcedures = map[string][]string{
	"injectables": {"botox", "lip filler", "dermal filler"},
	"body":        {"liposuction", "brazilian butt lift", "tummy tuck"},
	"breast":      {"breast augmentation", "breast lift", "breast reduction"},
	"face":        {"rhinoplasty", "facelift", "blepharoplasty"},
	"skin":        {"chemical peel", "microneedling", "laser resurfacing"},
	"hair":        {"hair transplant", "scalp micropigmentation"},
}

const maxDisplayProcedures = 5

// ResultAssemblyService applies category/price filters, sorts by the chosen
// mode, paginates, and selects the procedures each clinic surfaces for
// rendering.
type ResultAssemblyService struct {
	ranking *RankingService
}

// NewResultAssemblyService creates a result assembler.
func NewResultAssemblyService(ranking *RankingService) *ResultAssemblyService {
	return &ResultAssemblyService{ranking: ranking}
}

// ApplyFilters runs the clinic-level category filter first, then narrows each
// clinic's procedure list to the price range. Clinics left with zero
// procedures by the price filter are dropped entirely. Input clinics are
// never mutated; price narrowing produces shallow copies.
func (s *ResultAssemblyService) ApplyFilters(clinics []*entities.Clinic, params FilterParams) []*entities.Clinic {
	filtered := clinics
	if params.Category != "" {
		var byCategory []*entities.Clinic
		for _, c := range filtered {
			if strings.EqualFold(c.Category, params.Category) {
				byCategory = append(byCategory, c)
			}
		}
		filtered = byCategory
	}

	minPrice, hasMin := parsePrice(params.MinPrice)
	maxPrice, hasMax := parsePrice(params.MaxPrice)
	if !hasMin && !hasMax {
		return filtered
	}

	var out []*entities.Clinic
	for _, c := range filtered {
		var kept []entities.Procedure
		for _, p := range c.Procedures {
			if hasMin && p.Price < minPrice {
				continue
			}
			if hasMax && p.Price > maxPrice {
				continue
			}
			kept = append(kept, p)
		}
		if len(kept) == 0 {
			continue
		}
		narrowed := *c
		narrowed.Procedures = kept
		out = append(out, &narrowed)
	}
	return out
}

// SortResults orders clinics by the chosen mode. Rating and review-count
// modes use each other as the deterministic tiebreak; relevance scores each
// clinic with the engine's match info when present. The input slice is not
// reordered in place.
func (s *ResultAssemblyService) SortResults(clinics []*entities.Clinic, sortBy, query string, matchInfo map[string]entities.IndexMatch, userLocation *entities.Location) []*entities.Clinic {
	sorted := make([]*entities.Clinic, len(clinics))
	copy(sorted, clinics)

	switch sortBy {
	case SortByRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Rating != sorted[j].Rating {
				return sorted[i].Rating > sorted[j].Rating
			}
			return sorted[i].ReviewCount > sorted[j].ReviewCount
		})
	case SortByReviewCount:
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].ReviewCount != sorted[j].ReviewCount {
				return sorted[i].ReviewCount > sorted[j].ReviewCount
			}
			return sorted[i].Rating > sorted[j].Rating
		})
	default:
		scores := make(map[string]float64, len(sorted))
		for _, c := range sorted {
			var match *entities.IndexMatch
			if m, ok := matchInfo[c.ID]; ok {
				matchCopy := m
				match = &matchCopy
			}
			scores[c.ID] = s.ranking.Score(c, query, match, userLocation)
		}
		sort.SliceStable(sorted, func(i, j int) bool {
			return scores[sorted[i].ID] > scores[sorted[j].ID]
		})
	}

	return sorted
}

// Paginate slices out the 1-based page of the given size. Concatenating all
// pages in order reproduces the input exactly.
func (s *ResultAssemblyService) Paginate(clinics []*entities.Clinic, page, limit int) entities.ResultPage {
	if limit <= 0 {
		limit = 1
	}
	if page <= 0 {
		page = 1
	}

	total := len(clinics)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return entities.ResultPage{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Results:     clinics[start:end],
	}
}

// DisplayProcedures picks up to five procedures for rendering. When search
// terms matched specific procedures those come first, padded with
// same-category siblings. Otherwise up to two popular procedures per
// category lead, with any others filling the remaining slots.
func (s *ResultAssemblyService) DisplayProcedures(clinic *entities.Clinic, searchTerms []string) []entities.Procedure {
	procedures := clinic.DedupedProcedures()
	if len(procedures) <= maxDisplayProcedures {
		return procedures
	}

	if len(searchTerms) > 0 {
		if selected := selectMatchedProcedures(procedures, searchTerms); len(selected) > 0 {
			return selected
		}
	}
	return selectPopularProcedures(procedures)
}

func selectMatchedProcedures(procedures []entities.Procedure, searchTerms []string) []entities.Procedure {
	needles := make([]string, 0, len(searchTerms))
	for _, t := range searchTerms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			needles = append(needles, t)
		}
	}

	var selected []entities.Procedure
	taken := make(map[int]struct{})
	matchedCategories := make(map[string]struct{})
	for i, p := range procedures {
		name := strings.ToLower(p.Name)
		for _, needle := range needles {
			if strings.Contains(name, needle) {
				selected = append(selected, p)
				taken[i] = struct{}{}
				matchedCategories[strings.ToLower(p.Category)] = struct{}{}
				break
			}
		}
		if len(selected) == maxDisplayProcedures {
			return selected
		}
	}
	if len(selected) == 0 {
		return nil
	}

	// Same-category siblings fill the remaining slots.
	for i, p := range procedures {
		if len(selected) == maxDisplayProcedures {
			break
		}
		if _, done := taken[i]; done {
			continue
		}
		if _, ok := matchedCategories[strings.ToLower(p.Category)]; ok {
			selected = append(selected, p)
			taken[i] = struct{}{}
		}
	}
	return selected
}

func selectPopularProcedures(procedures []entities.Procedure) []entities.Procedure {
	var selected []entities.Procedure
	taken := make(map[int]struct{})
	perCategory := make(map[string]int)

	categories := make([]string, 0, len(popularProcedures))
	for category := range popularProcedures {
		categories = append(categories, category)
	}
	sort.Strings(categories)

	for _, category := range categories {
		for _, popular := range popularProcedures[category] {
			if perCategory[category] == 2 {
				break
			}
			for i, p := range procedures {
				if _, done := taken[i]; done {
					continue
				}
				if strings.ToLower(p.Category) == category && strings.Contains(strings.ToLower(p.Name), popular) {
					selected = append(selected, p)
					taken[i] = struct{}{}
					perCategory[category]++
					break
				}
			}
		}
	}

	for i, p := range procedures {
		if len(selected) == maxDisplayProcedures {
			break
		}
		if _, done := taken[i]; done {
			continue
		}
		selected = append(selected, p)
	}

	if len(selected) > maxDisplayProcedures {
		selected = selected[:maxDisplayProcedures]
	}
	return selected
}

func parsePrice(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
