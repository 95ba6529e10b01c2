package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/zatekoja/clinicsearch/internal/application/services"
	"github.com/zatekoja/clinicsearch/internal/domain/entities"
	"github.com/zatekoja/clinicsearch/internal/domain/providers"
	"github.com/zatekoja/clinicsearch/internal/domain/repositories"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/clinicsearch/pkg/errors"
)

// ClinicHandler handles clinic search and lookup HTTP requests
type ClinicHandler struct {
	clinicRepo repositories.ClinicRepository
	search     *services.SearchService
	classifier *services.QueryClassifierService
	assembler  *services.ResultAssemblyService
	index      providers.SearchIndex
	metrics    *observability.Metrics
	pageSize   int
}

// NewClinicHandler creates a new clinic handler. The index and metrics may be
// nil; search then degrades to the in-memory fallback and metrics are skipped.
func NewClinicHandler(
	clinicRepo repositories.ClinicRepository,
	search *services.SearchService,
	classifier *services.QueryClassifierService,
	assembler *services.ResultAssemblyService,
	index providers.SearchIndex,
	metrics *observability.Metrics,
	pageSize int,
) *ClinicHandler {
	if pageSize <= 0 {
		pageSize = 12
	}
	return &ClinicHandler{
		clinicRepo: clinicRepo,
		search:     search,
		classifier: classifier,
		assembler:  assembler,
		index:      index,
		metrics:    metrics,
		pageSize:   pageSize,
	}
}

// SearchClinics handles GET /api/clinics/search
func (h *ClinicHandler) SearchClinics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	query := q.Get("q")
	sortBy := q.Get("sort_by")
	page := parsePositiveInt(q.Get("page"), 1)
	limit := parsePositiveInt(q.Get("limit"), h.pageSize)
	params := services.FilterParams{
		Category: q.Get("category"),
		MinPrice: q.Get("min_price"),
		MaxPrice: q.Get("max_price"),
	}

	clinics, err := h.clinicRepo.List(ctx)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to load clinics")
		return
	}

	start := time.Now()
	outcome := h.search.PerformSearch(ctx, h.index, clinics, query)

	nearbyIDs := make(map[string]struct{}, len(outcome.NearbyResults))
	for _, c := range outcome.NearbyResults {
		nearbyIDs[c.ID] = struct{}{}
	}

	combined := make([]*entities.Clinic, 0, len(outcome.ExactResults)+len(outcome.NearbyResults))
	combined = append(combined, outcome.ExactResults...)
	combined = append(combined, outcome.NearbyResults...)

	filtered := h.assembler.ApplyFilters(combined, params)
	sorted := h.assembler.SortResults(filtered, sortBy, query, outcome.MatchInfo, nil)
	resultPage := h.assembler.Paginate(sorted, page, limit)

	terms := h.searchTerms(query, clinics)
	results := make([]entities.ClinicSearchResult, 0, len(resultPage.Results))
	for _, c := range resultPage.Results {
		_, isNearby := nearbyIDs[c.ID]
		results = append(results, entities.ClinicSearchResult{
			ID:                c.ID,
			Name:              c.Name,
			Address:           c.Address,
			City:              c.City,
			State:             c.State,
			ZipCode:           c.ZipCode,
			Category:          c.Category,
			Rating:            c.Rating,
			ReviewCount:       c.ReviewCount,
			IsNearby:          isNearby,
			DisplayProcedures: h.assembler.DisplayProcedures(c, terms),
		})
	}

	if h.metrics != nil {
		observability.RecordSearchMetric(ctx, h.metrics, outcome.IsLocationSearch, resultPage.Total, time.Since(start))
	}

	respondWithJSON(w, http.StatusOK, entities.SearchResponse{
		Total:            resultPage.Total,
		TotalPages:       resultPage.TotalPages,
		CurrentPage:      resultPage.CurrentPage,
		IsLocationSearch: outcome.IsLocationSearch,
		HasNearbyResults: outcome.HasNearbyResults,
		Results:          results,
	})
}

// GetClinic handles GET /api/clinics/{id}
func (h *ClinicHandler) GetClinic(w http.ResponseWriter, r *http.Request) {
	clinicID := r.PathValue("id")
	if clinicID == "" {
		respondWithError(w, http.StatusBadRequest, "clinic ID is required")
		return
	}

	clinic, err := h.clinicRepo.GetByID(r.Context(), clinicID)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			respondWithError(w, http.StatusNotFound, appErr.Message)
			return
		}
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, clinic)
}

// ListClinics handles GET /api/clinics
func (h *ClinicHandler) ListClinics(w http.ResponseWriter, r *http.Request) {
	clinics, err := h.clinicRepo.List(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list clinics")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"clinics": clinics,
		"count":   len(clinics),
	})
}

// searchTerms collects the query terms used to pick display procedures:
// expanded procedure abbreviations, their raw tokens, and unclassified terms.
func (h *ClinicHandler) searchTerms(query string, clinics []*entities.Clinic) []string {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	parsed := h.classifier.Parse(query, clinics)

	var terms []string
	for _, p := range parsed.ProcedureTerms {
		terms = append(terms, p.FullName, p.Value)
	}
	terms = append(terms, parsed.RemainingTerms...)
	return terms
}

func parsePositiveInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
