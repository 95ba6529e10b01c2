package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/clinicsearch/internal/api/handlers"
	"github.com/zatekoja/clinicsearch/internal/application/services"
	"github.com/zatekoja/clinicsearch/internal/domain/entities"
	"github.com/zatekoja/clinicsearch/internal/domain/providers"
	apperrors "github.com/zatekoja/clinicsearch/pkg/errors"
)

type stubClinicRepo struct {
	clinics []*entities.Clinic
}

func (s *stubClinicRepo) GetByID(ctx context.Context, id string) (*entities.Clinic, error) {
	for _, c := range s.clinics {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("clinic with id %s not found", id))
}

func (s *stubClinicRepo) List(ctx context.Context) ([]*entities.Clinic, error) {
	return s.clinics, nil
}

func (s *stubClinicRepo) Create(ctx context.Context, clinic *entities.Clinic) error {
	s.clinics = append(s.clinics, clinic)
	return nil
}

type stubSearchIndex struct {
	matches []entities.IndexMatch
	queries []string
}

func (s *stubSearchIndex) Search(ctx context.Context, query string) ([]entities.IndexMatch, error) {
	s.queries = append(s.queries, query)
	return s.matches, nil
}

var _ providers.SearchIndex = (*stubSearchIndex)(nil)

func fixtureClinics() []*entities.Clinic {
	return []*entities.Clinic{
		{ID: "c-1", Name: "Glow Aesthetics", City: "Miami", State: "FL", ZipCode: "33101", Category: "medspa", Rating: 4.8, ReviewCount: 120,
			Procedures: []entities.Procedure{{Name: "Botox", Category: "Injectables", Price: 300}}},
		{ID: "c-2", Name: "Biscayne Plastic Surgery", City: "Miami", State: "FL", ZipCode: "33132", Category: "surgery", Rating: 4.2, ReviewCount: 40,
			Procedures: []entities.Procedure{{Name: "Brazilian Butt Lift", Category: "Body", Price: 8500}}},
		{ID: "c-3", Name: "Tampa Bay Dermatology", City: "Tampa", State: "FL", ZipCode: "33601", Category: "derm", Rating: 4.5, ReviewCount: 80,
			Procedures: []entities.Procedure{{Name: "Chemical Peel", Category: "Skin", Price: 250}}},
		{ID: "c-4", Name: "Peachtree Cosmetic Center", City: "Atlanta", State: "GA", ZipCode: "30301", Category: "surgery", Rating: 3.9, ReviewCount: 25,
			Procedures: []entities.Procedure{{Name: "Rhinoplasty", Category: "Face", Price: 6000}}},
	}
}

func newClinicHandler(repo *stubClinicRepo, index providers.SearchIndex) *handlers.ClinicHandler {
	classifier := services.NewQueryClassifierService()
	locations := services.NewLocationFilterService()
	searchService := services.NewSearchService(classifier, locations, 9)
	assembler := services.NewResultAssemblyService(services.NewRankingService())
	return handlers.NewClinicHandler(repo, searchService, classifier, assembler, index, nil, 12)
}

func doSearch(t *testing.T, handler *handlers.ClinicHandler, target string) entities.SearchResponse {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	handler.SearchClinics(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response entities.SearchResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	return response
}

func TestSearchClinics_CityQuery(t *testing.T) {
	repo := &stubClinicRepo{clinics: fixtureClinics()}
	handler := newClinicHandler(repo, &stubSearchIndex{})

	response := doSearch(t, handler, "/api/clinics/search?q=miami")

	assert.True(t, response.IsLocationSearch)
	assert.True(t, response.HasNearbyResults)
	assert.Equal(t, 4, response.Total)

	nearby := make(map[string]bool)
	for _, result := range response.Results {
		nearby[result.ID] = result.IsNearby
	}
	assert.False(t, nearby["c-1"])
	assert.False(t, nearby["c-2"])
	assert.True(t, nearby["c-3"], "same-state other city counts as nearby")
	assert.True(t, nearby["c-4"], "adjacent-state clinic counts as nearby")
}

func TestSearchClinics_CategoryFilterAndPaging(t *testing.T) {
	repo := &stubClinicRepo{clinics: fixtureClinics()}
	handler := newClinicHandler(repo, &stubSearchIndex{})

	response := doSearch(t, handler, "/api/clinics/search?q=miami&category=surgery&limit=1&page=2")

	assert.Equal(t, 2, response.Total)
	assert.Equal(t, 2, response.TotalPages)
	assert.Equal(t, 2, response.CurrentPage)
	require.Len(t, response.Results, 1)
	assert.Equal(t, "surgery", response.Results[0].Category)
}

func TestSearchClinics_FallbackUsesIndexScores(t *testing.T) {
	repo := &stubClinicRepo{clinics: fixtureClinics()}
	index := &stubSearchIndex{matches: []entities.IndexMatch{
		{Ref: "3", Score: 2},
		{Ref: "2", Score: 8},
	}}
	handler := newClinicHandler(repo, index)

	response := doSearch(t, handler, "/api/clinics/search?q=dermatolgy")

	require.NotEmpty(t, index.queries)
	assert.Equal(t, "dermatolgy", index.queries[0])

	assert.False(t, response.IsLocationSearch)
	require.Len(t, response.Results, 2)
	assert.Equal(t, "c-3", response.Results[0].ID, "stronger index match ranks first")
	assert.Equal(t, "c-4", response.Results[1].ID)
}

func TestSearchClinics_EmptyQueryReturnsAll(t *testing.T) {
	repo := &stubClinicRepo{clinics: fixtureClinics()}
	handler := newClinicHandler(repo, &stubSearchIndex{})

	response := doSearch(t, handler, "/api/clinics/search")

	assert.False(t, response.IsLocationSearch)
	assert.Equal(t, 4, response.Total)
	assert.Equal(t, 1, response.CurrentPage)
}

func TestGetClinic(t *testing.T) {
	repo := &stubClinicRepo{clinics: fixtureClinics()}
	handler := newClinicHandler(repo, &stubSearchIndex{})

	req := httptest.NewRequest("GET", "/api/clinics/c-1", nil)
	req.SetPathValue("id", "c-1")
	w := httptest.NewRecorder()
	handler.GetClinic(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var clinic entities.Clinic
	require.NoError(t, json.NewDecoder(w.Body).Decode(&clinic))
	assert.Equal(t, "Glow Aesthetics", clinic.Name)
}

func TestGetClinic_NotFound(t *testing.T) {
	repo := &stubClinicRepo{clinics: fixtureClinics()}
	handler := newClinicHandler(repo, &stubSearchIndex{})

	req := httptest.NewRequest("GET", "/api/clinics/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()
	handler.GetClinic(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
