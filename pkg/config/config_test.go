package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_SearchConfig(t *testing.T) {
	os.Setenv("SEARCH_MIN_RESULTS", "15")
	os.Setenv("SEARCH_PAGE_SIZE", "24")
	defer func() {
		os.Unsetenv("SEARCH_MIN_RESULTS")
		os.Unsetenv("SEARCH_PAGE_SIZE")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 15, cfg.Search.MinResults)
	assert.Equal(t, 24, cfg.Search.PageSize)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("SEARCH_MIN_RESULTS")
	os.Unsetenv("SEARCH_PAGE_SIZE")
	os.Unsetenv("TYPESENSE_URL")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 9, cfg.Search.MinResults)
	assert.Equal(t, 12, cfg.Search.PageSize)
	assert.Equal(t, "http://localhost:8108", cfg.Typesense.URL)
	assert.Equal(t, "clinicsearch", cfg.Database.Database)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Setenv("SEARCH_MIN_RESULTS", "not-a-number")
	defer os.Unsetenv("SEARCH_MIN_RESULTS")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 9, cfg.Search.MinResults)
}
