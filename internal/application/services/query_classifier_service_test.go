package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/clinicsearch/internal/domain/entities"
)

func classifierFixture() []*entities.Clinic {
	return []*entities.Clinic{
		{ID: "c1", Name: "Miami Aesthetics", City: "Miami", State: "FL", ZipCode: "33101"},
		{ID: "c2", Name: "Broward Body Clinic", City: "Fort Lauderdale", State: "FL", ZipCode: "33301"},
		{ID: "c3", Name: "Golden State Cosmetic", City: "San Diego", State: "CA", ZipCode: "92101"},
		{ID: "c4", Name: "Lone Star Clinic", City: "Austin", State: "TX", ZipCode: "78701"},
	}
}

func TestParse_EmptyQuery(t *testing.T) {
	svc := NewQueryClassifierService()
	parsed := svc.Parse("   ", classifierFixture())

	assert.Empty(t, parsed.LocationTerms)
	assert.Empty(t, parsed.ProcedureTerms)
	assert.Empty(t, parsed.RemainingTerms)
	assert.False(t, parsed.HasLocation)
	assert.False(t, parsed.HasProcedure)
}

func TestParse_ZipCode(t *testing.T) {
	svc := NewQueryClassifierService()
	parsed := svc.Parse("33101", classifierFixture())

	require.Len(t, parsed.LocationTerms, 1)
	assert.Equal(t, entities.LocationTermZip, parsed.LocationTerms[0].Type)
	assert.Equal(t, "33101", parsed.LocationTerms[0].Value)
	assert.True(t, parsed.HasLocation)
}

func TestParse_StateAbbreviation(t *testing.T) {
	svc := NewQueryClassifierService()
	parsed := svc.Parse("fl", classifierFixture())

	require.Len(t, parsed.LocationTerms, 1)
	assert.Equal(t, entities.LocationTermState, parsed.LocationTerms[0].Type)
	assert.Equal(t, "FL", parsed.LocationTerms[0].Value)
}

func TestParse_FullStateName_NormalizedToAbbreviation(t *testing.T) {
	svc := NewQueryClassifierService()
	parsed := svc.Parse("florida", classifierFixture())

	require.Len(t, parsed.LocationTerms, 1)
	assert.Equal(t, entities.LocationTermState, parsed.LocationTerms[0].Type)
	assert.Equal(t, "FL", parsed.LocationTerms[0].Value)
}

func TestParse_AbbreviationBeatsCity(t *testing.T) {
	// "bbl" must expand as a procedure abbreviation even when a dataset city
	// could plausibly swallow it as a two-word candidate.
	svc := NewQueryClassifierService()
	parsed := svc.Parse("bbl miami", classifierFixture())

	require.Len(t, parsed.ProcedureTerms, 1)
	assert.Equal(t, "bbl", parsed.ProcedureTerms[0].Value)
	assert.Equal(t, "brazilian butt lift", parsed.ProcedureTerms[0].FullName)

	require.Len(t, parsed.LocationTerms, 1)
	assert.Equal(t, entities.LocationTermCity, parsed.LocationTerms[0].Type)
	assert.Equal(t, "miami", parsed.LocationTerms[0].Value)
	assert.Empty(t, parsed.RemainingTerms)
}

func TestParse_DatasetCity(t *testing.T) {
	svc := NewQueryClassifierService()
	parsed := svc.Parse("austin", classifierFixture())

	require.Len(t, parsed.LocationTerms, 1)
	assert.Equal(t, entities.LocationTermCity, parsed.LocationTerms[0].Type)
	assert.Equal(t, "austin", parsed.LocationTerms[0].Value)
}

func TestParse_TwoWordCityFromDataset(t *testing.T) {
	svc := NewQueryClassifierService()
	parsed := svc.Parse("fort lauderdale", classifierFixture())

	require.Len(t, parsed.LocationTerms, 1)
	assert.Equal(t, "fort lauderdale", parsed.LocationTerms[0].Value)
	assert.Empty(t, parsed.RemainingTerms, "both tokens must be consumed")
}

func TestParse_TwoWordCityFromPrefixList(t *testing.T) {
	// "san jose" is not in the dataset, but "san" is a known multi-word city
	// prefix.
	svc := NewQueryClassifierService()
	parsed := svc.Parse("san jose", classifierFixture())

	require.Len(t, parsed.LocationTerms, 1)
	assert.Equal(t, entities.LocationTermCity, parsed.LocationTerms[0].Type)
	assert.Equal(t, "san jose", parsed.LocationTerms[0].Value)
}

func TestParse_PrefixNotConsumingAbbreviation(t *testing.T) {
	// The word after a city prefix must not be a procedure abbreviation;
	// "new" stays a remaining term and "bbl" expands.
	svc := NewQueryClassifierService()
	parsed := svc.Parse("new bbl", classifierFixture())

	assert.Empty(t, parsed.LocationTerms)
	require.Len(t, parsed.ProcedureTerms, 1)
	assert.Equal(t, "bbl", parsed.ProcedureTerms[0].Value)
	assert.Equal(t, []string{"new"}, parsed.RemainingTerms)
}

func TestParse_RemainingTerms(t *testing.T) {
	svc := NewQueryClassifierService()
	parsed := svc.Parse("cheap deals", classifierFixture())

	assert.False(t, parsed.HasLocation)
	assert.False(t, parsed.HasProcedure)
	assert.Equal(t, []string{"cheap", "deals"}, parsed.RemainingTerms)
}

func TestParse_MutuallyExclusiveClassification(t *testing.T) {
	svc := NewQueryClassifierService()
	parsed := svc.Parse("lipo miami fl 33101 cheap", classifierFixture())

	total := len(parsed.LocationTerms) + len(parsed.ProcedureTerms) + len(parsed.RemainingTerms)
	assert.Equal(t, 5, total, "every token lands in exactly one bucket")
	assert.Len(t, parsed.LocationTerms, 3)
	assert.Len(t, parsed.ProcedureTerms, 1)
	assert.Equal(t, []string{"cheap"}, parsed.RemainingTerms)
}
