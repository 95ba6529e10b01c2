package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/clinicsearch/internal/domain/entities"
)

func TestParseQuerySyntax(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		cleaned   string
		numTypos  int
		prefix    bool
	}{
		{"plain", "botox miami", "botox miami", 0, false},
		{"fuzzy", "botox~1 miami~1", "botox miami", 1, false},
		{"wildcard", "boto* mia*", "boto mia", 0, true},
		{"mixed", "botox~2 mia*", "botox mia", 2, true},
		{"bare tilde kept", "a~b", "a~b", 0, false},
		{"empty", "   ", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, numTypos, prefix := parseQuerySyntax(tt.query)
			assert.Equal(t, tt.cleaned, cleaned)
			assert.Equal(t, tt.numTypos, numTypos)
			assert.Equal(t, tt.prefix, prefix)
		})
	}
}

func TestBuildIndexRecords_RefsFollowPosition(t *testing.T) {
	clinics := []*entities.Clinic{
		{ID: "c-9", Name: "Glow Clinic", City: "Miami", Procedures: []entities.Procedure{
			{Name: "Botox", Category: "Injectables", Providers: []string{"Dr. Lee"}},
			{Name: "botox", Category: "injectables"},
			{Name: "Lip Filler", Category: "Injectables"},
		}},
		{ID: "c-2", Name: "Coastal Aesthetics", City: "Tampa"},
	}

	records := BuildIndexRecords(clinics)

	assert.Len(t, records, 2)
	assert.Equal(t, "0", records[0].Ref)
	assert.Equal(t, "1", records[1].Ref)
	assert.Equal(t, "Glow Clinic", records[0].Fields["name"])
	// Duplicate procedure collapses before joining
	assert.Equal(t, "Botox Lip Filler", records[0].Fields["procedures"])
	assert.Equal(t, "Dr. Lee", records[0].Fields["providers"])
	assert.Equal(t, "", records[1].Fields["procedures"])
}

func TestBoostedFields_OrderedByBoost(t *testing.T) {
	fields := boostedFields(map[string]float64{"city": 3, "name": 10, "state": 3})
	assert.Equal(t, []string{"name", "city", "state"}, fields)
	assert.Equal(t, "10,3,3", weightsFor(fields, map[string]float64{"city": 3, "name": 10, "state": 3}))
}
