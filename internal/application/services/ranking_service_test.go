package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zatekoja/clinicsearch/internal/domain/entities"
)

func TestScore_ExactNameBeatsSubstring(t *testing.T) {
	svc := NewRankingService()

	exact := &entities.Clinic{ID: "a", Name: "Glow Clinic"}
	partial := &entities.Clinic{ID: "b", Name: "Glow Clinic Annex"}
	unrelated := &entities.Clinic{ID: "c", Name: "Somewhere Else"}

	sExact := svc.Score(exact, "glow clinic", nil, nil)
	sPartial := svc.Score(partial, "glow clinic", nil, nil)
	sNone := svc.Score(unrelated, "glow clinic", nil, nil)

	assert.Greater(t, sExact, sPartial)
	assert.Greater(t, sPartial, sNone)
}

func TestScore_EngineStrengthCappedAtTen(t *testing.T) {
	svc := NewRankingService()
	clinic := &entities.Clinic{ID: "a", Name: "Clinic"}

	huge := svc.Score(clinic, "zzz", &entities.IndexMatch{Ref: "0", Score: 1e9}, nil)
	ten := svc.Score(clinic, "zzz", &entities.IndexMatch{Ref: "0", Score: 10}, nil)

	assert.Equal(t, ten, huge)
}

func TestScore_NoQueryUsesFlatTextBase(t *testing.T) {
	svc := NewRankingService()
	clinic := &entities.Clinic{ID: "a", Name: "Anything"}

	// text 5*10 = 50, nothing else contributes
	assert.Equal(t, 50.0, svc.Score(clinic, "", nil, nil))
}

func TestScore_ProcedureMatches(t *testing.T) {
	svc := NewRankingService()
	clinic := &entities.Clinic{
		ID:   "a",
		Name: "Clinic",
		Procedures: []entities.Procedure{
			{Name: "Liposuction", Category: "body"},
			{Name: "Mini Liposuction", Category: "body"},
		},
	}

	// exact name 3 + substring 1, weighted by 5
	withMatch := svc.Score(clinic, "liposuction", nil, nil)
	without := svc.Score(&entities.Clinic{ID: "b", Name: "Clinic"}, "liposuction", nil, nil)
	assert.Equal(t, 20.0, withMatch-without)
}

func TestScore_ProcedureSignalCapped(t *testing.T) {
	svc := NewRankingService()
	clinic := &entities.Clinic{ID: "a", Name: "Clinic"}
	for i := 0; i < 20; i++ {
		clinic.Procedures = append(clinic.Procedures, entities.Procedure{
			Name:     "Liposuction " + string(rune('a'+i)),
			Category: "body",
		})
	}

	base := svc.Score(&entities.Clinic{ID: "b", Name: "Clinic"}, "liposuction", nil, nil)
	capped := svc.Score(clinic, "liposuction", nil, nil)
	assert.Equal(t, 50.0, capped-base, "procedure signal caps at 10 before the x5 weight")
}

func TestScore_ReviewVolumeCappedAtFifty(t *testing.T) {
	svc := NewRankingService()

	fifty := svc.Score(&entities.Clinic{ID: "a", ReviewCount: 50}, "zzz", nil, nil)
	thousand := svc.Score(&entities.Clinic{ID: "b", ReviewCount: 1000}, "zzz", nil, nil)
	assert.Equal(t, fifty, thousand)
}

func TestScore_DistancePenaltyOnlyWithoutQuery(t *testing.T) {
	svc := NewRankingService()
	user := &entities.Location{Latitude: 25.76, Longitude: -80.19} // Miami

	near := &entities.Clinic{ID: "a", Latitude: 25.79, Longitude: -80.13}
	far := &entities.Clinic{ID: "b", Latitude: 33.75, Longitude: -84.39} // Atlanta

	assert.Greater(t, svc.Score(near, "", nil, user), svc.Score(far, "", nil, user))

	// With a query present, distance never contributes.
	assert.Equal(t, svc.Score(near, "zzz", nil, user), svc.Score(far, "zzz", nil, user))
}

func TestScore_RatingWeighted(t *testing.T) {
	svc := NewRankingService()

	rated := svc.Score(&entities.Clinic{ID: "a", Rating: 4.5}, "zzz", nil, nil)
	unrated := svc.Score(&entities.Clinic{ID: "b"}, "zzz", nil, nil)
	assert.InDelta(t, 9.0, rated-unrated, 1e-9)
}
