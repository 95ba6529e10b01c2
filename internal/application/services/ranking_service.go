package services

import (
	"math"
	"strings"

	"github.com/zatekoja/clinicsearch/internal/domain/entities"
)

// RankingService computes the relevance score used to order results when no
// explicit sort mode is chosen. Five additive signal groups, each bounded
// before its weight is applied so no single signal dominates. The total has
// no fixed ceiling; only relative ordering matters.
type RankingService struct {
	wText      float64
	wProcedure float64
	wRating    float64
	wReviews   float64
	wDistance  float64
}

// NewRankingService creates a ranking service with the standard weights.
func NewRankingService() *RankingService {
	return &RankingService{
		wText:      10,
		wProcedure: 5,
		wRating:    2,
		wReviews:   0.1,
		wDistance:  0.01,
	}
}

// Score computes the relevance score for one clinic. match is the index
// engine's hit for this clinic when the fallback search produced it, nil
// otherwise. userLocation only matters for query-less browsing, where it
// applies a distance penalty.
func (s *RankingService) Score(clinic *entities.Clinic, query string, match *entities.IndexMatch, userLocation *entities.Location) float64 {
	q := strings.ToLower(strings.TrimSpace(query))

	score := s.textSignal(clinic, q, match) * s.wText
	score += s.procedureSignal(clinic, q) * s.wProcedure
	score += clinic.Rating * s.wRating
	score += math.Min(float64(clinic.ReviewCount), 50) * s.wReviews

	if q == "" && userLocation != nil && clinic.HasCoordinates() {
		dist := haversineKm(userLocation.Latitude, userLocation.Longitude, clinic.Latitude, clinic.Longitude)
		score -= dist * s.wDistance
	}

	return score
}

// textSignal is the engine match strength capped at 10, or a flat 5 when
// there is no query at all, plus name and location bonuses. The bonuses are
// added before the weight is applied.
func (s *RankingService) textSignal(clinic *entities.Clinic, q string, match *entities.IndexMatch) float64 {
	base := 0.0
	if match != nil {
		base = math.Min(match.Score, 10)
	} else if q == "" {
		base = 5
	}
	if q == "" {
		return base
	}

	name := strings.ToLower(clinic.Name)
	if name == q {
		base += 5
	} else if strings.Contains(name, q) {
		base += 2
	}

	city := strings.ToLower(clinic.City)
	state := strings.ToLower(clinic.State)
	if city == q || state == q {
		base += 3
	} else if strings.Contains(city, q) || strings.Contains(state, q) {
		base += 1
	}

	return base
}

// procedureSignal counts exact name matches (3 each), substring matches
// (1 each), and category matches (0.5 each), capped at 10. Without a query
// it degrades to a small offering-breadth signal.
func (s *RankingService) procedureSignal(clinic *entities.Clinic, q string) float64 {
	procedures := clinic.DedupedProcedures()
	if q == "" {
		return math.Min(float64(len(procedures))*0.1, 5)
	}

	sum := 0.0
	for _, p := range procedures {
		name := strings.ToLower(p.Name)
		switch {
		case name == q:
			sum += 3
		case strings.Contains(name, q):
			sum += 1
		}
		if strings.Contains(strings.ToLower(p.Category), q) {
			sum += 0.5
		}
	}
	return math.Min(sum, 10)
}

// haversineKm is the great-circle distance between two points, Earth radius
// 6371 km.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	dLat := degreesToRadians(lat2 - lat1)
	dLon := degreesToRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(lat1))*math.Cos(degreesToRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
