package entities

// SearchOutcome is the result set handed back by the search orchestration,
// before category/price filters, sorting, and pagination are applied.
// NearbyResults never contains a clinic present in ExactResults.
type SearchOutcome struct {
	ExactResults     []*Clinic `json:"exact_results"`
	NearbyResults    []*Clinic `json:"nearby_results"`
	IsLocationSearch bool      `json:"is_location_search"`
	HasNearbyResults bool      `json:"has_nearby_results"`

	// MatchInfo carries the index engine's match strength per clinic ID when
	// the fallback text search produced the results. Nil for location and
	// procedure searches.
	MatchInfo map[string]IndexMatch `json:"-"`
}

// IndexMatch is a single hit from the external inverted-index engine. Ref is
// the string form of the record's position in the array the index was built
// from.
type IndexMatch struct {
	Ref   string  `json:"ref"`
	Score float64 `json:"score"`
}

// ResultPage is one page of assembled search results.
type ResultPage struct {
	Total       int       `json:"total"`
	TotalPages  int       `json:"total_pages"`
	CurrentPage int       `json:"current_page"`
	Results     []*Clinic `json:"results"`
}
