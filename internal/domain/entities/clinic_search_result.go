package entities

// ClinicSearchResult is the enriched search payload returned to API clients.
// DisplayProcedures is the trimmed procedure list selected for rendering,
// capped at five entries.
type ClinicSearchResult struct {
	ID                string      `json:"clinic_id"`
	Name              string      `json:"name"`
	Address           string      `json:"address"`
	City              string      `json:"city"`
	State             string      `json:"state"`
	ZipCode           string      `json:"zip_code"`
	Category          string      `json:"category"`
	Rating            float64     `json:"rating"`
	ReviewCount       int         `json:"review_count"`
	IsNearby          bool        `json:"is_nearby"`
	DisplayProcedures []Procedure `json:"display_procedures"`
}

// SearchResponse is one assembled page of search results plus paging
// metadata.
type SearchResponse struct {
	Total            int                  `json:"total"`
	TotalPages       int                  `json:"total_pages"`
	CurrentPage      int                  `json:"current_page"`
	IsLocationSearch bool                 `json:"is_location_search"`
	HasNearbyResults bool                 `json:"has_nearby_results"`
	Results          []ClinicSearchResult `json:"results"`
}
