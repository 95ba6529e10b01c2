package entities

// LocationTermType discriminates the kinds of location terms the classifier
// can produce.
type LocationTermType string

const (
	LocationTermZip   LocationTermType = "zip"
	LocationTermState LocationTermType = "state"
	LocationTermCity  LocationTermType = "city"
)

// LocationTerm is a classified location token from a search query. State
// values are always normalized to the 2-letter abbreviation.
type LocationTerm struct {
	Type  LocationTermType `json:"type"`
	Value string           `json:"value"`
}

// ProcedureTerm is a token that matched the procedure abbreviation table,
// e.g. "bbl" expanding to "brazilian butt lift".
type ProcedureTerm struct {
	Value    string `json:"value"`
	FullName string `json:"full_name"`
}

// ParsedQuery is the classifier's view of a search query. A token contributes
// to at most one of the three term lists. It is derived fresh per query and
// never cached, since the dataset can change independently of queries.
type ParsedQuery struct {
	LocationTerms  []LocationTerm  `json:"location_terms"`
	ProcedureTerms []ProcedureTerm `json:"procedure_terms"`
	RemainingTerms []string        `json:"remaining_terms"`
	HasLocation    bool            `json:"has_location"`
	HasProcedure   bool            `json:"has_procedure"`
}
