package usgeo

import "strings"

// stateNames maps 2-letter state abbreviations to full state names. It is
// compiled-in configuration, never mutated at runtime.
var stateNames = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"DC": "District of Columbia",
	"FL": "Florida",
	"GA": "Georgia",
	"HI": "Hawaii",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"IA": "Iowa",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"ME": "Maine",
	"MD": "Maryland",
	"MA": "Massachusetts",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MS": "Mississippi",
	"MO": "Missouri",
	"MT": "Montana",
	"NE": "Nebraska",
	"NV": "Nevada",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NY": "New York",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VT": "Vermont",
	"VA": "Virginia",
	"WA": "Washington",
	"WV": "West Virginia",
	"WI": "Wisconsin",
	"WY": "Wyoming",
}

// stateAbbreviations is the reverse lookup, lowercase full name to
// abbreviation, derived once at init.
var stateAbbreviations = func() map[string]string {
	m := make(map[string]string, len(stateNames))
	for abbr, name := range stateNames {
		m[strings.ToLower(name)] = abbr
	}
	return m
}()

// StateName returns the full name for a 2-letter abbreviation.
func StateName(abbr string) (string, bool) {
	name, ok := stateNames[strings.ToUpper(strings.TrimSpace(abbr))]
	return name, ok
}

// AbbreviationFor returns the 2-letter abbreviation for a full state name,
// case-insensitively.
func AbbreviationFor(name string) (string, bool) {
	abbr, ok := stateAbbreviations[strings.ToLower(strings.TrimSpace(name))]
	return abbr, ok
}

// IsStateAbbreviation reports whether s is a known 2-letter state
// abbreviation.
func IsStateAbbreviation(s string) bool {
	_, ok := stateNames[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

// NormalizeState maps either form of a state to its uppercase abbreviation.
// Unknown values come back trimmed and uppercased so raw comparisons still
// behave.
func NormalizeState(s string) string {
	trimmed := strings.TrimSpace(s)
	if abbr, ok := stateAbbreviations[strings.ToLower(trimmed)]; ok {
		return abbr
	}
	return strings.ToUpper(trimmed)
}
