package usgeo

// IsZipCode reports whether s is a well-formed 5-digit US zip code.
func IsZipCode(s string) bool {
	if len(s) != 5 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ZipPrefix returns the leading 3 digits of a zip code, the granularity used
// for nearby expansion. Empty when the zip is too short.
func ZipPrefix(zip string) string {
	if len(zip) < 3 {
		return ""
	}
	return zip[:3]
}
