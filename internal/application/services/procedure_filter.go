package services

import (
	"strings"

	"github.com/zatekoja/clinicsearch/internal/domain/entities"
)

// FilterByProcedure restricts clinics to those offering at least one
// procedure whose name contains any of the search strings, built from the
// abbreviation expansions (both the full name and the raw shorthand) plus
// every remaining term. Matching is case-insensitive substring, not token
// match. With no terms at all the input comes back unchanged.
func FilterByProcedure(clinics []*entities.Clinic, procedureTerms []entities.ProcedureTerm, remainingTerms []string) []*entities.Clinic {
	if len(procedureTerms) == 0 && len(remainingTerms) == 0 {
		return clinics
	}

	needles := make([]string, 0, len(procedureTerms)*2+len(remainingTerms))
	for _, term := range procedureTerms {
		needles = append(needles, strings.ToLower(term.FullName), strings.ToLower(term.Value))
	}
	for _, term := range remainingTerms {
		needles = append(needles, strings.ToLower(term))
	}

	var matched []*entities.Clinic
	for _, c := range clinics {
		if clinicOffersAny(c, needles) {
			matched = append(matched, c)
		}
	}
	return matched
}

func clinicOffersAny(c *entities.Clinic, needles []string) bool {
	for _, p := range c.DedupedProcedures() {
		name := strings.ToLower(p.Name)
		for _, needle := range needles {
			if needle != "" && strings.Contains(name, needle) {
				return true
			}
		}
	}
	return false
}
