package search

import (
	"strconv"
	"strings"

	"github.com/zatekoja/clinicsearch/internal/domain/entities"
	"github.com/zatekoja/clinicsearch/internal/domain/providers"
)

// DefaultFieldBoosts returns the per-field weights used when indexing
// clinics. Name and procedure text dominate; location fields matter less
// because location queries are answered by the filters, not the index.
func DefaultFieldBoosts() map[string]float64 {
	return map[string]float64{
		"name":       10,
		"procedures": 8,
		"category":   5,
		"city":       3,
		"state":      2,
		"zip_code":   2,
		"providers":  2,
		"address":    1,
	}
}

// BuildIndexRecords flattens clinics into index documents. Ref is the string
// form of the clinic's position in the slice; search results are mapped back
// to clinics through it.
func BuildIndexRecords(clinics []*entities.Clinic) []providers.IndexRecord {
	records := make([]providers.IndexRecord, 0, len(clinics))
	for i, clinic := range clinics {
		var procedureNames []string
		var providerNames []string
		for _, p := range clinic.DedupedProcedures() {
			procedureNames = append(procedureNames, p.Name)
			providerNames = append(providerNames, p.Providers...)
		}

		records = append(records, providers.IndexRecord{
			Ref: strconv.Itoa(i),
			Fields: map[string]string{
				"name":       clinic.Name,
				"address":    clinic.Address,
				"city":       clinic.City,
				"state":      clinic.State,
				"zip_code":   clinic.ZipCode,
				"category":   clinic.Category,
				"procedures": strings.Join(procedureNames, " "),
				"providers":  strings.Join(providerNames, " "),
			},
		})
	}
	return records
}
