package services

import (
	"strings"

	"github.com/zatekoja/clinicsearch/internal/domain/entities"
	"github.com/zatekoja/clinicsearch/pkg/usgeo"
)

// LocationFilterService computes exact and nearby clinic sets for classified
// location terms. Exact matching ANDs every term; nearby expansion runs per
// term and unions the results, always excluding the exact matches.
type LocationFilterService struct{}

// NewLocationFilterService creates a new location filter.
func NewLocationFilterService() *LocationFilterService {
	return &LocationFilterService{}
}

// FilterExact returns clinics satisfying the location terms. With multiple
// terms a clinic must satisfy every one of them; the single-term case walks
// the slice directly, which is behaviorally the same AND over one term.
func (s *LocationFilterService) FilterExact(clinics []*entities.Clinic, terms []entities.LocationTerm) []*entities.Clinic {
	if len(terms) == 0 {
		return nil
	}

	var matched []*entities.Clinic
	if len(terms) == 1 {
		term := terms[0]
		for _, c := range clinics {
			if matchesLocationTerm(c, term) {
				matched = append(matched, c)
			}
		}
		return matched
	}

	for _, c := range clinics {
		ok := true
		for _, term := range terms {
			if !matchesLocationTerm(c, term) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, c)
		}
	}
	return matched
}

// FilterNearby returns clinics reachable from the location terms via zip
// prefix or state adjacency, never including anything already in
// exactMatches. Expansion is computed independently per term and unioned; the
// AND semantics of the exact path do not apply here.
func (s *LocationFilterService) FilterNearby(clinics []*entities.Clinic, terms []entities.LocationTerm, exactMatches []*entities.Clinic) []*entities.Clinic {
	if len(terms) == 0 {
		return nil
	}

	exclude := make(map[string]struct{}, len(exactMatches))
	for _, c := range exactMatches {
		exclude[c.ID] = struct{}{}
	}

	var nearby []*entities.Clinic
	seen := make(map[string]struct{})
	add := func(c *entities.Clinic) {
		if _, skip := exclude[c.ID]; skip {
			return
		}
		if _, dup := seen[c.ID]; dup {
			return
		}
		seen[c.ID] = struct{}{}
		nearby = append(nearby, c)
	}

	for _, term := range terms {
		switch term.Type {
		case entities.LocationTermZip:
			s.nearbyByZip(clinics, term.Value, add)
		case entities.LocationTermState:
			s.nearbyByState(clinics, term.Value, add)
		case entities.LocationTermCity:
			s.nearbyByCity(clinics, term.Value, terms, exactMatches, add)
		}
	}

	return nearby
}

// nearbyByZip collects clinics whose zip shares the leading 3 digits with the
// queried zip.
func (s *LocationFilterService) nearbyByZip(clinics []*entities.Clinic, zip string, add func(*entities.Clinic)) {
	prefix := usgeo.ZipPrefix(zip)
	if prefix == "" {
		return
	}
	for _, c := range clinics {
		if usgeo.ZipPrefix(c.ZipCode) == prefix {
			add(c)
		}
	}
}

// nearbyByState collects clinics in states adjacent to the queried state.
// Non-contiguous states have empty adjacency and expand to nothing.
func (s *LocationFilterService) nearbyByState(clinics []*entities.Clinic, state string, add func(*entities.Clinic)) {
	adjacent := usgeo.AdjacentStates(state)
	if len(adjacent) == 0 {
		return
	}
	adjSet := make(map[string]struct{}, len(adjacent))
	for _, a := range adjacent {
		adjSet[a] = struct{}{}
	}
	for _, c := range clinics {
		if _, ok := adjSet[usgeo.NormalizeState(c.State)]; ok {
			add(c)
		}
	}
}

// nearbyByCity anchors on the states of the exact matches plus any explicit
// state terms in the query, then gathers other clinics in those states
// (excluding the queried city) and clinics in states adjacent to each anchor.
// A city query with no exact matches and no state term has no anchor and
// expands to nothing.
func (s *LocationFilterService) nearbyByCity(clinics []*entities.Clinic, city string, terms []entities.LocationTerm, exactMatches []*entities.Clinic, add func(*entities.Clinic)) {
	anchors := make(map[string]struct{})
	for _, c := range exactMatches {
		if st := usgeo.NormalizeState(c.State); st != "" {
			anchors[st] = struct{}{}
		}
	}
	for _, term := range terms {
		if term.Type == entities.LocationTermState {
			anchors[usgeo.NormalizeState(term.Value)] = struct{}{}
		}
	}
	if len(anchors) == 0 {
		return
	}

	adjacent := make(map[string]struct{})
	for anchor := range anchors {
		for _, a := range usgeo.AdjacentStates(anchor) {
			adjacent[a] = struct{}{}
		}
	}

	for _, c := range clinics {
		st := usgeo.NormalizeState(c.State)
		if _, ok := anchors[st]; ok {
			if !strings.EqualFold(strings.TrimSpace(c.City), city) {
				add(c)
			}
			continue
		}
		if _, ok := adjacent[st]; ok {
			add(c)
		}
	}
}

func matchesLocationTerm(c *entities.Clinic, term entities.LocationTerm) bool {
	switch term.Type {
	case entities.LocationTermZip:
		return c.ZipCode == term.Value
	case entities.LocationTermState:
		return usgeo.NormalizeState(c.State) == strings.ToUpper(strings.TrimSpace(term.Value))
	case entities.LocationTermCity:
		return strings.EqualFold(strings.TrimSpace(c.City), term.Value)
	}
	return false
}
