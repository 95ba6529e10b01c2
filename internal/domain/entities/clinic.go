package entities

import "strings"

// Clinic represents a directory entry for a clinic and the procedures it offers.
// Clinics are read-only inputs to the search pipeline; they are loaded by the
// data layer and never mutated during search.
type Clinic struct {
	ID          string      `json:"clinic_id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Address     string      `json:"address" db:"address"`
	City        string      `json:"city" db:"city"`
	State       string      `json:"state" db:"state"`
	ZipCode     string      `json:"zip_code" db:"zip_code"`
	Category    string      `json:"category" db:"category"`
	Rating      float64     `json:"rating" db:"rating"` // 0-5, 0 means unrated
	ReviewCount int         `json:"review_count" db:"review_count"`
	Latitude    float64     `json:"latitude,omitempty" db:"latitude"`
	Longitude   float64     `json:"longitude,omitempty" db:"longitude"`
	Procedures  []Procedure `json:"procedures" db:"-"`
}

// Procedure is a single service offered by a clinic. A zero Price means
// "price on request".
type Procedure struct {
	Name      string   `json:"procedure_name" db:"name"`
	Category  string   `json:"category" db:"category"`
	Price     float64  `json:"price,omitempty" db:"price"`
	Providers []string `json:"providers,omitempty" db:"-"`
}

// Location represents geographical coordinates.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HasCoordinates reports whether the clinic carries usable coordinates.
func (c *Clinic) HasCoordinates() bool {
	return c.Latitude != 0 || c.Longitude != 0
}

// DedupedProcedures collapses duplicate procedures, where uniqueness is the
// case-insensitive (name, category) pair and the first occurrence wins. Every
// consumer of a clinic's procedure list goes through this before filtering or
// scoring.
func (c *Clinic) DedupedProcedures() []Procedure {
	if len(c.Procedures) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(c.Procedures))
	out := make([]Procedure, 0, len(c.Procedures))
	for _, p := range c.Procedures {
		key := strings.ToLower(p.Name) + "\x00" + strings.ToLower(p.Category)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
