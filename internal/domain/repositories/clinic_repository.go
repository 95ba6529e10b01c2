package repositories

import (
	"context"

	"github.com/zatekoja/clinicsearch/internal/domain/entities"
)

// ClinicRepository defines the interface for clinic data operations. The
// search pipeline itself never touches storage; it receives the clinic slice
// this repository loads.
type ClinicRepository interface {
	// GetByID retrieves a clinic with its procedures
	GetByID(ctx context.Context, id string) (*entities.Clinic, error)

	// List retrieves all active clinics with their procedures
	List(ctx context.Context) ([]*entities.Clinic, error)

	// Create creates a clinic and its procedures
	Create(ctx context.Context, clinic *entities.Clinic) error
}
