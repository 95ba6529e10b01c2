package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/zatekoja/clinicsearch/internal/domain/entities"
	"github.com/zatekoja/clinicsearch/internal/domain/repositories"
	"github.com/zatekoja/clinicsearch/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/clinicsearch/pkg/errors"
)

var clinicColumns = []interface{}{
	"id", "name", "address", "city", "state", "zip_code",
	"category", "rating", "review_count", "latitude", "longitude",
}

// ClinicAdapter implements ClinicRepository on PostgreSQL
type ClinicAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewClinicAdapter creates a new clinic adapter
func NewClinicAdapter(client *postgres.Client) repositories.ClinicRepository {
	return &ClinicAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a clinic with its procedures
func (a *ClinicAdapter) GetByID(ctx context.Context, id string) (*entities.Clinic, error) {
	query, args, err := a.db.Select(clinicColumns...).
		From("clinics").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	clinic := &entities.Clinic{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&clinic.ID,
		&clinic.Name,
		&clinic.Address,
		&clinic.City,
		&clinic.State,
		&clinic.ZipCode,
		&clinic.Category,
		&clinic.Rating,
		&clinic.ReviewCount,
		&clinic.Latitude,
		&clinic.Longitude,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("clinic with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get clinic", err)
	}

	procedures, err := a.proceduresFor(ctx, []string{clinic.ID})
	if err != nil {
		return nil, err
	}
	clinic.Procedures = procedures[clinic.ID]

	return clinic, nil
}

// List retrieves all clinics with their procedures
func (a *ClinicAdapter) List(ctx context.Context) ([]*entities.Clinic, error) {
	query, args, err := a.db.Select(clinicColumns...).
		From("clinics").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list clinics", err)
	}
	defer rows.Close()

	var clinics []*entities.Clinic
	var ids []string
	for rows.Next() {
		clinic := &entities.Clinic{}
		err := rows.Scan(
			&clinic.ID,
			&clinic.Name,
			&clinic.Address,
			&clinic.City,
			&clinic.State,
			&clinic.ZipCode,
			&clinic.Category,
			&clinic.Rating,
			&clinic.ReviewCount,
			&clinic.Latitude,
			&clinic.Longitude,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan clinic", err)
		}
		clinics = append(clinics, clinic)
		ids = append(ids, clinic.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate clinics", err)
	}

	procedures, err := a.proceduresFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, clinic := range clinics {
		clinic.Procedures = procedures[clinic.ID]
	}

	return clinics, nil
}

// Create creates a clinic and its procedures
func (a *ClinicAdapter) Create(ctx context.Context, clinic *entities.Clinic) error {
	if clinic.ID == "" {
		clinic.ID = uuid.New().String()
	}

	record := goqu.Record{
		"id":           clinic.ID,
		"name":         clinic.Name,
		"address":      clinic.Address,
		"city":         clinic.City,
		"state":        clinic.State,
		"zip_code":     clinic.ZipCode,
		"category":     clinic.Category,
		"rating":       clinic.Rating,
		"review_count": clinic.ReviewCount,
		"latitude":     clinic.Latitude,
		"longitude":    clinic.Longitude,
	}

	query, args, err := a.db.Insert("clinics").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	tx, err := a.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create clinic", err)
	}

	for _, procedure := range clinic.Procedures {
		record := goqu.Record{
			"id":        uuid.New().String(),
			"clinic_id": clinic.ID,
			"name":      procedure.Name,
			"category":  procedure.Category,
			"price":     procedure.Price,
			"providers": pq.Array(procedure.Providers),
		}

		query, args, err := a.db.Insert("clinic_procedures").Rows(record).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build procedure insert query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to create clinic procedure", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit clinic", err)
	}

	return nil
}

// proceduresFor loads procedures for the given clinic IDs, grouped by clinic
func (a *ClinicAdapter) proceduresFor(ctx context.Context, clinicIDs []string) (map[string][]entities.Procedure, error) {
	grouped := make(map[string][]entities.Procedure, len(clinicIDs))
	if len(clinicIDs) == 0 {
		return grouped, nil
	}

	query, args, err := a.db.Select("clinic_id", "name", "category", "price", "providers").
		From("clinic_procedures").
		Where(goqu.Ex{"clinic_id": clinicIDs}).
		Order(goqu.I("clinic_id").Asc(), goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build procedures query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list clinic procedures", err)
	}
	defer rows.Close()

	for rows.Next() {
		var clinicID string
		var procedure entities.Procedure
		var price sql.NullFloat64

		err := rows.Scan(
			&clinicID,
			&procedure.Name,
			&procedure.Category,
			&price,
			pq.Array(&procedure.Providers),
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan clinic procedure", err)
		}

		procedure.Price = price.Float64
		grouped[clinicID] = append(grouped[clinicID], procedure)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate clinic procedures", err)
	}

	return grouped, nil
}
