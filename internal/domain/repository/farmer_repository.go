package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"farmdirect/internal/common"
	"farmdirect/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type FarmerRepository interface {
	Create(ctx context.Context, farmer *model.Farmer) error
	FindByUserID(ctx context.Context, userID string) (*model.Farmer, error)
	FindByID(ctx context.Context, id string) (*model.Farmer, error)
}

type pgFarmerRepository struct {
	db *sql.DB
}

func NewPgFarmerRepository(db *sql.DB) FarmerRepository {
	return &pgFarmerRepository{db: db}
}

const farmerColumns = `id, user_id, display_id, full_name, address, contact_number, aadhaar_number, gst_number, is_verified, created_at, updated_at`

func (r *pgFarmerRepository) Create(ctx context.Context, farmer *model.Farmer) error {
	query := `INSERT INTO farmers (id, user_id, display_id, full_name, address, contact_number, aadhaar_number, gst_number)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          RETURNING is_verified, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		farmer.ID, farmer.UserID, farmer.DisplayID, farmer.FullName,
		farmer.Address, farmer.ContactNumber, farmer.AadhaarNumber, farmer.GSTNumber,
	).Scan(&farmer.IsVerified, &farmer.CreatedAt, &farmer.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // Unique violation: one profile per user
				return fmt.Errorf("seller profile already exists: %w", common.ErrConflict)
			case "23502": // Not-null violation: surface the column for categorization
				return fmt.Errorf("null value in column %q: %w", pgErr.ColumnName, common.ErrValidation)
			}
		}
		return fmt.Errorf("pgFarmerRepository.Create: %w", err)
	}
	return nil
}

func (r *pgFarmerRepository) FindByUserID(ctx context.Context, userID string) (*model.Farmer, error) {
	return r.findBy(ctx, "user_id = $1", userID)
}

func (r *pgFarmerRepository) FindByID(ctx context.Context, id string) (*model.Farmer, error) {
	return r.findBy(ctx, "id = $1", id)
}

func (r *pgFarmerRepository) findBy(ctx context.Context, where string, arg any) (*model.Farmer, error) {
	query := `SELECT ` + farmerColumns + ` FROM farmers WHERE ` + where
	farmer := &model.Farmer{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&farmer.ID, &farmer.UserID, &farmer.DisplayID, &farmer.FullName,
		&farmer.Address, &farmer.ContactNumber, &farmer.AadhaarNumber,
		&farmer.GSTNumber, &farmer.IsVerified, &farmer.CreatedAt, &farmer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgFarmerRepository.findBy: %w", err)
	}
	return farmer, nil
}
