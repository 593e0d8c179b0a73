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

type MembershipRepository interface {
	Create(ctx context.Context, membership *model.PrimeMembership) error
	ListByConsumer(ctx context.Context, consumerID string) ([]model.PrimeMembership, error)
	MarkRefunded(ctx context.Context, id, consumerID string) error
}

type pgMembershipRepository struct {
	db *sql.DB
}

func NewPgMembershipRepository(db *sql.DB) MembershipRepository {
	return &pgMembershipRepository{db: db}
}

func (r *pgMembershipRepository) Create(ctx context.Context, membership *model.PrimeMembership) error {
	query := `INSERT INTO prime_memberships (id, consumer_id, farmer_id, purchased_at, purchase_deadline)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query,
		membership.ID, membership.ConsumerID, membership.FarmerID,
		membership.PurchasedAt, membership.PurchaseDeadline)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("membership for this seller already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgMembershipRepository.Create: %w", err)
	}
	return nil
}

func (r *pgMembershipRepository) ListByConsumer(ctx context.Context, consumerID string) ([]model.PrimeMembership, error) {
	query := `SELECT m.id, m.consumer_id, m.farmer_id, m.purchased_at, m.purchase_deadline, m.is_refunded,
	            f.display_id, f.full_name, f.address, f.contact_number
	          FROM prime_memberships m
	          JOIN farmers f ON f.id = m.farmer_id
	          WHERE m.consumer_id = $1
	          ORDER BY m.purchased_at DESC`
	rows, err := r.db.QueryContext(ctx, query, consumerID)
	if err != nil {
		return nil, fmt.Errorf("pgMembershipRepository.ListByConsumer: %w", err)
	}
	defer rows.Close()

	var memberships []model.PrimeMembership
	for rows.Next() {
		m := model.PrimeMembership{Farmer: &model.FarmerSummary{}}
		err := rows.Scan(
			&m.ID, &m.ConsumerID, &m.FarmerID, &m.PurchasedAt, &m.PurchaseDeadline, &m.IsRefunded,
			&m.Farmer.DisplayID, &m.Farmer.FullName, &m.Farmer.Address, &m.Farmer.ContactNumber,
		)
		if err != nil {
			return nil, fmt.Errorf("pgMembershipRepository.ListByConsumer: %w", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgMembershipRepository.ListByConsumer: %w", err)
	}
	return memberships, nil
}

func (r *pgMembershipRepository) MarkRefunded(ctx context.Context, id, consumerID string) error {
	query := `UPDATE prime_memberships SET is_refunded = TRUE
	          WHERE id = $1 AND consumer_id = $2 AND is_refunded = FALSE`
	res, err := r.db.ExecContext(ctx, query, id, consumerID)
	if err != nil {
		return fmt.Errorf("pgMembershipRepository.MarkRefunded: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
