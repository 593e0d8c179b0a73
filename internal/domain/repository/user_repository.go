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

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByPhone(ctx context.Context, phone string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateRole(ctx context.Context, id, role string) error
	ConfirmEmail(ctx context.Context, id string) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, email, phone, full_name, hashed_password, role, email_confirmed)
	          VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, NULLIF($5, ''), $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Phone, user.FullName, user.HashedPassword, user.Role, user.EmailConfirmed)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given email or phone already registered: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email = $1", email)
}

func (r *pgUserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	return r.findBy(ctx, "phone = $1", phone)
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id = $1", id)
}

func (r *pgUserRepository) findBy(ctx context.Context, where string, arg any) (*model.User, error) {
	query := `SELECT id, COALESCE(email, ''), COALESCE(phone, ''), full_name, COALESCE(hashed_password, ''), role, email_confirmed, created_at, updated_at
	          FROM users WHERE ` + where
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.Phone, &user.FullName, &user.HashedPassword,
		&user.Role, &user.EmailConfirmed, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.findBy: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) ConfirmEmail(ctx context.Context, id string) error {
	query := `UPDATE users SET email_confirmed = TRUE, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("pgUserRepository.ConfirmEmail: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) UpdateRole(ctx context.Context, id, role string) error {
	query := `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, role)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateRole: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}
