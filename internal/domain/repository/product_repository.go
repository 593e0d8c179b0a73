package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"farmdirect/internal/common"
	"farmdirect/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ProductFilter struct {
	Query    string
	Category string
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	ListByFarmer(ctx context.Context, farmerID string) ([]model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindBySlug(ctx context.Context, slug string) (*model.Product, error)
	ListActive(ctx context.Context, filter ProductFilter) ([]model.Product, error)
	Update(ctx context.Context, id, farmerID string, update model.ProductUpdate) error
	UpdateActive(ctx context.Context, id, farmerID string, active bool) error
	Delete(ctx context.Context, id, farmerID string) error
}

type pgProductRepository struct {
	db *sql.DB
}

func NewPgProductRepository(db *sql.DB) ProductRepository {
	return &pgProductRepository{db: db}
}

const productColumns = `p.id, p.farmer_id, p.name, p.slug, p.category, p.description, p.price, p.quantity, p.unit,
	p.is_active, p.is_negotiable, p.validity_days, p.expires_at, p.image_url, p.spec_tags,
	p.grade, p.moisture, p.purity, p.origin, p.harvest_date, p.created_at, p.updated_at`

func (r *pgProductRepository) Create(ctx context.Context, product *model.Product) error {
	tags, err := json.Marshal(product.SpecTags)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Create: marshal tags: %w", err)
	}
	query := `INSERT INTO products
	          (id, farmer_id, name, slug, category, description, price, quantity, unit,
	           is_active, is_negotiable, validity_days, expires_at, image_url, spec_tags,
	           grade, moisture, purity, origin, harvest_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	          RETURNING created_at, updated_at`
	err = r.db.QueryRowContext(ctx, query,
		product.ID, product.FarmerID, product.Name, product.Slug, product.Category,
		product.Description, product.Price, product.Quantity, product.Unit,
		product.IsActive, product.IsNegotiable, product.ValidityDays, product.ExpiresAt,
		product.ImageURL, tags,
		product.Grade, product.Moisture, product.Purity, product.Origin, product.HarvestDate,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("product with slug '%s' already exists: %w", product.Slug, common.ErrConflict)
		}
		return fmt.Errorf("pgProductRepository.Create: %w", err)
	}
	return nil
}

func (r *pgProductRepository) ListByFarmer(ctx context.Context, farmerID string) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p
	          WHERE p.farmer_id = $1 ORDER BY p.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("pgProductRepository.ListByFarmer: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *pgProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	return r.findBy(ctx, "p.id = $1", id)
}

func (r *pgProductRepository) FindBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `SELECT ` + productColumns + `,
	            f.display_id, f.full_name, f.address, f.contact_number
	          FROM products p
	          JOIN farmers f ON f.id = p.farmer_id
	          WHERE p.slug = $1`
	product := &model.Product{Farmer: &model.FarmerSummary{}}
	var tags []byte
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&product.ID, &product.FarmerID, &product.Name, &product.Slug, &product.Category,
		&product.Description, &product.Price, &product.Quantity, &product.Unit,
		&product.IsActive, &product.IsNegotiable, &product.ValidityDays, &product.ExpiresAt,
		&product.ImageURL, &tags,
		&product.Grade, &product.Moisture, &product.Purity, &product.Origin, &product.HarvestDate,
		&product.CreatedAt, &product.UpdatedAt,
		&product.Farmer.DisplayID, &product.Farmer.FullName,
		&product.Farmer.Address, &product.Farmer.ContactNumber,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProductRepository.FindBySlug: %w", err)
	}
	if err := json.Unmarshal(tags, &product.SpecTags); err != nil {
		return nil, fmt.Errorf("pgProductRepository.FindBySlug: unmarshal tags: %w", err)
	}
	return product, nil
}

func (r *pgProductRepository) ListActive(ctx context.Context, filter ProductFilter) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p
	          WHERE p.is_active = TRUE AND p.expires_at > NOW()
	            AND ($1 = '' OR p.name ILIKE '%' || $1 || '%')
	            AND ($2 = '' OR p.category = $2)
	          ORDER BY p.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, filter.Query, filter.Category)
	if err != nil {
		return nil, fmt.Errorf("pgProductRepository.ListActive: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func (r *pgProductRepository) Update(ctx context.Context, id, farmerID string, update model.ProductUpdate) error {
	query := `UPDATE products SET
	            name = $3, category = $4, price = $5, quantity = $6, unit = $7,
	            description = $8, is_active = $9, updated_at = NOW()
	          WHERE id = $1 AND farmer_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, farmerID,
		update.Name, update.Category, update.Price, update.Quantity, update.Unit,
		update.Description, update.IsActive)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProductRepository) UpdateActive(ctx context.Context, id, farmerID string, active bool) error {
	query := `UPDATE products SET is_active = $3, updated_at = NOW()
	          WHERE id = $1 AND farmer_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, farmerID, active)
	if err != nil {
		return fmt.Errorf("pgProductRepository.UpdateActive: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProductRepository) Delete(ctx context.Context, id, farmerID string) error {
	query := `DELETE FROM products WHERE id = $1 AND farmer_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, farmerID)
	if err != nil {
		return fmt.Errorf("pgProductRepository.Delete: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgProductRepository) findBy(ctx context.Context, where string, arg any) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE ` + where
	product := &model.Product{}
	var tags []byte
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&product.ID, &product.FarmerID, &product.Name, &product.Slug, &product.Category,
		&product.Description, &product.Price, &product.Quantity, &product.Unit,
		&product.IsActive, &product.IsNegotiable, &product.ValidityDays, &product.ExpiresAt,
		&product.ImageURL, &tags,
		&product.Grade, &product.Moisture, &product.Purity, &product.Origin, &product.HarvestDate,
		&product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProductRepository.findBy: %w", err)
	}
	if err := json.Unmarshal(tags, &product.SpecTags); err != nil {
		return nil, fmt.Errorf("pgProductRepository.findBy: unmarshal tags: %w", err)
	}
	return product, nil
}

func scanProducts(rows *sql.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var p model.Product
		var tags []byte
		err := rows.Scan(
			&p.ID, &p.FarmerID, &p.Name, &p.Slug, &p.Category,
			&p.Description, &p.Price, &p.Quantity, &p.Unit,
			&p.IsActive, &p.IsNegotiable, &p.ValidityDays, &p.ExpiresAt,
			&p.ImageURL, &tags,
			&p.Grade, &p.Moisture, &p.Purity, &p.Origin, &p.HarvestDate,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanProducts: %w", err)
		}
		if err := json.Unmarshal(tags, &p.SpecTags); err != nil {
			return nil, fmt.Errorf("scanProducts: unmarshal tags: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scanProducts: %w", err)
	}
	return products, nil
}
