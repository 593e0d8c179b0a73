package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"farmdirect/internal/common"
	"farmdirect/internal/domain/model"
	"farmdirect/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
)

// Validity presets offered by the product form. Free-form input outside the
// presets is clamped to the allowed range instead of rejected.
var validityPresets = map[int]bool{1: true, 5: true, 10: true, 30: true}

type ProductService struct {
	products repository.ProductRepository
	farmers  *FarmerService

	minValidityDays int
	maxValidityDays int
	now             func() time.Time
}

func NewProductService(products repository.ProductRepository, farmers *FarmerService, minValidityDays, maxValidityDays int) *ProductService {
	return &ProductService{
		products:        products,
		farmers:         farmers,
		minValidityDays: minValidityDays,
		maxValidityDays: maxValidityDays,
		now:             time.Now,
	}
}

// ParseValidity interprets the listing validity input. The first integer in
// the value counts ("5", "5-days" and "5 days" all mean five); presets pass
// through exactly, anything else clamps to the allowed range, and input
// with no digits falls back to the minimum.
func (s *ProductService) ParseValidity(raw string) int {
	digits := ""
	for _, r := range strings.TrimSpace(raw) {
		if r < '0' || r > '9' {
			break
		}
		digits += string(r)
	}
	days, err := strconv.Atoi(digits)
	if err != nil {
		return s.minValidityDays
	}
	if validityPresets[days] {
		return days
	}
	if days < s.minValidityDays {
		return s.minValidityDays
	}
	if days > s.maxValidityDays {
		return s.maxValidityDays
	}
	return days
}

type CreateProductInput struct {
	Name         string     `json:"name"`
	Category     string     `json:"category"`
	Description  *string    `json:"description,omitempty"`
	Price        float64    `json:"price"`
	Quantity     string     `json:"quantity"`
	Unit         string     `json:"unit"`
	IsNegotiable bool       `json:"is_negotiable"`
	Validity     string     `json:"validity"`
	ImageURL     *string    `json:"image_url,omitempty"`
	SpecTags     []string   `json:"spec_tags,omitempty"`
	Grade        *string    `json:"grade,omitempty"`
	Moisture     *float64   `json:"moisture_content,omitempty"`
	Purity       *float64   `json:"purity,omitempty"`
	Origin       *string    `json:"origin,omitempty"`
	HarvestDate  *time.Time `json:"harvest_date,omitempty"`
}

func (in *CreateProductInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("Product Name is required: %w", common.ErrValidation)
	case strings.TrimSpace(in.Category) == "":
		return fmt.Errorf("Category is required: %w", common.ErrValidation)
	case in.Price <= 0:
		return fmt.Errorf("Price must be greater than zero: %w", common.ErrValidation)
	case strings.TrimSpace(in.Quantity) == "":
		return fmt.Errorf("Quantity is required: %w", common.ErrValidation)
	case strings.TrimSpace(in.Unit) == "":
		return fmt.Errorf("Unit is required: %w", common.ErrValidation)
	}
	return nil
}

// Create validates and stores a new listing for the farmer. The expiry is
// derived from the validity input at creation time.
func (s *ProductService) Create(ctx context.Context, farmerID string, in CreateProductInput) (*model.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	validityDays := s.ParseValidity(in.Validity)
	now := s.now()
	product := &model.Product{
		ID:           uuid.New().String(),
		FarmerID:     farmerID,
		Name:         strings.TrimSpace(in.Name),
		Category:     in.Category,
		Description:  in.Description,
		Price:        in.Price,
		Quantity:     strings.TrimSpace(in.Quantity),
		Unit:         in.Unit,
		IsActive:     true,
		IsNegotiable: in.IsNegotiable,
		ValidityDays: validityDays,
		ExpiresAt:    now.Add(time.Duration(validityDays) * 24 * time.Hour),
		ImageURL:     in.ImageURL,
		SpecTags:     in.SpecTags,
		Grade:        in.Grade,
		Moisture:     in.Moisture,
		Purity:       in.Purity,
		Origin:       in.Origin,
		HarvestDate:  in.HarvestDate,
	}
	product.Slug = newProductSlug(product.Name)
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}
	log.Info().Str("product_id", product.ID).Str("slug", product.Slug).Msg("product created")
	return product, nil
}

// CreateForUser creates a listing for the signed-in user. A user who never
// finished registration gets a placeholder profile created on the spot.
func (s *ProductService) CreateForUser(ctx context.Context, userID string, in CreateProductInput) (*model.Product, error) {
	farmer, err := s.farmers.EnsureProfile(ctx, userID, nil)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, farmer.ID, in)
}

// ListForSeller returns every listing owned by the signed-in user, active or
// not.
func (s *ProductService) ListForSeller(ctx context.Context, userID string) ([]model.Product, error) {
	farmer, err := s.farmers.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.products.ListByFarmer(ctx, farmer.ID)
}

// Update rewrites the mutable fields of a listing the user owns.
func (s *ProductService) Update(ctx context.Context, userID, productID string, update model.ProductUpdate) error {
	farmer, err := s.farmers.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := (&CreateProductInput{
		Name: update.Name, Category: update.Category, Price: update.Price,
		Quantity: update.Quantity, Unit: update.Unit,
	}).validate(); err != nil {
		return err
	}
	return s.products.Update(ctx, productID, farmer.ID, update)
}

// Delete removes a listing the user owns.
func (s *ProductService) Delete(ctx context.Context, userID, productID string) error {
	farmer, err := s.farmers.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.products.Delete(ctx, productID, farmer.ID)
}

// ToggleActive flips a listing between visible and hidden. The current state
// is read first so the write is always an explicit negation.
func (s *ProductService) ToggleActive(ctx context.Context, userID, productID string) (bool, error) {
	farmer, err := s.farmers.GetByUser(ctx, userID)
	if err != nil {
		return false, err
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return false, err
	}
	if product.FarmerID != farmer.ID {
		return false, common.ErrForbidden
	}
	next := !product.IsActive
	if err := s.products.UpdateActive(ctx, productID, farmer.ID, next); err != nil {
		return false, err
	}
	return next, nil
}

// List returns the public catalog: active, unexpired listings, optionally
// narrowed by a name query and a category.
func (s *ProductService) List(ctx context.Context, query, category string) ([]model.Product, error) {
	return s.products.ListActive(ctx, repository.ProductFilter{
		Query:    strings.TrimSpace(query),
		Category: strings.TrimSpace(category),
	})
}

// GetBySlug returns a single listing with its seller summary attached.
func (s *ProductService) GetBySlug(ctx context.Context, productSlug string) (*model.Product, error) {
	return s.products.FindBySlug(ctx, productSlug)
}

func newProductSlug(name string) string {
	return slug.Make(name) + "-" + uuid.New().String()[:8]
}
