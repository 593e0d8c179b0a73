package service

import (
	"context"
	"sync"

	"farmdirect/internal/common"
	"farmdirect/internal/domain/model"
	"farmdirect/internal/domain/repository"
)

type memFarmerRepo struct {
	mu      sync.Mutex
	farmers map[string]*model.Farmer
	// createErrs is drained one per Create call before the insert happens,
	// letting tests script transient failures.
	createErrs []error
}

func newMemFarmerRepo() *memFarmerRepo {
	return &memFarmerRepo{farmers: make(map[string]*model.Farmer)}
}

func (r *memFarmerRepo) failCreates(errs ...error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createErrs = append(r.createErrs, errs...)
}

func (r *memFarmerRepo) Create(_ context.Context, farmer *model.Farmer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return err
	}
	for _, f := range r.farmers {
		if f.UserID == farmer.UserID {
			return common.ErrConflict
		}
	}
	r.farmers[farmer.ID] = farmer
	return nil
}

func (r *memFarmerRepo) FindByUserID(_ context.Context, userID string) (*model.Farmer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.farmers {
		if f.UserID == userID {
			return f, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memFarmerRepo) FindByID(_ context.Context, id string) (*model.Farmer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.farmers[id]; ok {
		return f, nil
	}
	return nil, common.ErrNotFound
}

type memProductRepo struct {
	mu       sync.Mutex
	products map[string]*model.Product
	// activeWrites records every UpdateActive call so toggle tests can
	// assert on the exact sequence of writes.
	activeWrites []bool
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[string]*model.Product)}
}

func (r *memProductRepo) Create(_ context.Context, product *model.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == product.Slug {
			return common.ErrConflict
		}
	}
	cp := *product
	r.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) ListByFarmer(_ context.Context, farmerID string) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		if p.FarmerID == farmerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.products[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (r *memProductRepo) FindBySlug(_ context.Context, slug string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memProductRepo) ListActive(_ context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Product
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProductRepo) Update(_ context.Context, id, farmerID string, update model.ProductUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.FarmerID != farmerID {
		return common.ErrNotFound
	}
	p.Name = update.Name
	p.Category = update.Category
	p.Price = update.Price
	p.Quantity = update.Quantity
	p.Unit = update.Unit
	p.Description = update.Description
	p.IsActive = update.IsActive
	return nil
}

func (r *memProductRepo) UpdateActive(_ context.Context, id, farmerID string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.FarmerID != farmerID {
		return common.ErrNotFound
	}
	r.activeWrites = append(r.activeWrites, active)
	p.IsActive = active
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id, farmerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || p.FarmerID != farmerID {
		return common.ErrNotFound
	}
	delete(r.products, id)
	return nil
}
