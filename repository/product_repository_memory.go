package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"pdv-pricing/domain"
)

// ProductRepositoryMemory is an in-memory implementation of ProductRepository.
// Products are listed in insertion order.
type ProductRepositoryMemory struct {
	mu       sync.RWMutex
	order    []string
	products map[string]domain.Product
}

func NewProductRepositoryMemory(products ...domain.Product) *ProductRepositoryMemory {
	r := &ProductRepositoryMemory{
		products: make(map[string]domain.Product, len(products)),
	}
	for _, p := range products {
		r.Put(p)
	}
	return r
}

// Put inserts or replaces a product.
func (r *ProductRepositoryMemory) Put(p domain.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[p.ID]; !exists {
		r.order = append(r.order, p.ID)
	}
	r.products[p.ID] = p
}

func (r *ProductRepositoryMemory) Get(id string) (domain.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	return p, ok
}

func (r *ProductRepositoryMemory) List(
	_ context.Context,
	filter domain.ProductFilter,
) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Product{}
	for _, id := range r.order {
		p := r.products[id]
		if matchesFilter(p, filter) {
			out = append(out, p)
		}
	}
	return out, nil
}

// UpdatePrices applies all updates or none.
func (r *ProductRepositoryMemory) UpdatePrices(
	_ context.Context,
	updates []domain.PriceUpdate,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range updates {
		if _, ok := r.products[u.ProductID]; !ok {
			return fmt.Errorf("product %s: %w", u.ProductID, ErrNotFound)
		}
	}
	for _, u := range updates {
		p := r.products[u.ProductID]
		p.CostPrice = u.CostPrice
		p.SalePrice = u.SalePrice
		r.products[u.ProductID] = p
	}
	return nil
}

func matchesFilter(p domain.Product, f domain.ProductFilter) bool {
	if len(f.IDs) > 0 && !slices.Contains(f.IDs, p.ID) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
		return false
	}
	if f.Supplier != "" && !strings.EqualFold(p.Supplier, f.Supplier) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) && !strings.Contains(strings.ToLower(p.SKU), q) {
			return false
		}
	}
	return true
}
