package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"pdv-pricing/domain"
	"pdv-pricing/repository"
)

// AdjustPrice applies one bulk adjustment step to a price. The result is clamped at zero and
// left unrounded; rounding happens once, when the price is persisted.
func AdjustPrice(current float64, mode domain.AdjustmentMode, magnitude float64) float64 {
	next := current
	switch mode {
	case domain.IncreasePercent:
		next = current * (1 + magnitude/100)
	case domain.DecreasePercent:
		next = current * (1 - magnitude/100)
	case domain.IncreaseAmount:
		next = current + magnitude
	case domain.DecreaseAmount:
		next = current - magnitude
	}
	return math.Max(0, next)
}

// ParseMagnitude reads the adjustment field. Unparseable or negative input is 0, which makes the
// adjustment a no-op.
func ParseMagnitude(text string) float64 {
	v := ParseDisplayToAmount(text)
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

type PriceAdjustmentService struct {
	products repository.ProductRepository
	now      func() time.Time
}

func NewPriceAdjustmentService(products repository.ProductRepository) *PriceAdjustmentService {
	return &PriceAdjustmentService{products: products, now: time.Now}
}

// Apply recalculates cost and/or sale price of every product matching the filter by the same
// magnitude. Only products whose rounded prices actually change are written, and nothing is
// written on a dry run.
func (s *PriceAdjustmentService) Apply(
	ctx context.Context,
	req domain.AdjustmentRequest,
) (domain.AdjustmentBatch, error) {
	if !req.Mode.Valid() {
		return domain.AdjustmentBatch{}, invalid(ErrInvalidAdjustmentMode, "%q", req.Mode)
	}
	if !req.ApplyToCost && !req.ApplyToSale {
		return domain.AdjustmentBatch{}, &ValidationError{Err: ErrNothingToAdjust}
	}

	magnitude := ParseMagnitude(req.Magnitude)

	products, err := s.products.List(ctx, req.Filter)
	if err != nil {
		return domain.AdjustmentBatch{}, fmt.Errorf("load products: %w", err)
	}

	batch := domain.AdjustmentBatch{
		ID:        uuid.NewString(),
		Mode:      req.Mode,
		Magnitude: magnitude,
		DryRun:    req.DryRun,
		CreatedAt: s.now().UTC(),
		Changes:   make([]domain.PriceChange, 0, len(products)),
	}

	var updates []domain.PriceUpdate
	for _, p := range products {
		cost, sale := p.CostPrice, p.SalePrice
		if req.ApplyToCost {
			cost = AdjustPrice(p.CostPrice, req.Mode, magnitude)
		}
		if req.ApplyToSale {
			sale = AdjustPrice(p.SalePrice, req.Mode, magnitude)
		}

		update := domain.PriceUpdate{
			ProductID: p.ID,
			CostPrice: RoundCurrency(cost),
			SalePrice: RoundCurrency(sale),
		}
		batch.Changes = append(batch.Changes, domain.PriceChange{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			OldCostPrice: p.CostPrice,
			NewCostPrice: update.CostPrice,
			OldSalePrice: p.SalePrice,
			NewSalePrice: update.SalePrice,
		})

		if update.CostPrice != p.CostPrice || update.SalePrice != p.SalePrice {
			updates = append(updates, update)
		}
	}

	if req.DryRun || len(updates) == 0 {
		return batch, nil
	}

	if err := s.products.UpdatePrices(ctx, updates); err != nil {
		return domain.AdjustmentBatch{}, fmt.Errorf("persist adjusted prices: %w", err)
	}

	slog.Info("bulk price adjustment applied",
		"batch", batch.ID, "mode", batch.Mode, "magnitude", magnitude,
		"matched", len(products), "updated", len(updates))
	return batch, nil
}
