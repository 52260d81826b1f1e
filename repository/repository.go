package repository

import (
	"context"
	"errors"
	"time"

	"pdv-pricing/domain"
)

// ErrNotFound is returned when the requested record does not exist in the store.
var ErrNotFound = errors.New("not found")

type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

type QuoteRepository interface {
	Save(input domain.InstallmentInput, plan domain.InstallmentPlan) error
	Recent(n int) []Quote
}

// FeeScheduleStore is the load/save boundary of the fee schedule.
// Load returns ErrNotFound when nothing has been saved yet.
type FeeScheduleStore interface {
	Load(ctx context.Context) (domain.FeeSchedule, error)
	Save(ctx context.Context, schedule domain.FeeSchedule) error
}

type ProductRepository interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	UpdatePrices(ctx context.Context, updates []domain.PriceUpdate) error
}
