package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"pdv-pricing/domain"
)

// Quote is one priced payment as it was shown at the counter.
type Quote struct {
	ID        string                  `json:"id"`
	CreatedAt time.Time               `json:"created_at"`
	Input     domain.InstallmentInput `json:"input"`
	Plan      domain.InstallmentPlan  `json:"plan"`
}

// QuoteRepositoryMemory keeps the most recent installment quotes in memory.
type QuoteRepositoryMemory struct {
	mu    sync.Mutex
	limit int
	data  []Quote
}

// NewQuoteRepositoryMemory creates a repository holding at most limit quotes; older ones are dropped.
func NewQuoteRepositoryMemory(limit int) *QuoteRepositoryMemory {
	return &QuoteRepositoryMemory{
		limit: limit,
		data:  []Quote{},
	}
}

func (r *QuoteRepositoryMemory) Save(
	input domain.InstallmentInput,
	plan domain.InstallmentPlan,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, Quote{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Input:     input,
		Plan:      plan,
	})
	if r.limit > 0 && len(r.data) > r.limit {
		r.data = r.data[len(r.data)-r.limit:]
	}
	return nil
}

// Recent returns up to n quotes, newest first. n <= 0 returns all of them.
func (r *QuoteRepositoryMemory) Recent(n int) []Quote {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || n > len(r.data) {
		n = len(r.data)
	}
	out := make([]Quote, 0, n)
	for i := len(r.data) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.data[i])
	}
	return out
}
