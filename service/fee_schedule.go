package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"pdv-pricing/domain"
	"pdv-pricing/repository"
)

// DefaultFeeSchedule returns version 1 of the schedule: no interest up to 3 installments,
// 2.5% at 4 rising 0.5 point per installment to 9.5% at 18.
func DefaultFeeSchedule() domain.FeeSchedule {
	s := domain.FeeSchedule{
		Version:       1,
		DebitFeeRate:  DefaultDebitFeeRate,
		CreditFeeRate: DefaultCreditFeeRate,
	}
	for n := InterestFreeInstallments + 1; n <= domain.MaxInstallments; n++ {
		s.InstallmentRates[n-1] = DefaultFirstInterestRate + DefaultInterestStep*float64(n-InterestFreeInstallments-1)
	}
	return s
}

// ScheduleRate returns the interest percentage for count installments.
func ScheduleRate(schedule domain.FeeSchedule, count int) (float64, error) {
	if count < MinInstallments || count > domain.MaxInstallments {
		return 0, invalid(ErrInvalidInstallmentCount, "%d is outside %d..%d", count, MinInstallments, domain.MaxInstallments)
	}
	return schedule.InstallmentRates[count-1], nil
}

func ValidateFeeSchedule(s domain.FeeSchedule) error {
	if s.DebitFeeRate < 0 || s.DebitFeeRate >= MaxFeeRate {
		return invalid(ErrInvalidFeeSchedule, "debit fee rate %.4f", s.DebitFeeRate)
	}
	if s.CreditFeeRate < 0 || s.CreditFeeRate >= MaxFeeRate {
		return invalid(ErrInvalidFeeSchedule, "credit fee rate %.4f", s.CreditFeeRate)
	}

	prev := 0.0
	for i, rate := range s.InstallmentRates {
		n := i + 1
		switch {
		case rate < 0 || rate > MaxScheduleRate:
			return invalid(ErrInvalidFeeSchedule, "rate %.2f%% for %d installments", rate, n)
		case n <= InterestFreeInstallments && rate != 0:
			return invalid(ErrInvalidFeeSchedule, "%d installments must be interest free", n)
		case rate < prev:
			return invalid(ErrInvalidFeeSchedule, "rate for %d installments is lower than for %d", n, n-1)
		}
		prev = rate
	}
	return nil
}

// ScheduleProvider hands out the schedule currently in force.
type ScheduleProvider interface {
	Current() domain.FeeSchedule
}

// FeeScheduleService owns the schedule shared by the card simulation and the sale payment flows.
type FeeScheduleService struct {
	store repository.FeeScheduleStore
	now   func() time.Time

	mu      sync.RWMutex
	current domain.FeeSchedule
}

// NewFeeScheduleService loads the stored schedule, falling back to DefaultFeeSchedule when the
// store is empty. A stored schedule that fails validation is rejected.
func NewFeeScheduleService(ctx context.Context, store repository.FeeScheduleStore) (*FeeScheduleService, error) {
	schedule, err := store.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		schedule = DefaultFeeSchedule()
		slog.Info("no stored fee schedule, using default", "version", schedule.Version)
	case err != nil:
		return nil, err
	default:
		if err := ValidateFeeSchedule(schedule); err != nil {
			return nil, fmt.Errorf("stored fee schedule: %w", err)
		}
	}

	return &FeeScheduleService{
		store:   store,
		now:     time.Now,
		current: schedule,
	}, nil
}

func (s *FeeScheduleService) Current() domain.FeeSchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update validates and persists a new schedule. The version is always the previous one plus one;
// whatever the caller sent is ignored.
func (s *FeeScheduleService) Update(ctx context.Context, schedule domain.FeeSchedule) (domain.FeeSchedule, error) {
	if err := ValidateFeeSchedule(schedule); err != nil {
		return domain.FeeSchedule{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	schedule.Version = s.current.Version + 1
	schedule.UpdatedAt = s.now().UTC()

	if err := s.store.Save(ctx, schedule); err != nil {
		return domain.FeeSchedule{}, fmt.Errorf("save fee schedule: %w", err)
	}
	s.current = schedule

	slog.Info("fee schedule updated", "version", schedule.Version)
	return schedule, nil
}
