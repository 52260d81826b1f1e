package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"pdv-pricing/domain"
	"pdv-pricing/repository"
)

type InstallmentService struct {
	fees     ScheduleProvider
	quotes   repository.QuoteRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
}

func NewInstallmentService(
	fees ScheduleProvider,
	quotes repository.QuoteRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
) *InstallmentService {
	return &InstallmentService{
		fees:     fees,
		quotes:   quotes,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Calculate prices a single payment and records the quote.
func (s *InstallmentService) Calculate(
	input domain.InstallmentInput,
) (domain.InstallmentPlan, error) {
	plan, err := computePlan(s.fees.Current(), input)
	if err != nil {
		return domain.InstallmentPlan{}, err
	}

	if plan.TotalPayable > 0 {
		// not critical if it fails
		if err := s.quotes.Save(input, plan); err != nil {
			slog.Warn("failed to save installment quote", "err", err)
		}
	}
	return plan, nil
}

// RecentQuotes lists the last priced payments, newest first.
func (s *InstallmentService) RecentQuotes(limit int) []repository.Quote {
	return s.quotes.Recent(limit)
}

// Simulate prices a credit purchase for every installment count from 1 to the maximum.
// A non-positive amount yields no plans. The amount is rounded to cents before pricing,
// so inputs that differ below a cent share one cache entry and one result.
func (s *InstallmentService) Simulate(
	ctx context.Context,
	input domain.SimulationInput,
) (domain.SimulationResult, error) {
	if !isFinite(input.Amount) {
		return domain.SimulationResult{}, invalid(ErrAmountOutOfRange, "amount is not a finite number")
	}
	input.Amount = RoundCurrency(input.Amount)

	schedule := s.fees.Current()
	result := domain.SimulationResult{
		Amount:          input.Amount,
		WithInterest:    input.WithInterest,
		ScheduleVersion: schedule.Version,
		Plans:           []domain.InstallmentPlan{},
	}
	if input.Amount <= 0 {
		return result, nil
	}
	if input.Amount > MaxSaleAmount {
		return domain.SimulationResult{}, invalid(ErrAmountOutOfRange, "amount exceeds %.2f", MaxSaleAmount)
	}

	key := simulationKey(schedule.Version, input)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var hit domain.SimulationResult
		if err := json.Unmarshal([]byte(cached), &hit); err == nil {
			return hit, nil
		}
		slog.Warn("discarding undecodable simulation cache entry", "key", key)
	}

	for n := MinInstallments; n <= domain.MaxInstallments; n++ {
		plan, err := computePlan(schedule, domain.InstallmentInput{
			Amount:       input.Amount,
			Method:       domain.MethodCredit,
			Installments: n,
			WithInterest: input.WithInterest,
		})
		if err != nil {
			return domain.SimulationResult{}, err
		}
		result.Plans = append(result.Plans, plan)
	}

	if data, err := json.Marshal(result); err == nil {
		if err := s.cache.Set(ctx, key, string(data), s.cacheTTL); err != nil {
			slog.Warn("failed to cache simulation", "key", key, "err", err)
		}
	}
	return result, nil
}

func simulationKey(version int, input domain.SimulationInput) string {
	return fmt.Sprintf("simulation:v%d:%s:%t",
		version, decimal.NewFromFloat(input.Amount).StringFixed(2), input.WithInterest)
}

// computePlan is the pure pricing rule shared by every payment flow.
func computePlan(
	schedule domain.FeeSchedule,
	input domain.InstallmentInput,
) (domain.InstallmentPlan, error) {
	if !input.Method.Valid() {
		return domain.InstallmentPlan{}, invalid(ErrInvalidPaymentMethod, "%q", input.Method)
	}

	n := 1
	if input.Method.AllowsInstallments() {
		n = input.Installments
		if _, err := ScheduleRate(schedule, n); err != nil {
			return domain.InstallmentPlan{}, err
		}
	}

	if !isFinite(input.Amount) {
		return domain.InstallmentPlan{}, invalid(ErrAmountOutOfRange, "amount is not a finite number")
	}

	plan := domain.InstallmentPlan{
		Method:          input.Method,
		Installments:    n,
		ScheduleVersion: schedule.Version,
	}
	base := RoundCurrency(input.Amount)
	if base <= 0 {
		return plan, nil
	}
	if base > MaxSaleAmount {
		return domain.InstallmentPlan{}, invalid(ErrAmountOutOfRange, "amount exceeds %.2f", MaxSaleAmount)
	}

	var fee, interest, rate float64

	switch input.Method {
	case domain.MethodDebit:
		fee = base * schedule.DebitFeeRate
	case domain.MethodCredit:
		fee = base * schedule.CreditFeeRate
		if input.WithInterest && n > InterestFreeInstallments {
			rate = schedule.InstallmentRates[n-1]
			interest = base * rate / 100
		}
	}

	total := RoundCurrency(base + interest + fee)
	per := RoundCurrency(total / float64(n))
	last := decimal.NewFromFloat(total).
		Sub(decimal.NewFromFloat(per).Mul(decimal.NewFromInt(int64(n - 1)))).
		Round(2).InexactFloat64()

	plan.PerInstallmentValue = per
	plan.LastInstallmentValue = last
	plan.TotalPayable = total
	plan.ProcessingFee = RoundCurrency(fee)
	plan.InterestAmount = RoundCurrency(interest)
	plan.SurchargeAmount = RoundCurrency(fee + interest)
	plan.EffectiveInterestRate = rate
	return plan, nil
}
