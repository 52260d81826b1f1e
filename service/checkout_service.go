package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"pdv-pricing/domain"
)

// CheckoutService splits a sale total across the payments entered at the counter.
// It uses the same schedule as the installment simulation.
type CheckoutService struct {
	fees ScheduleProvider
}

func NewCheckoutService(fees ScheduleProvider) *CheckoutService {
	return &CheckoutService{fees: fees}
}

// Settle prices each payment and works out what is still owed and the change due.
// Only cash can overpay; the excess over what card and other payments left is returned as change.
func (s *CheckoutService) Settle(input domain.CheckoutInput) (domain.Settlement, error) {
	if input.Total <= 0 || !isFinite(input.Total) {
		return domain.Settlement{}, invalid(ErrInvalidTotal, "%.2f", input.Total)
	}
	if input.Total > MaxSaleAmount {
		return domain.Settlement{}, invalid(ErrAmountOutOfRange, "total exceeds %.2f", MaxSaleAmount)
	}

	schedule := s.fees.Current()
	total := decimal.NewFromFloat(input.Total).Round(2)
	cash, other, surcharges := decimal.Zero, decimal.Zero, decimal.Zero

	settlement := domain.Settlement{
		Total:    total.InexactFloat64(),
		Payments: make([]domain.InstallmentPlan, 0, len(input.Payments)),
	}

	for i, p := range input.Payments {
		if p.Amount <= 0 || !isFinite(p.Amount) {
			return domain.Settlement{}, invalid(ErrInvalidPayment, "payment %d has amount %v", i+1, p.Amount)
		}
		installments := p.Installments
		if installments == 0 {
			installments = 1
		}

		plan, err := computePlan(schedule, domain.InstallmentInput{
			Amount:       p.Amount,
			Method:       p.Method,
			Installments: installments,
			WithInterest: p.WithInterest,
		})
		if err != nil {
			return domain.Settlement{}, fmt.Errorf("payment %d: %w", i+1, err)
		}
		settlement.Payments = append(settlement.Payments, plan)

		amount := decimal.NewFromFloat(p.Amount).Round(2)
		if p.Method == domain.MethodCash {
			cash = cash.Add(amount)
		} else {
			other = other.Add(amount)
		}
		surcharges = surcharges.Add(decimal.NewFromFloat(plan.SurchargeAmount))
	}

	if other.GreaterThan(total) {
		return domain.Settlement{}, invalid(ErrOverpayment, "%s of %s", other.StringFixed(2), total.StringFixed(2))
	}

	paid := cash.Add(other)
	change := decimal.Max(decimal.Zero, cash.Sub(total.Sub(other)))
	remaining := decimal.Max(decimal.Zero, total.Sub(paid))

	settlement.Paid = paid.InexactFloat64()
	settlement.Change = change.InexactFloat64()
	settlement.Remaining = remaining.InexactFloat64()
	settlement.Surcharges = surcharges.InexactFloat64()
	settlement.TotalCharged = paid.Sub(change).Add(surcharges).InexactFloat64()
	return settlement, nil
}
