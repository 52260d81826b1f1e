package domain

import "time"

// MaxInstallments is the largest installment count offered at the counter.
const MaxInstallments = 18

// FeeSchedule is the single source of surcharge rates for every payment flow.
// InstallmentRates[n-1] holds the interest percentage for n installments.
type FeeSchedule struct {
	Version          int                      `json:"version"`
	DebitFeeRate     float64                  `json:"debit_fee_rate"`  // fraction, 0.0199 = 1.99%
	CreditFeeRate    float64                  `json:"credit_fee_rate"` // fraction
	InstallmentRates [MaxInstallments]float64 `json:"installment_rates"`
	UpdatedAt        time.Time                `json:"updated_at"`
}
