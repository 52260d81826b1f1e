package service

const (
	MinInstallments = 1

	// Installments up to this count never carry scheduled interest.
	InterestFreeInstallments = 3

	DefaultDebitFeeRate  = 0.0199
	DefaultCreditFeeRate = 0.0349

	// Scheduled interest at the first interest-bearing count, and the step per extra installment.
	DefaultFirstInterestRate = 2.5
	DefaultInterestStep      = 0.5

	MaxFeeRate      = 1.0   // exclusive, fraction
	MaxScheduleRate = 100.0 // percent

	MaxSaleAmount = 1_000_000_000_000.0
)
