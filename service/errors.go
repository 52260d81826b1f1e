package service

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedAmount         = errors.New("malformed amount")
	ErrInvalidInstallmentCount = errors.New("invalid installment count")
	ErrInvalidPaymentMethod    = errors.New("invalid payment method")
	ErrInvalidFeeSchedule      = errors.New("invalid fee schedule")
	ErrInvalidAdjustmentMode   = errors.New("invalid adjustment mode")
	ErrNothingToAdjust         = errors.New("neither cost nor sale price selected")
	ErrInvalidTotal            = errors.New("invalid sale total")
	ErrInvalidPayment          = errors.New("invalid payment amount")
	ErrOverpayment             = errors.New("non-cash payments exceed the sale total")
	ErrAmountOutOfRange        = errors.New("amount out of range")
)

// ValidationError wraps one of the sentinel errors above with request-specific details.
// Callers match on the sentinel with errors.Is.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error, format string, args ...any) error {
	return &ValidationError{Err: err, Details: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err was caused by bad input rather than a failing dependency.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
