package domain

type PaymentMethod string

const (
	MethodCash        PaymentMethod = "cash"
	MethodPix         PaymentMethod = "pix" // instant transfer
	MethodDebit       PaymentMethod = "debit"
	MethodCredit      PaymentMethod = "credit"
	MethodPromissory  PaymentMethod = "promissory"
	MethodStoreCredit PaymentMethod = "store_credit"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCash, MethodPix, MethodDebit, MethodCredit, MethodPromissory, MethodStoreCredit:
		return true
	}
	return false
}

// AllowsInstallments reports whether the method may be split into more than one installment.
func (m PaymentMethod) AllowsInstallments() bool {
	return m == MethodCredit || m == MethodPromissory || m == MethodStoreCredit
}

type InstallmentInput struct {
	Amount       float64       `json:"amount"`
	Method       PaymentMethod `json:"method"`
	Installments int           `json:"installments"`
	WithInterest bool          `json:"with_interest"`
}

type InstallmentPlan struct {
	Method                PaymentMethod `json:"method"`
	Installments          int           `json:"installments"`
	PerInstallmentValue   float64       `json:"per_installment_value"`
	LastInstallmentValue  float64       `json:"last_installment_value"`
	TotalPayable          float64       `json:"total_payable"`
	SurchargeAmount       float64       `json:"surcharge_amount"`
	ProcessingFee         float64       `json:"processing_fee"`
	InterestAmount        float64       `json:"interest_amount"`
	EffectiveInterestRate float64       `json:"effective_interest_rate"` // percent
	ScheduleVersion       int           `json:"schedule_version"`
}

type SimulationInput struct {
	Amount       float64 `json:"amount"`
	WithInterest bool    `json:"with_interest"`
}

type SimulationResult struct {
	Amount          float64           `json:"amount"`
	WithInterest    bool              `json:"with_interest"`
	ScheduleVersion int               `json:"schedule_version"`
	Plans           []InstallmentPlan `json:"plans"`
}
