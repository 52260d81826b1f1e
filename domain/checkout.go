package domain

type PaymentInput struct {
	Method       PaymentMethod `json:"method"`
	Amount       float64       `json:"amount"`
	Installments int           `json:"installments"`
	WithInterest bool          `json:"with_interest"`
}

type CheckoutInput struct {
	Total    float64        `json:"total"`
	Payments []PaymentInput `json:"payments"`
}

type Settlement struct {
	Total        float64           `json:"total"`
	Payments     []InstallmentPlan `json:"payments"`
	Paid         float64           `json:"paid"`
	Remaining    float64           `json:"remaining"`
	Change       float64           `json:"change"`
	Surcharges   float64           `json:"surcharges"`
	TotalCharged float64           `json:"total_charged"`
}
