package http

import "net/http"

type Handlers struct {
	Installments     *InstallmentHandler
	Checkout         *CheckoutHandler
	Currency         *CurrencyHandler
	FeeSchedule      *FeeScheduleHandler
	PriceAdjustments *PriceAdjustmentHandler
}

// NewRouter registers every route behind the rate limiter.
func NewRouter(h Handlers, limiter *RateLimiter) http.Handler {
	routes := map[string]http.HandlerFunc{
		"/pricing/installments":               h.Installments.Calculate,
		"/pricing/simulate":                   h.Installments.Simulate,
		"/pricing/simulate/export":            h.Installments.ExportSimulation,
		"/pricing/quotes":                     h.Installments.Quotes,
		"/pricing/checkout":                   h.Checkout.Settle,
		"/currency/format":                    h.Currency.Format,
		"/currency/mask":                      h.Currency.Mask,
		"/currency/parse":                     h.Currency.Parse,
		"/fees/schedule":                      h.FeeSchedule.Schedule,
		"/inventory/price-adjustments":        h.PriceAdjustments.Apply,
		"/inventory/price-adjustments/export": h.PriceAdjustments.Export,
	}

	mux := http.NewServeMux()
	for path, handler := range routes {
		mux.Handle(path, RateLimitMiddleware(limiter, handler))
	}
	return mux
}
