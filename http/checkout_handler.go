package http

import (
	"net/http"

	"pdv-pricing/domain"
	"pdv-pricing/service"
)

type CheckoutHandler struct {
	service *service.CheckoutService
}

func NewCheckoutHandler(service *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

func (h *CheckoutHandler) Settle(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var input domain.CheckoutInput
	if !decodeJSON(w, r, &input) {
		return
	}

	settlement, err := h.service.Settle(input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settlement)
}
