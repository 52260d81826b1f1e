package http

import (
	"net/http"

	"pdv-pricing/service"
)

type formatRequest struct {
	Amount float64 `json:"amount"`
}

type maskRequest struct {
	Input string `json:"input"`
}

type parseRequest struct {
	Text   string `json:"text"`
	Strict bool   `json:"strict"`
}

type displayResponse struct {
	Display string `json:"display"`
}

type amountResponse struct {
	Amount float64 `json:"amount"`
}

// CurrencyHandler exposes the pt-BR currency codec to clients that do not embed it.
type CurrencyHandler struct{}

func NewCurrencyHandler() *CurrencyHandler {
	return &CurrencyHandler{}
}

func (h *CurrencyHandler) Format(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req formatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, displayResponse{Display: service.FormatAmountForDisplay(req.Amount)})
}

func (h *CurrencyHandler) Mask(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req maskRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, displayResponse{Display: service.FormatKeystroke(req.Input)})
}

// Parse is lenient (malformed text is 0) unless the request asks for strict parsing.
func (h *CurrencyHandler) Parse(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req parseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if !req.Strict {
		writeJSON(w, http.StatusOK, amountResponse{Amount: service.ParseDisplayToAmount(req.Text)})
		return
	}

	amount, err := service.ParseAmount(req.Text)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, amountResponse{Amount: amount})
}
