package http

import (
	"fmt"
	"net/http"
	"strconv"

	"pdv-pricing/domain"
	"pdv-pricing/export"
	"pdv-pricing/service"
)

type InstallmentHandler struct {
	service *service.InstallmentService
}

func NewInstallmentHandler(service *service.InstallmentService) *InstallmentHandler {
	return &InstallmentHandler{service: service}
}

func (h *InstallmentHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var input domain.InstallmentInput
	if !decodeJSON(w, r, &input) {
		return
	}
	// the counter UI preselects one installment
	if input.Installments == 0 {
		input.Installments = 1
	}

	plan, err := h.service.Calculate(input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *InstallmentHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var input domain.SimulationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Simulate(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *InstallmentHandler) ExportSimulation(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var input domain.SimulationInput
	if !decodeJSON(w, r, &input) {
		return
	}

	result, err := h.service.Simulate(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	wb, err := export.SimulationWorkbook(result)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer wb.Close()

	writeXLSX(w, fmt.Sprintf("simulacao-v%d.xlsx", result.ScheduleVersion), wb)
}

const defaultQuoteLimit = 20

// Quotes lists the most recently priced payments. ?limit=N caps the result.
func (h *InstallmentHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}

	limit := defaultQuoteLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	writeJSON(w, http.StatusOK, h.service.RecentQuotes(limit))
}
