package http

import (
	"net/http"

	"pdv-pricing/domain"
	"pdv-pricing/export"
	"pdv-pricing/service"
)

type PriceAdjustmentHandler struct {
	service *service.PriceAdjustmentService
}

func NewPriceAdjustmentHandler(service *service.PriceAdjustmentService) *PriceAdjustmentHandler {
	return &PriceAdjustmentHandler{service: service}
}

func (h *PriceAdjustmentHandler) Apply(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.AdjustmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	batch, err := h.service.Apply(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// Export renders a preview of the adjustment as a spreadsheet. It never persists prices.
func (h *PriceAdjustmentHandler) Export(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.AdjustmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.DryRun = true

	batch, err := h.service.Apply(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	wb, err := export.AdjustmentWorkbook(batch)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer wb.Close()

	writeXLSX(w, "reajuste-"+batch.ID+".xlsx", wb)
}
