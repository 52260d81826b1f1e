package http

import (
	"net/http"

	"pdv-pricing/domain"
	"pdv-pricing/service"
)

type FeeScheduleHandler struct {
	service *service.FeeScheduleService
}

func NewFeeScheduleHandler(service *service.FeeScheduleService) *FeeScheduleHandler {
	return &FeeScheduleHandler{service: service}
}

// Schedule serves GET (current schedule) and PUT (replace it).
func (h *FeeScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.service.Current())
	case http.MethodPut:
		var schedule domain.FeeSchedule
		if !decodeJSON(w, r, &schedule) {
			return
		}
		updated, err := h.service.Update(r.Context(), schedule)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}
