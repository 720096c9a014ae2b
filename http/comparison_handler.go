package http

import (
	"net/http"

	"sip-planner/domain"
	"sip-planner/service"
)

type ComparisonHandler struct {
	service *service.ComparisonService
}

func NewComparisonHandler(service *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{service: service}
}

func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.CompareRequest
	if !decodeJSONBody(w, r, &input) {
		return
	}

	result, err := h.service.Compare(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
