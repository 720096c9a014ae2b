package http

import (
	"net/http"

	"sip-planner/domain"
	"sip-planner/service"
)

type GoalHandler struct {
	service *service.GoalService
}

func NewGoalHandler(service *service.GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

func (h *GoalHandler) YearsToTarget(w http.ResponseWriter, r *http.Request) {
	var input domain.GoalRequest
	if !decodeJSONBody(w, r, &input) {
		return
	}

	result, err := h.service.YearsToTarget(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
