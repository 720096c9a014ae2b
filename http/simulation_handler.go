package http

import (
	"net/http"
	"strconv"

	"sip-planner/domain"
	"sip-planner/report"
	"sip-planner/service"
)

type SimulationHandler struct {
	service   *service.SimulationService
	explainer *service.ExplanationService
	formatter *report.Formatter
}

func NewSimulationHandler(
	service *service.SimulationService,
	explainer *service.ExplanationService,
	formatter *report.Formatter,
) *SimulationHandler {
	return &SimulationHandler{service: service, explainer: explainer, formatter: formatter}
}

// Simulate returns the year-end series and summary metrics. ?monthly=true adds
// the per-month series.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	var input domain.SimulationParameters
	if !decodeJSONBody(w, r, &input) {
		return
	}

	opts := service.SimulateOptions{}
	if v := r.URL.Query().Get("monthly"); v != "" {
		monthly, err := strconv.ParseBool(v)
		if err != nil {
			http.Error(w, "monthly must be a boolean", http.StatusBadRequest)
			return
		}
		opts.IncludeMonthly = monthly
	}

	result, err := h.service.Simulate(r.Context(), input, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Explain returns a markdown narrative of the simulation.
func (h *SimulationHandler) Explain(w http.ResponseWriter, r *http.Request) {
	var input domain.SimulationParameters
	if !decodeJSONBody(w, r, &input) {
		return
	}

	result, err := h.service.Simulate(r.Context(), input, service.SimulateOptions{})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(h.explainer.Explain(input, result)))
}

// Report returns the growth chart as a PDF document.
func (h *SimulationHandler) Report(w http.ResponseWriter, r *http.Request) {
	var input domain.SimulationParameters
	if !decodeJSONBody(w, r, &input) {
		return
	}

	result, err := h.service.Simulate(r.Context(), input, service.SimulateOptions{})
	if err != nil {
		writeError(w, err)
		return
	}

	pdf, err := report.GrowthChartPDF(input, result, h.formatter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="growth.pdf"`)
	w.Write(pdf)
}

// Recent lists the latest simulations served by this process.
func (h *SimulationHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, records)
}
