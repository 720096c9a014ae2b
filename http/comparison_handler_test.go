package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sip-planner/domain"
	"sip-planner/service"
)

func TestCompareHandler_OK(t *testing.T) {
	handler := NewComparisonHandler(service.NewComparisonService(
		service.NewSimulationService(nil, nil, service.DefaultBounds(), nil),
	))

	body := `{"params": ` + planBody + `, "scenarios": [{"mode": "percent", "rate": 0.1}, {"mode": "fixed", "amount": 2000}]}`
	w := httptest.NewRecorder()
	handler.Compare(w, postJSON("/simulations/compare", body))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result domain.ComparisonResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(result.Scenarios) != 3 {
		t.Fatalf("expected baseline plus 2 scenarios, got %d", len(result.Scenarios))
	}
	if result.Scenarios[0].Name != "none" {
		t.Errorf("expected the baseline first, got %s", result.Scenarios[0].Name)
	}
}

func TestCompareHandler_Duplicate(t *testing.T) {
	handler := NewComparisonHandler(service.NewComparisonService(
		service.NewSimulationService(nil, nil, service.DefaultBounds(), nil),
	))

	body := `{"params": ` + planBody + `, "scenarios": [{"mode": "none"}, {"mode": "none"}]}`
	w := httptest.NewRecorder()
	handler.Compare(w, postJSON("/simulations/compare", body))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
