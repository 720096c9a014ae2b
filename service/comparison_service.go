package service

import (
	"context"
	"fmt"
	"time"

	"sip-planner/domain"
)

type ComparisonService struct {
	simulationService *SimulationService
}

func NewComparisonService(simulationService *SimulationService) *ComparisonService {
	return &ComparisonService{simulationService: simulationService}
}

// Compare simulates the same plan once per step-up scenario and picks the one
// with the highest final value. A no-step-up baseline is always included.
func (s *ComparisonService) Compare(
	ctx context.Context,
	input domain.CompareRequest,
) (domain.ComparisonResult, error) {
	start := time.Now()
	result, err := s.compare(ctx, input)
	s.simulationService.metrics.ObserveSimulation("compare", err, time.Since(start))
	return result, err
}

func (s *ComparisonService) compare(
	ctx context.Context,
	input domain.CompareRequest,
) (domain.ComparisonResult, error) {
	scenarios := input.Scenarios
	if len(scenarios) == 0 {
		scenarios = defaultScenarios(input.Params.StepUp)
	}
	if len(scenarios) > MaxCompareScenarios {
		return domain.ComparisonResult{}, domain.InvalidParameter("scenarios", "at most %d scenarios can be compared", MaxCompareScenarios)
	}
	if !hasBaseline(scenarios) {
		scenarios = append([]domain.StepUp{domain.NoStepUp()}, scenarios...)
	}

	outcomes := make([]domain.ScenarioOutcome, 0, len(scenarios))
	seen := make(map[string]bool)
	for _, stepUp := range scenarios {
		name := stepUp.Name()
		if seen[name] {
			return domain.ComparisonResult{}, domain.InvalidParameter("scenarios", "duplicate scenario %s", name)
		}
		seen[name] = true

		params := input.Params
		params.StepUp = stepUp
		result, _, err := s.simulationService.run(ctx, params)
		if err != nil {
			return domain.ComparisonResult{}, fmt.Errorf("scenario %s: %w", name, err)
		}

		outcomes = append(outcomes, domain.ScenarioOutcome{
			Name:                name,
			StepUp:              stepUp,
			FinalPortfolioValue: result.FinalPortfolioValue,
			FinalInvested:       result.FinalInvested,
			Gain:                result.Gain(),
			CAGRPercent:         result.CAGRPercent,
		})
	}

	best, baseline := 0, 0
	for i, o := range outcomes {
		if o.FinalPortfolioValue > outcomes[best].FinalPortfolioValue {
			best = i
		}
		if o.StepUp.Mode == domain.StepUpNone {
			baseline = i
		}
	}

	comparison := domain.ComparisonResult{
		Years:     input.Params.Years,
		Scenarios: outcomes,
		Best:      outcomes[best].Name,
	}
	comparison.Versus.ExtraValue = outcomes[best].FinalPortfolioValue - outcomes[baseline].FinalPortfolioValue
	comparison.Versus.ExtraInvested = outcomes[best].FinalInvested - outcomes[baseline].FinalInvested

	return comparison, nil
}

func defaultScenarios(hint domain.StepUp) []domain.StepUp {
	rate := DefaultCompareStepUpRate
	if hint.Mode == domain.StepUpPercent && hint.Rate > 0 {
		rate = hint.Rate
	}
	amount := DefaultCompareStepUpAmount
	if hint.Mode == domain.StepUpFixedAmount && hint.Amount > 0 {
		amount = hint.Amount
	}
	return []domain.StepUp{
		domain.NoStepUp(),
		domain.PercentStepUp(rate),
		domain.FixedStepUp(amount),
	}
}

func hasBaseline(scenarios []domain.StepUp) bool {
	for _, s := range scenarios {
		if s.Mode == domain.StepUpNone {
			return true
		}
	}
	return false
}
