package service

import (
	"context"
	"time"

	"sip-planner/domain"
)

type GoalService struct {
	simulationService *SimulationService
}

func NewGoalService(simulationService *SimulationService) *GoalService {
	return &GoalService{simulationService: simulationService}
}

// YearsToTarget finds the first year boundary at which the portfolio is worth
// at least the target amount.
func (s *GoalService) YearsToTarget(
	ctx context.Context,
	input domain.GoalRequest,
) (domain.GoalResult, error) {
	start := time.Now()
	result, err := s.yearsToTarget(ctx, input)
	s.simulationService.metrics.ObserveSimulation("goal", err, time.Since(start))
	return result, err
}

func (s *GoalService) yearsToTarget(
	ctx context.Context,
	input domain.GoalRequest,
) (domain.GoalResult, error) {
	if !isFinite(input.TargetAmount) || input.TargetAmount <= 0 {
		return domain.GoalResult{}, domain.InvalidParameter("target_amount", "must be positive")
	}

	params := input.Params
	if params.Years == 0 {
		params.Years = s.simulationService.Bounds().MaxYears
	}

	result, _, err := s.simulationService.run(ctx, params)
	if err != nil {
		return domain.GoalResult{}, err
	}

	goal := domain.GoalResult{
		TargetAmount: input.TargetAmount,
		Horizon:      params.Years,
	}
	for year, value := range result.PortfolioSeries {
		if value >= input.TargetAmount {
			goal.Reached = true
			goal.Year = year
			goal.PortfolioValue = value
			goal.Invested = result.InvestedSeries[year]
			break
		}
	}
	return goal, nil
}
