package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sip-planner/domain"
)

func newTestComparisonService() *ComparisonService {
	return NewComparisonService(NewSimulationService(nil, nil, DefaultBounds(), nil))
}

func TestCompare_DefaultScenarios(t *testing.T) {
	svc := newTestComparisonService()

	result, err := svc.Compare(context.Background(), domain.CompareRequest{Params: basePlan()})
	require.NoError(t, err)

	require.Len(t, result.Scenarios, 3)
	assert.Equal(t, "none", result.Scenarios[0].Name)
	assert.Equal(t, "percent_5", result.Scenarios[1].Name)
	assert.Equal(t, "fixed_1000", result.Scenarios[2].Name)
	assert.Equal(t, 15, result.Years)

	// a flat 1000 is 10% of the first contribution and stays ahead of 5% for 15 years
	assert.Equal(t, "fixed_1000", result.Best)
	assert.Greater(t, result.Versus.ExtraValue, 0.0)
	assert.Greater(t, result.Versus.ExtraInvested, 0.0)
}

func TestCompare_BaselineAlwaysIncluded(t *testing.T) {
	svc := newTestComparisonService()

	result, err := svc.Compare(context.Background(), domain.CompareRequest{
		Params:    basePlan(),
		Scenarios: []domain.StepUp{domain.PercentStepUp(0.10)},
	})
	require.NoError(t, err)

	require.Len(t, result.Scenarios, 2)
	assert.Equal(t, "none", result.Scenarios[0].Name)
	assert.Equal(t, "percent_10", result.Best)

	baseline := result.Scenarios[0]
	best := result.Scenarios[1]
	assert.InDelta(t, best.FinalPortfolioValue-baseline.FinalPortfolioValue, result.Versus.ExtraValue, 1e-6)
	assert.InDelta(t, best.FinalPortfolioValue-best.FinalInvested, best.Gain, 1e-6)
}

func TestCompare_BaselineWinsWithoutStepUp(t *testing.T) {
	svc := newTestComparisonService()

	result, err := svc.Compare(context.Background(), domain.CompareRequest{
		Params:    basePlan(),
		Scenarios: []domain.StepUp{domain.NoStepUp(), domain.FixedStepUp(0)},
	})
	require.NoError(t, err)

	assert.Equal(t, "none", result.Best)
	assert.Zero(t, result.Versus.ExtraValue)
}

func TestCompare_Rejects(t *testing.T) {
	svc := newTestComparisonService()

	tooMany := make([]domain.StepUp, 0, MaxCompareScenarios+1)
	for i := 0; i <= MaxCompareScenarios; i++ {
		tooMany = append(tooMany, domain.FixedStepUp(float64(100*(i+1))))
	}

	tests := []struct {
		name string
		req  domain.CompareRequest
	}{
		{"too many scenarios", domain.CompareRequest{Params: basePlan(), Scenarios: tooMany}},
		{"duplicate scenario", domain.CompareRequest{Params: basePlan(), Scenarios: []domain.StepUp{
			domain.PercentStepUp(0.1), domain.PercentStepUp(0.1),
		}}},
		{"scenario out of bounds", domain.CompareRequest{Params: basePlan(), Scenarios: []domain.StepUp{
			domain.FixedStepUp(1_000_000),
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Compare(context.Background(), tt.req)
			assert.True(t, errors.Is(err, domain.ErrInvalidParameter), "got %v", err)
		})
	}
}
