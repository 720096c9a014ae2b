package service

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sip-planner/domain"
)

func basePlan() domain.SimulationParameters {
	return domain.SimulationParameters{
		Lumpsum:             100000,
		MonthlyContribution: 10000,
		AnnualReturnRate:    0.12,
		Years:               15,
		StepUp:              domain.PercentStepUp(0.05),
	}
}

func TestSimulate_OneYearClosedForm(t *testing.T) {
	params := domain.SimulationParameters{
		Lumpsum:             100000,
		MonthlyContribution: 10000,
		AnnualReturnRate:    0.12,
		Years:               1,
		StepUp:              domain.NoStepUp(),
	}

	result, err := Simulate(params)
	require.NoError(t, err)

	growth := math.Pow(1.01, 12)
	want := 100000*growth + 10000*(growth-1)/0.01
	assert.InDelta(t, want, result.PortfolioSeries[1], 1)
	assert.InDelta(t, 239507.53, result.FinalPortfolioValue, 1)
	assert.Equal(t, 220000.0, result.FinalInvested)
}

func TestSimulate_NothingInvested(t *testing.T) {
	params := domain.SimulationParameters{
		AnnualReturnRate: 0.10,
		Years:            5,
		StepUp:           domain.NoStepUp(),
	}

	result, err := Simulate(params)
	require.NoError(t, err)

	for i := range result.PortfolioSeries {
		assert.Zero(t, result.PortfolioSeries[i])
		assert.Zero(t, result.InvestedSeries[i])
	}
	assert.Nil(t, result.CAGRPercent)

	_, err = result.CAGR()
	assert.True(t, errors.Is(err, domain.ErrDivisionUndefined))
}

func TestSimulate_FixedStepUpContribution(t *testing.T) {
	params := domain.SimulationParameters{
		MonthlyContribution: 5000,
		AnnualReturnRate:    0.08,
		Years:               3,
		StepUp:              domain.FixedStepUp(1000),
	}

	monthly, err := MonthlySeries(params)
	require.NoError(t, err)
	require.Len(t, monthly, 36)

	for _, s := range monthly {
		want := 5000 + float64(s.Year-1)*1000
		assert.Equal(t, want, s.Contribution, "year %d month %d", s.Year, s.Month)
	}

	result, err := Simulate(params)
	require.NoError(t, err)
	assert.Equal(t, 12*(5000.0+6000+7000), result.FinalInvested)
}

func TestSimulate_StepUpOrdering(t *testing.T) {
	plan := basePlan()

	plan.StepUp = domain.NoStepUp()
	flat, err := Simulate(plan)
	require.NoError(t, err)

	plan.StepUp = domain.PercentStepUp(0.10)
	stepped, err := Simulate(plan)
	require.NoError(t, err)

	assert.Greater(t, stepped.FinalPortfolioValue, flat.FinalPortfolioValue)
	assert.Greater(t, stepped.FinalInvested, flat.FinalInvested)

	// The first year is identical; the step-up only lands after month 12.
	assert.Equal(t, flat.PortfolioSeries[1], stepped.PortfolioSeries[1])
	assert.Equal(t, flat.InvestedSeries[1], stepped.InvestedSeries[1])
	assert.Greater(t, stepped.InvestedSeries[2], flat.InvestedSeries[2])
}

func TestSimulate_PercentStepUpContribution(t *testing.T) {
	tests := []struct {
		name    string
		monthly float64
		rate    float64
	}{
		{"5 percent", 10000, 0.05},
		{"10 percent", 2500, 0.10},
		{"zero rate", 8000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := domain.SimulationParameters{
				Lumpsum:             1000,
				MonthlyContribution: tt.monthly,
				AnnualReturnRate:    0.08,
				Years:               10,
				StepUp:              domain.PercentStepUp(tt.rate),
			}

			monthly, err := MonthlySeries(params)
			require.NoError(t, err)
			require.Len(t, monthly, 120)

			for _, s := range monthly {
				want := tt.monthly * math.Pow(1+tt.rate, float64(s.Year-1))
				assert.InEpsilon(t, want, s.Contribution, 1e-12, "year %d month %d", s.Year, s.Month)
			}
		})
	}
}

func TestSimulate_PortfolioCoversInvested(t *testing.T) {
	tests := []struct {
		name   string
		stepUp domain.StepUp
		rate   float64
	}{
		{"no step-up", domain.NoStepUp(), 0.12},
		{"percent", domain.PercentStepUp(0.10), 0.07},
		{"fixed", domain.FixedStepUp(2000), 0.01},
		{"zero return", domain.PercentStepUp(0.05), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := basePlan()
			plan.StepUp = tt.stepUp
			plan.AnnualReturnRate = tt.rate

			result, err := Simulate(plan)
			require.NoError(t, err)

			for i := range result.PortfolioSeries {
				assert.GreaterOrEqual(t, result.PortfolioSeries[i], result.InvestedSeries[i], "year %d", i)
			}
		})
	}
}

func TestSimulate_ZeroReturnEqualsInvested(t *testing.T) {
	plan := basePlan()
	plan.AnnualReturnRate = 0

	result, err := Simulate(plan)
	require.NoError(t, err)

	for i := range result.PortfolioSeries {
		assert.InDelta(t, result.InvestedSeries[i], result.PortfolioSeries[i], 1e-6)
	}
	require.NotNil(t, result.CAGRPercent)
	assert.InDelta(t, 0, *result.CAGRPercent, 1e-9)
}

func TestSimulate_LumpsumOnlyCompounds(t *testing.T) {
	params := domain.SimulationParameters{
		Lumpsum:          50000,
		AnnualReturnRate: 0.08,
		Years:            10,
	}

	result, err := Simulate(params)
	require.NoError(t, err)

	for i, value := range result.PortfolioSeries {
		want := 50000 * math.Pow(1+0.08/12, float64(12*i))
		assert.InEpsilon(t, want, value, 1e-9, "year %d", i)
		assert.Equal(t, 50000.0, result.InvestedSeries[i])
	}

	want := 50000 * math.Pow(1+0.08/12, 120)
	wantCAGR := (math.Pow(want/50000, 1.0/10) - 1) * 100
	require.NotNil(t, result.CAGRPercent)
	assert.InDelta(t, wantCAGR, *result.CAGRPercent, 1e-6)
}

func TestSimulate_SeriesShape(t *testing.T) {
	plan := basePlan()

	result, err := Simulate(plan)
	require.NoError(t, err)

	require.Len(t, result.PortfolioSeries, plan.Years+1)
	require.Len(t, result.InvestedSeries, plan.Years+1)
	assert.Equal(t, plan.Lumpsum, result.PortfolioSeries[0])
	assert.Equal(t, plan.Lumpsum, result.InvestedSeries[0])
	assert.Equal(t, result.PortfolioSeries[plan.Years], result.FinalPortfolioValue)
	assert.Equal(t, result.InvestedSeries[plan.Years], result.FinalInvested)
	assert.Equal(t, plan.Years, result.Years())

	for i := 1; i < len(result.InvestedSeries); i++ {
		assert.GreaterOrEqual(t, result.InvestedSeries[i], result.InvestedSeries[i-1])
		assert.GreaterOrEqual(t, result.PortfolioSeries[i], result.PortfolioSeries[i-1])
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	plan := basePlan()

	first, err := Simulate(plan)
	require.NoError(t, err)
	second, err := Simulate(plan)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSimulate_RealReturnUsesNominalRate(t *testing.T) {
	plan := basePlan()
	inflation := 0.06
	plan.InflationRate = &inflation

	result, err := Simulate(plan)
	require.NoError(t, err)

	require.NotNil(t, result.RealReturnPercent)
	assert.InDelta(t, (1.12/1.06-1)*100, *result.RealReturnPercent, 1e-9)

	plan.InflationRate = nil
	result, err = Simulate(plan)
	require.NoError(t, err)
	assert.Nil(t, result.RealReturnPercent)
}

func TestSimulate_InvalidParameters(t *testing.T) {
	negative := -1.5
	nan := math.NaN()

	tests := []struct {
		name   string
		mutate func(p *domain.SimulationParameters)
	}{
		{"zero years", func(p *domain.SimulationParameters) { p.Years = 0 }},
		{"negative years", func(p *domain.SimulationParameters) { p.Years = -3 }},
		{"years beyond cap", func(p *domain.SimulationParameters) { p.Years = MaxSimulationYears + 1 }},
		{"max int years", func(p *domain.SimulationParameters) { p.Years = math.MaxInt }},
		{"negative lumpsum", func(p *domain.SimulationParameters) { p.Lumpsum = -1 }},
		{"negative contribution", func(p *domain.SimulationParameters) { p.MonthlyContribution = -100 }},
		{"nan return", func(p *domain.SimulationParameters) { p.AnnualReturnRate = math.NaN() }},
		{"infinite lumpsum", func(p *domain.SimulationParameters) { p.Lumpsum = math.Inf(1) }},
		{"growth factor not positive", func(p *domain.SimulationParameters) { p.AnnualReturnRate = -12 }},
		{"negative step-up rate", func(p *domain.SimulationParameters) { p.StepUp = domain.PercentStepUp(-0.1) }},
		{"negative step-up amount", func(p *domain.SimulationParameters) { p.StepUp = domain.FixedStepUp(-500) }},
		{"unknown step-up mode", func(p *domain.SimulationParameters) { p.StepUp = domain.StepUp{Mode: domain.StepUpMode(9)} }},
		{"inflation below -100%", func(p *domain.SimulationParameters) { p.InflationRate = &negative }},
		{"nan inflation", func(p *domain.SimulationParameters) { p.InflationRate = &nan }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := basePlan()
			tt.mutate(&plan)

			result, err := Simulate(plan)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidParameter), "got %v", err)
			assert.Empty(t, result.PortfolioSeries)

			var perr *domain.ParameterError
			assert.True(t, errors.As(err, &perr))

			_, err = Snapshots(plan)
			assert.True(t, errors.Is(err, domain.ErrInvalidParameter))
		})
	}
}

func TestSnapshots_Restartable(t *testing.T) {
	plan := basePlan()
	plan.Years = 3

	seq, err := Snapshots(plan)
	require.NoError(t, err)

	var first, second []domain.MonthSnapshot
	for s := range seq {
		first = append(first, s)
	}
	for s := range seq {
		second = append(second, s)
	}

	require.Len(t, first, 36)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, first[0].Year)
	assert.Equal(t, 1, first[0].Month)
	assert.Equal(t, 3, first[35].Year)
	assert.Equal(t, 12, first[35].Month)
}

func TestSnapshots_EarlyStop(t *testing.T) {
	seq, err := Snapshots(basePlan())
	require.NoError(t, err)

	count := 0
	for range seq {
		count++
		if count == 5 {
			break
		}
	}
	assert.Equal(t, 5, count)
}

func TestSnapshots_MatchYearEndSeries(t *testing.T) {
	plan := basePlan()

	result, err := Simulate(plan)
	require.NoError(t, err)
	monthly, err := MonthlySeries(plan)
	require.NoError(t, err)

	for _, s := range monthly {
		if s.Month != monthsPerYear {
			continue
		}
		assert.Equal(t, result.PortfolioSeries[s.Year], s.Balance)
		assert.Equal(t, result.InvestedSeries[s.Year], s.Invested)
	}
}
