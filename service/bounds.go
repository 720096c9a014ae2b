package service

import "sip-planner/domain"

// Bounds are the input ranges accepted at the service boundary. They are
// narrower than what the simulator itself tolerates.
type Bounds struct {
	MaxLumpsum             float64 `yaml:"max_lumpsum"`
	MaxMonthlyContribution float64 `yaml:"max_monthly_contribution"`
	MaxStepUpRate          float64 `yaml:"max_step_up_rate"`
	MaxStepUpAmount        float64 `yaml:"max_step_up_amount"`
	MinAnnualReturn        float64 `yaml:"min_annual_return"`
	MaxAnnualReturn        float64 `yaml:"max_annual_return"`
	MinYears               int     `yaml:"min_years"`
	MaxYears               int     `yaml:"max_years"`
	MaxInflation           float64 `yaml:"max_inflation"`
}

// DefaultBounds returns the widened historical input ranges.
func DefaultBounds() Bounds {
	return Bounds{
		MaxLumpsum:             DefaultMaxLumpsum,
		MaxMonthlyContribution: DefaultMaxMonthlyContribution,
		MaxStepUpRate:          DefaultMaxStepUpRate,
		MaxStepUpAmount:        DefaultMaxStepUpAmount,
		MinAnnualReturn:        DefaultMinAnnualReturn,
		MaxAnnualReturn:        DefaultMaxAnnualReturn,
		MinYears:               DefaultMinYears,
		MaxYears:               DefaultMaxYears,
		MaxInflation:           DefaultMaxInflation,
	}
}

// Check validates the parameters first against the simulator rules and then
// against the configured ranges.
func (b Bounds) Check(params domain.SimulationParameters) error {
	if err := ValidateParameters(params); err != nil {
		return err
	}
	if params.Lumpsum > b.MaxLumpsum {
		return domain.InvalidParameter("lumpsum", "exceeds the maximum of %.2f", b.MaxLumpsum)
	}
	if params.MonthlyContribution > b.MaxMonthlyContribution {
		return domain.InvalidParameter("monthly_contribution", "exceeds the maximum of %.2f", b.MaxMonthlyContribution)
	}
	if params.AnnualReturnRate < b.MinAnnualReturn || params.AnnualReturnRate > b.MaxAnnualReturn {
		return domain.InvalidParameter("annual_return_rate", "must be between %g and %g", b.MinAnnualReturn, b.MaxAnnualReturn)
	}
	if params.Years < b.MinYears || params.Years > b.MaxYears {
		return domain.InvalidParameter("years", "must be between %d and %d", b.MinYears, b.MaxYears)
	}
	switch params.StepUp.Mode {
	case domain.StepUpPercent:
		if params.StepUp.Rate > b.MaxStepUpRate {
			return domain.InvalidParameter("step_up.rate", "exceeds the maximum of %g", b.MaxStepUpRate)
		}
	case domain.StepUpFixedAmount:
		if params.StepUp.Amount > b.MaxStepUpAmount {
			return domain.InvalidParameter("step_up.amount", "exceeds the maximum of %.2f", b.MaxStepUpAmount)
		}
	}
	if params.InflationRate != nil {
		if *params.InflationRate < 0 || *params.InflationRate > b.MaxInflation {
			return domain.InvalidParameter("inflation_rate", "must be between 0 and %g", b.MaxInflation)
		}
	}
	return nil
}
