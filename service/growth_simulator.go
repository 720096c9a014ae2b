package service

import (
	"iter"
	"math"

	"sip-planner/domain"
)

const monthsPerYear = 12

// MaxSimulationYears is the longest horizon the simulator accepts.
const MaxSimulationYears = 1000

// Simulate compounds the plan month by month and samples the balance and the
// capital invested at every year boundary. It holds no state between calls.
func Simulate(params domain.SimulationParameters) (domain.SimulationResult, error) {
	if err := ValidateParameters(params); err != nil {
		return domain.SimulationResult{}, err
	}

	portfolio := make([]float64, 0, params.Years+1)
	invested := make([]float64, 0, params.Years+1)
	portfolio = append(portfolio, params.Lumpsum)
	invested = append(invested, params.Lumpsum)

	step(params, func(s domain.MonthSnapshot) bool {
		if s.Month == monthsPerYear {
			portfolio = append(portfolio, s.Balance)
			invested = append(invested, s.Invested)
		}
		return true
	})

	result := domain.SimulationResult{
		PortfolioSeries:     portfolio,
		InvestedSeries:      invested,
		FinalPortfolioValue: portfolio[len(portfolio)-1],
		FinalInvested:       invested[len(invested)-1],
	}

	if result.FinalInvested > 0 {
		cagr := (math.Pow(result.FinalPortfolioValue/result.FinalInvested, 1/float64(params.Years)) - 1) * 100
		result.CAGRPercent = &cagr
	}

	// Real return deflates the nominal input rate, not the realized CAGR.
	if params.InflationRate != nil {
		realReturn := ((1+params.AnnualReturnRate)/(1+*params.InflationRate) - 1) * 100
		result.RealReturnPercent = &realReturn
	}

	return result, nil
}

// Snapshots returns a lazy sequence of every monthly posting of the plan.
// Each range over the sequence starts again from the first month.
func Snapshots(params domain.SimulationParameters) (iter.Seq[domain.MonthSnapshot], error) {
	if err := ValidateParameters(params); err != nil {
		return nil, err
	}
	return func(yield func(domain.MonthSnapshot) bool) {
		step(params, yield)
	}, nil
}

// MonthlySeries collects Snapshots into a slice.
func MonthlySeries(params domain.SimulationParameters) ([]domain.MonthSnapshot, error) {
	seq, err := Snapshots(params)
	if err != nil {
		return nil, err
	}
	series := make([]domain.MonthSnapshot, 0, params.Years*monthsPerYear)
	for s := range seq {
		series = append(series, s)
	}
	return series, nil
}

// step runs the compounding loop. The step-up is applied only after the
// twelfth posting of a year, so it first affects the following year.
func step(params domain.SimulationParameters, yield func(domain.MonthSnapshot) bool) {
	balance := params.Lumpsum
	invested := params.Lumpsum
	contribution := params.MonthlyContribution
	growth := 1 + params.AnnualReturnRate/monthsPerYear

	for year := 1; year <= params.Years; year++ {
		for month := 1; month <= monthsPerYear; month++ {
			balance = balance*growth + contribution
			invested += contribution
			if !yield(domain.MonthSnapshot{
				Year:         year,
				Month:        month,
				Contribution: contribution,
				Balance:      balance,
				Invested:     invested,
			}) {
				return
			}
		}
		contribution = params.StepUp.Apply(contribution)
	}
}

// ValidateParameters rejects inputs the compounding loop cannot handle.
func ValidateParameters(params domain.SimulationParameters) error {
	if params.Years <= 0 {
		return domain.InvalidParameter("years", "must be positive, got %d", params.Years)
	}
	if params.Years > MaxSimulationYears {
		return domain.InvalidParameter("years", "must be at most %d, got %d", MaxSimulationYears, params.Years)
	}
	if err := nonNegative("lumpsum", params.Lumpsum); err != nil {
		return err
	}
	if err := nonNegative("monthly_contribution", params.MonthlyContribution); err != nil {
		return err
	}
	if !isFinite(params.AnnualReturnRate) {
		return domain.InvalidParameter("annual_return_rate", "must be a finite number")
	}
	if 1+params.AnnualReturnRate/monthsPerYear <= 0 {
		return domain.InvalidParameter("annual_return_rate", "%g makes the monthly growth factor non-positive", params.AnnualReturnRate)
	}

	switch params.StepUp.Mode {
	case domain.StepUpNone:
	case domain.StepUpPercent:
		if err := nonNegative("step_up.rate", params.StepUp.Rate); err != nil {
			return err
		}
	case domain.StepUpFixedAmount:
		if err := nonNegative("step_up.amount", params.StepUp.Amount); err != nil {
			return err
		}
	default:
		return domain.InvalidParameter("step_up.mode", "unknown mode %d", params.StepUp.Mode)
	}

	if params.InflationRate != nil {
		inflation := *params.InflationRate
		if !isFinite(inflation) {
			return domain.InvalidParameter("inflation_rate", "must be a finite number")
		}
		if 1+inflation <= 0 {
			return domain.InvalidParameter("inflation_rate", "%g makes the real return undefined", inflation)
		}
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if !isFinite(v) {
		return domain.InvalidParameter(field, "must be a finite number")
	}
	if v < 0 {
		return domain.InvalidParameter(field, "must not be negative, got %g", v)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
