package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"sip-planner/domain"
	"sip-planner/report"
)

// ExplanationService turns results into markdown for people to read.
type ExplanationService struct {
	formatter *report.Formatter
}

func NewExplanationService(formatter *report.Formatter) *ExplanationService {
	return &ExplanationService{formatter: formatter}
}

// Explain describes a single simulation: headline figures, what CAGR and real
// return mean for this plan, and the year-by-year trajectory.
func (s *ExplanationService) Explain(params domain.SimulationParameters, result domain.SimulationResult) string {
	var b strings.Builder
	f := s.formatter

	b.WriteString("# Investment growth summary\n\n")
	fmt.Fprintf(&b, "Investing a lumpsum of %s and %s every month at an expected %s%% a year, with %s.\n\n",
		f.FormatWhole(params.Lumpsum),
		f.FormatWhole(params.MonthlyContribution),
		percentOf(params.AnnualReturnRate),
		params.StepUp,
	)
	report.WriteHeadline(&b, result, f)

	b.WriteString("\n## Compound annual growth rate\n\n")
	if cagr, err := result.CAGR(); err != nil {
		b.WriteString("Nothing was invested, so there is no growth rate to report.\n")
	} else {
		fmt.Fprintf(&b, "Your total contributions of %s grow to %s. Compressed into a single yearly rate over %d years this is a CAGR of %.2f%%. ",
			f.FormatWhole(result.FinalInvested), f.FormatWhole(result.FinalPortfolioValue), result.Years(), cagr)
		b.WriteString("Because most contributions are made after the start, this figure understates the return each contribution actually earned.\n")
	}

	if result.RealReturnPercent != nil && params.InflationRate != nil {
		b.WriteString("\n## Real return\n\n")
		fmt.Fprintf(&b, "With inflation at %s%%, the expected return of %s%% is worth %.2f%% a year in today's purchasing power. ",
			percentOf(*params.InflationRate), percentOf(params.AnnualReturnRate), *result.RealReturnPercent)
		b.WriteString("This adjusts the nominal expected return, not the realized CAGR above.\n")
	}

	b.WriteString("\n## Irregular cash flows\n\n")
	b.WriteString("Real investments rarely follow a fixed schedule. Measuring the return on irregular deposits and withdrawals needs XIRR, which this calculator does not compute.\n")

	b.WriteString("\n## Year by year\n\n")
	report.WriteYearTable(&b, result, f)
	return b.String()
}

// ExplainComparison renders a step-up comparison as a table plus a verdict.
func (s *ExplanationService) ExplainComparison(cmp domain.ComparisonResult) string {
	var b strings.Builder
	f := s.formatter

	fmt.Fprintf(&b, "# Step-up comparison over %d years\n\n", cmp.Years)
	b.WriteString("| Scenario | Step-up | Total invested | Portfolio value | Gain | CAGR |\n")
	b.WriteString("|---|---|---:|---:|---:|---:|\n")
	for _, o := range cmp.Scenarios {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s |\n",
			o.Name, o.StepUp, f.FormatWhole(o.FinalInvested), f.FormatWhole(o.FinalPortfolioValue),
			f.FormatWhole(o.Gain), report.Percent(o.CAGRPercent))
	}

	fmt.Fprintf(&b, "\nThe **%s** scenario ends highest", cmp.Best)
	if cmp.Versus.ExtraValue > 0 {
		fmt.Fprintf(&b, ", %s above no step-up for %s of extra contributions.\n",
			f.FormatWhole(cmp.Versus.ExtraValue), f.FormatWhole(cmp.Versus.ExtraInvested))
	} else {
		b.WriteString(".\n")
	}
	return b.String()
}

// ExplainGoal states when, if ever, the target is reached.
func (s *ExplanationService) ExplainGoal(goal domain.GoalResult) string {
	f := s.formatter
	if !goal.Reached {
		return fmt.Sprintf("# Goal\n\nThe target of %s is not reached within %d years.\n",
			f.FormatWhole(goal.TargetAmount), goal.Horizon)
	}
	return fmt.Sprintf("# Goal\n\nThe target of %s is reached after **%d years**, with a portfolio of %s from %s invested.\n",
		f.FormatWhole(goal.TargetAmount), goal.Year, f.FormatWhole(goal.PortfolioValue), f.FormatWhole(goal.Invested))
}

// percentOf renders a fraction as a percentage without float noise.
func percentOf(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).String()
}
