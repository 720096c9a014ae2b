package domain

// SimulationParameters describes one investment plan. It is never mutated after construction.
type SimulationParameters struct {
	Lumpsum             float64  `json:"lumpsum"`
	MonthlyContribution float64  `json:"monthly_contribution"`
	AnnualReturnRate    float64  `json:"annual_return_rate"` // fraction, compounded monthly
	Years               int      `json:"years"`
	StepUp              StepUp   `json:"step_up"`
	InflationRate       *float64 `json:"inflation_rate,omitempty"` // fraction, optional
}

// SimulationResult holds the year-end trajectory of a plan and its summary metrics.
type SimulationResult struct {
	PortfolioSeries     []float64       `json:"portfolio_series"`
	InvestedSeries      []float64       `json:"invested_series"`
	FinalPortfolioValue float64         `json:"final_portfolio_value"`
	FinalInvested       float64         `json:"final_invested"`
	CAGRPercent         *float64        `json:"cagr_percent,omitempty"`
	RealReturnPercent   *float64        `json:"real_return_percent,omitempty"`
	MonthlySeries       []MonthSnapshot `json:"monthly_series,omitempty"`
}

// CAGR returns the compound annual growth rate in percent, or ErrDivisionUndefined
// when nothing was ever invested.
func (r SimulationResult) CAGR() (float64, error) {
	if r.CAGRPercent == nil {
		return 0, ErrDivisionUndefined
	}
	return *r.CAGRPercent, nil
}

// Gain is the portfolio value in excess of the capital put in.
func (r SimulationResult) Gain() float64 {
	return r.FinalPortfolioValue - r.FinalInvested
}

// Years is the horizon the series cover.
func (r SimulationResult) Years() int {
	if len(r.PortfolioSeries) == 0 {
		return 0
	}
	return len(r.PortfolioSeries) - 1
}

// MonthSnapshot is the state right after one monthly posting.
type MonthSnapshot struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"` // 1..12 within Year
	Contribution float64 `json:"contribution"`
	Balance      float64 `json:"balance"`
	Invested     float64 `json:"invested"`
}
