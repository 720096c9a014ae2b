package domain

// CompareRequest runs one plan under several step-up scenarios. The StepUp of
// Params is only used to size the default scenarios.
type CompareRequest struct {
	Params    SimulationParameters `json:"params"`
	Scenarios []StepUp             `json:"scenarios,omitempty"`
}

type ScenarioOutcome struct {
	Name                string   `json:"name"`
	StepUp              StepUp   `json:"step_up"`
	FinalPortfolioValue float64  `json:"final_portfolio_value"`
	FinalInvested       float64  `json:"final_invested"`
	Gain                float64  `json:"gain"`
	CAGRPercent         *float64 `json:"cagr_percent,omitempty"`
}

type ComparisonResult struct {
	Years     int               `json:"years"`
	Scenarios []ScenarioOutcome `json:"scenarios"`
	Best      string            `json:"best"`
	// Differences between the best scenario and the no-step-up baseline
	Versus struct {
		ExtraValue    float64 `json:"extra_value"`
		ExtraInvested float64 `json:"extra_invested"`
	} `json:"versus_baseline"`
}
