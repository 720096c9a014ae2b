package domain

// GoalRequest asks when a plan reaches TargetAmount. Params.Years is the
// search horizon; zero means the longest horizon allowed.
type GoalRequest struct {
	Params       SimulationParameters `json:"params"`
	TargetAmount float64              `json:"target_amount"`
}

type GoalResult struct {
	TargetAmount   float64 `json:"target_amount"`
	Horizon        int     `json:"horizon"`
	Reached        bool    `json:"reached"`
	Year           int     `json:"year"`
	PortfolioValue float64 `json:"portfolio_value"`
	Invested       float64 `json:"invested"`
}
