package domain

import "time"

// SimulationRecord summarises one served simulation for the recent-runs listing.
type SimulationRecord struct {
	ID                  string               `json:"id"`
	CreatedAt           time.Time            `json:"created_at"`
	Params              SimulationParameters `json:"params"`
	FinalPortfolioValue float64              `json:"final_portfolio_value"`
	FinalInvested       float64              `json:"final_invested"`
	CAGRPercent         *float64             `json:"cagr_percent,omitempty"`
	Cached              bool                 `json:"cached"`
}
