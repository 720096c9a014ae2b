package domain

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// StepUpMode selects how the monthly contribution grows from one year to the next.
type StepUpMode int

const (
	StepUpNone StepUpMode = iota
	StepUpPercent
	StepUpFixedAmount
)

func (m StepUpMode) String() string {
	switch m {
	case StepUpNone:
		return "none"
	case StepUpPercent:
		return "percent"
	case StepUpFixedAmount:
		return "fixed"
	default:
		return "unknown"
	}
}

// ParseStepUpMode accepts the names produced by String, plus a few aliases.
func ParseStepUpMode(s string) (StepUpMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return StepUpNone, nil
	case "percent", "percentage", "pct":
		return StepUpPercent, nil
	case "fixed", "fixed_amount", "amount":
		return StepUpFixedAmount, nil
	}
	return StepUpNone, &ParameterError{Field: "step_up.mode", Reason: fmt.Sprintf("unknown mode %q", s)}
}

func (m StepUpMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *StepUpMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	mode, err := ParseStepUpMode(s)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// StepUp is the annual increase applied to the monthly contribution after each
// year's twelve postings. Rate is used by StepUpPercent, Amount by StepUpFixedAmount.
type StepUp struct {
	Mode   StepUpMode `json:"mode"`
	Rate   float64    `json:"rate,omitempty"`
	Amount float64    `json:"amount,omitempty"`
}

func NoStepUp() StepUp                  { return StepUp{Mode: StepUpNone} }
func PercentStepUp(rate float64) StepUp { return StepUp{Mode: StepUpPercent, Rate: rate} }
func FixedStepUp(amount float64) StepUp { return StepUp{Mode: StepUpFixedAmount, Amount: amount} }

// Apply returns the contribution for the following year.
func (s StepUp) Apply(contribution float64) float64 {
	switch s.Mode {
	case StepUpPercent:
		return contribution * (1 + s.Rate)
	case StepUpFixedAmount:
		return contribution + s.Amount
	default:
		return contribution
	}
}

func (s StepUp) String() string {
	switch s.Mode {
	case StepUpPercent:
		return fmt.Sprintf("%s%% per year", s.RatePercent())
	case StepUpFixedAmount:
		return fmt.Sprintf("+%g per year", s.Amount)
	default:
		return "no step-up"
	}
}

// RatePercent renders Rate as a percentage without float noise (0.07 -> "7").
func (s StepUp) RatePercent() string {
	return decimal.NewFromFloat(s.Rate).Shift(2).String()
}

// Name is a short identifier such as "none", "percent_10" or "fixed_1000".
func (s StepUp) Name() string {
	switch s.Mode {
	case StepUpPercent:
		return "percent_" + s.RatePercent()
	case StepUpFixedAmount:
		return "fixed_" + decimal.NewFromFloat(s.Amount).String()
	default:
		return s.Mode.String()
	}
}
