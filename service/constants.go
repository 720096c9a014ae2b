package service

const (
	DefaultMaxLumpsum             = 10_000_000.0
	DefaultMaxMonthlyContribution = 100_000.0
	DefaultMaxStepUpRate          = 1.0 // 100% per year
	DefaultMaxStepUpAmount        = 50_000.0
	DefaultMinAnnualReturn        = 0.05
	DefaultMaxAnnualReturn        = 1.0
	DefaultMinYears               = 1
	DefaultMaxYears               = 50
	DefaultMaxInflation           = 0.15

	// Comparison defaults when the request leaves a step-up magnitude unset
	DefaultCompareStepUpRate   = 0.10
	DefaultCompareStepUpAmount = 1_000.0

	MaxRecentLimit = 100
)

const MaxCompareScenarios = 10
