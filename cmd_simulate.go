package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"sip-planner/config"
	"sip-planner/domain"
	"sip-planner/report"
	"sip-planner/service"
)

// planFlags are the plan inputs shared by simulate, compare and goal.
type planFlags struct {
	lumpsum      float64
	monthly      float64
	stepUpMode   string
	stepUpRate   float64
	stepUpAmount float64
	annualReturn float64
	years        int
	inflation    float64
	format       string
}

func (p *planFlags) register(cmd *cobra.Command, defaultYears int) {
	f := cmd.Flags()
	f.Float64Var(&p.lumpsum, "lumpsum", 100000, "Initial one-time investment")
	f.Float64Var(&p.monthly, "monthly", 10000, "Monthly SIP contribution")
	f.StringVar(&p.stepUpMode, "step-up", "percent", "Annual step-up mode (none|percent|fixed)")
	f.Float64Var(&p.stepUpRate, "step-up-rate", 0.05, "Step-up rate as a fraction, for --step-up=percent")
	f.Float64Var(&p.stepUpAmount, "step-up-amount", 1000, "Step-up amount, for --step-up=fixed")
	f.Float64Var(&p.annualReturn, "return", 0.12, "Expected annual return as a fraction")
	f.IntVar(&p.years, "years", defaultYears, "Investment horizon in years")
	f.Float64Var(&p.inflation, "inflation", 0, "Annual inflation as a fraction; enables the real return")
	f.StringVar(&p.format, "format", "markdown", "Output format (markdown|json)")
}

func (p *planFlags) params(cmd *cobra.Command) (domain.SimulationParameters, error) {
	mode, err := domain.ParseStepUpMode(p.stepUpMode)
	if err != nil {
		return domain.SimulationParameters{}, err
	}
	params := domain.SimulationParameters{
		Lumpsum:             p.lumpsum,
		MonthlyContribution: p.monthly,
		AnnualReturnRate:    p.annualReturn,
		Years:               p.years,
		StepUp:              domain.StepUp{Mode: mode},
	}
	switch mode {
	case domain.StepUpPercent:
		params.StepUp.Rate = p.stepUpRate
	case domain.StepUpFixedAmount:
		params.StepUp.Amount = p.stepUpAmount
	}
	if cmd.Flags().Changed("inflation") {
		inflation := p.inflation
		params.InflationRate = &inflation
	}
	return params, nil
}

func (p *planFlags) checkFormat() error {
	if p.format != "markdown" && p.format != "json" {
		return fmt.Errorf("unknown format %q, want markdown or json", p.format)
	}
	return nil
}

func newSimulateCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		plan          planFlags
		pdfPath       string
		monthlySeries bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project a lumpsum plus SIP plan",
		Example: `  sip-planner simulate --lumpsum 100000 --monthly 10000 --return 0.12 --years 15
  sip-planner simulate --step-up fixed --step-up-amount 1000 --inflation 0.06 --pdf growth.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := plan.checkFormat(); err != nil {
				return err
			}
			params, err := plan.params(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.simulation.Simulate(cmd.Context(), params, service.SimulateOptions{IncludeMonthly: monthlySeries})
			if err != nil {
				return err
			}

			if pdfPath != "" {
				pdf, err := report.GrowthChartPDF(params, result, a.formatter)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
					return fmt.Errorf("write pdf: %w", err)
				}
				log.Info().Str("path", pdfPath).Msg("growth chart written")
			}

			out := cmd.OutOrStdout()
			if plan.format == "json" {
				return writeIndentedJSON(out, result)
			}
			printMarkdown(out, a.explainer.Explain(params, result))
			return nil
		},
	}
	plan.register(cmd, 15)
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "Also write the growth chart to this PDF file")
	cmd.Flags().BoolVar(&monthlySeries, "monthly-series", false, "Include the per-month series in JSON output")
	return cmd
}

func newCompareCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var plan planFlags

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare no step-up against percent and fixed step-ups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := plan.checkFormat(); err != nil {
				return err
			}
			params, err := plan.params(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			scenarios := []domain.StepUp{
				domain.NoStepUp(),
				domain.PercentStepUp(plan.stepUpRate),
				domain.FixedStepUp(plan.stepUpAmount),
			}
			result, err := a.comparison.Compare(cmd.Context(), domain.CompareRequest{Params: params, Scenarios: scenarios})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if plan.format == "json" {
				return writeIndentedJSON(out, result)
			}
			printMarkdown(out, a.explainer.ExplainComparison(result))
			return nil
		},
	}
	plan.register(cmd, 15)
	return cmd
}

func newGoalCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var (
		plan   planFlags
		target float64
	)

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Find the first year the plan reaches a target amount",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := plan.checkFormat(); err != nil {
				return err
			}
			params, err := plan.params(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.goal.YearsToTarget(cmd.Context(), domain.GoalRequest{Params: params, TargetAmount: target})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if plan.format == "json" {
				return writeIndentedJSON(out, result)
			}
			printMarkdown(out, a.explainer.ExplainGoal(result))
			return nil
		},
	}
	plan.register(cmd, 0)
	cmd.Flags().Float64Var(&target, "target", 10_000_000, "Target portfolio value")
	return cmd
}

func writeIndentedJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
