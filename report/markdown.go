package report

import (
	"fmt"
	"io"

	"sip-planner/domain"
)

// WriteYearTable writes the year-by-year trajectory as a markdown table.
func WriteYearTable(w io.Writer, result domain.SimulationResult, f *Formatter) {
	fmt.Fprintln(w, "| Year | Total invested | Portfolio value | Gain |")
	fmt.Fprintln(w, "|---:|---:|---:|---:|")
	for i := range result.PortfolioSeries {
		value := result.PortfolioSeries[i]
		invested := result.InvestedSeries[i]
		fmt.Fprintf(w, "| %d | %s | %s | %s |\n",
			i,
			f.FormatWhole(invested),
			f.FormatWhole(value),
			f.FormatWhole(value-invested),
		)
	}
}

// WriteHeadline writes the summary figures as a markdown bullet list.
func WriteHeadline(w io.Writer, result domain.SimulationResult, f *Formatter) {
	years := result.Years()
	fmt.Fprintf(w, "- **Final portfolio value after %d years:** %s\n", years, f.FormatWhole(result.FinalPortfolioValue))
	fmt.Fprintf(w, "- **Total invested after %d years:** %s\n", years, f.FormatWhole(result.FinalInvested))
	fmt.Fprintf(w, "- **Gain:** %s\n", f.FormatWhole(result.Gain()))
	fmt.Fprintf(w, "- **CAGR:** %s\n", Percent(result.CAGRPercent))
	if result.RealReturnPercent != nil {
		fmt.Fprintf(w, "- **Real return (inflation adjusted):** %s\n", Percent(result.RealReturnPercent))
	}
}
