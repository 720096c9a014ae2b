package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"sip-planner/domain"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight

	chartHeight  = 110.0
	chartAxisPad = 22.0 // room for y-axis labels
	chartTicks   = 5
)

// GrowthChartReport builds a one-plan PDF: headline figures, a line chart of
// portfolio value against total invested, and the year table.
type GrowthChartReport struct {
	pdf       *fpdf.Fpdf
	params    domain.SimulationParameters
	result    domain.SimulationResult
	formatter *Formatter
	generated time.Time
}

// GrowthChartPDF renders the report and returns the PDF bytes.
func GrowthChartPDF(params domain.SimulationParameters, result domain.SimulationResult, f *Formatter) ([]byte, error) {
	if len(result.PortfolioSeries) < 2 || len(result.PortfolioSeries) != len(result.InvestedSeries) {
		return nil, fmt.Errorf("growth chart: need at least one simulated year, got %d points", len(result.PortfolioSeries))
	}

	report := &GrowthChartReport{
		pdf:       fpdf.New("P", "mm", "A4", ""),
		params:    params,
		result:    result,
		formatter: f,
		generated: time.Now(),
	}

	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)
	report.pdf.SetTitle("Investment Growth vs Total Invested", false)

	report.pdf.AddPage()
	report.addHeader()
	report.addChart()
	report.addYearTable()

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *GrowthChartReport) addHeader() {
	r.pdf.SetFont("Helvetica", "B", 18)
	r.pdf.CellFormat(contentWidth, 10, "Investment Growth vs Total Invested", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Helvetica", "I", 9)
	r.pdf.SetTextColor(110, 110, 110)
	r.pdf.CellFormat(contentWidth, 5, fmt.Sprintf("Generated: %s", r.generated.Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.SetTextColor(0, 0, 0)
	r.pdf.Ln(4)

	p := r.params
	rows := [][2]string{
		{"Lumpsum", r.formatter.FormatCode(p.Lumpsum)},
		{"Monthly contribution", r.formatter.FormatCode(p.MonthlyContribution)},
		{"Step-up", stepUpLabel(p.StepUp, r.formatter)},
		{"Annual return", strconv.FormatFloat(p.AnnualReturnRate*100, 'f', 2, 64) + "%"},
		{"Years", strconv.Itoa(p.Years)},
		{"Final portfolio value", r.formatter.FormatCode(r.result.FinalPortfolioValue)},
		{"Total invested", r.formatter.FormatCode(r.result.FinalInvested)},
		{"CAGR", Percent(r.result.CAGRPercent)},
	}
	if r.result.RealReturnPercent != nil {
		rows = append(rows, [2]string{"Real return", Percent(r.result.RealReturnPercent)})
	}

	r.pdf.SetFillColor(245, 245, 245)
	r.pdf.SetDrawColor(200, 200, 200)
	for i, row := range rows {
		r.pdf.SetFont("Helvetica", "B", 10)
		r.pdf.CellFormat(60, 6, row[0], "1", 0, "L", i%2 == 0, 0, "")
		r.pdf.SetFont("Helvetica", "", 10)
		r.pdf.CellFormat(contentWidth-60, 6, row[1], "1", 1, "R", i%2 == 0, 0, "")
	}
	r.pdf.Ln(6)
}

func (r *GrowthChartReport) addChart() {
	portfolio := r.result.PortfolioSeries
	invested := r.result.InvestedSeries
	years := len(portfolio) - 1

	maxY := 0.0
	for i := range portfolio {
		maxY = math.Max(maxY, math.Max(portfolio[i], invested[i]))
	}
	maxY = niceCeiling(maxY)

	left := marginLeft + chartAxisPad
	top := r.pdf.GetY()
	width := contentWidth - chartAxisPad
	bottom := top + chartHeight

	x := func(year int) float64 { return left + width*float64(year)/float64(years) }
	y := func(v float64) float64 { return bottom - chartHeight*v/maxY }

	// Grid and y labels
	r.pdf.SetFont("Helvetica", "", 8)
	r.pdf.SetLineWidth(0.1)
	for i := 0; i <= chartTicks; i++ {
		v := maxY * float64(i) / chartTicks
		r.pdf.SetDrawColor(220, 220, 220)
		r.pdf.Line(left, y(v), left+width, y(v))
		label := compactAmount(v)
		r.pdf.Text(left-r.pdf.GetStringWidth(label)-2, y(v)+1, label)
	}

	// x labels, at most ten
	stride := int(math.Ceil(float64(years) / 10))
	for year := 0; year <= years; year += stride {
		label := strconv.Itoa(year)
		r.pdf.Text(x(year)-r.pdf.GetStringWidth(label)/2, bottom+5, label)
	}

	// Axes
	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetLineWidth(0.3)
	r.pdf.Line(left, top, left, bottom)
	r.pdf.Line(left, bottom, left+width, bottom)

	r.pdf.SetFont("Helvetica", "B", 9)
	r.pdf.Text(left+width/2-5, bottom+11, "Years")
	r.pdf.TransformBegin()
	r.pdf.TransformRotate(90, marginLeft+2, top+chartHeight/2)
	r.pdf.Text(marginLeft+2-10, top+chartHeight/2, "Amount ("+r.formatter.Code()+")")
	r.pdf.TransformEnd()

	// Total invested, dashed
	r.pdf.SetDrawColor(230, 126, 34)
	r.pdf.SetLineWidth(0.5)
	r.pdf.SetDashPattern([]float64{2, 1.5}, 0)
	for i := 1; i <= years; i++ {
		r.pdf.Line(x(i-1), y(invested[i-1]), x(i), y(invested[i]))
	}
	r.pdf.SetDashPattern([]float64{}, 0)

	// Portfolio value, solid
	r.pdf.SetDrawColor(41, 98, 255)
	r.pdf.SetLineWidth(0.7)
	for i := 1; i <= years; i++ {
		r.pdf.Line(x(i-1), y(portfolio[i-1]), x(i), y(portfolio[i]))
	}

	r.addLegend(left+4, top+4)

	r.pdf.SetDrawColor(0, 0, 0)
	r.pdf.SetLineWidth(0.2)
	r.pdf.SetY(bottom + 16)
}

func (r *GrowthChartReport) addLegend(x, y float64) {
	r.pdf.SetFont("Helvetica", "", 8)
	r.pdf.SetTextColor(0, 0, 0)

	r.pdf.SetDrawColor(41, 98, 255)
	r.pdf.SetLineWidth(0.7)
	r.pdf.Line(x, y, x+8, y)
	r.pdf.Text(x+10, y+1, "Portfolio Value")

	r.pdf.SetDrawColor(230, 126, 34)
	r.pdf.SetLineWidth(0.5)
	r.pdf.SetDashPattern([]float64{2, 1.5}, 0)
	r.pdf.Line(x, y+5, x+8, y+5)
	r.pdf.SetDashPattern([]float64{}, 0)
	r.pdf.Text(x+10, y+6, "Total Invested")
}

func (r *GrowthChartReport) addYearTable() {
	widths := []float64{20, 55, 55, 50}
	headers := []string{"Year", "Total invested", "Portfolio value", "Gain"}

	r.pdf.SetFont("Helvetica", "B", 9)
	r.pdf.SetFillColor(230, 230, 230)
	r.pdf.SetDrawColor(200, 200, 200)
	for i, h := range headers {
		r.pdf.CellFormat(widths[i], 6, h, "1", 0, "C", true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Helvetica", "", 9)
	for i := range r.result.PortfolioSeries {
		value := r.result.PortfolioSeries[i]
		invested := r.result.InvestedSeries[i]
		r.pdf.CellFormat(widths[0], 5, strconv.Itoa(i), "1", 0, "C", false, 0, "")
		r.pdf.CellFormat(widths[1], 5, r.formatter.FormatCode(invested), "1", 0, "R", false, 0, "")
		r.pdf.CellFormat(widths[2], 5, r.formatter.FormatCode(value), "1", 0, "R", false, 0, "")
		r.pdf.CellFormat(widths[3], 5, r.formatter.FormatCode(value-invested), "1", 1, "R", false, 0, "")
	}
}

func stepUpLabel(s domain.StepUp, f *Formatter) string {
	switch s.Mode {
	case domain.StepUpPercent:
		return s.RatePercent() + "% per year"
	case domain.StepUpFixedAmount:
		return "+" + f.FormatCode(s.Amount) + " per year"
	default:
		return "none"
	}
}

// niceCeiling rounds v up to 1, 2, 2.5 or 5 times a power of ten.
func niceCeiling(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(v)))
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if v <= m*exp {
			return m * exp
		}
	}
	return 10 * exp
}

// compactAmount shortens axis labels: 1500000 -> "1.5M".
func compactAmount(v float64) string {
	d := decimal.NewFromFloat(v)
	switch {
	case v >= 1e9:
		return d.Shift(-9).Round(2).String() + "B"
	case v >= 1e6:
		return d.Shift(-6).Round(2).String() + "M"
	case v >= 1e3:
		return d.Shift(-3).Round(2).String() + "K"
	default:
		return d.Round(2).String()
	}
}
