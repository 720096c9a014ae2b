package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Formatter renders float amounts for display in one currency. It never feeds
// back into the simulation.
type Formatter struct {
	currency *money.Currency
}

// NewFormatter returns a formatter for an ISO 4217 code such as "INR" or "EUR".
func NewFormatter(code string) (*Formatter, error) {
	cur := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if cur == nil {
		return nil, fmt.Errorf("unknown currency %q", code)
	}
	return &Formatter{currency: cur}, nil
}

// Code returns the ISO currency code.
func (f *Formatter) Code() string { return f.currency.Code }

// Format renders the amount with the currency symbol and minor units, e.g. "$1,234.57".
func (f *Formatter) Format(amount float64) string {
	c := f.currency
	return f.render(amount, int32(c.Fraction), c.Grapheme, c.Template)
}

// FormatWhole renders the amount rounded to whole units, e.g. "$1,235".
func (f *Formatter) FormatWhole(amount float64) string {
	c := f.currency
	return f.render(amount, 0, c.Grapheme, c.Template)
}

// FormatCode renders whole units prefixed by the ISO code instead of the
// symbol, for outputs limited to Latin-1 fonts.
func (f *Formatter) FormatCode(amount float64) string {
	return f.currency.Code + " " + f.render(amount, 0, "", "$1")
}

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// render formats through go-money while the amount fits its int64 minor
// units and groups the decimal digits directly beyond that.
func (f *Formatter) render(amount float64, fraction int32, grapheme, template string) string {
	c := f.currency
	d := decimal.NewFromFloat(amount).Round(fraction)
	minor := d.Shift(fraction)
	if minor.Abs().LessThanOrEqual(maxMinorUnits) {
		return money.NewFormatter(int(fraction), c.Decimal, c.Thousand, grapheme, template).Format(minor.IntPart())
	}

	digits := d.Abs().StringFixed(fraction)
	whole, frac, _ := strings.Cut(digits, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(c.Thousand)
		}
		b.WriteRune(r)
	}
	if fraction > 0 {
		b.WriteString(c.Decimal)
		b.WriteString(frac)
	}

	out := strings.Replace(template, "1", b.String(), 1)
	out = strings.Replace(out, "$", grapheme, 1)
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}

// Percent renders an optional percentage; nil means undefined.
func Percent(p *float64) string {
	if p == nil {
		return "n/a"
	}
	return decimal.NewFromFloat(*p).StringFixed(2) + "%"
}
