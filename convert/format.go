package convert

import (
	"go-currency-converter/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var display = language.AmericanEnglish

// FormatAmount renders a converted amount with grouping and 2 to 4 fraction digits, e.g. "8,310.00"
func FormatAmount(a domain.Amount) string {
	return message.NewPrinter(display).Sprint(
		number.Decimal(float64(a), number.MinFractionDigits(2), number.MaxFractionDigits(4)),
	)
}

// FormatRate renders a unit rate with up to 6 fraction digits, e.g. "83.1"
func FormatRate(r domain.Rate) string {
	return message.NewPrinter(display).Sprint(
		number.Decimal(float64(r), number.MaxFractionDigits(6)),
	)
}
