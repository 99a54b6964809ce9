package ui

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders prices and counts for one locale.
type Formatter struct {
	p      *message.Printer
	symbol string
}

// NewFormatter falls back to English when locale does not parse.
func NewFormatter(locale, currencySymbol string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{p: message.NewPrinter(tag), symbol: currencySymbol}
}

// Price formats v with locale digit grouping and at most two decimals.
func (f *Formatter) Price(v float64) string {
	return f.symbol + f.p.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

func (f *Formatter) Count(n int) string {
	return f.p.Sprintf("%d", n)
}
