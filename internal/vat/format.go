package vat

import (
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultCurrency = "EUR"

var symbols = map[currency.Unit]string{
	currency.EUR: "€",
	currency.USD: "$",
	currency.GBP: "£",
	currency.CHF: "CHF",
}

var printer = message.NewPrinter(language.Dutch)

// FormatCurrency renders amount for display using Dutch number formatting,
// e.g. "€ 1.234,50". An empty currency means EUR; an unrecognised code is
// printed as given.
func FormatCurrency(amount float64, code string) string {
	if code == "" {
		code = DefaultCurrency
	}

	symbol := strings.ToUpper(code)

	if unit, err := currency.ParseISO(symbol); err == nil {
		symbol = unit.String()
		if s, ok := symbols[unit]; ok {
			symbol = s
		}
	}

	return symbol + " " + printer.Sprintf("%.2f", amount)
}
