package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCurrency is the currency label prices are shown with
const DefaultCurrency = "KES"

var printer = message.NewPrinter(language.English)

// FormatMoney formats a whole-unit amount as a string like "KES 12,500".
// Uses comma as thousands separator and no decimal places.
func FormatMoney(currency string, amount int64) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	if amount < 0 {
		return "-" + currency + " " + printer.Sprintf("%d", -amount)
	}
	return currency + " " + printer.Sprintf("%d", amount)
}
