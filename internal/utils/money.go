package utils

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders a whole-unit amount with its currency code and
// thousand separators, e.g. "INR 12,500".
func FormatMoney(amount int64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		return moneyPrinter.Sprintf("%d", amount)
	}
	return moneyPrinter.Sprintf("%s %d", code, amount)
}
