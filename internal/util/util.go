package util

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"memberdesk/internal/pricing"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatMoney formats an amount as US dollars with thousands separators
func FormatMoney(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + "$" + printer.Sprintf("%.2f", rounded.InexactFloat64())
}

// FormatPrice formats a price that may be missing
func FormatPrice(p pricing.Price) string {
	if !p.Valid {
		return "-"
	}
	return FormatMoney(p.Amount)
}

// IsUUID checks if a string is a valid UUID. Used to tell IDs apart from names.
func IsUUID(str string) bool {
	if len(str) != 36 {
		return false
	}
	_, err := uuid.Parse(str)
	return err == nil
}

// Truncate shortens s to width runes, ending in an ellipsis when cut
func Truncate(s string, width int) string {
	runes := []rune(s)
	if width <= 0 || len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return strings.TrimSpace(string(runes[:width-1])) + "…"
}
