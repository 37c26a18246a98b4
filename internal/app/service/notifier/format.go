package notifier

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// en-IN groups in lakhs and crores: 12,34,567.
var printer = message.NewPrinter(language.MustParse("en-IN"))

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
}

// FormatAmount renders minor units as a grouped major amount, e.g. 299900
// INR becomes "₹2,999.00". Unknown currencies are prefixed with their code.
// The value stays in integer and decimal arithmetic throughout.
func FormatAmount(amountMinor int64, currency string) string {
	major := decimal.New(amountMinor, -2)
	abs := major.Abs()
	_, frac, _ := strings.Cut(abs.StringFixed(2), ".")
	s := printer.Sprint(number.Decimal(abs.IntPart())) + "." + frac
	if currency == "" {
		currency = "INR"
	}
	sign := ""
	if major.Sign() < 0 {
		sign = "-"
	}
	if sym, ok := currencySymbols[currency]; ok {
		return sign + sym + s
	}
	return currency + " " + sign + s
}
