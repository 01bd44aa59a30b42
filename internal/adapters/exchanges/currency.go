package exchanges

import "strings"

// commonCurrencyCodes maps legacy or exchange-idiosyncratic asset symbols to
// their canonical codes. Applied uniformly by every adapter.
var commonCurrencyCodes = map[string]string{
	"XBT":   "BTC",
	"BCC":   "BCH",
	"DRK":   "DASH",
	"BCHSV": "BSV",
}

// CurrencyCode canonicalizes a raw exchange asset symbol.
func CurrencyCode(id string) string {
	code := strings.ToUpper(id)
	if canonical, ok := commonCurrencyCodes[code]; ok {
		return canonical
	}
	return code
}
