package fxrate

// builtinSymbols is the static fallback list of common ISO codes used
// when the live symbol list cannot be fetched
var builtinSymbols = []string{
	"USD", "EUR", "IDR", "JPY", "GBP", "AUD", "CAD", "CNY", "HKD", "INR",
	"SGD", "KRW", "MYR", "THB", "CHF", "NZD", "SAR", "AED", "PHP", "VND",
	"BRL", "MXN", "ZAR", "SEK", "NOK", "DKK", "PLN", "ILS", "TRY",
}

// BuiltinSymbols returns a copy of the static fallback currency list
func BuiltinSymbols() []string {
	out := make([]string, len(builtinSymbols))
	copy(out, builtinSymbols)
	return out
}
