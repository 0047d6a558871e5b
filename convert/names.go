package convert

import (
	"go-currency-converter/domain"
	"strings"
)

// Names display names of commonly recognised currencies. Codes missing here are
// still selectable, they are labelled by their code alone and listed last.
var Names = map[domain.Currency]string{
	"inr": "Indian Rupee",
	"eur": "Euro",
	"gbp": "British Pound",
	"jpy": "Japanese Yen",
	"aud": "Australian Dollar",
	"cad": "Canadian Dollar",
	"chf": "Swiss Franc",
	"cny": "Chinese Yuan",
	"hkd": "Hong Kong Dollar",
	"sgd": "Singapore Dollar",
	"aed": "UAE Dirham",
	"krw": "South Korean Won",
	"mxn": "Mexican Peso",
	"brl": "Brazilian Real",
	"zar": "South African Rand",
	"rub": "Russian Ruble",
	"thb": "Thai Baht",
	"php": "Philippine Peso",
	"idr": "Indonesian Rupiah",
	"myr": "Malaysian Ringgit",
	"nzd": "New Zealand Dollar",
	"sek": "Swedish Krona",
	"nok": "Norwegian Krone",
	"dkk": "Danish Krone",
	"pln": "Polish Zloty",
	"try": "Turkish Lira",
	"sar": "Saudi Riyal",
	"btc": "Bitcoin",
	"eth": "Ethereum",
}

// blank label for an empty code
const blank = "(none)"

func nameOf(code domain.Currency) (string, bool) {
	name, ok := Names[domain.Currency(strings.ToLower(string(code)))]
	return name, ok
}

// LabelFor renders a code for display, e.g. "EUR - Euro" or "XYZ". Never empty.
func LabelFor(code domain.Currency) string {
	code = domain.Currency(strings.TrimSpace(string(code)))
	if code == "" {
		return blank
	}
	if name, ok := nameOf(code); ok {
		return code.Upper() + " - " + name
	}
	return code.Upper()
}
