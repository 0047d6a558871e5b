package convert

import (
	"errors"
	"fmt"
	"go-currency-converter/domain"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrInvalidAmount amount is empty, not a decimal number, not finite or not above zero
	ErrInvalidAmount = errors.New("please enter a valid amount")

	// ErrUnknownCurrency target is not in the loaded rate table
	ErrUnknownCurrency = errors.New("unknown target currency")

	// ErrRatesUnavailable no rate table has been loaded yet
	ErrRatesUnavailable = errors.New("exchange rates unavailable")
)

// decimal plain decimal notation with an optional exponent; no hex, no separators
var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// ValidateAmount parses user input into a positive, finite amount.
func ValidateAmount(input string) (domain.Amount, error) {
	text := strings.TrimSpace(input)
	if !decimal.MatchString(text) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, input)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidAmount, input)
	}
	if f <= 0 {
		return 0, fmt.Errorf("%w: %q is not above zero", ErrInvalidAmount, input)
	}
	return domain.Amount(f), nil
}

// Convert applies a rate to an amount. Rounding is left to display formatting.
func Convert(amount domain.Amount, rate domain.Rate) domain.Amount {
	return domain.Amount(float64(amount) * float64(rate))
}

// SortedTargets lists the codes a user can convert to: every code in table except base.
// Named currencies come first, then the rest; each group in English collation order.
func SortedTargets(table domain.Rates, base domain.Currency) []domain.Currency {
	targets := make([]domain.Currency, 0, len(table))
	for code := range table {
		if strings.EqualFold(string(code), string(base)) {
			continue
		}
		targets = append(targets, code)
	}

	// a Collator is not safe for concurrent use
	collator := collate.New(language.English)
	slices.SortFunc(targets, func(a, b domain.Currency) int {
		_, aNamed := nameOf(a)
		_, bNamed := nameOf(b)
		switch {
		case aNamed && !bNamed:
			return -1
		case !aNamed && bNamed:
			return 1
		}
		if c := collator.CompareString(string(a), string(b)); c != 0 {
			return c
		}
		return strings.Compare(string(a), string(b))
	})
	return targets
}

// Quote converts amountText into target using the rates of snapshot.
func Quote(snapshot domain.Snapshot, amountText string, target domain.Currency) (domain.Exchanged, error) {
	amount, err := ValidateAmount(amountText)
	if err != nil {
		return domain.Exchanged{}, err
	}

	target = domain.Currency(strings.ToLower(strings.TrimSpace(string(target))))
	rate, ok := snapshot.Rates[target]
	if !ok || target == snapshot.Base {
		return domain.Exchanged{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, target.Upper())
	}

	return domain.Exchanged{
		Amount:   Convert(amount, rate),
		Rate:     rate,
		Currency: target.Upper(),
	}, nil
}
