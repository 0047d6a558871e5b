package domain

import "strings"

// Currency a currency code, lowercase as published by the rate source
type Currency string

// Upper the code as shown to users
func (c Currency) Upper() string {
	return strings.ToUpper(string(c))
}

// Amount a monetary amount... which should be a float...
type Amount float64

// Rate units of a currency per one unit of the base currency
type Rate float64

// Rates maps currency codes to their rate against a single base currency
type Rates map[Currency]Rate

// Snapshot a rate table as fetched from the source, with its as-of date.
// A Snapshot is never mutated once built; refreshes replace it.
type Snapshot struct {
	Base  Currency
	Date  string
	Rates Rates
}

// Exchanged result of a single conversion
type Exchanged struct {
	Amount Amount
	Rate   Rate
	// Currency upper-cased target code
	Currency string
}
