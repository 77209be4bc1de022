package commission

import (
	"encoding/json"
	"fmt"
)

// RateTable maps a commission level (1..10) to the flat amount paid to the
// sponsor at that level. The table is injected configuration: deployments
// have shipped with different rates, so nothing in this package hard-codes
// them beyond the default.
type RateTable map[int]float64

// DefaultRateTable pays a larger direct-referral commission at level 1 and a
// flat rate for levels 2 through 10.
func DefaultRateTable() RateTable {
	rates := RateTable{1: 100}
	for level := 2; level <= 10; level++ {
		rates[level] = 25
	}
	return rates
}

// RateTableFromJSON parses a deployment override of the rate table, a JSON
// object keyed by level: {"1": 100, "2": 25, ...}.
func RateTableFromJSON(data []byte) (RateTable, error) {
	var rates RateTable
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("failed to parse rate table: %w", err)
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("rate table is empty")
	}
	for level, amount := range rates {
		if level < 1 {
			return nil, fmt.Errorf("rate table level %d: levels start at 1", level)
		}
		if amount < 0 {
			return nil, fmt.Errorf("rate table level %d: amount %.2f is negative", level, amount)
		}
	}
	return rates, nil
}

// Ordinal renders 1 -> "1st", 2 -> "2nd", 3 -> "3rd", 4 -> "4th", used in
// payout labels like "3rd Level Benefits".
func Ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return fmt.Sprintf("%d%s", n, suffix)
}
