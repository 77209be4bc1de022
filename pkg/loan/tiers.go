package loan

import (
	"encoding/json"
	"fmt"
)

// Tier describes one rung of the loan ladder. A member's tier is the count of
// their fully repaid prior loans, clamped to the last rung once exhausted.
type Tier struct {
	Principal    float64 `json:"principal"`
	Fee          float64 `json:"fee"`
	NetCredit    float64 `json:"net_credit"`
	Installments int     `json:"installments"`
}

// TierTable is an ordered ladder of loan tiers, injected configuration like
// the commission rate table.
type TierTable []Tier

// DefaultTierTable is the standard three-rung ladder.
func DefaultTierTable() TierTable {
	return TierTable{
		{Principal: 5000, Fee: 250, NetCredit: 4750, Installments: 10},
		{Principal: 10000, Fee: 500, NetCredit: 9500, Installments: 15},
		{Principal: 25000, Fee: 1250, NetCredit: 23750, Installments: 20},
	}
}

// TierTableFromJSON parses a deployment override of the ladder, a JSON array
// of rungs in ascending order. A rung with no net_credit defaults to
// principal minus fee.
func TierTableFromJSON(data []byte) (TierTable, error) {
	var tiers TierTable
	if err := json.Unmarshal(data, &tiers); err != nil {
		return nil, fmt.Errorf("failed to parse tier table: %w", err)
	}
	if len(tiers) == 0 {
		return nil, fmt.Errorf("tier table is empty")
	}
	for i := range tiers {
		if tiers[i].Principal <= 0 {
			return nil, fmt.Errorf("tier %d: principal %.2f must be positive", i, tiers[i].Principal)
		}
		if tiers[i].Installments <= 0 {
			return nil, fmt.Errorf("tier %d: installments %d must be positive", i, tiers[i].Installments)
		}
		if tiers[i].NetCredit == 0 {
			tiers[i].NetCredit = tiers[i].Principal - tiers[i].Fee
		}
	}
	return tiers, nil
}

// TierFor returns the tier for a member with paidLoans fully repaid loans.
// The index clamps to the last tier once the ladder is exhausted.
func (t TierTable) TierFor(paidLoans int) Tier {
	if paidLoans < 0 {
		paidLoans = 0
	}
	if paidLoans >= len(t) {
		paidLoans = len(t) - 1
	}
	return t[paidLoans]
}
