// Package commission turns a resolved upline into payable commissions and
// persists them as payout/ledger pairs.
package commission

import (
	"fmt"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/upline"
)

// Intent is one payable commission produced by the calculator, before the
// write-time status re-check.
type Intent struct {
	Level       int
	SponsorCode string
	Amount      float64
	Label       string
}

// Calculate filters an upline down to the commissions owed for the activation
// of memberCode. A sponsor who is not active at resolution time is skipped:
// their commission for this event is permanently forfeited, not deferred or
// retried later. That is deliberate policy inherited from the rate plan, not
// an oversight.
func Calculate(chain []upline.Sponsor, rates RateTable) []Intent {
	var intents []Intent
	for _, hop := range chain {
		if hop.Status != models.MemberActive {
			continue
		}
		amount := rates[hop.Level]
		if amount <= 0 {
			continue
		}
		intents = append(intents, Intent{
			Level:       hop.Level,
			SponsorCode: hop.SponsorCode,
			Amount:      amount,
			Label:       fmt.Sprintf("%s Level Benefits", Ordinal(hop.Level)),
		})
	}
	return intents
}
