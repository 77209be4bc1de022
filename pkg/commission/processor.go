package commission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
)

// Result reports the outcome for one commission intent. A failed item never
// aborts the rest of the batch.
type Result struct {
	Level       int
	SponsorCode string
	Amount      float64
	Success     bool
	Duplicate   bool
	Reason      string
}

// Processor persists commission intents as payout/ledger pairs.
type Processor struct {
	Members storage.MemberReader
	Payouts storage.PayoutStore
}

// NewProcessor creates a Processor.
func NewProcessor(members storage.MemberReader, payouts storage.PayoutStore) *Processor {
	return &Processor{Members: members, Payouts: payouts}
}

// Process re-validates and writes each intent for the activation of
// memberCode. The sponsor's status is re-checked at write time, closing the
// gap between calculation and persistence; the payout and its LevelBenefit
// ledger entry are written atomically, and the payout-key condition turns a
// replayed activation event into per-item duplicates instead of double pay.
func (p *Processor) Process(ctx context.Context, memberCode string, intents []Intent) []Result {
	results := make([]Result, 0, len(intents))

	for _, intent := range intents {
		result := Result{Level: intent.Level, SponsorCode: intent.SponsorCode, Amount: intent.Amount}

		sponsor, err := p.Members.GetMember(ctx, intent.SponsorCode)
		if err != nil {
			result.Reason = fmt.Sprintf("sponsor lookup failed: %v", err)
			results = append(results, result)
			continue
		}
		if sponsor.Status != models.MemberActive {
			result.Reason = fmt.Sprintf("sponsor status is not active (%s)", sponsor.Status)
			results = append(results, result)
			continue
		}

		payout := &models.Payout{
			PayoutKey:    models.PayoutKey(intent.SponsorCode, memberCode, intent.Level),
			ReceiverCode: intent.SponsorCode,
			SourceCode:   memberCode,
			Level:        intent.Level,
			Amount:       intent.Amount,
			PayoutType:   intent.Label,
			Description:  fmt.Sprintf("Level %d", intent.Level),
			Status:       models.EntryCompleted,
			Date:         time.Now().Format("2006-01-02"),
		}
		entry := &models.LedgerEntry{
			MemberCode:        intent.SponsorCode,
			Type:              models.LevelBenefit,
			Description:       intent.Label,
			Credit:            intent.Amount,
			Debit:             0,
			Status:            models.EntryCompleted,
			Level:             intent.Level,
			RelatedMemberCode: memberCode,
		}

		if err := p.Payouts.CreatePayoutWithLedgerEntry(ctx, payout, entry); err != nil {
			if errors.Is(err, storage.ErrDuplicatePayout) {
				result.Duplicate = true
				result.Reason = "commission already paid for this sponsor, member, and level"
			} else {
				result.Reason = fmt.Sprintf("payout write failed: %v", err)
			}
			results = append(results, result)
			continue
		}

		result.Success = true
		results = append(results, result)
	}

	return results
}
