package commission

import (
	"context"
	"fmt"

	"github.com/nexlevel/referral-ledger/pkg/referral"
	"github.com/nexlevel/referral-ledger/pkg/upline"
)

// ActivationOutcome summarizes the fan-out for one activation event.
type ActivationOutcome struct {
	MemberCode      string
	UplineDepth     int
	Results         []Result
	ReferralAdded   bool
	PaidCommissions int
}

// Engine runs the full activation pipeline: resolve the upline, calculate
// commission intents, persist payout/ledger pairs, and update the sponsor's
// referral hierarchy. Every stage is individually idempotent, so the engine
// as a whole can be replayed from the queue without double pay.
type Engine struct {
	Resolver  *upline.Resolver
	Rates     RateTable
	Processor *Processor
	Referrals *referral.Updater
}

// NewEngine creates an Engine.
func NewEngine(resolver *upline.Resolver, rates RateTable, processor *Processor, referrals *referral.Updater) *Engine {
	if rates == nil {
		rates = DefaultRateTable()
	}
	return &Engine{Resolver: resolver, Rates: rates, Processor: processor, Referrals: referrals}
}

// ProcessActivation handles one member-activation event.
func (e *Engine) ProcessActivation(ctx context.Context, memberCode, sponsorCode string) (*ActivationOutcome, error) {
	chain, err := e.Resolver.Resolve(ctx, memberCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upline for %s: %w", memberCode, err)
	}

	intents := Calculate(chain, e.Rates)
	results := e.Processor.Process(ctx, memberCode, intents)

	added, err := e.Referrals.Apply(ctx, sponsorCode, memberCode)
	if err != nil {
		return nil, fmt.Errorf("failed to update referral hierarchy: %w", err)
	}

	outcome := &ActivationOutcome{
		MemberCode:    memberCode,
		UplineDepth:   len(chain),
		Results:       results,
		ReferralAdded: added,
	}
	for _, r := range results {
		if r.Success {
			outcome.PaidCommissions++
		}
	}
	return outcome, nil
}
