// Package referral maintains each sponsor's direct-referral set and team-size
// counter.
package referral

import (
	"context"
	"fmt"

	"github.com/nexlevel/referral-ledger/pkg/storage"
)

// Updater applies referral-hierarchy changes on member activation.
type Updater struct {
	Members storage.MemberStore
}

// NewUpdater creates an Updater.
func NewUpdater(members storage.MemberStore) *Updater {
	return &Updater{Members: members}
}

// Apply records memberCode as a direct referral of sponsorCode. The set
// insertion and the team-counter increment are gated on the same absence
// check inside the store, so a resend of the activation event is a complete
// no-op: no duplicate set entry, no double-counted team size. It returns
// whether the referral was newly recorded.
func (u *Updater) Apply(ctx context.Context, sponsorCode, memberCode string) (bool, error) {
	if sponsorCode == "" {
		return false, nil
	}
	added, err := u.Members.AddDirectReferral(ctx, sponsorCode, memberCode)
	if err != nil {
		return false, fmt.Errorf("failed to record direct referral: %w", err)
	}
	return added, nil
}
