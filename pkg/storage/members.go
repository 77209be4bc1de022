package storage

import (
	"context"

	"github.com/nexlevel/referral-ledger/pkg/models"
)

// MemberReader defines the interface for reading member data.
type MemberReader interface {
	// GetMember retrieves a member by their unique member code.
	GetMember(ctx context.Context, memberCode string) (*models.Member, error)
}

// MemberStore defines the interface for managing members.
type MemberStore interface {
	MemberReader

	// CreateMember creates a new member record.
	CreateMember(ctx context.Context, member *models.Member) (*models.Member, error)

	// ActivateMember marks a member active once their package payment has
	// cleared. Activating an already-active member is a no-op.
	ActivateMember(ctx context.Context, memberCode string) error

	// AddDirectReferral adds the new member to the sponsor's direct-referral
	// set and increments the team counter, both gated on the member being
	// absent from the set. A replay of the same event is a no-op.
	AddDirectReferral(ctx context.Context, sponsorCode, memberCode string) (bool, error)
}
