// Package upline walks a member's sponsor chain to produce the ordered list
// of ancestor sponsors used for commission fan-out.
package upline

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
)

// MaxDepth is the fixed depth of the commission tree.
const MaxDepth = 10

// Sponsor is one hop in a member's upline, starting at level 1 for the
// immediate sponsor.
type Sponsor struct {
	Level       int
	SponsorCode string
	Status      models.MemberStatus
}

// Resolver walks sponsor chains against the member store.
type Resolver struct {
	Members  storage.MemberReader
	MaxDepth int
}

// NewResolver creates a Resolver with the standard depth cap.
func NewResolver(members storage.MemberReader) *Resolver {
	return &Resolver{Members: members, MaxDepth: MaxDepth}
}

// Resolve walks member -> sponsor -> sponsor's sponsor, emitting one Sponsor
// per hop. It terminates when the depth cap is reached, a member has no
// sponsor, or a referenced sponsor does not exist. A visited set guards
// against corrupted sponsor graphs: a cycle ends the walk instead of burning
// the remaining depth on repeat hops.
func (r *Resolver) Resolve(ctx context.Context, memberCode string) ([]Sponsor, error) {
	member, err := r.Members.GetMember(ctx, memberCode)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upline start %s: %w", memberCode, err)
	}

	visited := map[string]bool{member.MemberCode: true}
	var chain []Sponsor
	current := member

	for level := 1; level <= r.MaxDepth; level++ {
		if current.SponsorCode == "" {
			break
		}
		if visited[current.SponsorCode] {
			return chain, fmt.Errorf("sponsor cycle detected at %s", current.SponsorCode)
		}

		sponsor, err := r.Members.GetMember(ctx, current.SponsorCode)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Dangling sponsor reference; the chain ends here.
				break
			}
			return nil, fmt.Errorf("failed to resolve sponsor at level %d: %w", level, err)
		}

		visited[sponsor.MemberCode] = true
		chain = append(chain, Sponsor{
			Level:       level,
			SponsorCode: sponsor.MemberCode,
			Status:      sponsor.Status,
		})
		current = sponsor
	}

	return chain, nil
}
