package upline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
	"github.com/nexlevel/referral-ledger/pkg/storage/mocks"
)

func member(code, sponsor string, status models.MemberStatus) *models.Member {
	return &models.Member{MemberCode: code, SponsorCode: sponsor, Status: status}
}

func TestResolve(t *testing.T) {
	t.Run("Walks The Full Chain", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", context.Background(), "M1").Return(member("M1", "M2", models.MemberActive), nil)
		mockStore.On("GetMember", context.Background(), "M2").Return(member("M2", "M3", models.MemberActive), nil)
		mockStore.On("GetMember", context.Background(), "M3").Return(member("M3", "M4", models.MemberPending), nil)
		mockStore.On("GetMember", context.Background(), "M4").Return(member("M4", "", models.MemberActive), nil)

		resolver := NewResolver(mockStore)
		chain, err := resolver.Resolve(context.Background(), "M1")

		assert.NoError(t, err)
		assert.Len(t, chain, 3)
		assert.Equal(t, Sponsor{Level: 1, SponsorCode: "M2", Status: models.MemberActive}, chain[0])
		assert.Equal(t, Sponsor{Level: 2, SponsorCode: "M3", Status: models.MemberPending}, chain[1])
		assert.Equal(t, Sponsor{Level: 3, SponsorCode: "M4", Status: models.MemberActive}, chain[2])
		mockStore.AssertExpectations(t)
	})

	t.Run("Caps The Chain At Ten Levels", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		// 15 ancestors above M0; only the first 10 count.
		for i := 0; i <= 15; i++ {
			code := fmt.Sprintf("M%d", i)
			sponsor := fmt.Sprintf("M%d", i+1)
			mockStore.On("GetMember", context.Background(), code).Return(member(code, sponsor, models.MemberActive), nil).Maybe()
		}

		resolver := NewResolver(mockStore)
		chain, err := resolver.Resolve(context.Background(), "M0")

		assert.NoError(t, err)
		assert.Len(t, chain, MaxDepth)
		assert.Equal(t, "M10", chain[MaxDepth-1].SponsorCode)
	})

	t.Run("Stops At A Dangling Sponsor", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", context.Background(), "M1").Return(member("M1", "M2", models.MemberActive), nil)
		mockStore.On("GetMember", context.Background(), "M2").Return(member("M2", "GHOST", models.MemberActive), nil)
		mockStore.On("GetMember", context.Background(), "GHOST").Return(nil, fmt.Errorf("member GHOST: %w", storage.ErrNotFound))

		resolver := NewResolver(mockStore)
		chain, err := resolver.Resolve(context.Background(), "M1")

		assert.NoError(t, err)
		assert.Len(t, chain, 1)
		assert.Equal(t, "M2", chain[0].SponsorCode)
	})

	t.Run("Detects A Sponsor Cycle", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", context.Background(), "A").Return(member("A", "B", models.MemberActive), nil)
		mockStore.On("GetMember", context.Background(), "B").Return(member("B", "A", models.MemberActive), nil)

		resolver := NewResolver(mockStore)
		chain, err := resolver.Resolve(context.Background(), "A")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cycle")
		// The hops before the cycle are still reported.
		assert.Len(t, chain, 1)
	})

	t.Run("Propagates Storage Errors", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", context.Background(), "M1").Return(member("M1", "M2", models.MemberActive), nil)
		mockStore.On("GetMember", context.Background(), "M2").Return(nil, errors.New("dynamodb unavailable"))

		resolver := NewResolver(mockStore)
		_, err := resolver.Resolve(context.Background(), "M1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to resolve sponsor at level 1")
	})

	t.Run("Unknown Start Member", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", context.Background(), "NOPE").Return(nil, fmt.Errorf("member NOPE: %w", storage.ErrNotFound))

		resolver := NewResolver(mockStore)
		_, err := resolver.Resolve(context.Background(), "NOPE")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
