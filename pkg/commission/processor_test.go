package commission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/storage"
	"github.com/nexlevel/referral-ledger/pkg/storage/mocks"
)

func TestProcess(t *testing.T) {
	intents := []Intent{
		{Level: 1, SponsorCode: "S1", Amount: 100, Label: "1st Level Benefits"},
		{Level: 2, SponsorCode: "S2", Amount: 25, Label: "2nd Level Benefits"},
	}

	t.Run("Writes Payout And Ledger Entry Pairs", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", mock.Anything, "S1").Return(&models.Member{MemberCode: "S1", Status: models.MemberActive}, nil)
		mockStore.On("GetMember", mock.Anything, "S2").Return(&models.Member{MemberCode: "S2", Status: models.MemberActive}, nil)
		mockStore.On("CreatePayoutWithLedgerEntry", mock.Anything,
			mock.MatchedBy(func(p *models.Payout) bool { return p.PayoutKey == "S1#NEW#1" && p.Amount == 100 }),
			mock.MatchedBy(func(e *models.LedgerEntry) bool {
				return e.MemberCode == "S1" && e.Type == models.LevelBenefit && e.Credit == 100 && e.RelatedMemberCode == "NEW"
			}),
		).Return(nil)
		mockStore.On("CreatePayoutWithLedgerEntry", mock.Anything,
			mock.MatchedBy(func(p *models.Payout) bool { return p.PayoutKey == "S2#NEW#2" && p.Amount == 25 }),
			mock.Anything,
		).Return(nil)

		processor := NewProcessor(mockStore, mockStore)
		results := processor.Process(context.Background(), "NEW", intents)

		assert.Len(t, results, 2)
		assert.True(t, results[0].Success)
		assert.True(t, results[1].Success)
		mockStore.AssertExpectations(t)
	})

	t.Run("Replay Reports Duplicates Instead Of Double Pay", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", mock.Anything, mock.Anything).Return(&models.Member{Status: models.MemberActive}, nil)
		mockStore.On("CreatePayoutWithLedgerEntry", mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrDuplicatePayout)

		processor := NewProcessor(mockStore, mockStore)
		results := processor.Process(context.Background(), "NEW", intents)

		assert.Len(t, results, 2)
		for _, r := range results {
			assert.False(t, r.Success)
			assert.True(t, r.Duplicate)
		}
	})

	t.Run("Sponsor Gone Inactive Since Calculation", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", mock.Anything, "S1").Return(&models.Member{MemberCode: "S1", Status: models.MemberRejected}, nil)

		processor := NewProcessor(mockStore, mockStore)
		results := processor.Process(context.Background(), "NEW", intents[:1])

		assert.Len(t, results, 1)
		assert.False(t, results[0].Success)
		assert.Contains(t, results[0].Reason, "not active")
		mockStore.AssertNotCalled(t, "CreatePayoutWithLedgerEntry", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("One Failure Does Not Abort The Batch", func(t *testing.T) {
		mockStore := new(mocks.Storage)
		mockStore.On("GetMember", mock.Anything, "S1").Return(nil, errors.New("dynamodb unavailable"))
		mockStore.On("GetMember", mock.Anything, "S2").Return(&models.Member{MemberCode: "S2", Status: models.MemberActive}, nil)
		mockStore.On("CreatePayoutWithLedgerEntry", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		processor := NewProcessor(mockStore, mockStore)
		results := processor.Process(context.Background(), "NEW", intents)

		assert.Len(t, results, 2)
		assert.False(t, results[0].Success)
		assert.True(t, results[1].Success)
	})
}
