package commission

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nexlevel/referral-ledger/pkg/models"
	"github.com/nexlevel/referral-ledger/pkg/referral"
	"github.com/nexlevel/referral-ledger/pkg/storage"
	"github.com/nexlevel/referral-ledger/pkg/storage/mocks"
	"github.com/nexlevel/referral-ledger/pkg/upline"
)

func TestProcessActivation(t *testing.T) {
	mockStore := new(mocks.Storage)
	mockStore.On("GetMember", mock.Anything, "NEW").Return(&models.Member{MemberCode: "NEW", SponsorCode: "S1", Status: models.MemberActive}, nil)
	mockStore.On("GetMember", mock.Anything, "S1").Return(&models.Member{MemberCode: "S1", Status: models.MemberActive}, nil)
	mockStore.On("CreatePayoutWithLedgerEntry", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mockStore.On("AddDirectReferral", mock.Anything, "S1", "NEW").Return(true, nil)

	engine := NewEngine(
		upline.NewResolver(mockStore),
		DefaultRateTable(),
		NewProcessor(mockStore, mockStore),
		referral.NewUpdater(mockStore),
	)

	outcome, err := engine.ProcessActivation(context.Background(), "NEW", "S1")

	assert.NoError(t, err)
	assert.Equal(t, 1, outcome.UplineDepth)
	assert.Equal(t, 1, outcome.PaidCommissions)
	assert.True(t, outcome.ReferralAdded)
	mockStore.AssertExpectations(t)
}

func TestProcessActivationReplay(t *testing.T) {
	mockStore := new(mocks.Storage)
	mockStore.On("GetMember", mock.Anything, "NEW").Return(&models.Member{MemberCode: "NEW", SponsorCode: "S1", Status: models.MemberActive}, nil)
	mockStore.On("GetMember", mock.Anything, "S1").Return(&models.Member{MemberCode: "S1", Status: models.MemberActive}, nil)
	// Every write side is already applied from the first delivery.
	mockStore.On("CreatePayoutWithLedgerEntry", mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrDuplicatePayout)
	mockStore.On("AddDirectReferral", mock.Anything, "S1", "NEW").Return(false, nil)

	engine := NewEngine(upline.NewResolver(mockStore), nil, NewProcessor(mockStore, mockStore), referral.NewUpdater(mockStore))

	outcome, err := engine.ProcessActivation(context.Background(), "NEW", "S1")

	assert.NoError(t, err)
	assert.Zero(t, outcome.PaidCommissions)
	assert.False(t, outcome.ReferralAdded)
	assert.True(t, outcome.Results[0].Duplicate)
}
