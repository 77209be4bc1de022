package referral

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nexlevel/referral-ledger/pkg/storage/mocks"
)

func TestApply(t *testing.T) {
	t.Run("Records A New Referral", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("AddDirectReferral", mock.Anything, "S1", "M1").Return(true, nil)

		u := NewUpdater(mockStorage)

		added, err := u.Apply(context.Background(), "S1", "M1")

		assert.NoError(t, err)
		assert.True(t, added)
		mockStorage.AssertExpectations(t)
	})

	t.Run("Replay Is A No-Op", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("AddDirectReferral", mock.Anything, "S1", "M1").Return(false, nil)

		u := NewUpdater(mockStorage)

		added, err := u.Apply(context.Background(), "S1", "M1")

		assert.NoError(t, err)
		assert.False(t, added)
	})

	t.Run("Root Member Has No Sponsor", func(t *testing.T) {
		mockStorage := new(mocks.Storage)

		u := NewUpdater(mockStorage)

		added, err := u.Apply(context.Background(), "", "M1")

		assert.NoError(t, err)
		assert.False(t, added)
		mockStorage.AssertNotCalled(t, "AddDirectReferral", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Storage Error", func(t *testing.T) {
		mockStorage := new(mocks.Storage)
		mockStorage.On("AddDirectReferral", mock.Anything, "S1", "M1").Return(false, errors.New("update failed"))

		u := NewUpdater(mockStorage)

		_, err := u.Apply(context.Background(), "S1", "M1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to record direct referral")
	})
}
