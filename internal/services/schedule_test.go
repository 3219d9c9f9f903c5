package services

import (
	"testing"

	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/lockuplabs/token-lockup-service/internal/lockup"
	"github.com/lockuplabs/token-lockup-service/tests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetSchedule(t *testing.T) {
	const start = uint64(1_700_000_000)
	current := []lockup.Unlock{
		{Time: start + 100, Percent: 2000},
		{Time: start + 200, Percent: 10000},
	}

	t.Run("replaces future unlocks", func(t *testing.T) {
		ctx := t.Context()
		dbMock := &mocks.DbInterface{}
		replacement := []lockup.Unlock{
			{Time: start + 100, Percent: 2000},
			{Time: start + 300, Percent: 4000},
			{Time: start + 400, Percent: 10000},
		}

		dbMock.On("GetLockup", mock.Anything, testLockupID).Return(timeLockupDoc(current), nil)
		dbMock.On("UpdateLockupSchedule", mock.Anything, testLockupID, model.FromSchedule(replacement)).Return(nil)

		srv := newTestService(dbMock, &mocks.LedgerInterface{}, start+150)
		require.NoError(t, srv.SetSchedule(ctx, testAdmin, testLockupID, replacement))

		dbMock.AssertExpectations(t)
	})

	t.Run("rejects tampering with a passed unlock", func(t *testing.T) {
		ctx := t.Context()
		dbMock := &mocks.DbInterface{}
		dbMock.On("GetLockup", mock.Anything, testLockupID).Return(timeLockupDoc(current), nil)

		srv := newTestService(dbMock, &mocks.LedgerInterface{}, start+150)
		err := srv.SetSchedule(ctx, testAdmin, testLockupID, []lockup.Unlock{
			{Time: start + 100, Percent: 3000},
			{Time: start + 200, Percent: 10000},
		})
		assert.ErrorIs(t, err, lockup.ErrAlreadyUnlocked)
	})

	t.Run("rejects replacement once fully unlocked", func(t *testing.T) {
		ctx := t.Context()
		dbMock := &mocks.DbInterface{}
		dbMock.On("GetLockup", mock.Anything, testLockupID).Return(timeLockupDoc(current), nil)

		srv := newTestService(dbMock, &mocks.LedgerInterface{}, start+500)
		err := srv.SetSchedule(ctx, testAdmin, testLockupID, []lockup.Unlock{
			{Time: start + 600, Percent: 10000},
		})
		assert.ErrorIs(t, err, lockup.ErrAlreadyUnlocked)
	})

	t.Run("rejects non-admin caller", func(t *testing.T) {
		ctx := t.Context()
		dbMock := &mocks.DbInterface{}
		dbMock.On("GetLockup", mock.Anything, testLockupID).Return(timeLockupDoc(current), nil)

		srv := newTestService(dbMock, &mocks.LedgerInterface{}, start)
		err := srv.SetSchedule(ctx, testOwner, testLockupID, current)
		assert.ErrorIs(t, err, lockup.ErrUnauthorized)
	})

	t.Run("rejects sequence lockup", func(t *testing.T) {
		ctx := t.Context()
		dbMock := &mocks.DbInterface{}
		dbMock.On("GetLockup", mock.Anything, testLockupID).Return(sequenceLockupDoc(current), nil)

		srv := newTestService(dbMock, &mocks.LedgerInterface{}, start)
		err := srv.SetSchedule(ctx, testAdmin, testLockupID, current)
		assert.ErrorIs(t, err, ErrVariantMismatch)
	})
}
