package mocks

import (
	"context"
	"time"

	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/stretchr/testify/mock"
)

// DbInterface is a mock of db.DbInterface
type DbInterface struct {
	mock.Mock
}

func (m *DbInterface) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *DbInterface) CreateLockup(ctx context.Context, doc *model.LockupDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *DbInterface) GetLockup(ctx context.Context, id string) (*model.LockupDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LockupDocument), args.Error(1)
}

func (m *DbInterface) UpdateLockupSchedule(ctx context.Context, id string, unlocks []model.UnlockEntry) error {
	args := m.Called(ctx, id, unlocks)
	return args.Error(0)
}

func (m *DbInterface) UpdateLockupAdmin(ctx context.Context, id, admin string) error {
	args := m.Called(ctx, id, admin)
	return args.Error(0)
}

func (m *DbInterface) UpdateLockupOwner(ctx context.Context, id, owner string) error {
	args := m.Called(ctx, id, owner)
	return args.Error(0)
}

func (m *DbInterface) GetClaimWatermark(ctx context.Context, lockupID, asset string) (uint64, error) {
	args := m.Called(ctx, lockupID, asset)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *DbInterface) SetClaimWatermark(ctx context.Context, lockupID, asset string, lastClaimTime uint64) error {
	args := m.Called(ctx, lockupID, asset, lastClaimTime)
	return args.Error(0)
}

func (m *DbInterface) ExtendLiveness(ctx context.Context, threshold, bump time.Duration) (int64, error) {
	args := m.Called(ctx, threshold, bump)
	return args.Get(0).(int64), args.Error(1)
}
