package db

import (
	"context"
	"time"

	"github.com/lockuplabs/token-lockup-service/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	CreateLockup(ctx context.Context, doc *model.LockupDocument) error
	GetLockup(ctx context.Context, id string) (*model.LockupDocument, error)
	UpdateLockupSchedule(ctx context.Context, id string, unlocks []model.UnlockEntry) error
	UpdateLockupAdmin(ctx context.Context, id, admin string) error
	UpdateLockupOwner(ctx context.Context, id, owner string) error
	GetClaimWatermark(ctx context.Context, lockupID, asset string) (uint64, error)
	SetClaimWatermark(ctx context.Context, lockupID, asset string, lastClaimTime uint64) error
	ExtendLiveness(ctx context.Context, threshold, bump time.Duration) (int64, error)
}
