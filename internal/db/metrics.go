package db

import (
	"context"
	"time"

	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/lockuplabs/token-lockup-service/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) CreateLockup(ctx context.Context, doc *model.LockupDocument) error {
	return d.run("CreateLockup", func() error {
		return d.db.CreateLockup(ctx, doc)
	})
}

func (d *DbWithMetrics) GetLockup(ctx context.Context, id string) (result *model.LockupDocument, err error) {
	//nolint:errcheck
	d.run("GetLockup", func() error {
		result, err = d.db.GetLockup(ctx, id)
		return err
	})

	return
}

func (d *DbWithMetrics) UpdateLockupSchedule(ctx context.Context, id string, unlocks []model.UnlockEntry) error {
	return d.run("UpdateLockupSchedule", func() error {
		return d.db.UpdateLockupSchedule(ctx, id, unlocks)
	})
}

func (d *DbWithMetrics) UpdateLockupAdmin(ctx context.Context, id, admin string) error {
	return d.run("UpdateLockupAdmin", func() error {
		return d.db.UpdateLockupAdmin(ctx, id, admin)
	})
}

func (d *DbWithMetrics) UpdateLockupOwner(ctx context.Context, id, owner string) error {
	return d.run("UpdateLockupOwner", func() error {
		return d.db.UpdateLockupOwner(ctx, id, owner)
	})
}

func (d *DbWithMetrics) GetClaimWatermark(ctx context.Context, lockupID, asset string) (result uint64, err error) {
	//nolint:errcheck
	d.run("GetClaimWatermark", func() error {
		result, err = d.db.GetClaimWatermark(ctx, lockupID, asset)
		return err
	})

	return
}

func (d *DbWithMetrics) SetClaimWatermark(ctx context.Context, lockupID, asset string, lastClaimTime uint64) error {
	return d.run("SetClaimWatermark", func() error {
		return d.db.SetClaimWatermark(ctx, lockupID, asset, lastClaimTime)
	})
}

func (d *DbWithMetrics) ExtendLiveness(ctx context.Context, threshold, bump time.Duration) (result int64, err error) {
	//nolint:errcheck
	d.run("ExtendLiveness", func() error {
		result, err = d.db.ExtendLiveness(ctx, threshold, bump)
		return err
	})

	return
}

// run executes f recording its latency and outcome under the given method label
func (d *DbWithMetrics) run(method string, f func() error) error {
	start := time.Now()
	err := f()
	metrics.RecordDbLatency(time.Since(start), method, err != nil)

	return err
}
