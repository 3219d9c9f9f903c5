package model

import (
	"time"

	"github.com/lockuplabs/token-lockup-service/internal/lockup"
	"github.com/lockuplabs/token-lockup-service/internal/types"
)

const (
	LockupCollection    = "lockup"
	WatermarkCollection = "claim_watermark"
)

type UnlockEntry struct {
	Time    uint64 `bson:"time"`
	Percent uint32 `bson:"percent"`
}

type LockupDocument struct {
	ID        string              `bson:"_id"`
	Variant   types.LockupVariant `bson:"variant"`
	Admin     string              `bson:"admin"`
	Owner     string              `bson:"owner"`
	Unlocks   []UnlockEntry       `bson:"unlocks"`
	ExpiresAt time.Time           `bson:"expires_at"`
	CreatedAt time.Time           `bson:"created_at"`
}

func NewLockupDocument(
	id string, variant types.LockupVariant,
	admin, owner string, schedule []lockup.Unlock,
	now time.Time, liveness time.Duration,
) *LockupDocument {
	return &LockupDocument{
		ID:        id,
		Variant:   variant,
		Admin:     admin,
		Owner:     owner,
		Unlocks:   FromSchedule(schedule),
		ExpiresAt: now.Add(liveness),
		CreatedAt: now,
	}
}

// Schedule converts the stored unlock entries back into domain unlocks.
func (d *LockupDocument) Schedule() []lockup.Unlock {
	schedule := make([]lockup.Unlock, len(d.Unlocks))
	for i, u := range d.Unlocks {
		schedule[i] = lockup.Unlock{Time: u.Time, Percent: u.Percent}
	}
	return schedule
}

func FromSchedule(schedule []lockup.Unlock) []UnlockEntry {
	entries := make([]UnlockEntry, len(schedule))
	for i, u := range schedule {
		entries[i] = UnlockEntry{Time: u.Time, Percent: u.Percent}
	}
	return entries
}

// ClaimWatermarkDocument records the last claim time of one asset under a
// time-watermarked lockup. Assets that never claimed have no document, which
// reads back as watermark 0.
type ClaimWatermarkDocument struct {
	ID            string `bson:"_id"` // lockup id + ":" + asset id
	LockupID      string `bson:"lockup_id"`
	Asset         string `bson:"asset"`
	LastClaimTime uint64 `bson:"last_claim_time"`
}

func ClaimWatermarkID(lockupID, asset string) string {
	return lockupID + ":" + asset
}
