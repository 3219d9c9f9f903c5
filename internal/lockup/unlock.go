package lockup

// FullPercent is 100% expressed in basis points.
const FullPercent uint32 = 10000

// MaxUnlocks is the maximum number of unlocks a schedule may hold.
const MaxUnlocks = 48

// Unlock marks the point at which a portion of the remaining balance of a
// custodied asset becomes claimable. Time is either a unix timestamp
// (time-watermarked lockups) or a ledger sequence number (sequence-consuming
// lockups). Percent is the share of the balance left over from all earlier
// unlocks, in basis points.
type Unlock struct {
	Time    uint64
	Percent uint32
}

// FullyUnlocked reports whether the schedule's final unlock has been reached,
// after which the full remaining balance is claimable in one step.
func FullyUnlocked(schedule []Unlock, now uint64) bool {
	if len(schedule) == 0 {
		return false
	}
	return schedule[len(schedule)-1].Time <= now
}

// DuePercents collects the percents of all unlocks past the watermark and at
// or before now, in schedule order. Unlocks already covered by the watermark
// or still in the future contribute nothing.
func DuePercents(schedule []Unlock, watermark, now uint64) []uint32 {
	var due []uint32
	for _, u := range schedule {
		if u.Time > watermark && u.Time <= now {
			due = append(due, u.Percent)
		}
	}
	return due
}
