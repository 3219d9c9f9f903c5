package lockup

import "fmt"

// ValidateSchedule checks a candidate schedule for a time-watermarked lockup.
// The candidate must be non-empty, hold at most MaxUnlocks entries, end with a
// 100% unlock and be strictly ascending in time with every percent in
// (0, 10000]. When a previous schedule exists, any of its unlocks whose time
// has already passed must appear unchanged at the same position in the
// candidate, and the replacement is rejected outright once the previous
// schedule is fully unlocked.
//
// The validator is pure: it only reads its arguments and never touches
// storage or transfers.
func ValidateSchedule(candidate, previous []Unlock, now uint64) error {
	if len(candidate) == 0 {
		return fmt.Errorf("%w: schedule is empty", ErrInvalidSchedule)
	}
	if len(candidate) > MaxUnlocks {
		return fmt.Errorf("%w: %d unlocks exceeds the maximum of %d", ErrInvalidSchedule, len(candidate), MaxUnlocks)
	}
	if candidate[len(candidate)-1].Percent != FullPercent {
		return fmt.Errorf("%w: final unlock must release 100%%", ErrInvalidSchedule)
	}

	if len(previous) > 0 && previous[len(previous)-1].Time <= now {
		return fmt.Errorf("%w: schedule is frozen once fully unlocked", ErrAlreadyUnlocked)
	}

	var lastTime uint64
	for i, u := range candidate {
		if u.Percent == 0 || u.Percent > FullPercent {
			return fmt.Errorf("%w: unlock %d has percent %d", ErrInvalidSchedule, i, u.Percent)
		}
		if i < len(previous) {
			if prev := previous[i]; prev.Time <= now && prev != u {
				return fmt.Errorf("%w: unlock %d has already passed and cannot change", ErrAlreadyUnlocked, i)
			}
		}
		if u.Time <= lastTime {
			return fmt.Errorf("%w: unlock times must be strictly ascending", ErrInvalidSchedule)
		}
		lastTime = u.Time
	}

	return nil
}

// ValidatePercent checks a single unlock percent for the sequence-consuming
// variant, where individual entries are edited by key and only the basis
// point range is enforced.
func ValidatePercent(percent uint32) error {
	if percent > FullPercent {
		return fmt.Errorf("%w: percent %d exceeds %d", ErrInvalidSchedule, percent, FullPercent)
	}
	return nil
}
