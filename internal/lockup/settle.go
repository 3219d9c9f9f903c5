package lockup

import (
	"cosmossdk.io/math"
)

var basisPoints = math.NewInt(int64(FullPercent))

// ApplyPercents applies each percent in order to the remaining balance,
// returning the accumulated claimable amount and the balance left behind.
// Each release is floored integer division, so the total claimed may fall
// short of the exact fraction by at most one smallest unit per percent
// applied.
func ApplyPercents(balance math.Int, percents []uint32) (claimed, remaining math.Int) {
	claimed = math.ZeroInt()
	remaining = balance
	for _, percent := range percents {
		release := remaining.Mul(math.NewInt(int64(percent))).Quo(basisPoints)
		remaining = remaining.Sub(release)
		claimed = claimed.Add(release)
	}
	return claimed, remaining
}
