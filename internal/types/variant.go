package types

import "fmt"

// Enum values for the lockup accounting variant
type LockupVariant string

const (
	// VariantTimeWatermarked tracks claim progress with one last-claim-time
	// watermark per asset; the schedule itself never changes on claim.
	VariantTimeWatermarked LockupVariant = "TIME_WATERMARKED"
	// VariantSequenceConsuming tracks claim progress by destructively
	// removing the claimed prefix from a shared sequence → percent map.
	VariantSequenceConsuming LockupVariant = "SEQUENCE_CONSUMING"
)

func (v LockupVariant) String() string {
	return string(v)
}

func (v LockupVariant) Validate() error {
	switch v {
	case VariantTimeWatermarked, VariantSequenceConsuming:
		return nil
	default:
		return fmt.Errorf("unknown lockup variant %q", string(v))
	}
}
