package lockup

import "errors"

var (
	// ErrAlreadyInitialized is returned when a lockup is initialized twice.
	ErrAlreadyInitialized = errors.New("lockup already initialized")

	// ErrInvalidSchedule is returned by the schedule validator when a
	// candidate schedule is empty, oversized, carries a bad percent or is
	// not strictly ascending.
	ErrInvalidSchedule = errors.New("invalid unlock schedule")

	// ErrAlreadyUnlocked is returned when a schedule replacement would alter
	// an unlock that has already passed, or when the existing schedule is
	// already fully unlocked and therefore frozen.
	ErrAlreadyUnlocked = errors.New("schedule already unlocked")

	// ErrUnauthorized is returned when the caller does not match the
	// required principal.
	ErrUnauthorized = errors.New("caller is not authorized")

	// ErrInvalidUnlockKey is returned when a claim or removal references an
	// unlock that does not exist or has not been reached yet.
	ErrInvalidUnlockKey = errors.New("no unlock at the given key")
)
