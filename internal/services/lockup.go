package services

import (
	"context"
	"fmt"

	"github.com/lockuplabs/token-lockup-service/internal/db"
	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/lockuplabs/token-lockup-service/internal/lockup"
	"github.com/lockuplabs/token-lockup-service/internal/types"
	"github.com/rs/zerolog/log"
)

// Initialize creates a lockup with its admin, owner and initial schedule.
// A lockup id can be initialized exactly once.
func (s *Service) Initialize(
	ctx context.Context,
	lockupID string,
	variant types.LockupVariant,
	admin, owner string,
	schedule []lockup.Unlock,
) error {
	if err := variant.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidArgument, err)
	}
	if admin == "" || owner == "" {
		return fmt.Errorf("%w: admin and owner principals are required", ErrInvalidArgument)
	}

	switch variant {
	case types.VariantTimeWatermarked:
		now := uint64(s.now().Unix())
		if err := lockup.ValidateSchedule(schedule, nil, now); err != nil {
			return err
		}
	case types.VariantSequenceConsuming:
		// individual entries only need a valid basis point range; the map
		// collapses duplicates
		for _, u := range schedule {
			if err := lockup.ValidatePercent(u.Percent); err != nil {
				return err
			}
		}
		schedule = lockup.NewSequenceSchedule(schedule).Entries()
	}

	doc := model.NewLockupDocument(
		lockupID, variant, admin, owner, schedule,
		s.now(), s.cfg.Poller.LivenessBump,
	)
	if err := s.db.CreateLockup(ctx, doc); err != nil {
		if db.IsDuplicateKeyError(err) {
			return lockup.ErrAlreadyInitialized
		}
		return fmt.Errorf("failed to create lockup: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("lockup_id", lockupID).
		Stringer("variant", variant).
		Int("unlocks", len(schedule)).
		Msg("lockup initialized")

	return nil
}

// GetLockup returns the stored lockup record.
func (s *Service) GetLockup(ctx context.Context, lockupID string) (*model.LockupDocument, error) {
	return s.db.GetLockup(ctx, lockupID)
}

// GetAdmin returns the admin principal of the lockup.
func (s *Service) GetAdmin(ctx context.Context, lockupID string) (string, error) {
	doc, err := s.db.GetLockup(ctx, lockupID)
	if err != nil {
		return "", err
	}
	return doc.Admin, nil
}

// GetOwner returns the owner principal of the lockup.
func (s *Service) GetOwner(ctx context.Context, lockupID string) (string, error) {
	doc, err := s.db.GetLockup(ctx, lockupID)
	if err != nil {
		return "", err
	}
	return doc.Owner, nil
}

// UpdateAdmin hands the admin role to a new principal. Only the current
// admin may do this.
func (s *Service) UpdateAdmin(ctx context.Context, caller, lockupID, newAdmin string) error {
	doc, err := s.db.GetLockup(ctx, lockupID)
	if err != nil {
		return err
	}
	if err := s.gate.RequireCaller(caller, doc.Admin); err != nil {
		return err
	}
	if newAdmin == "" {
		return fmt.Errorf("%w: admin principal is required", ErrInvalidArgument)
	}
	return s.db.UpdateLockupAdmin(ctx, lockupID, newAdmin)
}

// UpdateOwner points future claims and transfers at a new owner principal.
// Only the admin may do this.
func (s *Service) UpdateOwner(ctx context.Context, caller, lockupID, newOwner string) error {
	doc, err := s.db.GetLockup(ctx, lockupID)
	if err != nil {
		return err
	}
	if err := s.gate.RequireCaller(caller, doc.Admin); err != nil {
		return err
	}
	if newOwner == "" {
		return fmt.Errorf("%w: owner principal is required", ErrInvalidArgument)
	}
	return s.db.UpdateLockupOwner(ctx, lockupID, newOwner)
}
