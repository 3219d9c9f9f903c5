package services

import (
	"context"
	"fmt"

	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/lockuplabs/token-lockup-service/internal/lockup"
	"github.com/lockuplabs/token-lockup-service/internal/types"
	"github.com/rs/zerolog/log"
)

// AddUnlock inserts or overwrites the unlock at the given sequence of a
// sequence-consuming lockup. Only the basis point range is checked here;
// monotonicity is inherent in the keyed map. Only the admin may do this.
func (s *Service) AddUnlock(ctx context.Context, caller, lockupID string, sequence uint64, percent uint32) error {
	doc, err := s.getLockup(ctx, lockupID, types.VariantSequenceConsuming)
	if err != nil {
		return err
	}
	if err := s.gate.RequireCaller(caller, doc.Admin); err != nil {
		return err
	}
	if err := lockup.ValidatePercent(percent); err != nil {
		return err
	}

	schedule := lockup.NewSequenceSchedule(doc.Schedule())
	schedule.Set(sequence, percent)
	if err := s.db.UpdateLockupSchedule(ctx, lockupID, model.FromSchedule(schedule.Entries())); err != nil {
		return fmt.Errorf("failed to persist unlock: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("lockup_id", lockupID).
		Uint64("sequence", sequence).
		Uint32("percent", percent).
		Msg("unlock set")

	return nil
}

// RemoveUnlock deletes the unlock at the given sequence. It errors when no
// such unlock exists. Only the admin may do this.
func (s *Service) RemoveUnlock(ctx context.Context, caller, lockupID string, sequence uint64) error {
	doc, err := s.getLockup(ctx, lockupID, types.VariantSequenceConsuming)
	if err != nil {
		return err
	}
	if err := s.gate.RequireCaller(caller, doc.Admin); err != nil {
		return err
	}

	schedule := lockup.NewSequenceSchedule(doc.Schedule())
	if err := schedule.Remove(sequence); err != nil {
		return err
	}
	if err := s.db.UpdateLockupSchedule(ctx, lockupID, model.FromSchedule(schedule.Entries())); err != nil {
		return fmt.Errorf("failed to remove unlock: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("lockup_id", lockupID).
		Uint64("sequence", sequence).
		Msg("unlock removed")

	return nil
}

// GetUnlock returns the percent stored at the given sequence, if any.
func (s *Service) GetUnlock(ctx context.Context, lockupID string, sequence uint64) (uint32, bool, error) {
	doc, err := s.getLockup(ctx, lockupID, types.VariantSequenceConsuming)
	if err != nil {
		return 0, false, err
	}

	percent, ok := lockup.NewSequenceSchedule(doc.Schedule()).Get(sequence)
	return percent, ok, nil
}
