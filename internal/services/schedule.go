package services

import (
	"context"
	"fmt"

	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/lockuplabs/token-lockup-service/internal/lockup"
	"github.com/lockuplabs/token-lockup-service/internal/observability/metrics"
	"github.com/lockuplabs/token-lockup-service/internal/queue"
	"github.com/lockuplabs/token-lockup-service/internal/types"
	"github.com/rs/zerolog/log"
)

// GetSchedule returns the remaining unlock schedule of the lockup.
func (s *Service) GetSchedule(ctx context.Context, lockupID string) ([]lockup.Unlock, error) {
	doc, err := s.db.GetLockup(ctx, lockupID)
	if err != nil {
		return nil, err
	}
	return doc.Schedule(), nil
}

// SetSchedule replaces the schedule of a time-watermarked lockup. The new
// schedule must keep every unlock that has already passed unchanged, and
// replacement is rejected once the old schedule is fully unlocked. Only the
// admin may do this.
func (s *Service) SetSchedule(ctx context.Context, caller, lockupID string, newSchedule []lockup.Unlock) error {
	doc, err := s.getLockup(ctx, lockupID, types.VariantTimeWatermarked)
	if err != nil {
		return err
	}
	if err := s.gate.RequireCaller(caller, doc.Admin); err != nil {
		return err
	}

	now := uint64(s.now().Unix())
	if err := lockup.ValidateSchedule(newSchedule, doc.Schedule(), now); err != nil {
		return err
	}

	if err := s.db.UpdateLockupSchedule(ctx, lockupID, model.FromSchedule(newSchedule)); err != nil {
		return fmt.Errorf("failed to persist new schedule: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("lockup_id", lockupID).
		Int("unlocks", len(newSchedule)).
		Msg("schedule replaced")

	s.emitScheduleUpdated(ctx, &queue.ScheduleUpdatedEvent{
		LockupID: lockupID,
		Unlocks:  len(newSchedule),
	})

	return nil
}

func (s *Service) emitScheduleUpdated(ctx context.Context, event *queue.ScheduleUpdatedEvent) {
	if s.queueManager == nil {
		return
	}
	if err := s.queueManager.PublishScheduleUpdated(ctx, event); err != nil {
		// events are best effort
		log.Ctx(ctx).Error().Err(err).
			Str("lockup_id", event.LockupID).
			Msg("failed to publish schedule updated event")
		metrics.RecordQueueSendError()
	}
}
