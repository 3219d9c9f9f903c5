package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lockuplabs/token-lockup-service/internal/observability/metrics"
	"github.com/lockuplabs/token-lockup-service/internal/utils/poller"
	"github.com/rs/zerolog/log"
)

// StartLivenessExtender runs the periodic sweep that bumps the expiry of
// lockup documents nearing collection. The logic itself never depends on the
// sweep; it only keeps the store from garbage-collecting live state.
func (s *Service) StartLivenessExtender(ctx context.Context) {
	livenessPoller := poller.NewPoller(
		s.cfg.Poller.LivenessPollingInterval,
		s.extendLiveness,
	)
	go livenessPoller.Start(ctx)
}

func (s *Service) extendLiveness(ctx context.Context) error {
	start := time.Now()
	extended, err := s.db.ExtendLiveness(ctx, s.cfg.Poller.LivenessThreshold, s.cfg.Poller.LivenessBump)
	metrics.RecordPollerDuration(time.Since(start), "liveness_extender", err != nil)
	if err != nil {
		return fmt.Errorf("failed to extend lockup liveness: %w", err)
	}

	metrics.RecordExtendedLockups(extended)
	if extended > 0 {
		log.Ctx(ctx).Debug().
			Int64("extended", extended).
			Msg("extended lockup liveness")
	}
	return nil
}
