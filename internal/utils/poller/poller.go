package poller

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Poller runs a sweep function on a fixed interval until stopped. The first
// sweep runs immediately so a freshly started service does not wait a full
// interval before its first pass.
type Poller struct {
	interval time.Duration
	quit     chan struct{}
	sweep    func(ctx context.Context) error
}

func NewPoller(interval time.Duration, sweep func(ctx context.Context) error) *Poller {
	return &Poller{
		interval: interval,
		quit:     make(chan struct{}),
		sweep:    sweep,
	}
}

func (p *Poller) Start(ctx context.Context) {
	log.Ctx(ctx).Info().
		Dur("interval", p.interval).
		Msg("starting poller")

	p.runSweep(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.runSweep(ctx)
		case <-ctx.Done():
			log.Ctx(ctx).Info().Msg("poller stopped, context cancelled")
			return
		case <-p.quit:
			log.Ctx(ctx).Info().Msg("poller stopped")
			return
		}
	}
}

func (p *Poller) runSweep(ctx context.Context) {
	if err := p.sweep(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("sweep failed")
	}
}

func (p *Poller) Stop() {
	close(p.quit)
}
