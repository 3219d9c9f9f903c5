package services

import (
	"context"
	"errors"
	"time"

	"github.com/lockuplabs/token-lockup-service/internal/auth"
	"github.com/lockuplabs/token-lockup-service/internal/clients/ledgerclient"
	"github.com/lockuplabs/token-lockup-service/internal/config"
	"github.com/lockuplabs/token-lockup-service/internal/db"
	"github.com/lockuplabs/token-lockup-service/internal/db/model"
	"github.com/lockuplabs/token-lockup-service/internal/queue"
	"github.com/lockuplabs/token-lockup-service/internal/types"
)

// ErrVariantMismatch is returned when an operation is invoked against a
// lockup of the other accounting variant.
var ErrVariantMismatch = errors.New("operation does not match lockup variant")

// ErrInvalidArgument is returned when a request carries a malformed or
// missing field.
var ErrInvalidArgument = errors.New("invalid argument")

type Service struct {
	cfg          *config.Config
	db           db.DbInterface
	ledger       ledgerclient.LedgerInterface
	queueManager *queue.QueueManager
	gate         auth.Gate
	now          func() time.Time
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	ledger ledgerclient.LedgerInterface,
	qm *queue.QueueManager,
	gate auth.Gate,
) *Service {
	return &Service{
		cfg:          cfg,
		db:           db,
		ledger:       ledger,
		queueManager: qm,
		gate:         gate,
		now:          time.Now,
	}
}

// StartBackgroundProcesses launches the liveness-extension poller.
func (s *Service) StartBackgroundProcesses(ctx context.Context) {
	s.StartLivenessExtender(ctx)
}

// getLockup loads a lockup and checks it matches the expected variant.
func (s *Service) getLockup(ctx context.Context, id string, variant types.LockupVariant) (*model.LockupDocument, error) {
	doc, err := s.db.GetLockup(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Variant != variant {
		return nil, ErrVariantMismatch
	}
	return doc, nil
}
