package ledgerclient

import (
	"context"
	"time"

	"cosmossdk.io/math"
	"github.com/lockuplabs/token-lockup-service/internal/observability/metrics"
)

type ledgerClientWithMetrics struct {
	ledger LedgerInterface
}

func NewLedgerClientWithMetrics(ledger LedgerInterface) *ledgerClientWithMetrics {
	return &ledgerClientWithMetrics{ledger: ledger}
}

func (l *ledgerClientWithMetrics) Balance(ctx context.Context, holder, asset string) (math.Int, error) {
	return runLedgerClientMethodWithMetrics("Balance", func() (math.Int, error) {
		return l.ledger.Balance(ctx, holder, asset)
	})
}

func (l *ledgerClientWithMetrics) Transfer(ctx context.Context, from, to, asset string, amount math.Int) error {
	_, err := runLedgerClientMethodWithMetrics("Transfer", func() (struct{}, error) {
		return struct{}{}, l.ledger.Transfer(ctx, from, to, asset, amount)
	})
	return err
}

func (l *ledgerClientWithMetrics) CurrentSequence(ctx context.Context) (uint64, error) {
	return runLedgerClientMethodWithMetrics("CurrentSequence", func() (uint64, error) {
		return l.ledger.CurrentSequence(ctx)
	})
}

func runLedgerClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordLedgerClientLatency(duration, method, err != nil)
	return v, err
}
