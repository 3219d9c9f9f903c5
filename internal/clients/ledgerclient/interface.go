package ledgerclient

import (
	"context"

	"cosmossdk.io/math"
)

// LedgerInterface is the transfer gateway of the lockup service: it reports
// live custody balances and executes transfers on the external ledger.
// Transfers are all-or-nothing per call.
type LedgerInterface interface {
	Balance(ctx context.Context, holder, asset string) (math.Int, error)
	Transfer(ctx context.Context, from, to, asset string, amount math.Int) error
	CurrentSequence(ctx context.Context) (uint64, error)
}
