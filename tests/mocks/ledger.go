package mocks

import (
	"context"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/mock"
)

// LedgerInterface is a mock of ledgerclient.LedgerInterface
type LedgerInterface struct {
	mock.Mock
}

func (m *LedgerInterface) Balance(ctx context.Context, holder, asset string) (math.Int, error) {
	args := m.Called(ctx, holder, asset)
	return args.Get(0).(math.Int), args.Error(1)
}

func (m *LedgerInterface) Transfer(ctx context.Context, from, to, asset string, amount math.Int) error {
	args := m.Called(ctx, from, to, asset, amount)
	return args.Error(0)
}

func (m *LedgerInterface) CurrentSequence(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}
