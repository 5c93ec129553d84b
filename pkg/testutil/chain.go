package testutil

import (
	"context"
	"errors"
	"math/big"

	"github.com/dotway-lab/questboard/pkg/substrate"
)

type MockChainClient struct {
	AccountInfoFunc func(ctx context.Context, account substrate.PublicKey) (*substrate.AccountInfo, error)
	NominatorsFunc  func(ctx context.Context, stash substrate.PublicKey) (*substrate.Nominations, error)
	BondedFunc      func(ctx context.Context, stash substrate.PublicKey) (*substrate.PublicKey, error)
	LedgerFunc      func(ctx context.Context, controller substrate.PublicKey) (*substrate.StakingLedger, error)
}

func (m *MockChainClient) AccountInfo(ctx context.Context, account substrate.PublicKey) (*substrate.AccountInfo, error) {
	if m.AccountInfoFunc != nil {
		return m.AccountInfoFunc(ctx, account)
	}

	return &substrate.AccountInfo{Free: new(big.Int), Reserved: new(big.Int), Frozen: new(big.Int)}, nil
}

func (m *MockChainClient) Nominators(ctx context.Context, stash substrate.PublicKey) (*substrate.Nominations, error) {
	if m.NominatorsFunc != nil {
		return m.NominatorsFunc(ctx, stash)
	}

	return &substrate.Nominations{}, nil
}

func (m *MockChainClient) Bonded(ctx context.Context, stash substrate.PublicKey) (*substrate.PublicKey, error) {
	if m.BondedFunc != nil {
		return m.BondedFunc(ctx, stash)
	}

	return nil, nil
}

func (m *MockChainClient) Ledger(ctx context.Context, controller substrate.PublicKey) (*substrate.StakingLedger, error) {
	if m.LedgerFunc != nil {
		return m.LedgerFunc(ctx, controller)
	}

	return nil, nil
}

type MockExplorer struct {
	CountExtrinsicsFunc func(ctx context.Context, address string) (int, error)
}

func (m *MockExplorer) CountExtrinsics(ctx context.Context, address string) (int, error) {
	if m.CountExtrinsicsFunc != nil {
		return m.CountExtrinsicsFunc(ctx, address)
	}

	return 0, errors.New("not implemented")
}
