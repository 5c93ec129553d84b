package wallet

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/dotway-lab/questboard/pkg/substrate"
	"github.com/dotway-lab/questboard/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const aliceAddress = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"

func dot(planck int64) *big.Int {
	return big.NewInt(planck)
}

func TestLookup_Live(t *testing.T) {
	controller := substrate.PublicKey{9}
	chain := &testutil.MockChainClient{
		AccountInfoFunc: func(ctx context.Context, account substrate.PublicKey) (*substrate.AccountInfo, error) {
			return &substrate.AccountInfo{
				Free:     dot(123_456_000_000),
				Reserved: dot(10_000_000_000),
				Frozen:   dot(5_000_000_000),
			}, nil
		},
		NominatorsFunc: func(ctx context.Context, stash substrate.PublicKey) (*substrate.Nominations, error) {
			return &substrate.Nominations{Targets: make([]substrate.PublicKey, 3)}, nil
		},
		BondedFunc: func(ctx context.Context, stash substrate.PublicKey) (*substrate.PublicKey, error) {
			return &controller, nil
		},
		LedgerFunc: func(ctx context.Context, c substrate.PublicKey) (*substrate.StakingLedger, error) {
			require.Equal(t, controller, c)
			return &substrate.StakingLedger{Active: dot(200_000_000_000)}, nil
		},
	}
	explorer := &testutil.MockExplorer{
		CountExtrinsicsFunc: func(ctx context.Context, address string) (int, error) {
			return 17, nil
		},
	}

	result := NewLookup(chain, explorer).Lookup(testutil.MockContext(), aliceAddress)
	require.True(t, result.Live)
	require.Empty(t, result.Reason)
	require.True(t, decimal.RequireFromString("12.3456").Equal(result.Data.Free))
	require.True(t, decimal.RequireFromString("1").Equal(result.Data.Reserved))
	require.True(t, decimal.RequireFromString("0.5").Equal(result.Data.Locked))
	require.True(t, decimal.RequireFromString("20").Equal(result.Data.Staked))
	require.True(t, result.Data.IsStaking)
	require.Equal(t, 3, result.Data.NominatorCount)
	require.Equal(t, 17, result.Data.TransfersCount)
}

func TestLookup_StakingFailure(t *testing.T) {
	testCases := []struct {
		name  string
		chain *testutil.MockChainClient
	}{
		{
			name: "nominators",
			chain: &testutil.MockChainClient{
				NominatorsFunc: func(ctx context.Context, stash substrate.PublicKey) (*substrate.Nominations, error) {
					return nil, errors.New("decode error")
				},
			},
		},
		{
			name: "ledger",
			chain: &testutil.MockChainClient{
				NominatorsFunc: func(ctx context.Context, stash substrate.PublicKey) (*substrate.Nominations, error) {
					return &substrate.Nominations{Targets: make([]substrate.PublicKey, 2)}, nil
				},
				BondedFunc: func(ctx context.Context, stash substrate.PublicKey) (*substrate.PublicKey, error) {
					return &stash, nil
				},
				LedgerFunc: func(ctx context.Context, c substrate.PublicKey) (*substrate.StakingLedger, error) {
					return nil, errors.New("connection reset")
				},
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			explorer := &testutil.MockExplorer{
				CountExtrinsicsFunc: func(ctx context.Context, address string) (int, error) {
					return 1, nil
				},
			}

			result := NewLookup(tt.chain, explorer).Lookup(testutil.MockContext(), aliceAddress)

			// Balances and transfers stay live, staking is synthesized.
			require.True(t, result.Live)
			require.Equal(t, []string{PartStaking}, result.Synthetic)
			require.NotEmpty(t, result.Reason)
			require.True(t, result.IsSynthetic(PartStaking))
			require.False(t, result.IsSynthetic(PartTransfers))
			require.Equal(t, 1, result.Data.TransfersCount)

			fake := synthetic(aliceAddress)
			require.Equal(t, fake.IsStaking, result.Data.IsStaking)
			require.Equal(t, fake.NominatorCount, result.Data.NominatorCount)
			require.True(t, fake.Staked.Equal(result.Data.Staked))
		})
	}
}

func TestLookup_ExplorerFailure(t *testing.T) {
	result := NewLookup(&testutil.MockChainClient{}, &testutil.MockExplorer{}).
		Lookup(testutil.MockContext(), aliceAddress)

	require.True(t, result.Live)
	require.NotEmpty(t, result.Reason)
	require.Equal(t, []string{PartTransfers}, result.Synthetic)
	require.False(t, result.IsSynthetic(PartStaking))
	require.Equal(t, synthetic(aliceAddress).TransfersCount, result.Data.TransfersCount)
	require.True(t, result.Data.Free.IsZero())
}

func TestLookup_Degraded(t *testing.T) {
	placeholder := "1" + "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVW"

	testCases := []struct {
		name    string
		chain   substrate.Client
		address string
	}{
		{
			name:    "no chain",
			chain:   nil,
			address: aliceAddress,
		},
		{
			name:    "placeholder address",
			chain:   &testutil.MockChainClient{},
			address: placeholder,
		},
		{
			name: "chain error",
			chain: &testutil.MockChainClient{
				AccountInfoFunc: func(ctx context.Context, account substrate.PublicKey) (*substrate.AccountInfo, error) {
					return nil, errors.New("connection refused")
				},
			},
			address: aliceAddress,
		},
		{
			name: "chain timeout",
			chain: &testutil.MockChainClient{
				AccountInfoFunc: func(ctx context.Context, account substrate.PublicKey) (*substrate.AccountInfo, error) {
					select {
					case <-ctx.Done():
						return nil, ctx.Err()
					case <-time.After(10 * time.Second):
						return nil, errors.New("too late")
					}
				},
			},
			address: aliceAddress,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			result := NewLookup(tt.chain, nil).Lookup(testutil.MockContext(), tt.address)
			require.False(t, result.Live)
			require.NotEmpty(t, result.Reason)
			require.Equal(t, synthetic(tt.address), result.Data)
			require.True(t, result.IsSynthetic(PartStaking))
			require.True(t, result.IsSynthetic(PartTransfers))
		})
	}
}

func TestSynthetic(t *testing.T) {
	a := synthetic(aliceAddress)
	require.Equal(t, a, synthetic(aliceAddress))

	require.True(t, a.Free.GreaterThanOrEqual(decimal.NewFromInt(100)))
	require.True(t, a.Free.LessThanOrEqual(decimal.NewFromInt(1000)))
	require.True(t, a.Locked.GreaterThanOrEqual(decimal.NewFromInt(5)))
	require.GreaterOrEqual(t, a.TransfersCount, 10)
	require.Less(t, a.TransfersCount, 100)
	require.GreaterOrEqual(t, a.NominatorCount, 1)
	require.LessOrEqual(t, a.NominatorCount, 4)
}
