package verification

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/dotway-lab/questboard/internal/domain/catalog"
	"github.com/dotway-lab/questboard/internal/domain/wallet"
	"github.com/dotway-lab/questboard/pkg/testutil"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type fixedRandom struct {
	mutex  sync.Mutex
	values []float64
	next   int
}

func (r *fixedRandom) Float64() float64 {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

type stubWallet struct {
	lookupFunc func(ctx context.Context, address string) wallet.Result
}

func (s *stubWallet) Lookup(ctx context.Context, address string) wallet.Result {
	if s.lookupFunc != nil {
		return s.lookupFunc(ctx, address)
	}

	return wallet.Result{Live: false, Reason: "no chain configured"}
}

func newTestRouter(t *testing.T, values []float64, walletReader wallet.Reader) *Router {
	c, err := catalog.Default()
	require.NoError(t, err)

	if walletReader == nil {
		walletReader = &stubWallet{}
	}

	factory := NewFactory(&fixedRandom{values: values}, walletReader)
	router, err := NewRouter(testutil.MockContext(), factory, c.Quests())
	require.NoError(t, err)
	return router
}

func TestRouter_Dispatch(t *testing.T) {
	ctx := testutil.MockContextWithWallet("1abc")

	// Every draw is 0.5: quests with a probability above 0.5 pass.
	router := newTestRouter(t, []float64{0.5}, nil)

	testCases := []struct {
		questID  string
		category string
		want     Result
	}{
		{"social-1", "social", Result{true, "Verified! Thanks for following us on X!", false}},
		{"social-2", "social", Result{true, "Welcome to the Polkadot Discord community!", false}},
		{"social-3", "social", Result{false, "Verification not implemented for this quest", false}},
		{"onchain-1", "onchain", Result{true, "Transaction verified on Polkadot network!", false}},
		{"onchain-2", "onchain", Result{false, "No staking detected. Please stake your DOT first.", true}},
		{"onchain-3", "onchain", Result{false, "No votes found. Please vote on an active referendum.", true}},
		{"community-1", "community", Result{true, "Referral verified! Your friend has joined DotWay.", false}},
		{"community-2", "community", Result{false, "Verification not implemented for this quest", false}},
		{"learning-1", "learning", Result{true, "Manual verification completed", false}},
		{"learning-9", "learning", Result{true, "Manual verification completed", false}},
		{"unknown-1", "unknown-category", Result{false, "Unknown quest category", false}},
		// The quest exists but in another category.
		{"social-1", "community", Result{false, "Verification not implemented for this quest", false}},
	}

	for _, tt := range testCases {
		t.Run(tt.questID+"/"+tt.category, func(t *testing.T) {
			require.Equal(t, tt.want, router.Verify(ctx, tt.questID, tt.category))
		})
	}
}

func TestRouter_OnchainNeedsWallet(t *testing.T) {
	router := newTestRouter(t, []float64{0}, nil)

	result := router.Verify(testutil.MockContext(), "onchain-1", "onchain")
	require.False(t, result.Success)
	require.Equal(t, "Wallet not connected", result.Message)

	result = router.Verify(testutil.MockContext(), "social-1", "social")
	require.True(t, result.Success)
}

func TestRouter_LiveChecks(t *testing.T) {
	ctx := testutil.MockContextWithWallet("1abc")

	live := &stubWallet{
		lookupFunc: func(ctx context.Context, address string) wallet.Result {
			require.Equal(t, "1abc", address)
			return wallet.Result{Live: true, Data: wallet.Assets{TransfersCount: 0, IsStaking: true}}
		},
	}

	// The draw would always pass, the live data decides.
	router := newTestRouter(t, []float64{0}, live)

	result := router.Verify(ctx, "onchain-1", "onchain")
	require.False(t, result.Success)
	require.Equal(t, "No recent transactions found. Please make a transaction first.", result.Message)
	require.True(t, result.Retryable)

	result = router.Verify(ctx, "onchain-2", "onchain")
	require.True(t, result.Success)
	require.Equal(t, "Staking verified! You're now earning rewards.", result.Message)
}

func TestRouter_SyntheticStakingUsesDraw(t *testing.T) {
	ctx := testutil.MockContextWithWallet("1abc")

	reader := &stubWallet{
		lookupFunc: func(ctx context.Context, address string) wallet.Result {
			return wallet.Result{
				Live:      true,
				Synthetic: []string{wallet.PartStaking},
				Reason:    "staking is unavailable",
				Data:      wallet.Assets{TransfersCount: 0, IsStaking: false},
			}
		},
	}

	// The draw always passes.
	router := newTestRouter(t, []float64{0}, reader)

	for i := 0; i < 3; i++ {
		result := router.Verify(ctx, "onchain-2", "onchain")
		require.True(t, result.Success)
	}

	// The transfer count is still live.
	result := router.Verify(ctx, "onchain-1", "onchain")
	require.False(t, result.Success)
	require.Equal(t, "No recent transactions found. Please make a transaction first.", result.Message)
}

func TestRouter_Delay(t *testing.T) {
	router := newTestRouter(t, []float64{0}, nil)

	ctx := testutil.MockContextWithWallet("1abc")
	cfg := xcontext.Configs(ctx)
	cfg.Quest.VerificationDelay = 50 * time.Millisecond
	ctx = xcontext.WithConfigs(ctx, cfg)

	start := time.Now()
	result := router.Verify(ctx, "social-1", "social")
	require.True(t, result.Success)
	require.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)

	// Learning quests are never delayed.
	start = time.Now()
	router.Verify(ctx, "learning-1", "learning")
	require.Less(t, time.Since(start), 50*time.Millisecond)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	result = router.Verify(cancelled, "social-1", "social")
	require.False(t, result.Success)
	require.True(t, result.Retryable)
	require.Equal(t, "Verification failed. Please try again.", result.Message)
}

func TestFactory_LoadProcessor(t *testing.T) {
	factory := NewFactory(NewRandom(rand.NewSource(1)), &stubWallet{})
	ctx := testutil.MockContext()

	testCases := []struct {
		name    string
		data    map[string]any
		wantErr bool
	}{
		{
			name: "happy case",
			data: map[string]any{
				"processor": "simulated", "probability": 0.5,
				"success_message": "ok", "failure_message": "ko",
			},
		},
		{
			name:    "unknown processor",
			data:    map[string]any{"processor": "oracle"},
			wantErr: true,
		},
		{
			name: "invalid probability",
			data: map[string]any{
				"processor": "simulated", "probability": 1.5,
				"success_message": "ok", "failure_message": "ko",
			},
			wantErr: true,
		},
		{
			name:    "missing messages",
			data:    map[string]any{"processor": "staking", "probability": 0.5},
			wantErr: true,
		},
		{
			name:    "invalid field type",
			data:    map[string]any{"processor": "simulated", "probability": "high"},
			wantErr: true,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			p, err := factory.LoadProcessor(ctx, tt.data)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, p)
		})
	}
}

func TestSimulatedProcessor_Distribution(t *testing.T) {
	p, err := newSimulatedProcessor(context.Background(), map[string]any{
		"probability": 0.7, "success_message": "ok", "failure_message": "ko",
	}, NewRandom(rand.NewSource(42)))
	require.NoError(t, err)

	success := 0
	for i := 0; i < 10000; i++ {
		if p.Verify(context.Background()).Success {
			success++
		}
	}

	require.InDelta(t, 7000, success, 300)
}
