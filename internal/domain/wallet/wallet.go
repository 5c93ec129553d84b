package wallet

import (
	"context"
	"math/big"
	"slices"
	"time"

	"github.com/dotway-lab/questboard/internal/client/explorer"
	"github.com/dotway-lab/questboard/internal/common"
	"github.com/dotway-lab/questboard/pkg/substrate"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	defaultDecimals = 10
	defaultTimeout  = 10 * time.Second
)

type Assets struct {
	Free           decimal.Decimal `json:"free"`
	Locked         decimal.Decimal `json:"locked"`
	Reserved       decimal.Decimal `json:"reserved"`
	Staked         decimal.Decimal `json:"staked"`
	TransfersCount int             `json:"transfers_count"`
	IsStaking      bool            `json:"is_staking"`
	NominatorCount int             `json:"nominator_count"`
}

// Parts of Assets that may be synthesized on their own.
const (
	PartStaking   = "staking"
	PartTransfers = "transfers"
)

// Result tells whether the assets were read from the chain. Synthetic lists
// the parts replaced by synthetic data while the rest stayed live, Reason
// explains why.
type Result struct {
	Data      Assets   `json:"data"`
	Live      bool     `json:"live"`
	Synthetic []string `json:"synthetic,omitempty"`
	Reason    string   `json:"reason,omitempty"`
}

// IsSynthetic reports whether part was not read from the chain.
func (r Result) IsSynthetic(part string) bool {
	return !r.Live || slices.Contains(r.Synthetic, part)
}

func (r *Result) substitute(part, reason string) {
	r.Synthetic = append(r.Synthetic, part)
	if r.Reason != "" {
		reason = r.Reason + ", " + reason
	}
	r.Reason = reason
	common.PromCounters[common.WalletLookupDegradedTotal].WithLabelValues(part).Inc()
}

type Reader interface {
	Lookup(ctx context.Context, address string) Result
}

type lookup struct {
	chain    substrate.Client
	explorer explorer.Client
}

// NewLookup returns a Reader reading balances and staking from the chain and
// the extrinsic count from the explorer. Both clients are optional.
func NewLookup(chain substrate.Client, explorerClient explorer.Client) *lookup {
	return &lookup{chain: chain, explorer: explorerClient}
}

// Lookup never fails. When the chain cannot be read in time, deterministic
// synthetic assets derived from the address are returned instead.
func (l *lookup) Lookup(ctx context.Context, address string) Result {
	if l.chain == nil {
		return degraded(ctx, address, "chain is not configured")
	}

	pubkey, _, err := substrate.DecodeSS58(address)
	if err != nil {
		return degraded(ctx, address, "invalid address")
	}

	cfg := xcontext.Configs(ctx).Chain
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	decimals := cfg.Decimals
	if decimals <= 0 {
		decimals = defaultDecimals
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var info *substrate.AccountInfo
	var nominations *substrate.Nominations
	var staked *big.Int
	var count int
	var stakingErr, explorerErr error

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		info, err = l.chain.AccountInfo(egCtx, pubkey)
		return err
	})

	eg.Go(func() error {
		nominations, staked, stakingErr = l.staking(egCtx, pubkey)
		return nil
	})

	eg.Go(func() error {
		if l.explorer == nil {
			return nil
		}

		count, explorerErr = l.explorer.CountExtrinsics(egCtx, address)
		return nil
	})

	if err := eg.Wait(); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot read account %s from chain: %v", address, err)
		return degraded(ctx, address, "chain is unavailable")
	}

	result := Result{
		Live: true,
		Data: Assets{
			Free:           toUnit(info.Free, decimals),
			Locked:         toUnit(info.Frozen, decimals),
			Reserved:       toUnit(info.Reserved, decimals),
			Staked:         decimal.Zero,
			TransfersCount: count,
		},
	}

	if stakingErr != nil {
		xcontext.Logger(ctx).Debugf("Cannot read staking of %s: %v", address, stakingErr)

		fake := synthetic(address)
		result.Data.IsStaking = fake.IsStaking
		result.Data.NominatorCount = fake.NominatorCount
		result.Data.Staked = fake.Staked
		result.substitute(PartStaking, "staking is unavailable")
	} else {
		if nominations != nil && len(nominations.Targets) > 0 {
			result.Data.IsStaking = true
			result.Data.NominatorCount = len(nominations.Targets)
		}

		if staked != nil {
			result.Data.Staked = toUnit(staked, decimals)
		}
	}

	if l.explorer == nil || explorerErr != nil {
		if explorerErr != nil {
			xcontext.Logger(ctx).Debugf("Cannot read extrinsics of %s: %v", address, explorerErr)
		}

		result.Data.TransfersCount = synthetic(address).TransfersCount
		result.substitute(PartTransfers, "explorer is unavailable")
	}

	return result
}

func (l *lookup) staking(
	ctx context.Context, stash substrate.PublicKey,
) (*substrate.Nominations, *big.Int, error) {
	nominations, err := l.chain.Nominators(ctx, stash)
	if err != nil {
		return nil, nil, err
	}

	if len(nominations.Targets) == 0 {
		return nominations, nil, nil
	}

	controller, err := l.chain.Bonded(ctx, stash)
	if err != nil || controller == nil {
		return nominations, nil, err
	}

	ledger, err := l.chain.Ledger(ctx, *controller)
	if err != nil || ledger == nil {
		return nominations, nil, err
	}

	return nominations, ledger.Active, nil
}

func toUnit(v *big.Int, decimals int32) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(v, -decimals)
}

func degraded(ctx context.Context, address, reason string) Result {
	common.PromCounters[common.WalletLookupDegradedTotal].WithLabelValues(reason).Inc()
	xcontext.Logger(ctx).Debugf("Use synthetic assets for %s: %s", address, reason)

	return Result{Data: synthetic(address), Live: false, Reason: reason}
}
