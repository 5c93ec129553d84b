package verification

import (
	"context"

	"github.com/dotway-lab/questboard/internal/domain/wallet"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/mitchellh/mapstructure"
)

// Simulated Processor
type simulatedProcessor struct {
	Probability    float64 `mapstructure:"probability"`
	SuccessMessage string  `mapstructure:"success_message"`
	FailureMessage string  `mapstructure:"failure_message"`

	random Random
}

func newSimulatedProcessor(ctx context.Context, data map[string]any, random Random) (*simulatedProcessor, error) {
	simulated := simulatedProcessor{random: random}
	if err := mapstructure.Decode(data, &simulated); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot decode map to struct: %v", err)
		return nil, errorx.Unknown
	}

	if simulated.Probability < 0 || simulated.Probability > 1 {
		return nil, errorx.New(errorx.BadRequest, "Probability must be in [0, 1]")
	}

	if simulated.SuccessMessage == "" || simulated.FailureMessage == "" {
		return nil, errorx.New(errorx.BadRequest, "Not found message in validation data")
	}

	return &simulated, nil
}

func (p *simulatedProcessor) Verify(ctx context.Context) Result {
	if p.random.Float64() < p.Probability {
		return Succeed(p.SuccessMessage)
	}

	return Fail(p.FailureMessage)
}

// Transaction Processor checks that the wallet has sent at least one
// extrinsic. The simulated check is used when the count is synthetic.
type transactionProcessor struct {
	simulatedProcessor

	wallet wallet.Reader
}

func newTransactionProcessor(
	ctx context.Context, data map[string]any, random Random, walletReader wallet.Reader,
) (*transactionProcessor, error) {
	simulated, err := newSimulatedProcessor(ctx, data, random)
	if err != nil {
		return nil, err
	}

	return &transactionProcessor{simulatedProcessor: *simulated, wallet: walletReader}, nil
}

func (p *transactionProcessor) Verify(ctx context.Context) Result {
	result := p.wallet.Lookup(ctx, xcontext.WalletAddress(ctx))
	if result.IsSynthetic(wallet.PartTransfers) {
		return p.simulatedProcessor.Verify(ctx)
	}

	if result.Data.TransfersCount > 0 {
		return Succeed(p.SuccessMessage)
	}

	return Fail(p.FailureMessage)
}

// Staking Processor checks that the wallet nominates at least one validator.
// The simulated check is used when the staking data is synthetic.
type stakingProcessor struct {
	simulatedProcessor

	wallet wallet.Reader
}

func newStakingProcessor(
	ctx context.Context, data map[string]any, random Random, walletReader wallet.Reader,
) (*stakingProcessor, error) {
	simulated, err := newSimulatedProcessor(ctx, data, random)
	if err != nil {
		return nil, err
	}

	return &stakingProcessor{simulatedProcessor: *simulated, wallet: walletReader}, nil
}

func (p *stakingProcessor) Verify(ctx context.Context) Result {
	result := p.wallet.Lookup(ctx, xcontext.WalletAddress(ctx))
	if result.IsSynthetic(wallet.PartStaking) {
		return p.simulatedProcessor.Verify(ctx)
	}

	if result.Data.IsStaking {
		return Succeed(p.SuccessMessage)
	}

	return Fail(p.FailureMessage)
}
