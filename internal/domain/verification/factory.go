package verification

import (
	"context"
	"fmt"

	"github.com/dotway-lab/questboard/internal/domain/wallet"
	"github.com/dotway-lab/questboard/pkg/enum"
)

type ProcessorType string

var (
	SimulatedProcessor   = enum.New(ProcessorType("simulated"))
	TransactionProcessor = enum.New(ProcessorType("transaction"))
	StakingProcessor     = enum.New(ProcessorType("staking"))
)

type Factory struct {
	random Random
	wallet wallet.Reader
}

func NewFactory(random Random, walletReader wallet.Reader) *Factory {
	return &Factory{random: random, wallet: walletReader}
}

// LoadProcessor builds the processor described by the validation data of a
// quest. The "processor" field selects the processor type.
func (f *Factory) LoadProcessor(ctx context.Context, data map[string]any) (Processor, error) {
	name, _ := data["processor"].(string)
	processorType, err := enum.ToEnum[ProcessorType](name)
	if err != nil {
		return nil, fmt.Errorf("invalid processor type %q", name)
	}

	var processor Processor
	switch processorType {
	case SimulatedProcessor:
		processor, err = newSimulatedProcessor(ctx, data, f.random)

	case TransactionProcessor:
		processor, err = newTransactionProcessor(ctx, data, f.random, f.wallet)

	case StakingProcessor:
		processor, err = newStakingProcessor(ctx, data, f.random, f.wallet)

	default:
		return nil, fmt.Errorf("invalid processor type %s", processorType)
	}

	if err != nil {
		return nil, err
	}

	return processor, nil
}
