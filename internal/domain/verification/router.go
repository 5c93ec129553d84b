package verification

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dotway-lab/questboard/internal/common"
	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/enum"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

const (
	msgManualCompleted = "Manual verification completed"
	msgNotImplemented  = "Verification not implemented for this quest"
	msgUnknownCategory = "Unknown quest category"
	msgNoWallet        = "Wallet not connected"
	msgFailed          = "Verification failed. Please try again."
)

type questProcessor struct {
	category  entity.QuestCategory
	processor Processor
}

// Router dispatches a verification by category, then by quest id.
type Router struct {
	processors map[string]questProcessor
}

// NewRouter loads the processor of every quest having validation data.
func NewRouter(ctx context.Context, factory *Factory, quests []entity.Quest) (*Router, error) {
	r := &Router{processors: map[string]questProcessor{}}
	for _, q := range quests {
		if len(q.ValidationData) == 0 {
			continue
		}

		processor, err := factory.LoadProcessor(ctx, q.ValidationData)
		if err != nil {
			return nil, fmt.Errorf("quest %s: %w", q.ID, err)
		}

		r.processors[q.ID] = questProcessor{category: q.Category, processor: processor}
	}

	return r, nil
}

func (r *Router) Verify(ctx context.Context, questID, category string) Result {
	questCategory, err := enum.ToEnum[entity.QuestCategory](category)
	if err != nil {
		return Result{Success: false, Message: msgUnknownCategory}
	}

	if questCategory == entity.LearningQuest {
		return Succeed(msgManualCompleted)
	}

	if delay := xcontext.Configs(ctx).Quest.VerificationDelay; delay > 0 {
		if !sleep(ctx, delay) {
			return Fail(msgFailed)
		}
	}

	if questCategory == entity.OnchainQuest && xcontext.WalletAddress(ctx) == "" {
		return Fail(msgNoWallet)
	}

	p, ok := r.processors[questID]
	if !ok || p.category != questCategory {
		return Result{Success: false, Message: msgNotImplemented}
	}

	result := p.processor.Verify(ctx)
	if ctx.Err() != nil {
		return Fail(msgFailed)
	}

	common.PromCounters[common.QuestVerificationTotal].
		WithLabelValues(category, strconv.FormatBool(result.Success)).Inc()

	return result
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
