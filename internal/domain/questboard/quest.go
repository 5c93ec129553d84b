package questboard

import (
	"context"
	"time"

	"github.com/dotway-lab/questboard/internal/common"
	"github.com/dotway-lab/questboard/internal/domain/verification"
	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/pkg/enum"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/xcontext"
)

// questMachine holds the run state of the quests of a board. It is not safe
// for concurrent use.
type questMachine struct {
	quests []entity.Quest
	index  map[string]int
}

func newQuestMachine(quests []entity.Quest) *questMachine {
	m := &questMachine{quests: quests, index: map[string]int{}}
	for i, q := range quests {
		m.index[q.ID] = i
	}

	return m
}

func (m *questMachine) get(id string) (*entity.Quest, error) {
	i, ok := m.index[id]
	if !ok {
		return nil, errorx.New(errorx.NotFound, "Not found quest %s", id)
	}

	return &m.quests[i], nil
}

// list returns copies in catalog order. An empty category matches every quest.
func (m *questMachine) list(category entity.QuestCategory) []entity.Quest {
	result := []entity.Quest{}
	for _, q := range m.quests {
		if category == "" || q.Category == category {
			result = append(result, q)
		}
	}

	return result
}

func (m *questMachine) start(id string) (*entity.Quest, error) {
	q, err := m.get(id)
	if err != nil {
		return nil, err
	}

	if q.Status != entity.QuestAvailable {
		return nil, errorx.New(errorx.InvalidTransition, "Quest %s is already %s", id, q.Status)
	}

	q.Status = entity.QuestActive
	return q, nil
}

func (m *questMachine) setProgress(id string, percent int) (*entity.Quest, error) {
	q, err := m.get(id)
	if err != nil {
		return nil, err
	}

	if q.Status != entity.QuestActive {
		return nil, errorx.New(errorx.InvalidTransition, "Quest %s is not active", id)
	}

	q.Progress = min(max(percent, 0), 100)
	return q, nil
}

func (m *questMachine) complete(id string, now time.Time) (*entity.Quest, error) {
	q, err := m.get(id)
	if err != nil {
		return nil, err
	}

	if q.Status != entity.QuestActive {
		return nil, errorx.New(errorx.InvalidTransition, "Quest %s is not active", id)
	}

	if q.IsAutomatic() && !q.Verified {
		return nil, errorx.New(errorx.InvalidTransition, "Quest %s must be verified first", id)
	}

	q.Status = entity.QuestCompleted
	q.Progress = 100
	q.CompletedAt = &now
	return q, nil
}

func (m *questMachine) completedCount() int {
	count := 0
	for _, q := range m.quests {
		if q.Status == entity.QuestCompleted {
			count++
		}
	}

	return count
}

type questEvent struct {
	QuestID  string `structs:"quest_id"`
	Category string `structs:"category"`
	RewardXP uint64 `structs:"reward_xp,omitempty"`
	Message  string `structs:"message,omitempty"`
}

func (b *Board) Quests(ctx context.Context) ([]entity.Quest, error) {
	var quests []entity.Quest
	err := b.do(ctx, func() error {
		quests = b.quests.list("")
		return nil
	})

	return quests, err
}

func (b *Board) QuestsByCategory(ctx context.Context, category string) ([]entity.Quest, error) {
	questCategory, err := enum.ToEnum[entity.QuestCategory](category)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid category %s", category)
	}

	var quests []entity.Quest
	err = b.do(ctx, func() error {
		quests = b.quests.list(questCategory)
		return nil
	})

	return quests, err
}

func (b *Board) Quest(ctx context.Context, id string) (entity.Quest, error) {
	var quest entity.Quest
	err := b.do(ctx, func() error {
		q, err := b.quests.get(id)
		if err != nil {
			return err
		}

		quest = *q
		return nil
	})

	return quest, err
}

func (b *Board) StartQuest(ctx context.Context, id string) (entity.Quest, error) {
	var quest entity.Quest
	err := b.do(ctx, func() error {
		q, err := b.quests.start(id)
		if err != nil {
			return err
		}

		b.emit(common.EventQuestStarted, questEvent{QuestID: q.ID, Category: string(q.Category)})
		quest = *q
		return nil
	})

	return quest, err
}

// SetQuestProgress clamps percent into [0, 100].
func (b *Board) SetQuestProgress(ctx context.Context, id string, percent int) (entity.Quest, error) {
	var quest entity.Quest
	err := b.do(ctx, func() error {
		q, err := b.quests.setProgress(id, percent)
		if err != nil {
			return err
		}

		quest = *q
		return nil
	})

	return quest, err
}

// VerifyQuest runs the verifier of an active quest. The board is not locked
// while the verifier runs, a result coming back after the session is closed
// is discarded.
func (b *Board) VerifyQuest(ctx context.Context, id string) (verification.Result, entity.Quest, error) {
	var category, address string
	err := b.do(ctx, func() error {
		q, err := b.quests.get(id)
		if err != nil {
			return err
		}

		if q.Status != entity.QuestActive {
			return errorx.New(errorx.InvalidTransition, "Quest %s is not active", id)
		}

		category = string(q.Category)
		address = b.profiles.address
		return nil
	})
	if err != nil {
		return verification.Result{}, entity.Quest{}, err
	}

	result := b.verifier.Verify(xcontext.WithWalletAddress(ctx, address), id, category)

	var quest entity.Quest
	err = b.do(ctx, func() error {
		q, err := b.quests.get(id)
		if err != nil {
			return err
		}

		if result.Success && q.Status == entity.QuestActive && !q.Verified {
			q.Verified = true
			b.emit(common.EventQuestVerified, questEvent{
				QuestID:  q.ID,
				Category: string(q.Category),
				Message:  result.Message,
			})
		}

		quest = *q
		return nil
	})
	if err != nil {
		return verification.Result{}, entity.Quest{}, err
	}

	return result, quest, nil
}

// CompleteQuest completes an active quest, grants its XP and unlocks its NFT
// reward. A quest is completed at most once. If the XP cannot be saved, the
// quest and its reward are left untouched.
func (b *Board) CompleteQuest(ctx context.Context, id string) (entity.Quest, error) {
	var quest entity.Quest
	err := b.do(ctx, func() error {
		q, err := b.quests.get(id)
		if err != nil {
			return err
		}

		previous := *q
		q, err = b.quests.complete(id, time.Now())
		if err != nil {
			return err
		}

		mark := len(b.pendingEvents)
		b.emit(common.EventQuestCompleted, questEvent{
			QuestID:  q.ID,
			Category: string(q.Category),
			RewardXP: q.Rewards.XP,
		})

		unlocked := q.Rewards.NFT != "" && b.nfts.unlock(q.Rewards.NFT)
		if err := b.grantXP(ctx, q.Rewards.XP, "quest:"+q.ID); err != nil {
			*q = previous
			if unlocked {
				b.nfts.lock(q.Rewards.NFT)
			}
			b.pendingEvents = b.pendingEvents[:mark]
			return err
		}

		common.PromCounters[common.QuestCompletedTotal].WithLabelValues(string(q.Category)).Inc()
		quest = *q
		return nil
	})
	return quest, err
}
