package questboard

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dotway-lab/questboard/internal/common"
	"github.com/dotway-lab/questboard/internal/domain/catalog"
	"github.com/dotway-lab/questboard/internal/domain/statistic"
	"github.com/dotway-lab/questboard/internal/domain/verification"
	"github.com/dotway-lab/questboard/internal/entity"
	"github.com/dotway-lab/questboard/internal/model"
	"github.com/dotway-lab/questboard/internal/repository"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/kvstore"
	"github.com/dotway-lab/questboard/pkg/pubsub"
	"github.com/dotway-lab/questboard/pkg/xcontext"
	"github.com/fatih/structs"
)

const defaultEventTopic = "questboard.events"

// Board is the quest board of one session: the active profile, the run state
// of every quest and the NFT collection. All mutations are serialized by one
// mutex, waiting on a collaborator never holds it.
type Board struct {
	mutex  sync.Mutex
	closed bool

	sessionID string
	profiles  *profileStore
	quests    *questMachine
	nfts      *nftLedger

	// Filled while the mutex is held, flushed after it is released.
	pendingEvents []common.Event
	pendingMirror *entity.Profile

	verifier    verification.Verifier
	userRepo    repository.UserRepository
	leaderboard statistic.Leaderboard
	publisher   pubsub.Publisher
}

func NewBoard(
	sessionID string,
	c *catalog.Catalog,
	store kvstore.Store,
	verifier verification.Verifier,
	userRepo repository.UserRepository,
	leaderboard statistic.Leaderboard,
	publisher pubsub.Publisher,
) *Board {
	return &Board{
		sessionID:   sessionID,
		profiles:    newProfileStore(store),
		quests:      newQuestMachine(c.Quests()),
		nfts:        newNFTLedger(c.NFTs(time.Now())),
		verifier:    verifier,
		userRepo:    userRepo,
		leaderboard: leaderboard,
		publisher:   publisher,
	}
}

func (b *Board) SessionID() string {
	return b.sessionID
}

// Close discards the session. Every later mutation fails with SessionClosed.
func (b *Board) Close() {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.closed = true
}

func (b *Board) IsClosed() bool {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.closed
}

// Stats summarizes the progression of the active profile.
func (b *Board) Stats(ctx context.Context) (model.UserStats, error) {
	stats := model.UserStats{Level: 1}
	var address string
	err := b.do(ctx, func() error {
		stats.QuestsCompleted = b.quests.completedCount()
		stats.NFTsOwned = b.nfts.ownedCount()
		if p := b.profiles.profile; p != nil {
			stats.TotalXP = p.XP
			stats.Level = p.Level
			address = p.Address
		}

		return nil
	})
	if err != nil {
		return model.UserStats{}, err
	}

	if address != "" && b.leaderboard != nil {
		rank, err := b.leaderboard.Rank(ctx, address)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get rank of %s: %v", address, err)
		} else {
			stats.CommunityRank = rank
		}
	}

	return stats, nil
}

// do runs fn while holding the mutex of an opened board. The events emitted
// by fn are published and the changed profile is mirrored once the mutex is
// released.
func (b *Board) do(ctx context.Context, fn func() error) error {
	b.mutex.Lock()
	if b.closed {
		b.mutex.Unlock()
		return errorx.New(errorx.SessionClosed, "Session is closed")
	}

	err := fn()
	events := b.pendingEvents
	mirror := b.pendingMirror
	b.pendingEvents = nil
	b.pendingMirror = nil
	b.mutex.Unlock()

	if mirror != nil {
		b.mirror(ctx, mirror)
	}

	b.publish(ctx, events)
	return err
}

func (b *Board) emit(eventType common.EventType, data any) {
	event := common.Event{
		Type:      eventType,
		SessionID: b.sessionID,
		Address:   b.profiles.address,
		CreatedAt: time.Now().UnixMilli(),
	}

	if data != nil {
		event.Data = structs.Map(data)
	}

	b.pendingEvents = append(b.pendingEvents, event)
}

func (b *Board) publish(ctx context.Context, events []common.Event) {
	if b.publisher == nil || len(events) == 0 {
		return
	}

	topic := xcontext.Configs(ctx).Kafka.Topic
	if topic == "" {
		topic = defaultEventTopic
	}

	for _, event := range events {
		msg, err := json.Marshal(event)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal event: %v", err)
			continue
		}

		err = b.publisher.Publish(ctx, topic, &pubsub.Pack{Key: []byte(b.sessionID), Msg: msg})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot publish event %s: %v", event.Type, err)
		}
	}
}

// mirror copies the profile into the hosted database and the leaderboard.
// Failures are only logged, the device store stays the source of truth.
func (b *Board) mirror(ctx context.Context, profile *entity.Profile) {
	if b.userRepo != nil && xcontext.DB(ctx) != nil {
		err := b.userRepo.Upsert(ctx, &entity.User{
			Base:          entity.Base{ID: profile.ID},
			WalletAddress: profile.Address,
			Username:      profile.Username,
			Avatar:        profile.Avatar,
			Bio:           profile.Bio,
			XP:            profile.XP,
			Level:         profile.Level,
			Twitter:       profile.Social.Twitter,
			Telegram:      profile.Social.Telegram,
			Discord:       profile.Social.Discord,
			Email:         profile.Social.Email,
			JoinedAt:      profile.JoinedAt,
		})
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot mirror profile %s: %v", profile.Address, err)
		}
	}

	if b.leaderboard != nil {
		if err := b.leaderboard.SetXP(ctx, profile.Address, profile.XP); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard of %s: %v", profile.Address, err)
		}
	}
}
