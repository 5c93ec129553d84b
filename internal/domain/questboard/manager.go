package questboard

import (
	"context"

	"github.com/dotway-lab/questboard/internal/common"
	"github.com/dotway-lab/questboard/internal/domain/catalog"
	"github.com/dotway-lab/questboard/internal/domain/statistic"
	"github.com/dotway-lab/questboard/internal/domain/verification"
	"github.com/dotway-lab/questboard/internal/repository"
	"github.com/dotway-lab/questboard/pkg/errorx"
	"github.com/dotway-lab/questboard/pkg/kvstore"
	"github.com/dotway-lab/questboard/pkg/pubsub"
	"github.com/puzpuzpuz/xsync"
)

// Manager keeps the opened boards by session id.
type Manager struct {
	boards *xsync.MapOf[string, *Board]

	catalog     *catalog.Catalog
	store       kvstore.Store
	verifier    verification.Verifier
	userRepo    repository.UserRepository
	leaderboard statistic.Leaderboard
	publisher   pubsub.Publisher
}

func NewManager(
	c *catalog.Catalog,
	store kvstore.Store,
	verifier verification.Verifier,
	userRepo repository.UserRepository,
	leaderboard statistic.Leaderboard,
	publisher pubsub.Publisher,
) *Manager {
	return &Manager{
		boards:      xsync.NewMapOf[*Board](),
		catalog:     c,
		store:       store,
		verifier:    verifier,
		userRepo:    userRepo,
		leaderboard: leaderboard,
		publisher:   publisher,
	}
}

func deviceStore(store kvstore.Store, deviceID string) kvstore.Store {
	return kvstore.WithPrefix(store, "device:"+deviceID+":")
}

// Open returns the board of the session. A missing board is created and
// restored from the store of the device.
func (m *Manager) Open(ctx context.Context, sessionID, deviceID string) (*Board, error) {
	if board, ok := m.boards.Load(sessionID); ok {
		return board, nil
	}

	board := NewBoard(
		sessionID, m.catalog, deviceStore(m.store, deviceID),
		m.verifier, m.userRepo, m.leaderboard, m.publisher,
	)
	if err := board.Restore(ctx); err != nil {
		return nil, err
	}

	actual, loaded := m.boards.LoadOrStore(sessionID, board)
	if loaded {
		board.Close()
		return actual, nil
	}

	common.PromGauges[common.ActiveSessions].WithLabelValues().Inc()
	return board, nil
}

func (m *Manager) Get(sessionID string) (*Board, error) {
	board, ok := m.boards.Load(sessionID)
	if !ok {
		return nil, errorx.New(errorx.SessionClosed, "Session is closed")
	}

	return board, nil
}

// Close closes and forgets the board of the session.
func (m *Manager) Close(sessionID string) {
	board, ok := m.boards.LoadAndDelete(sessionID)
	if !ok {
		return
	}

	board.Close()
	common.PromGauges[common.ActiveSessions].WithLabelValues().Dec()
}

func (m *Manager) CloseAll() {
	m.boards.Range(func(sessionID string, _ *Board) bool {
		m.Close(sessionID)
		return true
	})
}

func (m *Manager) Size() int {
	return m.boards.Size()
}
