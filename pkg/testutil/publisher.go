package testutil

import (
	"context"
	"sync"

	"github.com/dotway-lab/questboard/pkg/pubsub"
)

// MockPublisher records every published pack unless PublishFunc is set.
type MockPublisher struct {
	PublishFunc func(context.Context, string, *pubsub.Pack) error

	mutex sync.Mutex
	Packs []*pubsub.Pack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Packs = append(m.Packs, pack)
	return nil
}

func (m *MockPublisher) Keys() []string {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	keys := make([]string, 0, len(m.Packs))
	for _, pack := range m.Packs {
		keys = append(keys, string(pack.Key))
	}
	return keys
}
