package pubsub

import (
	"context"

	"github.com/dotway-lab/questboard/pkg/xcontext"
)

type Pack struct {
	Key []byte
	Msg []byte
}

type Publisher interface {
	Publish(context.Context, string, *Pack) error
}

type logPublisher struct{}

// NewLogPublisher returns a Publisher which only writes messages to the
// logger of the context. It is used when no broker is configured.
func NewLogPublisher() Publisher {
	return logPublisher{}
}

func (logPublisher) Publish(ctx context.Context, topic string, pack *Pack) error {
	xcontext.Logger(ctx).Debugf("Publish to %s: key=%s msg=%s", topic, pack.Key, pack.Msg)
	return nil
}
