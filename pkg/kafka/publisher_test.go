package kafka

import (
	"context"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/dotway-lab/questboard/pkg/pubsub"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		require.Equal(t, `{"type":"quest_completed"}`, string(val))
		return nil
	})

	p := newPublisher(producer)
	err := p.Publish(context.Background(), "questboard.events", &pubsub.Pack{
		Key: []byte("1abc"),
		Msg: []byte(`{"type":"quest_completed"}`),
	})
	require.NoError(t, err)
	require.NoError(t, p.Stop(context.Background()))
}

func TestPublisher_PublishError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newPublisher(producer)
	err := p.Publish(context.Background(), "questboard.events", &pubsub.Pack{Msg: []byte("{}")})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}
