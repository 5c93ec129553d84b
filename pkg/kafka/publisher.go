package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/Shopify/sarama"
	"github.com/dotway-lab/questboard/pkg/pubsub"
)

type publisher struct {
	producer sarama.SyncProducer
}

// NewPublisher returns a kafka publisher. Messages are partitioned by their
// key, so the events of one session keep their order.
func NewPublisher(clientID string, brokerAddrs []string) (*publisher, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Partitioner = sarama.NewHashPartitioner
	config.Producer.Retry.Max = 3
	config.Producer.Retry.Backoff = 200 * time.Millisecond
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokerAddrs, config)
	if err != nil {
		return nil, fmt.Errorf("cannot create producer of %v: %w", brokerAddrs, err)
	}

	return newPublisher(producer), nil
}

func newPublisher(producer sarama.SyncProducer) *publisher {
	return &publisher{producer: producer}
}

func (p *publisher) Stop(context.Context) error {
	return p.producer.Close()
}

func (p *publisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	msg := &sarama.ProducerMessage{
		Topic:     topic,
		Value:     sarama.ByteEncoder(pack.Msg),
		Timestamp: time.Now(),
	}
	if len(pack.Key) > 0 {
		msg.Key = sarama.ByteEncoder(pack.Key)
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		return fmt.Errorf("cannot send message to %s: %w", topic, err)
	}

	return nil
}
