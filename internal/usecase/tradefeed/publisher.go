package tradefeed

import (
	"context"

	tradefeedv1 "github.com/jscottmiller/patronage/internal/domain/tradefeed/v1"
	"github.com/jscottmiller/patronage/pkg/config"
	"github.com/jscottmiller/patronage/pkg/errors"
	"github.com/jscottmiller/patronage/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher emits settled trades to the trade-feed topic.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a kafka publisher for trade events. It returns an
// implementation of tradefeedv1.Publisher.
func NewPublisher(cfg config.TradeFeedConfig, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTrade publishes a trade event to the trade-feed topic.
func (p *Publisher) PublishTrade(ctx context.Context, event *tradefeedv1.TradeEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.Pair),
		Value: tradefeedv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		tracer := errors.NewTracer(errors.TradeFeedPublishError).Wrap(err)
		p.logger.Error(tracer,
			logger.Field{Key: "tradeID", Value: event.TradeID},
			logger.Field{Key: "pair", Value: event.Pair},
		)
		return tracer
	}
	return nil
}

// Close closes the underlying kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}
