package orderfeed

import (
	"context"
	"encoding/json"

	orderfeedv1 "github.com/jscottmiller/patronage/internal/domain/orderfeed/v1"
	"github.com/jscottmiller/patronage/pkg/config"
	"github.com/jscottmiller/patronage/pkg/errors"
	"github.com/jscottmiller/patronage/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader consumes offer requests from the order-feed topic. A single
// partition read in offset order is what gives the exchange its serialized
// operation stream.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface
}

// NewReader creates a kafka reader over the order-feed topic. It returns an
// implementation of orderfeedv1.Reader.
func NewReader(cfg config.OrderFeedConfig, log logger.Interface) *Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return &Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// SetOffset positions the reader at the given offset.
func (r *Reader) SetOffset(offset int64) error {
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logger.Error(errors.NewTracer(errors.OrderFeedReadError).Wrap(err),
			logger.Field{Key: "operation", Value: "SetOffset"},
		)
		return err
	}
	return nil
}

// ReadMessage reads the next message and parses it as an offer request.
func (r *Reader) ReadMessage(ctx context.Context) (kafka.Message, *orderfeedv1.OfferRequest, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		return kafka.Message{}, nil, errors.NewTracer(errors.OrderFeedReadError).Wrap(err)
	}

	var request orderfeedv1.OfferRequest
	if err := json.Unmarshal(msg.Value, &request); err != nil {
		return msg, nil, errors.NewTracer(errors.OrderFeedDecodeError).Wrap(err)
	}

	request.Offset = msg.Offset

	r.logger.Debug("ReadMessage",
		logger.Field{Key: "type", Value: request.Type},
		logger.Field{Key: "account", Value: request.Account},
		logger.Field{Key: "side", Value: request.Side},
		logger.Field{Key: "price", Value: request.Price},
		logger.Field{Key: "quantity", Value: request.Quantity},
		logger.Field{Key: "offset", Value: msg.Offset},
	)

	return msg, &request, nil
}

// Close closes the underlying kafka reader.
func (r *Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logger.Error(errors.NewTracer(errors.OrderFeedReadError).Wrap(err),
			logger.Field{Key: "operation", Value: "Close"},
		)
		return err
	}
	return nil
}
