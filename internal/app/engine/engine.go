package engine

import (
	"context"
	"errors"
	"sync"

	exchangev1 "github.com/jscottmiller/patronage/internal/domain/exchange/v1"
	orderfeedv1 "github.com/jscottmiller/patronage/internal/domain/orderfeed/v1"
	tradefeedv1 "github.com/jscottmiller/patronage/internal/domain/tradefeed/v1"
	"github.com/jscottmiller/patronage/internal/usecase/exchange"
	"github.com/jscottmiller/patronage/pkg/config"
	pkgerrors "github.com/jscottmiller/patronage/pkg/errors"
	"github.com/jscottmiller/patronage/pkg/logger"
)

// Engine drives the exchange from the offer feed. A single processing
// goroutine applies requests in stream order, which is what provides the
// serialized, one-at-a-time execution the exchange assumes.
type Engine struct {
	exchange  *exchange.Exchange
	reader    orderfeedv1.Reader
	publisher tradefeedv1.Publisher
	logger    logger.Interface
	config    *config.Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an engine over the given exchange and feed bindings.
func New(
	ex *exchange.Exchange,
	reader orderfeedv1.Reader,
	publisher tradefeedv1.Publisher,
	log logger.Interface,
	cfg *config.Config,
) *Engine {
	return &Engine{
		exchange:  ex,
		reader:    reader,
		publisher: publisher,
		logger:    log,
		config:    cfg,
	}
}

// Start launches the processing goroutine.
func (e *Engine) Start(ctx context.Context) error {
	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(1)
	go e.runProcessor()

	e.logger.Info("Engine started", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})
	return nil
}

// Stop shuts the engine down, waiting for the processor to drain or for ctx
// to expire.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

func (e *Engine) runProcessor() {
	defer e.wg.Done()

	e.logger.Info("Starting offer processor", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})

	for {
		select {
		case <-e.ctx.Done():
			return
		default:
		}

		_, request, err := e.reader.ReadMessage(e.ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || e.ctx.Err() != nil {
				return
			}
			// A malformed payload is skipped; a read failure is retried on
			// the next iteration.
			e.logger.Error(err, logger.Field{
				Key:   "code",
				Value: pkgerrors.CodeOf(err),
			})
			continue
		}

		e.processRequest(request)
	}
}

// processRequest applies one offer request. A rejected request affects
// nothing but its own attempt, so rejections are logged and dropped.
func (e *Engine) processRequest(request *orderfeedv1.OfferRequest) {
	switch request.Type {
	case orderfeedv1.RequestTypePost:
		result, err := e.exchange.PostOffer(
			exchangev1.Side(request.Side),
			request.Price,
			request.Quantity,
			request.AttachedValue,
			request.Account,
		)
		if err != nil {
			e.logger.Warn("Offer rejected",
				logger.Field{Key: "account", Value: request.Account},
				logger.Field{Key: "offset", Value: request.Offset},
				logger.Field{Key: "reason", Value: err.Error()},
			)
			return
		}
		e.publishTrades(result.Trades)

	case orderfeedv1.RequestTypeCancel:
		err := e.exchange.CancelOffer(
			exchangev1.Side(request.Side),
			request.Price,
			request.Quantity,
			request.Account,
		)
		if err != nil {
			e.logger.Warn("Cancellation rejected",
				logger.Field{Key: "account", Value: request.Account},
				logger.Field{Key: "offset", Value: request.Offset},
				logger.Field{Key: "reason", Value: err.Error()},
			)
		}

	case orderfeedv1.RequestTypeWithdraw:
		amount := e.exchange.Withdraw(request.Account)
		e.logger.Info("Withdrawal paid",
			logger.Field{Key: "account", Value: request.Account},
			logger.Field{Key: "amount", Value: amount},
		)

	default:
		e.logger.Warn("Unknown request type",
			logger.Field{Key: "type", Value: string(request.Type)},
			logger.Field{Key: "offset", Value: request.Offset},
		)
	}
}

func (e *Engine) publishTrades(trades []exchangev1.Trade) {
	for i := range trades {
		event := tradefeedv1.FromTrade(&trades[i], e.config.Pair)
		if err := e.publisher.PublishTrade(e.ctx, event); err != nil {
			// Settlement is already committed; the feed consumer recovers
			// from gaps by its own replay.
			e.logger.Error(err, logger.Field{
				Key:   "tradeID",
				Value: event.TradeID,
			})
		}
	}
}
