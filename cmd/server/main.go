package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jscottmiller/patronage/internal/app/engine"
	"github.com/jscottmiller/patronage/internal/usecase/book"
	"github.com/jscottmiller/patronage/internal/usecase/custody"
	"github.com/jscottmiller/patronage/internal/usecase/exchange"
	"github.com/jscottmiller/patronage/internal/usecase/ledger"
	"github.com/jscottmiller/patronage/internal/usecase/orderfeed"
	"github.com/jscottmiller/patronage/internal/usecase/tradefeed"
	"github.com/jscottmiller/patronage/pkg/config"
	"github.com/jscottmiller/patronage/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	if err := config.Load(cfg); err != nil {
		panic(err)
	}

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	custodian := custody.New()
	ex := exchange.New(book.New(), ledger.New(), custodian)
	reader := orderfeed.NewReader(cfg.OrderFeedConfig, log)
	publisher := tradefeed.NewPublisher(cfg.TradeFeedConfig, log)

	eng := engine.New(ex, reader, publisher, log, cfg)

	if err := eng.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Exchange started successfully", logger.Field{
		Key:   "pair",
		Value: cfg.Pair,
	})

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := eng.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	if err := reader.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_reader",
		})
	}
	if err := publisher.Close(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "close_publisher",
		})
	}

	log.Info("Exchange shutdown complete")
}
