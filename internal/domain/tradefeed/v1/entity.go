package tradefeedv1

import (
	"context"
	"encoding/json"

	exchangev1 "github.com/jscottmiller/patronage/internal/domain/exchange/v1"
)

// TradeEvent is the wire payload published for every settled match.
type TradeEvent struct {
	TradeID   string `json:"tradeID"`
	Pair      string `json:"pair"`
	Buyer     string `json:"buyer"`
	Seller    string `json:"seller"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	TakerSide string `json:"takerSide"`
	Timestamp int64  `json:"timestamp"`
}

// Publisher defines the interface for emitting trade events.
type Publisher interface {
	PublishTrade(ctx context.Context, event *TradeEvent) error
	Close() error
}

// FromTrade builds the event for a settled trade on the given pair.
func FromTrade(trade *exchangev1.Trade, pair string) *TradeEvent {
	return &TradeEvent{
		TradeID:   trade.ID,
		Pair:      pair,
		Buyer:     trade.Buyer,
		Seller:    trade.Seller,
		Price:     trade.Price,
		Quantity:  trade.Quantity,
		TakerSide: trade.TakerSide.String(),
		Timestamp: trade.Timestamp,
	}
}

// ToBytes converts the trade event to its wire encoding.
func ToBytes(event *TradeEvent) []byte {
	buf, err := json.Marshal(event)
	if err != nil {
		return nil
	}
	return buf
}

// FromBytes converts a wire encoding back to a trade event.
func FromBytes(data []byte) *TradeEvent {
	var event TradeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
