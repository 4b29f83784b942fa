package exchangev1

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Trade represents a single settled match between a resting offer and an
// incoming one. Price is always the maker price.
type Trade struct {
	ID        string `json:"id"`
	Buyer     string `json:"buyer"`
	Seller    string `json:"seller"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	TakerSide Side   `json:"takerSide"`
	Timestamp int64  `json:"timestamp"`
}

// NewTrade creates a trade record with a fresh id.
func NewTrade(buyer, seller string, price, quantity int64, takerSide Side) Trade {
	return Trade{
		ID:        ulid.Make().String(),
		Buyer:     buyer,
		Seller:    seller,
		Price:     price,
		Quantity:  quantity,
		TakerSide: takerSide,
		Timestamp: time.Now().UnixNano(),
	}
}

// Value returns the currency amount that changed hands (price * quantity).
func (t *Trade) Value() int64 {
	return t.Price * t.Quantity
}
