package exchangev1

// Offer represents a single resting offer in the order book.
//
// Sequence is assigned by the book at insertion and establishes FIFO
// priority among offers at the same price. It is never reused.
type Offer struct {
	Side     Side   `json:"side"`
	Price    int64  `json:"price"`
	Quantity int64  `json:"quantity"`
	Owner    string `json:"owner"`
	Sequence uint64 `json:"sequence"`
}

// Value returns the currency amount the offer accounts for (price * quantity).
// For a bid this is the escrow still held against it.
func (o *Offer) Value() int64 {
	return o.Price * o.Quantity
}

// IsBid checks if the offer is a bid (buy) offer.
func (o *Offer) IsBid() bool {
	return o.Side == Bid
}

// IsAsk checks if the offer is an ask (sell) offer.
func (o *Offer) IsAsk() bool {
	return o.Side == Ask
}

// IsFilled checks if the offer has been fully consumed by matches.
func (o *Offer) IsFilled() bool {
	return o.Quantity == 0
}
