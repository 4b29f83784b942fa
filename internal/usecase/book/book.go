package book

import (
	"errors"
	"sort"
	"sync"

	exchangev1 "github.com/jscottmiller/patronage/internal/domain/exchange/v1"
)

// ErrFillExceedsBest means a fill asked for more than the best offer's
// remaining quantity; matches must be capped by the caller first.
var ErrFillExceedsBest = errors.New("fill exceeds best offer quantity")

// Level holds the FIFO queue of offers resting at a single price.
type Level struct {
	Price         int64
	Offers        []*exchangev1.Offer // insertion order, which is sequence order
	TotalQuantity int64
}

// Book is a two-sided order book with price-time priority. Bids are ranked
// highest price first, asks lowest price first, and offers at the same price
// rank by arrival.
type Book struct {
	mu        sync.RWMutex
	bidLevels map[int64]*Level
	askLevels map[int64]*Level
	sequence  uint64
}

// New creates an empty book.
func New() *Book {
	return &Book{
		bidLevels: make(map[int64]*Level),
		askLevels: make(map[int64]*Level),
	}
}

// Insert places the offer at the position preserving sort order, assigning it
// the next sequence number. Equal-price offers queue behind existing ones.
func (b *Book) Insert(offer *exchangev1.Offer) (*exchangev1.Offer, error) {
	if offer == nil {
		return nil, exchangev1.ErrOfferNotFound
	}
	if !offer.Side.IsValid() {
		return nil, exchangev1.ErrInvalidSide
	}
	if offer.Price <= 0 {
		return nil, exchangev1.ErrZeroPrice
	}
	if offer.Quantity <= 0 {
		return nil, exchangev1.ErrZeroQuantity
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	offer.Sequence = b.sequence
	b.sequence++

	levels := b.levelsFor(offer.Side)
	level, exists := levels[offer.Price]
	if !exists {
		level = &Level{Price: offer.Price}
		levels[offer.Price] = level
	}
	level.Offers = append(level.Offers, offer)
	level.TotalQuantity += offer.Quantity

	return offer, nil
}

// Top returns the best resting offer on the side, or nil when the side is empty.
func (b *Book) Top(side exchangev1.Side) *exchangev1.Offer {
	b.mu.RLock()
	defer b.mu.RUnlock()

	levels := b.sortedLevels(side)
	if len(levels) == 0 {
		return nil
	}
	return levels[0].Offers[0]
}

// Get returns the offer at the given depth, depth 0 being the best, or nil
// when the side holds fewer offers.
func (b *Book) Get(side exchangev1.Side, depth int) *exchangev1.Offer {
	if depth < 0 {
		return nil
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, level := range b.sortedLevels(side) {
		if depth < len(level.Offers) {
			return level.Offers[depth]
		}
		depth -= len(level.Offers)
	}
	return nil
}

// Count returns the number of offers resting on the side.
func (b *Book) Count(side exchangev1.Side) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, level := range b.levelsFor(side) {
		count += len(level.Offers)
	}
	return count
}

// FillBest consumes quantity from the best offer on the side, removing the
// offer when fully consumed. The caller must not fill more than the best
// offer's remaining quantity.
func (b *Book) FillBest(side exchangev1.Side, quantity int64) error {
	if quantity <= 0 {
		return exchangev1.ErrZeroQuantity
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	levels := b.sortedLevels(side)
	if len(levels) == 0 {
		return exchangev1.ErrOfferNotFound
	}

	level := levels[0]
	best := level.Offers[0]
	if quantity > best.Quantity {
		return ErrFillExceedsBest
	}

	best.Quantity -= quantity
	level.TotalQuantity -= quantity
	if best.Quantity == 0 {
		level.Offers = level.Offers[1:]
	}
	if len(level.Offers) == 0 {
		delete(b.levelsFor(side), level.Price)
	}
	return nil
}

// Find returns the first resting offer (by arrival) matching the exact
// side, price and quantity tuple.
func (b *Book) Find(side exchangev1.Side, price, quantity int64) (*exchangev1.Offer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.find(side, price, quantity)
}

// Remove removes the first resting offer (by arrival) matching the exact
// side, price and quantity tuple and returns it.
func (b *Book) Remove(side exchangev1.Side, price, quantity int64) (*exchangev1.Offer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	offer, err := b.find(side, price, quantity)
	if err != nil {
		return nil, err
	}

	level := b.levelsFor(side)[price]
	for i, o := range level.Offers {
		if o == offer {
			level.Offers = append(level.Offers[:i], level.Offers[i+1:]...)
			level.TotalQuantity -= offer.Quantity
			break
		}
	}
	if len(level.Offers) == 0 {
		delete(b.levelsFor(side), price)
	}
	return offer, nil
}

// BidEscrowValue sums price * quantity over all resting bids, the currency
// the book still accounts for.
func (b *Book) BidEscrowValue() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := int64(0)
	for _, level := range b.bidLevels {
		total += level.Price * level.TotalQuantity
	}
	return total
}

// AskReservedQuantity sums quantity over all resting asks, the shares the
// custodian should hold reserved for open asks.
func (b *Book) AskReservedQuantity() int64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := int64(0)
	for _, level := range b.askLevels {
		total += level.TotalQuantity
	}
	return total
}

func (b *Book) find(side exchangev1.Side, price, quantity int64) (*exchangev1.Offer, error) {
	if !side.IsValid() {
		return nil, exchangev1.ErrInvalidSide
	}

	level, exists := b.levelsFor(side)[price]
	if !exists {
		return nil, exchangev1.ErrOfferNotFound
	}
	for _, offer := range level.Offers {
		if offer.Quantity == quantity {
			return offer, nil
		}
	}
	return nil, exchangev1.ErrOfferNotFound
}

func (b *Book) levelsFor(side exchangev1.Side) map[int64]*Level {
	if side == exchangev1.Bid {
		return b.bidLevels
	}
	return b.askLevels
}

// sortedLevels returns the side's levels best-first: descending prices for
// bids, ascending for asks.
func (b *Book) sortedLevels(side exchangev1.Side) []*Level {
	var levels []*Level
	for _, level := range b.levelsFor(side) {
		levels = append(levels, level)
	}
	if side == exchangev1.Bid {
		sort.Slice(levels, func(i, j int) bool {
			return levels[i].Price > levels[j].Price
		})
	} else {
		sort.Slice(levels, func(i, j int) bool {
			return levels[i].Price < levels[j].Price
		})
	}
	return levels
}
