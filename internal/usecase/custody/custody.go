package custody

import (
	"sync"

	custodyv1 "github.com/jscottmiller/patronage/internal/domain/custody/v1"
)

type holding struct {
	available int64
	reserved  int64
}

// Custodian is an in-memory asset custodian tracking each holder's available
// and reserved share balances. It implements custodyv1.Custodian.
type Custodian struct {
	mu       sync.RWMutex
	holdings map[string]*holding
}

// New creates a custodian with no holdings.
func New() *Custodian {
	return &Custodian{
		holdings: make(map[string]*holding),
	}
}

var _ custodyv1.Custodian = (*Custodian)(nil)

// AvailableBalance returns the holder's unreserved share balance.
func (c *Custodian) AvailableBalance(holder string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if h, ok := c.holdings[holder]; ok {
		return h.available
	}
	return 0
}

// ReservedBalance returns the holder's reserved share balance.
func (c *Custodian) ReservedBalance(holder string) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if h, ok := c.holdings[holder]; ok {
		return h.reserved
	}
	return 0
}

// Reserve moves quantity from available to reserved for the holder.
func (c *Custodian) Reserve(holder string, quantity int64) error {
	if quantity <= 0 {
		return custodyv1.ErrZeroShares
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.holdings[holder]
	if !ok || h.available < quantity {
		return custodyv1.ErrInsufficientShares
	}
	h.available -= quantity
	h.reserved += quantity
	return nil
}

// Release moves quantity from reserved back to available for the holder.
func (c *Custodian) Release(holder string, quantity int64) error {
	if quantity <= 0 {
		return custodyv1.ErrZeroShares
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.holdings[holder]
	if !ok || h.reserved < quantity {
		return custodyv1.ErrInsufficientReserved
	}
	h.reserved -= quantity
	h.available += quantity
	return nil
}

// TransferReserved moves quantity from the seller's reserved balance to the
// buyer's available balance.
func (c *Custodian) TransferReserved(from, to string, quantity int64) error {
	if quantity <= 0 {
		return custodyv1.ErrZeroShares
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	seller, ok := c.holdings[from]
	if !ok || seller.reserved < quantity {
		return custodyv1.ErrInsufficientReserved
	}
	seller.reserved -= quantity
	c.holdingFor(to).available += quantity
	return nil
}

// Give credits quantity to the holder's available balance. Seed-only.
func (c *Custodian) Give(holder string, quantity int64) error {
	if quantity <= 0 {
		return custodyv1.ErrZeroShares
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.holdingFor(holder).available += quantity
	return nil
}

// holdingFor returns the holder's record, creating it when absent. Callers
// must hold the write lock.
func (c *Custodian) holdingFor(holder string) *holding {
	h, ok := c.holdings[holder]
	if !ok {
		h = &holding{}
		c.holdings[holder] = h
	}
	return h
}
