package exchange

import (
	"sync"

	custodyv1 "github.com/jscottmiller/patronage/internal/domain/custody/v1"
	exchangev1 "github.com/jscottmiller/patronage/internal/domain/exchange/v1"
	"github.com/jscottmiller/patronage/internal/usecase/book"
	"github.com/jscottmiller/patronage/internal/usecase/ledger"
	"github.com/jscottmiller/patronage/pkg/errors"
)

// Result reports what a posted offer produced: the trades settled against
// resting offers, and the remainder left resting, if any.
type Result struct {
	Trades  []exchangev1.Trade
	Resting *exchangev1.Offer
}

// match pairs a resting offer with the quantity an incoming offer takes
// from it.
type match struct {
	offer    *exchangev1.Offer
	quantity int64
}

// Exchange is the matching engine. It owns the order book and the escrow
// ledger, holds a capability over the asset custodian, and executes each
// operation to completion under a single lock.
//
// Every operation validates before mutating anything, so a rejected request
// leaves the book, ledger and custodian untouched.
type Exchange struct {
	mu        sync.Mutex
	book      *book.Book
	ledger    *ledger.Ledger
	custodian custodyv1.Custodian
}

// New creates an exchange over the given book, ledger and custodian.
func New(b *book.Book, l *ledger.Ledger, c custodyv1.Custodian) *Exchange {
	return &Exchange{
		book:      b,
		ledger:    l,
		custodian: c,
	}
}

// PostOffer reserves the offer's backing resource, crosses it against the
// opposite side of the book while prices permit, and books any unmatched
// remainder.
//
// Bids must attach exactly price * quantity; the escrow for the unmatched
// remainder stays attributed to the resting offer itself, not to any
// account balance. Asks must have quantity available with the custodian.
//
// Trades settle at the resting offer's price. When an incoming bid is priced
// above the resting ask, the per-unit difference is immediately refunded to
// the bidder's ledger balance.
//
// Every custodian transfer for the post completes before any ledger credit
// or book change is applied, so a transfer failure aborts the whole post
// with the ledger and the book untouched.
func (e *Exchange) PostOffer(side exchangev1.Side, price, quantity, attachedValue int64, caller string) (*Result, error) {
	if !side.IsValid() {
		return nil, exchangev1.ErrInvalidSide
	}
	if price <= 0 {
		return nil, exchangev1.ErrZeroPrice
	}
	if quantity <= 0 {
		return nil, exchangev1.ErrZeroQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if side == exchangev1.Bid {
		required := price * quantity
		if attachedValue < required {
			return nil, exchangev1.ErrInsufficientFunds
		}
		if attachedValue > required {
			return nil, exchangev1.ErrOverfundedBid
		}
	} else {
		// First and only mutation that can fail; nothing has changed yet
		// if the reservation is rejected.
		if err := e.custodian.Reserve(caller, quantity); err != nil {
			return nil, err
		}
	}

	// Plan the matches without touching the book, so an aborted settlement
	// leaves nothing to unwind.
	var matches []match
	remaining := quantity
	for depth := 0; remaining > 0; depth++ {
		resting := e.book.Get(side.Opposite(), depth)
		if resting == nil || !crosses(side, price, resting.Price) {
			break
		}

		matched := remaining
		if resting.Quantity < matched {
			matched = resting.Quantity
		}
		matches = append(matches, match{offer: resting, quantity: matched})
		remaining -= matched
	}

	transferred := int64(0)
	for _, m := range matches {
		var err error
		if side == exchangev1.Bid {
			err = e.custodian.TransferReserved(m.offer.Owner, caller, m.quantity)
		} else {
			err = e.custodian.TransferReserved(caller, m.offer.Owner, m.quantity)
		}
		if err != nil {
			if side == exchangev1.Ask {
				// Hand back the part of the reservation that was never
				// transferred; none of this post will rest.
				_ = e.custodian.Release(caller, quantity-transferred)
			}
			return nil, errors.NewTracer(errors.SettlementTransferError).Wrap(err)
		}
		transferred += m.quantity
	}

	result := &Result{}
	for _, m := range matches {
		e.credit(side, price, m, caller)
		result.Trades = append(result.Trades, e.tradeFor(side, m.quantity, m.offer, caller))

		if err := e.book.FillBest(side.Opposite(), m.quantity); err != nil {
			return nil, errors.NewTracer(errors.GeneralInternalServerError).Wrap(err)
		}
	}

	if remaining > 0 {
		offer, err := e.book.Insert(&exchangev1.Offer{
			Side:     side,
			Price:    price,
			Quantity: remaining,
			Owner:    caller,
		})
		if err != nil {
			return nil, err
		}
		result.Resting = offer
	}

	return result, nil
}

// CancelOffer removes the caller's resting offer matching the exact tuple
// and releases its reservation: escrow back to the caller's ledger balance
// for a bid, reserved shares back to available for an ask.
func (e *Exchange) CancelOffer(side exchangev1.Side, price, quantity int64, caller string) error {
	if !side.IsValid() {
		return exchangev1.ErrInvalidSide
	}
	if price <= 0 {
		return exchangev1.ErrZeroPrice
	}
	if quantity <= 0 {
		return exchangev1.ErrZeroQuantity
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	offer, err := e.book.Find(side, price, quantity)
	if err != nil {
		return err
	}
	if offer.Owner != caller {
		return exchangev1.ErrNotOwner
	}

	// The release precedes removal, so a failing release keeps the ask
	// resting with its reservation intact.
	if side == exchangev1.Ask {
		if err := e.custodian.Release(caller, quantity); err != nil {
			return errors.NewTracer(errors.SettlementTransferError).Wrap(err)
		}
	}

	if _, err := e.book.Remove(side, price, quantity); err != nil {
		return err
	}

	if side == exchangev1.Bid {
		e.ledger.Credit(caller, price*quantity)
	}
	return nil
}

// Withdraw pays out the account's entire escrow balance, zeroing it first.
// Withdrawing an empty balance is a no-op returning 0.
func (e *Exchange) Withdraw(account string) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ledger.Withdraw(account)
}

// Balance returns the account's withdrawable escrow balance.
func (e *Exchange) Balance(account string) int64 {
	return e.ledger.Balance(account)
}

// NumberOfOffers returns how many offers rest on the side.
func (e *Exchange) NumberOfOffers(side exchangev1.Side) int {
	return e.book.Count(side)
}

// Offer returns the price and quantity of the offer at the given depth,
// depth 0 being the best. Returns the zero/zero sentinel past the end.
func (e *Exchange) Offer(side exchangev1.Side, depth int) (price, quantity int64) {
	offer := e.book.Get(side, depth)
	if offer == nil {
		return 0, 0
	}
	return offer.Price, offer.Quantity
}

// TopOffer returns the best offer's price and quantity, or the zero/zero
// sentinel when the side is empty.
func (e *Exchange) TopOffer(side exchangev1.Side) (price, quantity int64) {
	return e.Offer(side, 0)
}

// credit applies the currency movement for one settled match. Trades settle
// at the resting price; an incoming bid priced above it gets the per-unit
// difference back.
func (e *Exchange) credit(takerSide exchangev1.Side, takerPrice int64, m match, caller string) {
	if takerSide == exchangev1.Bid {
		// Incoming buyer: pay the seller out of the incoming escrow at
		// the maker price, refund the price improvement.
		e.ledger.Credit(m.offer.Owner, m.quantity*m.offer.Price)
		if takerPrice > m.offer.Price {
			e.ledger.Credit(caller, m.quantity*(takerPrice-m.offer.Price))
		}
		return
	}

	// Incoming seller: the resting bid's escrow was exact at its own price.
	e.ledger.Credit(caller, m.quantity*m.offer.Price)
}

func (e *Exchange) tradeFor(takerSide exchangev1.Side, matched int64, resting *exchangev1.Offer, caller string) exchangev1.Trade {
	if takerSide == exchangev1.Bid {
		return exchangev1.NewTrade(caller, resting.Owner, resting.Price, matched, takerSide)
	}
	return exchangev1.NewTrade(resting.Owner, caller, resting.Price, matched, takerSide)
}

// crosses reports whether an incoming offer at takerPrice can trade against
// a resting offer at restingPrice.
func crosses(takerSide exchangev1.Side, takerPrice, restingPrice int64) bool {
	if takerSide == exchangev1.Bid {
		return takerPrice >= restingPrice
	}
	return restingPrice >= takerPrice
}
