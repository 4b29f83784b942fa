package exchangev1

import "errors"

var (
	// ErrInvalidSide rejects an offer on an unknown side.
	ErrInvalidSide = errors.New("side must be bid or ask")
	// ErrZeroPrice rejects an offer priced at zero or below.
	ErrZeroPrice = errors.New("price must be positive")
	// ErrZeroQuantity rejects an offer for zero or fewer units.
	ErrZeroQuantity = errors.New("quantity must be positive")
	// ErrInsufficientFunds rejects a bid whose attached value is less than price * quantity.
	ErrInsufficientFunds = errors.New("attached value does not cover the bid")
	// ErrOverfundedBid rejects a bid whose attached value exceeds price * quantity.
	ErrOverfundedBid = errors.New("attached value exceeds the bid")
	// ErrOfferNotFound rejects a cancellation when no resting offer matches the tuple.
	ErrOfferNotFound = errors.New("no resting offer matches side, price and quantity")
	// ErrNotOwner rejects a cancellation by anyone other than the offer's owner.
	ErrNotOwner = errors.New("offer is owned by another account")
)
