package custodyv1

import "errors"

var (
	// ErrInsufficientShares means a reservation exceeded the holder's available balance.
	ErrInsufficientShares = errors.New("not enough available shares")
	// ErrInsufficientReserved means a release or transfer exceeded the holder's reserved balance.
	ErrInsufficientReserved = errors.New("not enough reserved shares")
	// ErrZeroShares rejects operations on zero or negative quantities.
	ErrZeroShares = errors.New("share quantity must be positive")
)

// Custodian is the capability the exchange holds over the asset custodian.
//
// The exchange never inspects or repairs custodian internals; its only
// obligation is to call reserve, release and transfer with amounts it has
// already validated against its own book.
type Custodian interface {
	// AvailableBalance returns the holder's unreserved share balance.
	AvailableBalance(holder string) int64
	// ReservedBalance returns the holder's reserved share balance.
	ReservedBalance(holder string) int64
	// Reserve moves quantity from the holder's available balance to its
	// reserved balance, failing with ErrInsufficientShares when the
	// available balance does not cover it.
	Reserve(holder string, quantity int64) error
	// Release moves quantity from the holder's reserved balance back to
	// its available balance.
	Release(holder string, quantity int64) error
	// TransferReserved moves quantity from the seller's reserved balance
	// to the buyer's available balance.
	TransferReserved(from, to string, quantity int64) error
	// Give credits quantity to the holder's available balance. Seed-only
	// provisioning, not part of the trading contract.
	Give(holder string, quantity int64) error
}
