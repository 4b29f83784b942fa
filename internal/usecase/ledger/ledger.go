package ledger

import "sync"

// Ledger tracks per-account withdrawable currency balances. Balances grow
// through cancellation refunds and trade proceeds and shrink only through
// Withdraw, which always pays the whole balance.
//
// Settlement credits this ledger instead of paying counterparties directly,
// so a counterparty that cannot receive funds can never abort a match.
type Ledger struct {
	mu       sync.RWMutex
	balances map[string]int64
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		balances: make(map[string]int64),
	}
}

// Credit adds amount to the account's withdrawable balance. Non-positive
// amounts are ignored.
func (l *Ledger) Credit(account string, amount int64) {
	if amount <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] += amount
}

// Balance returns the account's current withdrawable balance.
func (l *Ledger) Balance(account string) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account]
}

// Withdraw zeroes the account's balance and returns the amount that was
// held. The balance is cleared before the amount is handed to the caller, so
// a failed or repeated payout can never duplicate funds. Withdrawing an
// empty balance returns 0.
func (l *Ledger) Withdraw(account string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	amount := l.balances[account]
	delete(l.balances, account)
	return amount
}

// Total returns the sum of all withdrawable balances.
func (l *Ledger) Total() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := int64(0)
	for _, balance := range l.balances {
		total += balance
	}
	return total
}
