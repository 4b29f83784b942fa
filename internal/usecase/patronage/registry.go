package patronage

import (
	"errors"
	"sync"
)

var (
	// ErrNotRegistrar rejects registrar-only operations by other callers.
	ErrNotRegistrar = errors.New("caller is not the registrar")
	// ErrUsernameTaken rejects registering a name twice.
	ErrUsernameTaken = errors.New("username is already registered")
	// ErrUsernameNotFound means no patronage account exists for the name.
	ErrUsernameNotFound = errors.New("username is not registered")
	// ErrNotPayoutAccount rejects payout rotation by anyone but the current payout account.
	ErrNotPayoutAccount = errors.New("caller is not the payout account")
	// ErrZeroDonation rejects non-positive donations.
	ErrZeroDonation = errors.New("donation amount must be positive")
	// ErrNothingToWithdraw rejects withdrawing an empty patronage balance.
	ErrNothingToWithdraw = errors.New("patronage balance is zero")
	// ErrEmptyAccount rejects empty account identifiers.
	ErrEmptyAccount = errors.New("account must not be empty")
)

// shareholderDivisor fixes the revenue split: one tenth of every payout goes
// to the shareholder account, the rest to the name's payout account.
const shareholderDivisor = 10

// Sink receives the payments a withdrawal produces. The registry never
// holds payable balances itself beyond the pending patronage totals.
type Sink interface {
	Pay(account string, amount int64) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(account string, amount int64) error

// Pay calls f.
func (f SinkFunc) Pay(account string, amount int64) error {
	return f(account, amount)
}

// Registry maps registered usernames to patronage accounts and splits every
// payout between the name's payout account and a fixed shareholder account.
// It shares no state with the exchange.
type Registry struct {
	mu           sync.RWMutex
	registrar    string
	shareholders string
	names        map[string]*Patronage
	sink         Sink
}

// Patronage is the revenue account registered for a single username.
type Patronage struct {
	mu            sync.Mutex
	username      string
	payoutAccount string
	shareholders  string
	balance       int64
	sink          Sink
}

// NewRegistry creates a registry controlled by registrar, paying the
// shareholder cut of every withdrawal to shareholders.
func NewRegistry(registrar, shareholders string, sink Sink) (*Registry, error) {
	if registrar == "" || shareholders == "" {
		return nil, ErrEmptyAccount
	}
	return &Registry{
		registrar:    registrar,
		shareholders: shareholders,
		names:        make(map[string]*Patronage),
		sink:         sink,
	}, nil
}

// Registrar returns the account allowed to register names.
func (r *Registry) Registrar() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.registrar
}

// Shareholders returns the fixed shareholder account.
func (r *Registry) Shareholders() string {
	return r.shareholders
}

// UpdateRegistrar hands registrar control to next. Registrar-only.
func (r *Registry) UpdateRegistrar(next, caller string) error {
	if next == "" {
		return ErrEmptyAccount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.registrar {
		return ErrNotRegistrar
	}
	r.registrar = next
	return nil
}

// RegisterUsername creates a patronage account for the name paying out to
// payoutAccount. Registrar-only; names are never reassigned.
func (r *Registry) RegisterUsername(username, payoutAccount, caller string) error {
	if username == "" || payoutAccount == "" {
		return ErrEmptyAccount
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.registrar {
		return ErrNotRegistrar
	}
	if _, exists := r.names[username]; exists {
		return ErrUsernameTaken
	}
	r.names[username] = &Patronage{
		username:      username,
		payoutAccount: payoutAccount,
		shareholders:  r.shareholders,
		sink:          r.sink,
	}
	return nil
}

// PatronageForUsername returns the patronage account registered for the name.
func (r *Registry) PatronageForUsername(username string) (*Patronage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.names[username]
	if !exists {
		return nil, ErrUsernameNotFound
	}
	return p, nil
}

// PayoutAccount returns the account receiving the owner's share of payouts.
func (p *Patronage) PayoutAccount() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.payoutAccount
}

// UpdatePayoutAccount rotates the payout account. Only the current payout
// account may do this.
func (p *Patronage) UpdatePayoutAccount(next, caller string) error {
	if next == "" {
		return ErrEmptyAccount
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if caller != p.payoutAccount {
		return ErrNotPayoutAccount
	}
	p.payoutAccount = next
	return nil
}

// Balance returns the donations accumulated since the last withdrawal.
func (p *Patronage) Balance() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.balance
}

// Donate adds amount to the patronage balance.
func (p *Patronage) Donate(amount int64) error {
	if amount <= 0 {
		return ErrZeroDonation
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.balance += amount
	return nil
}

// Withdraw pays the accumulated balance out through the sink: a tenth to
// the shareholder account, the remainder to the payout account. The balance
// is zeroed before any payment is attempted. Withdrawing an empty balance
// is an error, unlike the exchange ledger.
func (p *Patronage) Withdraw() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.balance == 0 {
		return ErrNothingToWithdraw
	}

	amount := p.balance
	p.balance = 0

	shareholderCut := amount / shareholderDivisor
	if err := p.sink.Pay(p.shareholders, shareholderCut); err != nil {
		return err
	}
	return p.sink.Pay(p.payoutAccount, amount-shareholderCut)
}
