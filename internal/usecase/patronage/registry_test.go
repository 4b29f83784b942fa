package patronage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink captures payments for assertions.
type recordingSink struct {
	payments map[string]int64
}

func newRecordingSink() *recordingSink {
	return &recordingSink{payments: make(map[string]int64)}
}

func (s *recordingSink) Pay(account string, amount int64) error {
	s.payments[account] += amount
	return nil
}

func newTestRegistry(t *testing.T) (*Registry, *recordingSink) {
	t.Helper()
	sink := newRecordingSink()
	registry, err := NewRegistry("registrar", "shareholders", sink)
	require.NoError(t, err)
	return registry, sink
}

func TestNewRegistry_RequiresAccounts(t *testing.T) {
	_, err := NewRegistry("", "shareholders", newRecordingSink())
	assert.ErrorIs(t, err, ErrEmptyAccount)

	_, err = NewRegistry("registrar", "", newRecordingSink())
	assert.ErrorIs(t, err, ErrEmptyAccount)
}

func TestRegistry_UpdateRegistrar(t *testing.T) {
	registry, _ := newTestRegistry(t)

	require.NoError(t, registry.UpdateRegistrar("next", "registrar"))
	assert.Equal(t, "next", registry.Registrar())
}

func TestRegistry_UpdateRegistrarOnlyByRegistrar(t *testing.T) {
	registry, _ := newTestRegistry(t)

	err := registry.UpdateRegistrar("mallory", "mallory")
	assert.ErrorIs(t, err, ErrNotRegistrar)
	assert.Equal(t, "registrar", registry.Registrar())
}

func TestRegistry_RegisterUsername(t *testing.T) {
	registry, _ := newTestRegistry(t)

	require.NoError(t, registry.RegisterUsername("streamer", "payout", "registrar"))

	p, err := registry.PatronageForUsername("streamer")
	require.NoError(t, err)
	assert.Equal(t, "payout", p.PayoutAccount())
}

func TestRegistry_RegisterOnlyByRegistrar(t *testing.T) {
	registry, _ := newTestRegistry(t)

	err := registry.RegisterUsername("streamer", "mallory", "mallory")
	assert.ErrorIs(t, err, ErrNotRegistrar)

	_, err = registry.PatronageForUsername("streamer")
	assert.ErrorIs(t, err, ErrUsernameNotFound)
}

func TestRegistry_DuplicateNameRejected(t *testing.T) {
	registry, _ := newTestRegistry(t)

	require.NoError(t, registry.RegisterUsername("streamer", "payout", "registrar"))

	err := registry.RegisterUsername("streamer", "other", "registrar")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// The original registration stands.
	p, err := registry.PatronageForUsername("streamer")
	require.NoError(t, err)
	assert.Equal(t, "payout", p.PayoutAccount())
}

func TestPatronage_UpdatePayoutAccount(t *testing.T) {
	registry, _ := newTestRegistry(t)
	require.NoError(t, registry.RegisterUsername("streamer", "payout", "registrar"))

	p, err := registry.PatronageForUsername("streamer")
	require.NoError(t, err)

	require.NoError(t, p.UpdatePayoutAccount("fresh", "payout"))
	assert.Equal(t, "fresh", p.PayoutAccount())
}

func TestPatronage_UpdatePayoutAccountOnlyByOwner(t *testing.T) {
	registry, _ := newTestRegistry(t)
	require.NoError(t, registry.RegisterUsername("streamer", "payout", "registrar"))

	p, err := registry.PatronageForUsername("streamer")
	require.NoError(t, err)

	// Even the registrar may not rotate someone else's payout account.
	err = p.UpdatePayoutAccount("mallory", "registrar")
	assert.ErrorIs(t, err, ErrNotPayoutAccount)
	assert.Equal(t, "payout", p.PayoutAccount())
}

func TestPatronage_WithdrawZeroBalanceFails(t *testing.T) {
	registry, _ := newTestRegistry(t)
	require.NoError(t, registry.RegisterUsername("streamer", "payout", "registrar"))

	p, err := registry.PatronageForUsername("streamer")
	require.NoError(t, err)

	assert.ErrorIs(t, p.Withdraw(), ErrNothingToWithdraw)
}

func TestPatronage_WithdrawSplitsNinetyTen(t *testing.T) {
	registry, sink := newTestRegistry(t)
	require.NoError(t, registry.RegisterUsername("streamer", "payout", "registrar"))

	p, err := registry.PatronageForUsername("streamer")
	require.NoError(t, err)

	require.NoError(t, p.Donate(10000))
	assert.Equal(t, int64(10000), p.Balance())

	require.NoError(t, p.Withdraw())

	assert.Equal(t, int64(0), p.Balance())
	assert.Equal(t, int64(9000), sink.payments["payout"])
	assert.Equal(t, int64(1000), sink.payments["shareholders"])
}

func TestPatronage_DonationsAccumulate(t *testing.T) {
	registry, sink := newTestRegistry(t)
	require.NoError(t, registry.RegisterUsername("streamer", "payout", "registrar"))

	p, err := registry.PatronageForUsername("streamer")
	require.NoError(t, err)

	require.NoError(t, p.Donate(60))
	require.NoError(t, p.Donate(40))
	require.NoError(t, p.Withdraw())

	assert.Equal(t, int64(90), sink.payments["payout"])
	assert.Equal(t, int64(10), sink.payments["shareholders"])
}

func TestPatronage_DonateRejectsNonPositive(t *testing.T) {
	registry, _ := newTestRegistry(t)
	require.NoError(t, registry.RegisterUsername("streamer", "payout", "registrar"))

	p, err := registry.PatronageForUsername("streamer")
	require.NoError(t, err)

	assert.ErrorIs(t, p.Donate(0), ErrZeroDonation)
	assert.ErrorIs(t, p.Donate(-5), ErrZeroDonation)
	assert.Equal(t, int64(0), p.Balance())
}

func TestSinkFunc_Adapts(t *testing.T) {
	paid := int64(0)
	sink := SinkFunc(func(account string, amount int64) error {
		paid += amount
		return nil
	})

	require.NoError(t, sink.Pay("anyone", 42))
	assert.Equal(t, int64(42), paid)
}
