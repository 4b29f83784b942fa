package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_CreditAndBalance(t *testing.T) {
	l := New()

	assert.Equal(t, int64(0), l.Balance("alice"))

	l.Credit("alice", 100)
	l.Credit("alice", 50)
	l.Credit("bob", 25)

	assert.Equal(t, int64(150), l.Balance("alice"))
	assert.Equal(t, int64(25), l.Balance("bob"))
	assert.Equal(t, int64(175), l.Total())
}

func TestLedger_CreditIgnoresNonPositive(t *testing.T) {
	l := New()

	l.Credit("alice", 0)
	l.Credit("alice", -10)

	assert.Equal(t, int64(0), l.Balance("alice"))
	assert.Equal(t, int64(0), l.Total())
}

func TestLedger_WithdrawPaysWholeBalance(t *testing.T) {
	l := New()

	l.Credit("alice", 100)

	assert.Equal(t, int64(100), l.Withdraw("alice"))
	assert.Equal(t, int64(0), l.Balance("alice"))
	assert.Equal(t, int64(0), l.Total())
}

func TestLedger_WithdrawIsIdempotent(t *testing.T) {
	l := New()

	l.Credit("alice", 100)

	assert.Equal(t, int64(100), l.Withdraw("alice"))
	assert.Equal(t, int64(0), l.Withdraw("alice"))
	assert.Equal(t, int64(0), l.Withdraw("alice"))
}

func TestLedger_WithdrawUnknownAccount(t *testing.T) {
	l := New()

	assert.Equal(t, int64(0), l.Withdraw("nobody"))
}
