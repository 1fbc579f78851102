package quota

import (
	"errors"
	"testing"

	"github.com/mkraev/neurocontent-bot/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	used  int
	limit int

	err error

	consumeCalls int
	refundCalls  int
	usageCalls   int
}

func (f *fakeLedger) EnsureUser(userID int64) (*types.User, error) {
	return &types.User{UserID: userID, RequestsUsed: f.used, RequestLimit: f.limit}, f.err
}

func (f *fakeLedger) GetUsage(userID int64) (int, int, error) {
	f.usageCalls++
	return f.used, f.limit, f.err
}

func (f *fakeLedger) TryConsume(userID int64) (bool, error) {
	f.consumeCalls++
	if f.err != nil {
		return false, f.err
	}
	if f.used >= f.limit {
		return false, nil
	}
	f.used++
	return true, nil
}

func (f *fakeLedger) RefundRequest(userID int64) error {
	f.refundCalls++
	if f.used > 0 {
		f.used--
	}
	return f.err
}

func (f *fakeLedger) ApplyTariff(userID int64, tariff types.Tariff) error { return f.err }
func (f *fakeLedger) SaveGeneration(userID int64, content string) error   { return f.err }
func (f *fakeLedger) CountUsers() (int64, error)                          { return 0, f.err }
func (f *fakeLedger) CountGenerations() (int64, error)                    { return 0, f.err }
func (f *fakeLedger) SumPayments() (int64, error)                         { return 0, f.err }
func (f *fakeLedger) RecentHistory(userID int64, limit int) ([]types.HistoryEntry, error) {
	return nil, f.err
}

const adminID = int64(100500)

func TestAdmitWithinLimit(t *testing.T) {
	ledger := &fakeLedger{used: 4, limit: 5}
	g := NewGate(ledger, adminID)

	ok, err := g.Admit(42)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdmitDeniedAtLimit(t *testing.T) {
	ledger := &fakeLedger{used: 5, limit: 5}
	g := NewGate(ledger, adminID)

	ok, err := g.Admit(42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTryConsumeSpendsUnits(t *testing.T) {
	ledger := &fakeLedger{used: 0, limit: 2}
	g := NewGate(ledger, adminID)

	for i := 0; i < 2; i++ {
		ok, err := g.TryConsume(42)
		require.NoError(t, err)
		assert.True(t, ok)
	}

	ok, err := g.TryConsume(42)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = g.Admit(42)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestExemptIdentityBypassesLedger(t *testing.T) {
	ledger := &fakeLedger{used: 999, limit: 1}
	g := NewGate(ledger, adminID)

	ok, err := g.Admit(adminID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.TryConsume(adminID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, g.Refund(adminID))

	assert.Zero(t, ledger.usageCalls)
	assert.Zero(t, ledger.consumeCalls)
	assert.Zero(t, ledger.refundCalls)
}

func TestZeroAdminIDExemptsNobody(t *testing.T) {
	ledger := &fakeLedger{used: 1, limit: 1}
	g := NewGate(ledger, 0)

	ok, err := g.TryConsume(0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, ledger.consumeCalls)
}

func TestStorageErrorsPropagate(t *testing.T) {
	storageErr := errors.New("connection refused")
	ledger := &fakeLedger{err: storageErr}
	g := NewGate(ledger, adminID)

	_, err := g.Admit(42)
	assert.ErrorIs(t, err, storageErr)

	_, err = g.TryConsume(42)
	assert.ErrorIs(t, err, storageErr)
}
