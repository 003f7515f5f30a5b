package state_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UpdateFiresHooks(t *testing.T) {
	store := state.NewStore(domain.DefaultState(""))
	calls := 0
	store.OnChange(func() { calls++ })

	err := store.Update(func(st *domain.AppState) error {
		st.Account(domain.CashAccountID).Balance = decimal.NewFromInt(10)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	snap := store.Snapshot()
	assert.Equal(t, "10", snap.Account(domain.CashAccountID).Balance.String())
}

func TestStore_FailedUpdateSkipsHooks(t *testing.T) {
	store := state.NewStore(domain.DefaultState(""))
	calls := 0
	store.OnChange(func() { calls++ })

	boom := errors.New("boom")
	err := store.Update(func(st *domain.AppState) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, calls)
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	store := state.NewStore(domain.DefaultState(""))
	snap := store.Snapshot()
	snap.Accounts[0].Balance = decimal.NewFromInt(99)

	store.View(func(st *domain.AppState) {
		assert.True(t, st.Accounts[0].Balance.IsZero())
	})
}

func TestStore_ConcurrentUpdatesAreSerialized(t *testing.T) {
	store := state.NewStore(domain.DefaultState(""))
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(func(st *domain.AppState) error {
				acc := st.Account(domain.CashAccountID)
				acc.Balance = acc.Balance.Add(decimal.NewFromInt(1))
				return nil
			})
		}()
	}
	wg.Wait()
	snap := store.Snapshot()
	assert.Equal(t, "50", snap.Account(domain.CashAccountID).Balance.String())
}
