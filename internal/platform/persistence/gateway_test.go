package persistence_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
	"github.com/SscSPs/pos_ledger_app/internal/platform/persistence"
	"github.com/SscSPs/pos_ledger_app/internal/repositories/memory"
)

const testKey = "pos_erp_state_v1"

type recordingSyncer struct {
	mu     sync.Mutex
	pushes int
}

func (s *recordingSyncer) Push(ctx context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pushes++
	return nil
}

func (s *recordingSyncer) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushes
}

func loadState(t *testing.T, repo *memory.SnapshotRepository) domain.AppState {
	t.Helper()
	data, err := repo.LoadSnapshot(context.Background(), testKey)
	require.NoError(t, err)
	var st domain.AppState
	require.NoError(t, json.Unmarshal(data, &st))
	return st
}

func addVendor(store *state.Store, id string) {
	_ = store.Update(func(st *domain.AppState) error {
		st.Vendors = append(st.Vendors, domain.Vendor{ID: id, Name: id})
		return nil
	})
}

func TestGateway_DebounceCoalescesBursts(t *testing.T) {
	repo := memory.NewSnapshotRepository()
	syncer := &recordingSyncer{}
	store := state.NewStore(domain.DefaultState(""))
	gw := persistence.NewGateway(repo, testKey, persistence.WithDebounce(40*time.Millisecond), persistence.WithCloudSyncer(syncer))
	gw.Start(store)
	t.Cleanup(func() { _ = gw.Close(context.Background()) })

	for i := 0; i < 20; i++ {
		addVendor(store, "v"+string(rune('a'+i)))
	}

	assert.Eventually(t, func() bool { return repo.Saves() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, repo.Saves(), "a burst of changes should produce a single write")
	assert.Equal(t, 1, syncer.count())
	assert.Len(t, loadState(t, repo).Vendors, 20)
}

func TestGateway_FailedWriteKeepsStateAndRetriesOnNextChange(t *testing.T) {
	repo := memory.NewSnapshotRepository()
	store := state.NewStore(domain.DefaultState(""))
	gw := persistence.NewGateway(repo, testKey, persistence.WithDebounce(time.Hour))
	gw.Start(store)
	t.Cleanup(func() { _ = gw.Close(context.Background()) })

	repo.SetFailSaves(true)
	addVendor(store, "v1")
	assert.Error(t, gw.Flush(context.Background()))
	assert.Len(t, store.Snapshot().Vendors, 1, "in-memory state must survive a failed write")

	repo.SetFailSaves(false)
	addVendor(store, "v2")
	require.NoError(t, gw.Flush(context.Background()))
	assert.Len(t, loadState(t, repo).Vendors, 2)
}

func TestGateway_CloseFlushesPendingChanges(t *testing.T) {
	repo := memory.NewSnapshotRepository()
	store := state.NewStore(domain.DefaultState(""))
	gw := persistence.NewGateway(repo, testKey, persistence.WithDebounce(time.Hour))
	gw.Start(store)

	addVendor(store, "v1")
	require.NoError(t, gw.Close(context.Background()))

	assert.Equal(t, 1, repo.Saves())
	assert.Len(t, loadState(t, repo).Vendors, 1)
}

func TestGateway_LoadFallbacks(t *testing.T) {
	ctx := context.Background()

	t.Run("missing snapshot yields default state", func(t *testing.T) {
		gw := persistence.NewGateway(memory.NewSnapshotRepository(), testKey)
		st := gw.Load(ctx, "bank")
		require.NotNil(t, st.Account(domain.CashAccountID))
		require.NotNil(t, st.Account("bank"))
		assert.Empty(t, st.Transactions)
	})

	t.Run("corrupt snapshot yields default state", func(t *testing.T) {
		repo := memory.NewSnapshotRepository()
		repo.Put(testKey, []byte("{not json"))
		st := persistence.NewGateway(repo, testKey).Load(ctx, "bank")
		assert.Len(t, st.Accounts, 2)
		assert.True(t, st.Account(domain.CashAccountID).Balance.IsZero())
	})

	t.Run("legacy key is used when the versioned key is missing", func(t *testing.T) {
		repo := memory.NewSnapshotRepository()
		repo.Put(persistence.LegacySnapshotKey, []byte(`{"accounts":[{"id":"cash","name":"Cash","kind":"CASH","balance":"75"}],"posSession":{"cart":[1,2]}}`))
		st := persistence.NewGateway(repo, testKey).Load(ctx, "bank")
		assert.True(t, decimal.NewFromInt(75).Equal(st.Account(domain.CashAccountID).Balance))
		assert.NotNil(t, st.Account("bank"), "missing well-known accounts are re-seeded")
		assert.JSONEq(t, `{"cart":[1,2]}`, string(st.POSSession))
		assert.NotNil(t, st.Products)
	})
}
