// Package persistence flushes the entity store to a snapshot blob store after a
// quiet period and restores it on start.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/pos_ledger_app/internal/apperrors"
	"github.com/SscSPs/pos_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_ledger_app/internal/core/state"
)

// LegacySnapshotKey is the unversioned key older installs wrote to.
const LegacySnapshotKey = "pos_erp_state"

// Gateway owns the debounce timer between the store and the blob store. A single
// goroutine does all flushing; store writers only post a non-blocking signal.
type Gateway struct {
	repo      portsrepo.SnapshotRepositoryFacade
	key       string
	legacyKey string
	debounce  time.Duration
	timeout   time.Duration
	syncer    portsrepo.CloudSyncer
	logger    *slog.Logger

	store     *state.Store
	changes   chan struct{}
	flushReq  chan chan error
	done      chan struct{}
	stopped   chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithDebounce sets the quiet period after the last change before a flush.
func WithDebounce(d time.Duration) Option {
	return func(g *Gateway) { g.debounce = d }
}

// WithTimeout bounds each snapshot write.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.timeout = d }
}

// WithCloudSyncer pushes every successful flush to a remote copy.
func WithCloudSyncer(syncer portsrepo.CloudSyncer) Option {
	return func(g *Gateway) { g.syncer = syncer }
}

// WithLegacyKey overrides the key tried when the versioned key is missing.
func WithLegacyKey(key string) Option {
	return func(g *Gateway) { g.legacyKey = key }
}

// WithLogger sets the logger used by the background flusher.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) { g.logger = logger }
}

// NewGateway creates a gateway writing to repo under key.
func NewGateway(repo portsrepo.SnapshotRepositoryFacade, key string, options ...Option) *Gateway {
	g := &Gateway{
		repo:      repo,
		key:       key,
		legacyKey: LegacySnapshotKey,
		debounce:  time.Second,
		timeout:   5 * time.Second,
		logger:    slog.Default(),
		changes:   make(chan struct{}, 1),
		flushReq:  make(chan chan error),
		done:      make(chan struct{}),
		stopped:   make(chan struct{}),
	}
	for _, option := range options {
		option(g)
	}
	return g
}

// Load restores the persisted state. A missing versioned key falls back to the
// legacy key; a missing or unreadable blob yields the seeded default state. Load
// never fails: problems are logged and the default is used.
func (g *Gateway) Load(ctx context.Context, bankAccountID string) domain.AppState {
	for _, key := range []string{g.key, g.legacyKey} {
		if key == "" {
			continue
		}
		data, err := g.loadWithTimeout(ctx, key)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			g.logger.Error("Failed to read snapshot, starting from default state", slog.String("key", key), slog.String("error", err.Error()))
			return domain.DefaultState(bankAccountID)
		}
		st, err := Decode(data, bankAccountID)
		if err != nil {
			g.logger.Error("Snapshot is corrupt, starting from default state", slog.String("key", key), slog.String("error", err.Error()))
			return domain.DefaultState(bankAccountID)
		}
		if key != g.key {
			g.logger.Info("Loaded legacy snapshot, it will be written under the new key on the next flush", slog.String("legacy_key", key), slog.String("key", g.key))
		}
		return st
	}
	g.logger.Info("No snapshot found, starting from default state", slog.String("key", g.key))
	return domain.DefaultState(bankAccountID)
}

func (g *Gateway) loadWithTimeout(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	return g.repo.LoadSnapshot(ctx, key)
}

// Decode parses a snapshot blob. Absent collections become empty and the well
// known accounts are re-seeded if they are missing.
func Decode(data []byte, bankAccountID string) (domain.AppState, error) {
	var st domain.AppState
	if err := json.Unmarshal(data, &st); err != nil {
		return domain.AppState{}, fmt.Errorf("decode snapshot: %w", err)
	}
	seed := domain.DefaultState(bankAccountID)
	if st.Products == nil {
		st.Products = seed.Products
	}
	if st.Categories == nil {
		st.Categories = seed.Categories
	}
	if st.Transactions == nil {
		st.Transactions = seed.Transactions
	}
	if st.PurchaseOrders == nil {
		st.PurchaseOrders = seed.PurchaseOrders
	}
	if st.Vendors == nil {
		st.Vendors = seed.Vendors
	}
	if st.Customers == nil {
		st.Customers = seed.Customers
	}
	if st.RecurringExpenses == nil {
		st.RecurringExpenses = seed.RecurringExpenses
	}
	if st.DaySessions == nil {
		st.DaySessions = seed.DaySessions
	}
	for _, account := range seed.Accounts {
		if st.Account(account.ID) == nil {
			st.Accounts = append(st.Accounts, account)
		}
	}
	return st, nil
}

// Start subscribes to store changes and runs the flusher until Close.
func (g *Gateway) Start(store *state.Store) {
	g.startOnce.Do(func() {
		g.store = store
		store.OnChange(g.Notify)
		go g.run()
	})
}

// Notify records that the state changed. It never blocks; signals posted while
// one is already pending coalesce into it.
func (g *Gateway) Notify() {
	select {
	case g.changes <- struct{}{}:
	default:
	}
}

func (g *Gateway) run() {
	defer close(g.stopped)

	timer := time.NewTimer(g.debounce)
	timer.Stop()
	pending := false

	for {
		select {
		case <-g.changes:
			// Each change supersedes the pending flush.
			timer.Reset(g.debounce)
			pending = true
		case <-timer.C:
			pending = false
			_ = g.flush()
		case reply := <-g.flushReq:
			timer.Stop()
			pending = false
			reply <- g.flush()
		case <-g.done:
			timer.Stop()
			select {
			case <-g.changes:
				pending = true
			default:
			}
			if pending {
				_ = g.flush()
			}
			return
		}
	}
}

// Flush writes the current state immediately and reports the write error.
func (g *Gateway) Flush(ctx context.Context) error {
	if g.store == nil {
		return errors.New("persistence gateway not started")
	}
	reply := make(chan error, 1)
	select {
	case g.flushReq <- reply:
	case <-g.stopped:
		return errors.New("persistence gateway closed")
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes pending changes and stops the flusher, waiting at most until
// ctx is done.
func (g *Gateway) Close(ctx context.Context) error {
	if g.store == nil {
		return nil
	}
	g.closeOnce.Do(func() { close(g.done) })
	select {
	case <-g.stopped:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("persistence gateway did not stop in time: %w", ctx.Err())
	}
}

func (g *Gateway) flush() error {
	data, err := json.Marshal(g.store.Snapshot())
	if err != nil {
		g.logger.Error("Failed to encode snapshot", slog.String("error", err.Error()))
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()
	if err := g.repo.SaveSnapshot(ctx, g.key, data); err != nil {
		// State stays authoritative in memory; the next change retries.
		g.logger.Error("Failed to persist snapshot", slog.String("key", g.key), slog.String("error", err.Error()))
		return err
	}
	g.logger.Debug("Snapshot persisted", slog.String("key", g.key), slog.Int("bytes", len(data)))

	if g.syncer != nil {
		if err := g.syncer.Push(ctx, g.key, data); err != nil {
			g.logger.Warn("Cloud sync failed", slog.String("key", g.key), slog.String("error", err.Error()))
		}
	}
	return nil
}

// NoopCloudSyncer is the cloud sync used when no remote is configured.
type NoopCloudSyncer struct{}

// Push does nothing.
func (NoopCloudSyncer) Push(ctx context.Context, key string, data []byte) error {
	return nil
}
