package cache

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/walletdash/walletdash/internal/client/api"
	"github.com/walletdash/walletdash/internal/client/models"
	"github.com/walletdash/walletdash/internal/logging"
)

// TransactionSource is the slice of the API gateway the aggregator needs.
type TransactionSource interface {
	WalletTransactions(ctx context.Context, address string) ([]models.Transaction, error)
}

// TransactionAggregator builds the merged transaction history: one fetch per
// wallet fanned out concurrently, joined at a single barrier, sorted newest
// first. A failed branch degrades to an empty list for that wallet so the
// rest of the history still renders.
type TransactionAggregator struct {
	src     TransactionSource
	wallets *WalletCache
	logger  logging.Logger

	mu       sync.RWMutex
	snapshot []models.Transaction
}

func NewTransactionAggregator(src TransactionSource, wallets *WalletCache, logger logging.Logger) *TransactionAggregator {
	return &TransactionAggregator{
		src:     src,
		wallets: wallets,
		logger:  logger.With("component", "aggregator"),
	}
}

// Refresh rebuilds the merged history for the given user. The wallet list
// comes from the wallet cache, refreshed first when absent. Zero wallets
// yields an empty result without issuing any request.
func (a *TransactionAggregator) Refresh(ctx context.Context, userID int64) ([]models.Transaction, error) {
	wallets := a.wallets.Get()
	if wallets == nil {
		var err error
		wallets, err = a.wallets.Refresh(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	merged, err := a.aggregate(ctx, wallets)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.snapshot = merged
	a.mu.Unlock()
	return merged, nil
}

// aggregate fans out one fetch per wallet and joins the results in wallet
// order, so the later stable sort breaks timestamp ties by fetch order.
func (a *TransactionAggregator) aggregate(ctx context.Context, wallets []models.Wallet) ([]models.Transaction, error) {
	if len(wallets) == 0 {
		return []models.Transaction{}, nil
	}

	results := make([][]models.Transaction, len(wallets))
	var expired atomic.Bool

	var wg sync.WaitGroup
	for i, w := range wallets {
		wg.Add(1)
		go func(i int, address string) {
			defer wg.Done()
			txs, err := a.src.WalletTransactions(ctx, address)
			if err != nil {
				if errors.Is(err, api.ErrSessionExpired) {
					expired.Store(true)
					return
				}
				a.logger.Warn(ctx, "transaction fetch failed, skipping wallet",
					"address", address, "error", err.Error())
				return
			}
			results[i] = txs
		}(i, w.Address)
	}
	wg.Wait()

	// An expired session fails every branch the same way; degrading would
	// silently render an empty history, so it propagates instead.
	if expired.Load() {
		return nil, api.ErrSessionExpired
	}

	var merged []models.Transaction
	for _, txs := range results {
		merged = append(merged, txs...)
	}
	if merged == nil {
		merged = []models.Transaction{}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt.Time)
	})
	return merged, nil
}

// Get returns the last merged snapshot without network I/O. Nil means absent.
func (a *TransactionAggregator) Get() []models.Transaction {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshot
}

// Invalidate clears the snapshot.
func (a *TransactionAggregator) Invalidate() {
	a.mu.Lock()
	a.snapshot = nil
	a.mu.Unlock()
}
