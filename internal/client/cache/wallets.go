// Package cache holds the two process-wide snapshots the dashboard renders
// from: the wallet list and the merged transaction history. The remote
// service is the sole source of truth; snapshots are replaced wholesale on a
// successful fetch and cleared on every mutation.
package cache

import (
	"context"
	"sync"

	"github.com/walletdash/walletdash/internal/client/models"
)

// WalletSource is the slice of the API gateway the wallet cache needs.
type WalletSource interface {
	UserWallets(ctx context.Context, userID int64) ([]models.Wallet, error)
}

// WalletCache caches the last successfully fetched wallet list. A nil
// snapshot means "must refetch". Instances are owned by the app session,
// never package-global.
type WalletCache struct {
	src WalletSource

	mu       sync.RWMutex
	snapshot []models.Wallet
}

func NewWalletCache(src WalletSource) *WalletCache {
	return &WalletCache{src: src}
}

// Refresh always refetches. On success the snapshot is replaced atomically;
// on failure the prior snapshot is left untouched and the error is returned.
func (c *WalletCache) Refresh(ctx context.Context, userID int64) ([]models.Wallet, error) {
	wallets, err := c.src.UserWallets(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallets == nil {
		wallets = []models.Wallet{}
	}

	c.mu.Lock()
	c.snapshot = wallets
	c.mu.Unlock()
	return wallets, nil
}

// Get returns the last snapshot without network I/O. Nil means absent.
func (c *WalletCache) Get() []models.Wallet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Invalidate clears the snapshot, forcing the next consumer to refetch.
func (c *WalletCache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}
