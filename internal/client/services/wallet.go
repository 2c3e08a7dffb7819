package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/walletdash/walletdash/internal/client/api"
	"github.com/walletdash/walletdash/internal/client/cache"
	"github.com/walletdash/walletdash/internal/client/models"
	"github.com/walletdash/walletdash/internal/client/session"
	"github.com/walletdash/walletdash/internal/common"
)

// DefaultWalletLabel is used when a wallet is created without a label.
const DefaultWalletLabel = "My Wallet"

// ExportFormats lists the wallet export formats the server understands.
var ExportFormats = []string{"json", "keystore"}

// WalletService defines wallet and transaction operations for the CLI.
//
// Read operations serve from the local caches and only hit the server on
// an explicit refresh or when the cache is cold. Mutating operations gate
// on the secondary password, call the server, and invalidate the caches
// so the next read reflects the change.
type WalletService interface {
	Wallets(ctx context.Context) ([]models.Wallet, error)
	RefreshWallets(ctx context.Context) ([]models.Wallet, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
	RefreshTransactions(ctx context.Context) ([]models.Transaction, error)
	TransactionsByAddress(ctx context.Context, address string) ([]models.Transaction, error)

	Create(ctx context.Context, label string) (*models.Wallet, error)
	Delete(ctx context.Context, walletID int64) error
	Deposit(ctx context.Context, walletAddress string, amount decimal.Decimal, secondary []byte) (string, error)
	Transfer(ctx context.Context, fromWallet, toWallet string, amount decimal.Decimal, secondary []byte) (string, error)
	RevealKey(ctx context.Context, walletAddress string, secondary []byte) (string, error)
	Export(ctx context.Context, walletAddress, format string, secondary []byte) (string, error)
}

type walletService struct {
	client  api.Client
	store   *session.Store
	wallets *cache.WalletCache
	txs     *cache.TransactionAggregator
}

// NewWalletService constructs a WalletService over the gateway, the session
// store and the two caches.
func NewWalletService(client api.Client, store *session.Store, wallets *cache.WalletCache, txs *cache.TransactionAggregator) WalletService {
	return &walletService{client: client, store: store, wallets: wallets, txs: txs}
}

// Wallets returns the cached wallet list, fetching it when the cache is cold.
func (w *walletService) Wallets(ctx context.Context) ([]models.Wallet, error) {
	if cached := w.wallets.Get(); cached != nil {
		return cached, nil
	}
	return w.RefreshWallets(ctx)
}

// RefreshWallets fetches the wallet list from the server and updates the
// cache.
func (w *walletService) RefreshWallets(ctx context.Context) ([]models.Wallet, error) {
	sess, err := w.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	return w.wallets.Refresh(ctx, sess.User.ID)
}

// Transactions returns the cached aggregated history, building it when the
// cache is cold.
func (w *walletService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	if cached := w.txs.Get(); cached != nil {
		return cached, nil
	}
	return w.RefreshTransactions(ctx)
}

// RefreshTransactions rebuilds the aggregated history across all wallets.
func (w *walletService) RefreshTransactions(ctx context.Context) ([]models.Transaction, error) {
	sess, err := w.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	return w.txs.Refresh(ctx, sess.User.ID)
}

// TransactionsByAddress fetches the history of a single wallet directly,
// bypassing the aggregate cache.
func (w *walletService) TransactionsByAddress(ctx context.Context, address string) ([]models.Transaction, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return nil, fmt.Errorf("%w: wallet address is required", common.ErrValidation)
	}
	if _, err := w.requireSession(ctx); err != nil {
		return nil, err
	}
	return w.client.WalletTransactions(ctx, address)
}

// Create adds a wallet. An empty label falls back to DefaultWalletLabel.
func (w *walletService) Create(ctx context.Context, label string) (*models.Wallet, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultWalletLabel
	}

	sess, err := w.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	wallet, err := w.client.CreateWallet(ctx, sess.User.ID, label)
	if err != nil {
		return nil, err
	}

	w.invalidate()
	return wallet, nil
}

// Delete removes a wallet by its numeric ID.
func (w *walletService) Delete(ctx context.Context, walletID int64) error {
	if walletID <= 0 {
		return fmt.Errorf("%w: wallet id is required", common.ErrValidation)
	}
	if _, err := w.requireSession(ctx); err != nil {
		return err
	}
	if err := w.client.DeleteWallet(ctx, walletID); err != nil {
		return err
	}
	w.invalidate()
	return nil
}

// Deposit credits the wallet. The secondary password is verified before any
// network call is made. Returns the transaction hash.
func (w *walletService) Deposit(ctx context.Context, walletAddress string, amount decimal.Decimal, secondary []byte) (string, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return "", fmt.Errorf("%w: wallet address is required", common.ErrValidation)
	}
	if amount.Sign() <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}

	if err := w.confirm(ctx, secondary); err != nil {
		return "", err
	}

	hash, err := w.client.Deposit(ctx, walletAddress, amount)
	if err != nil {
		return "", err
	}

	w.invalidate()
	return hash, nil
}

// Transfer moves funds between two wallets. The secondary password is
// verified before any network call is made. Returns the transaction hash.
func (w *walletService) Transfer(ctx context.Context, fromWallet, toWallet string, amount decimal.Decimal, secondary []byte) (string, error) {
	fromWallet = strings.TrimSpace(fromWallet)
	toWallet = strings.TrimSpace(toWallet)
	if fromWallet == "" {
		return "", fmt.Errorf("%w: source wallet is required", common.ErrValidation)
	}
	if toWallet == "" {
		return "", fmt.Errorf("%w: destination wallet is required", common.ErrValidation)
	}
	if fromWallet == toWallet {
		return "", fmt.Errorf("%w: source and destination must differ", common.ErrValidation)
	}
	if amount.Sign() <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}

	if err := w.confirm(ctx, secondary); err != nil {
		return "", err
	}

	hash, err := w.client.Transfer(ctx, fromWallet, toWallet, amount)
	if err != nil {
		return "", err
	}

	w.invalidate()
	return hash, nil
}

// RevealKey returns the wallet's private key. The secondary password is
// verified before any network call is made.
func (w *walletService) RevealKey(ctx context.Context, walletAddress string, secondary []byte) (string, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	if walletAddress == "" {
		return "", fmt.Errorf("%w: wallet address is required", common.ErrValidation)
	}
	if err := w.confirm(ctx, secondary); err != nil {
		return "", err
	}
	return w.client.RevealKey(ctx, walletAddress)
}

// Export returns the wallet serialized in the requested format. The
// secondary password is verified before any network call is made.
func (w *walletService) Export(ctx context.Context, walletAddress, format string, secondary []byte) (string, error) {
	walletAddress = strings.TrimSpace(walletAddress)
	format = strings.ToLower(strings.TrimSpace(format))
	if walletAddress == "" {
		return "", fmt.Errorf("%w: wallet address is required", common.ErrValidation)
	}
	if !validExportFormat(format) {
		return "", fmt.Errorf("%w: unsupported export format %q", common.ErrValidation, format)
	}
	if err := w.confirm(ctx, secondary); err != nil {
		return "", err
	}
	return w.client.ExportWallet(ctx, walletAddress, format)
}

func validExportFormat(format string) bool {
	for _, f := range ExportFormats {
		if f == format {
			return true
		}
	}
	return false
}

// confirm checks the session and the secondary password. The order matters:
// a dead session reports as session expiry even when the secret is wrong.
// The secret slice is wiped before return.
func (w *walletService) confirm(ctx context.Context, secondary []byte) error {
	defer common.WipeByteArray(secondary)

	if _, err := w.requireSession(ctx); err != nil {
		return err
	}
	return w.store.VerifySecondaryPassword(ctx, secondary)
}

func (w *walletService) requireSession(ctx context.Context) (*models.Session, error) {
	sess, err := w.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, api.ErrSessionExpired
	}
	return sess, nil
}

func (w *walletService) invalidate() {
	w.wallets.Invalidate()
	w.txs.Invalidate()
}
