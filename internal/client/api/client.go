// Package api is the gateway to the remote wallet service. It centralizes
// bearer-token injection, request correlation and error normalization so the
// rest of the client only sees models and the taxonomy in errors.go.
package api

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/walletdash/walletdash/internal/client/models"
)

// RegisterRequest carries the fields of the registration form. Image is
// optional; when set it is sent as the profile_image multipart part under
// ImageName.
type RegisterRequest struct {
	Name      string
	Email     string
	Password  []byte
	ImageName string
	Image     []byte
}

// Client defines every operation the dashboard performs against the remote
// service. The concrete implementation is HTTPClient; tests substitute fakes.
//
// All methods honor context cancellation. None of them retries: a failed
// call surfaces as one of the errors in errors.go and the caller decides
// whether to try again.
type Client interface {
	// Auth.
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Register(ctx context.Context, req RegisterRequest) error
	ChangeName(ctx context.Context, newName string) (*models.User, error)
	ChangeImage(ctx context.Context, fileName string, image []byte) (*models.User, error)

	// Wallets.
	UserWallets(ctx context.Context, userID int64) ([]models.Wallet, error)
	CreateWallet(ctx context.Context, userID int64, label string) (*models.Wallet, error)
	DeleteWallet(ctx context.Context, walletID int64) error
	Deposit(ctx context.Context, walletAddress string, amount decimal.Decimal) (string, error)
	Transfer(ctx context.Context, fromWallet, toWallet string, amount decimal.Decimal) (string, error)
	WalletByAddress(ctx context.Context, address string) (*models.Wallet, error)
	RevealKey(ctx context.Context, walletAddress string) (string, error)
	ExportWallet(ctx context.Context, walletAddress, format string) (string, error)

	// Transactions.
	WalletTransactions(ctx context.Context, address string) ([]models.Transaction, error)
}
