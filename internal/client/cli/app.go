// Package cli is the interactive terminal frontend of walletdash: a REPL
// that wires the config, the local database, the API gateway, the caches and
// the services together and maps their errors to user-facing messages.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/walletdash/walletdash/internal/client/api"
	"github.com/walletdash/walletdash/internal/client/cache"
	"github.com/walletdash/walletdash/internal/client/config"
	"github.com/walletdash/walletdash/internal/client/models"
	"github.com/walletdash/walletdash/internal/client/session"
	"github.com/walletdash/walletdash/internal/client/services"
	"github.com/walletdash/walletdash/internal/common"
	"github.com/walletdash/walletdash/internal/logging"

	_ "modernc.org/sqlite"
)

// App owns the wiring of the client: one database, one gateway, one set of
// caches and services, and the identity of the currently logged-in user.
type App struct {
	config *config.Config
	logger logging.Logger

	db        *sql.DB
	auth      services.AuthService
	walletSvc services.WalletService

	reader *bufio.Reader
	out    io.Writer

	mu    sync.Mutex
	token string
	user  *models.User
}

// NewApp opens the local database, builds the gateway and the services, and
// restores the persisted session when one exists.
func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	db, err := session.OpenDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init local database: %w", err)
	}

	store := session.NewStore(db, logger)

	app := &App{
		config: cfg,
		logger: logger.With("component", "cli"),
		db:     db,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, app.currentToken, logger)
	wallets := cache.NewWalletCache(apiClient)
	txs := cache.NewTransactionAggregator(apiClient, wallets, logger)

	app.auth = services.NewAuthService(apiClient, store)
	app.walletSvc = services.NewWalletService(apiClient, store, wallets, txs)

	if err := app.restoreSession(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return app, nil
}

// Run starts the REPL and blocks until the user exits or stdin closes.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	fmt.Fprintln(a.out, "walletdash (type 'help' for commands)")
	if name := a.userName(); name != "" {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", name)
		// Warm both caches so the first 'wallets' is instant.
		if _, err := a.walletSvc.RefreshTransactions(ctx); err != nil {
			a.handleErr(ctx, err)
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

// restoreSession loads the persisted session into memory. Absence is fine;
// the user simply starts logged out.
func (a *App) restoreSession(ctx context.Context) error {
	sess, err := a.auth.Session(ctx)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if sess != nil {
		a.setSession(sess)
	}
	return nil
}

// currentToken is the TokenSource handed to the gateway.
func (a *App) currentToken() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *App) setSession(sess *models.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = sess.AccessToken
	user := sess.User
	a.user = &user
}

func (a *App) clearSession() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = ""
	a.user = nil
}

func (a *App) userName() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return ""
	}
	return a.user.Name
}

func (a *App) isLoggedIn() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user != nil
}

func (a *App) status() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.user.Name)
}

// handleErr maps service errors to user-facing messages. Session expiry
// drops the local session so the prompt reflects the logged-out state.
func (a *App) handleErr(ctx context.Context, err error) {
	switch {
	case errors.Is(err, api.ErrSessionExpired):
		// Announce the expiry only on the transition to logged-out, so
		// repeated failures do not repeat the message.
		if a.isLoggedIn() {
			a.clearSession()
			if logoutErr := a.auth.Logout(ctx); logoutErr != nil {
				a.logger.Warn(ctx, "clearing expired session failed", "error", logoutErr)
			}
			fmt.Fprintln(a.out, "Your session has expired. Please login again.")
		} else {
			fmt.Fprintln(a.out, "Please login first.")
		}

	case errors.Is(err, common.ErrSecondaryPasswordNotSet):
		fmt.Fprintln(a.out, "No secondary password set. Use 'setpin' first.")

	case errors.Is(err, common.ErrSecondaryPasswordMismatch):
		fmt.Fprintln(a.out, "Wrong secondary password.")

	case errors.Is(err, common.ErrValidation):
		fmt.Fprintln(a.out, capitalizeError(err))

	default:
		var apiErr *api.Error
		var netErr *api.NetworkError
		switch {
		case errors.As(err, &apiErr):
			fmt.Fprintln(a.out, apiErr.Message)
		case errors.As(err, &netErr):
			a.logger.Warn(ctx, "request failed", "error", err)
			fmt.Fprintln(a.out, "Cannot reach the wallet service. Check that the server is running.")
		default:
			a.logger.Error(ctx, "command failed", "error", err)
			fmt.Fprintln(a.out, "Something went wrong:", err)
		}
	}
}

// capitalizeError renders a validation error without the sentinel prefix.
func capitalizeError(err error) string {
	msg := err.Error()
	if cut, ok := strings.CutPrefix(msg, common.ErrValidation.Error()+": "); ok {
		msg = cut
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
