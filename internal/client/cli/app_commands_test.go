package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/walletdash/walletdash/internal/client/api"
	"github.com/walletdash/walletdash/internal/client/models"
	"github.com/walletdash/walletdash/internal/client/services"
	"github.com/walletdash/walletdash/internal/common"
	"github.com/walletdash/walletdash/internal/logging"
)

type fakeAuthService struct {
	loginSession *models.Session
	loginErr     error
	logoutCalls  int
	pinSet       []byte
	user         *models.User
}

func (f *fakeAuthService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	return f.loginSession, f.loginErr
}
func (f *fakeAuthService) Register(ctx context.Context, name, email string, password []byte, imageName string, image []byte) error {
	return nil
}
func (f *fakeAuthService) Logout(ctx context.Context) error {
	f.logoutCalls++
	return nil
}
func (f *fakeAuthService) Session(ctx context.Context) (*models.Session, error) {
	return f.loginSession, nil
}
func (f *fakeAuthService) ChangeName(ctx context.Context, newName string) (*models.User, error) {
	return f.user, nil
}
func (f *fakeAuthService) ChangeImage(ctx context.Context, fileName string, image []byte) (*models.User, error) {
	return f.user, nil
}
func (f *fakeAuthService) SetSecondaryPassword(ctx context.Context, secret []byte) error {
	f.pinSet = append([]byte(nil), secret...)
	return nil
}
func (f *fakeAuthService) HasSecondaryPassword(ctx context.Context) (bool, error) {
	return f.pinSet != nil, nil
}
func (f *fakeAuthService) VerifySecondaryPassword(ctx context.Context, candidate []byte) error {
	return nil
}

var _ services.AuthService = (*fakeAuthService)(nil)

type depositCall struct {
	address string
	amount  decimal.Decimal
	pin     string
}

type fakeWalletService struct {
	wallets    []models.Wallet
	walletsErr error
	txs        []models.Transaction

	deposits    []depositCall
	depositHash string
	depositErr  error

	refreshTxCalls int
	byAddress      []string
}

func (f *fakeWalletService) Wallets(ctx context.Context) ([]models.Wallet, error) {
	return f.wallets, f.walletsErr
}
func (f *fakeWalletService) RefreshWallets(ctx context.Context) ([]models.Wallet, error) {
	return f.wallets, f.walletsErr
}
func (f *fakeWalletService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	return f.txs, nil
}
func (f *fakeWalletService) RefreshTransactions(ctx context.Context) ([]models.Transaction, error) {
	f.refreshTxCalls++
	return f.txs, nil
}
func (f *fakeWalletService) TransactionsByAddress(ctx context.Context, address string) ([]models.Transaction, error) {
	f.byAddress = append(f.byAddress, address)
	return f.txs, nil
}
func (f *fakeWalletService) Create(ctx context.Context, label string) (*models.Wallet, error) {
	w := models.Wallet{ID: 99, Address: "0x1234567890ab", Label: label}
	if label == "" {
		w.Label = services.DefaultWalletLabel
	}
	return &w, nil
}
func (f *fakeWalletService) Delete(ctx context.Context, walletID int64) error { return nil }
func (f *fakeWalletService) Deposit(ctx context.Context, walletAddress string, amount decimal.Decimal, secondary []byte) (string, error) {
	f.deposits = append(f.deposits, depositCall{walletAddress, amount, string(secondary)})
	return f.depositHash, f.depositErr
}
func (f *fakeWalletService) Transfer(ctx context.Context, fromWallet, toWallet string, amount decimal.Decimal, secondary []byte) (string, error) {
	return "0xdead", nil
}
func (f *fakeWalletService) RevealKey(ctx context.Context, walletAddress string, secondary []byte) (string, error) {
	return "0xkey", nil
}
func (f *fakeWalletService) Export(ctx context.Context, walletAddress, format string, secondary []byte) (string, error) {
	return "{}", nil
}

var _ services.WalletService = (*fakeWalletService)(nil)

func newTestApp(auth *fakeAuthService, wallet *fakeWalletService) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	app := &App{
		logger:    logging.NewJSON(io.Discard, slog.LevelError),
		auth:      auth,
		walletSvc: wallet,
		reader:    bufio.NewReader(strings.NewReader("")),
		out:       out,
	}
	return app, out
}

// stubInput replaces the interactive seams: text prompts are answered in
// order, password prompts always yield pin.
func stubInput(t *testing.T, answers []string, pin string) {
	t.Helper()
	origText, origPass := getSimpleText, getPassword
	i := 0
	getSimpleText = func(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
		if i >= len(answers) {
			t.Fatalf("unexpected prompt: %q", prompt)
		}
		a := answers[i]
		i++
		return a, nil
	}
	getPassword = func(prompt string, w io.Writer) ([]byte, error) {
		return []byte(pin), nil
	}
	t.Cleanup(func() { getSimpleText, getPassword = origText, origPass })
}

func sampleWallets() []models.Wallet {
	return []models.Wallet{
		{ID: 1, Address: "0xaaaaaaaaaaaaaaa1", Label: "Main", Balance: decimal.RequireFromString("2.5")},
		{ID: 2, Address: "0xbbbbbbbbbbbbbbb2", Label: "Savings", Balance: decimal.RequireFromString("0.1")},
	}
}

func TestLoginCommand_SetsSessionAndWarmsCaches(t *testing.T) {
	stubInput(t, []string{"b@c.org"}, "secret")
	auth := &fakeAuthService{loginSession: &models.Session{
		AccessToken: "tok", User: models.User{ID: 7, Name: "Bob"},
	}}
	wallet := &fakeWalletService{}
	app, out := newTestApp(auth, wallet)

	require.NoError(t, app.Login(context.Background()))
	require.True(t, app.isLoggedIn())
	require.Equal(t, "tok", app.currentToken())
	require.Equal(t, 1, wallet.refreshTxCalls)
	require.Contains(t, out.String(), "Welcome, Bob!")
}

func TestLoginCommand_ServerMessageShownVerbatim(t *testing.T) {
	stubInput(t, []string{"b@c.org"}, "bad")
	auth := &fakeAuthService{loginErr: &api.Error{Status: 401, Message: "invalid credentials"}}
	app, out := newTestApp(auth, &fakeWalletService{})

	require.Error(t, app.Login(context.Background()))
	require.False(t, app.isLoggedIn())
	require.Contains(t, out.String(), "invalid credentials")
}

func TestWalletsCommand_RendersTable(t *testing.T) {
	wallet := &fakeWalletService{wallets: sampleWallets()}
	app, out := newTestApp(&fakeAuthService{}, wallet)

	require.NoError(t, app.Wallets(context.Background()))
	require.Contains(t, out.String(), "Main")
	require.Contains(t, out.String(), "2.5000 ETH")
}

func TestWalletsCommand_SessionExpiredClearsIdentity(t *testing.T) {
	auth := &fakeAuthService{}
	wallet := &fakeWalletService{walletsErr: api.ErrSessionExpired}
	app, out := newTestApp(auth, wallet)
	app.setSession(&models.Session{AccessToken: "tok", User: models.User{ID: 1, Name: "Bob"}})

	require.Error(t, app.Wallets(context.Background()))
	require.False(t, app.isLoggedIn())
	require.Equal(t, "", app.currentToken())
	require.Equal(t, 1, auth.logoutCalls)
	require.Contains(t, out.String(), "session has expired")
}

func TestHistoryCommand_AddressArgument(t *testing.T) {
	wallet := &fakeWalletService{}
	app, _ := newTestApp(&fakeAuthService{}, wallet)

	require.NoError(t, app.History(context.Background(), []string{"0xabc"}))
	require.Equal(t, []string{"0xabc"}, wallet.byAddress)
}

func TestCreateCommand_JoinsLabelArgs(t *testing.T) {
	app, out := newTestApp(&fakeAuthService{}, &fakeWalletService{})

	require.NoError(t, app.Create(context.Background(), []string{"Cold", "Storage"}))
	require.Contains(t, out.String(), "Cold Storage")
}

func TestDepositCommand_FullFlow(t *testing.T) {
	stubInput(t, []string{"2", "1.5"}, "1234")
	wallet := &fakeWalletService{wallets: sampleWallets(), depositHash: "0xhash"}
	app, out := newTestApp(&fakeAuthService{}, wallet)

	require.NoError(t, app.Deposit(context.Background()))
	require.Len(t, wallet.deposits, 1)
	call := wallet.deposits[0]
	require.Equal(t, "0xbbbbbbbbbbbbbbb2", call.address)
	require.True(t, call.amount.Equal(decimal.RequireFromString("1.5")))
	require.Equal(t, "1234", call.pin)
	require.Contains(t, out.String(), "0xhash")
}

func TestDepositCommand_WrongPin(t *testing.T) {
	stubInput(t, []string{"1", "1.5"}, "9999")
	wallet := &fakeWalletService{wallets: sampleWallets(), depositErr: common.ErrSecondaryPasswordMismatch}
	app, out := newTestApp(&fakeAuthService{}, wallet)

	require.Error(t, app.Deposit(context.Background()))
	require.Contains(t, out.String(), "Wrong secondary password.")
}

func TestDepositCommand_InvalidWalletChoice(t *testing.T) {
	stubInput(t, []string{"7"}, "1234")
	wallet := &fakeWalletService{wallets: sampleWallets()}
	app, out := newTestApp(&fakeAuthService{}, wallet)

	err := app.Deposit(context.Background())
	require.ErrorIs(t, err, errInvalidChoice)
	require.Empty(t, wallet.deposits)
	require.Contains(t, out.String(), "Invalid choice.")
}

func TestDepositCommand_NoWallets(t *testing.T) {
	wallet := &fakeWalletService{}
	app, out := newTestApp(&fakeAuthService{}, wallet)

	err := app.Deposit(context.Background())
	require.ErrorIs(t, err, errNoWallets)
	require.Contains(t, out.String(), "No wallets yet.")
}

func TestSetPinCommand_Mismatch(t *testing.T) {
	origPass := getPassword
	answers := [][]byte{[]byte("1234"), []byte("5678")}
	i := 0
	getPassword = func(prompt string, w io.Writer) ([]byte, error) {
		a := answers[i]
		i++
		return a, nil
	}
	t.Cleanup(func() { getPassword = origPass })

	auth := &fakeAuthService{}
	app, out := newTestApp(auth, &fakeWalletService{})

	err := app.SetPin(context.Background())
	require.ErrorIs(t, err, errPinMismatch)
	require.Nil(t, auth.pinSet)
	require.Contains(t, out.String(), "Passwords do not match.")
}

func TestSetPinCommand_Success(t *testing.T) {
	stubInput(t, nil, "1234")
	auth := &fakeAuthService{}
	app, out := newTestApp(auth, &fakeWalletService{})

	require.NoError(t, app.SetPin(context.Background()))
	require.Equal(t, []byte("1234"), auth.pinSet)
	require.Contains(t, out.String(), "Secondary password set.")
}

func TestHandleErr_NetworkErrorHint(t *testing.T) {
	wallet := &fakeWalletService{walletsErr: &api.NetworkError{Err: io.ErrUnexpectedEOF}}
	app, out := newTestApp(&fakeAuthService{}, wallet)

	require.Error(t, app.Wallets(context.Background()))
	require.Contains(t, out.String(), "Check that the server is running.")
}

func TestHandleErr_ValidationMessage(t *testing.T) {
	wallet := &fakeWalletService{}
	app, out := newTestApp(&fakeAuthService{}, wallet)
	stubInput(t, []string{""}, "")

	app.handleErr(context.Background(), common.ErrSecondaryPasswordNotSet)
	require.Contains(t, out.String(), "Use 'setpin' first.")
}

func TestQRCommand_PrintsAddress(t *testing.T) {
	stubInput(t, []string{"1"}, "")
	wallet := &fakeWalletService{wallets: sampleWallets()}
	app, out := newTestApp(&fakeAuthService{}, wallet)

	require.NoError(t, app.QR(context.Background()))
	require.Contains(t, out.String(), "0xaaaaaaaaaaaaaaa1")
}
