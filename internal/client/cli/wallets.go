package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/walletdash/walletdash/internal/client/models"
	"github.com/walletdash/walletdash/internal/client/render"
)

// Interactive flow errors. Already reported to the user where they occur;
// callers only use them to abort the current command.
var (
	errNoWallets     = errors.New("no wallets")
	errInvalidChoice = errors.New("invalid choice")
	errPinMismatch   = errors.New("passwords do not match")
)

// Wallets prints the wallet list, fetching it when the cache is cold.
func (a *App) Wallets(ctx context.Context) error {
	wallets, err := a.walletSvc.Wallets(ctx)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}
	fmt.Fprint(a.out, render.Wallets(wallets))
	return nil
}

// History prints the aggregated transaction history. With an address
// argument it shows that single wallet's history instead.
func (a *App) History(ctx context.Context, args []string) error {
	var (
		txs []models.Transaction
		err error
	)
	if len(args) > 0 {
		txs, err = a.walletSvc.TransactionsByAddress(ctx, args[0])
	} else {
		txs, err = a.walletSvc.Transactions(ctx)
	}
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}
	fmt.Fprint(a.out, render.Transactions(txs))
	return nil
}

// Refresh refetches wallets and rebuilds the transaction history, then
// prints both.
func (a *App) Refresh(ctx context.Context) error {
	fmt.Fprintln(a.out, "Refreshing...")
	wallets, err := a.walletSvc.RefreshWallets(ctx)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}
	txs, err := a.walletSvc.RefreshTransactions(ctx)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}
	fmt.Fprint(a.out, render.Wallets(wallets))
	fmt.Fprint(a.out, render.Transactions(txs))
	return nil
}

// Create adds a wallet. The label may be passed as arguments ("create My
// Savings"); without one the service applies its default.
func (a *App) Create(ctx context.Context, args []string) error {
	label := strings.Join(args, " ")
	wallet, err := a.walletSvc.Create(ctx, label)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}
	fmt.Fprintf(a.out, "Created wallet %s (%s)\n", wallet.Label, render.FormatAddress(wallet.Address))
	return nil
}

// Delete asks which wallet to remove and deletes it.
func (a *App) Delete(ctx context.Context) error {
	wallet, err := a.chooseWallet(ctx, "Which wallet do you want to delete?")
	if err != nil {
		return err
	}

	confirm, err := getSimpleText(a.reader, fmt.Sprintf("Delete %s? Type 'yes' to confirm", render.FormatAddress(wallet.Address)), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "yes") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	if err := a.walletSvc.Delete(ctx, wallet.ID); err != nil {
		a.handleErr(ctx, err)
		return err
	}
	fmt.Fprintln(a.out, "Wallet deleted.")
	return nil
}

// chooseWallet shows a numbered wallet list and reads the user's pick.
func (a *App) chooseWallet(ctx context.Context, prompt string) (*models.Wallet, error) {
	wallets, err := a.walletSvc.Wallets(ctx)
	if err != nil {
		a.handleErr(ctx, err)
		return nil, err
	}
	if len(wallets) == 0 {
		fmt.Fprintln(a.out, "No wallets yet. Use 'create' to add one.")
		return nil, errNoWallets
	}

	fmt.Fprint(a.out, render.WalletOptions(wallets))
	answer, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}

	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(wallets) {
		fmt.Fprintln(a.out, "Invalid choice.")
		return nil, errInvalidChoice
	}
	return &wallets[n-1], nil
}
