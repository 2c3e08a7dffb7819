package cli

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/walletdash/walletdash/internal/client/render"
)

// Deposit asks for a wallet, an amount and the secondary password, then
// credits the wallet.
func (a *App) Deposit(ctx context.Context) error {
	wallet, err := a.chooseWallet(ctx, "Which wallet do you want to deposit to?")
	if err != nil {
		return err
	}

	amount, err := a.readAmount()
	if err != nil {
		return err
	}

	secondary, err := getPassword("Secondary password", a.out)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Submitting...")
	hash, err := a.walletSvc.Deposit(ctx, wallet.Address, amount, secondary)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Deposited %s to %s (tx %s)\n",
		render.FormatAmount(amount), render.FormatAddress(wallet.Address), hash)
	return nil
}

// Transfer asks for source and destination wallets, an amount and the
// secondary password, then moves the funds.
func (a *App) Transfer(ctx context.Context) error {
	from, err := a.chooseWallet(ctx, "Transfer from which wallet?")
	if err != nil {
		return err
	}

	to, err := getSimpleText(a.reader, "Destination address", a.out)
	if err != nil {
		return err
	}

	amount, err := a.readAmount()
	if err != nil {
		return err
	}

	secondary, err := getPassword("Secondary password", a.out)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Submitting...")
	hash, err := a.walletSvc.Transfer(ctx, from.Address, to, amount, secondary)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}

	fmt.Fprintf(a.out, "Transferred %s to %s (tx %s)\n",
		render.FormatAmount(amount), render.FormatAddress(to), hash)
	return nil
}

// Reveal prints a wallet's private key after the secondary password check.
func (a *App) Reveal(ctx context.Context) error {
	wallet, err := a.chooseWallet(ctx, "Reveal the key of which wallet?")
	if err != nil {
		return err
	}

	secondary, err := getPassword("Secondary password", a.out)
	if err != nil {
		return err
	}

	key, err := a.walletSvc.RevealKey(ctx, wallet.Address, secondary)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Private key:", key)
	fmt.Fprintln(a.out, "Anyone with this key controls the wallet. Do not share it.")
	return nil
}

// Export prints a wallet serialized in the chosen format after the
// secondary password check.
func (a *App) Export(ctx context.Context) error {
	wallet, err := a.chooseWallet(ctx, "Export which wallet?")
	if err != nil {
		return err
	}

	format, err := getSimpleText(a.reader, "Format (json or keystore)", a.out)
	if err != nil {
		return err
	}

	secondary, err := getPassword("Secondary password", a.out)
	if err != nil {
		return err
	}

	data, err := a.walletSvc.Export(ctx, wallet.Address, format, secondary)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, data)
	return nil
}

func (a *App) readAmount() (decimal.Decimal, error) {
	raw, err := getSimpleText(a.reader, "Amount (ETH)", a.out)
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		fmt.Fprintln(a.out, "Invalid amount:", raw)
		return decimal.Zero, err
	}
	return amount, nil
}
