package cli

import (
	"context"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/walletdash/walletdash/internal/client/render"
)

// QR renders a wallet's receive address as a terminal QR code, so the
// address can be scanned from a phone instead of copied by hand.
func (a *App) QR(ctx context.Context) error {
	wallet, err := a.chooseWallet(ctx, "Show the address of which wallet?")
	if err != nil {
		return err
	}

	code, err := qrcode.New(wallet.Address, qrcode.Medium)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot build QR code:", err)
		return err
	}

	fmt.Fprintf(a.out, "Address %s (%s)\n", wallet.Address, render.FormatAddress(wallet.Address))
	fmt.Fprint(a.out, code.ToSmallString(false))
	return nil
}
