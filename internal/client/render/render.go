// Package render projects cache snapshots into terminal output. Every
// function is pure: same snapshot in, same string out, no I/O and no
// mutation, so callers may re-render speculatively at any time.
package render

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/walletdash/walletdash/internal/client/models"
)

const (
	timeLayout = "2006-01-02 15:04"

	emptyWallets      = "No wallets yet. Use 'create' to add one."
	emptyTransactions = "No transactions found."
)

// FormatAddress abbreviates a wallet address to first 6 + "..." + last 4
// characters. Addresses too short to abbreviate are returned unchanged.
func FormatAddress(addr string) string {
	if addr == "" {
		return "N/A"
	}
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// FormatAmount renders an ETH amount with exactly 4 decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(4) + " ETH"
}

// FormatTime renders an API timestamp; the zero time renders "N/A".
func FormatTime(t models.APITime) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(timeLayout)
}

// TypeLabel maps a transaction type to its display label. Anything outside
// the known kinds shows "Unknown".
func TypeLabel(t models.TxType) string {
	switch t {
	case models.TxTypeDeposit:
		return "deposit"
	case models.TxTypeTransfer:
		return "transfer"
	default:
		return "Unknown"
	}
}

// Wallets renders the wallet table.
func Wallets(wallets []models.Wallet) string {
	if len(wallets) == 0 {
		return mutedStyle.Render(emptyWallets) + "\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("LABEL\tADDRESS\tBALANCE\tCREATED"))
	for _, wallet := range wallets {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			wallet.Label,
			FormatAddress(wallet.Address),
			FormatAmount(wallet.Balance),
			FormatTime(wallet.CreatedAt),
		)
	}
	_ = w.Flush()
	return b.String()
}

// Transactions renders the merged history table, assuming the input is
// already sorted newest first.
func Transactions(txs []models.Transaction) string {
	if len(txs) == 0 {
		return mutedStyle.Render(emptyTransactions) + "\n"
	}

	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, headerStyle.Render("DATE\tFROM\tTO\tAMOUNT\tTYPE\tSTATUS"))
	for _, tx := range txs {
		status := tx.Status
		if status == "" {
			status = "success"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			FormatTime(tx.CreatedAt),
			FormatAddress(tx.FromWallet),
			FormatAddress(tx.ToWallet),
			FormatAmount(tx.Amount),
			typeBadge(tx.Type),
			status,
		)
	}
	_ = w.Flush()
	return b.String()
}

// WalletOptions renders the numbered pick list used by prompts that need a
// wallet choice (the terminal stand-in for a dropdown).
func WalletOptions(wallets []models.Wallet) string {
	var b strings.Builder
	for i, w := range wallets {
		fmt.Fprintf(&b, "%d) %s (%s) %s\n",
			i+1, w.Label, FormatAddress(w.Address), FormatAmount(w.Balance))
	}
	return b.String()
}
