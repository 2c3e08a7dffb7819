package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// TxType classifies a transaction. Anything the service reports outside the
// known kinds collapses to TxTypeOther, which the renderer shows as "Unknown".
type TxType string

const (
	TxTypeDeposit  TxType = "deposit"
	TxTypeTransfer TxType = "transfer"
	TxTypeOther    TxType = "other"
)

// ParseTxType normalizes a wire value to a known TxType.
func ParseTxType(s string) TxType {
	switch TxType(s) {
	case TxTypeDeposit, TxTypeTransfer:
		return TxType(s)
	default:
		return TxTypeOther
	}
}

func (t *TxType) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*t = ParseTxType(raw)
	return nil
}

// Transaction is one ledger entry as reported by the per-wallet transaction
// endpoint. FromWallet/ToWallet hold raw addresses; at least one of them
// belongs to a wallet of the current user.
type Transaction struct {
	ID         int64           `json:"id,omitempty"`
	FromWallet string          `json:"from_wallet"`
	ToWallet   string          `json:"to_wallet"`
	Amount     decimal.Decimal `json:"amount"`
	Type       TxType          `json:"type"`
	Status     string          `json:"status,omitempty"`
	Hash       string          `json:"hash,omitempty"`
	CreatedAt  APITime         `json:"created_at"`
}
