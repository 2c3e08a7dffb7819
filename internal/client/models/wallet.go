package models

import "github.com/shopspring/decimal"

// Wallet is a custodial blockchain address record held by the remote
// service. Balance is authoritative only as of the last fetch; the client
// never mutates it locally, snapshots are replaced wholesale.
type Wallet struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id,omitempty"`
	Address string `json:"address"`
	Label   string `json:"label"`

	Balance   decimal.Decimal `json:"balance"`
	CreatedAt APITime         `json:"created_at,omitempty"`

	// PrivateKey is populated only by the reveal endpoints.
	PrivateKey string `json:"private_key,omitempty"`
}
