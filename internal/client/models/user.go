// Package models defines the client-side data model of the wallet
// dashboard: users, sessions, wallets and transactions as the REST service
// represents them on the wire.
package models

// User is the profile returned by the auth endpoints.
type User struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	ProfileImagePath string `json:"profileImage,omitempty"`
}

// Session couples the bearer token with the profile it was issued for.
// It is persisted locally between runs and cleared on logout or when the
// server reports the token expired.
type Session struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
