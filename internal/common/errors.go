// Package common defines shared constants and sentinel errors used across
// the walletdash client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors. Nothing is sent over the network when one of
	// these is returned; the message is shown inline to the user.
	ErrValidation = errors.New("validation error")

	// Secondary-password gate errors.
	ErrSecondaryPasswordNotSet   = errors.New("secondary password not set")
	ErrSecondaryPasswordMismatch = errors.New("incorrect secondary password")
)
