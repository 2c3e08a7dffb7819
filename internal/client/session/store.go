// Package session owns the persisted login state of the client: the bearer
// token, the user profile, and the secondary-password hash that gates
// sensitive wallet operations.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/walletdash/walletdash/internal/client/models"
	"github.com/walletdash/walletdash/internal/client/repositories/kvstore"
	"github.com/walletdash/walletdash/internal/common"
	"github.com/walletdash/walletdash/internal/dbx"
	"github.com/walletdash/walletdash/internal/logging"
)

const (
	keyAccessToken       = "access_token"
	keyUserInfo          = "user_info"
	keySecondaryPassword = "secondary_password"
)

// Store reads and writes the persisted session. Malformed persisted data is
// never fatal: it is cleared and reported as an absent session.
type Store struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

func NewStore(db *sql.DB, logger logging.Logger) *Store {
	return &Store{db: db, logger: logger.With("component", "session"), now: time.Now}
}

func (s *Store) repo() kvstore.Repository {
	return kvstore.NewSQLiteRepository(s.db)
}

// Get returns the current session, or nil when none exists. Sessions whose
// token is provably expired, or whose stored profile no longer parses, are
// cleared and reported as absent.
func (s *Store) Get(ctx context.Context) (*models.Session, error) {
	kv := s.repo()

	token, err := kv.Get(ctx, keyAccessToken)
	if err != nil {
		return nil, err
	}
	if len(token) == 0 {
		return nil, nil
	}

	rawUser, err := kv.Get(ctx, keyUserInfo)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil || user.ID == 0 {
		s.logger.Warn(ctx, "stored profile unreadable, clearing session")
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if s.tokenExpired(string(token)) {
		s.logger.Info(ctx, "stored token expired, clearing session")
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}

	return &models.Session{AccessToken: string(token), User: user}, nil
}

// Set persists the session atomically (token and profile together).
func (s *Store) Set(ctx context.Context, sess *models.Session) error {
	rawUser, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user profile: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := kvstore.NewSQLiteRepository(tx)
		if err := kv.Set(ctx, keyAccessToken, []byte(sess.AccessToken)); err != nil {
			return err
		}
		return kv.Set(ctx, keyUserInfo, rawUser)
	})
}

// Clear removes the session. The secondary-password hash is device-local
// state and survives logout.
func (s *Store) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		kv := kvstore.NewSQLiteRepository(tx)
		if err := kv.Delete(ctx, keyAccessToken); err != nil {
			return err
		}
		return kv.Delete(ctx, keyUserInfo)
	})
}

// tokenExpired inspects the JWT exp claim without verifying the signature
// (the server remains the authority; this only pre-empts a guaranteed 401).
// Tokens that do not parse as JWTs are not treated as expired.
func (s *Store) tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(s.now())
}

// SetSecondaryPassword stores a bcrypt hash of the secret. The plaintext is
// never persisted.
func (s *Store) SetSecondaryPassword(ctx context.Context, secret []byte) error {
	if len(secret) == 0 {
		return fmt.Errorf("%w: secondary password is required", common.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword(secret, bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash secondary password: %w", err)
	}
	return s.repo().Set(ctx, keySecondaryPassword, hash)
}

// HasSecondaryPassword reports whether a secondary password has been set on
// this device.
func (s *Store) HasSecondaryPassword(ctx context.Context) (bool, error) {
	hash, err := s.repo().Get(ctx, keySecondaryPassword)
	if err != nil {
		return false, err
	}
	return len(hash) > 0, nil
}

// VerifySecondaryPassword compares the candidate against the stored hash.
// Returns common.ErrSecondaryPasswordNotSet when none was configured and
// common.ErrSecondaryPasswordMismatch on a wrong secret.
func (s *Store) VerifySecondaryPassword(ctx context.Context, candidate []byte) error {
	hash, err := s.repo().Get(ctx, keySecondaryPassword)
	if err != nil {
		return err
	}
	if len(hash) == 0 {
		return common.ErrSecondaryPasswordNotSet
	}
	if err := bcrypt.CompareHashAndPassword(hash, candidate); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return common.ErrSecondaryPasswordMismatch
		}
		return err
	}
	return nil
}
