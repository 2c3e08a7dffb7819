package session

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/walletdash/walletdash/internal/client/models"
	"github.com/walletdash/walletdash/internal/common"
	"github.com/walletdash/walletdash/internal/logging"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS client_state (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)

	return NewStore(db, logging.NewJSON(io.Discard, slog.LevelError))
}

func sampleSession() *models.Session {
	return &models.Session{
		AccessToken: "tok123",
		User:        models.User{ID: 9, Name: "Alice", Email: "a@b.com"},
	}
}

func TestGet_AbsentSession(t *testing.T) {
	s := setupStore(t)
	sess, err := s.Get(context.Background())
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestSetGetClear_RoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, sampleSession()))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok123", got.AccessToken)
	require.Equal(t, int64(9), got.User.ID)

	require.NoError(t, s.Clear(ctx))
	got, err = s.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGet_MalformedProfileClearsSession(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.repo().Set(ctx, keyAccessToken, []byte("tok")))
	require.NoError(t, s.repo().Set(ctx, keyUserInfo, []byte("{not json")))

	sess, err := s.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, sess)

	// The broken state is gone for good.
	v, err := s.repo().Get(ctx, keyAccessToken)
	require.NoError(t, err)
	require.Nil(t, v)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestGet_ExpiredTokenClearsSession(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	sess := sampleSession()
	sess.AccessToken = signedToken(t, time.Now().Add(-time.Hour))
	require.NoError(t, s.Set(ctx, sess))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestGet_FutureTokenKept(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	sess := sampleSession()
	sess.AccessToken = signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, s.Set(ctx, sess))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestGet_OpaqueTokenKept(t *testing.T) {
	// Tokens that are not JWTs stay; only the server can judge them.
	s := setupStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, sampleSession()))

	got, err := s.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestSecondaryPassword_VerifyAndMismatch(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	err := s.VerifySecondaryPassword(ctx, []byte("pin"))
	require.ErrorIs(t, err, common.ErrSecondaryPasswordNotSet)

	require.NoError(t, s.SetSecondaryPassword(ctx, []byte("pin")))

	has, err := s.HasSecondaryPassword(ctx)
	require.NoError(t, err)
	require.True(t, has)

	require.NoError(t, s.VerifySecondaryPassword(ctx, []byte("pin")))
	require.ErrorIs(t, s.VerifySecondaryPassword(ctx, []byte("nope")), common.ErrSecondaryPasswordMismatch)
}

func TestSecondaryPassword_NeverStoredPlaintext(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.SetSecondaryPassword(ctx, []byte("pin")))
	raw, err := s.repo().Get(ctx, keySecondaryPassword)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "pin")
}

func TestSecondaryPassword_SurvivesLogout(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, sampleSession()))
	require.NoError(t, s.SetSecondaryPassword(ctx, []byte("pin")))
	require.NoError(t, s.Clear(ctx))

	has, err := s.HasSecondaryPassword(ctx)
	require.NoError(t, err)
	require.True(t, has)
}

func TestSetSecondaryPassword_EmptyRejected(t *testing.T) {
	s := setupStore(t)
	require.ErrorIs(t, s.SetSecondaryPassword(context.Background(), nil), common.ErrValidation)
}
