// Package services contains application services for the walletdash client.
// This file defines the authentication service: login/logout, registration,
// profile updates, and the secondary password that gates sensitive actions.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/walletdash/walletdash/internal/client/api"
	"github.com/walletdash/walletdash/internal/client/models"
	"github.com/walletdash/walletdash/internal/client/session"
	"github.com/walletdash/walletdash/internal/common"
)

// AuthService defines authentication and profile operations for the CLI.
//
// Contract:
//   - Login: authenticate against the server and persist the session.
//   - Register: create a new account, optionally with a profile image.
//   - Logout: drop the persisted session. The secondary password survives.
//   - Session: return the persisted session, nil when not logged in.
//   - ChangeName/ChangeImage: update the profile on the server and locally.
//   - SetSecondaryPassword/VerifySecondaryPassword: manage the local secret.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Register(ctx context.Context, name, email string, password []byte, imageName string, image []byte) error
	Logout(ctx context.Context) error
	Session(ctx context.Context) (*models.Session, error)
	ChangeName(ctx context.Context, newName string) (*models.User, error)
	ChangeImage(ctx context.Context, fileName string, image []byte) (*models.User, error)
	SetSecondaryPassword(ctx context.Context, secret []byte) error
	HasSecondaryPassword(ctx context.Context) (bool, error)
	VerifySecondaryPassword(ctx context.Context, candidate []byte) error
}

// authService is the concrete AuthService backed by the remote gateway
// and the local session store.
type authService struct {
	client api.Client
	store  *session.Store
}

// NewAuthService constructs an AuthService bound to the given gateway and store.
func NewAuthService(client api.Client, store *session.Store) AuthService {
	return &authService{client: client, store: store}
}

// Login validates the credentials, authenticates against the server and
// persists the resulting session. The password slice is wiped before return.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	defer common.WipeByteArray(password)

	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	sess, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	if err := a.store.Set(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return sess, nil
}

// Register creates a new account. The image is optional; an empty slice
// means no profile picture. The password slice is wiped before return.
func (a *authService) Register(ctx context.Context, name, email string, password []byte, imageName string, image []byte) error {
	defer common.WipeByteArray(password)

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return fmt.Errorf("%w: name is required", common.ErrValidation)
	}
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if len(password) == 0 {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}

	return a.client.Register(ctx, api.RegisterRequest{
		Name:      name,
		Email:     email,
		Password:  password,
		ImageName: imageName,
		Image:     image,
	})
}

// Logout drops the persisted session. Already being logged out is not an
// error.
func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

// Session returns the persisted session or nil when none exists.
func (a *authService) Session(ctx context.Context) (*models.Session, error) {
	return a.store.Get(ctx)
}

// ChangeName renames the account on the server and refreshes the stored
// profile with the server's response.
func (a *authService) ChangeName(ctx context.Context, newName string) (*models.User, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}

	sess, err := a.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	user, err := a.client.ChangeName(ctx, newName)
	if err != nil {
		return nil, err
	}

	return user, a.updateProfile(ctx, sess, user)
}

// ChangeImage uploads a new profile image and refreshes the stored profile.
func (a *authService) ChangeImage(ctx context.Context, fileName string, image []byte) (*models.User, error) {
	if len(image) == 0 {
		return nil, fmt.Errorf("%w: image is required", common.ErrValidation)
	}

	sess, err := a.requireSession(ctx)
	if err != nil {
		return nil, err
	}

	user, err := a.client.ChangeImage(ctx, fileName, image)
	if err != nil {
		return nil, err
	}

	return user, a.updateProfile(ctx, sess, user)
}

// SetSecondaryPassword stores the device-local secret used to confirm
// sensitive wallet actions. The plaintext slice is wiped before return.
func (a *authService) SetSecondaryPassword(ctx context.Context, secret []byte) error {
	defer common.WipeByteArray(secret)
	return a.store.SetSecondaryPassword(ctx, secret)
}

func (a *authService) HasSecondaryPassword(ctx context.Context) (bool, error) {
	return a.store.HasSecondaryPassword(ctx)
}

// VerifySecondaryPassword checks the candidate against the stored hash.
// The candidate slice is wiped before return.
func (a *authService) VerifySecondaryPassword(ctx context.Context, candidate []byte) error {
	defer common.WipeByteArray(candidate)
	return a.store.VerifySecondaryPassword(ctx, candidate)
}

// requireSession loads the persisted session, translating absence into
// api.ErrSessionExpired so callers share one re-login path.
func (a *authService) requireSession(ctx context.Context) (*models.Session, error) {
	sess, err := a.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, api.ErrSessionExpired
	}
	return sess, nil
}

// updateProfile overwrites the stored user profile while keeping the token.
// The server response may omit the ID; the stored one is kept in that case.
func (a *authService) updateProfile(ctx context.Context, sess *models.Session, user *models.User) error {
	if user.ID == 0 {
		user.ID = sess.User.ID
	}
	sess.User = *user
	return a.store.Set(ctx, sess)
}
