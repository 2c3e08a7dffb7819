package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/walletdash/walletdash/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readFileFn is a test seam for os.ReadFile.
var readFileFn = os.ReadFile

// Register prompts for the account details and creates a new account. A
// profile image is optional; leaving the path empty skips the upload.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	imagePath, err := getSimpleText(a.reader, "Profile image path (optional)", a.out)
	if err != nil {
		return err
	}

	var (
		image     []byte
		imageName string
	)
	if imagePath != "" {
		image, err = readFileFn(imagePath)
		if err != nil {
			fmt.Fprintln(a.out, "Cannot read image:", err)
			return err
		}
		imageName = filepath.Base(imagePath)
	}

	if err := a.auth.Register(ctx, name, email, password, imageName, image); err != nil {
		a.handleErr(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Account created. You can login now.")
	return nil
}

// Login prompts for credentials, authenticates and loads the dashboard
// caches so the first render comes from memory.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	sess, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}

	a.setSession(sess)
	fmt.Fprintf(a.out, "Welcome, %s!\n", sess.User.Name)

	if _, err := a.walletSvc.RefreshTransactions(ctx); err != nil {
		a.handleErr(ctx, err)
	}
	return nil
}

// Logout drops the persisted session and the in-memory identity.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.handleErr(ctx, err)
		return err
	}
	a.clearSession()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
