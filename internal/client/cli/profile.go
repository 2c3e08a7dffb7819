package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/walletdash/walletdash/internal/common"
)

// SetName renames the account.
func (a *App) SetName(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter new name", a.out)
	if err != nil {
		return err
	}

	user, err := a.auth.ChangeName(ctx, name)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}

	a.mu.Lock()
	a.user = user
	a.mu.Unlock()

	fmt.Fprintf(a.out, "Name changed to %s.\n", user.Name)
	return nil
}

// SetImage uploads a new profile image from a local file.
func (a *App) SetImage(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Image file path", a.out)
	if err != nil {
		return err
	}

	image, err := readFileFn(path)
	if err != nil {
		fmt.Fprintln(a.out, "Cannot read image:", err)
		return err
	}

	user, err := a.auth.ChangeImage(ctx, filepath.Base(path), image)
	if err != nil {
		a.handleErr(ctx, err)
		return err
	}

	a.mu.Lock()
	a.user = user
	a.mu.Unlock()

	fmt.Fprintln(a.out, "Profile image updated.")
	return nil
}

// SetPin sets or replaces the secondary password that confirms sensitive
// wallet actions on this device.
func (a *App) SetPin(ctx context.Context) error {
	first, err := getPassword("New secondary password", a.out)
	if err != nil {
		return err
	}
	second, err := getPassword("Repeat secondary password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(second)

	if string(first) != string(second) {
		common.WipeByteArray(first)
		fmt.Fprintln(a.out, "Passwords do not match.")
		return errPinMismatch
	}

	if err := a.auth.SetSecondaryPassword(ctx, first); err != nil {
		a.handleErr(ctx, err)
		return err
	}

	fmt.Fprintln(a.out, "Secondary password set.")
	return nil
}
