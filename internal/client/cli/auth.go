package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/remood/internal/client/client"
	"github.com/dmitrijs2005/remood/internal/common"
)

var errLoginFailed = errors.New("login failed: wrong username or password")

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, string, error) {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", "", err
	}

	pw, err := getPassword(a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(pw)

	return username, string(pw), nil
}

// Register prompts for a username and password and creates the account.
// The session is not logged in afterwards.
func (a *App) Register(ctx context.Context) error {
	username, password, err := a.credentials()
	if err != nil {
		return err
	}

	err = a.busy("Registering", func() error {
		return a.session.Register(ctx, username, password)
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, a.palette.ok.Sprint("Registration successful. You can log in now."))
	return nil
}

// Login prompts for credentials, logs in and shows the freshly decrypted
// entries.
func (a *App) Login(ctx context.Context) error {
	username, password, err := a.credentials()
	if err != nil {
		return err
	}

	err = a.busy("Logging in", func() error {
		return a.session.Login(ctx, username, password)
	})
	if err != nil && !a.isLoggedIn() {
		// a token rejected during the first reload already ended the session
		a.takeRedirect()
		if errors.Is(err, common.ErrAuthentication) && !errors.Is(err, client.ErrUnavailable) {
			return errLoginFailed
		}
		return err
	}

	fmt.Fprintln(a.out, a.palette.ok.Sprintf("Welcome, %s!", a.session.Username()))
	if err != nil {
		// logged in, but the entries could not be loaded
		return err
	}

	a.palette.printList(a.out, a.entries.Entries(), a.sealed)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
