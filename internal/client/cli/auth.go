package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/client/client"
	"github.com/dmitrijs2005/userkeeper/internal/common"
)

// getSimpleText, getOptionalInt and getPassword can be swapped in tests.
var (
	getSimpleText  = GetSimpleText
	getOptionalInt = GetOptionalInt
	getPassword    = GetPassword
)

var errNotLoggedIn = errors.New("not logged in, use 'login' or 'register' first")

// Register prompts for the account fields and creates the account. The
// returned session becomes the current one.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	age, err := getOptionalInt(a.reader, "Enter age (empty to skip)", a.out)
	if err != nil {
		return err
	}
	gender, err := getSimpleText(a.reader, "Enter gender (empty to skip)", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.api.Register(ctx, client.RegisterRequest{
		Name:     name,
		Age:      age,
		Gender:   gender,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	a.session = s
	fmt.Fprintf(a.out, "Registered as %s (%s)\n", s.User.Name, s.User.ID)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.api.Login(ctx, name, string(password))
	if err != nil {
		return err
	}

	a.session = s
	fmt.Fprintln(a.out, s.Message)
	return nil
}

func (a *App) Whoami(context.Context) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	u := a.session.User
	fmt.Fprintf(a.out, "%s (%s)", u.Name, u.ID)
	if u.Age != nil {
		fmt.Fprintf(a.out, " age=%d", *u.Age)
	}
	if u.Gender != "" {
		fmt.Fprintf(a.out, " gender=%s", u.Gender)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Logout drops the in-memory session token.
func (a *App) Logout(context.Context) error {
	a.session = nil
	return nil
}

// token returns the current session token. A server-side rejection of the
// token clears the session through handleAuthErr.
func (a *App) token() (string, error) {
	if !a.isLoggedIn() {
		return "", errNotLoggedIn
	}
	return a.session.Token, nil
}

func (a *App) handleAuthErr(err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		a.session = nil
		return errors.New("session rejected by server, please log in again")
	}
	return err
}
