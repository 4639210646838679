package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/userkeeper/internal/client/client"
)

// Rights prints every right together with its owner.
func (a *App) Rights(ctx context.Context) error {
	token, err := a.token()
	if err != nil {
		return err
	}
	rights, err := a.api.Rights(ctx, token)
	if err != nil {
		return a.handleAuthErr(err)
	}
	a.printRights(rights)
	return nil
}

func (a *App) MyRights(ctx context.Context) error {
	token, err := a.token()
	if err != nil {
		return err
	}
	rights, err := a.api.MyRights(ctx, token)
	if err != nil {
		return a.handleAuthErr(err)
	}
	a.printRights(rights)
	return nil
}

// Grant prompts for a right name and a user id and creates the right.
func (a *App) Grant(ctx context.Context) error {
	token, err := a.token()
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter right name", a.out)
	if err != nil {
		return err
	}
	userID, err := getSimpleText(a.reader, "Enter user id (empty for yourself)", a.out)
	if err != nil {
		return err
	}
	if userID == "" {
		userID = a.session.User.ID
	}

	r, err := a.api.GrantRight(ctx, token, name, userID)
	if err != nil {
		return a.handleAuthErr(err)
	}
	fmt.Fprintf(a.out, "Right %s granted (%s)\n", r.Name, r.ID)
	return nil
}

func (a *App) printRights(rights []client.Right) {
	if len(rights) == 0 {
		fmt.Fprintln(a.out, "No rights")
		return
	}
	for _, r := range rights {
		owner := r.UserID
		if r.User != nil {
			owner = r.User.Name
		}
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", r.ID, r.Name, owner)
	}
}
