package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/ktpm/catalog/internal/client/client"
	"github.com/ktpm/catalog/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)
	verify, err := getPassword("Repeat password", a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(verify)

	if err := a.api.Register(ctx, username, string(password), string(verify)); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Registered. You can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return a.report(err)
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return a.report(err)
	}
	defer common.WipeByteArray(password)

	id, err := a.api.Login(ctx, username, string(password))
	if err != nil {
		return a.report(err)
	}
	a.identity = id
	fmt.Fprintf(a.out, "Logged in as %s\n", id.UserName)
	return nil
}

// WhoAmI asks the server for the identity behind the current cookie rather
// than trusting the locally cached one.
func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.api.Current(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			a.identity = nil
		}
		return a.report(err)
	}
	a.identity = id
	fmt.Fprintf(a.out, "%s (%s)\n", id.UserName, id.ID)
	return nil
}

func (a *App) Products(ctx context.Context) error {
	list, err := a.api.Products(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No products.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tQTY")
	for _, p := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%d\n", p.ID, p.ProductName, p.Category, p.Price, p.Quantity)
	}
	return tw.Flush()
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		return a.report(err)
	}
	a.identity = nil
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// report prints a user-facing message for err and returns it unchanged.
func (a *App) report(err error) error {
	var msg string
	switch {
	case errors.Is(err, client.ErrUnavailable):
		msg = "Server unavailable, try again later"
	case errors.Is(err, client.ErrUnauthorized):
		msg = "Not logged in"
	case errors.Is(err, common.ErrUserNotFound):
		msg = "User not found"
	case errors.Is(err, common.ErrWrongPassword):
		msg = "Wrong password"
	case errors.Is(err, common.ErrUsernameExists):
		msg = "User name already taken"
	case errors.Is(err, common.ErrPasswordMismatch):
		msg = "Passwords do not match"
	case errors.Is(err, common.ErrValidation):
		msg = "Invalid input"
	default:
		msg = "Error: " + err.Error()
	}
	fmt.Fprintln(a.out, msg)
	return err
}
