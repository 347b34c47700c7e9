package cli

import (
	"context"
	"fmt"
)

// Register prompts for name, email and password and creates an account.
// The user logs in separately afterwards.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	p, err := a.api.Register(ctx, name, email, password)
	if err != nil {
		a.report(err)
		return err
	}

	fmt.Fprintf(a.out, "Account created for %s. Type 'login' to sign in.\n", p.Email)
	return nil
}

// Login authenticates and opens the dashboard.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}

	if err := a.api.Login(ctx, email, password); err != nil {
		a.report(err)
		return err
	}

	a.email = email
	fmt.Fprintln(a.out, "Welcome!")

	return a.List(ctx)
}

func (a *App) Logout(context.Context) error {
	a.reset()
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
