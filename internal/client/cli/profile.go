package cli

import (
	"context"
	"fmt"
)

func (a *App) Profile(ctx context.Context) error {
	if err := a.profile.Load(ctx); err != nil {
		a.report(err)
		return err
	}

	printProfile(a.out, a.profile.Profile)
	return nil
}

// EditProfile prompts for name and email; an empty answer keeps the
// current value.
func (a *App) EditProfile(ctx context.Context) error {
	if a.profile.Profile.ID == "" {
		if err := a.profile.Load(ctx); err != nil {
			a.report(err)
			return err
		}
	}

	a.profile.BeginEdit()

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", a.profile.Profile.Name), a.out)
	if err != nil {
		a.profile.Cancel()
		return err
	}

	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", a.profile.Profile.Email), a.out)
	if err != nil {
		a.profile.Cancel()
		return err
	}

	if err := a.profile.Save(ctx, name, email); err != nil {
		a.report(err)
		a.profile.Cancel()
		return err
	}

	if a.profile.Notice != "" {
		fmt.Fprintln(a.out, a.profile.Notice)
	}
	printProfile(a.out, a.profile.Profile)

	a.email = a.profile.Profile.Email
	return nil
}
