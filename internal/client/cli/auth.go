package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/outreach-console/internal/client/models"
	"github.com/dmitrijs2005/outreach-console/internal/client/views"
	"github.com/dmitrijs2005/outreach-console/internal/common"
)

// getSimpleText, getMultiline and getPassword are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getMultiline  = GetMultiline
	getPassword   = GetPassword
)

// Login prompts for email and password and exchanges them for a credential.
//
// On success the console navigates to the leads screen. The password byte
// slice is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer clear(password)

	if err := a.auth.Login(ctx, email, password); err != nil {
		var ve *models.ValidationError
		switch {
		case errors.As(err, &ve):
			printlnFn("Invalid input:", ve.Error())
		case errors.Is(err, common.ErrUnauthorized):
			printlnFn("Login unsuccessful: wrong email or password")
		case errors.Is(err, common.ErrUnavailable):
			printlnFn("Login unsuccessful: backend unavailable")
		default:
			printlnFn("Login unsuccessful:", err.Error())
		}
		return err
	}

	printlnFn("Login successful")
	return a.Leads(ctx)
}

// Logout forgets the credential, drops all loaded view state and returns
// to the login route.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		printlnFn("Logout failed:", err.Error())
		return err
	}
	a.setAutoRefresh(nil)
	a.resetViews()
	a.setRoute(loginRoute)
	printlnFn("Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	desc, err := a.auth.Whoami(ctx)
	if err != nil {
		printlnFn("Not logged in")
		return nil
	}
	printlnFn(desc)
	return nil
}

func (a *App) resetViews() {
	a.leads = views.NewLeads(a.api, a.log)
	a.campaigns = views.NewCampaigns(a.api, a.log)
	a.calls = views.NewCalls(a.api, a.log)
}
