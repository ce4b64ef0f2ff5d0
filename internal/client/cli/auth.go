package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/services"
	"github.com/dmitrijs2005/useradmin/internal/client/session"
	"github.com/dmitrijs2005/useradmin/internal/client/view"
	"github.com/dmitrijs2005/useradmin/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for full name, e-mail and password and creates an
// account. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
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
	defer common.WipeByteArray(password)

	if _, err := a.auth.Register(ctx, fullName, email, password); err != nil {
		switch {
		case hasBlankField(err):
			a.say(msgFillAllFields)
		case errors.Is(err, services.ErrValidation):
			a.say("Please enter a valid email address")
		case errors.Is(err, services.ErrConflict):
			a.say("This email is already registered! Please log in.")
		case errors.Is(err, services.ErrServer):
			a.say("Server error occurred. Please try again later.")
		default:
			a.say(describe(err))
		}
		return err
	}

	a.say("Registration successful! Please check your email for confirmation.")
	return nil
}

// Login prompts for credentials, authenticates and shows the first page of
// users. The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.auth.Login(ctx, email, password); err != nil {
		switch {
		case errors.Is(err, services.ErrValidation):
			a.say(msgFillAllFields)
		case errors.Is(err, services.ErrUnauthorized):
			a.say("Account does not exist or incorrect credentials. Would you like to register?")
		default:
			a.say(describe(err))
		}
		return err
	}

	a.say("Login successful!")
	a.view = view.NewState(a.config.RowsPerPage)
	a.selection.Clear()
	return a.List(ctx)
}

// Confirm redeems an e-mail confirmation token given as the first argument
// or, if absent, read from the prompt.
func (a *App) Confirm(ctx context.Context, args []string) error {
	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		t, err := getSimpleText(a.reader, "Enter confirmation token", a.out)
		if err != nil {
			return err
		}
		token = t
	}

	msg, err := a.auth.ConfirmEmail(ctx, token)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			a.say("Usage: confirm <token>")
		} else {
			a.say(describe(err))
		}
		return err
	}

	if msg == "" {
		msg = "Email confirmed. You can log in now."
	}
	a.say(msg)
	return nil
}

// Logout drops the session and everything fetched with it.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	a.directory.Reset()
	a.selection.Clear()
	a.shown = view.Page{}
	a.say("Logged out successfully")
	return nil
}

// WhoAmI prints the e-mail of the current session and, for JWT tokens, the
// subject and expiry.
func (a *App) WhoAmI(_ context.Context) error {
	cur, ok := a.auth.Current()
	if !ok {
		a.say("Not logged in")
		return nil
	}

	a.sayf("Logged in as %s", cur.Email)
	info, ok := session.Describe(cur.Token)
	if !ok {
		return nil
	}
	if info.Subject != "" {
		a.sayf("Subject: %s", info.Subject)
	}
	if !info.ExpiresAt.IsZero() {
		state := "valid"
		if info.Expired(time.Now()) {
			state = "expired"
		}
		a.sayf("Token expires: %s (%s)", info.ExpiresAt.Local().Format(time.DateTime), state)
	}
	return nil
}
