package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ticketdesk/internal/client/api"
	"github.com/dmitrijs2005/ticketdesk/internal/client/repositories/metadata"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials, exchanges them for an access token and
// marks the session authenticated.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username or email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}

	payload, err := a.apiC.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	a.session.Login(payload.AccessToken, payload.User.Label())
	if err := a.repos.Metadata.Set(ctx, metadata.KeyIdentity, a.session.Identity()); err != nil {
		a.log.Warn(ctx, "failed to persist identity", "error", err)
	}

	fmt.Println("Logged in as", a.session.Identity())
	return nil
}

// Register prompts for the signup fields and creates an account. Password
// confirmation is validated locally before anything touches the network.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "Enter first name", os.Stdout)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Enter last name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		fmt.Println("Passwords do not match")
		return nil
	}

	input := api.SignupInput{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	}
	if err := a.apiC.Signup(ctx, input); err != nil {
		fmt.Println("Signup failed:", err)
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Logout clears the session locally and notifies the server in the
// background.
func (a *App) Logout(ctx context.Context) {
	a.session.Logout(ctx)
	fmt.Println("Logged out")
}

// Whoami prints the current session state.
func (a *App) Whoami() {
	snap := a.session.Snapshot()
	if !snap.Authenticated {
		fmt.Println("Not logged in")
		if snap.Err != "" {
			fmt.Println("Last auth error:", snap.Err)
		}
		return
	}
	fmt.Println("Logged in as", snap.Identity)
	if !snap.ExpiresAt.IsZero() {
		fmt.Println("Token expires at", snap.ExpiresAt.Local().Format("15:04:05"))
	}
}
