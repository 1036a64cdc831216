package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/dmitrijs2005/posadmin/internal/common"
)

var errEmptyField = errors.New("all fields are required")

// Register prompts for a profile and creates an account. Depending on the
// session policy the new user is signed in right away.
func (a *App) Register(ctx context.Context) error {
	var p models.RegisterProfile
	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Enter first name", &p.FirstName},
		{"Enter last name", &p.LastName},
		{"Enter email", &p.Email},
		{"Enter mobile", &p.Mobile},
		{"Enter address", &p.Address},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		if v == "" {
			return errEmptyField
		}
		*f.dst = v
	}

	password, err := a.readSecret(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if len(password) == 0 {
		return errEmptyField
	}
	p.Password = string(password)

	user, err := a.session.Register(ctx, p)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registration successful.")
	if a.isLoggedIn() {
		fmt.Fprintf(a.out, "Logged in as %s\n", user.DisplayName())
	} else {
		fmt.Fprintln(a.out, "You can now log in.")
	}
	return nil
}

// Login prompts for credentials and signs in.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := a.readSecret(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.session.Login(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Welcome, %s\n", user.DisplayName())
	return nil
}

// Logout ends the session and forgets the saved credentials.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Session()
	if !s.IsAuthenticated || s.User == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	u := s.User
	fmt.Fprintf(a.out, "%s <%s>", u.DisplayName(), u.Email)
	if u.Role != "" {
		fmt.Fprintf(a.out, " role=%s", u.Role)
	}
	fmt.Fprintln(a.out)
	return nil
}
