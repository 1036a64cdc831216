package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/dmitrijs2005/posadmin/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	state models.Session

	loginEmail string
	loginPass  string
	loginErr   error

	registered models.RegisterProfile
	regErr     error

	logoutCalled bool
}

func (f *fakeSession) Initialize(context.Context) {}

func (f *fakeSession) Login(_ context.Context, email, password string) (*models.User, error) {
	f.loginEmail, f.loginPass = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	u := &models.User{Email: email, FirstName: "Ada"}
	f.state = models.Session{State: models.StateAuthenticated, IsAuthenticated: true, User: u}
	return u, nil
}

func (f *fakeSession) Register(_ context.Context, p models.RegisterProfile) (*models.User, error) {
	f.registered = p
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.User{Email: p.Email, FirstName: p.FirstName}, nil
}

func (f *fakeSession) Logout(context.Context) {
	f.logoutCalled = true
	f.state = models.Session{}
}

func (f *fakeSession) HandleError(context.Context, error) bool { return false }
func (f *fakeSession) Session() models.Session                 { return f.state }

func stubInputs(t *testing.T, text string) {
	t.Helper()
	origST := getSimpleText
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	t.Cleanup(func() { getSimpleText = origST })
}

func fakeApp(s Session, password []byte) (*App, *bytes.Buffer) {
	out := &bytes.Buffer{}
	a := NewApp(s, nil, nil, logging.Nop(), bytes.NewReader(nil), out)
	a.readSecret = func(io.Writer) ([]byte, error) { return password, nil }
	return a, out
}

func TestLogin_WipesPassword(t *testing.T) {
	stubInputs(t, "ada@shop.test")
	pw := []byte("secret")
	f := &fakeSession{}
	a, out := fakeApp(f, pw)

	require.NoError(t, a.Login(context.Background()))

	assert.Equal(t, "ada@shop.test", f.loginEmail)
	assert.Equal(t, "secret", f.loginPass)
	assert.Equal(t, make([]byte, len(pw)), pw, "password buffer must be zeroed")
	assert.Contains(t, out.String(), "Welcome, Ada")
}

func TestLogin_Error(t *testing.T) {
	stubInputs(t, "ada@shop.test")
	boom := errors.New("boom")
	a, out := fakeApp(&fakeSession{loginErr: boom}, []byte("x"))

	require.ErrorIs(t, a.Login(context.Background()), boom)
	assert.NotContains(t, out.String(), "Welcome")
}

func TestLogin_PasswordReadError(t *testing.T) {
	stubInputs(t, "ada@shop.test")
	f := &fakeSession{}
	a, _ := fakeApp(f, nil)
	a.readSecret = func(io.Writer) ([]byte, error) { return nil, io.ErrUnexpectedEOF }

	require.ErrorIs(t, a.Login(context.Background()), io.ErrUnexpectedEOF)
	assert.Empty(t, f.loginEmail)
}

func TestRegister_NotSignedIn(t *testing.T) {
	stubInputs(t, "x")
	f := &fakeSession{}
	a, out := fakeApp(f, []byte("pw"))

	require.NoError(t, a.Register(context.Background()))

	assert.Equal(t, models.RegisterProfile{
		FirstName: "x", LastName: "x", Email: "x", Mobile: "x", Address: "x", Password: "pw",
	}, f.registered)
	assert.Contains(t, out.String(), "You can now log in.")
}

func TestRegister_EmptyPassword(t *testing.T) {
	stubInputs(t, "x")
	f := &fakeSession{}
	a, _ := fakeApp(f, []byte{})

	require.ErrorIs(t, a.Register(context.Background()), errEmptyField)
	assert.Empty(t, f.registered.Email)
}

func TestLogoutAndWhoAmI(t *testing.T) {
	f := &fakeSession{state: models.Session{
		State:           models.StateAuthenticated,
		IsAuthenticated: true,
		User:            &models.User{Email: "ada@shop.test", FirstName: "Ada", LastName: "L"},
	}}
	a, out := fakeApp(f, nil)

	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Contains(t, out.String(), "Ada L <ada@shop.test>\n")

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, f.logoutCalled)

	out.Reset()
	require.NoError(t, a.WhoAmI(context.Background()))
	assert.Equal(t, "Not logged in.\n", out.String())
}
