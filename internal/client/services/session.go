// Package services contains application services for the posadmin client.
// This file defines the session manager: the sign-in state machine, its
// persistence, and the bearer token it hands to the request gateway.
package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/posadmin/internal/client/client"
	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/dmitrijs2005/posadmin/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// MsgAdminOnly is shown when a non-admin signs in under the admin policy.
const MsgAdminOnly = "Only administrators are allowed to log in."

// AuthClient performs the network half of login and registration.
type AuthClient interface {
	Login(ctx context.Context, creds models.Credentials) (*models.User, error)
	Register(ctx context.Context, profile models.RegisterProfile) (*client.RegisterResult, error)
}

// CredentialStore persists the signed-in user between runs.
type CredentialStore interface {
	Save(ctx context.Context, user *models.User) error
	Load(ctx context.Context) *models.User
	Clear(ctx context.Context) error
}

// Policy tunes who may sign in and what registration does.
type Policy struct {
	// RequireAdminRole admits only users whose role is "admin".
	RequireAdminRole bool
	// AutoLoginAfterRegister signs the new user in after registration,
	// logging in with the submitted credentials if the server issued no
	// token.
	AutoLoginAfterRegister bool
}

// SessionManager owns the process-wide Session. It is the only writer of the
// session state and is safe for concurrent use.
//
//	Anonymous --Login/Register--> Authenticating --ok--> Authenticated
//	    ^                               |                      |
//	    +------------failure------------+<-------Logout--------+
type SessionManager struct {
	auth   AuthClient
	store  CredentialStore
	policy Policy
	log    logging.Logger
	now    func() time.Time

	initOnce sync.Once
	// opMu serializes Login, Register and Logout.
	opMu sync.Mutex

	mu      sync.RWMutex
	session models.Session

	subMu   sync.Mutex
	subs    map[int]func(models.Session)
	nextSub int
}

func NewSessionManager(auth AuthClient, store CredentialStore, policy Policy, log logging.Logger) *SessionManager {
	if log == nil {
		log = logging.Nop()
	}
	return &SessionManager{
		auth:    auth,
		store:   store,
		policy:  policy,
		log:     log.With("component", "session"),
		now:     time.Now,
		session: models.Session{State: models.StateAnonymous, IsLoading: true},
		subs:    make(map[int]func(models.Session)),
	}
}

// Initialize restores a persisted session. Only the first call does work;
// later calls return immediately. A stored record that is no longer usable
// is removed.
func (m *SessionManager) Initialize(ctx context.Context) {
	m.initOnce.Do(func() {
		m.opMu.Lock()
		defer m.opMu.Unlock()

		user := m.store.Load(ctx)
		if user != nil && !m.usable(user) {
			m.log.Info(ctx, "discarding persisted session", "email", user.Email)
			if err := m.store.Clear(ctx); err != nil {
				m.log.Warn(ctx, "failed to clear persisted session", "error", err)
			}
			user = nil
		}

		if user != nil {
			m.set(models.Session{State: models.StateAuthenticated, IsAuthenticated: true, User: user})
			m.log.Info(ctx, "session restored", "email", user.Email)
			return
		}
		m.set(models.Session{State: models.StateAnonymous})
	})
}

// Login signs in with email and password. On failure the session is left as
// it was and the error carries a displayable message.
func (m *SessionManager) Login(ctx context.Context, email, password string) (*models.User, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	prev := m.begin()
	user, err := m.login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		m.set(prev)
		return nil, err
	}
	m.accept(ctx, user)
	return cloneUser(user), nil
}

func (m *SessionManager) login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	user, err := m.auth.Login(ctx, creds)
	if err != nil {
		m.log.Info(ctx, "login failed", "email", creds.Email, "error", err)
		return nil, err
	}
	if err := m.admit(user); err != nil {
		m.log.Info(ctx, "login refused by policy", "email", creds.Email, "role", user.Role)
		return nil, err
	}
	return user, nil
}

// Register creates an account. With AutoLoginAfterRegister the new user is
// signed in; otherwise the session is unchanged and the caller should log in.
func (m *SessionManager) Register(ctx context.Context, profile models.RegisterProfile) (*models.User, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	prev := m.begin()
	res, err := m.auth.Register(ctx, profile)
	if err != nil {
		m.set(prev)
		m.log.Info(ctx, "registration failed", "email", profile.Email, "error", err)
		return nil, err
	}

	if !m.policy.AutoLoginAfterRegister {
		m.set(prev)
		return cloneUser(res.User), nil
	}

	user := res.User
	if user.Token == "" {
		user, err = m.login(ctx, models.Credentials{Email: profile.Email, Password: profile.Password})
	} else {
		err = m.admit(user)
	}
	if err != nil {
		m.set(prev)
		return nil, &client.Error{
			Kind:    client.KindOf(err),
			Op:      "register",
			Message: "Account created, but signing in failed: " + client.Message(err),
			Err:     err,
		}
	}

	m.accept(ctx, user)
	return cloneUser(user), nil
}

// Logout forgets the session and the persisted record. It never fails;
// storage errors are logged.
func (m *SessionManager) Logout(ctx context.Context) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		m.log.Warn(ctx, "failed to clear credentials", "error", err)
	}
	m.set(models.Session{State: models.StateAnonymous})
	m.log.Info(ctx, "signed out")
}

// HandleError signs out when err shows the server rejected the session. It
// reports whether it did.
func (m *SessionManager) HandleError(ctx context.Context, err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}
	m.Logout(ctx)
	return true
}

// Session returns a snapshot of the current state.
func (m *SessionManager) Session() models.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return snapshot(m.session)
}

// Subscribe registers fn to receive the session after every transition. The
// returned function removes it.
func (m *SessionManager) Subscribe(fn func(models.Session)) (unsubscribe func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		delete(m.subs, id)
	}
}

// Token implements client.TokenSource. Before Initialize has finished it
// reads the credential store directly.
func (m *SessionManager) Token(ctx context.Context) (string, error) {
	m.mu.RLock()
	s := m.session
	m.mu.RUnlock()

	if !s.IsLoading {
		if s.IsAuthenticated && s.User != nil {
			return s.User.Token, nil
		}
		return "", nil
	}

	if u := m.store.Load(ctx); m.usable(u) {
		return u.Token, nil
	}
	return "", nil
}

// begin enters Authenticating and returns the state to restore on failure.
func (m *SessionManager) begin() models.Session {
	m.mu.RLock()
	prev := m.session
	m.mu.RUnlock()

	next := prev
	next.State = models.StateAuthenticating
	m.set(next)

	prev.IsLoading = false
	return prev
}

func (m *SessionManager) accept(ctx context.Context, user *models.User) {
	if err := m.store.Save(ctx, user); err != nil {
		m.log.Error(ctx, "failed to persist credentials", "error", err)
	}
	m.set(models.Session{State: models.StateAuthenticated, IsAuthenticated: true, User: user})
	m.log.Info(ctx, "signed in", "email", user.Email, "role", user.Role)
}

func (m *SessionManager) admit(user *models.User) error {
	if m.policy.RequireAdminRole && !user.IsAdmin() {
		return &client.Error{Kind: client.KindInvalidCredentials, Op: "login", Message: MsgAdminOnly}
	}
	return nil
}

// usable reports whether a persisted user may resume a session.
func (m *SessionManager) usable(u *models.User) bool {
	if u == nil || u.Token == "" {
		return false
	}
	if tokenExpired(u.Token, m.now()) {
		return false
	}
	return m.admit(u) == nil
}

// tokenExpired reads the exp claim without verifying the signature. Tokens
// that are not JWTs never expire client-side.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time)
}

func (m *SessionManager) set(s models.Session) {
	m.mu.Lock()
	m.session = s
	m.mu.Unlock()

	m.publish(snapshot(s))
}

func (m *SessionManager) publish(s models.Session) {
	m.subMu.Lock()
	fns := make([]func(models.Session), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subMu.Unlock()

	for _, fn := range fns {
		fn(snapshot(s))
	}
}

func snapshot(s models.Session) models.Session {
	s.User = cloneUser(s.User)
	return s
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}
