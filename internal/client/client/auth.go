package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/tidwall/gjson"
)

const (
	PathLogin    = "user/login"
	PathRegister = "user/register"

	// RegisterSuccessMessage is sent by servers that answer registration
	// with {message, userId} instead of the created user.
	RegisterSuccessMessage = "User created successfully"

	MsgInvalidCredentials = "Invalid email or password."
	MsgUnexpectedResponse = "The server sent an unexpected response."
)

// AuthAPI calls the public login and registration endpoints.
type AuthAPI struct {
	gw *Gateway
}

func NewAuthAPI(gw *Gateway) *AuthAPI {
	return &AuthAPI{gw: gw}
}

// Login exchanges credentials for a user carrying a token. Both {user, token}
// and a flat user object are accepted. A rejected login (any 4xx) is
// reported as KindInvalidCredentials.
func (a *AuthAPI) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	body, err := a.gw.DoPublic(ctx, http.MethodPost, PathLogin, creds)
	if err != nil {
		var e *Error
		if errors.As(err, &e) && (e.Kind == KindUnauthorized || e.Kind == KindServerValidation) {
			msg := e.Message
			if msg == "" || msg == MsgUnauthorized || msg == MsgRequestFailed {
				msg = MsgInvalidCredentials
			}
			// e.Err, not err: a rejected login must not match ErrUnauthorized.
			return nil, &Error{Kind: KindInvalidCredentials, Op: "login", Status: e.Status, Message: msg, Err: e.Err}
		}
		return nil, err
	}

	user, err := decodeUser(body)
	if err != nil {
		return nil, &Error{Kind: KindServer, Op: "login", Message: MsgUnexpectedResponse, Err: err}
	}
	if user.Token == "" {
		return nil, &Error{Kind: KindServer, Op: "login", Message: MsgUnexpectedResponse}
	}
	return user, nil
}

// RegisterResult is what the server acknowledged. User is never nil; when the
// server returns only an id it is built from the submitted profile. Token is
// set only if the server issued one.
type RegisterResult struct {
	User    *models.User
	Message string
}

// Register creates an account. A 2xx body that neither contains a user nor
// the success message is treated as a rejection.
func (a *AuthAPI) Register(ctx context.Context, profile models.RegisterProfile) (*RegisterResult, error) {
	body, err := a.gw.DoPublic(ctx, http.MethodPost, PathRegister, profile)
	if err != nil {
		return nil, err
	}

	res := &RegisterResult{Message: ServerMessage(body)}

	switch {
	case gjson.GetBytes(body, "user").IsObject() || gjson.GetBytes(body, "email").Exists():
		u, err := decodeUser(body)
		if err != nil {
			return nil, &Error{Kind: KindServer, Op: "register", Message: MsgUnexpectedResponse, Err: err}
		}
		res.User = u
	case res.Message == RegisterSuccessMessage || gjson.GetBytes(body, "userId").Exists():
		res.User = &models.User{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Email:     profile.Email,
			Mobile:    profile.Mobile,
		}
		if id := gjson.GetBytes(body, "userId"); id.Exists() {
			res.User.ID = models.ID(id.String())
		}
	default:
		msg := res.Message
		if msg == "" {
			msg = MsgUnexpectedResponse
		}
		return nil, &Error{Kind: KindServerValidation, Op: "register", Message: msg}
	}

	if res.User.Email == "" {
		res.User.Email = profile.Email
	}
	return res, nil
}

// decodeUser reads {user, token} or a flat user. A top-level token fills in
// a user object that has none.
func decodeUser(body []byte) (*models.User, error) {
	var u models.User

	if nested := gjson.GetBytes(body, "user"); nested.IsObject() {
		if err := json.Unmarshal([]byte(nested.Raw), &u); err != nil {
			return nil, err
		}
		if u.Token == "" {
			u.Token = gjson.GetBytes(body, "token").String()
		}
		return &u, nil
	}

	if err := json.Unmarshal(body, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
