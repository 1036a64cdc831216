package models

// RoleAdmin is the only role admitted when the admin policy is on.
const RoleAdmin = "admin"

// User is the signed-in identity. Token is an opaque bearer credential and is
// persisted together with the rest of the record.
type User struct {
	ID        ID     `json:"id,omitempty"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Email     string `json:"email,omitempty"`
	Mobile    string `json:"mobile,omitempty"`
	Role      string `json:"role,omitempty"`
	Token     string `json:"token,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// DisplayName is "First Last", falling back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	default:
		return u.Email
	}
}

// SessionState is a node of the sign-in state machine.
type SessionState int

const (
	StateAnonymous SessionState = iota
	StateAuthenticating
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session is a snapshot of the authentication state. IsLoading stays true
// until the persisted credentials have been examined once.
type Session struct {
	State           SessionState
	IsAuthenticated bool
	IsLoading       bool
	User            *User
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterProfile is the registration request body.
type RegisterProfile struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Address   string `json:"address"`
	Password  string `json:"password"`
}
