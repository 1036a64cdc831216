package client

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so callers can branch without reading messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindInvalidCredentials
	KindServerValidation
	KindUnauthorized
	KindUnauthenticated
	KindServer
	KindRepository
	KindMalformedState
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindNetwork:            "network",
	KindInvalidCredentials: "invalid credentials",
	KindServerValidation:   "server validation",
	KindUnauthorized:       "unauthorized",
	KindUnauthenticated:    "unauthenticated",
	KindServer:             "server",
	KindRepository:         "repository",
	KindMalformedState:     "malformed persisted state",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels matched with errors.Is. Every *Error unwraps to the sentinel of
// its Kind.
var (
	ErrNetwork            = errors.New("network error")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrServerValidation   = errors.New("server validation error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrServer             = errors.New("server error")
	ErrRepository         = errors.New("repository error")
	ErrMalformedState     = errors.New("malformed persisted state")
)

var sentinels = map[Kind]error{
	KindNetwork:            ErrNetwork,
	KindInvalidCredentials: ErrInvalidCredentials,
	KindServerValidation:   ErrServerValidation,
	KindUnauthorized:       ErrUnauthorized,
	KindUnauthenticated:    ErrUnauthenticated,
	KindServer:             ErrServer,
	KindRepository:         ErrRepository,
	KindMalformedState:     ErrMalformedState,
}

// Generic messages used when the server gives none.
const (
	MsgNetwork         = "Unable to reach the server. Check your connection and try again."
	MsgUnauthenticated = "You are not signed in."
	MsgUnauthorized    = "Your session has expired. Please sign in again."
	MsgServer          = "Something went wrong on the server. Please try again later."
	MsgRequestFailed   = "The request could not be completed."
)

// Error is a classified API failure. Message is safe to show to a user.
type Error struct {
	Kind    Kind
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := sentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf reports the Kind of the first *Error in err's chain, or the kind of
// a bare sentinel. Anything else is KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for k, s := range sentinels {
		if errors.Is(err, s) {
			return k
		}
	}
	return KindUnknown
}

// Message returns the user-facing text carried by err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return err.Error()
}
