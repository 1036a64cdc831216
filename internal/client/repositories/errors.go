package repositories

import (
	"fmt"

	"github.com/dmitrijs2005/posadmin/internal/client/client"
)

// RepositoryError wraps a failed CRUD call on one resource.
type RepositoryError struct {
	Resource string
	Op       string
	Message  string
	Err      error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Resource, e.Message)
}

func (e *RepositoryError) Unwrap() []error {
	if e.Err == nil {
		return []error{client.ErrRepository}
	}
	return []error{client.ErrRepository, e.Err}
}

func wrap(resource, op string, err error) error {
	return &RepositoryError{Resource: resource, Op: op, Message: client.Message(err), Err: err}
}

func unexpected(resource, op string, cause error) error {
	err := &client.Error{Kind: client.KindServer, Op: op, Message: client.MsgUnexpectedResponse, Err: cause}
	return wrap(resource, op, err)
}
