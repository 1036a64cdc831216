package models

import (
	"errors"
	"fmt"
)

// Status marks a record as selectable in the back office.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var ErrInvalidStatus = errors.New("status must be active or inactive")

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// check accepts an unset status; the server applies its default.
func (s Status) check() error {
	if s == "" || s.Valid() {
		return nil
	}
	return fmt.Errorf("%w, got %q", ErrInvalidStatus, string(s))
}

func (c Category) Validate() error   { return c.Status.check() }
func (u Unit) Validate() error       { return u.Status.check() }
func (t Tax) Validate() error        { return t.Status.check() }
func (s Supplier) Validate() error   { return s.Status.check() }
func (m Membership) Validate() error { return m.Status.check() }
