package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/posadmin/internal/client/client"
	"github.com/dmitrijs2005/posadmin/internal/client/models"
	"github.com/tidwall/gjson"
)

// Doer sends an authorized request and returns the response body.
// *client.Gateway implements it.
type Doer interface {
	Do(ctx context.Context, method, path string, body any) ([]byte, error)
}

// Ack is the server's confirmation of a delete.
type Ack struct {
	Message string
}

// Validator is implemented by records that check their own fields before
// they are sent.
type Validator interface {
	Validate() error
}

// Repository is the CRUD contract for one resource with record type T.
type Repository[T any] struct {
	gw   Doer
	kind models.Kind
}

func New[T any](gw Doer, kind models.Kind) *Repository[T] {
	return &Repository[T]{gw: gw, kind: kind}
}

func (r *Repository[T]) Kind() models.Kind {
	return r.kind
}

// Create posts data and returns the record the server created.
func (r *Repository[T]) Create(ctx context.Context, data T) (*T, error) {
	if err := r.validate("create", data); err != nil {
		return nil, err
	}
	body, err := r.gw.Do(ctx, http.MethodPost, r.kind.Path, data)
	if err != nil {
		return nil, wrap(r.kind.Name, "create", err)
	}
	return r.decodeItem("create", body)
}

// List fetches the whole collection in server order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	body, err := r.gw.Do(ctx, http.MethodGet, r.kind.Path, nil)
	if err != nil {
		return nil, wrap(r.kind.Name, "list", err)
	}

	raw := gjson.GetBytes(body, r.kind.Envelope)
	if !raw.Exists() {
		if root := gjson.ParseBytes(body); root.IsArray() {
			raw = root
		}
	}
	if !raw.IsArray() {
		return nil, unexpected(r.kind.Name, "list", errors.New("missing envelope "+r.kind.Envelope))
	}

	items := make([]T, 0, len(raw.Array()))
	if err := json.Unmarshal([]byte(raw.Raw), &items); err != nil {
		return nil, unexpected(r.kind.Name, "list", err)
	}
	return items, nil
}

// Update replaces the record with the given id and returns the result.
func (r *Repository[T]) Update(ctx context.Context, id models.ID, data T) (*T, error) {
	if err := r.validate("update", data); err != nil {
		return nil, err
	}
	body, err := r.gw.Do(ctx, http.MethodPut, r.itemPath(id), data)
	if err != nil {
		return nil, wrap(r.kind.Name, "update", err)
	}
	return r.decodeItem("update", body)
}

// Delete removes the record with the given id.
func (r *Repository[T]) Delete(ctx context.Context, id models.ID) (Ack, error) {
	body, err := r.gw.Do(ctx, http.MethodDelete, r.itemPath(id), nil)
	if err != nil {
		return Ack{}, wrap(r.kind.Name, "delete", err)
	}
	return Ack{Message: client.ServerMessage(body)}, nil
}

func (r *Repository[T]) itemPath(id models.ID) string {
	return r.kind.Path + "/" + url.PathEscape(id.String())
}

func (r *Repository[T]) validate(op string, data T) error {
	v, ok := any(data).(Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		return &RepositoryError{Resource: r.kind.Name, Op: op, Message: "Invalid " + r.kind.Name + " data: " + err.Error(), Err: err}
	}
	return nil
}

func (r *Repository[T]) decodeItem(op string, body []byte) (*T, error) {
	var item T
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, unexpected(r.kind.Name, op, err)
	}
	return &item, nil
}
