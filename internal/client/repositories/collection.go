package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/posadmin/internal/client/models"
)

// Collection is a Repository with its record type erased to JSON. Input is
// decoded into the typed record before it is sent, so unknown fields are
// dropped and wrong types are rejected locally.
type Collection interface {
	Kind() models.Kind
	ListRaw(ctx context.Context) ([]json.RawMessage, error)
	CreateRaw(ctx context.Context, data json.RawMessage) (json.RawMessage, error)
	UpdateRaw(ctx context.Context, id models.ID, data json.RawMessage) (json.RawMessage, error)
	Delete(ctx context.Context, id models.ID) (Ack, error)
}

func (r *Repository[T]) ListRaw(ctx context.Context) ([]json.RawMessage, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		b, err := json.Marshal(it)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", r.kind.Name, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *Repository[T]) CreateRaw(ctx context.Context, data json.RawMessage) (json.RawMessage, error) {
	in, err := r.decodeInput(data)
	if err != nil {
		return nil, err
	}
	item, err := r.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return json.Marshal(item)
}

func (r *Repository[T]) UpdateRaw(ctx context.Context, id models.ID, data json.RawMessage) (json.RawMessage, error) {
	in, err := r.decodeInput(data)
	if err != nil {
		return nil, err
	}
	item, err := r.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return json.Marshal(item)
}

func (r *Repository[T]) decodeInput(data json.RawMessage) (T, error) {
	var in T
	if err := json.Unmarshal(data, &in); err != nil {
		return in, &RepositoryError{Resource: r.kind.Name, Op: "decode", Message: "Invalid " + r.kind.Name + " data: " + err.Error(), Err: err}
	}
	return in, nil
}
