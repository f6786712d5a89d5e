package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"cleanadmin/internal/models"
)

type validator interface {
	Validate() error
}

// envelope is the backend's wrapper object; the payload key differs per
// endpoint family and is resolved by resource.
type envelope map[string]json.RawMessage

func unwrap[T any](env envelope, key string) (T, error) {
	var out T
	raw, ok := env[key]
	if !ok || len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode %q: %w", key, err)
	}
	return out, nil
}

// resource implements the uniform list/get/update/delete contract for one
// backend collection.
type resource[T any, U validator] struct {
	c       *Client
	name    string
	path    string
	listKey string
	itemKey string
}

func (r resource[T, U]) itemPath(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

// List returns the whole collection. A missing payload decodes as empty.
func (r resource[T, U]) List(ctx context.Context) ([]T, error) {
	return r.list(ctx, nil)
}

func (r resource[T, U]) list(ctx context.Context, query url.Values) ([]T, error) {
	var env envelope
	if err := r.c.get(ctx, r.name, r.path, query, &env); err != nil {
		return nil, err
	}
	items, err := unwrap[[]T](env, r.listKey)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r resource[T, U]) Get(ctx context.Context, id string) (*T, error) {
	if id == "" {
		return nil, models.Invalid("id", "is required")
	}
	var env envelope
	if err := r.c.get(ctx, r.name, r.itemPath(id), nil, &env); err != nil {
		return nil, err
	}
	return r.item(env)
}

// Update sends a partial update and returns the record as stored by the
// backend.
func (r resource[T, U]) Update(ctx context.Context, id string, upd U) (*T, error) {
	if id == "" {
		return nil, models.Invalid("id", "is required")
	}
	if err := upd.Validate(); err != nil {
		return nil, err
	}
	var env envelope
	if err := r.c.put(ctx, r.name, r.itemPath(id), upd, &env); err != nil {
		return nil, err
	}
	return r.item(env)
}

// Delete removes the record. Deleting an id the backend no longer knows
// surfaces as a RequestError.
func (r resource[T, U]) Delete(ctx context.Context, id string) error {
	if id == "" {
		return models.Invalid("id", "is required")
	}
	return r.c.delete(ctx, r.name, r.itemPath(id))
}

func (r resource[T, U]) item(env envelope) (*T, error) {
	raw, ok := env[r.itemKey]
	if !ok || string(raw) == "null" {
		return nil, fmt.Errorf("%s response missing %q", r.name, r.itemKey)
	}
	item, err := unwrap[T](env, r.itemKey)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
