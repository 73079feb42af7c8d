package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DraftStore keeps one JSON value of type T per session under a namespace.
type DraftStore[T any] struct {
	store *Store
	ns    string
}

// NewDraftStore creates a scoped store. Its values expire with the
// session TTL and are removed on logout.
func NewDraftStore[T any](s *Store, ns string) *DraftStore[T] {
	s.register(ns)
	return &DraftStore[T]{store: s, ns: ns}
}

// Get returns the session's value, or nil when there is none. Reading
// extends the value's lifetime like Store.Get does for the session.
func (d *DraftStore[T]) Get(ctx context.Context, sessionID string) (*T, error) {
	data, err := d.store.rdb.GetEx(ctx, scopedKey(d.ns, sessionID), d.store.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s draft: %w", d.ns, err)
	}
	v := new(T)
	if err := json.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decode %s draft: %w", d.ns, err)
	}
	return v, nil
}

// Put stores the session's value.
func (d *DraftStore[T]) Put(ctx context.Context, sessionID string, v *T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s draft: %w", d.ns, err)
	}
	if err := d.store.rdb.Set(ctx, scopedKey(d.ns, sessionID), data, d.store.ttl).Err(); err != nil {
		return fmt.Errorf("store %s draft: %w", d.ns, err)
	}
	return nil
}

// Delete drops the session's value.
func (d *DraftStore[T]) Delete(ctx context.Context, sessionID string) error {
	if err := d.store.rdb.Del(ctx, scopedKey(d.ns, sessionID)).Err(); err != nil {
		return fmt.Errorf("delete %s draft: %w", d.ns, err)
	}
	return nil
}
