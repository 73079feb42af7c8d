// Package session keeps browser sessions and session-scoped state in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kloudinfotech/helpdesk-console/internal/domain"
)

const keyPrefix = "helpdesk:session:"

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// Store persists sessions with a sliding TTL.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	scoped []string
}

// NewStore creates a session store.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Store{rdb: rdb, ttl: ttl, now: time.Now}
}

// TTL is the idle lifetime of a session.
func (s *Store) TTL() time.Duration { return s.ttl }

func sessionKey(id string) string { return keyPrefix + id }

// scopedKey names session-scoped state kept under namespace ns.
func scopedKey(ns, id string) string { return keyPrefix + id + ":" + ns }

// register records a namespace whose keys are removed with the session.
func (s *Store) register(ns string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scoped = append(s.scoped, ns)
}

// Create starts a session for a signed-in user.
func (s *Store) Create(ctx context.Context, token string, user domain.User) (*domain.Session, error) {
	now := s.now().UTC()
	sess := &domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(sess.ID), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get loads a session and extends its lifetime and that of its scoped
// state.
func (s *Store) Get(ctx context.Context, id string) (*domain.Session, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	s.mu.Lock()
	scoped := append([]string(nil), s.scoped...)
	s.mu.Unlock()

	// Scoped state slides with the session in the same round trip.
	pipe := s.rdb.Pipeline()
	get := pipe.GetEx(ctx, sessionKey(id), s.ttl)
	for _, ns := range scoped {
		pipe.Expire(ctx, scopedKey(ns, id), s.ttl)
	}
	_, _ = pipe.Exec(ctx)

	data, err := get.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	sess.ExpiresAt = s.now().UTC().Add(s.ttl)
	return &sess, nil
}

// UpdateUser replaces the session's user, e.g. after the plan changed
// upstream, and restarts its lifetime.
func (s *Store) UpdateUser(ctx context.Context, id string, user domain.User) (*domain.Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	sess.User = user
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(id), data, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Delete ends a session and drops its scoped state.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	keys := make([]string, 0, len(s.scoped)+1)
	keys = append(keys, sessionKey(id))
	for _, ns := range s.scoped {
		keys = append(keys, scopedKey(ns, id))
	}
	s.mu.Unlock()

	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
