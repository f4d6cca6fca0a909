package redis

// Package redis provides Redis-backed adapters for federated sessions.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/nazmul162001/educonnect/internal/domain/auth"
	"github.com/nazmul162001/educonnect/internal/ports"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "educonnect:session:"

// ErrNotFound is returned when a session is missing or expired.
var ErrNotFound = ports.ErrSessionNotFound

// SessionStore persists federated sessions as JSON with a TTL matching ExpiresAt.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStoreOptions configures a SessionStore.
type SessionStoreOptions struct {
	Prefix string           // key prefix; defaults to "educonnect:session:"
	Now    func() time.Time // clock; defaults to time.Now
}

// NewSessionStore creates a Redis session store.
func NewSessionStore(client redis.UniversalClient, opts ...SessionStoreOptions) *SessionStore {
	s := &SessionStore{client: client, prefix: defaultPrefix, now: time.Now}
	if len(opts) > 0 {
		if opts[0].Prefix != "" {
			s.prefix = opts[0].Prefix
		}
		if opts[0].Now != nil {
			s.now = opts[0].Now
		}
	}
	return s
}

func (s *SessionStore) key(id string) string { return s.prefix + id }

// Save stores the session until its expiry.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Get loads a session. Missing and expired sessions return ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ErrNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal(data, &sess); unmarshalErr != nil {
		// A corrupt record can never resolve; drop it.
		_ = s.client.Del(ctx, s.key(id)).Err()
		return domainauth.Session{}, ErrNotFound
	}

	if sess.Expired(s.now()) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

// Delete removes a session. Deleting an unknown id is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
