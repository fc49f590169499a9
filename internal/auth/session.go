package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps session state in Redis, one hash per handle, with
// a lifetime independent of the relational store. A handle carries at
// most one identity; Bind always issues a fresh handle so an attacker
// cannot fixate one ahead of authentication.
type SessionStore struct {
	Redis *redis.Client
	TTL   time.Duration
}

func sessionKey(id string) string {
	return "session:" + id
}

func NewSessionID() string {
	return uuid.NewString()
}

// Bind associates userID with a brand-new session handle and drops the
// old one. Rebinding an already-bound handle simply overwrites: the
// previous identity is discarded together with the previous key.
func (s *SessionStore) Bind(ctx context.Context, oldID, userID string) (string, error) {
	if oldID != "" {
		if err := s.Redis.Del(ctx, sessionKey(oldID)).Err(); err != nil {
			return "", err
		}
	}

	now := time.Now()
	id := NewSessionID()
	key := sessionKey(id)

	pipe := s.Redis.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"userId":    userID,
		"createdAt": now.Unix(),
	})
	pipe.Expire(ctx, key, s.ttl())
	if _, err := pipe.Exec(ctx); err != nil {
		return "", err
	}
	return id, nil
}

// UserID resolves the identity bound to a handle. An unknown or
// expired handle is ErrUnauthorized, not a storage failure.
func (s *SessionStore) UserID(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrUnauthorized
	}
	vals, err := s.Redis.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return "", err
	}
	if len(vals) == 0 || vals["userId"] == "" {
		return "", ErrUnauthorized
	}
	return vals["userId"], nil
}

// Purge removes the identity binding. Purging a handle with nothing
// bound is itself unauthorized rather than a no-op.
func (s *SessionStore) Purge(ctx context.Context, id string) error {
	if _, err := s.UserID(ctx, id); err != nil {
		return err
	}
	return s.Redis.Del(ctx, sessionKey(id)).Err()
}

// Renew slides the handle's expiry forward by the configured TTL.
func (s *SessionStore) Renew(ctx context.Context, id string) error {
	ok, err := s.Redis.Expire(ctx, sessionKey(id), s.ttl()).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnauthorized
	}
	return nil
}

func (s *SessionStore) ttl() time.Duration {
	if s.TTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return s.TTL
}
