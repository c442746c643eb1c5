package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"storefront/pkg/kv"
)

const sessionCookie = "session_id"

// sessionStore maps login session ids to user names.
type sessionStore interface {
	Create(ctx context.Context, user string) (string, error)
	User(ctx context.Context, sid string) (string, bool, error)
}

type redisSessions struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (s *redisSessions) Create(ctx context.Context, user string) (string, error) {
	sid := uuid.NewString()
	if err := s.client.Set(ctx, s.prefix+"session:"+sid, user, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

func (s *redisSessions) User(ctx context.Context, sid string) (string, bool, error) {
	user, err := s.client.Get(ctx, s.prefix+"session:"+sid).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return user, user != "", nil
}

// kvSessions keeps sessions in the kv store for setups without Redis.
type kvSessions struct {
	store kv.Store
}

func (s *kvSessions) Create(ctx context.Context, user string) (string, error) {
	sid := uuid.NewString()
	if err := s.store.Set(ctx, "session:"+sid, user); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return sid, nil
}

func (s *kvSessions) User(ctx context.Context, sid string) (string, bool, error) {
	user, ok, err := s.store.Get(ctx, "session:"+sid)
	if err != nil || !ok {
		return "", false, err
	}
	return user, user != "", nil
}
