package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const sessionKeyPrefix = "onboarding:session:"

// RedisStore keeps sessions in Redis as JSON. Every Save refreshes the idle TTL.
type RedisStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

func NewRedisStore(client *redis.Client, idleTTL time.Duration) *RedisStore {
	if client == nil {
		panic("onboarding: redis client cannot be nil")
	}
	if idleTTL < 0 {
		idleTTL = 0
	}
	return &RedisStore{
		redis:  client,
		ttl:    idleTTL,
		tracer: otel.Tracer("onboarding.internal.onboarding.sessions"),
	}
}

func (s *RedisStore) Get(ctx context.Context, userID string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.session.get", trace.WithAttributes(attribute.String("onboarding.user_id", userID)))
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		span.RecordError(err)
		return nil, fmt.Errorf("onboarding: failed to load session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("onboarding: failed to decode session: %w", err)
	}
	if session.Answers == nil {
		session.Answers = []string{}
	}
	return &session, nil
}

func (s *RedisStore) Save(ctx context.Context, userID string, session *Session) error {
	ctx, span := s.tracer.Start(ctx, "onboarding.session.save", trace.WithAttributes(attribute.String("onboarding.user_id", userID)))
	defer span.End()

	data, err := json.Marshal(session)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("onboarding: failed to marshal session: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKey(userID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("onboarding: failed to persist session: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "onboarding.session.delete", trace.WithAttributes(attribute.String("onboarding.user_id", userID)))
	defer span.End()

	if err := s.redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("onboarding: failed to delete session: %w", err)
	}
	return nil
}

func sessionKey(userID string) string {
	return sessionKeyPrefix + userID
}
