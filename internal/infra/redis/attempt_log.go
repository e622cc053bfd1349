package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"wheel-quiz-service/internal/domain"
)

// AttemptLog appends attempts to a Redis list per session: RPUSH wheel:session:{id}:attempts.
type AttemptLog struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAttemptLog(client *redis.Client, ttl time.Duration) *AttemptLog {
	return &AttemptLog{client: client, ttl: ttl}
}

func (l *AttemptLog) Append(ctx context.Context, attempt domain.Attempt) error {
	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("encode attempt: %w", err)
	}
	key := l.key(attempt.SessionID)
	pipe := l.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	if l.ttl > 0 {
		pipe.Expire(ctx, key, l.ttl)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (l *AttemptLog) ListBySession(ctx context.Context, sessionID string) ([]domain.Attempt, error) {
	raw, err := l.client.LRange(ctx, l.key(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	attempts := make([]domain.Attempt, 0, len(raw))
	for _, item := range raw {
		var a domain.Attempt
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			return nil, fmt.Errorf("decode attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	return attempts, nil
}

func (l *AttemptLog) key(sessionID string) string {
	return "wheel:session:" + sessionID + ":attempts"
}
