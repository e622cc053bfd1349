package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"wheel-quiz-service/internal/domain"
)

// SessionStore keeps game sessions as JSON documents in Redis.
//
// Keys:
//
//	wheel:session:{id}             session document (state blob included)
//	wheel:student:{id}:open        ZSET of open session ids scored by start time
//
// Save runs inside WATCH/MULTI so a concurrent writer on another instance is
// reported as domain.ErrVersionConflict instead of silently overwriting counters.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore creates the store; ttl 0 keeps sessions forever.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	data, err := s.client.Get(ctx, s.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return domain.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return session, nil
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	key := s.key(session.ID)
	next := session.Clone()
	next.Version++

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.Get(ctx, key).Bytes()
		switch {
		case errors.Is(err, redis.Nil):
			if session.Version != 0 {
				return domain.ErrVersionConflict
			}
		case err != nil:
			return err
		default:
			var current struct {
				Version int64 `json:"version"`
			}
			if err := json.Unmarshal(stored, &current); err != nil {
				return fmt.Errorf("decode session: %w", err)
			}
			if current.Version != session.Version {
				return domain.ErrVersionConflict
			}
		}

		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			if next.StudentID != "" {
				openKey := s.openKey(next.StudentID)
				if next.IsCompleted {
					pipe.ZRem(ctx, openKey, next.ID)
				} else {
					pipe.ZAdd(ctx, openKey, redis.Z{Score: float64(next.StartTime.UnixMilli()), Member: next.ID})
				}
			}
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return domain.ErrVersionConflict
	}
	if err != nil {
		return err
	}
	session.Version = next.Version
	return nil
}

func (s *SessionStore) FindOpenByStudent(ctx context.Context, studentID string) (domain.Session, error) {
	openKey := s.openKey(studentID)
	ids, err := s.client.ZRevRange(ctx, openKey, 0, -1).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("list open sessions: %w", err)
	}
	for _, id := range ids {
		session, err := s.Get(ctx, id)
		if errors.Is(err, domain.ErrSessionNotFound) {
			// expired document; drop the dangling index entry
			_ = s.client.ZRem(ctx, openKey, id).Err()
			continue
		}
		if err != nil {
			return domain.Session{}, err
		}
		if !session.IsCompleted {
			return session, nil
		}
	}
	return domain.Session{}, domain.ErrSessionNotFound
}

func (s *SessionStore) key(sessionID string) string {
	return "wheel:session:" + sessionID
}

func (s *SessionStore) openKey(studentID string) string {
	return "wheel:student:" + studentID + ":open"
}
