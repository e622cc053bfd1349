package memory

import (
	"context"
	"sync"

	"wheel-quiz-service/internal/domain"
)

// AttemptLog keeps attempts per session in submission order.
type AttemptLog struct {
	mu       sync.RWMutex
	attempts map[string][]domain.Attempt
}

func NewAttemptLog() *AttemptLog {
	return &AttemptLog{attempts: make(map[string][]domain.Attempt)}
}

func (l *AttemptLog) Append(_ context.Context, attempt domain.Attempt) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts[attempt.SessionID] = append(l.attempts[attempt.SessionID], attempt)
	return nil
}

func (l *AttemptLog) ListBySession(_ context.Context, sessionID string) ([]domain.Attempt, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return append([]domain.Attempt{}, l.attempts[sessionID]...), nil
}
