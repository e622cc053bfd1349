package memory

import (
	"context"
	"sync"

	"wheel-quiz-service/internal/domain"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// Sessions are deep-copied on the way in and out so callers never share state.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.Session),
	}
}

func (s *SessionStore) Get(_ context.Context, sessionID string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return session.Clone(), nil
}

func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.sessions[session.ID]
	switch {
	case session.Version == 0 && exists:
		return domain.ErrVersionConflict
	case session.Version != 0 && (!exists || current.Version != session.Version):
		return domain.ErrVersionConflict
	}

	session.Version++
	s.sessions[session.ID] = session.Clone()
	return nil
}

func (s *SessionStore) FindOpenByStudent(_ context.Context, studentID string) (domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found  domain.Session
		exists bool
	)
	for _, session := range s.sessions {
		if session.StudentID != studentID || session.IsCompleted {
			continue
		}
		if !exists || session.StartTime.After(found.StartTime) {
			found, exists = session, true
		}
	}
	if !exists {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return found.Clone(), nil
}
