package app

import (
	"context"

	"wheel-quiz-service/internal/domain"
)

// SessionRepository abstracts how game sessions are stored (in-memory, Redis, Postgres).
//
// Save inserts a session whose Version is zero and otherwise updates it only if the
// stored version still matches, returning domain.ErrVersionConflict when it does not.
// On success the session's Version is advanced in place.
type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	// FindOpenByStudent returns the most recent unfinished session of a student.
	FindOpenByStudent(ctx context.Context, studentID string) (domain.Session, error)
}

// AttemptLog is the append-only record of answered questions.
type AttemptLog interface {
	Append(ctx context.Context, attempt domain.Attempt) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.Attempt, error)
}

// QuestionSupply draws and looks up questions from the question bank.
type QuestionSupply interface {
	// DrawRandom returns up to count distinct questions matching the filter in random order.
	DrawRandom(ctx context.Context, filter domain.QuestionFilter, count int) ([]domain.Question, error)
	GetByID(ctx context.Context, questionID string) (domain.Question, error)
}

// SegmentCatalog lists the wheel segments currently in play.
type SegmentCatalog interface {
	ActiveSegments(ctx context.Context) ([]domain.Segment, error)
}

// Leaderboard projects completed sessions into per grade/subject rankings.
type Leaderboard interface {
	RecordScore(ctx context.Context, session domain.Session) error
	// RankOf returns the 1-indexed rank of a student, or 0 if unranked.
	RankOf(ctx context.Context, studentID string, grade int, subject string) (int, error)
}
