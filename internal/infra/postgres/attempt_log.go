package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"wheel-quiz-service/internal/domain"
)

// AttemptLog appends to game_attempts; rows are never updated.
type AttemptLog struct {
	db *bun.DB
}

func NewAttemptLog(db *bun.DB) *AttemptLog {
	return &AttemptLog{db: db}
}

func (l *AttemptLog) Append(ctx context.Context, attempt domain.Attempt) error {
	row := toAttemptRow(attempt)
	if _, err := l.db.NewInsert().Model(&row).Exec(ctx); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (l *AttemptLog) ListBySession(ctx context.Context, sessionID string) ([]domain.Attempt, error) {
	var rows []attemptRow
	err := l.db.NewSelect().Model(&rows).Where("session_id = ?", sessionID).OrderExpr("seq ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	attempts := make([]domain.Attempt, len(rows))
	for i, r := range rows {
		attempts[i] = r.toDomain()
	}
	return attempts, nil
}
