package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"wheel-quiz-service/internal/domain"
)

// SessionStore persists game sessions with bun. Updates are guarded by the version column.
type SessionStore struct {
	db *bun.DB
}

func NewSessionStore(db *bun.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.Session, error) {
	var row sessionRow
	err := s.db.NewSelect().Model(&row).Where("id = ?", sessionID).Limit(1).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return row.toDomain(), nil
}

func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	row := toSessionRow(*session)
	prev := row.Version
	row.Version = prev + 1

	if prev == 0 {
		res, err := s.db.NewInsert().Model(&row).On("CONFLICT (id) DO NOTHING").Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrVersionConflict
		}
	} else {
		res, err := s.db.NewUpdate().Model(&row).WherePK().Where("version = ?", prev).Exec(ctx)
		if err != nil {
			return fmt.Errorf("update session: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrVersionConflict
		}
	}
	session.Version = row.Version
	return nil
}

func (s *SessionStore) FindOpenByStudent(ctx context.Context, studentID string) (domain.Session, error) {
	var row sessionRow
	err := s.db.NewSelect().Model(&row).
		Where("student_id = ?", studentID).
		Where("NOT is_completed").
		OrderExpr("start_time DESC").
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("find open session: %w", err)
	}
	return row.toDomain(), nil
}
