package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"wheel-quiz-service/internal/domain"
)

const questionColumns = `id, grade, subject, test_type, difficulty, prompt, options, correct_answer, points_value, hint, explanation`

// QuestionBank reads questions from Postgres.
type QuestionBank struct {
	pool *pgxpool.Pool
}

func NewQuestionBank(pool *pgxpool.Pool) *QuestionBank {
	return &QuestionBank{pool: pool}
}

// DrawRandom lets Postgres shuffle the matching rows; LIMIT keeps them distinct.
func (b *QuestionBank) DrawRandom(ctx context.Context, filter domain.QuestionFilter, count int) ([]domain.Question, error) {
	rows, err := b.pool.Query(ctx, `SELECT `+questionColumns+` FROM questions
		WHERE grade = $1 AND subject = $2 AND test_type = $3 AND ($4::text = '' OR difficulty = $4::text)
		ORDER BY random()
		LIMIT $5`,
		filter.Grade, filter.Subject, filter.TestType, filter.Difficulty, count)
	if err != nil {
		return nil, fmt.Errorf("draw questions: %w", err)
	}
	defer rows.Close()

	var questions []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("draw questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, domain.ErrNoQuestionsAvailable
	}
	return questions, nil
}

func (b *QuestionBank) GetByID(ctx context.Context, questionID string) (domain.Question, error) {
	row := b.pool.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, questionID)
	q, err := scanQuestion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	return q, err
}

func scanQuestion(row pgx.Row) (domain.Question, error) {
	var (
		q       domain.Question
		options []byte
	)
	err := row.Scan(&q.ID, &q.Grade, &q.Subject, &q.TestType, &q.Difficulty, &q.Prompt,
		&options, &q.CorrectAnswer, &q.PointsValue, &q.Hint, &q.Explanation)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Question{}, err
		}
		return domain.Question{}, fmt.Errorf("scan question: %w", err)
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &q.Options); err != nil {
			return domain.Question{}, fmt.Errorf("unmarshal question options: %w", err)
		}
	}
	return q, nil
}
