package postgres

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"wheel-quiz-service/internal/domain"
)

// Seeder upserts question bank and wheel content.
type Seeder struct {
	db *bun.DB
}

func NewSeeder(db *bun.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedQuestions inserts or refreshes questions by id.
func (s *Seeder) SeedQuestions(ctx context.Context, questions []domain.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}
	rows := make([]questionRow, len(questions))
	for i, q := range questions {
		options := q.Options
		if options == nil {
			options = []string{}
		}
		rows[i] = questionRow{
			ID:            q.ID,
			Grade:         q.Grade,
			Subject:       q.Subject,
			TestType:      q.TestType,
			Difficulty:    q.Difficulty,
			Prompt:        q.Prompt,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
			PointsValue:   q.PointsValue,
			Hint:          q.Hint,
			Explanation:   q.Explanation,
		}
	}
	_, err := s.db.NewInsert().Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("grade = EXCLUDED.grade").
		Set("subject = EXCLUDED.subject").
		Set("test_type = EXCLUDED.test_type").
		Set("difficulty = EXCLUDED.difficulty").
		Set("prompt = EXCLUDED.prompt").
		Set("options = EXCLUDED.options").
		Set("correct_answer = EXCLUDED.correct_answer").
		Set("points_value = EXCLUDED.points_value").
		Set("hint = EXCLUDED.hint").
		Set("explanation = EXCLUDED.explanation").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed questions: %w", err)
	}
	return len(rows), nil
}

// SeedSegments inserts or refreshes wheel segments; slice order becomes wheel order.
func (s *Seeder) SeedSegments(ctx context.Context, segments []domain.Segment) (int, error) {
	if len(segments) == 0 {
		return 0, nil
	}
	rows := make([]segmentRow, len(segments))
	for i, seg := range segments {
		rows[i] = segmentRow{
			ID:          seg.ID,
			Type:        string(seg.Type),
			Value:       seg.Value,
			DisplayText: seg.DisplayText,
			Color:       seg.Color,
			Probability: seg.Probability,
			Active:      seg.Active,
			SortOrder:   i,
		}
	}
	_, err := s.db.NewInsert().Model(&rows).
		On("CONFLICT (id) DO UPDATE").
		Set("type = EXCLUDED.type").
		Set("value = EXCLUDED.value").
		Set("display_text = EXCLUDED.display_text").
		Set("color = EXCLUDED.color").
		Set("probability = EXCLUDED.probability").
		Set("active = EXCLUDED.active").
		Set("sort_order = EXCLUDED.sort_order").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed segments: %w", err)
	}
	return len(rows), nil
}
