package memory

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"wheel-quiz-service/internal/domain"
)

func TestQuestionCacheCaches(t *testing.T) {
	source := &countingSource{QuestionSource: NewQuestionBank(sampleQuestions())}
	cache := NewQuestionCache(source, time.Minute)

	if _, err := cache.GetByID(context.Background(), "q1"); err != nil {
		t.Fatalf("get question: %v", err)
	}
	if source.gets != 1 {
		t.Fatalf("expected source once, got %d", source.gets)
	}

	if _, err := cache.GetByID(context.Background(), "q1"); err != nil {
		t.Fatalf("get question 2: %v", err)
	}
	if source.gets != 1 {
		t.Fatalf("expected cache hit, source calls %d", source.gets)
	}
}

func TestQuestionCacheWarmsOnDraw(t *testing.T) {
	source := &countingSource{QuestionSource: NewQuestionBank(sampleQuestions())}
	cache := NewQuestionCache(source, time.Minute)

	drawn, err := cache.DrawRandom(context.Background(), mathFilter(), 2)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	for _, q := range drawn {
		if _, err := cache.GetByID(context.Background(), q.ID); err != nil {
			t.Fatalf("get %s: %v", q.ID, err)
		}
	}
	if source.gets != 0 {
		t.Fatalf("expected drawn questions served from cache, source calls %d", source.gets)
	}
}

func TestQuestionCacheExpires(t *testing.T) {
	source := &countingSource{QuestionSource: NewQuestionBank(sampleQuestions())}
	cache := NewQuestionCache(source, time.Minute)
	now := time.Now()
	cache.clock = func() time.Time { return now }

	_, _ = cache.GetByID(context.Background(), "q1")
	now = now.Add(2 * time.Minute)
	_, _ = cache.GetByID(context.Background(), "q1")
	if source.gets != 2 {
		t.Fatalf("expected reload after expiry, source calls %d", source.gets)
	}
}

func TestQuestionCacheZeroTTLNeverExpires(t *testing.T) {
	source := &countingSource{QuestionSource: NewQuestionBank(sampleQuestions())}
	cache := NewQuestionCache(source, 0)
	now := time.Now()
	cache.clock = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := cache.GetByID(context.Background(), "q1"); err != nil {
			t.Fatalf("get question: %v", err)
		}
		now = now.Add(24 * time.Hour)
	}
	if source.gets != 1 {
		t.Fatalf("expected zero ttl to cache without expiry, source calls %d", source.gets)
	}
}

func TestQuestionBankDraw(t *testing.T) {
	bank := NewQuestionBankWithRand(sampleQuestions(), rand.New(rand.NewSource(7)))

	drawn, err := bank.DrawRandom(context.Background(), mathFilter(), 10)
	if err != nil {
		t.Fatalf("draw: %v", err)
	}
	if len(drawn) != 3 {
		t.Fatalf("expected all 3 grade-3 math questions, got %d", len(drawn))
	}
	seen := map[string]bool{}
	for _, q := range drawn {
		if seen[q.ID] {
			t.Fatalf("question %s drawn twice", q.ID)
		}
		seen[q.ID] = true
	}

	easy := mathFilter()
	easy.Difficulty = "easy"
	drawn, _ = bank.DrawRandom(context.Background(), easy, 10)
	if len(drawn) != 2 {
		t.Fatalf("expected 2 easy questions, got %d", len(drawn))
	}

	_, err = bank.DrawRandom(context.Background(), domain.QuestionFilter{Grade: 9, Subject: "history"}, 3)
	if !errors.Is(err, domain.ErrNoQuestionsAvailable) {
		t.Fatalf("expected no questions available, got %v", err)
	}
}

type countingSource struct {
	QuestionSource
	gets int
}

func (s *countingSource) GetByID(ctx context.Context, questionID string) (domain.Question, error) {
	s.gets++
	return s.QuestionSource.GetByID(ctx, questionID)
}

func mathFilter() domain.QuestionFilter {
	return domain.QuestionFilter{Grade: 3, Subject: "math", TestType: "practice"}
}

func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "q1", Grade: 3, Subject: "math", TestType: "practice", Difficulty: "easy", Prompt: "2 + 2?", CorrectAnswer: "4", PointsValue: 10},
		{ID: "q2", Grade: 3, Subject: "math", TestType: "practice", Difficulty: "easy", Prompt: "3 + 3?", CorrectAnswer: "6", PointsValue: 10},
		{ID: "q3", Grade: 3, Subject: "math", TestType: "practice", Difficulty: "hard", Prompt: "12 x 12?", CorrectAnswer: "144", PointsValue: 20},
		{ID: "q4", Grade: 4, Subject: "science", TestType: "practice", Difficulty: "easy", Prompt: "H2O is?", CorrectAnswer: "water", PointsValue: 10},
	}
}
