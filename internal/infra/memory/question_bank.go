package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"wheel-quiz-service/internal/domain"
)

// QuestionBank is a static question supply backed by a slice (useful for tests/demos).
type QuestionBank struct {
	questions []domain.Question
	byID      map[string]domain.Question

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionBank(questions []domain.Question) *QuestionBank {
	return NewQuestionBankWithRand(questions, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewQuestionBankWithRand allows deterministic draws in tests.
func NewQuestionBankWithRand(questions []domain.Question, rnd *rand.Rand) *QuestionBank {
	byID := make(map[string]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &QuestionBank{questions: questions, byID: byID, rnd: rnd}
}

// DrawRandom returns up to count distinct matching questions in random order.
func (b *QuestionBank) DrawRandom(_ context.Context, filter domain.QuestionFilter, count int) ([]domain.Question, error) {
	matching := make([]domain.Question, 0, len(b.questions))
	for _, q := range b.questions {
		if filter.Matches(q) {
			matching = append(matching, q)
		}
	}
	if len(matching) == 0 || count <= 0 {
		return nil, domain.ErrNoQuestionsAvailable
	}

	b.mu.Lock()
	b.rnd.Shuffle(len(matching), func(i, j int) {
		matching[i], matching[j] = matching[j], matching[i]
	})
	b.mu.Unlock()

	if count < len(matching) {
		matching = matching[:count]
	}
	return matching, nil
}

func (b *QuestionBank) GetByID(_ context.Context, questionID string) (domain.Question, error) {
	if q, ok := b.byID[questionID]; ok {
		return q, nil
	}
	return domain.Question{}, domain.ErrQuestionNotFound
}
