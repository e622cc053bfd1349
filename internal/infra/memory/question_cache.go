package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"wheel-quiz-service/internal/domain"
)

// QuestionSource is the backing question bank (Postgres, static, ...).
type QuestionSource interface {
	DrawRandom(ctx context.Context, filter domain.QuestionFilter, count int) ([]domain.Question, error)
	GetByID(ctx context.Context, questionID string) (domain.Question, error)
}

// QuestionCache caches question lookups with TTL to avoid repeated DB hits.
// Draws always go to the source; the drawn questions warm the cache since they
// are looked up again on every answer and hint.
type QuestionCache struct {
	source QuestionSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	rndMu sync.Mutex
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedQuestion
}

// cachedQuestion with a zero expiresAt never expires (ttl <= 0).
type cachedQuestion struct {
	question  domain.Question
	expiresAt time.Time
}

func (e cachedQuestion) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// NewQuestionCache wraps source; ttl <= 0 caches without expiry, like the Redis cache.
func NewQuestionCache(source QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:  make(map[string]cachedQuestion),
	}
}

func (c *QuestionCache) DrawRandom(ctx context.Context, filter domain.QuestionFilter, count int) ([]domain.Question, error) {
	questions, err := c.source.DrawRandom(ctx, filter, count)
	if err != nil {
		return nil, err
	}
	now := c.clock()
	c.mu.Lock()
	for _, q := range questions {
		c.cache[q.ID] = cachedQuestion{question: q, expiresAt: c.expiry(now)}
	}
	c.mu.Unlock()
	return questions, nil
}

func (c *QuestionCache) GetByID(ctx context.Context, questionID string) (domain.Question, error) {
	if q, ok := c.lookup(questionID); ok {
		return q, nil
	}

	result, err, _ := c.sf.Do(questionID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if q, ok := c.lookup(questionID); ok {
			return q, nil
		}

		q, err := c.source.GetByID(ctx, questionID)
		if err != nil {
			return domain.Question{}, err
		}

		c.mu.Lock()
		c.cache[questionID] = cachedQuestion{
			question:  q,
			expiresAt: c.expiry(c.clock()),
		}
		c.mu.Unlock()
		return q, nil
	})
	if err != nil {
		return domain.Question{}, err
	}
	return result.(domain.Question), nil
}

func (c *QuestionCache) lookup(questionID string) (domain.Question, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.cache[questionID]
	if !ok || entry.expired(c.clock()) {
		return domain.Question{}, false
	}
	return entry.question, true
}

func (c *QuestionCache) expiry(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttlWithJitter())
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
