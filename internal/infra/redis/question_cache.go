package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
	"wheel-quiz-service/internal/domain"
)

// QuestionSource is the backing question bank (e.g. Postgres).
type QuestionSource interface {
	DrawRandom(ctx context.Context, filter domain.QuestionFilter, count int) ([]domain.Question, error)
	GetByID(ctx context.Context, questionID string) (domain.Question, error)
}

// QuestionCache caches question records in Redis and falls back to the source on a miss.
// Questions are stored as: SET wheel:question:{id} {json} EX ttl(+jitter)
// Draws are random, so they always go to the source and only warm the cache.
type QuestionCache struct {
	client *redis.Client
	source QuestionSource
	ttl    time.Duration
	sf     singleflight.Group

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuestionCache(client *redis.Client, source QuestionSource, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) DrawRandom(ctx context.Context, filter domain.QuestionFilter, count int) ([]domain.Question, error) {
	questions, err := c.source.DrawRandom(ctx, filter, count)
	if err != nil {
		return nil, err
	}
	pipe := c.client.Pipeline()
	for _, q := range questions {
		if data, err := json.Marshal(q); err == nil {
			pipe.Set(ctx, c.key(q.ID), data, c.ttlWithJitter())
		}
	}
	// best-effort warm-up
	_, _ = pipe.Exec(ctx)
	return questions, nil
}

func (c *QuestionCache) GetByID(ctx context.Context, questionID string) (domain.Question, error) {
	if q, ok := c.cached(ctx, questionID); ok {
		return q, nil
	}

	result, err, _ := c.sf.Do(questionID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if q, ok := c.cached(ctx, questionID); ok {
			return q, nil
		}

		q, err := c.source.GetByID(ctx, questionID)
		if err != nil {
			return domain.Question{}, err
		}
		if data, err := json.Marshal(q); err == nil {
			_ = c.client.Set(ctx, c.key(questionID), data, c.ttlWithJitter()).Err()
		}
		return q, nil
	})
	if err != nil {
		return domain.Question{}, err
	}
	return result.(domain.Question), nil
}

func (c *QuestionCache) cached(ctx context.Context, questionID string) (domain.Question, bool) {
	// redis.Nil and transport errors both fall through to the source
	data, err := c.client.Get(ctx, c.key(questionID)).Bytes()
	if err != nil {
		return domain.Question{}, false
	}
	var q domain.Question
	if err := json.Unmarshal(data, &q); err != nil {
		return domain.Question{}, false
	}
	return q, true
}

func (c *QuestionCache) key(questionID string) string {
	return "wheel:question:" + questionID
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
