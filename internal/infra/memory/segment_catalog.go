package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"wheel-quiz-service/internal/domain"
)

// SegmentCatalog is a fixed wheel, typically built from config.
type SegmentCatalog struct {
	segments []domain.Segment
}

func NewSegmentCatalog(segments []domain.Segment) *SegmentCatalog {
	return &SegmentCatalog{segments: segments}
}

// ActiveSegments returns the active segments in wheel order.
func (c *SegmentCatalog) ActiveSegments(_ context.Context) ([]domain.Segment, error) {
	out := make([]domain.Segment, 0, len(c.segments))
	for _, seg := range c.segments {
		if seg.Active {
			out = append(out, seg)
		}
	}
	return out, nil
}

// SegmentLister is any catalog the cache can refresh from.
type SegmentLister interface {
	ActiveSegments(ctx context.Context) ([]domain.Segment, error)
}

// CachedSegmentCatalog keeps the active wheel for ttl so spins don't hit the database.
// A ttl <= 0 keeps it until restart, same as the Redis question cache.
type CachedSegmentCatalog struct {
	source SegmentLister
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group

	mu        sync.RWMutex
	segments  []domain.Segment
	expiresAt time.Time
}

func NewCachedSegmentCatalog(source SegmentLister, ttl time.Duration) *CachedSegmentCatalog {
	return &CachedSegmentCatalog{source: source, ttl: ttl, clock: time.Now}
}

func (c *CachedSegmentCatalog) ActiveSegments(ctx context.Context) ([]domain.Segment, error) {
	c.mu.RLock()
	if c.segments != nil && (c.ttl <= 0 || c.expiresAt.After(c.clock())) {
		segments := c.segments
		c.mu.RUnlock()
		return segments, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("segments", func() (interface{}, error) {
		segments, err := c.source.ActiveSegments(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.segments = segments
		c.expiresAt = c.clock().Add(c.ttl)
		c.mu.Unlock()
		return segments, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Segment), nil
}
