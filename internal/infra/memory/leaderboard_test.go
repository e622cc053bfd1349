package memory

import (
	"context"
	"testing"
	"time"

	"wheel-quiz-service/internal/domain"
)

func TestLeaderboardKeepsBestScore(t *testing.T) {
	ctx := context.Background()
	lb := NewLeaderboard()

	record := func(student string, score int) {
		t.Helper()
		if err := lb.RecordScore(ctx, domain.Session{StudentID: student, Grade: 3, Subject: "math", TotalScore: score}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	record("alice", 30)
	record("bob", 50)
	record("alice", 10) // lower score must not replace the best one

	tests := []struct {
		student string
		want    int
	}{
		{"bob", 1},
		{"alice", 2},
		{"carol", 0},
	}
	for _, tt := range tests {
		got, err := lb.RankOf(ctx, tt.student, 3, "math")
		if err != nil {
			t.Fatalf("rank: %v", err)
		}
		if got != tt.want {
			t.Errorf("RankOf(%s) = %d, want %d", tt.student, got, tt.want)
		}
	}

	if rank, _ := lb.RankOf(ctx, "bob", 4, "math"); rank != 0 {
		t.Fatalf("expected boards to be separated by grade, got rank %d", rank)
	}
}

func TestSegmentCatalogFiltersInactive(t *testing.T) {
	catalog := NewSegmentCatalog([]domain.Segment{
		{ID: "a", Type: domain.SegmentPoints, Probability: 1, Active: true},
		{ID: "b", Type: domain.SegmentBonus, Probability: 1, Active: false},
	})
	segments, err := catalog.ActiveSegments(context.Background())
	if err != nil {
		t.Fatalf("active segments: %v", err)
	}
	if len(segments) != 1 || segments[0].ID != "a" {
		t.Fatalf("expected only segment a, got %+v", segments)
	}
}

func TestCachedSegmentCatalog(t *testing.T) {
	source := &countingSegments{SegmentCatalog: NewSegmentCatalog([]domain.Segment{
		{ID: "a", Type: domain.SegmentPoints, Probability: 1, Active: true},
	})}
	cached := NewCachedSegmentCatalog(source, time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := cached.ActiveSegments(context.Background()); err != nil {
			t.Fatalf("active segments: %v", err)
		}
	}
	if source.calls != 1 {
		t.Fatalf("expected one source call, got %d", source.calls)
	}
}

func TestCachedSegmentCatalogZeroTTL(t *testing.T) {
	source := &countingSegments{SegmentCatalog: NewSegmentCatalog([]domain.Segment{
		{ID: "a", Type: domain.SegmentPoints, Probability: 1, Active: true},
	})}
	cached := NewCachedSegmentCatalog(source, 0)
	now := time.Now()
	cached.clock = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := cached.ActiveSegments(context.Background()); err != nil {
			t.Fatalf("active segments: %v", err)
		}
		now = now.Add(24 * time.Hour)
	}
	if source.calls != 1 {
		t.Fatalf("expected zero ttl to keep the wheel, got %d source calls", source.calls)
	}
}

type countingSegments struct {
	*SegmentCatalog
	calls int
}

func (c *countingSegments) ActiveSegments(ctx context.Context) ([]domain.Segment, error) {
	c.calls++
	return c.SegmentCatalog.ActiveSegments(ctx)
}
