package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"wheel-quiz-service/internal/domain"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	mr, client := startMiniredis(t)
	store := NewSessionStore(client, time.Hour)
	ctx := context.Background()

	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	session := domain.Session{
		ID:             "s1",
		StudentID:      "stu-1",
		Grade:          3,
		Subject:        "math",
		TestType:       "practice",
		TotalQuestions: 3,
		StartTime:      start,
		State: domain.SessionState{
			QuestionOrder: []string{"q3", "q1", "q2"},
			Cursor:        1,
			PendingSpin:   &domain.Spin{SegmentID: "x2", Type: domain.SegmentDoublePoints, Value: 2, DisplayText: "2x"},
		},
	}
	if err := store.Save(ctx, &session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("wheel:session:s1") {
		t.Fatalf("expected redis key to be set")
	}

	loaded, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Version != 1 || !loaded.StartTime.Equal(start) {
		t.Fatalf("unexpected session %+v", loaded)
	}
	if got := loaded.State.QuestionOrder; len(got) != 3 || got[0] != "q3" || got[2] != "q2" {
		t.Fatalf("question order not preserved: %v", got)
	}
	if loaded.State.Cursor != 1 || loaded.State.PendingSpin == nil || loaded.State.PendingSpin.Type != domain.SegmentDoublePoints {
		t.Fatalf("state not preserved: %+v", loaded.State)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSessionStoreVersionConflict(t *testing.T) {
	_, client := startMiniredis(t)
	store := NewSessionStore(client, 0)
	ctx := context.Background()

	session := domain.Session{ID: "s1", TotalQuestions: 1}
	if err := store.Save(ctx, &session); err != nil {
		t.Fatalf("save: %v", err)
	}
	first, _ := store.Get(ctx, "s1")
	second, _ := store.Get(ctx, "s1")

	first.TotalScore = 10
	if err := store.Save(ctx, &first); err != nil {
		t.Fatalf("first writer: %v", err)
	}
	second.TotalScore = 99
	if err := store.Save(ctx, &second); !errors.Is(err, domain.ErrVersionConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	stored, _ := store.Get(ctx, "s1")
	if stored.TotalScore != 10 || stored.Version != 2 {
		t.Fatalf("unexpected stored session %+v", stored)
	}
}

func TestSessionStoreOpenIndex(t *testing.T) {
	mr, client := startMiniredis(t)
	store := NewSessionStore(client, 0)
	ctx := context.Background()

	older := domain.Session{ID: "old", StudentID: "stu-1", StartTime: time.Now().Add(-time.Hour)}
	newer := domain.Session{ID: "new", StudentID: "stu-1", StartTime: time.Now()}
	for _, s := range []*domain.Session{&older, &newer} {
		if err := store.Save(ctx, s); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	open, err := store.FindOpenByStudent(ctx, "stu-1")
	if err != nil || open.ID != "new" {
		t.Fatalf("expected newest open session, got %+v err=%v", open, err)
	}

	newer.IsCompleted = true
	if err := store.Save(ctx, &newer); err != nil {
		t.Fatalf("save completed: %v", err)
	}
	open, err = store.FindOpenByStudent(ctx, "stu-1")
	if err != nil || open.ID != "old" {
		t.Fatalf("expected older open session, got %+v err=%v", open, err)
	}

	mr.Del("wheel:session:old")
	if _, err := store.FindOpenByStudent(ctx, "stu-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAttemptLogKeepsOrder(t *testing.T) {
	_, client := startMiniredis(t)
	log := NewAttemptLog(client, time.Hour)
	ctx := context.Background()

	for _, qid := range []string{"q2", "q1"} {
		if err := log.Append(ctx, domain.Attempt{ID: "a-" + qid, SessionID: "s1", QuestionID: qid, IsCorrect: true, PointsEarned: 10}); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	attempts, err := log.ListBySession(ctx, "s1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(attempts) != 2 || attempts[0].QuestionID != "q2" || attempts[1].QuestionID != "q1" {
		t.Fatalf("unexpected attempts %+v", attempts)
	}
	if empty, _ := log.ListBySession(ctx, "other"); len(empty) != 0 {
		t.Fatalf("expected no attempts, got %d", len(empty))
	}
}

func TestLeaderboardRanks(t *testing.T) {
	_, client := startMiniredis(t)
	lb := NewLeaderboard(client)
	ctx := context.Background()

	scores := map[string]int{"alice": 30, "bob": 50, "carol": 40}
	for id, score := range scores {
		if err := lb.RecordScore(ctx, domain.Session{StudentID: id, Grade: 3, Subject: "math", TotalScore: score}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	// a worse game must not lower bob's best score
	_ = lb.RecordScore(ctx, domain.Session{StudentID: "bob", Grade: 3, Subject: "math", TotalScore: 5})

	want := map[string]int{"bob": 1, "carol": 2, "alice": 3, "dave": 0}
	for id, rank := range want {
		got, err := lb.RankOf(ctx, id, 3, "math")
		if err != nil {
			t.Fatalf("rank: %v", err)
		}
		if got != rank {
			t.Errorf("RankOf(%s) = %d, want %d", id, got, rank)
		}
	}
}

func startMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, newClient(mr)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
