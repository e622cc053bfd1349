package redis

import (
	"context"
	"errors"
	"strconv"

	"github.com/redis/go-redis/v9"
	"wheel-quiz-service/internal/domain"
)

// Leaderboard ranks students by best session score in a sorted set per grade and subject.
type Leaderboard struct {
	client *redis.Client
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

// RecordScore keeps the higher of the stored and the new score (ZADD GT).
func (l *Leaderboard) RecordScore(ctx context.Context, session domain.Session) error {
	if session.StudentID == "" {
		return nil
	}
	return l.client.ZAddArgs(ctx, l.key(session.Grade, session.Subject), redis.ZAddArgs{
		GT: true,
		Members: []redis.Z{{
			Score:  float64(session.TotalScore),
			Member: session.StudentID,
		}},
	}).Err()
}

// RankOf returns the 1-indexed rank, 0 if the student has no score yet.
func (l *Leaderboard) RankOf(ctx context.Context, studentID string, grade int, subject string) (int, error) {
	rank, err := l.client.ZRevRank(ctx, l.key(grade, subject), studentID).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int(rank) + 1, nil
}

func (l *Leaderboard) key(grade int, subject string) string {
	return "wheel:leaderboard:" + strconv.Itoa(grade) + ":" + subject
}
