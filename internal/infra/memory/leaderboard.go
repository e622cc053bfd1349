package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"wheel-quiz-service/internal/domain"
)

// Leaderboard keeps each student's best score per grade and subject.
type Leaderboard struct {
	mu     sync.RWMutex
	boards map[string]map[string]int
}

func NewLeaderboard() *Leaderboard {
	return &Leaderboard{boards: make(map[string]map[string]int)}
}

func (l *Leaderboard) RecordScore(_ context.Context, session domain.Session) error {
	if session.StudentID == "" {
		return nil
	}
	key := boardKey(session.Grade, session.Subject)

	l.mu.Lock()
	defer l.mu.Unlock()
	board, ok := l.boards[key]
	if !ok {
		board = make(map[string]int)
		l.boards[key] = board
	}
	if best, ok := board[session.StudentID]; !ok || session.TotalScore > best {
		board[session.StudentID] = session.TotalScore
	}
	return nil
}

// RankOf returns the 1-indexed position of the student, ties broken by student id.
func (l *Leaderboard) RankOf(_ context.Context, studentID string, grade int, subject string) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	board := l.boards[boardKey(grade, subject)]
	if _, ok := board[studentID]; !ok {
		return 0, nil
	}
	ids := make([]string, 0, len(board))
	for id := range board {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if board[ids[i]] != board[ids[j]] {
			return board[ids[i]] > board[ids[j]]
		}
		return ids[i] < ids[j]
	})
	for i, id := range ids {
		if id == studentID {
			return i + 1, nil
		}
	}
	return 0, nil
}

func boardKey(grade int, subject string) string {
	return strconv.Itoa(grade) + ":" + subject
}
