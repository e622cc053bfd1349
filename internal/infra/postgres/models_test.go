package postgres

import (
	"reflect"
	"testing"
	"time"

	"wheel-quiz-service/internal/domain"
)

func TestSessionRowRoundTrip(t *testing.T) {
	end := time.Date(2025, 3, 1, 9, 5, 0, 0, time.UTC)
	tests := []struct {
		name    string
		session domain.Session
	}{
		{
			name: "anonymous open session with pending spin",
			session: domain.Session{
				ID:             "s1",
				Grade:          3,
				Subject:        "math",
				TestType:       "practice",
				TotalQuestions: 3,
				StartTime:      time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
				State: domain.SessionState{
					QuestionOrder: []string{"q2", "q3", "q1"},
					Cursor:        1,
					PendingSpin:   &domain.Spin{SegmentID: "b", Type: domain.SegmentBonus, Value: 3, DisplayText: "Bonus"},
				},
				Version: 4,
			},
		},
		{
			name: "completed student session",
			session: domain.Session{
				ID:                "s2",
				StudentID:         "stu-1",
				Grade:             5,
				Subject:           "science",
				Difficulty:        "hard",
				TotalQuestions:    1,
				QuestionsAnswered: 1,
				CorrectAnswers:    1,
				TotalScore:        20,
				HintsUsed:         2,
				TimeSpentSeconds:  30,
				IsCompleted:       true,
				StartTime:         time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
				EndTime:           &end,
				State:             domain.SessionState{QuestionOrder: []string{"q9"}, Cursor: 1},
				Version:           3,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toSessionRow(tt.session).toDomain()
			if !reflect.DeepEqual(got, tt.session) {
				t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, tt.session)
			}
		})
	}
}

func TestSessionRowStudentID(t *testing.T) {
	if row := toSessionRow(domain.Session{ID: "s"}); row.StudentID != nil {
		t.Fatalf("anonymous sessions must store NULL student id")
	}
	if row := toSessionRow(domain.Session{ID: "s", StudentID: "stu"}); row.StudentID == nil || *row.StudentID != "stu" {
		t.Fatalf("expected student id to be stored")
	}
}
