package postgres

import (
	"time"

	"github.com/uptrace/bun"
	"wheel-quiz-service/internal/domain"
)

// sessionRow maps game_sessions. The engine state is kept as a jsonb blob.
type sessionRow struct {
	bun.BaseModel `bun:"table:game_sessions"`

	ID                string     `bun:"id,pk"`
	StudentID         *string    `bun:"student_id"`
	Grade             int        `bun:"grade,notnull"`
	Subject           string     `bun:"subject,notnull"`
	TestType          string     `bun:"test_type,notnull"`
	Difficulty        string     `bun:"difficulty,notnull"`
	TotalQuestions    int        `bun:"total_questions,notnull"`
	QuestionsAnswered int        `bun:"questions_answered,notnull"`
	CorrectAnswers    int        `bun:"correct_answers,notnull"`
	WrongAnswers      int        `bun:"wrong_answers,notnull"`
	TotalScore        int        `bun:"total_score,notnull"`
	HintsUsed         int        `bun:"hints_used,notnull"`
	TimeSpentSeconds  int        `bun:"time_spent_seconds,notnull"`
	IsCompleted       bool       `bun:"is_completed,notnull"`
	StartTime         time.Time  `bun:"start_time,notnull"`
	EndTime           *time.Time `bun:"end_time"`
	State             stateBlob  `bun:"state,type:jsonb,notnull"`
	Version           int64      `bun:"version,notnull"`
}

type stateBlob struct {
	QuestionOrder []string     `json:"questionOrder"`
	Cursor        int          `json:"cursor"`
	PendingSpin   *domain.Spin `json:"pendingSpin,omitempty"`
}

func toSessionRow(s domain.Session) sessionRow {
	var studentID *string
	if s.StudentID != "" {
		id := s.StudentID
		studentID = &id
	}
	state := s.State.Clone()
	return sessionRow{
		ID:                s.ID,
		StudentID:         studentID,
		Grade:             s.Grade,
		Subject:           s.Subject,
		TestType:          s.TestType,
		Difficulty:        s.Difficulty,
		TotalQuestions:    s.TotalQuestions,
		QuestionsAnswered: s.QuestionsAnswered,
		CorrectAnswers:    s.CorrectAnswers,
		WrongAnswers:      s.WrongAnswers,
		TotalScore:        s.TotalScore,
		HintsUsed:         s.HintsUsed,
		TimeSpentSeconds:  s.TimeSpentSeconds,
		IsCompleted:       s.IsCompleted,
		StartTime:         s.StartTime,
		EndTime:           s.EndTime,
		State: stateBlob{
			QuestionOrder: state.QuestionOrder,
			Cursor:        state.Cursor,
			PendingSpin:   state.PendingSpin,
		},
		Version: s.Version,
	}
}

func (r sessionRow) toDomain() domain.Session {
	s := domain.Session{
		ID:                r.ID,
		Grade:             r.Grade,
		Subject:           r.Subject,
		TestType:          r.TestType,
		Difficulty:        r.Difficulty,
		TotalQuestions:    r.TotalQuestions,
		QuestionsAnswered: r.QuestionsAnswered,
		CorrectAnswers:    r.CorrectAnswers,
		WrongAnswers:      r.WrongAnswers,
		TotalScore:        r.TotalScore,
		HintsUsed:         r.HintsUsed,
		TimeSpentSeconds:  r.TimeSpentSeconds,
		IsCompleted:       r.IsCompleted,
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		State: domain.SessionState{
			QuestionOrder: r.State.QuestionOrder,
			Cursor:        r.State.Cursor,
			PendingSpin:   r.State.PendingSpin,
		},
		Version: r.Version,
	}
	if r.StudentID != nil {
		s.StudentID = *r.StudentID
	}
	return s
}

type attemptRow struct {
	bun.BaseModel `bun:"table:game_attempts"`

	ID               string    `bun:"id,pk"`
	SessionID        string    `bun:"session_id,notnull"`
	QuestionID       string    `bun:"question_id,notnull"`
	StudentAnswer    string    `bun:"student_answer,notnull"`
	IsCorrect        bool      `bun:"is_correct,notnull"`
	PointsEarned     int       `bun:"points_earned,notnull"`
	TimeSpentSeconds int       `bun:"time_spent_seconds,notnull"`
	HintUsed         bool      `bun:"hint_used,notnull"`
	SpinResult       string    `bun:"spin_result,notnull"`
	CreatedAt        time.Time `bun:"created_at,notnull"`
}

func toAttemptRow(a domain.Attempt) attemptRow {
	return attemptRow{
		ID:               a.ID,
		SessionID:        a.SessionID,
		QuestionID:       a.QuestionID,
		StudentAnswer:    a.StudentAnswer,
		IsCorrect:        a.IsCorrect,
		PointsEarned:     a.PointsEarned,
		TimeSpentSeconds: a.TimeSpentSeconds,
		HintUsed:         a.HintUsed,
		SpinResult:       a.SpinResult,
		CreatedAt:        a.CreatedAt,
	}
}

func (r attemptRow) toDomain() domain.Attempt {
	return domain.Attempt{
		ID:               r.ID,
		SessionID:        r.SessionID,
		QuestionID:       r.QuestionID,
		StudentAnswer:    r.StudentAnswer,
		IsCorrect:        r.IsCorrect,
		PointsEarned:     r.PointsEarned,
		TimeSpentSeconds: r.TimeSpentSeconds,
		HintUsed:         r.HintUsed,
		SpinResult:       r.SpinResult,
		CreatedAt:        r.CreatedAt,
	}
}

type questionRow struct {
	bun.BaseModel `bun:"table:questions"`

	ID            string   `bun:"id,pk"`
	Grade         int      `bun:"grade,notnull"`
	Subject       string   `bun:"subject,notnull"`
	TestType      string   `bun:"test_type,notnull"`
	Difficulty    string   `bun:"difficulty,notnull"`
	Prompt        string   `bun:"prompt,notnull"`
	Options       []string `bun:"options,type:jsonb,notnull"`
	CorrectAnswer string   `bun:"correct_answer,notnull"`
	PointsValue   int      `bun:"points_value,notnull"`
	Hint          string   `bun:"hint,notnull"`
	Explanation   string   `bun:"explanation,notnull"`
}

type segmentRow struct {
	bun.BaseModel `bun:"table:wheel_segments"`

	ID          string  `bun:"id,pk"`
	Type        string  `bun:"type,notnull"`
	Value       int     `bun:"value,notnull"`
	DisplayText string  `bun:"display_text,notnull"`
	Color       string  `bun:"color,notnull"`
	Probability float64 `bun:"probability,notnull"`
	Active      bool    `bun:"active,notnull"`
	SortOrder   int     `bun:"sort_order,notnull"`
}
