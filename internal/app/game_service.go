package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"wheel-quiz-service/internal/domain"
)

const fallbackHint = "Read the question again carefully and eliminate the answers you know are wrong."

// GameService runs spinning-wheel question games: start, spin, answer, hint, complete.
// Every mutating call holds a per-session lock and relies on the store's version check
// to detect writers in other processes.
type GameService struct {
	sessions  SessionRepository
	attempts  AttemptLog
	questions QuestionSupply
	segments  SegmentCatalog
	spinner   *Spinner
	ranks     Leaderboard

	locks *sessionLocks
	now   func() time.Time
	newID func() string
}

// Option customizes a GameService.
type Option func(*GameService)

// WithLeaderboard enables rank lookups and score recording in session summaries.
func WithLeaderboard(lb Leaderboard) Option {
	return func(s *GameService) { s.ranks = lb }
}

// WithClock is mainly for deterministic timestamps in tests.
func WithClock(now func() time.Time) Option {
	return func(s *GameService) { s.now = now }
}

// WithIDGenerator overrides uuid-based ids.
func WithIDGenerator(newID func() string) Option {
	return func(s *GameService) { s.newID = newID }
}

func NewGameService(sessions SessionRepository, attempts AttemptLog, questions QuestionSupply, segments SegmentCatalog, spinner *Spinner, opts ...Option) *GameService {
	if spinner == nil {
		spinner = NewSpinner(nil)
	}
	s := &GameService{
		sessions:  sessions,
		attempts:  attempts,
		questions: questions,
		segments:  segments,
		spinner:   spinner,
		locks:     newSessionLocks(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession draws the question sequence and persists a new session.
func (s *GameService) StartSession(ctx context.Context, req domain.StartRequest) (domain.StartResult, error) {
	if req.Grade <= 0 || req.Subject == "" || req.Count <= 0 {
		return domain.StartResult{}, domain.ErrInvalidStart
	}

	filter := domain.QuestionFilter{
		Grade:      req.Grade,
		Subject:    req.Subject,
		TestType:   req.TestType,
		Difficulty: req.Difficulty,
	}
	drawn, err := s.questions.DrawRandom(ctx, filter, req.Count)
	if err != nil {
		return domain.StartResult{}, err
	}
	if len(drawn) == 0 {
		return domain.StartResult{}, domain.ErrNoQuestionsAvailable
	}
	if len(drawn) > req.Count {
		drawn = drawn[:req.Count]
	}

	order := make([]string, len(drawn))
	for i, q := range drawn {
		order[i] = q.ID
	}

	session := domain.Session{
		ID:             s.newID(),
		StudentID:      req.StudentID,
		Grade:          req.Grade,
		Subject:        req.Subject,
		TestType:       req.TestType,
		Difficulty:     req.Difficulty,
		TotalQuestions: len(drawn),
		StartTime:      s.now().UTC(),
		State:          domain.SessionState{QuestionOrder: order},
	}
	if err := s.sessions.Save(ctx, &session); err != nil {
		return domain.StartResult{}, fmt.Errorf("save session: %w", err)
	}
	return domain.StartResult{Session: session, Questions: drawn}, nil
}

// SpinWheel selects a segment and stores it as the session's pending spin,
// replacing any spin not yet consumed by an answer.
func (s *GameService) SpinWheel(ctx context.Context, sessionID string) (domain.SpinResult, error) {
	if sessionID == "" {
		return domain.SpinResult{}, domain.ErrMissingSessionID
	}
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.openSession(ctx, sessionID)
	if err != nil {
		return domain.SpinResult{}, err
	}

	segments, err := s.segments.ActiveSegments(ctx)
	if err != nil {
		return domain.SpinResult{}, err
	}
	seg, err := s.spinner.Spin(segments)
	if err != nil {
		return domain.SpinResult{}, err
	}

	session.State.PendingSpin = domain.SpinOf(seg)
	if err := s.sessions.Save(ctx, &session); err != nil {
		return domain.SpinResult{}, fmt.Errorf("save session: %w", err)
	}

	return domain.SpinResult{
		SegmentID:       seg.ID,
		Type:            seg.Type,
		Value:           seg.Value,
		DisplayText:     seg.DisplayText,
		Color:           seg.Color,
		RotationDegrees: s.spinner.Rotation(),
	}, nil
}

// SubmitAnswer grades an answer, applies the pending spin and hint penalty,
// advances the session and appends an attempt record.
func (s *GameService) SubmitAnswer(ctx context.Context, sub domain.AnswerSubmission) (domain.AnswerResult, error) {
	if sub.SessionID == "" {
		return domain.AnswerResult{}, domain.ErrMissingSessionID
	}
	if sub.QuestionID == "" {
		return domain.AnswerResult{}, domain.ErrMissingQuestionID
	}
	if sub.TimeSpentSeconds < 0 {
		return domain.AnswerResult{}, domain.ErrInvalidTimeSpent
	}
	unlock := s.locks.lock(sub.SessionID)
	defer unlock()

	session, err := s.openSession(ctx, sub.SessionID)
	if err != nil {
		return domain.AnswerResult{}, err
	}
	question, err := s.questions.GetByID(ctx, sub.QuestionID)
	if err != nil {
		return domain.AnswerResult{}, err
	}

	before := session.Clone()
	pending := session.State.PendingSpin
	correct, points := scoreAnswer(question, sub.Answer, pending, sub.HintUsed)
	spinText := ""
	if pending != nil {
		spinText = pending.DisplayText
	}

	session.QuestionsAnswered++
	if correct {
		session.CorrectAnswers++
	} else {
		session.WrongAnswers++
	}
	session.TotalScore += points
	session.TimeSpentSeconds += sub.TimeSpentSeconds
	if session.State.Cursor < session.TotalQuestions {
		session.State.Cursor++
	}
	session.State.PendingSpin = nil

	now := s.now().UTC()
	if session.State.Cursor >= session.TotalQuestions {
		session.IsCompleted = true
		session.EndTime = &now
	}

	if err := s.sessions.Save(ctx, &session); err != nil {
		return domain.AnswerResult{}, fmt.Errorf("save session: %w", err)
	}

	attempt := domain.Attempt{
		ID:               s.newID(),
		SessionID:        session.ID,
		QuestionID:       question.ID,
		StudentAnswer:    sub.Answer,
		IsCorrect:        correct,
		PointsEarned:     points,
		TimeSpentSeconds: sub.TimeSpentSeconds,
		HintUsed:         sub.HintUsed,
		SpinResult:       spinText,
		CreatedAt:        now,
	}
	if err := s.attempts.Append(ctx, attempt); err != nil {
		// no attempt row, so the answer must not count either
		before.Version = session.Version
		if rbErr := s.sessions.Save(ctx, &before); rbErr != nil {
			return domain.AnswerResult{}, fmt.Errorf("append attempt: %w (restore session: %v)", err, rbErr)
		}
		return domain.AnswerResult{}, fmt.Errorf("append attempt: %w", err)
	}

	if session.IsCompleted {
		// A failure here is not returned: the answer is already committed and
		// CompleteSession records the same best score again.
		_ = s.recordScore(ctx, session)
	}

	return domain.AnswerResult{
		QuestionID:         question.ID,
		IsCorrect:          correct,
		PointsEarned:       points,
		CorrectAnswer:      question.CorrectAnswer,
		Explanation:        question.Explanation,
		TotalScore:         session.TotalScore,
		QuestionsRemaining: session.QuestionsRemaining(),
		SessionComplete:    session.IsCompleted,
		NextQuestionID:     session.State.CurrentQuestionID(),
		SpinApplied:        spinText,
	}, nil
}

// GetHint returns the question's hint and counts it against the session.
// The scoring penalty only applies if the answer is later submitted with HintUsed set.
func (s *GameService) GetHint(ctx context.Context, sessionID, questionID string) (domain.HintResult, error) {
	if sessionID == "" {
		return domain.HintResult{}, domain.ErrMissingSessionID
	}
	if questionID == "" {
		return domain.HintResult{}, domain.ErrMissingQuestionID
	}
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.openSession(ctx, sessionID)
	if err != nil {
		return domain.HintResult{}, err
	}
	question, err := s.questions.GetByID(ctx, questionID)
	if err != nil {
		return domain.HintResult{}, err
	}

	session.HintsUsed++
	if err := s.sessions.Save(ctx, &session); err != nil {
		return domain.HintResult{}, fmt.Errorf("save session: %w", err)
	}

	hint := question.Hint
	if hint == "" {
		hint = fallbackHint
	}
	return domain.HintResult{
		QuestionID:     question.ID,
		Hint:           hint,
		PenaltyPercent: domain.HintPenaltyPercent,
		HintsUsed:      session.HintsUsed,
	}, nil
}

// CompleteSession finishes a session (if still open) and returns its summary.
// Calling it again returns the same summary without touching EndTime.
func (s *GameService) CompleteSession(ctx context.Context, sessionID string) (domain.SessionSummary, error) {
	if sessionID == "" {
		return domain.SessionSummary{}, domain.ErrMissingSessionID
	}
	unlock := s.locks.lock(sessionID)
	defer unlock()

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.SessionSummary{}, err
	}
	if !session.IsCompleted {
		now := s.now().UTC()
		session.IsCompleted = true
		session.EndTime = &now
		if err := s.sessions.Save(ctx, &session); err != nil {
			return domain.SessionSummary{}, fmt.Errorf("save session: %w", err)
		}
	}

	rank := 0
	if s.ranks != nil && session.StudentID != "" {
		// best-score upsert, safe to repeat on every summary request
		if err := s.recordScore(ctx, session); err != nil {
			return domain.SessionSummary{}, fmt.Errorf("record score: %w", err)
		}
		rank, err = s.ranks.RankOf(ctx, session.StudentID, session.Grade, session.Subject)
		if err != nil {
			return domain.SessionSummary{}, fmt.Errorf("rank of: %w", err)
		}
	}

	end := session.StartTime
	if session.EndTime != nil {
		end = *session.EndTime
	}
	return domain.SessionSummary{
		SessionID:         session.ID,
		StudentID:         session.StudentID,
		FinalScore:        session.TotalScore,
		CorrectAnswers:    session.CorrectAnswers,
		QuestionsAnswered: session.QuestionsAnswered,
		TotalQuestions:    session.TotalQuestions,
		Accuracy:          accuracy(session.CorrectAnswers, session.TotalQuestions),
		TimeSpentSeconds:  session.TimeSpentSeconds,
		ElapsedSeconds:    int(end.Sub(session.StartTime) / time.Second),
		Rank:              rank,
		Achievements:      achievementsFor(session),
		Tips:              tipsFor(session),
		CompletedAt:       end,
	}, nil
}

// GetSession loads a session by id.
func (s *GameService) GetSession(ctx context.Context, sessionID string) (domain.Session, error) {
	if sessionID == "" {
		return domain.Session{}, domain.ErrMissingSessionID
	}
	return s.sessions.Get(ctx, sessionID)
}

// ActiveSession returns the student's current unfinished session, if any.
// Whether a student may hold several open sessions is left to the caller.
func (s *GameService) ActiveSession(ctx context.Context, studentID string) (domain.Session, error) {
	if studentID == "" {
		return domain.Session{}, fmt.Errorf("%w: student id is required", domain.ErrValidation)
	}
	return s.sessions.FindOpenByStudent(ctx, studentID)
}

// Attempts lists the answers recorded for a session in submission order.
func (s *GameService) Attempts(ctx context.Context, sessionID string) ([]domain.Attempt, error) {
	if sessionID == "" {
		return nil, domain.ErrMissingSessionID
	}
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.attempts.ListBySession(ctx, sessionID)
}

func (s *GameService) recordScore(ctx context.Context, session domain.Session) error {
	if s.ranks == nil || session.StudentID == "" {
		return nil
	}
	return s.ranks.RecordScore(ctx, session)
}

func (s *GameService) openSession(ctx context.Context, sessionID string) (domain.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.Session{}, err
	}
	if session.IsCompleted {
		return domain.Session{}, domain.ErrSessionCompleted
	}
	return session, nil
}
