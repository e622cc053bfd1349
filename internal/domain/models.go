package domain

import "time"

// SegmentType identifies how a wheel segment affects scoring.
type SegmentType string

const (
	SegmentPoints       SegmentType = "points"
	SegmentBonus        SegmentType = "bonus"
	SegmentDoublePoints SegmentType = "double_points"
	SegmentLoseTurn     SegmentType = "lose_turn"
)

// HintPenaltyPercent is the share of points lost when an answer is submitted with a hint.
const HintPenaltyPercent = 50

// Segment is one slice of the reward wheel. Probability is a relative weight;
// weights across the wheel need not sum to 1.
type Segment struct {
	ID          string      `json:"id" yaml:"id"`
	Type        SegmentType `json:"type" yaml:"type"`
	Value       int         `json:"value" yaml:"value"`
	DisplayText string      `json:"displayText" yaml:"text"`
	Color       string      `json:"color" yaml:"color"`
	Probability float64     `json:"probability" yaml:"probability"`
	Active      bool        `json:"active" yaml:"active"`
}

// Spin is the outcome of a wheel spin waiting to be consumed by the next answer.
type Spin struct {
	SegmentID   string      `json:"segmentId"`
	Type        SegmentType `json:"type"`
	Value       int         `json:"value"`
	DisplayText string      `json:"displayText"`
}

// SpinOf snapshots a segment as a pending spin.
func SpinOf(seg Segment) *Spin {
	return &Spin{
		SegmentID:   seg.ID,
		Type:        seg.Type,
		Value:       seg.Value,
		DisplayText: seg.DisplayText,
	}
}

// Question is a graded question record owned by the question bank.
type Question struct {
	ID            string   `json:"id" yaml:"id"`
	Grade         int      `json:"grade" yaml:"grade"`
	Subject       string   `json:"subject" yaml:"subject"`
	TestType      string   `json:"testType" yaml:"testType"`
	Difficulty    string   `json:"difficulty" yaml:"difficulty"`
	Prompt        string   `json:"prompt" yaml:"prompt"`
	Options       []string `json:"options,omitempty" yaml:"options"`
	CorrectAnswer string   `json:"correctAnswer" yaml:"correctAnswer"`
	PointsValue   int      `json:"pointsValue" yaml:"points"`
	Hint          string   `json:"hint,omitempty" yaml:"hint"`
	Explanation   string   `json:"explanation,omitempty" yaml:"explanation"`
}

// QuestionView is the student-facing form of a question.
type QuestionView struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options,omitempty"`
	Difficulty  string   `json:"difficulty"`
	PointsValue int      `json:"pointsValue"`
	HasHint     bool     `json:"hasHint"`
}

// Public withholds the answer, hint and explanation.
func (q Question) Public() QuestionView {
	return QuestionView{
		ID:          q.ID,
		Prompt:      q.Prompt,
		Options:     q.Options,
		Difficulty:  q.Difficulty,
		PointsValue: q.PointsValue,
		HasHint:     q.Hint != "",
	}
}

// QuestionFilter selects questions from the bank. An empty Difficulty matches any.
type QuestionFilter struct {
	Grade      int
	Subject    string
	TestType   string
	Difficulty string
}

// Matches reports whether q satisfies the filter.
func (f QuestionFilter) Matches(q Question) bool {
	if q.Grade != f.Grade || q.Subject != f.Subject || q.TestType != f.TestType {
		return false
	}
	return f.Difficulty == "" || q.Difficulty == f.Difficulty
}

// SessionState is the engine-owned progress of a session: the question order drawn
// at start, the cursor into it and the spin waiting for the next answer.
type SessionState struct {
	QuestionOrder []string `json:"questionOrder"`
	Cursor        int      `json:"cursor"`
	PendingSpin   *Spin    `json:"pendingSpin,omitempty"`
}

// Clone returns a deep copy so stores never share slices with callers.
func (s SessionState) Clone() SessionState {
	out := SessionState{Cursor: s.Cursor}
	if s.QuestionOrder != nil {
		out.QuestionOrder = append([]string(nil), s.QuestionOrder...)
	}
	if s.PendingSpin != nil {
		spin := *s.PendingSpin
		out.PendingSpin = &spin
	}
	return out
}

// CurrentQuestionID returns the question under the cursor, or "" once exhausted.
func (s SessionState) CurrentQuestionID() string {
	if s.Cursor < 0 || s.Cursor >= len(s.QuestionOrder) {
		return ""
	}
	return s.QuestionOrder[s.Cursor]
}

// Session is one play-through of a pre-drawn question sequence.
type Session struct {
	ID         string `json:"id"`
	StudentID  string `json:"studentId,omitempty"`
	Grade      int    `json:"grade"`
	Subject    string `json:"subject"`
	TestType   string `json:"testType"`
	Difficulty string `json:"difficulty,omitempty"`

	TotalQuestions    int `json:"totalQuestions"`
	QuestionsAnswered int `json:"questionsAnswered"`
	CorrectAnswers    int `json:"correctAnswers"`
	WrongAnswers      int `json:"wrongAnswers"`
	TotalScore        int `json:"totalScore"`
	HintsUsed         int `json:"hintsUsed"`
	TimeSpentSeconds  int `json:"timeSpentSeconds"`

	IsCompleted bool       `json:"isCompleted"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`

	State SessionState `json:"state"`
	// Version is bumped by the store on every successful save; zero means never saved.
	Version int64 `json:"version"`
}

// Clone returns a deep copy of the session.
func (s Session) Clone() Session {
	out := s
	out.State = s.State.Clone()
	if s.EndTime != nil {
		end := *s.EndTime
		out.EndTime = &end
	}
	return out
}

// QuestionsRemaining is the number of drawn questions not yet answered.
func (s Session) QuestionsRemaining() int {
	if rem := s.TotalQuestions - s.State.Cursor; rem > 0 {
		return rem
	}
	return 0
}

// Attempt is the immutable record of one answered question.
type Attempt struct {
	ID               string    `json:"id"`
	SessionID        string    `json:"sessionId"`
	QuestionID       string    `json:"questionId"`
	StudentAnswer    string    `json:"studentAnswer"`
	IsCorrect        bool      `json:"isCorrect"`
	PointsEarned     int       `json:"pointsEarned"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	HintUsed         bool      `json:"hintUsed"`
	SpinResult       string    `json:"spinResult"`
	CreatedAt        time.Time `json:"createdAt"`
}

// StartRequest carries the parameters of a new session.
type StartRequest struct {
	StudentID  string
	Grade      int
	Subject    string
	TestType   string
	Difficulty string
	Count      int
}

// StartResult is a freshly created session with its drawn questions in play order.
type StartResult struct {
	Session   Session    `json:"session"`
	Questions []Question `json:"questions"`
}

// SpinResult is returned to the client after a spin. RotationDegrees only drives the animation.
type SpinResult struct {
	SegmentID       string      `json:"segmentId"`
	Type            SegmentType `json:"type"`
	Value           int         `json:"value"`
	DisplayText     string      `json:"displayText"`
	Color           string      `json:"color"`
	RotationDegrees int         `json:"rotationDegrees"`
}

// AnswerSubmission models one answer from the client.
type AnswerSubmission struct {
	SessionID        string
	QuestionID       string
	Answer           string
	TimeSpentSeconds int
	HintUsed         bool
}

// AnswerResult summarizes the outcome of a submission.
type AnswerResult struct {
	QuestionID         string `json:"questionId"`
	IsCorrect          bool   `json:"isCorrect"`
	PointsEarned       int    `json:"pointsEarned"`
	CorrectAnswer      string `json:"correctAnswer"`
	Explanation        string `json:"explanation,omitempty"`
	TotalScore         int    `json:"totalScore"`
	QuestionsRemaining int    `json:"questionsRemaining"`
	SessionComplete    bool   `json:"sessionComplete"`
	NextQuestionID     string `json:"nextQuestionId,omitempty"`
	SpinApplied        string `json:"spinApplied,omitempty"`
}

// HintResult is returned when a student asks for a hint.
type HintResult struct {
	QuestionID     string `json:"questionId"`
	Hint           string `json:"hint"`
	PenaltyPercent int    `json:"penaltyPercent"`
	HintsUsed      int    `json:"hintsUsed"`
}

// SessionSummary is the end-of-game report.
type SessionSummary struct {
	SessionID         string    `json:"sessionId"`
	StudentID         string    `json:"studentId,omitempty"`
	FinalScore        int       `json:"finalScore"`
	CorrectAnswers    int       `json:"correctAnswers"`
	QuestionsAnswered int       `json:"questionsAnswered"`
	TotalQuestions    int       `json:"totalQuestions"`
	Accuracy          float64   `json:"accuracy"`
	TimeSpentSeconds  int       `json:"timeSpentSeconds"`
	ElapsedSeconds    int       `json:"elapsedSeconds"`
	Rank              int       `json:"rank"`
	Achievements      []string  `json:"achievements"`
	Tips              []string  `json:"tips"`
	CompletedAt       time.Time `json:"completedAt"`
}
