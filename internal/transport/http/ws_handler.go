package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"wheel-quiz-service/internal/app"
	"wheel-quiz-service/internal/domain"
)

type WSHandler struct {
	service  *app.GameService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.GameService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	StudentID  string `json:"studentId"`
	Grade      int    `json:"grade"`
	Subject    string `json:"subject"`
	TestType   string `json:"testType"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count"`
}

type resumePayload struct {
	SessionID string `json:"sessionId"`
	StudentID string `json:"studentId"`
}

// sessionPayload is embedded by the messages that only need a session id.
// An empty id falls back to the session started or resumed on this connection.
type sessionPayload struct {
	SessionID string `json:"sessionId"`
}

type answerPayload struct {
	SessionID        string `json:"sessionId"`
	QuestionID       string `json:"questionId"`
	Answer           string `json:"answer"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	HintUsed         bool   `json:"hintUsed"`
}

type hintPayload struct {
	SessionID  string `json:"sessionId"`
	QuestionID string `json:"questionId"`
}

type sessionView struct {
	SessionID          string                `json:"sessionId"`
	StudentID          string                `json:"studentId,omitempty"`
	TotalQuestions     int                   `json:"totalQuestions"`
	QuestionsAnswered  int                   `json:"questionsAnswered"`
	QuestionsRemaining int                   `json:"questionsRemaining"`
	TotalScore         int                   `json:"totalScore"`
	HintsUsed          int                   `json:"hintsUsed"`
	IsCompleted        bool                  `json:"isCompleted"`
	CurrentQuestionID  string                `json:"currentQuestionId,omitempty"`
	PendingSpin        *domain.Spin          `json:"pendingSpin,omitempty"`
	Questions          []domain.QuestionView `json:"questions,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// ServeWS upgrades HTTP requests to websockets and runs the game protocol on them.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	// single writer; gorilla connections do not support concurrent writes
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	ctx := r.Context()
	current := r.URL.Query().Get("sessionId")
	reply := func(typ string, payload any) {
		send <- outboundMessage[any]{Type: typ, Payload: payload}
	}
	fail := func(err error) {
		kind := errorKind(err)
		msg := err.Error()
		if kind == "internal" {
			log.Printf("ws request failed: %v", err)
			msg = "internal error"
		}
		reply("error", errorPayload{Message: msg, Kind: kind})
	}
	sessionOf := func(id string) string {
		if id == "" {
			return current
		}
		return id
	}

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		switch inbound.Type {
		case "start":
			var payload startPayload
			if !decode(inbound.Payload, &payload) {
				fail(invalidPayload("start"))
				continue
			}
			started, err := h.service.StartSession(ctx, domain.StartRequest{
				StudentID:  payload.StudentID,
				Grade:      payload.Grade,
				Subject:    payload.Subject,
				TestType:   payload.TestType,
				Difficulty: payload.Difficulty,
				Count:      payload.Count,
			})
			if err != nil {
				fail(err)
				continue
			}
			current = started.Session.ID
			view := viewOf(started.Session)
			view.Questions = make([]domain.QuestionView, len(started.Questions))
			for i, q := range started.Questions {
				view.Questions[i] = q.Public()
			}
			reply("started", view)
		case "resume":
			var payload resumePayload
			if !decode(inbound.Payload, &payload) {
				fail(invalidPayload("resume"))
				continue
			}
			var (
				session domain.Session
				err     error
			)
			if payload.SessionID == "" && payload.StudentID != "" {
				session, err = h.service.ActiveSession(ctx, payload.StudentID)
			} else {
				session, err = h.service.GetSession(ctx, sessionOf(payload.SessionID))
			}
			if err != nil {
				fail(err)
				continue
			}
			current = session.ID
			reply("resumed", viewOf(session))
		case "spin":
			var payload sessionPayload
			if !decode(inbound.Payload, &payload) {
				fail(invalidPayload("spin"))
				continue
			}
			result, err := h.service.SpinWheel(ctx, sessionOf(payload.SessionID))
			if err != nil {
				fail(err)
				continue
			}
			reply("spinResult", result)
		case "answer":
			var payload answerPayload
			if !decode(inbound.Payload, &payload) {
				fail(invalidPayload("answer"))
				continue
			}
			result, err := h.service.SubmitAnswer(ctx, domain.AnswerSubmission{
				SessionID:        sessionOf(payload.SessionID),
				QuestionID:       payload.QuestionID,
				Answer:           payload.Answer,
				TimeSpentSeconds: payload.TimeSpentSeconds,
				HintUsed:         payload.HintUsed,
			})
			if err != nil {
				fail(err)
				continue
			}
			reply("answerResult", result)
		case "hint":
			var payload hintPayload
			if !decode(inbound.Payload, &payload) {
				fail(invalidPayload("hint"))
				continue
			}
			result, err := h.service.GetHint(ctx, sessionOf(payload.SessionID), payload.QuestionID)
			if err != nil {
				fail(err)
				continue
			}
			reply("hint", result)
		case "complete":
			var payload sessionPayload
			if !decode(inbound.Payload, &payload) {
				fail(invalidPayload("complete"))
				continue
			}
			summary, err := h.service.CompleteSession(ctx, sessionOf(payload.SessionID))
			if err != nil {
				fail(err)
				continue
			}
			reply("summary", summary)
		default:
			fail(fmt.Errorf("%w: unsupported message type %q", domain.ErrValidation, inbound.Type))
		}
	}

	close(send)
	<-writerDone
}

// decode accepts a missing payload as the zero value.
func decode(raw json.RawMessage, v any) bool {
	if len(raw) == 0 || string(raw) == "null" {
		return true
	}
	return json.Unmarshal(raw, v) == nil
}

func invalidPayload(typ string) error {
	return fmt.Errorf("%w: invalid %s payload", domain.ErrValidation, typ)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrVersionConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidOperation):
		return "invalid_operation"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	default:
		return "internal"
	}
}

func viewOf(s domain.Session) sessionView {
	return sessionView{
		SessionID:          s.ID,
		StudentID:          s.StudentID,
		TotalQuestions:     s.TotalQuestions,
		QuestionsAnswered:  s.QuestionsAnswered,
		QuestionsRemaining: s.QuestionsRemaining(),
		TotalScore:         s.TotalScore,
		HintsUsed:          s.HintsUsed,
		IsCompleted:        s.IsCompleted,
		CurrentQuestionID:  s.State.CurrentQuestionID(),
		PendingSpin:        s.State.PendingSpin,
	}
}
