package app

import (
	"strings"

	"wheel-quiz-service/internal/domain"
)

// isCorrect compares answers after trimming and lower-casing; nothing fuzzier.
func isCorrect(question domain.Question, answer string) bool {
	return normalizeAnswer(answer) == normalizeAnswer(question.CorrectAnswer)
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// scoreAnswer returns (correct, points) for an answer given the pending spin and hint flag.
// It is a pure function of its inputs.
func scoreAnswer(question domain.Question, answer string, pending *domain.Spin, hintUsed bool) (bool, int) {
	if !isCorrect(question, answer) {
		return false, 0
	}

	points := question.PointsValue
	if pending != nil {
		switch pending.Type {
		case domain.SegmentDoublePoints:
			points *= 2
		case domain.SegmentPoints, domain.SegmentBonus:
			points += pending.Value
		}
	}
	if hintUsed {
		// floor division, applied after the spin adjustment
		points = points * (100 - domain.HintPenaltyPercent) / 100
	}
	return true, points
}
