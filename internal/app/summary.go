package app

import "wheel-quiz-service/internal/domain"

const fastAnswerSeconds = 10

func accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// achievementsFor derives badges from the final counters of a session.
func achievementsFor(s domain.Session) []string {
	out := []string{}
	if s.QuestionsAnswered == 0 {
		return out
	}
	if s.CorrectAnswers == s.TotalQuestions {
		out = append(out, "Perfect Score")
	}
	if s.HintsUsed == 0 {
		out = append(out, "No Hints Needed")
	}
	if s.TimeSpentSeconds/s.QuestionsAnswered < fastAnswerSeconds {
		out = append(out, "Quick Thinker")
	}
	if s.QuestionsAnswered == s.TotalQuestions && s.TotalQuestions >= 10 {
		out = append(out, "Marathon Finisher")
	}
	return out
}

func tipsFor(s domain.Session) []string {
	acc := accuracy(s.CorrectAnswers, s.TotalQuestions)
	out := []string{}
	switch {
	case s.QuestionsAnswered < s.TotalQuestions:
		out = append(out, "Finish every question to get the most out of a game.")
	case acc < 50:
		out = append(out, "Review the explanations of the questions you missed before playing again.")
	case acc < 80:
		out = append(out, "Nice work! Try a harder difficulty once you score above 80%.")
	default:
		out = append(out, "Excellent! Challenge yourself with a new subject.")
	}
	if s.HintsUsed > 0 {
		out = append(out, "Try answering without hints to keep your full points.")
	}
	return out
}
