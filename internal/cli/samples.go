package cli

import "wheel-quiz-service/internal/domain"

// defaultSegments is the wheel used when the config file does not define one.
func defaultSegments() []domain.Segment {
	return []domain.Segment{
		{ID: "points-5", Type: domain.SegmentPoints, Value: 5, DisplayText: "+5 Points", Color: "#4CAF50", Probability: 0.30, Active: true},
		{ID: "points-10", Type: domain.SegmentPoints, Value: 10, DisplayText: "+10 Points", Color: "#2196F3", Probability: 0.25, Active: true},
		{ID: "bonus-3", Type: domain.SegmentBonus, Value: 3, DisplayText: "Bonus x3", Color: "#FF9800", Probability: 0.15, Active: true},
		{ID: "double", Type: domain.SegmentDoublePoints, DisplayText: "Double Points", Color: "#9C27B0", Probability: 0.15, Active: true},
		{ID: "lose-turn", Type: domain.SegmentLoseTurn, DisplayText: "Lose a Turn", Color: "#F44336", Probability: 0.15, Active: true},
	}
}

// sampleQuestions seeds the in-memory bank when no Postgres is configured.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{ID: "math-3-1", Grade: 3, Subject: "math", TestType: "practice", Difficulty: "easy", Prompt: "What is 2 + 2?", Options: []string{"3", "4", "5"}, CorrectAnswer: "4", PointsValue: 10, Hint: "Count up two from two.", Explanation: "2 + 2 = 4."},
		{ID: "math-3-2", Grade: 3, Subject: "math", TestType: "practice", Difficulty: "easy", Prompt: "What is 5 x 3?", Options: []string{"8", "15", "53"}, CorrectAnswer: "15", PointsValue: 10, Hint: "Add 5 three times.", Explanation: "5 + 5 + 5 = 15."},
		{ID: "math-3-3", Grade: 3, Subject: "math", TestType: "practice", Difficulty: "medium", Prompt: "What is 36 / 4?", Options: []string{"6", "8", "9"}, CorrectAnswer: "9", PointsValue: 15, Explanation: "4 x 9 = 36."},
		{ID: "math-3-4", Grade: 3, Subject: "math", TestType: "practice", Difficulty: "medium", Prompt: "Which number is even?", Options: []string{"7", "12", "15"}, CorrectAnswer: "12", PointsValue: 15, Hint: "Even numbers end in 0, 2, 4, 6 or 8."},
		{ID: "science-3-1", Grade: 3, Subject: "science", TestType: "practice", Difficulty: "easy", Prompt: "What do plants need to make food?", Options: []string{"Sunlight", "Sand", "Salt"}, CorrectAnswer: "Sunlight", PointsValue: 10, Hint: "It comes from the sky during the day.", Explanation: "Plants use sunlight for photosynthesis."},
		{ID: "science-3-2", Grade: 3, Subject: "science", TestType: "practice", Difficulty: "hard", Prompt: "What state of matter is steam?", Options: []string{"Solid", "Liquid", "Gas"}, CorrectAnswer: "Gas", PointsValue: 20, Explanation: "Steam is water in its gas state."},
	}
}
