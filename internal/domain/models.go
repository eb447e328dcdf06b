package domain

import "time"

// Difficulty filters questions requested from the trivia API. The zero value means any difficulty.
type Difficulty string

const (
	DifficultyAny    Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Category is a selectable question category.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Question models a multiple-choice question as returned by the API.
// Text and answers are HTML-entity-encoded.
type Question struct {
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Text             string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

// AnswerChoice is one rendered, selectable answer for the current question.
type AnswerChoice struct {
	Text    string `json:"text"`
	Correct bool   `json:"-"`
}

// SetupRequest carries the setup form values used to start a session.
type SetupRequest struct {
	Amount     int        `json:"amount" validate:"min=1,max=50"`
	Category   int        `json:"category" validate:"min=0"`
	Difficulty Difficulty `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
}

// AnswerResult summarizes the outcome of a single answer submission.
type AnswerResult struct {
	Choice        int           `json:"choice"`
	Selected      string        `json:"selected"`
	CorrectAnswer string        `json:"correctAnswer"`
	CorrectChoice int           `json:"correctChoice"`
	Correct       bool          `json:"correct"`
	Awarded       int           `json:"awarded"`
	TotalScore    int           `json:"totalScore"`
	Elapsed       time.Duration `json:"elapsed"`
}
