// Package presenter holds the display strings shared by every quiz front end.
package presenter

import (
	"fmt"

	"trivia-client/internal/domain"
)

// Feedback is the line shown after an answer.
func Feedback(result domain.AnswerResult) string {
	if result.Correct {
		return fmt.Sprintf("Correct! + %d Points", result.Awarded)
	}
	return "Wrong! The correct answer was: " + result.CorrectAnswer
}

// Progress renders a zero-based question index for display.
func Progress(current, total int) string {
	return fmt.Sprintf("Question %d/%d", current+1, total)
}

func Score(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

func HighScore(high int) string {
	return fmt.Sprintf("High Score: %d", high)
}

// Results is the finished message for the results view.
func Results(finalScore int, newRecord bool) string {
	msg := fmt.Sprintf("Quiz finished! Your final score: %d", finalScore)
	if newRecord {
		msg += " (new high score!)"
	}
	return msg
}

// ChoiceLabel returns the letter for a choice index: A, B, C...
func ChoiceLabel(i int) string {
	if i < 0 || i >= 26 {
		return fmt.Sprintf("%d", i+1)
	}
	return string(rune('A' + i))
}
