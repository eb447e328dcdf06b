package domain

import (
	"html"
	"math/rand"
)

// Decode resolves HTML entities in API text.
func Decode(s string) string {
	return html.UnescapeString(s)
}

// SameAnswer reports whether displayed text is the decoded form of the raw API answer.
// Displayed text is never decoded again.
func SameAnswer(displayed, raw string) bool {
	return displayed == Decode(raw)
}

// BuildChoices decodes every answer of q and returns them in random order.
// Exactly one choice is flagged correct. A nil rnd uses the global source.
func BuildChoices(q Question, rnd *rand.Rand) []AnswerChoice {
	choices := make([]AnswerChoice, 0, len(q.IncorrectAnswers)+1)
	for _, a := range q.IncorrectAnswers {
		choices = append(choices, AnswerChoice{Text: Decode(a)})
	}
	choices = append(choices, AnswerChoice{Text: Decode(q.CorrectAnswer), Correct: true})

	swap := func(i, j int) { choices[i], choices[j] = choices[j], choices[i] }
	if rnd != nil {
		rnd.Shuffle(len(choices), swap)
	} else {
		rand.Shuffle(len(choices), swap)
	}
	return choices
}

// CorrectIndex returns the position of the correct choice, or -1.
func CorrectIndex(choices []AnswerChoice) int {
	for i, c := range choices {
		if c.Correct {
			return i
		}
	}
	return -1
}
