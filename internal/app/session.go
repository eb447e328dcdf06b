package app

import (
	"time"

	"trivia-client/internal/domain"
)

// Session is one run through a fixed list of questions. It is owned by a single Controller
// and is not safe for concurrent use.
type Session struct {
	questions []domain.Question
	index     int
	score     int
	startedAt time.Time
	choices   []domain.AnswerChoice
	answered  bool
	results   []domain.AnswerResult
}

// NewSession starts a session over questions with index and score at zero.
func NewSession(questions []domain.Question) *Session {
	return &Session{
		questions: questions,
		results:   make([]domain.AnswerResult, 0, len(questions)),
	}
}

func (s *Session) Index() int { return s.index }
func (s *Session) Len() int   { return len(s.questions) }
func (s *Session) Score() int { return s.score }

// Done reports whether every question has been consumed.
func (s *Session) Done() bool {
	return s.index >= len(s.questions)
}

// Current returns the question at the current index.
func (s *Session) Current() (domain.Question, bool) {
	if s.Done() {
		return domain.Question{}, false
	}
	return s.questions[s.index], true
}

// Results returns one entry per answered question, in order.
func (s *Session) Results() []domain.AnswerResult {
	out := make([]domain.AnswerResult, len(s.results))
	copy(out, s.results)
	return out
}

// Present records the choices shown for the current question and starts its timer.
func (s *Session) Present(choices []domain.AnswerChoice, now time.Time) {
	s.choices = choices
	s.startedAt = now
	s.answered = false
}

// Answer scores the choice at index choice against the current question.
// Only the first answer per question counts.
func (s *Session) Answer(choice int, now time.Time) (domain.AnswerResult, error) {
	q, ok := s.Current()
	if !ok || s.choices == nil {
		return domain.AnswerResult{}, domain.ErrNoActiveQuestion
	}
	if s.answered {
		return domain.AnswerResult{}, domain.ErrAnswerClosed
	}
	if choice < 0 || choice >= len(s.choices) {
		return domain.AnswerResult{}, domain.ErrInvalidChoice
	}
	s.answered = true

	selected := s.choices[choice]
	elapsed := now.Sub(s.startedAt)
	awarded := 0
	if selected.Correct {
		awarded = Points(elapsed)
	}
	s.score += awarded

	result := domain.AnswerResult{
		Choice:        choice,
		Selected:      selected.Text,
		CorrectAnswer: domain.Decode(q.CorrectAnswer),
		CorrectChoice: domain.CorrectIndex(s.choices),
		Correct:       selected.Correct,
		Awarded:       awarded,
		TotalScore:    s.score,
		Elapsed:       elapsed,
	}
	s.results = append(s.results, result)
	return result, nil
}

// Advance moves to the next question and reports whether the session is finished.
func (s *Session) Advance() bool {
	if !s.Done() {
		s.index++
	}
	s.choices = nil
	s.answered = false
	return s.Done()
}
