// Package terminal renders the quiz on a line-oriented terminal and parses typed commands.
package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"trivia-client/internal/domain"
	"trivia-client/internal/presenter"
)

// Mode tells the input loop how to read the next line.
type Mode int

const (
	ModeSetup Mode = iota
	ModeLoading
	ModeQuestion
	ModeFeedback
	ModeResults
)

// Presenter writes the quiz views to out. Mode and NumChoices may be read from the input goroutine.
type Presenter struct {
	mu  sync.Mutex
	out io.Writer

	mode       Mode
	choices    []domain.AnswerChoice
	categories []domain.Category
	defaults   domain.SetupRequest
}

func New(out io.Writer, defaults domain.SetupRequest) *Presenter {
	return &Presenter{out: out, defaults: defaults}
}

func (p *Presenter) Mode() Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode
}

func (p *Presenter) NumChoices() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.choices)
}

func (p *Presenter) ShowSetup() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = ModeSetup
	p.choices = nil
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, "=== Trivia ===")
	fmt.Fprintln(p.out, "Loading categories...")
}

func (p *Presenter) RenderCategories(categories []domain.Category) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.categories = categories
	if len(categories) == 0 {
		fmt.Fprintln(p.out, "No categories available, any category will be used.")
	} else {
		fmt.Fprintln(p.out, "Categories:")
		for _, c := range categories {
			fmt.Fprintf(p.out, "  %3d  %s\n", c.ID, c.Name)
		}
	}
	fmt.Fprintf(p.out, "Enter <amount> [category] [easy|medium|hard], or press Enter for %s. q quits.\n", describeSetup(p.defaults))
}

func (p *Presenter) ShowQuiz() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = ModeLoading
	fmt.Fprintln(p.out, "Loading questions...")
}

func (p *Presenter) RenderProgress(current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, presenter.Progress(current, total))
}

func (p *Presenter) RenderQuestion(text string, choices []domain.AnswerChoice) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = ModeQuestion
	p.choices = choices
	fmt.Fprintln(p.out, text)
	for i, c := range choices {
		fmt.Fprintf(p.out, "  %s) %s\n", presenter.ChoiceLabel(i), c.Text)
	}
}

func (p *Presenter) RenderScore(score, highScore int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "%s | %s\n", presenter.Score(score), presenter.HighScore(highScore))
}

// RenderFeedback prints the feedback line and marks the selected and the correct choice.
func (p *Presenter) RenderFeedback(result domain.AnswerResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = ModeFeedback
	fmt.Fprintln(p.out, presenter.Feedback(result))
	if result.Correct {
		return
	}
	for i, c := range p.choices {
		var mark string
		switch i {
		case result.CorrectChoice:
			mark = "  <- correct"
		case result.Choice:
			mark = "  <- your answer"
		default:
			continue
		}
		fmt.Fprintf(p.out, "  %s) %s%s\n", presenter.ChoiceLabel(i), c.Text, mark)
	}
}

func (p *Presenter) RenderResults(finalScore, highScore int, newRecord bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.mode = ModeResults
	p.choices = nil
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, presenter.Results(finalScore, newRecord))
	fmt.Fprintln(p.out, presenter.HighScore(highScore))
	fmt.Fprintln(p.out, "Press Enter (or r) to play again, q to quit.")
}

func (p *Presenter) Alert(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.out, "!! %v\n", err)
}

func describeSetup(req domain.SetupRequest) string {
	parts := []string{fmt.Sprintf("%d questions", req.Amount)}
	if req.Category > 0 {
		parts = append(parts, fmt.Sprintf("category %d", req.Category))
	}
	if req.Difficulty != domain.DifficultyAny {
		parts = append(parts, string(req.Difficulty))
	}
	return strings.Join(parts, ", ")
}
