package terminal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"trivia-client/internal/app"
	"trivia-client/internal/domain"
)

var (
	ErrEmpty   = errors.New("nothing to do")
	ErrWaiting = errors.New("please wait")
)

// ParseCommand turns one input line into a controller event for the given mode.
// "q" quits and "r" restarts in every mode.
func ParseCommand(mode Mode, line string, defaults domain.SetupRequest, numChoices int) (app.Event, bool, error) {
	input := strings.TrimSpace(line)
	switch strings.ToLower(input) {
	case "q", "quit", "exit":
		return app.Event{}, true, nil
	case "r", "restart":
		return app.RestartEvent(), false, nil
	}

	switch mode {
	case ModeSetup:
		req, err := ParseSetup(input, defaults)
		if err != nil {
			return app.Event{}, false, err
		}
		return app.StartEvent(req), false, nil
	case ModeQuestion, ModeFeedback:
		if input == "" {
			return app.Event{}, false, ErrEmpty
		}
		choice, err := parseChoice(input, numChoices)
		if err != nil {
			return app.Event{}, false, err
		}
		return app.AnswerEvent(choice), false, nil
	case ModeResults:
		if input == "" {
			return app.RestartEvent(), false, nil
		}
		return app.Event{}, false, fmt.Errorf("unknown command %q", input)
	}
	return app.Event{}, false, ErrWaiting
}

// ParseSetup reads "<amount> [category] [difficulty]". An empty line yields defaults.
func ParseSetup(input string, defaults domain.SetupRequest) (domain.SetupRequest, error) {
	req := defaults
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return req, nil
	}

	amount, err := strconv.Atoi(fields[0])
	if err != nil {
		return req, fmt.Errorf("amount must be a number, got %q", fields[0])
	}
	req.Amount = amount

	for _, f := range fields[1:] {
		if id, err := strconv.Atoi(f); err == nil {
			req.Category = id
			continue
		}
		switch d := domain.Difficulty(strings.ToLower(f)); d {
		case "any":
			req.Difficulty = domain.DifficultyAny
		case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
			req.Difficulty = d
		default:
			return req, fmt.Errorf("unknown difficulty %q", f)
		}
	}
	return req, nil
}

// parseChoice accepts a letter (A, b...) or a one-based number.
func parseChoice(input string, numChoices int) (int, error) {
	var idx int
	if n, err := strconv.Atoi(input); err == nil {
		idx = n - 1
	} else if len(input) == 1 {
		idx = int(strings.ToUpper(input)[0] - 'A')
	} else {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidChoice, input)
	}
	if idx < 0 || (numChoices > 0 && idx >= numChoices) {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidChoice, input)
	}
	return idx, nil
}
