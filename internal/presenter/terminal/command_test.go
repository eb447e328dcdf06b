package terminal

import (
	"errors"
	"testing"

	"trivia-client/internal/app"
	"trivia-client/internal/domain"
)

var defaults = domain.SetupRequest{Amount: 10}

func TestParseCommandQuitAndRestart(t *testing.T) {
	for _, mode := range []Mode{ModeSetup, ModeLoading, ModeQuestion, ModeFeedback, ModeResults} {
		if _, quit, err := ParseCommand(mode, " q ", defaults, 4); !quit || err != nil {
			t.Fatalf("mode %v: expected quit, got quit=%v err=%v", mode, quit, err)
		}
		ev, quit, err := ParseCommand(mode, "R", defaults, 4)
		if quit || err != nil || ev.Kind != app.EventRestart {
			t.Fatalf("mode %v: expected restart, got %+v quit=%v err=%v", mode, ev, quit, err)
		}
	}
}

func TestParseCommandSetup(t *testing.T) {
	tests := []struct {
		line string
		want domain.SetupRequest
	}{
		{line: "", want: domain.SetupRequest{Amount: 10}},
		{line: "5", want: domain.SetupRequest{Amount: 5}},
		{line: "5 18", want: domain.SetupRequest{Amount: 5, Category: 18}},
		{line: "3 hard", want: domain.SetupRequest{Amount: 3, Difficulty: domain.DifficultyHard}},
		{line: "3 9 Easy", want: domain.SetupRequest{Amount: 3, Category: 9, Difficulty: domain.DifficultyEasy}},
		{line: "3 any", want: domain.SetupRequest{Amount: 3}},
	}
	for _, tt := range tests {
		ev, _, err := ParseCommand(ModeSetup, tt.line, defaults, 0)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.line, err)
		}
		if ev.Kind != app.EventStart || ev.Setup != tt.want {
			t.Fatalf("%q: expected %+v, got %+v", tt.line, tt.want, ev.Setup)
		}
	}

	for _, bad := range []string{"ten", "5 impossible"} {
		if _, _, err := ParseCommand(ModeSetup, bad, defaults, 0); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestParseCommandAnswers(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{line: "a", want: 0},
		{line: "B", want: 1},
		{line: "4", want: 3},
	}
	for _, tt := range tests {
		ev, _, err := ParseCommand(ModeQuestion, tt.line, defaults, 4)
		if err != nil || ev.Kind != app.EventAnswer || ev.Choice != tt.want {
			t.Fatalf("%q: expected choice %d, got %+v err=%v", tt.line, tt.want, ev, err)
		}
	}

	for _, bad := range []string{"e", "0", "5", "ab"} {
		if _, _, err := ParseCommand(ModeQuestion, bad, defaults, 4); !errors.Is(err, domain.ErrInvalidChoice) {
			t.Fatalf("%q: expected ErrInvalidChoice, got %v", bad, err)
		}
	}
	if _, _, err := ParseCommand(ModeQuestion, "", defaults, 4); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestParseCommandResultsAndLoading(t *testing.T) {
	ev, _, err := ParseCommand(ModeResults, "", defaults, 0)
	if err != nil || ev.Kind != app.EventRestart {
		t.Fatalf("expected Enter to restart from results, got %+v err=%v", ev, err)
	}
	if _, _, err := ParseCommand(ModeLoading, "a", defaults, 0); !errors.Is(err, ErrWaiting) {
		t.Fatalf("expected ErrWaiting while loading, got %v", err)
	}
}
