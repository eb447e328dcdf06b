package presenter

import (
	"testing"

	"trivia-client/internal/domain"
)

func TestFeedback(t *testing.T) {
	tests := []struct {
		name   string
		result domain.AnswerResult
		want   string
	}{
		{
			name:   "correct",
			result: domain.AnswerResult{Correct: true, Awarded: 980, Selected: "4", CorrectAnswer: "4"},
			want:   "Correct! + 980 Points",
		},
		{
			name:   "correct but slow",
			result: domain.AnswerResult{Correct: true, Awarded: 0},
			want:   "Correct! + 0 Points",
		},
		{
			name:   "wrong",
			result: domain.AnswerResult{Selected: "3", CorrectAnswer: "4"},
			want:   "Wrong! The correct answer was: 4",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Feedback(tt.result); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestProgressIsOneBased(t *testing.T) {
	if got := Progress(0, 10); got != "Question 1/10" {
		t.Fatalf("unexpected progress %q", got)
	}
	if got := Progress(9, 10); got != "Question 10/10" {
		t.Fatalf("unexpected progress %q", got)
	}
}

func TestResults(t *testing.T) {
	if got := Results(980, true); got != "Quiz finished! Your final score: 980 (new high score!)" {
		t.Fatalf("unexpected results %q", got)
	}
	if got := Results(0, false); got != "Quiz finished! Your final score: 0" {
		t.Fatalf("unexpected results %q", got)
	}
}

func TestChoiceLabel(t *testing.T) {
	for i, want := range []string{"A", "B", "C", "D"} {
		if got := ChoiceLabel(i); got != want {
			t.Fatalf("label %d: expected %s, got %s", i, want, got)
		}
	}
	if got := ChoiceLabel(30); got != "31" {
		t.Fatalf("expected numeric fallback, got %s", got)
	}
}
