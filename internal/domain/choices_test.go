package domain

import (
	"math/rand"
	"sort"
	"testing"
)

func TestBuildChoicesIsPermutation(t *testing.T) {
	q := Question{
		Text:             "Who wrote &quot;Hamlet&quot;?",
		CorrectAnswer:    "William Shakespeare",
		IncorrectAnswers: []string{"Christopher Marlowe", "Ben Jonson", "O&#039;Neill"},
	}
	want := []string{"Ben Jonson", "Christopher Marlowe", "O'Neill", "William Shakespeare"}

	for seed := int64(0); seed < 20; seed++ {
		choices := BuildChoices(q, rand.New(rand.NewSource(seed)))
		if len(choices) != len(want) {
			t.Fatalf("seed %d: expected %d choices, got %d", seed, len(want), len(choices))
		}
		got := make([]string, 0, len(choices))
		correct := 0
		for _, c := range choices {
			got = append(got, c.Text)
			if c.Correct {
				correct++
				if c.Text != "William Shakespeare" {
					t.Fatalf("seed %d: wrong choice flagged correct: %q", seed, c.Text)
				}
			}
		}
		if correct != 1 {
			t.Fatalf("seed %d: expected exactly one correct choice, got %d", seed, correct)
		}
		sort.Strings(got)
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("seed %d: expected %v, got %v", seed, want, got)
			}
		}
	}
}

func TestBuildChoicesNilSource(t *testing.T) {
	q := Question{CorrectAnswer: "4", IncorrectAnswers: []string{"3", "5", "22"}}
	choices := BuildChoices(q, nil)
	if len(choices) != 4 {
		t.Fatalf("expected 4 choices, got %d", len(choices))
	}
	idx := CorrectIndex(choices)
	if idx < 0 || choices[idx].Text != "4" {
		t.Fatalf("expected correct choice 4, got index %d", idx)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "apostrophe", in: "It&#039;s", want: "It's"},
		{name: "quotes", in: "&quot;Quoted&quot;", want: `"Quoted"`},
		{name: "ampersand", in: "Rock &amp; Roll", want: "Rock & Roll"},
		{name: "accent", in: "Pok&eacute;mon", want: "Pokémon"},
		{name: "plain", in: "2+2=?", want: "2+2=?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.in)
			if got != tt.want {
				t.Fatalf("Decode(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if again := Decode(got); tt.in == tt.want && again != got {
				t.Fatalf("decode not idempotent on plain text: %q", again)
			}
		})
	}
}

func TestSameAnswerIgnoresEncoding(t *testing.T) {
	if !SameAnswer("Don't Stop", "Don&#039;t Stop") {
		t.Fatalf("expected displayed text to match its encoded API form")
	}
	if !SameAnswer("&lt;", "&amp;lt;") {
		t.Fatalf("expected displayed text to be compared without a second decode")
	}
	if SameAnswer("<", "&amp;lt;") {
		t.Fatalf("expected a doubly decoded answer not to match")
	}
	if SameAnswer("3", "4") {
		t.Fatalf("expected different answers to differ")
	}
}
