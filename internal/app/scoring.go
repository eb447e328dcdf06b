package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"trivia-client/internal/domain"
)

const (
	// MaxPoints is awarded for an answer submitted within the first second.
	MaxPoints = 1000
	// DecayPerSecond is subtracted for every full second a question stays open.
	DecayPerSecond = 10
	// HighScoreKey is the storage key holding the best final score.
	HighScoreKey = "trivia:highscore"
)

// KeyValueStore abstracts the durable storage behind the high score (memory, file, Redis, Postgres).
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Points returns max(1000 - 10*floor(seconds), 0) for the time a question was open.
func Points(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	seconds := int64(elapsed / time.Second)
	points := int64(MaxPoints) - int64(DecayPerSecond)*seconds
	if points < 0 {
		return 0
	}
	return int(points)
}

// Score awards time-decayed points when selected matches correct after decoding, and 0 otherwise.
func Score(selected, correct string, elapsed time.Duration) int {
	if !domain.SameAnswer(selected, correct) {
		return 0
	}
	return Points(elapsed)
}

// ScoreRaiser is implemented by stores that can raise an integer value in one atomic step,
// so processes sharing the store cannot lower it. It returns the resulting value and whether it changed.
type ScoreRaiser interface {
	RaiseInt(ctx context.Context, key string, value int) (int, bool, error)
}

// HighScores keeps the best final score in a KeyValueStore under HighScoreKey.
// Update is safe for concurrent use.
type HighScores struct {
	mu    sync.Mutex
	store KeyValueStore
}

func NewHighScores(store KeyValueStore) *HighScores {
	return &HighScores{store: store}
}

// Get returns the stored high score. A missing or unreadable value counts as 0.
func (h *HighScores) Get(ctx context.Context) (int, error) {
	raw, ok, err := h.store.Get(ctx, HighScoreKey)
	if err != nil {
		return 0, fmt.Errorf("read high score: %w", err)
	}
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0, nil
	}
	return v, nil
}

// Update stores final when it is strictly greater than the current high score.
// It returns the resulting high score and whether it changed.
func (h *HighScores) Update(ctx context.Context, final int) (int, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if raiser, ok := h.store.(ScoreRaiser); ok {
		high, raised, err := raiser.RaiseInt(ctx, HighScoreKey, final)
		if err != nil {
			return 0, false, fmt.Errorf("write high score: %w", err)
		}
		return high, raised, nil
	}

	current, err := h.Get(ctx)
	if err != nil {
		return 0, false, err
	}
	if final <= current {
		return current, false, nil
	}
	if err := h.store.Set(ctx, HighScoreKey, strconv.Itoa(final)); err != nil {
		return current, false, fmt.Errorf("write high score: %w", err)
	}
	return final, true, nil
}

// Reset stores a high score of 0.
func (h *HighScores) Reset(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Set(ctx, HighScoreKey, "0"); err != nil {
		return fmt.Errorf("reset high score: %w", err)
	}
	return nil
}
