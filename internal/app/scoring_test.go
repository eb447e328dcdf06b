package app_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"trivia-client/internal/app"
	"trivia-client/internal/infra/memory"
)

func TestPoints(t *testing.T) {
	tests := []struct {
		elapsed time.Duration
		want    int
	}{
		{0, 1000},
		{999 * time.Millisecond, 1000},
		{time.Second, 990},
		{2300 * time.Millisecond, 980},
		{59900 * time.Millisecond, 410},
		{100 * time.Second, 0},
		{150 * time.Second, 0},
		{-time.Second, 1000},
	}
	for _, tt := range tests {
		if got := app.Points(tt.elapsed); got != tt.want {
			t.Fatalf("Points(%v) = %d, want %d", tt.elapsed, got, tt.want)
		}
	}
}

func TestScoreOnlyRewardsCorrectAnswers(t *testing.T) {
	if got := app.Score("4", "4", 2300*time.Millisecond); got != 980 {
		t.Fatalf("expected 980, got %d", got)
	}
	if got := app.Score("3", "4", 0); got != 0 {
		t.Fatalf("expected 0 for wrong answer, got %d", got)
	}
	if got := app.Score("It's", "It&#039;s", 0); got != 1000 {
		t.Fatalf("expected encoded correct answer to match, got %d", got)
	}
}

func TestHighScoreUpdateIsStrict(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	scores := app.NewHighScores(store)

	if got, err := scores.Get(ctx); err != nil || got != 0 {
		t.Fatalf("expected absent high score to read 0, got %d err=%v", got, err)
	}

	high, changed, err := scores.Update(ctx, 500)
	if err != nil || !changed || high != 500 {
		t.Fatalf("expected first update to 500, got high=%d changed=%v err=%v", high, changed, err)
	}

	high, changed, err = scores.Update(ctx, 500)
	if err != nil || changed || high != 500 {
		t.Fatalf("expected tie to keep 500, got high=%d changed=%v err=%v", high, changed, err)
	}

	high, changed, err = scores.Update(ctx, 120)
	if err != nil || changed || high != 500 {
		t.Fatalf("expected lower score to keep 500, got high=%d changed=%v err=%v", high, changed, err)
	}

	high, changed, err = scores.Update(ctx, 501)
	if err != nil || !changed || high != 501 {
		t.Fatalf("expected update to 501, got high=%d changed=%v err=%v", high, changed, err)
	}

	raw, ok, _ := store.Get(ctx, app.HighScoreKey)
	if !ok || raw != "501" {
		t.Fatalf("expected stored decimal 501, got %q ok=%v", raw, ok)
	}
}

func TestHighScoreIgnoresGarbage(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	_ = store.Set(ctx, app.HighScoreKey, "not-a-number")

	got, err := app.NewHighScores(store).Get(ctx)
	if err != nil || got != 0 {
		t.Fatalf("expected garbage to read as 0, got %d err=%v", got, err)
	}
}

func TestHighScoreStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	scores := app.NewHighScores(failingStore{err: boom})
	if _, err := scores.Get(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if _, _, err := scores.Update(context.Background(), 10); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

type failingStore struct {
	err error
}

func (f failingStore) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingStore) Set(context.Context, string, string) error         { return f.err }

func TestHighScoreReset(t *testing.T) {
	ctx := context.Background()
	scores := app.NewHighScores(memory.NewKVStore())
	_, _, _ = scores.Update(ctx, 700)

	if err := scores.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got, _ := scores.Get(ctx); got != 0 {
		t.Fatalf("expected 0 after reset, got %d", got)
	}
	if _, changed, _ := scores.Update(ctx, 1); !changed {
		t.Fatalf("expected any positive score to beat a reset high score")
	}
}

func TestHighScoreConcurrentUpdatesNeverLower(t *testing.T) {
	ctx := context.Background()
	store := &slowStore{KVStore: memory.NewKVStore(), delay: 20 * time.Millisecond}
	_ = store.Set(ctx, app.HighScoreKey, "500")
	scores := app.NewHighScores(store)

	var wg sync.WaitGroup
	for _, final := range []int{900, 800} {
		wg.Add(1)
		go func(final int) {
			defer wg.Done()
			if _, _, err := scores.Update(ctx, final); err != nil {
				t.Errorf("update %d: %v", final, err)
			}
		}(final)
	}
	wg.Wait()

	if got, _ := scores.Get(ctx); got != 900 {
		t.Fatalf("after sessions finishing with 900 and 800, expected high score 900, got %d", got)
	}
}

func TestHighScoreUsesStoreSideRaise(t *testing.T) {
	ctx := context.Background()
	store := &raisingStore{KVStore: memory.NewKVStore()}
	scores := app.NewHighScores(store)

	high, changed, err := scores.Update(ctx, 640)
	if err != nil || !changed || high != 640 {
		t.Fatalf("expected raise to 640, got high=%d changed=%v err=%v", high, changed, err)
	}
	if store.raises != 1 {
		t.Fatalf("expected the store's atomic raise to be used, got %d calls", store.raises)
	}
}

// slowStore widens the window between reading and writing the high score.
type slowStore struct {
	*memory.KVStore
	delay time.Duration
}

func (s *slowStore) Get(ctx context.Context, key string) (string, bool, error) {
	time.Sleep(s.delay)
	return s.KVStore.Get(ctx, key)
}

type raisingStore struct {
	*memory.KVStore
	raises int
}

func (s *raisingStore) RaiseInt(ctx context.Context, key string, value int) (int, bool, error) {
	s.raises++
	raw, _, _ := s.KVStore.Get(ctx, key)
	current, _ := strconv.Atoi(raw)
	if value <= current {
		return current, false, nil
	}
	return value, true, s.KVStore.Set(ctx, key, strconv.Itoa(value))
}
