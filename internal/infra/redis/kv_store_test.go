package redis

import (
	"context"
	"sync"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
)

func TestKVStoreRoundTrip(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewKVStore(newClient(mr))
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "trivia:highscore"); ok || err != nil {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "trivia:highscore", "980"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := mr.Get("trivia:highscore"); got != "980" {
		t.Fatalf("expected decimal string in redis, got %q", got)
	}
	if mr.TTL("trivia:highscore") != 0 {
		t.Fatalf("high score must not expire")
	}
	value, ok, err := store.Get(ctx, "trivia:highscore")
	if err != nil || !ok || value != "980" {
		t.Fatalf("expected 980, got %q ok=%v err=%v", value, ok, err)
	}
}

func TestKVStoreReportsConnectionErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := newClient(mr)
	mr.Close()

	if _, _, err := NewKVStore(client).Get(context.Background(), "trivia:highscore"); err == nil {
		t.Fatalf("expected error from closed redis")
	}
}

func TestKVStoreRaiseInt(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	store := NewKVStore(newClient(mr))
	ctx := context.Background()

	tests := []struct {
		value   int
		want    int
		changed bool
	}{
		{value: 500, want: 500, changed: true},
		{value: 500, want: 500, changed: false},
		{value: 120, want: 500, changed: false},
		{value: 501, want: 501, changed: true},
	}
	for _, tt := range tests {
		got, changed, err := store.RaiseInt(ctx, "trivia:highscore", tt.value)
		if err != nil || got != tt.want || changed != tt.changed {
			t.Fatalf("raise %d: expected %d/%v, got %d/%v err=%v", tt.value, tt.want, tt.changed, got, changed, err)
		}
	}
	if v, _ := mr.Get("trivia:highscore"); v != "501" {
		t.Fatalf("expected decimal 501 stored, got %q", v)
	}

	mr.Set("trivia:highscore", "garbage")
	if got, changed, err := store.RaiseInt(ctx, "trivia:highscore", 7); err != nil || !changed || got != 7 {
		t.Fatalf("expected garbage to count as 0, got %d/%v err=%v", got, changed, err)
	}
}

func TestKVStoreRaiseIntConcurrentClients(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()
	mr.Set("trivia:highscore", "500")

	// Separate clients stand in for separate server processes.
	var wg sync.WaitGroup
	for _, final := range []int{900, 800, 850, 700} {
		wg.Add(1)
		go func(final int) {
			defer wg.Done()
			if _, _, err := NewKVStore(newClient(mr)).RaiseInt(context.Background(), "trivia:highscore", final); err != nil {
				t.Errorf("raise %d: %v", final, err)
			}
		}(final)
	}
	wg.Wait()

	if v, _ := mr.Get("trivia:highscore"); v != "900" {
		t.Fatalf("expected 900 to survive concurrent raises, got %q", v)
	}
}
