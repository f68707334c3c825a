package ratelimit

import (
	"context"
	"testing"
	"time"
)

// recordingPacer swaps the sleep function for a counter.
func recordingPacer(batch int) (*Pacer, *int) {
	p := New(batch, time.Minute)
	sleeps := 0
	p.sleep = func(_ context.Context, _ time.Duration) error {
		sleeps++
		return nil
	}
	return p, &sleeps
}

func TestPacer_NoPauseWithinBatch(t *testing.T) {
	p, sleeps := recordingPacer(20)

	for i := 0; i < 20; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if *sleeps != 0 {
		t.Errorf("sleeps = %d, want 0", *sleeps)
	}
}

func TestPacer_PausesBetweenBatches(t *testing.T) {
	p, sleeps := recordingPacer(20)

	// 45 requests cross two batch boundaries (after 20 and after 40).
	for i := 0; i < 45; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
	if *sleeps != 2 {
		t.Errorf("sleeps = %d, want 2", *sleeps)
	}
}

func TestPacer_CancelAbortsWait(t *testing.T) {
	p := New(1, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	if err := p.Wait(ctx); err != nil {
		t.Fatalf("first Wait failed: %v", err)
	}

	cancel()
	if err := p.Wait(ctx); err == nil {
		t.Error("expected context error, got nil")
	}
}
