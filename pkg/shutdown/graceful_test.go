package shutdown

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestWithSignalsCancelsOnSIGTERM(t *testing.T) {
	ctx, cancel := WithSignals(context.Background())
	defer cancel()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("send signal: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("context was not cancelled after SIGTERM")
	}
}

func TestDrainJoinsErrors(t *testing.T) {
	var calls int
	ok := func(context.Context) error { calls++; return nil }
	bad := func(context.Context) error { calls++; return context.DeadlineExceeded }

	err := Drain(time.Second, ok, bad, ok)
	if calls != 3 {
		t.Fatalf("expected every closer to run, got %d", calls)
	}
	if err == nil {
		t.Fatal("expected joined error")
	}
}

func TestDrainPassesDeadline(t *testing.T) {
	err := Drain(50*time.Millisecond, func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("closer context has no deadline")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
