package utils

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestKeySetNoDuplicates(t *testing.T) {
	s := NewKeySet()

	if !s.Add("SIH123") {
		t.Error("first Add should return true")
	}
	if s.Add("SIH123") {
		t.Error("second Add of same key should return false")
	}
	if !s.Contains("SIH123") {
		t.Error("Contains should report an added key")
	}
	if s.Size() != 1 {
		t.Errorf("size: got %d, want 1", s.Size())
	}
}

func TestThrottleEnforcesInterval(t *testing.T) {
	interval := 50 * time.Millisecond
	th := NewThrottle(interval)
	ctx := context.Background()

	var timestamps []time.Time
	for i := 0; i < 3; i++ {
		if err := th.Wait(ctx); err != nil {
			t.Fatalf("Wait: %v", err)
		}
		timestamps = append(timestamps, time.Now())
	}

	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		if gap < interval {
			t.Errorf("gap between wait %d and %d: %v < minimum %v", i-1, i, gap, interval)
		}
	}
}

func TestThrottleCancelled(t *testing.T) {
	th := NewThrottle(time.Hour)
	if err := th.Wait(context.Background()); err != nil {
		t.Fatalf("first Wait should not block: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := th.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait on cancelled ctx = %v; want context.Canceled", err)
	}
}

func TestRetrySucceedsAfterFailures(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond, Logger: Discard()}

	calls := 0
	err := r.Do(context.Background(), "flaky", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do returned %v; want nil", err)
	}
	if calls != 3 {
		t.Errorf("calls: got %d, want 3", calls)
	}
}

func TestRetryGivesUp(t *testing.T) {
	r := &RetryConfig{MaxAttempts: 2, BaseDelay: time.Millisecond, Logger: Discard()}
	boom := errors.New("boom")

	err := r.Do(context.Background(), "navigate", func(context.Context) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("Do error = %v; want wrapping %v", err, boom)
	}
	if !strings.Contains(err.Error(), "after 2 attempts") {
		t.Errorf("error %q should mention attempt count", err)
	}
}

func TestLoggerDebugGate(t *testing.T) {
	var out, errOut bytes.Buffer

	quiet := NewLoggerTo(&out, &errOut, false)
	quiet.Debug("hidden %d", 1)
	quiet.Info("shown %d", 2)
	quiet.Error("failed %s", "x")

	if strings.Contains(out.String(), "hidden") {
		t.Error("debug line written while debug disabled")
	}
	if !strings.Contains(out.String(), "shown 2") {
		t.Errorf("info line missing: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "failed x") {
		t.Errorf("error line missing: %q", errOut.String())
	}

	out.Reset()
	loud := NewLoggerTo(&out, &errOut, true)
	loud.Debug("visible")
	if !strings.Contains(out.String(), "visible") {
		t.Error("debug line missing while debug enabled")
	}
}

func TestConfirmReadsLine(t *testing.T) {
	var out bytes.Buffer
	Confirm(strings.NewReader("\n"), &out, "Press Enter to close the browser...")
	if out.String() != "Press Enter to close the browser..." {
		t.Errorf("prompt: got %q", out.String())
	}

	// EOF must not block.
	Confirm(strings.NewReader(""), &out, "")
}

func TestFindChromeBinaryExplicit(t *testing.T) {
	if got := FindChromeBinary("/custom/chrome"); got != "/custom/chrome" {
		t.Errorf("FindChromeBinary(explicit) = %q; want /custom/chrome", got)
	}
}
