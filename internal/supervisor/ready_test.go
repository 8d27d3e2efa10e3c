//go:build linux || darwin

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// countingProbe fails until succeedAfter attempts have been made.
type countingProbe struct {
	calls        atomic.Int64
	succeedAfter int64
}

func (p *countingProbe) Health(ctx context.Context) error {
	if p.calls.Add(1) >= p.succeedAfter {
		return nil
	}
	return errors.New("connection refused")
}

func fastReadiness(timeout time.Duration) ReadinessConfig {
	return ReadinessConfig{
		Timeout:      timeout,
		InitialDelay: 10 * time.Millisecond,
		MaxDelay:     50 * time.Millisecond,
	}
}

func TestWaitReady_SucceedsAfterRetries(t *testing.T) {
	s := New(testLocation(t), newFakeLauncher(), zerolog.Nop())
	defer s.Shutdown()
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	probe := &countingProbe{succeedAfter: 3}
	if err := s.WaitReady(context.Background(), probe, fastReadiness(5*time.Second)); err != nil {
		t.Fatalf("WaitReady() error = %v", err)
	}
	if got := probe.calls.Load(); got < 3 {
		t.Errorf("probe calls = %d, want >= 3", got)
	}
}

func TestWaitReady_TimesOut(t *testing.T) {
	s := New(testLocation(t), newFakeLauncher(), zerolog.Nop())
	defer s.Shutdown()
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	probe := &countingProbe{succeedAfter: 1 << 30}
	start := time.Now()
	err := s.WaitReady(context.Background(), probe, fastReadiness(300*time.Millisecond))
	elapsed := time.Since(start)

	if !errors.Is(err, ErrBackendTimeout) {
		t.Fatalf("WaitReady() error = %v, want ErrBackendTimeout", err)
	}
	if elapsed < 250*time.Millisecond {
		t.Errorf("WaitReady returned too quickly: %v", elapsed)
	}
}

func TestWaitReady_BacksOff(t *testing.T) {
	s := New(testLocation(t), newFakeLauncher(), zerolog.Nop())
	defer s.Shutdown()
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	probe := &countingProbe{succeedAfter: 1 << 30}
	_ = s.WaitReady(context.Background(), probe, fastReadiness(300*time.Millisecond))

	// With doubling delays the poll cannot be a busy loop; a fixed
	// 10ms interval would fit ~30 probes into the window.
	if got := probe.calls.Load(); got > 20 {
		t.Errorf("probe calls = %d, want bounded by backoff", got)
	}
}

func TestWaitReady_ChildExitFailsFast(t *testing.T) {
	s := New(testLocation(t), newFakeLauncher("sh", "-c", "exit 7"), zerolog.Nop())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	probe := &countingProbe{succeedAfter: 1 << 30}
	err := s.WaitReady(context.Background(), probe, fastReadiness(5*time.Second))
	if !errors.Is(err, ErrBackendExited) {
		t.Fatalf("WaitReady() error = %v, want ErrBackendExited", err)
	}
}

func TestWaitReady_BeforeStart(t *testing.T) {
	s := New(testLocation(t), newFakeLauncher(), zerolog.Nop())

	probe := &countingProbe{succeedAfter: 1}
	err := s.WaitReady(context.Background(), probe, fastReadiness(time.Second))
	if !errors.Is(err, ErrBackendExited) {
		t.Fatalf("WaitReady() error = %v, want ErrBackendExited", err)
	}
}

func TestWaitReady_ContextCancel(t *testing.T) {
	s := New(testLocation(t), newFakeLauncher(), zerolog.Nop())
	defer s.Shutdown()
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	probe := &countingProbe{succeedAfter: 1 << 30}
	err := s.WaitReady(ctx, probe, fastReadiness(5*time.Second))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("WaitReady() error = %v, want context.Canceled", err)
	}
}
