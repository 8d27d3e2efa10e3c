package supervisor

import (
	"context"
	"fmt"
	"time"
)

// Probe checks whether the backend is ready to serve. Implemented by
// the backend HTTP client's health check.
type Probe interface {
	Health(ctx context.Context) error
}

// ReadinessConfig bounds the readiness poll.
type ReadinessConfig struct {
	Timeout      time.Duration
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultReadinessConfig returns the readiness poll defaults.
func DefaultReadinessConfig() ReadinessConfig {
	return ReadinessConfig{
		Timeout:      30 * time.Second,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     2 * time.Second,
	}
}

// WaitReady polls the probe with exponential backoff until the backend
// answers healthy, the hard timeout expires, the context is cancelled
// or the child exits. A timeout here is a fatal startup error for the
// caller: the backend never came up.
func (s *Supervisor) WaitReady(ctx context.Context, probe Probe, cfg ReadinessConfig) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return ErrBackendExited
	}

	deadline := time.Now().Add(cfg.Timeout)
	delay := cfg.InitialDelay
	attempt := 0

	for time.Now().Before(deadline) {
		attempt++

		probeCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
		err := probe.Health(probeCtx)
		cancel()
		if err == nil {
			s.logger.Info().Int("attempts", attempt).Msg("Backend is ready")
			return nil
		}
		s.logger.Debug().Err(err).Int("attempt", attempt).Msg("Backend not ready yet")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-done:
			s.mu.Lock()
			exitErr := s.exitErr
			s.mu.Unlock()
			return fmt.Errorf("%w: %v", ErrBackendExited, exitErr)
		case <-time.After(delay):
		}

		delay *= 2
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("%w after %s", ErrBackendTimeout, cfg.Timeout)
}
