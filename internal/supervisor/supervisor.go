package supervisor

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// stopGracePeriod is how long Shutdown waits for the backend to exit
// after SIGTERM before escalating to SIGKILL.
const stopGracePeriod = 5 * time.Second

// Supervisor owns the backend child process. At most one child is held
// at a time, and the handle is taken exactly once on shutdown; a second
// shutdown observes an empty handle and does nothing.
type Supervisor struct {
	loc      Location
	launcher Launcher
	logger   zerolog.Logger

	mu        sync.Mutex
	cmd       *exec.Cmd // nil until spawned, nil again once taken
	done      chan struct{}
	exitErr   error
	sessionID string
	startedAt time.Time
}

// Status describes the supervised process for the frontend.
type Status struct {
	Running   bool      `json:"running"`
	PID       int       `json:"pid"`
	SessionID string    `json:"session_id"`
	StartedAt time.Time `json:"started_at"`
}

// New creates a supervisor for the backend at the given location.
func New(loc Location, launcher Launcher, logger zerolog.Logger) *Supervisor {
	return &Supervisor{
		loc:      loc,
		launcher: launcher,
		logger:   logger,
	}
}

// Start spawns the backend process and stores its handle. Calling Start
// while a child is already held is a no-op. The child inherits stdout
// and stderr so backend logs reach the application log stream.
func (s *Supervisor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd != nil && s.cmd.Process != nil {
		return nil
	}

	cmd := s.launcher.Command(s.loc)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrSpawnFailed, err)
	}

	s.cmd = cmd
	s.done = make(chan struct{})
	s.sessionID = uuid.NewString()
	s.startedAt = time.Now()

	s.logger.Info().
		Int("pid", cmd.Process.Pid).
		Str("session", s.sessionID).
		Str("backend_dir", s.loc.BackendDir).
		Msg("Backend process started")

	go s.reap(cmd, s.done)

	return nil
}

// reap waits for the child so it never becomes a zombie, then publishes
// the exit by closing done.
func (s *Supervisor) reap(cmd *exec.Cmd, done chan struct{}) {
	err := cmd.Wait()

	s.mu.Lock()
	s.exitErr = err
	s.mu.Unlock()
	close(done)

	if err != nil {
		s.logger.Warn().Err(err).Msg("Backend process exited")
	} else {
		s.logger.Info().Msg("Backend process exited normally")
	}
}

// Shutdown takes the stored handle and terminates the backend process
// group: SIGTERM first, SIGKILL if the child has not exited within the
// grace period. An empty handle is a silent no-op. Termination is best
// effort; failures are logged, never returned.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	cmd := s.cmd
	done := s.done
	s.cmd = nil
	s.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		s.logger.Info().Msg("No backend process to stop")
		return
	}

	s.logger.Info().Int("pid", cmd.Process.Pid).Msg("Stopping backend process")

	if err := s.launcher.Terminate(cmd.Process); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to signal backend, killing")
		if err := s.launcher.Kill(cmd.Process); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to kill backend")
		}
		return
	}

	select {
	case <-done:
	case <-time.After(stopGracePeriod):
		s.logger.Warn().Msg("Backend did not exit in time, killing process group")
		if err := s.launcher.Kill(cmd.Process); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to kill backend")
		}
	}
}

// Running reports whether a child is held and has not exited.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cmd == nil || s.done == nil {
		return false
	}
	select {
	case <-s.done:
		return false
	default:
		return true
	}
}

// Status returns the current process status.
func (s *Supervisor) Status() Status {
	running := s.Running()

	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{Running: running}
	if s.cmd != nil && s.cmd.Process != nil {
		st.PID = s.cmd.Process.Pid
		st.SessionID = s.sessionID
		st.StartedAt = s.startedAt
	}
	return st
}
