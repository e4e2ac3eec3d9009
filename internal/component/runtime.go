package component

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/softwarelanguageslab/harpy-go/internal/baselib/actor"
)

// Backend selects the transport a System uses to deliver envelopes between
// components (spec.md §6 "Backend"). Only BackendInProcess is implemented;
// the network transports are recognized and documented but rejected, since
// the wire format and transport are an explicit external collaborator
// (spec.md §1 "Out of scope").
type Backend int

const (
	// BackendInProcess delivers envelopes via in-memory Go channels
	// within a single process. The only implemented backend.
	BackendInProcess Backend = iota

	// BackendMultiProcessLocal would deliver envelopes between processes
	// on the same host (e.g. via a Unix socket). Not implemented.
	BackendMultiProcessLocal

	// BackendMultiProcessTCP would deliver envelopes between processes
	// over a network (e.g. via TCP). Not implemented.
	BackendMultiProcessTCP
)

// String renders the backend for logging and error messages.
func (b Backend) String() string {
	switch b {
	case BackendInProcess:
		return "in-process"
	case BackendMultiProcessLocal:
		return "multi-process-local"
	case BackendMultiProcessTCP:
		return "multi-process-tcp"
	default:
		return "unknown"
	}
}

var (
	// ErrBackendLocked is returned by System.SetBackend once any
	// component has already been spawned on the system (spec.md §6,
	// §7 error kind 5).
	ErrBackendLocked = errors.New("component: backend already locked by a prior spawn")

	// ErrBackendUnsupported is returned by System.SetBackend for any
	// backend other than BackendInProcess.
	ErrBackendUnsupported = errors.New("component: backend not implemented by this runtime")
)

// RuntimeConfig holds the configuration a System is built from, modeled on
// the teacher's actor.SystemConfig/DefaultConfig pattern.
type RuntimeConfig struct {
	// MailboxCapacity is the default capacity of every component's
	// mailbox.
	MailboxCapacity int

	// Backend selects the transport. Defaults to BackendInProcess.
	Backend Backend

	// WakeupGranularity is the wakeup-timer resolution reported by the
	// version command. ScheduleWakeup does not read it: delays are passed
	// to the timer unchanged, without rounding.
	WakeupGranularity time.Duration
}

// DefaultRuntimeConfig returns the default configuration: 100-capacity
// mailboxes, the in-process backend, and millisecond wakeup granularity.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		MailboxCapacity:   100,
		Backend:           BackendInProcess,
		WakeupGranularity: time.Millisecond,
	}
}

// System is the host a harpy program spawns components into. It wraps the
// underlying actor.ActorSystem with the backend-selection and -locking
// semantics spec.md §6 adds on top of the teacher's plain actor host.
type System struct {
	actors *actor.ActorSystem
	config RuntimeConfig

	mu         sync.Mutex
	backend    Backend
	spawnedAny bool
}

// NewSystem creates a System from cfg.
func NewSystem(cfg RuntimeConfig) *System {
	return &System{
		actors: actor.NewActorSystemWithConfig(actor.SystemConfig{
			MailboxCapacity: cfg.MailboxCapacity,
		}),
		config:  cfg,
		backend: cfg.Backend,
	}
}

// NewDefaultSystem creates a System using DefaultRuntimeConfig.
func NewDefaultSystem() *System {
	return NewSystem(DefaultRuntimeConfig())
}

// Actors returns the underlying actor.ActorSystem that genactor.Spawn,
// reactor.Spawn, and window.Spawn register components against.
func (s *System) Actors() *actor.ActorSystem {
	return s.actors
}

// Backend reports the system's currently configured backend.
func (s *System) Backend() Backend {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend
}

// SetBackend changes the system's backend. It is legal only before the
// first component has been spawned: once NoteSpawn has been called, every
// subsequent call returns ErrBackendLocked. A backend other than
// BackendInProcess always returns ErrBackendUnsupported, since no other
// transport is implemented (spec.md §6).
func (s *System) SetBackend(b Backend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.spawnedAny {
		return ErrBackendLocked
	}
	if b != BackendInProcess {
		return ErrBackendUnsupported
	}

	s.backend = b
	return nil
}

// NoteSpawn records that a component has been spawned on this system,
// locking the backend against further changes. Called by
// genactor.Spawn/reactor.Spawn/window.Spawn before they return.
func (s *System) NoteSpawn() {
	s.mu.Lock()
	s.spawnedAny = true
	s.mu.Unlock()
}

// Shutdown gracefully shuts down every component, waiting up to ctx's
// deadline for in-flight handlers to finish.
func (s *System) Shutdown(ctx context.Context) error {
	return s.actors.Shutdown(ctx)
}
