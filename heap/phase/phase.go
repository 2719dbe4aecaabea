package phase

import (
	"errors"

	"github.com/chronicleforge/yendors-curse-sub005/heap/alloc"
	"github.com/chronicleforge/yendors-curse-sub005/heap/region"
)

// Phase identifies the current lifecycle stage.
type Phase int

const (
	// Setup is the short-lived startup stage. Allocations made here are
	// lighter weight and are discarded in one step at the transition.
	Setup Phase = iota

	// Session is the main stage, backed by the persistent region.
	Session
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case Session:
		return "session"
	default:
		return "unknown"
	}
}

// ErrAlreadyInSession indicates a second transition attempt.
var ErrAlreadyInSession = errors.New("phase: already in session phase")

// Lifecycle owns the setup zone and the main allocator, and routes
// allocations to whichever phase is active.
type Lifecycle struct {
	phase Phase
	zone  *region.Zone
	setup *alloc.Allocator
	main  *alloc.Allocator
}

// NewLifecycle creates a lifecycle in the setup phase. setupCapacity of 0
// picks the default zone capacity.
func NewLifecycle(main *alloc.Allocator, setupCapacity int) *Lifecycle {
	z := region.NewZone(setupCapacity)
	return &Lifecycle{
		phase: Setup,
		zone:  z,
		setup: alloc.New(z),
		main:  main,
	}
}

// Phase returns the active phase.
func (l *Lifecycle) Phase() Phase { return l.phase }

// Current returns the allocator for the active phase. References obtained
// from the setup allocator are invalid after EnterSession.
func (l *Lifecycle) Current() *alloc.Allocator {
	if l.phase == Setup {
		return l.setup
	}
	return l.main
}

// Main returns the session allocator regardless of phase, for callers that
// must place something in persistent memory during setup.
func (l *Lifecycle) Main() *alloc.Allocator { return l.main }

// EnterSession discards every setup-phase allocation in O(1) by destroying
// the setup zone, and switches routing to the main allocator.
func (l *Lifecycle) EnterSession() error {
	if l.phase == Session {
		return ErrAlreadyInSession
	}
	l.phase = Session
	l.setup = nil
	return l.zone.Release()
}
