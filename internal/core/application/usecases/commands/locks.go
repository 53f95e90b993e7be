package commands

import (
	"errors"
	"sync"

	"marketplace/internal/core/domain/model/kernel"
)

// ErrTransitionInFlight is returned when a status write for the same order is
// still awaiting its result.
var ErrTransitionInFlight = errors.New("a status change for this order is already in progress")

// SessionLocks serializes cart mutations per cart session. Different sessions
// never block each other.
type SessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

func NewSessionLocks() *SessionLocks {
	return &SessionLocks{locks: make(map[string]*sessionLock)}
}

// Lock blocks until session is free and returns the matching unlock.
func (l *SessionLocks) Lock(session string) (unlock func()) {
	l.mu.Lock()
	entry, ok := l.locks[session]
	if !ok {
		entry = &sessionLock{}
		l.locks[session] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, session)
		}
		l.mu.Unlock()
	}
}

// InFlightOrders rejects a second status write for an order whose previous
// write has not finished. It is shared by the guided and override handlers.
type InFlightOrders struct {
	mu     sync.Mutex
	orders map[string]struct{}
}

func NewInFlightOrders() *InFlightOrders {
	return &InFlightOrders{orders: make(map[string]struct{})}
}

// Acquire marks id as in flight. It fails with ErrTransitionInFlight if it
// already was.
func (f *InFlightOrders) Acquire(id kernel.UUID) (release func(), err error) {
	key := id.String()

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, busy := f.orders[key]; busy {
		return nil, ErrTransitionInFlight
	}
	f.orders[key] = struct{}{}

	return func() {
		f.mu.Lock()
		delete(f.orders, key)
		f.mu.Unlock()
	}, nil
}
