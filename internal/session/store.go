// Package session owns the current authenticated identity for the
// lifetime of an application run and makes it durable across restarts
// through a single-key slot.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
)

// Error definitions
var (
	// ErrOperationInFlight is returned when a login/register is started
	// while another identity-mutating operation is still pending. Such
	// calls are rejected rather than queued so two writes to the slot
	// can never interleave.
	ErrOperationInFlight = errors.New("another sign-in operation is in progress")
)

// Authenticator is the collaborator that resolves credentials to a user
// record. Implemented by service.AuthService.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, email, name string, role domain.Role, password string) (*domain.User, error)
}

// State describes what the store knows about the current identity.
type State int

const (
	// StateUnknown: restore has not completed yet; no access decision
	// may be made while in this state.
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Store maintains at most one authenticated identity. All
// identity-mutating operations are serialized: a second call while one
// is in flight fails with ErrOperationInFlight.
type Store struct {
	mu       sync.Mutex
	auth     Authenticator
	slot     Slot
	current  *domain.User
	restored bool
	pending  bool
}

// NewStore creates a session store over the given authenticator and
// durable slot. Call Restore before making access decisions.
func NewStore(auth Authenticator, slot Slot) *Store {
	return &Store{auth: auth, slot: slot}
}

// Restore loads a previously saved identity from the slot. An empty or
// unreadable slot means logged out; malformed content is swallowed and
// treated the same way, never surfaced to the caller.
func (s *Store) Restore(ctx context.Context) *domain.User {
	data, err := s.slot.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.restored = true

	if err != nil {
		if !errors.Is(err, ErrEmptySlot) {
			log.Printf("session: slot unreadable, starting logged out: %v", err)
		}
		return nil
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil || user.ID == "" {
		log.Printf("session: discarding malformed saved identity")
		return nil
	}

	s.current = &user
	return s.current
}

// Login authenticates and, on success, makes the returned identity
// current and persists it. On failure the prior identity is unchanged.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	user, err := s.auth.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, user), nil
}

// Register creates a new account and, on success, makes it the current
// identity and persists it.
func (s *Store) Register(ctx context.Context, email, name string, role domain.Role, password string) (*domain.User, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	user, err := s.auth.Register(ctx, email, name, role, password)
	if err != nil {
		return nil, err
	}
	return s.adopt(ctx, user), nil
}

// Logout clears the in-memory identity and the durable slot. It is
// idempotent and never fails the caller: a slot that cannot be cleared
// is logged, and the in-memory identity is dropped regardless.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.slot.Clear(ctx); err != nil {
		log.Printf("session: failed to clear slot on logout: %v", err)
	}
}

// Current returns the current identity, or nil when logged out.
func (s *Store) Current() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	u := *s.current
	return &u
}

// State reports the session state. StateUnknown until Restore has run.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case !s.restored:
		return StateUnknown
	case s.current == nil:
		return StateAnonymous
	default:
		return StateAuthenticated
	}
}

// begin marks an identity-mutating operation in flight.
func (s *Store) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending {
		return ErrOperationInFlight
	}
	s.pending = true
	return nil
}

func (s *Store) end() {
	s.mu.Lock()
	s.pending = false
	s.mu.Unlock()
}

// adopt installs a freshly authenticated identity and persists it. A
// slot write failure keeps the in-memory identity; the session simply
// won't survive a restart.
func (s *Store) adopt(ctx context.Context, user *domain.User) *domain.User {
	s.mu.Lock()
	s.current = user
	s.mu.Unlock()

	data, err := json.Marshal(user)
	if err == nil {
		err = s.slot.Save(ctx, data)
	}
	if err != nil {
		log.Printf("session: failed to persist identity: %v", err)
	}

	u := *user
	return &u
}
