// Package authz decides route accessibility for the current identity
// and derives the role-scoped navigation menu.
package authz

import (
	"errors"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/session"
)

// Error definitions
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrRoleMismatch    = errors.New("access denied for this role")
)

// Route describes a navigation destination's access requirements. A
// zero Role means any authenticated user may view it.
type Route struct {
	Path         string
	RequiresAuth bool
	Role         domain.Role
}

// Action is the outcome of an access decision.
type Action int

const (
	// ActionWait: the session state is still unknown; rendering is
	// suspended and no decision is made.
	ActionWait Action = iota
	// ActionAllow: the route may be rendered.
	ActionAllow
	// ActionRedirect: the viewer is anonymous on a protected route;
	// send them to the login entry point.
	ActionRedirect
	// ActionDeny: the viewer is authenticated but the wrong role;
	// show an explicit access-denied message, do not redirect.
	ActionDeny
)

// Decision is the gate's answer for one navigation event.
type Decision struct {
	Action   Action
	Redirect string // login path when Action == ActionRedirect
	Err      error  // ErrUnauthenticated or ErrRoleMismatch when denied
}

// LoginPath is where anonymous viewers of protected routes are sent.
const LoginPath = "/login"

// Gate makes access decisions against a session store.
type Gate struct {
	store *session.Store
}

// NewGate creates a gate over the given session store.
func NewGate(store *session.Store) *Gate {
	return &Gate{store: store}
}

// Decide evaluates one navigation request against the current session
// state.
func (g *Gate) Decide(route Route) Decision {
	state := g.store.State()
	if state == session.StateUnknown {
		return Decision{Action: ActionWait}
	}

	if !route.RequiresAuth {
		return Decision{Action: ActionAllow}
	}

	if state == session.StateAnonymous {
		return Decision{Action: ActionRedirect, Redirect: LoginPath, Err: ErrUnauthenticated}
	}

	if route.Role != "" {
		user := g.store.Current()
		if user == nil || user.Role != route.Role {
			return Decision{Action: ActionDeny, Err: ErrRoleMismatch}
		}
	}
	return Decision{Action: ActionAllow}
}

// NavItem is one entry of the navigation menu.
type NavItem struct {
	Label string `json:"label"`
	Path  string `json:"path"`
}

// Menu derives the fixed, ordered navigation menu for a role. The two
// roles get disjoint menus; an unknown role gets none.
func Menu(role domain.Role) []NavItem {
	switch role {
	case domain.RoleTrainer:
		return []NavItem{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "Workouts", Path: "/workouts"},
			{Label: "Trainees", Path: "/trainees"},
			{Label: "Progress", Path: "/progress"},
			{Label: "Schedule", Path: "/schedule"},
		}
	case domain.RoleTrainee:
		return []NavItem{
			{Label: "Dashboard", Path: "/dashboard"},
			{Label: "My Workouts", Path: "/my-workouts"},
			{Label: "My Progress", Path: "/my-progress"},
			{Label: "History", Path: "/history"},
		}
	default:
		return nil
	}
}
