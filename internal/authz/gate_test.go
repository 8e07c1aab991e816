package authz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/session"
)

type staticAuth struct {
	user *domain.User
}

func (a staticAuth) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return a.user, nil
}

func (a staticAuth) Register(ctx context.Context, email, name string, role domain.Role, password string) (*domain.User, error) {
	return a.user, nil
}

func newGate(t *testing.T, user *domain.User, restore bool) *Gate {
	t.Helper()
	store := session.NewStore(staticAuth{user: user}, session.NewMemorySlot())
	if restore {
		store.Restore(context.Background())
	}
	if user != nil {
		_, err := store.Login(context.Background(), user.Email, "pw")
		require.NoError(t, err)
	}
	return NewGate(store)
}

func TestDecideWaitsWhileStateUnknown(t *testing.T) {
	gate := newGate(t, nil, false)

	d := gate.Decide(Route{Path: "/dashboard", RequiresAuth: true})
	assert.Equal(t, ActionWait, d.Action)

	// Even public routes wait until restore settles.
	d = gate.Decide(Route{Path: "/login"})
	assert.Equal(t, ActionWait, d.Action)
}

func TestDecideAllowsPublicRoutes(t *testing.T) {
	gate := newGate(t, nil, true)

	d := gate.Decide(Route{Path: "/login"})
	assert.Equal(t, ActionAllow, d.Action)
	assert.NoError(t, d.Err)
}

func TestDecideRedirectsAnonymousOnProtectedRoute(t *testing.T) {
	gate := newGate(t, nil, true)

	d := gate.Decide(Route{Path: "/dashboard", RequiresAuth: true})
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, LoginPath, d.Redirect)
	assert.ErrorIs(t, d.Err, ErrUnauthenticated)
}

func TestDecideAllowsMatchingRole(t *testing.T) {
	gate := newGate(t, &domain.User{ID: "u1", Role: domain.RoleTrainer}, true)

	d := gate.Decide(Route{Path: "/trainees", RequiresAuth: true, Role: domain.RoleTrainer})
	assert.Equal(t, ActionAllow, d.Action)

	// Routes with no role restriction admit any authenticated user.
	d = gate.Decide(Route{Path: "/dashboard", RequiresAuth: true})
	assert.Equal(t, ActionAllow, d.Action)
}

func TestDecideDeniesWrongRoleWithoutRedirect(t *testing.T) {
	gate := newGate(t, &domain.User{ID: "u2", Role: domain.RoleTrainee}, true)

	d := gate.Decide(Route{Path: "/trainees", RequiresAuth: true, Role: domain.RoleTrainer})
	assert.Equal(t, ActionDeny, d.Action)
	assert.Empty(t, d.Redirect, "wrong role shows access denied, never a login redirect")
	assert.ErrorIs(t, d.Err, ErrRoleMismatch)
}

func TestMenuPerRole(t *testing.T) {
	trainer := Menu(domain.RoleTrainer)
	require.Len(t, trainer, 5)
	assert.Equal(t, "Dashboard", trainer[0].Label)
	assert.Equal(t, "Trainees", trainer[2].Label)

	trainee := Menu(domain.RoleTrainee)
	require.Len(t, trainee, 4)
	assert.Equal(t, "My Workouts", trainee[1].Label)
	assert.Equal(t, "History", trainee[3].Label)

	// The only shared destination is the dashboard.
	shared := 0
	for _, a := range trainer {
		for _, b := range trainee {
			if a.Path == b.Path {
				shared++
			}
		}
	}
	assert.Equal(t, 1, shared)

	assert.Nil(t, Menu(domain.Role("admin")))
}
