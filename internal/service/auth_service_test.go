package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository/memory"
)

const testSecret = "test-secret-key"

func newAuthService(t *testing.T) (AuthService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := NewAuthService(memory.NewUserRepository(store), BcryptVerifier{}, testSecret, time.Hour)
	return svc, store
}

func TestRegisterThenLoginSameIdentity(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "Dana@Example.com", "Dana", domain.RoleTrainer, "password123")
	require.NoError(t, err)
	assert.Equal(t, "dana@example.com", created.Email, "stored email is normalized")
	assert.Empty(t, created.PasswordHash, "hash never leaves the service")

	logged, err := svc.Login(ctx, "dana@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, logged.ID)
	assert.Equal(t, domain.RoleTrainer, logged.Role)
}

func TestRegisterDuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dana@example.com", "Dana", domain.RoleTrainer, "password123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "DANA@EXAMPLE.COM", "Other", domain.RoleTrainee, "password456")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterRejectsInvalidRole(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), "x@example.com", "X", domain.Role("admin"), "password123")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "dana@example.com", "Dana", domain.RoleTrainer, "password123")
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "dana@example.com", "nope")
	_, unknownEmail := svc.Login(ctx, "ghost@example.com", "password123")

	assert.ErrorIs(t, wrongPassword, ErrAuthenticationFailed)
	assert.ErrorIs(t, unknownEmail, ErrAuthenticationFailed)
}

func TestLoginMatchesEmailCaseInsensitively(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	created, err := svc.Register(ctx, "dana@example.com", "Dana", domain.RoleTrainee, "password123")
	require.NoError(t, err)

	logged, err := svc.Login(ctx, "  DANA@example.COM ", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, logged.ID)
}

func TestIssueTokenCarriesIdentityClaims(t *testing.T) {
	svc, _ := newAuthService(t)
	user := &domain.User{ID: "u1", Role: domain.RoleTrainer}

	signed, err := svc.IssueToken(user)
	require.NoError(t, err)

	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleTrainer, claims.Role)
	assert.Equal(t, "fit-fusion", claims.Issuer)
}
