package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidRole          = errors.New("role must be trainer or trainee")
)

// CredentialVerifier is the authentication collaborator of the core: it
// answers whether a password matches a stored user. The core trusts its
// answer and owns no credential format beyond the stored hash.
type CredentialVerifier interface {
	VerifyCredentials(user *domain.User, password string) bool
}

// BcryptVerifier is the default CredentialVerifier, comparing against
// the bcrypt hash stored at registration.
type BcryptVerifier struct{}

func (BcryptVerifier) VerifyCredentials(user *domain.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

// --- Service Interface ---
type AuthService interface {
	Register(ctx context.Context, email, name string, role domain.Role, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	IssueToken(user *domain.User) (string, error)
	GetJWTSecret() string
}

// --- Service Implementation ---

// authService implements the AuthService interface.
type authService struct {
	userRepo      repository.UserRepository
	verifier      CredentialVerifier
	jwtSecret     string
	jwtExpiration time.Duration
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, verifier CredentialVerifier, jwtSecret string, jwtExpiration time.Duration) AuthService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = time.Hour * 1
	}
	if verifier == nil {
		verifier = BcryptVerifier{}
	}
	return &authService{
		userRepo:      userRepo,
		verifier:      verifier,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
	}
}

// Register handles new user registration. The email uniqueness check is
// case-insensitive; the role is fixed at creation.
func (s *authService) Register(ctx context.Context, email, name string, role domain.Role, password string) (*domain.User, error) {
	if email == "" || name == "" || password == "" {
		return nil, errors.New("email, name, and password cannot be empty")
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, ErrUserAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        domain.NormalizeEmail(email),
		Name:         name,
		PasswordHash: string(hashedPassword),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index closes the race between the GetByEmail check
		// and the insert.
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// Login handles user authentication. Credential verification is
// delegated to the verifier; a missing user and a wrong password map to
// the same error so the response never reveals whether the email exists.
func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password cannot be empty")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if !s.verifier.VerifyCredentials(user, password) {
		return nil, ErrAuthenticationFailed
	}

	user.PasswordHash = ""
	return user, nil
}

// --- JWT Helper ---

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string      `json:"uid"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken creates a new JWT token for the given user.
func (s *authService) IssueToken(user *domain.User) (string, error) {
	expirationTime := time.Now().Add(s.jwtExpiration)
	claims := &jwtClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "fit-fusion",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", ErrTokenGeneration
	}
	return signedToken, nil
}

// GetJWTSecret returns the JWT secret for middleware authentication
func (s *authService) GetJWTSecret() string {
	return s.jwtSecret
}
