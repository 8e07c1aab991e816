package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/domain"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/service"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/session"
)

// AuthHandler exposes login/register/logout over the session store.
type AuthHandler struct {
	sessions    *session.Store
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(sessions *session.Store, authService service.AuthService) *AuthHandler {
	return &AuthHandler{sessions: sessions, authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     domain.Role `json:"role" binding:"required,oneof=trainer trainee"`
}

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      domain.Role      `json:"role"`
	Location  *domain.Location `json:"location,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// --- Handler Methods ---

// Register creates a new user account and signs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.sessions.Register(c.Request.Context(), req.Email, req.Name, req.Role, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, session.ErrOperationInFlight):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrHashingFailed):
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Login authenticates a user and returns a JWT token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAuthenticationFailed):
			// Same message whether the email exists or not.
			abortWithError(c, http.StatusUnauthorized, err.Error())
		case errors.Is(err, session.ErrOperationInFlight):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	token, err := h.authService.IssueToken(user)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not process login")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token: token,
		User:  MapUserToResponse(user),
	})
}

// Logout clears the current identity and its durable slot. Idempotent.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Location:  user.Location,
		CreatedAt: user.CreatedAt,
	}
}
