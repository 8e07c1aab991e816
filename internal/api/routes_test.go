package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/authz"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository/memory"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/service"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/session"
)

const testJWTSecret = "routes-test-secret"

// newTestRouter builds the full route tree over in-memory storage.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	workouts := memory.NewWorkoutRepository(store)
	plans := memory.NewPlanRepository(store)
	groups := memory.NewGroupRepository(store)
	progress := memory.NewProgressRepository(store)
	invites := memory.NewInviteRepository(store)

	authService := service.NewAuthService(users, service.BcryptVerifier{}, testJWTSecret, time.Hour)
	trainerService := service.NewTrainerService(users, workouts, plans, groups, invites, progress)
	traineeService := service.NewTraineeService(users, workouts, plans, groups, progress, invites)

	sessions := session.NewStore(authService, session.NewMemorySlot())
	sessions.Restore(context.Background())

	router := gin.New()
	SetupRoutes(router, testJWTSecret, sessions, authService, trainerService, traineeService)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token and user id.
func register(t *testing.T, router *gin.Engine, email, role string) (token, userID string) {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func TestPing(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	// Short password.
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "X", "email": "x@example.com", "password": "short", "role": "trainee",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown role.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "X", "email": "x@example.com", "password": "password123", "role": "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "dana@example.com", "trainer")

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Dupe", "email": "DANA@example.com", "password": "password123", "role": "trainee",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLoginFlow(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "dana@example.com", "trainer")

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "dana@example.com", "password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "dana@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/v1/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The 401 payload points anonymous callers at the login path.
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, authz.LoginPath, resp["redirect"])

	w = doJSON(t, router, http.MethodGet, "/api/v1/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleSeparation(t *testing.T) {
	router := newTestRouter(t)
	trainerToken, _ := register(t, router, "coach@example.com", "trainer")
	traineeToken, _ := register(t, router, "athlete@example.com", "trainee")

	// A trainee on a trainer route is denied, not redirected.
	w := doJSON(t, router, http.MethodGet, "/api/v1/trainer/dashboard", traineeToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "does not have permission")

	w = doJSON(t, router, http.MethodGet, "/api/v1/trainee/dashboard", trainerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Matching roles pass through.
	w = doJSON(t, router, http.MethodGet, "/api/v1/trainer/dashboard", trainerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, router, http.MethodGet, "/api/v1/trainee/dashboard", traineeToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNavMenuPerRole(t *testing.T) {
	router := newTestRouter(t)
	trainerToken, _ := register(t, router, "coach@example.com", "trainer")
	traineeToken, _ := register(t, router, "athlete@example.com", "trainee")

	w := doJSON(t, router, http.MethodGet, "/api/v1/nav", trainerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var trainerNav []authz.NavItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &trainerNav))
	assert.Len(t, trainerNav, 5)

	w = doJSON(t, router, http.MethodGet, "/api/v1/nav", traineeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var traineeNav []authz.NavItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &traineeNav))
	assert.Len(t, traineeNav, 4)
}

func TestWorkoutPlanCompletionFlow(t *testing.T) {
	router := newTestRouter(t)
	trainerToken, trainerID := register(t, router, "coach@example.com", "trainer")
	traineeToken, traineeID := register(t, router, "athlete@example.com", "trainee")

	// Trainer creates a workout.
	w := doJSON(t, router, http.MethodPost, "/api/v1/trainer/workouts", trainerToken, gin.H{
		"name":       "Intervals",
		"duration":   30,
		"difficulty": "beginner",
		"exercises": []gin.H{
			{"name": "Sprints", "type": "cardio", "duration": 10},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var workout struct {
		ID        string `json:"id"`
		CreatedBy string `json:"createdBy"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &workout))
	assert.Equal(t, trainerID, workout.CreatedBy)

	// Trainer assigns it to the trainee in a plan.
	scheduled := time.Now().Add(48 * time.Hour).Format(time.RFC3339)
	w = doJSON(t, router, http.MethodPost, "/api/v1/trainer/plans", trainerToken, gin.H{
		"name":      "Spring Block",
		"trainees":  []string{traineeID},
		"startDate": time.Now().Format(time.RFC3339),
		"workouts": []gin.H{
			{"workoutId": workout.ID, "scheduledDate": scheduled},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var plan struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))

	// Trainee sees it upcoming on the dashboard.
	w = doJSON(t, router, http.MethodGet, "/api/v1/trainee/dashboard", traineeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Intervals")

	// The schedule page carries the upcoming list and the week grid.
	w = doJSON(t, router, http.MethodGet, "/api/v1/trainee/schedule", traineeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Intervals")
	assert.Contains(t, w.Body.String(), `"week"`)

	// Trainee completes the scheduled workout.
	completeURL := fmt.Sprintf("/api/v1/trainee/plans/%s/workouts/%s/complete", plan.ID, workout.ID)
	w = doJSON(t, router, http.MethodPost, completeURL, traineeToken, gin.H{
		"duration":       35,
		"caloriesBurned": 280,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// A second completion is a conflict.
	w = doJSON(t, router, http.MethodPost, completeURL, traineeToken, gin.H{"duration": 35})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The progress record shows up in the trainee's history.
	w = doJSON(t, router, http.MethodGet, "/api/v1/trainee/progress", traineeToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), plan.ID)

	// And on the trainer's dashboard activity feed, with the plan's
	// roster size summarized.
	w = doJSON(t, router, http.MethodGet, "/api/v1/trainer/dashboard", trainerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), traineeID)
	assert.Contains(t, w.Body.String(), `"traineeCount":1`)
}

func TestInviteFlow(t *testing.T) {
	router := newTestRouter(t)
	trainerToken, _ := register(t, router, "coach@example.com", "trainer")
	traineeToken, _ := register(t, router, "athlete@example.com", "trainee")

	// Trainer creates a group and invites the trainee by email.
	w := doJSON(t, router, http.MethodPost, "/api/v1/trainer/groups", trainerToken, gin.H{
		"name": "Morning Crew",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var group struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &group))

	w = doJSON(t, router, http.MethodPost, "/api/v1/trainer/invites", trainerToken, gin.H{
		"email":   "Athlete@Example.com",
		"groupId": group.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var invite struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &invite))

	// Trainee accepts and lands in the group.
	w = doJSON(t, router, http.MethodPost, "/api/v1/invites/"+invite.ID+"/accept", traineeToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/trainer/groups", trainerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Morning Crew")

	// Answering again is a conflict.
	w = doJSON(t, router, http.MethodPost, "/api/v1/invites/"+invite.ID+"/reject", traineeToken, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogout(t *testing.T) {
	router := newTestRouter(t)
	register(t, router, "dana@example.com", "trainer")

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	// Idempotent.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
