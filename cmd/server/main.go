package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/devisriprasad58/fit-fusion-progress-track/internal/api"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/config"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/repository/memory"
	mongorepo "github.com/devisriprasad58/fit-fusion-progress-track/internal/repository/mongo"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/service"
	"github.com/devisriprasad58/fit-fusion-progress-track/internal/session"
)

type repositories struct {
	users    repository.UserRepository
	workouts repository.WorkoutRepository
	plans    repository.PlanRepository
	groups   repository.GroupRepository
	progress repository.ProgressRepository
	invites  repository.InviteRepository
}

func main() {
	log.Println("Starting Fit Fusion server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Repositories ---
	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("FATAL: Could not initialize storage: %v", err)
	}
	defer cleanup()

	// --- Session Slot ---
	slot := buildSessionSlot(cfg)

	// --- Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(repos.users, service.BcryptVerifier{}, cfg.JWT.Secret, cfg.JWT.Expiration)
	trainerService := service.NewTrainerService(repos.users, repos.workouts, repos.plans, repos.groups, repos.invites, repos.progress)
	traineeService := service.NewTraineeService(repos.users, repos.workouts, repos.plans, repos.groups, repos.progress, repos.invites)

	// --- Session Store ---
	sessions := session.NewStore(authService, slot)
	if user := sessions.Restore(context.Background()); user != nil {
		log.Printf("Restored session for %s", user.Email)
	}

	// --- Router ---
	router := gin.Default() // Includes Logger and Recovery middleware
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, sessions, authService, trainerService, traineeService)

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

// buildRepositories wires the configured persistence backend.
func buildRepositories(cfg config.Config) (repositories, func(), error) {
	if cfg.Database.Backend == "memory" {
		log.Println("Using in-memory storage backend.")
		store := memory.NewStore()
		return repositories{
			users:    memory.NewUserRepository(store),
			workouts: memory.NewWorkoutRepository(store),
			plans:    memory.NewPlanRepository(store),
			groups:   memory.NewGroupRepository(store),
			progress: memory.NewProgressRepository(store),
			invites:  memory.NewInviteRepository(store),
		}, func() {}, nil
	}

	dbClient, err := mongorepo.ConnectDB(cfg.Database.URI)
	if err != nil {
		return repositories{}, nil, err
	}
	cleanup := func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongorepo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// Index creation runs in the background; a slow index build should
	// not hold up startup.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongorepo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongorepo.EnsureWorkoutIndexes(ctx, appDB.Collection("workouts"))
		mongorepo.EnsurePlanIndexes(ctx, appDB.Collection("workout_plans"))
		mongorepo.EnsureGroupIndexes(ctx, appDB.Collection("trainee_groups"))
		mongorepo.EnsureProgressIndexes(ctx, appDB.Collection("workout_progress"))
		mongorepo.EnsureInviteIndexes(ctx, appDB.Collection("invites"))
		log.Println("Index creation process completed.")
	}()

	return repositories{
		users:    mongorepo.NewMongoUserRepository(appDB),
		workouts: mongorepo.NewMongoWorkoutRepository(appDB),
		plans:    mongorepo.NewMongoPlanRepository(appDB),
		groups:   mongorepo.NewMongoGroupRepository(appDB),
		progress: mongorepo.NewMongoProgressRepository(appDB),
		invites:  mongorepo.NewMongoInviteRepository(appDB),
	}, cleanup, nil
}

// buildSessionSlot wires the configured durable session slot backend.
func buildSessionSlot(cfg config.Config) session.Slot {
	switch cfg.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Session.RedisAddr})
		log.Printf("Session slot backed by redis at %s", cfg.Session.RedisAddr)
		return session.NewRedisSlot(client)
	case "memory":
		log.Println("Session slot held in memory (will not survive restarts).")
		return session.NewMemorySlot()
	default:
		log.Printf("Session slot backed by file %s", cfg.Session.FilePath)
		return session.NewFileSlot(cfg.Session.FilePath)
	}
}
