package main

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tc2000/fantasy/authenticator"
	"github.com/tc2000/fantasy/controllers"
	"github.com/tc2000/fantasy/database"
	authmiddleware "github.com/tc2000/fantasy/middleware"
	"github.com/tc2000/fantasy/models"
	"github.com/tc2000/fantasy/repositories"
	"github.com/tc2000/fantasy/services"
	"github.com/tc2000/fantasy/stream"
)

func main() {
	// Load environment variables from .env file, if present
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment")
	}

	if os.Getenv("DEBUG") == "true" {
		log.SetLevel(log.DebugLevel)
	}

	// Initialize database
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "tc2000_fantasy.db"
	}
	if err := database.InitializeDatabase(dbPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	db := database.GetDB()

	// Bootstrap the admin account and initial championship data on first run
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "admin"
		log.Warn("ADMIN_PASSWORD not set, seeding admin with the default password")
	}
	if err := database.Seed(db, adminPassword); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Initialize the live feed bus and route warning-and-above log entries
	// onto it as server notifications
	bus := stream.NewBus(envInt("FEED_QUEUE_SIZE", stream.DefaultQueueSize), envDuration("FEED_HEARTBEAT", stream.DefaultHeartbeat))
	log.AddHook(stream.NewLogHook(bus))

	// Initialize the token manager
	tokens, err := authenticator.NewTokenManager(os.Getenv("SECRET_KEY"), envDuration("TOKEN_TTL", 8*time.Hour))
	if err != nil {
		log.Fatalf("Failed to initialize token manager: %v", err)
	}

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize the audit-plus-notification emitter
	notifier := stream.NewNotifier(bus, repos.Audit)

	// Initialize services
	srvs := services.NewServices(repos, tokens, notifier)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, bus)

	// Set up router
	r := setupRouter(ctrl, tokens)

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.WithFields(log.Fields{
		"port":     port,
		"database": dbPath,
	}).Info("TC2000 Fantasy starting")

	log.Fatal(http.ListenAndServe(":"+port, r))
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, tokens *authenticator.TokenManager) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(authmiddleware.ClientIP)

	// LIVE FEED ROUTES. Mounted outside the timeout group: both connections
	// stay open until the client disconnects.
	r.Get("/sse", ctrl.Stream.SSE)
	r.Get("/ws", ctrl.Stream.WS)

	// API ROUTES
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		// PUBLIC ROUTES (no authentication required)
		r.Post("/register", ctrl.Auth.Register)
		r.Post("/login", ctrl.Auth.Login)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, `{"status": "healthy", "service": "tc2000-fantasy"}`)
		})

		r.Get("/teams", ctrl.Team.Index)
		r.Get("/pilots", ctrl.Pilot.Index)
		r.Get("/circuits", ctrl.Event.Circuits)
		r.Get("/events", ctrl.Event.Index)

		// ADMIN ROUTES (admin token required)
		r.Group(func(r chi.Router) {
			r.Use(authmiddleware.RequireAuth(tokens, models.RoleAdmin))

			r.Post("/teams", ctrl.Team.Create)
			r.Put("/teams/{id}", ctrl.Team.Update)
			r.Delete("/teams/{id}", ctrl.Team.Delete)

			r.Post("/pilots", ctrl.Pilot.Create)
			r.Put("/pilots/{id}", ctrl.Pilot.Update)
			r.Delete("/pilots/{id}", ctrl.Pilot.Delete)

			r.Post("/circuits", ctrl.Event.CreateCircuit)

			r.Post("/events", ctrl.Event.Create)
			r.Put("/events/{id}", ctrl.Event.Update)
		})
	})

	return r
}

// envInt reads an integer environment variable, falling back on absence or
// a malformed value
func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.WithField("key", key).Warnf("Ignoring malformed value %q", raw)
		return fallback
	}
	return n
}

// envDuration reads a duration environment variable (e.g. "30s", "8h")
func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.WithField("key", key).Warnf("Ignoring malformed value %q", raw)
		return fallback
	}
	return d
}
