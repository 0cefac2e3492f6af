package main

import (
	"log"
	"net/http"
	"os"

	"github.com/cogniplay/backend/internal/analytics"
	"github.com/cogniplay/backend/internal/auth"
	"github.com/cogniplay/backend/internal/database"
	"github.com/cogniplay/backend/internal/difficulty"
	"github.com/cogniplay/backend/internal/exercises"
	"github.com/cogniplay/backend/internal/generator"
	"github.com/cogniplay/backend/internal/middleware"
	"github.com/cogniplay/backend/internal/scenarios"
	"github.com/cogniplay/backend/internal/training"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment")
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Generation service for scenarios, logic exercises, and semantic grading
	gen := generator.NewGenerator()
	log.Printf("Generator using model %s", gen.ModelName())

	// Core engines
	difficultyEngine := difficulty.NewEngine(difficulty.NewStore(db))
	validator := exercises.NewValidator(gen)
	exerciseService := exercises.NewService(exercises.NewStore(db), gen, difficultyEngine, validator)
	scenarioEngine := scenarios.NewEngine(gen, scenarios.NewStore(db), difficultyEngine)
	trainingService := training.NewService(training.NewStore(db), difficultyEngine)
	analyticsService := analytics.NewService(analytics.NewStore(db), difficultyEngine)

	// Handlers
	authHandler := auth.NewHandler(db)
	difficultyHandler := difficulty.NewHandler(difficultyEngine)
	exerciseHandler := exercises.NewHandler(exerciseService)
	scenarioHandler := scenarios.NewHandler(scenarioEngine)
	trainingHandler := training.NewHandler(trainingService)
	analyticsHandler := analytics.NewHandler(analyticsService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	protected.HandleFunc("/difficulty/level", difficultyHandler.SetLevel).Methods("PUT")
	protected.HandleFunc("/difficulty/progress", difficultyHandler.Progress).Methods("GET")

	protected.HandleFunc("/exercises/generate", exerciseHandler.Generate).Methods("POST")
	protected.HandleFunc("/exercises/submit", exerciseHandler.Submit).Methods("POST")

	protected.HandleFunc("/scenarios", scenarioHandler.Create).Methods("POST")
	protected.HandleFunc("/scenarios/{id}", scenarioHandler.Get).Methods("GET")
	protected.HandleFunc("/scenarios/{id}/decision", scenarioHandler.Decide).Methods("POST")
	protected.HandleFunc("/scenarios/{id}/cancel", scenarioHandler.Cancel).Methods("POST")

	protected.HandleFunc("/sessions", trainingHandler.Start).Methods("POST")
	protected.HandleFunc("/sessions/{id}/complete", trainingHandler.Complete).Methods("POST")
	protected.HandleFunc("/sessions/{id}/cancel", trainingHandler.Cancel).Methods("POST")
	protected.HandleFunc("/sessions/{id}/progress", trainingHandler.Progress).Methods("GET")

	protected.HandleFunc("/analytics/report", analyticsHandler.Report).Methods("GET")
	protected.HandleFunc("/analytics/stats", analyticsHandler.QuickStats).Methods("GET")
	protected.HandleFunc("/analytics/recommendations", analyticsHandler.Recommendations).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
