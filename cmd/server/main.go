package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/devconnect-app/backend/internal/config"
	"github.com/devconnect-app/backend/internal/database"
	"github.com/devconnect-app/backend/internal/handlers"
	"github.com/devconnect-app/backend/internal/jobs"
	"github.com/devconnect-app/backend/internal/repository"
	"github.com/devconnect-app/backend/internal/scheduler"
	"github.com/devconnect-app/backend/internal/services"
	"github.com/devconnect-app/backend/pkg/email"
	"github.com/devconnect-app/backend/pkg/logger"
	"github.com/devconnect-app/backend/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)

	indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := userRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	if err := connectionRepo.EnsureIndexes(indexCtx); err != nil {
		log.Fatalf("Failed to create connection indexes: %v", err)
	}

	// --- Mailer (optional) ---
	var mailer *email.Sender
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg.SMTPSender, cfg.SMTPPassword, cfg.SMTPHost, cfg.SMTPPort)
	}
	var notifier services.AcceptedNotifier
	if mailer != nil {
		notifier = mailer
	}

	// --- Services ---
	userService := services.NewUserService(userRepo)
	connectionService := services.NewConnectionService(connectionRepo, userRepo, notifier)
	feedService := services.NewFeedService(connectionRepo, userRepo)

	// --- Handlers ---
	userHandler := handlers.NewUserHandler(userService, cfg)
	connectionHandler := handlers.NewConnectionHandler(connectionService)
	feedHandler := handlers.NewFeedHandler(feedService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public auth routes
	router.HandleFunc("/signup", userHandler.SignupHandler).Methods("POST")
	router.HandleFunc("/login", userHandler.LoginHandler).Methods("POST")
	router.HandleFunc("/logout", userHandler.LogoutHandler).Methods("POST")

	// Profile routes
	profileRoutes := router.PathPrefix("/profile").Subrouter()
	profileRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	profileRoutes.HandleFunc("/view", userHandler.ViewProfileHandler).Methods("GET")
	profileRoutes.HandleFunc("/edit", userHandler.EditProfileHandler).Methods("PATCH")
	profileRoutes.HandleFunc("/password", userHandler.ChangePasswordHandler).Methods("PATCH")

	// Connection request routes
	requestRoutes := router.PathPrefix("/request").Subrouter()
	requestRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	requestRoutes.HandleFunc("/send/{status}/{toUserId}", connectionHandler.SendRequestHandler).Methods("POST")
	requestRoutes.HandleFunc("/review/{status}/{requestId}", connectionHandler.ReviewRequestHandler).Methods("POST")

	// User listing routes
	userRoutes := router.PathPrefix("/user").Subrouter()
	userRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	userRoutes.HandleFunc("/request/received", connectionHandler.ReceivedRequestsHandler).Methods("GET")
	userRoutes.HandleFunc("/request/connection", connectionHandler.ConnectionsHandler).Methods("GET")
	userRoutes.HandleFunc("/feed", feedHandler.FeedHandler).Methods("GET")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Daily reminder for pending requests
	if mailer != nil {
		reminder := jobs.NewRequestReminder(connectionRepo, userRepo, mailer)
		scheduler.StartReminderCron(reminder)
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
