package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shuvam021/fundoo-v3/internal/auth"
	"github.com/shuvam021/fundoo-v3/internal/cache"
	"github.com/shuvam021/fundoo-v3/internal/config"
	"github.com/shuvam021/fundoo-v3/internal/handler"
	"github.com/shuvam021/fundoo-v3/internal/jobs"
	"github.com/shuvam021/fundoo-v3/internal/mail"
	appmw "github.com/shuvam021/fundoo-v3/internal/middleware"
	"github.com/shuvam021/fundoo-v3/internal/repository"
	"github.com/shuvam021/fundoo-v3/internal/service"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	if err := repo.Bootstrap(context.Background()); err != nil {
		logger.Fatalf("Failed to bootstrap schema: %v", err)
	}
	tokens := auth.NewManager(cfg.JWTSecret)
	noteCache := cache.New(repo)
	sender := mail.NewSender(cfg, logger)
	svc := service.NewService(repo, repo, repo, noteCache, tokens, sender, logger)
	h := handler.NewHandler(svc, logger)

	background, err := jobs.New(cfg, noteCache, svc, logger)
	if err != nil {
		logger.Fatalf("Failed to set up background jobs: %v", err)
	}

	// Setup router
	r := mux.NewRouter()
	r.Use(appmw.RequestID(logger))
	r.Use(appmw.Authenticate(tokens, repo, logger))

	// Public routes
	r.HandleFunc("/api/register", h.Register).Methods("POST")
	r.HandleFunc("/api/login", h.Login).Methods("POST")
	r.HandleFunc("/api/token/refresh", h.Refresh).Methods("POST")
	r.HandleFunc("/api/verify/{token}", h.VerifyEmail).Methods("GET")
	r.HandleFunc("/api/forget-password", h.ForgetPassword).Methods("POST")
	r.HandleFunc("/api/update-password/{token}", h.UpdatePassword).Methods("PUT")

	// Authenticated routes
	userRouter := r.PathPrefix("/api").Subrouter()
	userRouter.Use(appmw.RequireUser())
	userRouter.HandleFunc("/send-verification", h.SendVerification).Methods("POST")
	userRouter.HandleFunc("/notes", h.ListNotes).Methods("GET")
	userRouter.HandleFunc("/notes", h.CreateNote).Methods("POST")
	userRouter.HandleFunc("/notes/export", h.ExportNotes).Methods("GET")
	userRouter.HandleFunc("/notes/{id}", h.GetNote).Methods("GET")
	userRouter.HandleFunc("/notes/{id}", h.UpdateNote).Methods("PUT")
	userRouter.HandleFunc("/notes/{id}", h.DeleteNote).Methods("DELETE")
	userRouter.HandleFunc("/labels", h.ListLabels).Methods("GET")
	userRouter.HandleFunc("/labels", h.CreateLabel).Methods("POST")
	userRouter.HandleFunc("/labels/{id}", h.GetLabel).Methods("GET")
	userRouter.HandleFunc("/labels/{id}", h.UpdateLabel).Methods("PUT")
	userRouter.HandleFunc("/labels/{id}", h.DeleteLabel).Methods("DELETE")

	// Admin routes
	adminRouter := r.PathPrefix("/api/users").Subrouter()
	adminRouter.Use(appmw.RequireAdmin())
	adminRouter.HandleFunc("", h.ListUsers).Methods("GET")
	adminRouter.HandleFunc("/{id}", h.GetUser).Methods("GET")

	// Liveness endpoint
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := repo.Ping(r.Context()); err != nil {
			handler.Respond(w, http.StatusServiceUnavailable, "store unreachable", nil)
			return
		}
		handler.Respond(w, http.StatusOK, "ok", nil)
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	background.Start()
	defer background.Stop()

	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}
