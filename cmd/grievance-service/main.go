package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jansunwai/jansunwai-backend/internal/analysis"
	"github.com/jansunwai/jansunwai-backend/internal/auth"
	"github.com/jansunwai/jansunwai-backend/internal/auth/jwt"
	deptHandler "github.com/jansunwai/jansunwai-backend/internal/department/handler"
	deptRepository "github.com/jansunwai/jansunwai-backend/internal/department/repository"
	grievanceEvents "github.com/jansunwai/jansunwai-backend/internal/grievance/events"
	grievanceHandler "github.com/jansunwai/jansunwai-backend/internal/grievance/handler"
	grievanceRepository "github.com/jansunwai/jansunwai-backend/internal/grievance/repository"
	grievanceService "github.com/jansunwai/jansunwai-backend/internal/grievance/service"
	userEvents "github.com/jansunwai/jansunwai-backend/internal/user/events"
	userHandler "github.com/jansunwai/jansunwai-backend/internal/user/handler"
	userRepository "github.com/jansunwai/jansunwai-backend/internal/user/repository"
	userService "github.com/jansunwai/jansunwai-backend/internal/user/service"
	"github.com/jansunwai/jansunwai-backend/pkg/config"
	"github.com/jansunwai/jansunwai-backend/pkg/database"
	"github.com/jansunwai/jansunwai-backend/pkg/httputil"
	"github.com/jansunwai/jansunwai-backend/pkg/i18n"
	"github.com/jansunwai/jansunwai-backend/pkg/logger"
	"github.com/jansunwai/jansunwai-backend/pkg/messaging"
)

func main() {
	// Load configuration
	cfg, err := config.LoadWithValidation("grievance-service")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New("grievance-service", cfg.Server.Environment)
	log.Info().Msg("starting Grievance Service")

	// Connect to database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Apply schema and seed the department registry
	if err := db.Migrate(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}
	departmentRepo := deptRepository.NewDepartmentRepository(db)
	if err := departmentRepo.Seed(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("failed to seed departments")
	}

	// Connect to RabbitMQ
	rmq, err := messaging.New(&cfg.RabbitMQ, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
	}
	defer rmq.Close()

	// Initialize event publishers
	grievancePublisher, err := grievanceEvents.NewPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create grievance event publisher")
	}
	userPublisher, err := userEvents.NewPublisher(rmq, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create user event publisher")
	}

	// Initialize core services
	jwtManager := jwt.NewManager(&cfg.JWT)
	pipeline := analysis.NewPipeline(log.Logger)

	userRepo := userRepository.NewUserRepository(db)
	grievanceRepo := grievanceRepository.NewGrievanceRepository(db)

	userSvc := userService.NewUserService(userRepo, jwtManager, userPublisher, log.WithComponent("user"))
	grievanceSvc := grievanceService.NewGrievanceService(
		grievanceRepo, pipeline, grievancePublisher, cfg.Analysis.SimilarityCorpusLimit,
		log.WithComponent("grievance"))

	// Initialize handlers
	userH := userHandler.NewUserHandler(userSvc, log)
	grievanceH := grievanceHandler.NewGrievanceHandler(grievanceSvc, log)
	departmentH := deptHandler.NewDepartmentHandler(departmentRepo, log)

	authMw := auth.NewMiddleware(jwtManager)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			if origin == "http://localhost:3000" || origin == "http://localhost:5173" {
				return true
			}
			// Allow *.jansunwai.in for production
			if len(origin) > 13 && origin[len(origin)-13:] == ".jansunwai.in" {
				return true
			}
			if origin == "https://jansunwai.in" || origin == "http://jansunwai.in" {
				return true
			}
			return false
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "Accept-Language"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// i18n middleware - extract locale from Accept-Language header
	r.Use(i18n.Middleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   "healthy",
			"service":  "grievance-service",
			"database": db.Health(r.Context()),
			"rabbitmq": rmq.Health(),
		})
	})

	// Public endpoints
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", userH.Register)
		r.Post("/login", userH.Login)
		r.Post("/refresh", userH.Refresh)
	})

	r.Route("/api/v1/departments", func(r chi.Router) {
		r.Get("/", departmentH.List)
		r.Get("/{code}", departmentH.GetByCode)
	})

	// Authenticated endpoints
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(authMw.Authenticate)

		r.Route("/users/me", func(r chi.Router) {
			r.Get("/", userH.Me)
			r.Put("/", userH.UpdateMe)
		})

		r.Route("/grievances", func(r chi.Router) {
			r.Post("/", grievanceH.Submit)
			r.Get("/mine", grievanceH.ListMine)
			r.Get("/track/{trackingId}", grievanceH.Track)
			r.Post("/{id}/comments", grievanceH.AddComment)

			r.Group(func(r chi.Router) {
				r.Use(authMw.RequireAdmin)
				r.Put("/{id}/status", grievanceH.UpdateStatus)
				r.Put("/{id}/assign", grievanceH.Assign)
			})
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
