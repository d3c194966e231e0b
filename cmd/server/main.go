package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"symptalyze/internal/auth"
	"symptalyze/internal/db"
	"symptalyze/internal/handlers"
	mw "symptalyze/internal/middleware"
	"symptalyze/internal/storage"
)

func mustGetenv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}

	port := mustGetenv("PORT", "8080")

	var store storage.Store
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		dbConn, err := sqlx.Open("pgx", databaseURL)
		if err != nil {
			slog.Error("failed to open db", slog.Any("err", err))
			os.Exit(1)
		}
		dbConn.SetMaxOpenConns(10)
		dbConn.SetConnMaxLifetime(2 * time.Hour)
		if err = dbConn.Ping(); err != nil {
			slog.Error("failed to ping db", slog.Any("err", err))
			os.Exit(1)
		}
		if err := db.RunMigrations(dbConn); err != nil {
			slog.Error("failed migrations", slog.Any("err", err))
			os.Exit(1)
		}
		store = storage.NewPostgresStore(dbConn)
	} else {
		slog.Warn("DATABASE_URL not set; using in-memory storage, state will not survive restarts")
		store = storage.NewMemoryStore()
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		slog.Error("failed to build request logger", slog.Any("err", err))
		os.Exit(1)
	}
	defer zapLogger.Sync()

	adapter := storage.NewAdapter(store, logger)
	manager := auth.NewManager(context.Background(), adapter, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(mw.ZapRequestLogger(zapLogger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := handlers.NewAuthHandler(manager, []byte(jwtSecret))
	userHandler := handlers.NewUserHandler(manager)
	entriesHandler := handlers.NewEntriesHandler(adapter)
	medicationsHandler := handlers.NewMedicationsHandler(adapter)
	dashboardHandler := handlers.NewDashboardHandler(adapter)
	importHandler := handlers.NewImportHandler(adapter)
	authMW := mw.NewAuthMiddleware([]byte(jwtSecret))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", authHandler.Signup)
		api.Post("/auth/login", authHandler.Login)
		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Post("/auth/logout", authHandler.Logout)
			pr.Get("/users/me", userHandler.GetMe)
			pr.Post("/entries", entriesHandler.Add)
			pr.Get("/entries", entriesHandler.List)
			pr.Get("/medications", medicationsHandler.List)
			pr.Post("/medications", medicationsHandler.Add)
			pr.Post("/medications/{id}/toggle", medicationsHandler.ToggleTaken)
			pr.Delete("/medications/{id}", medicationsHandler.Remove)
			pr.Get("/dashboard", dashboardHandler.Get)
			pr.Post("/import", importHandler.ImportData)
		})
	})

	srv := &http.Server{Addr: ":" + port, Handler: r}
	go func() {
		slog.Info("server starting", slog.String("addr", ":"+port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.Any("err", err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutdown initiated")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	slog.Info("server stopped")
}
