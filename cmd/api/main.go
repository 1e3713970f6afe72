package main

import (
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adboard/adboard/internal/auth"
	"github.com/adboard/adboard/internal/config"
	"github.com/adboard/adboard/internal/db"
	"github.com/adboard/adboard/internal/handlers"
	"github.com/adboard/adboard/internal/middleware"
	"github.com/adboard/adboard/internal/repo"
)

// newRouter builds the full handler chain. Kept separate from main so
// integration tests can run the real router against a mocked DB.
func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.JWTExpireMinutes)*time.Minute)

	authHandler := &handlers.AuthHandler{
		Users:  repo.NewUserRepo(database),
		Hasher: hasher,
		Tokens: tokens,
	}
	adHandler := &handlers.AdHandler{Repo: repo.NewAdRepo(database)}
	userHandler := &handlers.UserHandler{Repo: repo.NewUserRepo(database)}

	hsts := cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(hsts))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		if err := database.PingContext(r.Context()); err != nil {
			handlers.JSONError(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Method("GET", "/metrics", promhttp.Handler())

	// Credential endpoints: rate limited per IP, small bodies only.
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Post("/register", authHandler.Register)
		r.Post("/token", authHandler.Token)
	})

	// Token-gated resources.
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(tokens))
		r.Get("/ads/{ad_id}", adHandler.GetAd)
		r.Get("/users/me", userHandler.Me)
	})

	return r
}

func setupLogger(format string) {
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	} else {
		handler = slog.NewTextHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	setupLogger(cfg.LogFormat)

	database, err := db.Connect(
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBName,
		cfg.DBUser,
		cfg.DBPass,
	)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	database.SetMaxOpenConns(cfg.DBMaxOpenConns)
	database.SetMaxIdleConns(cfg.DBMaxIdleConns)

	if err := db.Run(cfg.DatabaseURL()); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	slog.Info("starting api", "port", cfg.Port, "env", cfg.Env)

	r := newRouter(database, cfg)
	addr := ":" + cfg.Port
	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		err = http.ListenAndServeTLS(addr, cfg.TLSCertFile, cfg.TLSKeyFile, r)
	} else {
		err = http.ListenAndServe(addr, r)
	}
	if err != nil {
		log.Fatal(err)
	}
}
