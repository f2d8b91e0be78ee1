package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/hazyhaar/bulletin"
	"github.com/hazyhaar/bulletin/dbopen"
	"github.com/hazyhaar/bulletin/internal/store"
)

var serveConfigPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP analytics service",
	Long: `Starts the bulletin HTTP service.

Environment:
  PORT           listen port (default 8086)
  BASE_URL       report portal endpoint
  DB_PATH        run-archive SQLite path (empty disables archiving)
  AUTH_PASSWORD  when set, requests require HTTP basic auth
  LOG_LEVEL      debug | info | warn | error`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "YAML config file")
}

func runServe(cmd *cobra.Command, _ []string) error {
	logger := newLogger(env("LOG_LEVEL", "info"))
	slog.SetDefault(logger)

	cfg, err := loadServeConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var opts []bulletin.Option
	if cfg.DBPath != "" {
		db, err := dbopen.Open(cfg.DBPath, dbopen.WithMkdirAll(), dbopen.WithSchema(store.Schema))
		if err != nil {
			return err
		}
		defer db.Close()
		opts = append(opts, bulletin.WithStore(store.New(db)))
		logger.Info("run archive enabled", "path", cfg.DBPath)
	}

	svc := bulletin.New(cfg, logger, opts...)

	r := chi.NewRouter()
	if password := os.Getenv("AUTH_PASSWORD"); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		r.Use(basicAuth(hash))
		logger.Info("basic auth enabled")
	}
	r.Mount("/", svc.Routes())

	addr := ":" + env("PORT", "8086")
	server := &http.Server{
		Addr:    addr,
		Handler: r,
		// Scans run for minutes at a 1s delay; no write timeout.
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("bulletin service listening", "addr", addr, "portal", cfg.Fetch.BaseURL)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func loadServeConfig() (*bulletin.Config, error) {
	var cfg *bulletin.Config
	if serveConfigPath != "" {
		loaded, err := bulletin.LoadConfig(serveConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &bulletin.Config{}
	}
	if v := os.Getenv("BASE_URL"); v != "" {
		cfg.Fetch.BaseURL = v
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	return cfg, nil
}

// basicAuth guards every route with a bcrypt-checked password. The
// username is ignored; the portal scanner is a single-operator tool.
func basicAuth(hash []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, password, ok := r.BasicAuth()
			if !ok || bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="bulletin"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
