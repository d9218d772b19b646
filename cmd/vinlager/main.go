package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eivindmo/vinlager/internal/api"
	"github.com/eivindmo/vinlager/internal/db"
	"github.com/eivindmo/vinlager/internal/invite"
	"github.com/eivindmo/vinlager/internal/otp"
	"github.com/eivindmo/vinlager/internal/sms"
	"github.com/eivindmo/vinlager/internal/store"
	"github.com/eivindmo/vinlager/internal/web"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var cleanup func()

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

// smsSender builds the single configured SMS delivery path: the hosted
// gateway when its URL and API key are set, the log sender in dev mode,
// otherwise an explicit refusal when a code is requested.
func smsSender(dev bool) (sms.Sender, error) {
	gatewayURL := os.Getenv("VINLAGER_SMS_URL")
	gatewayKey := os.Getenv("VINLAGER_SMS_KEY")

	if gatewayURL != "" && gatewayKey != "" {
		slog.Info("sms gateway configured", "url", gatewayURL)
		return sms.NewGateway(gatewayURL, gatewayKey), nil
	}
	if dev {
		slog.Warn("sms gateway not configured, logging codes instead (dev mode)")
		return sms.LogSender{}, nil
	}
	return nil, fmt.Errorf("VINLAGER_SMS_URL and VINLAGER_SMS_KEY must be set (or run with -dev)")
}

func main() {
	fs := flag.NewFlagSet("vinlager", flag.ContinueOnError)

	var dbPath string
	fs.StringVar(&dbPath, "db", "vinlager.sqlite3", "")
	fs.StringVar(&dbPath, "d", "vinlager.sqlite3", "")

	var addr string
	fs.StringVar(&addr, "addr", ":8080", "")
	fs.StringVar(&addr, "a", ":8080", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	var dev bool
	fs.BoolVar(&dev, "dev", false, "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: vinlager [flags]

Flags:
  -d, -db <path>          SQLite database path (default: vinlager.sqlite3)
  -a, -addr <host:port>   listen address (default: :8080)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -dev                    log SMS codes instead of sending them
  -h, -help               show this help and exit

Environment:
  VINLAGER_SMS_URL        SMS gateway service URL
  VINLAGER_SMS_KEY        SMS gateway public API key
  VINLAGER_INVITE_URL     external send-invite endpoint (optional)
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	// Set up structured logging: INFO/WARN → stdout, ERROR → stderr.
	// Optionally also write to a log file.
	closeLog, err := setupLogger(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if closeLog != nil {
		defer closeLog()
	}

	// Open database, creating it on first run.
	database, err := db.Open(dbPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Ensure schema exists (idempotent).
	if err := db.EnsureSchema(database); err != nil {
		slog.Error("failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	slog.Info("database ready", "path", dbPath)

	// Load JWT secret from database (auto-generated on first run).
	jwtSecret, err := store.GetJWTSecret(context.Background(), database)
	if err != nil {
		slog.Error("failed to get JWT secret", "error", err)
		os.Exit(1)
	}

	// External services.
	sender, err := smsSender(dev)
	if err != nil {
		slog.Error("failed to configure sms delivery", "error", err)
		os.Exit(1)
	}
	otpService := &otp.Service{DB: database, Sender: sender}

	inviteURL := os.Getenv("VINLAGER_INVITE_URL")
	if inviteURL == "" {
		slog.Warn("invite endpoint not configured, invite requests will be refused")
	}
	invites := invite.New(inviteURL)

	// Set up routers.
	apiRouter := api.NewRouter(database, jwtSecret, otpService, invites)
	webRouter, err := web.NewRouter(database, jwtSecret, otpService, invites)
	if err != nil {
		slog.Error("failed to set up web router", "error", err)
		os.Exit(1)
	}

	// Combine: API routes take priority, web routes handle the rest.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)

	handler := api.LoggingMiddleware(mux)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}
