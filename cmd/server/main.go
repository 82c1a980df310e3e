package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/janisto/hello-server/internal/http/health"
	"github.com/janisto/hello-server/internal/http/routes"
	"github.com/janisto/hello-server/internal/platform/config"
	applog "github.com/janisto/hello-server/internal/platform/logging"
	appmiddleware "github.com/janisto/hello-server/internal/platform/middleware"
	"github.com/janisto/hello-server/internal/platform/respond"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const docsPath = "/api-docs"

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.LogError(context.Background(), "config error", err)
		os.Exit(1)
	}
	if err := applog.Configure(cfg.Debug); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}
	defer func() {
		// Syncing stdout fails with EINVAL on some platforms; nothing to do about it.
		_ = applog.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, nil); err != nil {
		applog.LogError(context.Background(), "server error", err, zap.String("addr", cfg.Addr()))
		stop()
		_ = applog.Sync()
		os.Exit(1)
	}
	applog.LogInfo(context.Background(), "server exited")
}

// newRouter assembles the middleware stack, the huma API and the plain routes.
func newRouter(cfg config.Config) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	var recovererOpts []respond.RecovererOption
	if cfg.Debug {
		recovererOpts = append(recovererOpts, respond.WithPanicDetail())
	}

	router.Use(
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For; only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20),
		chimiddleware.GetHead,
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(recovererOpts...),
	)

	router.Get("/health", health.Handler(Version))

	humaCfg := huma.DefaultConfig("Greeting Server", Version)
	humaCfg.DocsPath = docsPath
	api := humachi.New(router, humaCfg)
	routes.Register(api)

	return router
}

func newServer(cfg config.Config) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}

// run serves until ctx is cancelled, then shuts down within cfg.ShutdownTimeout.
// A nil listener means listen on cfg.Addr().
func run(ctx context.Context, cfg config.Config, ln net.Listener) error {
	srv := newServer(cfg)
	if ln == nil {
		var err error
		ln, err = net.Listen("tcp", srv.Addr)
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
	}

	if cfg.Debug {
		applog.LogWarn(ctx, "debug mode enabled; this is a development server, do not use it in production")
	}
	applog.LogInfo(ctx, "server listening", zap.String("addr", ln.Addr().String()), zap.Bool("debug", cfg.Debug))

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		applog.LogInfo(context.Background(), "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-serveErr
}
