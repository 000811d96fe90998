package rest

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/elatovg/gce-snapshots/internal/app"
	cerrors "github.com/elatovg/gce-snapshots/pkg/errors"
	"github.com/elatovg/gce-snapshots/pkg/logger"
	"github.com/elatovg/gce-snapshots/pkg/metrics"
	"github.com/elatovg/gce-snapshots/pkg/ports/rest/handlers"
	"github.com/elatovg/gce-snapshots/pkg/utils/validator"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

type standardHTTPServer struct {
	*http.Server
}

func (s *standardHTTPServer) ListenAndServe() error {
	return s.Server.ListenAndServe()
}

func (s *standardHTTPServer) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}

var NewHTTPServer = func(addr string, handler http.Handler) HTTPServer {
	return &standardHTTPServer{
		Server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NotifyContext is cancelled when the server should shut down.
var NotifyContext = func(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

type Server struct {
	snapshots *handlers.SnapshotHandler
}

func NewServer(appInstance app.AppRunner, v validator.Validator) *Server {
	return &Server{snapshots: handlers.NewSnapshotHandler(appInstance, v)}
}

// Router exposes the rotation endpoint, health and Prometheus metrics.
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshots", s.snapshots.HandleSnapshots)
	mux.HandleFunc("/healthz", handlers.HandleHealth)
	mux.Handle("/metrics", metrics.Handler())
	return mux
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start(port string) error {
	addr := ":" + port
	server := NewHTTPServer(addr, s.Router())

	ctx, stop := NotifyContext(context.Background())
	defer stop()

	logger.Log.Info("Starting HTTP server", zap.String("addr", addr))

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- cerrors.NewErrServerListen(addr, err)
		}
	}()

	select {
	case err := <-errChan:
		logger.Log.Error("HTTP server failed", zap.Error(err))
		return err
	case <-ctx.Done():
		logger.Log.Info("Received shutdown signal, stopping server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Server shutdown failed", zap.Error(err))
			return cerrors.NewErrServerShutdown(err)
		}

		logger.Log.Info("Server stopped successfully")
		return nil
	}
}
