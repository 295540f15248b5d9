package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter wires the HTTP API on top of the game service.
func NewRouter(logger *slog.Logger, gameService gameService) chi.Router {
	log := logger.With("component", "rest")
	gameHandlers := NewHandlers(log, gameService)

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(chimw.Timeout(10 * time.Second))
	router.Use(requestLogger(log))

	router.Get("/ping", NewPingHandler().PingHandler)

	router.Route("/games", func(r chi.Router) {
		r.Post("/", gameHandlers.CreateGame)
		r.Get("/{id}", gameHandlers.GetGame)
		r.Delete("/{id}", gameHandlers.DeleteGame)
		r.Get("/{id}/moves", gameHandlers.AvailableMoves)
		r.Post("/{id}/moves", gameHandlers.MakeMove)
	})

	return router
}

// Start serves handler until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		return nil
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Debug("request served",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"requestID", chimw.GetReqID(r.Context()),
			)
		})
	}
}
