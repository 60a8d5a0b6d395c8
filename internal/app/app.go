package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/heartmarshall/wordcount-backend/internal/config"
	"github.com/heartmarshall/wordcount-backend/internal/service/wordcount"
	"github.com/heartmarshall/wordcount-backend/internal/transport/rest"
)

const readHeaderTimeout = 10 * time.Second

// Run is the application entry point. It loads configuration, builds the
// dictionary client stack and the word count service, and serves HTTP until
// ctx is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("provider", cfg.Dictionary.Provider),
		slog.String("cache", cfg.Cache.Backend),
	)

	dict, err := NewDictionary(ctx, cfg.Dictionary, cfg.Cache, logger)
	if err != nil {
		return fmt.Errorf("dictionary: %w", err)
	}
	defer func() {
		if err := dict.Close(); err != nil {
			logger.Error("close dictionary", slog.String("error", err.Error()))
		}
	}()

	srv := newHTTPServer(cfg, NewHandler(cfg, dict, logger))

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// NewHandler wires the word count service and the health checks into the
// HTTP router.
func NewHandler(cfg *config.Config, dict *Dictionary, logger *slog.Logger) http.Handler {
	svc := wordcount.NewService(logger, dict.Client, wordcount.Config{
		MaxLimit:      cfg.WordCount.MaxLimit,
		MaxConcurrent: cfg.Dictionary.MaxConcurrent,
	})

	wc := rest.NewWordCountHandler(svc, logger, rest.WordCountOptions{
		DefaultLimit:   cfg.WordCount.DefaultLimit,
		MaxUploadBytes: cfg.WordCount.MaxUploadBytes,
		RequestTimeout: cfg.WordCount.RequestTimeout,
	})
	health := rest.NewHealthHandler(dict.Checks, dict.Client.Name(), BuildVersion())

	return rest.NewRouter(wc, health, cfg.CORS, logger)
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}
