package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/userdict/internal/adapter/filestore"
	"github.com/heartmarshall/userdict/internal/adapter/jtalk"
	"github.com/heartmarshall/userdict/internal/adapter/kagome"
	"github.com/heartmarshall/userdict/internal/config"
	"github.com/heartmarshall/userdict/internal/service/userdict"
)

// Components holds the wired dictionary stack shared by the server and the CLI.
type Components struct {
	Store   *filestore.Store
	Builder *jtalk.Builder
	Service *userdict.Service
	// Analyzer is nil for the exec backend.
	Analyzer *kagome.Analyzer
}

// Build wires storage, the analyzer backend, the dictionary builder and the
// service, and loads the persisted dictionary.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	c := &Components{Store: filestore.New(cfg.Dictionary.Path)}

	var compiler jtalk.Compiler
	switch cfg.Analyzer.Backend {
	case config.AnalyzerBackendExec:
		ec, err := jtalk.NewExecCompiler(cfg.Analyzer, logger)
		if err != nil {
			return nil, err
		}
		compiler = ec
	default:
		a, err := kagome.New(cfg.Analyzer.SystemDict, logger)
		if err != nil {
			return nil, fmt.Errorf("init analyzer: %w", err)
		}
		c.Analyzer = a
		compiler = a
	}

	c.Builder = jtalk.NewBuilder(cfg.Dictionary.WorkDir, compiler, logger)

	svc, err := userdict.Open(ctx, logger, c.Store, c.Builder)
	if err != nil {
		return nil, err
	}
	c.Service = svc

	return c, nil
}

// Run is the server entry point. It loads configuration, wires the
// dictionary stack, optionally applies the stored dictionary and serves
// HTTP until ctx is cancelled.
func Run(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("analyzer", cfg.Analyzer.Backend),
		slog.String("dictionary", cfg.Dictionary.Path),
	)

	c, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Dictionary.ApplyOnStart {
		if err := c.Service.ApplyJTalkDictionary(ctx); err != nil {
			return fmt.Errorf("apply dictionary on start: %w", err)
		}
	}

	handler, cleanup := NewRouter(c, cfg, logger)
	defer cleanup()

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
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
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
