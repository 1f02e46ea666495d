package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/config"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/engine"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/export"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/logging"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/server"
	"github.com/Lukearcnet/arc-social-visualization-sub000/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	source, closeSource, err := buildSource(ctx, cfg)
	if err != nil {
		logger.Error("failed to create export source", "kind", cfg.Source.Kind, "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeSource != nil {
			if err := closeSource(context.Background()); err != nil {
				logger.Warn("closing export source failed", "error", err)
			}
		}
	}()

	assembler := engine.NewAssembler(cfg.Source.Kind)
	communityService := service.NewCommunityService(source, assembler, logger)
	apiHandlers := server.NewAPIHandlers(logger, communityService)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.SourceHealthService{Source: source},
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

func buildSource(ctx context.Context, cfg config.Config) (export.Source, func(context.Context) error, error) {
	switch cfg.Source.Kind {
	case config.SourceReader:
		return export.NewHTTPSource(cfg.Reader.BaseURL, cfg.Reader.Secret, cfg.Reader.Timeout), nil, nil
	case config.SourceGraph:
		src, err := export.NewGraphSource(ctx, export.GraphOptions{
			URI:            cfg.Graph.URI,
			Database:       cfg.Graph.Database,
			Username:       cfg.Graph.Username,
			Password:       cfg.Graph.Password,
			MaxConnections: cfg.Graph.MaxConnections,
		})
		if err != nil {
			return nil, nil, err
		}
		return src, src.Close, nil
	case config.SourceFile:
		return export.NewFileSource(cfg.Source.File), nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
