package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"nodework/internal/config"
	"nodework/internal/editor"
	"nodework/internal/handler"
	"nodework/internal/hub"
	"nodework/internal/logging"
	"nodework/internal/observability"
	"nodework/internal/repository/sqlite"
	"nodework/internal/service"
	"nodework/internal/watcher"
)

func serveCmd() *cobra.Command {
	var addr, dbPath, watchPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}
			return serve(cmd.Context(), cfg, path, watchPath)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address (overrides config)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	cmd.Flags().StringVar(&watchPath, "watch", "", "YAML graph file to import now and on every change")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config, configFile, watchPath string) error {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if configFile == "" {
		configFile = "(defaults)"
	}
	logger.Info("starting nodework",
		zap.String("version", version),
		zap.String("config", configFile),
		zap.String("addr", cfg.Server.Addr))

	lib, err := cfg.BuildLibrary()
	if err != nil {
		return err
	}

	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()
	logger.Info("database opened", zap.String("path", cfg.Database.Path))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewCollector("nodework")

	eventBus := service.NewEventBus()
	eventBus.OnDrop(metrics.EventsDropped.Inc)

	sseHub := hub.New(logger.Named("hub"), metrics)
	go sseHub.Run(ctx)

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(string(event.Type), event.Payload)
			case <-ctx.Done():
				return
			}
		}
	}()

	model := editor.New(lib, cfg.Window(), cfg.Limits(), logger.Named("editor"))
	svc := service.NewEditorService(model, repo, eventBus, metrics, logger.Named("service"), service.Options{
		Key:      cfg.Storage.Key,
		Autosave: cfg.Storage.Autosave,
	})
	if _, err := svc.Load(ctx); err != nil {
		logger.Warn("could not restore saved editor state, starting empty", zap.Error(err))
	}

	if watchPath != "" {
		importFile(ctx, svc, watchPath, logger)
		w := watcher.New(watchPath, func(path string) {
			importFile(ctx, svc, path, logger)
		}, logger.Named("watcher"))
		go func() {
			if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("file watcher stopped", zap.Error(err))
			}
		}()
	}

	router := handler.NewRouter(handler.RouterConfig{
		Editor:         handler.NewEditorHandler(svc, logger.Named("http")),
		Events:         sseHub,
		Metrics:        metrics,
		Logger:         logger.Named("http"),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// no write timeout: /events streams indefinitely
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	if cfg.Storage.Autosave {
		if err := svc.Save(shutdownCtx); err != nil {
			logger.Error("final save failed", zap.Error(err))
		}
	}

	logger.Info("server stopped")
	return nil
}

func importFile(ctx context.Context, svc *service.EditorService, path string, logger *zap.Logger) {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("failed to open graph file", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()

	state, err := svc.ImportYAML(ctx, f)
	if err != nil {
		logger.Error("failed to import graph file", zap.String("path", path), zap.Error(err))
		return
	}
	model := svc.Model()
	logger.Info("graph imported",
		zap.String("path", path),
		zap.Int("nodes", len(model.Graph.Nodes)),
		zap.Strings("rejected", state.Rejected))
}
