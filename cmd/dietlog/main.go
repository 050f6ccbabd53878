package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dukerupert/dietlog/internal/backup"
	"github.com/dukerupert/dietlog/internal/config"
	"github.com/dukerupert/dietlog/internal/database"
	"github.com/dukerupert/dietlog/internal/logging"
	"github.com/dukerupert/dietlog/internal/server"
	"github.com/dukerupert/dietlog/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.Database.Path, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if len(os.Args) > 1 && os.Args[1] == "restore" {
		mgr := backup.NewManager(backupConfig(cfg), db, store.NewBackupStore(db), nil, logger.With("component", "backup"))
		if err := runRestore(context.Background(), mgr, os.Args[2:], os.Stdout); err != nil {
			logger.Error("restore failed", "error", err)
			db.Close()
			os.Exit(1)
		}
		return
	}

	srv := server.New(db, server.Options{
		APIPrefix:    cfg.HTTP.APIPrefix,
		StoreTimeout: cfg.Stats.StoreTimeout,
		TrustProxy:   cfg.HTTP.TrustProxy,
		Backup:       backupConfig(cfg),
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backupMgr := srv.BackupManager()
	backupMgr.Start(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dietlog listening", "addr", httpServer.Addr, "api_prefix", cfg.HTTP.APIPrefix, "backups", backupMgr.Enabled())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down")
	backupMgr.Stop()
	srv.Hub().Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// backupConfig leaves S3 empty when backups are switched off, which keeps
// the manager disabled.
func backupConfig(cfg *config.Config) backup.Config {
	if !cfg.Backup.Enabled {
		return backup.Config{}
	}
	return backup.Config{
		S3: backup.S3Config{
			Endpoint:  cfg.Backup.S3.Endpoint,
			Bucket:    cfg.Backup.S3.Bucket,
			Region:    cfg.Backup.S3.Region,
			AccessKey: cfg.Backup.S3.AccessKey,
			SecretKey: cfg.Backup.S3.SecretKey,
		},
		Passphrase:    cfg.Backup.Passphrase,
		Interval:      cfg.Backup.Interval,
		RetentionDays: cfg.Backup.RetentionDays,
	}
}
