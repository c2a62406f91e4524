// @title        pawly
// @version      1.0
// @description  Server-rendered pet records with a care log.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"pawly/internal/adapters/auth/password"
	"pawly/internal/adapters/auth/session"
	"pawly/internal/adapters/blob"
	"pawly/internal/adapters/storage/sqlstore"
	"pawly/internal/config"
	"pawly/internal/domain/attachments"
	"pawly/internal/platform/logger"
	"pawly/internal/router"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "pawly: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	slog.SetDefault(log.Slog())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Hasher:         password.NewHasher(),
		Logger:         log,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}

	// memory = modo dev, los datos se pierden al reiniciar
	if cfg.Database.Driver != config.DriverMemory {
		store, err := sqlstore.Open(ctx, cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer store.Close()

		applied, err := store.Migrate(ctx)
		if err != nil {
			return err
		}
		log.Info("database ready", map[string]any{"driver": cfg.Database.Driver, "migrations_applied": applied})
		opts.Store = store
	} else {
		log.Warn("using in-memory storage", nil)
	}

	opts.Blobs, err = openBlobs(ctx, cfg.Uploads)
	if err != nil {
		return err
	}

	sessions, err := session.NewManager(session.Options{
		Secret:     cfg.Session.Secret,
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.Secure,
	})
	if err != nil {
		return err
	}
	opts.Sessions = sessions

	handler, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": cfg.Server.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down", nil)
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openBlobs(ctx context.Context, cfg config.UploadsConfig) (attachments.Store, error) {
	switch cfg.Backend {
	case config.UploadsS3:
		client, err := blob.NewS3Client(ctx, blob.S3Options{
			Region:    cfg.S3.Region,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PathStyle: cfg.S3.PathStyle,
		})
		if err != nil {
			return nil, err
		}
		return blob.NewS3Store(client, cfg.S3.Bucket, ""), nil
	default:
		// la carpeta se crea al arrancar si no existe
		store, err := blob.NewLocalStore(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
