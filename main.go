package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediabox/config"
	"mediabox/database"
	"mediabox/handlers"
	"mediabox/logger"
	"mediabox/models"
	"mediabox/repositories"
	"mediabox/services"
	"mediabox/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := os.Getenv("MEDIABOX_CONFIG")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatalf("load config failed: %v", err)
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	logger.Infof("starting mediabox service")

	if cfg.Security.SecretKey == config.DefaultSecretKey {
		logger.Warnf("using the built-in development secret key; set MEDIABOX_SECRET_KEY")
	}
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				logger.Warnf("close resource: %v", err)
			}
		}
	}()

	blobs, localBlobs, err := openObjectStore(ctx, cfg, &closers)
	if err != nil {
		logger.Fatalf("init %s storage failed: %v", cfg.Storage.Driver, err)
	}

	files, err := openFileRecords(ctx, cfg, &closers)
	if err != nil {
		logger.Fatalf("init %s database failed: %v", cfg.Database.Driver, err)
	}

	redisClient := database.NewRedis(&cfg.Redis)
	closers = append(closers, redisClient)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		logger.Warnf("redis ping failed, flash messages will be dropped until it recovers: %v", err)
	}
	cancel()

	location, err := cfg.Display.Location()
	if err != nil {
		logger.Fatalf("load display timezone %q failed: %v", cfg.Display.Timezone, err)
	}

	repoContainer := repositories.Container{
		Files:   files,
		Flashes: repositories.NewRedisFlashRepository(redisClient, cfg.Redis.FlashTTLSeconds),
	}
	serviceContainer := services.NewContainer(repoContainer, blobs, services.FileServiceOptions{
		AllowedExtensions: cfg.Upload.AllowedExtensions,
		DashboardExpiry:   cfg.SignedURL.DashboardExpiry,
		DownloadExpiry:    cfg.SignedURL.DownloadExpiry,
		DisplayLocation:   location,
	})

	opts := handlers.Options{
		SessionCookie: cfg.Security.SessionCookie,
		SecretKey:     cfg.Security.SecretKey,
		StorageDriver: cfg.Storage.Driver,
	}
	if localBlobs != nil {
		opts.LocalBlobs = localBlobs
	}
	router := handlers.NewRouter(handlers.New(serviceContainer, opts), cfg.Upload.MultipartMemoryBytes)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}
	go func() {
		logger.Infof("server listening on http://%s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server start failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(err, "server shutdown")
	}
}

// openObjectStore builds the configured blob backend. The second return value
// is non-nil only for local storage, which serves its own signed URLs.
func openObjectStore(ctx context.Context, cfg *config.Config, closers *[]io.Closer) (storage.ObjectStore, *storage.LocalStore, error) {
	sc := cfg.Storage
	switch sc.Driver {
	case "gcs":
		store, err := storage.NewGCS(ctx, storage.GCSConfig{
			Bucket:          sc.Bucket,
			CredentialsFile: sc.CredentialsFile,
			GoogleAccessID:  sc.GoogleAccessID,
		})
		if err != nil {
			return nil, nil, err
		}
		*closers = append(*closers, store)
		return store, nil, nil
	case "s3":
		store, err := storage.NewS3(ctx, storage.S3Config{
			Bucket:          sc.Bucket,
			Region:          sc.Region,
			Endpoint:        sc.Endpoint,
			ForcePathStyle:  sc.ForcePathStyle,
			AccessKeyID:     sc.AccessKeyID,
			SecretAccessKey: sc.SecretAccessKey,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case "local":
		publicURL := sc.PublicBaseURL
		if publicURL == "" {
			publicURL = fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
		}
		store, err := storage.NewLocal(sc.BasePath, publicURL, cfg.Security.SecretKey)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", sc.Driver)
	}
}

// openFileRecords builds the metadata repository for the configured database.
// The SQL drivers are migrated on start.
func openFileRecords(ctx context.Context, cfg *config.Config, closers *[]io.Closer) (repositories.FileRecordRepository, error) {
	if cfg.Database.Driver == "firestore" {
		client, err := database.OpenFirestore(ctx, &cfg.Database, cfg.Storage.CredentialsFile)
		if err != nil {
			return nil, err
		}
		*closers = append(*closers, client)
		return repositories.NewFirestoreFileRecordRepository(client, cfg.Database.Collection), nil
	}

	db, err := database.OpenGorm(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&models.FileRecord{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Infof("database migration completed")
	if sqlDB, err := db.DB(); err == nil {
		*closers = append(*closers, sqlDB)
	}
	return repositories.NewGormFileRecordRepository(db), nil
}
