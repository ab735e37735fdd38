package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"job-tracker-api/config"
	_ "job-tracker-api/docs" // Important for Swagger
	v1 "job-tracker-api/internal/delivery/http/v1"
	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/events"
	"job-tracker-api/internal/maintenance"
	"job-tracker-api/internal/repository/memory"
	"job-tracker-api/internal/repository/postgres"
	"job-tracker-api/internal/search"
	"job-tracker-api/internal/usecase"
	"job-tracker-api/pkg/auth"
	"job-tracker-api/pkg/cache"
	"job-tracker-api/pkg/database"
	"job-tracker-api/pkg/logger"
	"job-tracker-api/pkg/redis"
	"job-tracker-api/pkg/security"
	"job-tracker-api/pkg/security/antivirus"
	"job-tracker-api/pkg/storage"
	"job-tracker-api/pkg/validation"
)

// @title           Job Tracker API
// @version         1.0
// @description     Track job applications, search job boards and keep resumes per application.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting job tracker", "port", cfg.Port, "db_driver", cfg.DBDriver, "storage_driver", cfg.StorageDriver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]usecase.HealthCheck{}

	// 3. Setup Database
	var (
		jobRepo        domain.JobRepository
		attachmentRepo domain.AttachmentRepository
		dbPool         *pgxpool.Pool
	)
	switch cfg.DBDriver {
	case "memory":
		store := memory.New()
		jobRepo = store.Jobs()
		attachmentRepo = store.Attachments()
		logger.Log.Warn("Using in-memory store - data is lost on restart")
	case "postgres":
		pc := database.DefaultPoolConfig
		pc.SimpleProtocol = cfg.DBSimpleProtocol
		dbPool, err = database.NewPostgresConnection(ctx, cfg.DBUrl, pc)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()

		if err := postgres.Migrate(ctx, dbPool); err != nil {
			logger.Log.Error("Failed to run migrations", "error", err)
			os.Exit(1)
		}
		jobRepo = postgres.NewJobRepository(dbPool)
		attachmentRepo = postgres.NewAttachmentRepository(dbPool)
		checks["database"] = dbPool.Ping
	default:
		logger.Log.Error("Unknown DB_DRIVER", "driver", cfg.DBDriver)
		os.Exit(1)
	}

	// 4. Setup Blob Storage
	var (
		blobs        domain.BlobStore
		sharedBucket bool
	)
	switch cfg.StorageDriver {
	case "memory":
		blobs = memory.NewBlobStore()
	case "postgres":
		if dbPool == nil {
			logger.Log.Error("STORAGE_DRIVER=postgres requires DB_DRIVER=postgres")
			os.Exit(1)
		}
		blobs = postgres.NewBlobStore(dbPool)
	case "s3":
		s3Client, err := storage.NewS3Client(ctx, storage.S3Config{
			Provider:        storage.S3Provider(cfg.S3Provider),
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			Prefix:          cfg.S3Prefix,
			WasabiEndpoint:  cfg.WasabiEndpoint,
		})
		if err != nil {
			logger.Log.Error("Failed to create S3 client", "error", err)
			os.Exit(1)
		}
		s3Store := storage.NewS3BlobStore(s3Client, cfg.S3Bucket, cfg.S3Prefix)
		blobs = s3Store
		sharedBucket = s3Store.Prefix() == ""
		checks["storage"] = s3Store.Ping
	default:
		logger.Log.Error("Unknown STORAGE_DRIVER", "driver", cfg.StorageDriver)
		os.Exit(1)
	}

	// 5. Setup Redis (optional)
	var rdb *goredis.Client
	rdb, err = redis.New(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		rdb = nil
	case err != nil:
		logger.Log.Warn("Redis unavailable - running without cache, events and shared rate limits", "error", err)
		rdb = nil
	default:
		defer rdb.Close()
		checks["redis"] = func(ctx context.Context) error { return redis.HealthCheck(ctx, rdb) }
	}

	// 6. Setup Search Provider
	var provider domain.SearchProvider = search.NewMCPClient(cfg.SearchProviderURL, cfg.SearchTimeout)
	if rdb != nil && cfg.SearchCacheTTL > 0 {
		provider = search.NewCachedProvider(provider, cache.NewRedis(rdb, "jobtracker:"), cfg.SearchCacheTTL)
	}

	// 7. Setup Scanner
	var scanner antivirus.Scanner = antivirus.NewNoOpScanner()
	if cfg.ClamAVAddress != "" {
		clam := antivirus.NewClamAVScanner(cfg.ClamAVAddress, 30*time.Second)
		if !clam.Available(ctx) {
			logger.Log.Warn("ClamAV not reachable at startup - uploads will fail until it is", "address", cfg.ClamAVAddress)
		}
		scanner = clam
		checks["antivirus"] = func(ctx context.Context) error {
			if !clam.Available(ctx) {
				return errors.New("clamd not reachable")
			}
			return nil
		}
	}

	// 8. Setup Events
	var publisher domain.EventPublisher = domain.NopPublisher{}
	if rdb != nil {
		publisher = events.NewRedisPublisher(rdb, cfg.EventsChannel)
	}

	// 9. Setup UseCases
	validate := validation.New()
	jobUC := usecase.NewJobUsecase(jobRepo, attachmentRepo, blobs, validate)
	lifecycleUC := usecase.NewLifecycleUsecase(jobRepo, publisher)
	searchUC := usecase.NewSearchUsecase(provider, jobRepo, jobUC, validate)
	attachmentUC := usecase.NewAttachmentUsecase(jobRepo, attachmentRepo, blobs, scanner, cfg.MaxUploadBytes)
	exportUC := usecase.NewExportUsecase(jobUC)
	healthUC := usecase.NewHealthUsecase(checks)

	// 10. Setup Maintenance
	switch {
	case cfg.BlobSweepSchedule == "":
	case sharedBucket:
		logger.Log.Warn("Blob sweeper disabled: S3_PREFIX is empty, refusing to sweep the whole bucket")
	default:
		sweeper := maintenance.NewBlobSweeper(blobs, attachmentRepo, cfg.BlobSweepSchedule)
		if err := sweeper.Start(ctx); err != nil {
			logger.Log.Error("Failed to start blob sweeper", "error", err)
			os.Exit(1)
		}
		defer sweeper.Stop()
	}

	// 11. Setup Auth Provider (JWKS)
	var jwksProvider *auth.Provider
	if cfg.JWKSURL != "" {
		jwksProvider = auth.NewProvider(cfg.JWKSURL)
	}

	// 12. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:         jobUC,
		LifecycleUC:   lifecycleUC,
		SearchUC:      searchUC,
		AttachmentUC:  attachmentUC,
		ExportUC:      exportUC,
		HealthUC:      healthUC,
		Config:        cfg,
		RedisClient:   rdb,
		UploadLimiter: security.NewUploadLimiter(rdb, cfg.UploadLimitPerMinute, cfg.UploadLimitPerDay),
		JWKSProvider:  jwksProvider,
	})

	// 13. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			stop()
		}
	}()

	// Graceful Shutdown
	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
