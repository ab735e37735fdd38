package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"job-tracker-api/config"
	"job-tracker-api/internal/delivery/http/middleware"
	"job-tracker-api/internal/domain"
	"job-tracker-api/internal/usecase"
	"job-tracker-api/pkg/auth"
	"job-tracker-api/pkg/security"
)

type RouterDeps struct {
	JobUC        domain.JobUsecase
	LifecycleUC  domain.LifecycleUsecase
	SearchUC     domain.SearchUsecase
	AttachmentUC domain.AttachmentUsecase
	ExportUC     domain.ExportUsecase
	HealthUC     usecase.HealthUsecase
	Config       *config.Config
	// Optional: nil switches rate limiting to the in-memory fallback
	RedisClient *goredis.Client
	// Optional: nil disables upload quotas
	UploadLimiter *security.UploadLimiter
	// Optional: RS256 verification keys for bearer auth
	JWKSProvider *auth.Provider
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.Config{}
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, gin.Mode() == gin.ReleaseMode)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())

	// Health Check
	health := &HealthHandler{healthUC: deps.HealthUC}
	r.GET("/health", health.Health)

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.GET("/health", health.Health)

	api.Use(middleware.RateLimitMiddleware(deps.RedisClient, middleware.DefaultRateLimitConfig()))
	if cfg.JWTSecret != "" || deps.JWKSProvider != nil {
		api.Use(middleware.AuthMiddleware(cfg.JWTSecret, deps.JWKSProvider))
	}

	searchLimit := middleware.RateLimitMiddleware(deps.RedisClient, middleware.SearchRateLimitConfig(
		cfg.RateLimitSearchThreshold,
		time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
	))

	maxUpload := cfg.MaxUploadBytes
	if maxUpload <= 0 {
		maxUpload = usecase.DefaultMaxAttachmentSize
	}

	NewJobHandler(api, deps.JobUC, deps.LifecycleUC, deps.ExportUC)
	NewSearchHandler(api, deps.SearchUC, searchLimit)
	NewAttachmentHandler(api, deps.AttachmentUC, maxUpload, middleware.UploadLimitMiddleware(deps.UploadLimiter))

	return r
}
