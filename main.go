package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/dutymanager/dutymanager/backend/go-services/handlers"
	"github.com/dutymanager/dutymanager/backend/go-services/internal/config"
	"github.com/dutymanager/dutymanager/backend/go-services/internal/storage"
	"github.com/dutymanager/dutymanager/backend/go-services/internal/store"
	"github.com/dutymanager/dutymanager/backend/go-services/pkg/logger"
	"github.com/dutymanager/dutymanager/backend/go-services/pkg/metrics"
	"github.com/dutymanager/dutymanager/backend/go-services/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}

	r := gin.New()

	// Lightweight CORS middleware for the frontend: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis for rate limiting: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// File-backed document store: the single shared resource this service owns
	st, err := store.NewFileStore(cfg.Storage.DataFile, cfg.Storage.BackupDir)
	if err != nil {
		logger.Fatalf("failed to initialize file store: %v", err)
	}

	// Optional off-site backup mirror
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		mirror, err := storage.NewMinIOMirror(mcfg)
		if err != nil {
			logger.Warnf("backup mirror disabled: %v", err)
		} else {
			st.SetMirror(mirror)
			logger.Infof("backup mirror enabled: %s/%s", mcfg.Endpoint, mcfg.Bucket)
		}
	}

	// Basic health endpoint for container probes
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		// storage readiness: the backup directory must be listable
		if _, err := st.Backups(); err != nil {
			deps["storage"] = false
			ready = false
		} else {
			deps["storage"] = true
		}

		// Redis readiness only matters when the limiter depends on it
		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	handlers.RegisterSwagger(r)
	h := handlers.NewScheduleHandler(cfg, st)
	h.Register(r)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Duty Manager backend starting on %s", addr)
	logger.Infof("data file: %s", cfg.Storage.DataFile)
	logger.Infof("backup directory: %s", cfg.Storage.BackupDir)
	logger.Infof("file exists: %v", st.Exists())
	logger.Debugf("config summary: redis=%v mongo_audit=%v rate_limit=%v", cfg.Redis.Host != "", cfg.MongoDB.URI != "", cfg.RateLimit.Enabled)

	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
