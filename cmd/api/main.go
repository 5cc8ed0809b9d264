package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"clubhub/internal/cache"
	"clubhub/internal/config"
	"clubhub/internal/handler"
	"clubhub/internal/httpmiddleware"
	"clubhub/internal/logging"
	"clubhub/internal/mailer"
	"clubhub/internal/notebook"
	"clubhub/internal/queue"
	"clubhub/internal/store"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.Env)

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server failed")
	}
}

func run(cfg config.App, log *logrus.Logger) error {
	ctx := context.Background()

	var docs store.Documents
	var mongo *store.Mongo
	if cfg.StoreBackend == "memory" {
		docs = store.NewMemory()
		log.Warn("running on the in-memory store; data is not persisted")
	} else {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		m, err := store.NewMongo(connectCtx, cfg.MongoURI, cfg.MongoDB)
		cancel()
		if err != nil {
			return err
		}
		mongo = m
		docs = m
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mongo.Close(closeCtx)
		}()
	}

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "")
	}

	h := handler.New(handler.Deps{
		Cfg:   cfg,
		Log:   log,
		Cache: cache.New(redisClient),
		Queue: q,
		Docs:  docs,
		Mailer: mailer.New(mailer.SMTPSender{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.SMTPFrom,
			Password: cfg.SMTPPassword,
		}, log),
		Notebook: notebook.NewService(
			notebook.New(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, cfg.AISkip), log),
	})

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/healthz", "/metrics"},
	}))
	r.Use(httpmiddleware.CORS())
	r.Use(httpmiddleware.SecurityHeaders())
	r.Use(httpmiddleware.NewRateLimiter(cfg.RateLimitPerMin).Middleware())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", func(c *gin.Context) {
		storeHealthy := mongo == nil || mongo.Healthy(c.Request.Context())
		redisHealthy := redisClient.Healthy(c.Request.Context())
		status := http.StatusOK
		if !storeHealthy {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"status": "ok", "store": storeHealthy, "redis": redisHealthy})
	})

	h.Register(r)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.HTTPPort).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("forced shutdown")
	}

	log.Info("server exited")
	return nil
}
