package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"giveaway-bot-backend/internal/common/cache"
	"giveaway-bot-backend/internal/common/config"
	"giveaway-bot-backend/internal/common/logger"
	"giveaway-bot-backend/internal/common/middleware"
	giveawayhttp "giveaway-bot-backend/internal/features/giveaway/delivery/http"
	giveawayredis "giveaway-bot-backend/internal/features/giveaway/repository/redis"
	giveawayservice "giveaway-bot-backend/internal/features/giveaway/service"
	memberhttp "giveaway-bot-backend/internal/features/member/delivery/http"
	memberredis "giveaway-bot-backend/internal/features/member/repository/redis"
	memberservice "giveaway-bot-backend/internal/features/member/service"
	"giveaway-bot-backend/internal/platform/discord"
	platformredis "giveaway-bot-backend/internal/platform/redis"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: .env file not found: %v\n", err)
	}

	cfg := config.Load()
	logger.Init("giveaway-bot-backend", cfg.Debug)

	logger.Info().
		Bool("debug", cfg.Debug).
		Msg("Starting giveaway bot backend")

	redisClient, err := platformredis.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	discordClient, err := discord.NewClient(cfg.Discord.BotToken)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Discord client")
	}
	if err := discordClient.Open(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to open Discord session")
	}
	defer discordClient.Close()

	cacheService := cache.NewCacheService(redisClient)

	memberRepo := memberredis.NewRedisStatsRepository(redisClient)
	giveawayRepo := giveawayredis.NewRedisGiveawayRepository(redisClient)

	memberSvc := memberservice.NewMemberService(memberRepo, discordClient)
	giveawaySvc := giveawayservice.NewGiveawayService(
		giveawayRepo,
		memberSvc,
		discordClient,
		cacheService,
		cfg.Cache.GiveawayTTL,
	)

	scheduler := giveawayservice.NewScheduler(giveawaySvc, cfg.Scheduler.PollInterval)
	scheduler.Start()
	defer scheduler.Stop()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", "Accept"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	giveawayhttp.NewGiveawayHandler(giveawaySvc).RegisterRoutes(v1)
	memberhttp.NewMemberHandler(memberSvc).RegisterRoutes(v1)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "giveaway-bot-backend",
		})
	})
	router.GET("/ready", func(c *gin.Context) {
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited")
}
