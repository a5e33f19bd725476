package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carloshsbsilva/ringconnect/internal/auth"
	"github.com/carloshsbsilva/ringconnect/internal/cache"
	"github.com/carloshsbsilva/ringconnect/internal/config"
	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/handlers"
	"github.com/carloshsbsilva/ringconnect/internal/logger"
	"github.com/carloshsbsilva/ringconnect/internal/middleware"
	"github.com/carloshsbsilva/ringconnect/internal/search"
	"github.com/carloshsbsilva/ringconnect/internal/storage"
	"github.com/carloshsbsilva/ringconnect/internal/telemetry"
	"github.com/carloshsbsilva/ringconnect/internal/websocket"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Close()

	logger.Log.Info("ringconnect server starting", zap.String("environment", cfg.Environment))

	if err := database.Initialize(); err != nil {
		logger.Log.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	if err := database.Migrate(); err != nil {
		logger.Log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Tracing is opt-in
	if tp, err := telemetry.InitTracer(telemetry.Config{
		ServiceName:  "ringconnect",
		Environment:  cfg.Environment,
		OTLPEndpoint: cfg.OTLPEndpoint,
		Enabled:      cfg.TracingEnabled,
		SamplingRate: 0.1,
	}); err != nil {
		logger.Warn("failed to initialize tracing", err)
	} else if tp != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = tp.Shutdown(ctx)
		}()
	}

	// Redis backs the API rate limiter; the server runs without it
	if cfg.RedisHost != "" {
		if _, err := cache.NewRedisClient(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword); err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", err)
		}
	}

	jwtSecret := []byte(cfg.JWTSecret)
	authService := auth.NewService(jwtSecret)

	wsHub := websocket.NewHub()
	wsHandler := websocket.NewHandler(wsHub, jwtSecret)
	wsHandler.RegisterDefaultHandlers()
	go wsHub.Run()

	h := handlers.NewHandlers(authService)
	h.SetWebSocketHandler(wsHandler)

	if cfg.AWSBucket != "" {
		uploader, err := storage.NewS3Uploader(cfg.AWSRegion, cfg.AWSBucket, cfg.CDNBaseURL)
		if err != nil {
			logger.Warn("failed to initialize s3 uploader, uploads disabled", err)
		} else {
			if err := uploader.CheckBucketAccess(context.Background()); err != nil {
				logger.Warn("s3 bucket access check failed", err)
			}
			h.SetUploader(uploader)
		}
	}

	if cfg.ElasticsearchURL != "" {
		esClient, err := search.NewClient(cfg.ElasticsearchURL)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search falls back to sql", err)
		} else {
			if err := esClient.InitializeIndices(context.Background()); err != nil {
				logger.Warn("failed to initialize search indices", err)
			}
			h.SetSearchClient(esClient)
		}
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	r.Use(otelgin.Middleware("ringconnect"))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"database":  database.Health() == nil,
			"timestamp": time.Now().UTC(),
			"service":   "ringconnect-backend",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	api.Use(middleware.RedisRateLimitMiddleware(300, time.Minute))
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.GET("/me", authService.Middleware(), h.Me)
		}

		// Public reads carry viewer state when a token is present
		public := api.Group("")
		public.Use(authService.OptionalMiddleware())
		{
			public.GET("/feed", h.GetFeed)
			public.GET("/posts/:id", h.GetPost)
			public.GET("/posts/:id/comments", h.GetPostComments)
			public.GET("/posts/:id/reactions", h.GetPostReactions)
			public.GET("/users/:id", h.GetProfile)
			public.GET("/users/:id/followers", h.GetFollowers)
			public.GET("/users/:id/following", h.GetFollowing)
			public.GET("/users/:id/championships", h.GetChampionships)
			public.GET("/users/:id/training-logs", h.GetTrainingLogs)
			public.GET("/users/:id/training-stats", h.GetTrainingStats)
			public.GET("/users/:id/videos", h.GetUserVideos)
			public.GET("/gyms", h.ListGyms)
			public.GET("/gyms/:id", h.GetGym)
			public.GET("/gyms/:id/members", h.GetGymMembers)
			public.GET("/search/profiles", h.SearchProfiles)
			public.GET("/mentorship/sessions", h.GetMentorshipSessions)
		}

		protected := api.Group("")
		protected.Use(authService.Middleware())
		{
			protected.POST("/posts", h.CreatePost)
			protected.PUT("/posts/:id", h.UpdatePost)
			protected.DELETE("/posts/:id", h.DeletePost)
			protected.POST("/posts/:id/share", h.SharePost)
			protected.POST("/posts/media", h.UploadPostMedia)
			protected.POST("/posts/:id/reactions", h.ReactToPost)
			protected.POST("/posts/:id/comments", h.CreateComment)
			protected.DELETE("/comments/:id", h.DeleteComment)
			protected.POST("/comments/:id/like", h.LikeComment)
			protected.DELETE("/comments/:id/like", h.UnlikeComment)

			protected.POST("/users/:id/follow", h.FollowUser)
			protected.DELETE("/users/:id/follow", h.UnfollowUser)

			protected.PUT("/profile", h.UpdateProfile)
			protected.POST("/profile/avatar", h.UploadAvatar)

			protected.POST("/gyms", h.CreateGym)
			protected.PUT("/gyms/:id", h.UpdateGym)
			protected.DELETE("/gyms/:id", h.DeleteGym)
			protected.POST("/gyms/:id/logo", h.UploadGymLogo)
			protected.POST("/gyms/:id/join", h.JoinGym)
			protected.DELETE("/gyms/:id/join", h.LeaveGym)
			protected.POST("/gyms/:id/follow", h.FollowGym)
			protected.DELETE("/gyms/:id/follow", h.UnfollowGym)

			protected.POST("/messages", h.SendMessage)
			protected.GET("/messages", h.GetConversations)
			protected.GET("/messages/:userId", h.GetConversation)
			protected.PUT("/messages/:userId/read", h.MarkConversationRead)

			protected.GET("/notifications", h.GetNotifications)
			protected.GET("/notifications/unread-count", h.GetUnreadNotificationCount)
			protected.PUT("/notifications/read", h.MarkAllNotificationsRead)
			protected.PUT("/notifications/:id/read", h.MarkNotificationRead)

			protected.POST("/training-logs", h.CreateTrainingLog)
			protected.DELETE("/training-logs/:id", h.DeleteTrainingLog)

			protected.POST("/championships", h.CreateChampionship)
			protected.PUT("/championships/:id", h.UpdateChampionship)
			protected.DELETE("/championships/:id", h.DeleteChampionship)

			protected.POST("/videos", h.UploadVideo)
			protected.PUT("/videos/:id", h.UpdateVideo)
			protected.DELETE("/videos/:id", h.DeleteVideo)

			protected.POST("/mentorship/sessions", h.CreateMentorshipSession)
			protected.PUT("/mentorship/sessions/:id", h.UpdateMentorshipSession)
			protected.POST("/mentorship/sessions/:id/book", h.BookSession)
			protected.GET("/mentorship/bookings", h.GetBookings)
			protected.PUT("/mentorship/bookings/:id/status", h.UpdateBookingStatus)

			protected.POST("/sparring", h.CreateSparringRequest)
			protected.PUT("/sparring/:id", h.RespondSparringRequest)
			protected.GET("/sparring", h.GetSparringRequests)

			protected.GET("/link-preview", h.GetLinkPreview)
		}

		ws := api.Group("/ws")
		{
			ws.GET("", wsHandler.HandleWebSocket)
			ws.GET("/connect", wsHandler.HandleWebSocket)
			ws.GET("/metrics", authService.Middleware(), wsHandler.HandleMetrics)
			ws.POST("/online", authService.Middleware(), wsHandler.HandleOnlineStatus)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := wsHandler.Shutdown(ctx); err != nil {
		logger.Warn("websocket shutdown incomplete", err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("forced shutdown", zap.Error(err))
	}

	logger.Log.Info("server exited")
}
