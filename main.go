package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/naimekattor/assunnah-blog/config"
	"github.com/naimekattor/assunnah-blog/handlers"
	"github.com/naimekattor/assunnah-blog/middleware"
	"github.com/naimekattor/assunnah-blog/models"
	"github.com/naimekattor/assunnah-blog/repositories"
	"github.com/naimekattor/assunnah-blog/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()

	// Initialize database
	db := config.InitDB()

	// Redis backs the single-use password reset tokens
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	pageViewRepo := repositories.NewPageViewRepository(db)

	// Initialize services
	tokenStore := services.NewResetTokenStore(rdb)
	authService := services.NewAuthService(userRepo, tokenStore, nil)
	postService := services.NewPostService(postRepo, categoryRepo, cfg.RestampPublishedAt)
	categoryService := services.NewCategoryService(categoryRepo)
	analyticsService := services.NewAnalyticsService(pageViewRepo, cfg.PageViewRetentionDays)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	postHandler := handlers.NewPostHandler(postService)
	moderationHandler := handlers.NewModerationHandler(postService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
		}

		// Public reads resolve the actor when a token is present so
		// authors and moderators see their own pending posts here too.
		public := v1.Group("/")
		public.Use(middleware.OptionalAuth())
		{
			public.GET("/posts", postHandler.GetPosts)
			public.GET("/posts/:id", postHandler.GetPost)
			public.GET("/categories", categoryHandler.GetCategories)
			public.POST("/analytics/track", analyticsHandler.Track)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)

			// Posts
			protected.POST("/posts", postHandler.CreatePost)
			protected.PUT("/posts/:id", postHandler.UpdatePost)
			protected.DELETE("/posts/:id", postHandler.DeletePost)

			// Moderation
			moderation := protected.Group("/")
			moderation.Use(middleware.RequireRole(models.RoleModerator, models.RoleAdmin))
			{
				moderation.GET("/moderation/queue", moderationHandler.Queue)
				moderation.POST("/posts/:id/approve", moderationHandler.Approve)
				moderation.POST("/posts/:id/reject", moderationHandler.Reject)
			}

			// Admin
			admin := protected.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/categories", categoryHandler.CreateCategory)
				admin.GET("/analytics/stats", analyticsHandler.Stats)
			}

			// Image uploads, when object storage is configured
			if cfg.MinioEndpoint != "" {
				imageService, err := services.NewImageService(context.Background(), cfg)
				if err != nil {
					log.Fatal("Failed to initialize image storage: ", err)
				}
				uploadHandler := handlers.NewUploadHandler(imageService)
				protected.POST("/upload/image", uploadHandler.UploadImage)
			} else {
				log.Println("MINIO_ENDPOINT not set, image uploads disabled")
			}
		}
	}

	// Nightly purge of page views past the retention window
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		if err := analyticsService.PurgeOldViews(); err != nil {
			log.Printf("analytics retention job: %v", err)
		}
	}); err != nil {
		log.Fatal("Failed to schedule retention job: ", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
