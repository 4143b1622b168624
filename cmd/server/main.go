package main

import (
	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/samsara-collective/circle-api/internal/config"
	"github.com/samsara-collective/circle-api/internal/constants"
	"github.com/samsara-collective/circle-api/internal/database"
	"github.com/samsara-collective/circle-api/internal/handlers"
	"github.com/samsara-collective/circle-api/internal/middleware"
	"github.com/samsara-collective/circle-api/internal/repository"
	"github.com/samsara-collective/circle-api/internal/services"
	"github.com/samsara-collective/circle-api/internal/storage"
	"github.com/samsara-collective/circle-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed invites from configuration
	if err := database.SeedInvites(database.GetDB(), cfg.InviteEmails); err != nil {
		logger.Errorf("Failed to seed invites: %v", err)
	}

	// Initialize blob storage
	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(logger.GinLogger(), logger.GinRecovery(), middleware.CORS())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	sessionStore, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		logger.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	// Initialize repositories
	db := database.GetDB()
	memberRepo := repository.NewMemberRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	contributorRepo := repository.NewContributorRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)

	// Initialize services
	authService := services.NewAuthService(memberRepo)
	projectService := services.NewProjectService(projectRepo, contributorRepo, applicationRepo)
	lifecycleService := services.NewLifecycleService(contributorRepo, applicationRepo)
	profileService := services.NewProfileService(memberRepo, projectRepo, contributorRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService, store)
	lifecycleHandler := handlers.NewLifecycleHandler(lifecycleService)
	profileHandler := handlers.NewProfileHandler(profileService, store)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Circle API is running",
		})
	})

	// Uploaded media
	r.Static("/uploads", store.Root())

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentMember)
		}

		// Profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(middleware.RequireAuth())
		{
			profile.PATCH("", profileHandler.UpdateProfile)
			profile.POST("/avatar", profileHandler.UploadAvatar)
			profile.POST("/resume", profileHandler.UploadResume)
		}

		// Public member profiles (protected: members only see members)
		api.GET("/members/:id", middleware.RequireAuth(), profileHandler.GetMember)
		api.GET("/members/:id/projects", middleware.RequireAuth(), profileHandler.ListMemberProjects)

		// Realm-scoped project routes (protected)
		realm := api.Group("/realms/:realm")
		realm.Use(middleware.RequireAuth(), middleware.RequireRealm(cfg.Realms))
		{
			realm.GET("/members", profileHandler.ListRealmMembers)
			realm.GET("/projects", projectHandler.ListProjects)
			realm.POST("/projects", projectHandler.CreateProject)

			project := realm.Group("/projects/:id")
			project.Use(middleware.RequireProjectAccess())
			{
				project.GET("", projectHandler.GetProject)
				project.POST("/join", lifecycleHandler.Join)
				project.POST("/applications", lifecycleHandler.Apply)

				owner := project.Group("")
				owner.Use(middleware.RequireProjectOwner())
				{
					owner.PATCH("/status", projectHandler.UpdateStatus)
					owner.POST("/archive", projectHandler.ArchiveProject)
					owner.POST("/image", projectHandler.UploadImage)
					owner.GET("/applications", lifecycleHandler.ListApplications)
					owner.POST("/applications/:app_id/resolve", lifecycleHandler.ResolveApplication)
				}
			}
		}
	}

	// Start server
	logger.Infof("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
