package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/stevenshelley58-afk/redner-vault/internal/config"
	"github.com/stevenshelley58-afk/redner-vault/internal/database"
	"github.com/stevenshelley58-afk/redner-vault/internal/handlers"
	"github.com/stevenshelley58-afk/redner-vault/internal/mailer"
	"github.com/stevenshelley58-afk/redner-vault/internal/middleware"
	"github.com/stevenshelley58-afk/redner-vault/internal/ratelimit"
	"github.com/stevenshelley58-afk/redner-vault/internal/store"
	"github.com/stevenshelley58-afk/redner-vault/internal/store/memory"
	"github.com/stevenshelley58-afk/redner-vault/internal/supabase"
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	assetStorage, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.AssetsBucket)
	if err != nil {
		log.Fatalf("Failed to initialize asset storage client: %v", err)
	}
	outputStorage, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceRoleKey, cfg.OutputsBucket)
	if err != nil {
		log.Fatalf("Failed to initialize output storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	// Without DATABASE_URL the server runs on the in-memory store, which is
	// what the hosted demo uses.
	var dataStore store.Store
	if cfg.DatabaseURL != "" {
		dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize database client: %v", err)
		}
		defer dbClient.Close()

		migrator, err := database.NewMigrator(cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize migrator: %v", err)
		} else {
			if err := migrator.Run(); err != nil {
				log.Printf("Warning: Migration failed: %v", err)
			} else {
				log.Println("Migrations completed successfully")
			}
			migrator.Close()
		}

		dataStore = dbClient
	} else {
		log.Println("Warning: DATABASE_URL not set, running with in-memory store")
		dataStore = memory.New()
	}

	contactLimiter := ratelimit.New(30 * time.Second)
	contactMailer := mailer.NewSMTPMailer(cfg)

	meHandler := handlers.NewMeHandler(dataStore)
	projectsHandler := handlers.NewProjectsHandler(dataStore)
	notesHandler := handlers.NewNotesHandler(dataStore)
	assetsHandler := handlers.NewAssetsHandler(dataStore, assetStorage)
	imagesHandler := handlers.NewImagesHandler(dataStore, outputStorage, realtimeClient)
	versionsHandler := handlers.NewVersionsHandler(dataStore, outputStorage, realtimeClient)
	commentsHandler := handlers.NewCommentsHandler(dataStore, realtimeClient)
	contactHandler := handlers.NewContactHandler(contactLimiter, contactMailer)

	router := gin.Default()

	router.GET("/health", handlers.HealthHandler)
	router.POST("/api/v1/contact", contactHandler.SubmitContact)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.GET("/me", meHandler.GetMe)

	api.GET("/projects", projectsHandler.ListProjects)
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects/:project_id", projectsHandler.GetProject)

	api.POST("/projects/:project_id/notes", notesHandler.CreateNote)
	api.POST("/projects/:project_id/assets", assetsHandler.CreateAsset)

	api.POST("/projects/:project_id/images", imagesHandler.CreateImage)
	api.GET("/projects/:project_id/images/:image_id", imagesHandler.GetImage)
	api.PATCH("/projects/:project_id/images/:image_id", imagesHandler.UpdateImageStatus)
	api.POST("/projects/:project_id/images/:image_id/approve", imagesHandler.Approve)
	api.POST("/projects/:project_id/images/:image_id/request_revision", imagesHandler.RequestRevision)
	api.POST("/projects/:project_id/images/:image_id/versions", versionsHandler.CreateVersion)
	api.POST("/projects/:project_id/images/:image_id/comments", commentsHandler.CreateComment)

	corsWrapper := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, corsWrapper.Handler(router)); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
