package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/safarhub/backoffice/internal/api"
	"github.com/safarhub/backoffice/internal/config"
	"github.com/safarhub/backoffice/internal/platform"
	"github.com/safarhub/backoffice/internal/repository"
	"github.com/safarhub/backoffice/internal/service"
	"github.com/safarhub/backoffice/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()
	logger := utils.NewLogger()

	// Set up the local back-office database (operators + audit trail)
	db, err := config.SetupDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to set up database: %v", err)
	}
	defer db.Close()

	repo := repository.NewPostgresRepository(db)

	// Shared platform client: the one HTTP collaborator every screen
	// talks to
	client := platform.NewClient(cfg.Platform.BaseURL, cfg.Platform.APIToken)

	// Optional redis for the lookup caches
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Errorf("redis unavailable, lookup caching disabled: %v", err)
			rdb = nil
		} else {
			logger.Info("Connected to redis at %s", cfg.Redis.Addr)
		}
	}

	// Create services
	screens := service.NewScreens(client, logger)
	ledger := service.NewLedgerService(client, logger)
	exports := service.NewExportService(client)
	lookups := service.NewLookupService(client, rdb, logger)
	auth := service.NewAuthService(repo, cfg.Auth.JWTSecret)
	audit := service.NewAuditService(repo, logger)
	mailer := service.NewMailer(cfg.SMTP)

	// Seed the first operator account if configured
	if cfg.Auth.SeedEmail != "" && cfg.Auth.SeedPassword != "" {
		if err := auth.EnsureOperator(context.Background(), cfg.Auth.SeedEmail, "Administrator", cfg.Auth.SeedPassword); err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
	}

	// Warm the lookup caches on a schedule
	if rdb != nil {
		lookupCron := lookups.StartRefreshCron()
		defer lookupCron.Stop()
	}

	// Create API handler
	handler := api.NewHandler(screens, ledger, exports, lookups, auth, audit, mailer, logger)

	// Set up Gin router
	router := gin.New()
	router.Use(gin.Logger(), api.RecoveryMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: cfg.Server.CORSOrigin != "*",
	}))

	// Add middleware for JWT secret
	router.Use(func(c *gin.Context) {
		c.Set("jwtSecret", []byte(cfg.Auth.JWTSecret))
		c.Next()
	})

	// Set up routes
	handler.SetupRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Starting server on %s", serverAddr)
	if err := http.ListenAndServe(serverAddr, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
