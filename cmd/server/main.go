package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/config"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/handler"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/middleware"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/repository"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/rules"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/service"
	"github.com/lushenghe96vt/Personal-Budget-Management-System/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading, relying on environment variables")
	}

	// --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// --- Storage ---
	var (
		userRepo        repository.UserRepository
		transactionRepo repository.TransactionRepository
		dbPool          *pgxpool.Pool
	)
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		dbCfg, err := config.LoadDBConfig()
		if err != nil {
			log.Fatalf("Failed to load DB config: %v", err)
		}
		dbPool, err = config.ConnectDB(dbCfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer dbPool.Close()
		if err := config.AutoMigrate(dbPool); err != nil {
			log.Fatalf("Failed to auto-migrate database: %v", err)
		}
		userRepo = repository.NewPostgresUserRepository(dbPool)
		transactionRepo = repository.NewPostgresTransactionRepository(dbPool)
	default:
		if err := os.MkdirAll(cfg.DataDir, os.ModePerm); err != nil {
			log.Fatalf("Failed to create data directory %s: %v", cfg.DataDir, err)
		}
		userRepo, err = repository.NewJSONUserRepository(filepath.Join(cfg.DataDir, "users.json"))
		if err != nil {
			log.Fatalf("Failed to open user store: %v", err)
		}
		transactionRepo, err = repository.NewJSONTransactionRepository(filepath.Join(cfg.DataDir, "transactions.json"))
		if err != nil {
			log.Fatalf("Failed to open transaction store: %v", err)
		}
		log.Printf("Data will be stored in: %s", cfg.DataDir)
	}

	// --- Category rules ---
	var categoryRules *rules.CategoryRules
	if cfg.RulesPath != "" {
		categoryRules, err = rules.FromJSON(cfg.RulesPath)
		if err != nil {
			log.Fatalf("Failed to load category rules from %s: %v", cfg.RulesPath, err)
		}
		log.Printf("Loaded category rules from %s", cfg.RulesPath)
	} else {
		log.Println("RULES_PATH not set, imports will stay uncategorized")
	}

	// --- Initialize Utilities ---
	jwtUtil := utils.NewJWTUtil(cfg.JWTSecretKey, cfg.JWTExpirationHours)
	hasher := utils.NewHasher(cfg.PasswordHashScheme)

	// --- Initialize Services ---
	userService := service.NewUserService(userRepo, hasher, jwtUtil)
	transactionService := service.NewTransactionService(transactionRepo, categoryRules)
	analyticsService := service.NewAnalyticsService(transactionRepo, userRepo)

	// --- Initialize Handlers ---
	authHandler := handler.NewAuthHandler(userService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// --- Setup Gin Router ---
	router := gin.Default()

	// Simple CORS middleware (allow all for development)
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// --- Initialize Middlewares ---
	jwtAuthMW := middleware.JWTAuthMiddleware(jwtUtil)

	// --- Register Routes ---
	apiGroup := router.Group("/api/v1")
	authHandler.RegisterAuthRoutes(apiGroup, jwtAuthMW)
	transactionHandler.RegisterTransactionRoutes(apiGroup, jwtAuthMW)
	analyticsHandler.RegisterAnalyticsRoutes(apiGroup, jwtAuthMW)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		if dbPool != nil {
			if err := dbPool.Ping(context.Background()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "db": "unhealthy"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// --- Start Server ---
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
