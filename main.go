package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/varstress/config"
	_ "github.com/epeers/varstress/docs"
	"github.com/epeers/varstress/internal/cache"
	"github.com/epeers/varstress/internal/database"
	"github.com/epeers/varstress/internal/handlers"
	"github.com/epeers/varstress/internal/repository"
	"github.com/epeers/varstress/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//go:generate swag init --parseDependency --output docs

// @title VaR and Stress API
// @version 1.0
// @description Delta-Normal Value-at-Risk and deterministic stress scenarios over a risk class catalog.
// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	// Create context for initialization
	ctx := context.Background()

	// Pick the run store: PostgreSQL when configured, memory otherwise
	var store services.RunStore
	if cfg.PGURL != "" {
		db, err := database.New(ctx, cfg.PGURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		store = repository.NewRunRepository(db.Pool)
	} else {
		memCache := cache.NewMemoryCache(cfg.RunTTL)
		go evictLoop(ctx, memCache, cfg.RunTTL)
		store = memCache
		log.Warn("PG_URL not set, keeping risk runs in memory")
	}

	// Initialize services
	riskSvc, err := services.NewRiskService(cfg.Risk, store, cfg.ConfidenceFallback)
	if err != nil {
		log.Fatalf("Failed to initialize risk service: %v", err)
	}

	// Setup Gin router
	router := gin.Default()
	handlers.RegisterRoutes(router, riskSvc)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}

// evictLoop drops expired in-memory runs once per TTL.
func evictLoop(ctx context.Context, c *cache.MemoryCache, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Evict(); n > 0 {
				log.Debugf("evicted %d expired risk runs", n)
			}
		}
	}
}
