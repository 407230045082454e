package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"onbid-goods-api/internal/cache"
	"onbid-goods-api/internal/config"
	"onbid-goods-api/internal/onbid"
	"onbid-goods-api/internal/repository"
	"onbid-goods-api/internal/service"
	"onbid-goods-api/internal/syncer"
	httpTransport "onbid-goods-api/internal/transport/http"
	"onbid-goods-api/internal/transport/http/handler"

	_ "github.com/go-sql-driver/mysql"
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	log.Printf("Starting %s v%s in %s mode",
		cfg.App.Name,
		cfg.App.Version,
		cfg.App.Environment,
	)

	// Connect to MySQL (goods snapshot + purchase ledger)
	db, err := connectDB(cfg.Database)
	if err != nil {
		log.Fatalf("FATAL: Failed to connect to MySQL: %v", err)
	}
	defer db.Close()
	log.Println("✓ MySQL connected")

	goodsRepo, err := repository.NewMySQLGoodsRepository(db)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize goods repository: %v", err)
	}
	purchaseRepo, err := repository.NewMySQLPurchaseRepository(db)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize purchase repository: %v", err)
	}
	log.Println("✓ Database schema ready")

	// Redis cache is optional; without it reads go straight to MySQL.
	var listCache *cache.GoodsListCache
	if cfg.Cache.Enabled {
		listCache, err = cache.NewGoodsListCache(cache.GoodsCacheConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
			TTL:      cfg.Cache.TTL,
		})
		if err != nil {
			log.Printf("⚠ Redis unavailable: %v (serving reads from MySQL)", err)
			listCache = nil
		} else {
			defer listCache.Close()
			log.Println("✓ Redis goods cache enabled")
		}
	}

	// Domain services
	onbidClient := onbid.NewClient(cfg.Onbid)
	goodsService := service.NewGoodsService(goodsRepo, listCache)
	purchaseService := service.NewPurchaseService(purchaseRepo)

	// Background synchronization job
	tracker := syncer.NewStatusTracker(cfg.Sync.Interval)
	var goodsSyncer *syncer.Syncer
	if cfg.Sync.Enabled {
		goodsSyncer = syncer.New(onbidClient, goodsService, tracker, cfg.Sync)
		goodsSyncer.Start()
		defer goodsSyncer.Close()
	} else {
		log.Println("⚠ Goods sync disabled by configuration")
	}

	// Transport layer
	h := handler.New(db, cfg.App.Version)
	goodsHandler := handler.NewGoodsHandler(onbidClient, goodsService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	syncHandler := handler.NewSyncHandler(tracker, goodsSyncer)

	router := httpTransport.NewRouter(h, goodsHandler, purchaseHandler, syncHandler)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("HTTP server listening on %s", cfg.Server.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}

// connectDB establishes a connection to the MySQL database.
func connectDB(cfg config.DatabaseConfig) (*sql.DB, error) {
	// DSN with timeout settings to prevent hanging connections
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4&collation=utf8mb4_unicode_ci&timeout=5s&readTimeout=10s&writeTimeout=10s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetConnMaxIdleTime(1 * time.Minute)

	// Verify connection with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	return db, nil
}

// init sets up logging format
func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
}
