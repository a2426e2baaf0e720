package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pos-service/internal/cache"
	"pos-service/internal/cart"
	"pos-service/internal/catalog"
	"pos-service/internal/checkout"
	"pos-service/internal/config"
	"pos-service/internal/database"
	"pos-service/internal/handlers"
	"pos-service/internal/logger"
	"pos-service/internal/repository"
	"pos-service/internal/routes"
	"pos-service/internal/scheduler"
	"pos-service/internal/storage"
)

func main() {
	cfg := config.LoadConfig()

	zlog, err := logger.Init(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("❌ Could not initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		zlog.Fatal("❌ Could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	zlog.Info("✅ Connected to MongoDB", zap.String("db", cfg.MongoDB))

	db := client.Database(cfg.MongoDB)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		zlog.Warn("⚠️ Could not ensure indexes", zap.Error(err))
	}

	productRepo := repository.NewProductRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)

	store := catalog.New(productRepo, lookupRepo)
	till := cart.New(store)
	searchCache := cache.New(cfg.CacheTTL)
	defer searchCache.Close()

	store.OnRefresh(func() {
		searchCache.DeleteByPrefix(handlers.SearchCachePrefix)
		for _, n := range till.Reconcile() {
			zlog.Info("cart adjusted after refresh",
				zap.String("kind", string(n.Kind)),
				zap.String("product_id", n.ProductID.Hex()),
				zap.Int64("available", n.Available),
			)
		}
	})

	if err := store.Refresh(ctx); err != nil {
		zlog.Error("⚠️ Initial catalog load failed, starting with an empty catalog", zap.Error(err))
	}

	sequencer := checkout.NewSequencer(transactionRepo, productRepo, till, store)

	var images storage.ImageStore
	if cfg.GCSBucket != "" {
		gcsStore, err := storage.NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile, cfg.GCSPublicBaseURL)
		if err != nil {
			zlog.Fatal("❌ Could not create GCS client", zap.Error(err))
		}
		defer gcsStore.Close()
		images = gcsStore
	} else {
		zlog.Info("🌐 GCS_BUCKET not set, image upload disabled")
	}

	sched, err := scheduler.New(cfg.CatalogRefreshSpec, store, 30*time.Second)
	if err != nil {
		zlog.Fatal("❌ Could not schedule catalog refresh", zap.Error(err))
	}
	sched.Start()

	if cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(handlers.RequestID(), handlers.Logger(zlog))
	routes.RegisterRoutes(router, routes.Handlers{
		Products: handlers.NewProductHandler(store, productRepo, images, searchCache),
		Cart:     handlers.NewCartHandler(till, store),
		Checkout: handlers.NewCheckoutHandler(sequencer, transactionRepo),
		Catalog:  handlers.NewCatalogHandler(store, till),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("🚀 Server running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("❌ Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("🛑 Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	sched.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}
}
