package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	contracts "github.com/murkotick/offering-catalog-service/internal/app/product/contracts"
	"github.com/murkotick/offering-catalog-service/internal/app/product/queries"
	"github.com/murkotick/offering-catalog-service/internal/app/product/queries/get_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/queries/search_products"
	"github.com/murkotick/offering-catalog-service/internal/app/product/repo"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/add_item"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/generate_snapshot"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/publish_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/remove_item"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/remove_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/reorder_items"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/restore_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/revert_to_draft"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/unpublish_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/offering-catalog-service/internal/app/product/validator"
	"github.com/murkotick/offering-catalog-service/internal/pkg/clock"
	committer "github.com/murkotick/offering-catalog-service/internal/pkg/committer"
	"github.com/murkotick/offering-catalog-service/internal/pkg/config"
	"github.com/murkotick/offering-catalog-service/internal/pkg/logger"
	httpproduct "github.com/murkotick/offering-catalog-service/internal/transport/http/product"
)

func main() {
	cfg := config.Load()

	lg, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle SIGINT/SIGTERM.
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		lg.Info("shutdown signal received")
		cancel()
	}()

	client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
	if err != nil {
		lg.Fatal("spanner client", zap.Error(err))
	}
	defer client.Close()

	clk := clock.RealClock{}
	prodRepo := repo.NewProductRepo()
	itemRepo := repo.NewProductItemRepo()
	snapRepo := repo.NewSnapshotRepo()
	outboxRepo := repo.NewOutboxRepo()
	refValidator := validator.New(repo.NewReferenceCatalog())
	cm := committer.NewAdapter(client, lg)

	var readModel contracts.ReadModel = queries.NewSpannerReadModel(client)
	if cfg.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rdb.Close() }()
		readModel = queries.NewCachedReadModel(readModel, rdb, cfg.CacheTTL)
		lg.Info("read-model cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	h := httpproduct.NewHandler(
		create_product.NewInteractor(prodRepo, outboxRepo, cm, clk),
		update_product.NewInteractor(prodRepo, outboxRepo, cm, clk),
		add_item.NewInteractor(prodRepo, itemRepo, outboxRepo, refValidator, cm, clk),
		remove_item.NewInteractor(prodRepo, itemRepo, outboxRepo, cm, clk),
		reorder_items.NewInteractor(prodRepo, itemRepo, outboxRepo, cm, clk),
		publish_product.NewInteractor(prodRepo, outboxRepo, refValidator, cm, clk),
		unpublish_product.NewInteractor(prodRepo, outboxRepo, cm, clk),
		revert_to_draft.NewInteractor(prodRepo, outboxRepo, cm, clk),
		remove_product.NewInteractor(prodRepo, outboxRepo, cm, clk),
		restore_product.NewInteractor(prodRepo, outboxRepo, cm, clk),
		generate_snapshot.NewInteractor(prodRepo, snapRepo, outboxRepo, refValidator, cm, clk),
		get_product.NewHandler(readModel),
		search_products.NewHandler(readModel, cfg.SearchSortField, cfg.SearchSortOrder),
	)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	h.Register(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		lg.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("http serve", zap.Error(err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Warn("http shutdown", zap.Error(err))
	}

	lg.Info("server stopped")
}
