package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"tribe-africa-store/app/controller"
	"tribe-africa-store/app/router"
	"tribe-africa-store/cart"
	"tribe-africa-store/config"
	"tribe-africa-store/db"
	"tribe-africa-store/pricing"
	"tribe-africa-store/repository"
	"tribe-africa-store/service"
)

// App owns the cart store and the resources behind it. Close releases them.
type App struct {
	Handler http.Handler
	Cart    *cart.Store

	db     *sql.DB
	redis  *redis.Client
	logger *zap.Logger
}

// Initialize wires the application from its configuration
func Initialize(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	storeCfg, err := config.LoadStore(cfg.StoreConfigPath)
	if err != nil {
		return nil, err
	}

	engine, err := pricing.NewEngineFromFile(cfg.PricingConfigPath, cfg.StrictPricing(), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize pricing: %w", err)
	}

	catalog, err := repository.NewCatalogRepository(cfg.CatalogPath, engine, engine.Config().Strict, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	// Designs synced in an earlier run are served from the gallery directory
	synced, err := service.GalleryDesigns(cfg.GalleryDir, logger)
	if err != nil {
		return nil, err
	}
	if n := catalog.AddDesigns(ctx, synced); n > 0 {
		logger.Info("gallery designs loaded", zap.String("dir", cfg.GalleryDir), zap.Int("designs", n))
	}

	a := &App{logger: logger}

	kv, err := a.openStorage(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	// The single cart store of this process, hydrated from storage
	cartRepo := repository.NewCartRepository(kv, cfg.CartStorageKey, logger)
	a.Cart = cart.NewStore(ctx, cartRepo, engine, logger)

	formatter := service.NewOrderFormatter(engine, storeCfg.Currency)
	checkout := service.NewCheckoutService(service.HandoffConfig{
		BaseURL:            storeCfg.MessagingBaseURL,
		Number:             storeCfg.WhatsAppNumber,
		OrderPrefix:        storeCfg.OrderPrefix,
		OrderSuffix:        storeCfg.OrderSuffix,
		ConsultationPrefix: storeCfg.ConsultationPrefix,
		ConsultationSuffix: storeCfg.ConsultationSuffix,
	}, formatter, a.Cart, logger)

	optimizer := service.NewImageOptimizer(logger)
	lookbook := service.NewLookbookService(catalog, engine, storeCfg.Currency, storeCfg.BusinessName, cfg.BaseURL, cfg.ChromePath, logger)

	// Gallery sync needs Drive credentials and is disabled without them
	var syncService service.SyncServiceInterface
	if cfg.GoogleCredentials != "" {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentials, logger)
		if err != nil {
			a.Close()
			return nil, err
		}
		syncService = service.NewSyncService(driveService, optimizer, cfg.GalleryDir, logger)
	} else {
		logger.Warn("GOOGLE_APPLICATION_CREDENTIALS is not set, gallery sync disabled")
	}

	controllers := &router.Controllers{
		Cart:    controller.NewCartController(a.Cart, catalog, logger),
		Catalog: controller.NewCatalogController(catalog, engine, lookbook, logger),
		Order:   controller.NewOrderController(checkout, catalog, engine, logger),
		Image:   controller.NewImageController(optimizer, logger),
		Gallery: controller.NewGalleryController(syncService, catalog, logger),
	}
	a.Handler = router.SetupRoutes(controllers, cfg.GalleryDir, logger)

	return a, nil
}

// openStorage connects the key-value backend the cart is persisted in
func (a *App) openStorage(ctx context.Context, cfg config.Config) (repository.KeyValueStore, error) {
	switch cfg.StorageBackend {
	case config.StorageMemory:
		a.logger.Warn("using in-memory cart storage, the cart is lost on restart")
		return repository.NewMemoryStore(), nil

	case config.StorageRedis:
		opt, err := repository.RedisOptions(cfg.RedisURL, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			return nil, err
		}
		a.redis = redis.NewClient(opt)
		if err := a.redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opt.Addr, err)
		}
		a.logger.Info("redis connected", zap.String("addr", opt.Addr))
		return repository.NewRedisStore(a.redis, "tribe-africa:"), nil

	case config.StoragePostgres:
		dsn, err := cfg.DatabaseDSN()
		if err != nil {
			return nil, err
		}
		if a.db, err = db.Open(ctx, dsn, a.logger); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.EnsureSchema(ctx, a.db); err != nil {
			return nil, err
		}
		return repository.NewPostgresStore(a.db), nil

	default:
		store, err := repository.NewFileStore(cfg.StorageDir)
		if err != nil {
			return nil, err
		}
		a.logger.Info("using file cart storage", zap.String("dir", cfg.StorageDir))
		return store, nil
	}
}

// Close releases the storage connections
func (a *App) Close() error {
	var firstErr error
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			firstErr = err
		}
	}
	if err := db.Close(a.db); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
