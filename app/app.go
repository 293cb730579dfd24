// Package app wires the storefront services into an HTTP handler.
package app

import (
	"net/http"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mytheresa/storefront/app/cart"
	"github.com/mytheresa/storefront/app/catalog"
	"github.com/mytheresa/storefront/app/checkout"
	"github.com/mytheresa/storefront/app/compare"
	"github.com/mytheresa/storefront/app/profile"
	"github.com/mytheresa/storefront/app/router"
	"github.com/mytheresa/storefront/app/session"
	"github.com/mytheresa/storefront/app/themes"
	store "github.com/mytheresa/storefront/catalog"
	orders "github.com/mytheresa/storefront/checkout"
	"github.com/mytheresa/storefront/config"
	"github.com/mytheresa/storefront/history"
	"github.com/mytheresa/storefront/models"
	"github.com/mytheresa/storefront/promo"
	"github.com/mytheresa/storefront/storefront"
)

// App is the initialized application.
type App struct {
	Handler  http.Handler
	Sessions *storefront.Manager

	db *gorm.DB
}

// Initialize opens the configured backends and builds the router.
func Initialize(cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{}

	if cfg.UsesPostgres() {
		db, err := openDB(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.db = db
		log.Info("database connection established")
	}

	cat, err := loadCatalog(cfg, a.db)
	if err != nil {
		a.Close()
		return nil, err
	}
	log.Info("catalog loaded",
		zap.String("source", cfg.CatalogSource),
		zap.Int("themes", len(cat.Themes())))

	past := orderStore(cfg, a.db)
	log.Info("order store ready", zap.String("store", cfg.OrderStore))

	promos := promo.Default()
	a.Sessions = storefront.NewManager(storefront.Deps{
		Catalog:  cat,
		Promos:   promos,
		Checkout: orders.NewService(past),
		History:  past,
		Logger:   log,
	},
		storefront.WithIdleTimeout(cfg.SessionIdle),
		storefront.WithCapacity(cfg.SessionCapacity),
	)

	a.Handler = router.New(&router.Handlers{
		Session:  session.NewHandler(),
		Themes:   themes.NewThemeHandler(cat),
		Catalog:  catalog.NewCatalogHandler(cat),
		Cart:     cart.NewCartHandler(promos),
		Compare:  compare.NewCompareHandler(),
		Checkout: checkout.NewCheckoutHandler(log),
		Profile:  profile.NewProfileHandler(log),
	}, a.Sessions, log)

	return a, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func openDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := models.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// loadCatalog builds the catalog from the embedded themes or from the
// database. An empty database is seeded with the embedded themes first.
func loadCatalog(cfg config.Config, db *gorm.DB) (*store.Store, error) {
	if cfg.CatalogSource != config.CatalogPostgres {
		return store.LoadEmbedded()
	}
	repo := models.NewProductsRepository(db)
	themes, err := repo.GetThemes()
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		seed, err := store.EmbeddedThemes()
		if err != nil {
			return nil, err
		}
		if err := repo.SaveThemes(seed); err != nil {
			return nil, errors.Wrap(err, "seed catalog")
		}
	}
	return store.LoadFrom(repo)
}

func orderStore(cfg config.Config, db *gorm.DB) history.Store {
	switch cfg.OrderStore {
	case config.OrderStorePostgres:
		return models.NewOrdersRepository(db)
	case config.OrderStoreMemory:
		return history.NewMemoryStore()
	default:
		return history.NewFileStore(cfg.OrdersFile)
	}
}
