package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/deckgen-backend/internal/domain"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Driver string
	DSN    string
	// Silent disables gorm's own slow-query logging.
	Silent bool
}

type CatalogService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewCatalogService opens the presentation catalog and migrates it.
// sqlite is the default; an empty sqlite DSN means data/catalog.db.
func NewCatalogService(logg *logger.Logger, cfg Config) (*CatalogService, error) {
	serviceLog := logg.With("service", "CatalogService")

	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverSQLite
	}

	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dsn := strings.TrimSpace(cfg.DSN)
		if dsn == "" {
			dsn = filepath.Join("data", "catalog.db")
		}
		if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("create catalog dir: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		if strings.TrimSpace(cfg.DSN) == "" {
			return nil, fmt.Errorf("CATALOG_DSN required for postgres catalog")
		}
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown catalog driver %q", cfg.Driver)
	}

	level := gormLogger.Warn
	if cfg.Silent {
		level = gormLogger.Silent
	}
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s catalog: %w", driver, err)
	}
	if driver == DriverSQLite {
		// sqlite allows a single writer
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}
	if err := migrateCatalog(db); err != nil {
		return nil, fmt.Errorf("migrate catalog: %w", err)
	}

	serviceLog.Info("catalog ready", "driver", driver)
	return &CatalogService{db: db, log: serviceLog}, nil
}

func (s *CatalogService) DB() *gorm.DB { return s.db }

func (s *CatalogService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// catalogModels lists every table the catalog owns.
var catalogModels = []any{
	&domain.Presentation{},
}

func migrateCatalog(db *gorm.DB) error {
	return db.AutoMigrate(catalogModels...)
}
