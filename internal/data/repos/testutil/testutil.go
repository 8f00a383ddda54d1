package testutil

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"gorm.io/gorm"

	catalogdb "github.com/yungbote/deckgen-backend/internal/data/db"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB opens a migrated catalog for one test. TEST_POSTGRES_DSN selects a
// postgres catalog; otherwise a fresh sqlite file under tb.TempDir is used.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	cfg := catalogdb.Config{Driver: catalogdb.DriverSQLite, Silent: true}
	if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
		cfg = catalogdb.Config{Driver: catalogdb.DriverPostgres, DSN: dsn, Silent: true}
	} else {
		cfg.DSN = filepath.Join(tb.TempDir(), "catalog.db")
	}
	svc, err := catalogdb.NewCatalogService(logger.Nop(), cfg)
	if err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	return svc.DB()
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
