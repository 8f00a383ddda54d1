package db

import (
	"path/filepath"
	"testing"

	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

func TestNewCatalogServiceSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "nested", "catalog.db")
	svc, err := NewCatalogService(logger.Nop(), Config{Driver: "sqlite", DSN: dsn, Silent: true})
	if err != nil {
		t.Fatalf("NewCatalogService: %v", err)
	}
	defer svc.Close()
	if !svc.DB().Migrator().HasTable("presentation") {
		t.Fatal("presentation table not migrated")
	}
}

func TestNewCatalogServiceRejectsUnknownDriver(t *testing.T) {
	if _, err := NewCatalogService(logger.Nop(), Config{Driver: "mysql"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
	if _, err := NewCatalogService(logger.Nop(), Config{Driver: "postgres"}); err == nil {
		t.Fatal("expected error for postgres without dsn")
	}
}
