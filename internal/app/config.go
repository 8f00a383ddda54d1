package app

import (
	"strings"

	"github.com/yungbote/deckgen-backend/internal/platform/envutil"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type Config struct {
	Port    string
	Version string
	Env     string

	OutputDir  string
	ScratchDir string
	ThemePath  string

	FontPath     string
	FontBoldPath string
	PreviewWidth int

	CatalogDriver string
	CatalogDSN    string

	CORSOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:          envutil.String("PORT", "8080"),
		Version:       envutil.String("APP_VERSION", "dev"),
		Env:           envutil.String("APP_ENV", "development"),
		OutputDir:     envutil.String("DECK_OUTPUT_DIR", "data/generated"),
		ScratchDir:    envutil.String("DECK_SCRATCH_DIR", ""),
		ThemePath:     envutil.String("DECK_THEME_PATH", ""),
		FontPath:      envutil.String("DECK_FONT_PATH", ""),
		FontBoldPath:  envutil.String("DECK_FONT_BOLD_PATH", ""),
		PreviewWidth:  envutil.Int("PREVIEW_WIDTH", 1280),
		CatalogDriver: envutil.String("CATALOG_DRIVER", "sqlite"),
		CatalogDSN:    envutil.String("CATALOG_DSN", ""),
		CORSOrigins:   splitList(envutil.String("CORS_ORIGINS", "")),
	}
	if log != nil {
		log.Info("config loaded",
			"port", cfg.Port,
			"version", cfg.Version,
			"output_dir", cfg.OutputDir,
			"theme_path", cfg.ThemePath,
			"catalog_driver", cfg.CatalogDriver,
			"dsn", cfg.CatalogDSN,
		)
	}
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
