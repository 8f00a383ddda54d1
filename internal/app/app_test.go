package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/deckgen-backend/internal/data/repos/testutil"
	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DECK_OUTPUT_DIR", "")
	t.Setenv("CATALOG_DRIVER", "")
	t.Setenv("PREVIEW_WIDTH", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := LoadConfig(logger.Nop())
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "data/generated", cfg.OutputDir)
	require.Equal(t, "sqlite", cfg.CatalogDriver)
	require.Equal(t, 1280, cfg.PreviewWidth)
	require.Empty(t, cfg.CORSOrigins)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DECK_OUTPUT_DIR", "/srv/decks")
	t.Setenv("PREVIEW_WIDTH", "640")
	t.Setenv("CORS_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg := LoadConfig(logger.Nop())
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "/srv/decks", cfg.OutputDir)
	require.Equal(t, 640, cfg.PreviewWidth)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestWireServicesWithoutAPIKeyRendersFallback(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	log := logger.Nop()
	cfg := Config{
		OutputDir:    filepath.Join(t.TempDir(), "out"),
		ScratchDir:   t.TempDir(),
		PreviewWidth: 320,
	}
	svc, err := wireServices(log, cfg, wireRepos(testutil.DB(t), log))
	require.NoError(t, err)

	gen, err := svc.Deck.GenerateFromText(context.Background(), "Roadmap for the next release")
	require.NoError(t, err)
	require.True(t, gen.Fallback)
	require.Equal(t, 2, gen.Artifact.Pages)

	png, err := svc.Preview.PlanSlidePNG(context.Background(), gen.Plan, 1)
	require.NoError(t, err)
	require.NotEmpty(t, png)

	_, err = svc.Preview.PlanSlidePNG(context.Background(), plan.Plan{}, 1)
	require.Error(t, err)
}

func TestWireServicesRejectsBadTheme(t *testing.T) {
	log := logger.Nop()
	cfg := Config{OutputDir: t.TempDir(), ThemePath: filepath.Join(t.TempDir(), "missing.yaml")}
	_, err := wireServices(log, cfg, Repos{})
	require.Error(t, err)
}
