package app

import (
	"errors"
	"fmt"

	"github.com/yungbote/deckgen-backend/internal/deck/artifact"
	"github.com/yungbote/deckgen-backend/internal/deck/assemble"
	"github.com/yungbote/deckgen-backend/internal/deck/pptx"
	"github.com/yungbote/deckgen-backend/internal/deck/raster"
	"github.com/yungbote/deckgen-backend/internal/deck/template"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
	"github.com/yungbote/deckgen-backend/internal/platform/openai"
	"github.com/yungbote/deckgen-backend/internal/services"
)

type Services struct {
	Plan    services.PlanService
	Deck    services.DeckService
	Preview services.PreviewService
}

func wireServices(log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	theme, err := template.LoadTheme(cfg.ThemePath)
	if err != nil {
		return Services{}, fmt.Errorf("load theme: %w", err)
	}
	assembler := assemble.New(template.NewRegistry(theme), nil)

	encoder := pptx.New(pptx.WithFonts(theme.Typography.Family, theme.Typography.EastAsianFamily))
	writer := artifact.NewWriter(encoder,
		artifact.WithScratchDir(cfg.ScratchDir),
		artifact.WithLogger(log),
	)

	client, err := openai.NewClient(log)
	switch {
	case errors.Is(err, openai.ErrMissingAPIKey):
		log.Warn("OPENAI_API_KEY not set; /api/generate will use fallback plans")
		client = nil
	case err != nil:
		return Services{}, fmt.Errorf("init completion client: %w", err)
	}
	planner := services.NewPlanService(log, client)

	decks, err := services.NewDeckService(log, planner, assembler, writer, reposet.Presentation, cfg.OutputDir)
	if err != nil {
		return Services{}, err
	}

	rz, err := raster.New(raster.Options{
		Width:           cfg.PreviewWidth,
		RegularFontPath: cfg.FontPath,
		BoldFontPath:    cfg.FontBoldPath,
	})
	if err != nil {
		return Services{}, fmt.Errorf("init rasterizer: %w", err)
	}
	if missing := rz.MissingGlyphs(theme.Captions.Text()); len(missing) > 0 {
		log.Warn("preview font cannot draw theme captions; set DECK_FONT_PATH to a font that covers them",
			"missing", string(missing),
		)
	}

	return Services{
		Plan:    planner,
		Deck:    decks,
		Preview: services.NewPreviewService(log, decks, assembler, rz),
	}, nil
}
