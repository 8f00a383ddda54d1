package app

import (
	httpH "github.com/yungbote/deckgen-backend/internal/http/handlers"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type Handlers struct {
	Health  *httpH.HealthHandler
	Deck    *httpH.DeckHandler
	Preview *httpH.PreviewHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:  httpH.NewHealthHandler(cfg.Version),
		Deck:    httpH.NewDeckHandler(services.Deck),
		Preview: httpH.NewPreviewHandler(services.Preview),
	}
}
