package app

import (
	"github.com/yungbote/deckgen-backend/internal/http"
	"github.com/yungbote/deckgen-backend/internal/observability"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, metrics *observability.Metrics) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:            log,
		ServiceName:    "deckgen",
		CORSOrigins:    cfg.CORSOrigins,
		Metrics:        metrics,
		HealthHandler:  handlers.Health,
		DeckHandler:    handlers.Deck,
		PreviewHandler: handlers.Preview,
	})
}
