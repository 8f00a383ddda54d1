package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/deckgen-backend/internal/http/handlers"
	httpMW "github.com/yungbote/deckgen-backend/internal/http/middleware"
	"github.com/yungbote/deckgen-backend/internal/observability"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	HealthHandler  *httpH.HealthHandler
	DeckHandler    *httpH.DeckHandler
	PreviewHandler *httpH.PreviewHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "deckgen"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	// Metrics
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	api := r.Group("/api")
	{
		if cfg.HealthHandler != nil {
			api.GET("/health", cfg.HealthHandler.Health)
		}

		// Decks
		if cfg.DeckHandler != nil {
			api.POST("/generate", cfg.DeckHandler.Generate)
			api.POST("/render", cfg.DeckHandler.Render)
			api.GET("/presentations", cfg.DeckHandler.List)
			api.GET("/presentations/:id", cfg.DeckHandler.Get)
			api.GET("/download/:filename", cfg.DeckHandler.Download)
		}

		// Previews
		if cfg.PreviewHandler != nil {
			api.GET("/presentations/:id/slides/:n/preview.png", cfg.PreviewHandler.SlidePNG)
		}
	}

	return r
}
