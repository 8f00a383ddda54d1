package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/yungbote/deckgen-backend/internal/deck/assemble"
	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/deck/raster"
	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
	"github.com/yungbote/deckgen-backend/internal/deck/template"
	"github.com/yungbote/deckgen-backend/internal/observability"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type PreviewService interface {
	// SlidePNG renders slide n (1-based) of a catalogued presentation.
	SlidePNG(ctx context.Context, id uuid.UUID, n int) ([]byte, error)
	// PlanSlidePNG renders slide n (1-based) of an already normalized plan.
	PlanSlidePNG(ctx context.Context, p plan.Plan, n int) ([]byte, error)
}

type previewService struct {
	log        *logger.Logger
	decks      DeckService
	assembler  *assemble.Assembler
	rasterizer *raster.Rasterizer
	group      singleflight.Group

	glyphWarning sync.Once
}

func NewPreviewService(log *logger.Logger, decks DeckService, assembler *assemble.Assembler, rasterizer *raster.Rasterizer) PreviewService {
	return &previewService{
		log:        log.With("service", "PreviewService"),
		decks:      decks,
		assembler:  assembler,
		rasterizer: rasterizer,
	}
}

// SlidePNG collapses concurrent requests for the same slide into one render.
// The shared render ignores any one caller's cancellation; a caller that
// goes away stops waiting but the others still get the image.
func (s *previewService) SlidePNG(ctx context.Context, id uuid.UUID, n int) ([]byte, error) {
	key := id.String() + ":" + strconv.Itoa(n)
	shared := context.WithoutCancel(ctx)
	ch := s.group.DoChan(key, func() (interface{}, error) {
		row, err := s.decks.Get(shared, id)
		if err != nil {
			return nil, err
		}
		p, _ := plan.Parse(row.Plan)
		return s.PlanSlidePNG(shared, p, n)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			s.log.Debug("preview shared", "key", key)
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (s *previewService) PlanSlidePNG(ctx context.Context, p plan.Plan, n int) ([]byte, error) {
	_, span := observability.Tracer("services").Start(ctx, "preview.render")
	defer span.End()
	start := time.Now()

	doc, err := s.assembler.AssemblePage(p, n-1)
	if err != nil {
		observability.Current().IncPreview("not_found")
		return nil, fmt.Errorf("%w: %d of %d", ErrSlideNotFound, n, len(p.Slides))
	}
	s.warnMissingGlyphs(ctx, doc.Pages[0])
	var buf bytes.Buffer
	if err := s.rasterizer.EncodePNG(&buf, doc.Pages[0], template.Canvas()); err != nil {
		observability.Current().IncPreview("error")
		span.RecordError(err)
		return nil, err
	}
	observability.Current().IncPreview("ok")
	observability.Current().ObserveStage("preview", "ok", time.Since(start))
	return buf.Bytes(), nil
}

// warnMissingGlyphs logs once per process when the preview font cannot draw
// some of a page's text, which then shows up as empty boxes.
func (s *previewService) warnMissingGlyphs(ctx context.Context, page *slidedoc.Page) {
	runes := s.rasterizer.PageMissingGlyphs(page)
	if len(runes) == 0 {
		return
	}
	s.glyphWarning.Do(func() {
		s.log.WithContext(ctx).Warn("preview font lacks glyphs; set DECK_FONT_PATH to a font covering this text",
			"missing", string(runes),
		)
	})
}
