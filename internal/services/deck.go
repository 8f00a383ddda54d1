package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"

	"github.com/yungbote/deckgen-backend/internal/data/repos"
	"github.com/yungbote/deckgen-backend/internal/deck/artifact"
	"github.com/yungbote/deckgen-backend/internal/deck/assemble"
	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	types "github.com/yungbote/deckgen-backend/internal/domain"
	"github.com/yungbote/deckgen-backend/internal/observability"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

// Generation is the outcome of one run of the pipeline.
type Generation struct {
	Presentation *types.Presentation
	Plan         plan.Plan
	Report       plan.Report
	Artifact     artifact.Artifact
	Fallback     bool
}

type DeckService interface {
	// GenerateFromText drafts a plan from free text and renders it.
	GenerateFromText(ctx context.Context, content string) (*Generation, error)
	// RenderPlan normalizes raw and renders it. raw may be anything; a
	// non-mapping value renders as an empty presentation.
	RenderPlan(ctx context.Context, raw any) (*Generation, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Presentation, error)
	List(ctx context.Context, limit int) ([]*types.Presentation, error)
	// ArtifactPath resolves a bare artifact file name inside the output dir
	// and pairs it with its catalog record when one exists.
	ArtifactPath(ctx context.Context, fileName string) (Download, error)
}

// Download is a servable artifact. Presentation is nil for files the
// catalog does not know about.
type Download struct {
	Path         string
	Presentation *types.Presentation
}

type deckService struct {
	log       *logger.Logger
	planner   PlanService
	assembler *assemble.Assembler
	writer    *artifact.Writer
	repo      repos.PresentationRepo
	outputDir string
}

// NewDeckService wires the pipeline. repo may be nil, in which case nothing
// is catalogued and Get/List report not found.
func NewDeckService(log *logger.Logger, planner PlanService, assembler *assemble.Assembler, writer *artifact.Writer, repo repos.PresentationRepo, outputDir string) (DeckService, error) {
	if assembler == nil || writer == nil {
		return nil, fmt.Errorf("deck service: assembler and writer required")
	}
	if strings.TrimSpace(outputDir) == "" {
		return nil, fmt.Errorf("deck service: output dir required")
	}
	return &deckService{
		log:       log.With("service", "DeckService"),
		planner:   planner,
		assembler: assembler,
		writer:    writer,
		repo:      repo,
		outputDir: outputDir,
	}, nil
}

func (s *deckService) GenerateFromText(ctx context.Context, content string) (*Generation, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if s.planner == nil {
		return nil, ErrCompletionUnavailable
	}
	draft, err := s.planner.DraftPlan(ctx, content)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, types.SourceText, content, draft.Raw, draft.Fallback)
}

func (s *deckService) RenderPlan(ctx context.Context, raw any) (*Generation, error) {
	return s.run(ctx, types.SourcePlan, "", raw, false)
}

func (s *deckService) run(ctx context.Context, source, input string, raw any, fallback bool) (*Generation, error) {
	ctx, span := observability.Tracer("services").Start(ctx, "deck.generate")
	defer span.End()
	span.SetAttributes(attribute.String("deck.source", source))
	metrics := observability.Current()

	start := time.Now()
	p, rep := plan.Normalize(raw)
	metrics.ObserveStage("normalize", "ok", time.Since(start))
	observability.ReportPlanRepairs(ctx, s.log, source, rep)

	start = time.Now()
	doc := s.assembler.Assemble(p)
	metrics.ObserveStage("assemble", "ok", time.Since(start))
	for _, page := range doc.Pages {
		metrics.IncSlideRendered(page.Kind)
	}

	start = time.Now()
	art, err := s.writer.Persist(ctx, doc, s.outputDir)
	if err != nil {
		kind, _ := artifact.KindOf(err)
		metrics.ObserveStage("persist", "error", time.Since(start))
		metrics.IncPersistFailure(string(kind))
		metrics.ObserveGeneration(source, string(kind))
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		s.log.WithContext(ctx).Error("persist failed", "kind", kind, "error", err)
		return nil, err
	}
	metrics.ObserveStage("persist", "ok", time.Since(start))

	planJSON, err := p.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}
	row := &types.Presentation{
		ID:            uuid.New(),
		Title:         p.Title,
		Source:        source,
		OriginalInput: input,
		Plan:          datatypes.JSON(planJSON),
		FileName:      art.Name,
		FilePath:      art.Path,
		SlideCount:    art.Pages,
		SizeBytes:     art.Bytes,
		Repairs:       len(rep.Issues),
		Fallback:      fallback,
	}
	if s.repo != nil {
		if _, err := s.repo.Create(ctx, nil, []*types.Presentation{row}); err != nil {
			// the artifact is complete; a catalog failure does not undo it
			s.log.WithContext(ctx).Error("catalog insert failed", "file", art.Name, "error", err)
		}
	}

	outcome := "success"
	if fallback {
		outcome = "fallback"
	}
	metrics.ObserveGeneration(source, outcome)
	span.SetAttributes(
		attribute.String("deck.presentation_id", row.ID.String()),
		attribute.Int("deck.slides", art.Pages),
		attribute.Int("deck.repairs", len(rep.Issues)),
	)
	s.log.WithContext(ctx).Info("presentation generated",
		"presentation_id", row.ID.String(),
		"file", art.Name,
		"slides", art.Pages,
		"repairs", len(rep.Issues),
		"fallback", fallback,
	)

	return &Generation{Presentation: row, Plan: p, Report: rep, Artifact: art, Fallback: fallback}, nil
}

func (s *deckService) Get(ctx context.Context, id uuid.UUID) (*types.Presentation, error) {
	if s.repo == nil {
		return nil, ErrPresentationNotFound
	}
	row, err := s.repo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ErrPresentationNotFound
	}
	return row, nil
}

func (s *deckService) List(ctx context.Context, limit int) ([]*types.Presentation, error) {
	if s.repo == nil {
		return []*types.Presentation{}, nil
	}
	return s.repo.ListRecent(ctx, nil, limit)
}

func (s *deckService) ArtifactPath(ctx context.Context, fileName string) (Download, error) {
	name := strings.TrimSpace(fileName)
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || name == "." || name == ".." || strings.HasPrefix(name, ".") {
		return Download{}, ErrInvalidFileName
	}
	path := filepath.Join(s.outputDir, name)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return Download{}, ErrArtifactNotFound
	}
	if err != nil {
		return Download{}, fmt.Errorf("stat artifact: %w", err)
	}
	if !info.Mode().IsRegular() {
		return Download{}, ErrArtifactNotFound
	}

	dl := Download{Path: path}
	if s.repo != nil {
		// the file on disk is authoritative; a catalog miss or error only
		// drops the record
		row, err := s.repo.GetByFileName(ctx, nil, name)
		if err != nil {
			s.log.WithContext(ctx).Warn("catalog lookup for download failed", "file_name", name, "error", err)
		}
		dl.Presentation = row
	}
	return dl, nil
}
