package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yungbote/deckgen-backend/internal/data/repos"
	"github.com/yungbote/deckgen-backend/internal/data/repos/testutil"
	"github.com/yungbote/deckgen-backend/internal/deck/artifact"
	"github.com/yungbote/deckgen-backend/internal/deck/assemble"
	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/deck/pptx"
	"github.com/yungbote/deckgen-backend/internal/deck/raster"
	"github.com/yungbote/deckgen-backend/internal/deck/template"
	types "github.com/yungbote/deckgen-backend/internal/domain"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type fakeCompletion struct {
	mu    sync.Mutex
	text  string
	err   error
	calls int
}

func (f *fakeCompletion) GenerateText(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.text, f.err
}

type fixture struct {
	decks     DeckService
	previews  PreviewService
	outputDir string
	repo      repos.PresentationRepo
	asm       *assemble.Assembler
	rz        *raster.Rasterizer
}

func newFixture(t *testing.T, planner PlanService) fixture {
	t.Helper()
	theme, err := template.DefaultTheme()
	require.NoError(t, err)
	asm := assemble.New(template.NewRegistry(theme), nil)
	out := filepath.Join(t.TempDir(), "generated")
	writer := artifact.NewWriter(pptx.New(), artifact.WithScratchDir(t.TempDir()))
	repo := repos.NewPresentationRepo(testutil.DB(t), logger.Nop())

	decks, err := NewDeckService(logger.Nop(), planner, asm, writer, repo, out)
	require.NoError(t, err)
	rz, err := raster.New(raster.Options{Width: 320})
	require.NoError(t, err)
	return fixture{
		decks:     decks,
		previews:  NewPreviewService(logger.Nop(), decks, asm, rz),
		outputDir: out,
		repo:      repo,
		asm:       asm,
		rz:        rz,
	}
}

const samplePlan = `{"title":"Q1 Review","slides":[
 {"title":"Q1 Review","type":"title_slide","content":{"main_message":"Quarterly results"}},
 {"title":"Results","type":"financial_slide","content":{"data":{"Revenue":"$10M"}}},
 {"type":"mystery","content":"oops"}]}`

func TestPlanServiceUsesCompletionOutput(t *testing.T) {
	fc := &fakeCompletion{text: "Sure!\n```json\n{\"title\":\"Growth\",\"slides\":[]}\n```"}
	draft, err := NewPlanService(logger.Nop(), fc).DraftPlan(context.Background(), "grow revenue")
	require.NoError(t, err)
	require.False(t, draft.Fallback)
	p, _ := plan.Normalize(draft.Raw)
	require.Equal(t, "Growth", p.Title)
	require.Equal(t, 1, fc.calls)
}

func TestPlanServiceFallsBack(t *testing.T) {
	long := strings.Repeat("あ", 250)
	cases := map[string]PlanService{
		"completion error": NewPlanService(logger.Nop(), &fakeCompletion{err: errors.New("boom")}),
		"no json":          NewPlanService(logger.Nop(), &fakeCompletion{text: "I cannot help with that."}),
		"no client":        NewPlanService(logger.Nop(), nil),
	}
	for name, svc := range cases {
		t.Run(name, func(t *testing.T) {
			draft, err := svc.DraftPlan(context.Background(), long)
			require.NoError(t, err)
			require.True(t, draft.Fallback)
			require.NotEmpty(t, draft.Reason)

			p, rep := plan.Normalize(draft.Raw)
			require.Len(t, p.Slides, 2)
			require.True(t, rep.Empty(), "fallback plan should need no repairs: %v", rep.Strings())
			require.Equal(t, plan.TitleSlide, p.Slides[0].Type)
			msg := p.Slides[1].Content.Text(plan.KeyMainMessage)
			require.Equal(t, 203, utf8.RuneCountInString(msg))
			require.True(t, strings.HasSuffix(msg, "..."))
		})
	}
}

func TestPlanServiceRejectsEmptyContent(t *testing.T) {
	_, err := NewPlanService(logger.Nop(), nil).DraftPlan(context.Background(), "   ")
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestDeckServiceRenderPlan(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	raw, err := plan.Decode([]byte(samplePlan))
	require.NoError(t, err)

	gen, err := f.decks.RenderPlan(ctx, raw)
	require.NoError(t, err)
	require.Equal(t, 3, gen.Artifact.Pages)
	require.Equal(t, 3, gen.Presentation.SlideCount)
	require.True(t, strings.HasPrefix(gen.Artifact.Name, "presentation_"))
	require.FileExists(t, filepath.Join(f.outputDir, gen.Artifact.Name))
	require.True(t, gen.Report.Has(plan.IssueSlideTypeUnknown))
	require.True(t, gen.Report.Has(plan.IssueContentDefaulted))

	row, err := f.decks.Get(ctx, gen.Presentation.ID)
	require.NoError(t, err)
	require.Equal(t, "Q1 Review", row.Title)
	stored, _ := plan.Parse(row.Plan)
	require.Equal(t, "Slide 3", stored.Slides[2].Title)

	list, err := f.decks.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)

	dl, err := f.decks.ArtifactPath(ctx, gen.Artifact.Name)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(f.outputDir, gen.Artifact.Name), dl.Path)
	require.NotNil(t, dl.Presentation)
	require.Equal(t, gen.Presentation.ID, dl.Presentation.ID)
}

func TestDeckServiceArtifactPathWithoutCatalogRecord(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.MkdirAll(f.outputDir, 0o755))
	name := "presentation_20240101_000000_manual.pptx"
	require.NoError(t, os.WriteFile(filepath.Join(f.outputDir, name), []byte("PK"), 0o644))

	dl, err := f.decks.ArtifactPath(context.Background(), name)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(f.outputDir, name), dl.Path)
	require.Nil(t, dl.Presentation)
}

func TestDeckServiceRenderNonMappingPlan(t *testing.T) {
	f := newFixture(t, nil)
	gen, err := f.decks.RenderPlan(context.Background(), []any{"not", "a", "plan"})
	require.NoError(t, err)
	require.Equal(t, plan.DefaultTitle, gen.Plan.Title)
	require.Equal(t, 0, gen.Artifact.Pages)
	require.FileExists(t, gen.Artifact.Path)
}

func TestDeckServiceGenerateFromText(t *testing.T) {
	fc := &fakeCompletion{text: samplePlan}
	f := newFixture(t, NewPlanService(logger.Nop(), fc))
	gen, err := f.decks.GenerateFromText(context.Background(), "Q1 went well")
	require.NoError(t, err)
	require.False(t, gen.Fallback)
	require.Equal(t, "Q1 went well", gen.Presentation.OriginalInput)
	require.Equal(t, 3, gen.Presentation.SlideCount)

	_, err = f.decks.GenerateFromText(context.Background(), "")
	require.ErrorIs(t, err, ErrEmptyContent)
}

func TestDeckServicePersistFailureIsTagged(t *testing.T) {
	f := newFixture(t, nil)
	// the output dir path is occupied by a regular file
	require.NoError(t, os.MkdirAll(filepath.Dir(f.outputDir), 0o755))
	require.NoError(t, os.WriteFile(f.outputDir, []byte("x"), 0o644))

	_, err := f.decks.RenderPlan(context.Background(), map[string]any{"title": "x"})
	kind, ok := artifact.KindOf(err)
	require.True(t, ok, "error: %v", err)
	require.Equal(t, artifact.KindIO, kind)

	list, err := f.decks.List(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestDeckServiceArtifactPathRejectsTraversal(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	for _, name := range []string{"", "../secret.pptx", "a/b.pptx", `a\b.pptx`, "..", ".deck-1.partial"} {
		_, err := f.decks.ArtifactPath(ctx, name)
		require.ErrorIs(t, err, ErrInvalidFileName, "name %q", name)
	}
	_, err := f.decks.ArtifactPath(ctx, "presentation_missing.pptx")
	require.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestDeckServiceGetUnknown(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.decks.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrPresentationNotFound)
}

func TestPreviewService(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	raw, err := plan.Decode([]byte(samplePlan))
	require.NoError(t, err)
	gen, err := f.decks.RenderPlan(ctx, raw)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]byte, 4)
	errs := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = f.previews.SlidePNG(ctx, gen.Presentation.ID, 2)
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		require.True(t, bytes.HasPrefix(results[i], []byte("\x89PNG")))
	}

	_, err = f.previews.SlidePNG(ctx, gen.Presentation.ID, 4)
	require.ErrorIs(t, err, ErrSlideNotFound)
	_, err = f.previews.SlidePNG(ctx, gen.Presentation.ID, 0)
	require.ErrorIs(t, err, ErrSlideNotFound)
	_, err = f.previews.SlidePNG(ctx, uuid.New(), 1)
	require.ErrorIs(t, err, ErrPresentationNotFound)
}

// gatedDecks holds Get until release is closed and records the contexts
// it was called with.
type gatedDecks struct {
	DeckService
	started chan struct{}
	release chan struct{}

	mu   sync.Mutex
	ctxs []context.Context
}

func (g *gatedDecks) Get(ctx context.Context, id uuid.UUID) (*types.Presentation, error) {
	g.mu.Lock()
	g.ctxs = append(g.ctxs, ctx)
	g.mu.Unlock()
	g.started <- struct{}{}
	<-g.release
	return g.DeckService.Get(ctx, id)
}

func TestPreviewSharedRenderOutlivesCancelledCaller(t *testing.T) {
	f := newFixture(t, nil)
	raw, err := plan.Decode([]byte(samplePlan))
	require.NoError(t, err)
	gen, err := f.decks.RenderPlan(context.Background(), raw)
	require.NoError(t, err)

	gated := &gatedDecks{DeckService: f.decks, started: make(chan struct{}, 2), release: make(chan struct{})}
	previews := NewPreviewService(logger.Nop(), gated, f.asm, f.rz)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := previews.SlidePNG(ctxA, gen.Presentation.ID, 1)
		errA <- err
	}()
	<-gated.started

	type result struct {
		png []byte
		err error
	}
	resB := make(chan result, 1)
	go func() {
		png, err := previews.SlidePNG(context.Background(), gen.Presentation.ID, 1)
		resB <- result{png, err}
	}()

	cancelA()
	require.ErrorIs(t, <-errA, context.Canceled)

	gated.mu.Lock()
	sharedCtx := gated.ctxs[0]
	gated.mu.Unlock()
	require.NoError(t, sharedCtx.Err(), "shared render must not inherit the caller's cancellation")

	close(gated.release)
	got := <-resB
	require.NoError(t, got.err)
	require.True(t, bytes.HasPrefix(got.png, []byte("\x89PNG")))
}

func TestPreviewWarnsOnceAboutMissingGlyphs(t *testing.T) {
	f := newFixture(t, nil)
	core, logs := observer.New(zap.WarnLevel)
	previews := NewPreviewService(logger.FromCore(core), f.decks, f.asm, f.rz)

	p, _ := plan.Parse([]byte(samplePlan))
	for n := 1; n <= len(p.Slides); n++ {
		_, err := previews.PlanSlidePNG(context.Background(), p, n)
		require.NoError(t, err)
	}
	_, err := previews.PlanSlidePNG(context.Background(), p, 2)
	require.NoError(t, err)

	warned := logs.FilterMessageSnippet("preview font lacks glyphs").All()
	require.Len(t, warned, 1)
	require.NotEmpty(t, warned[0].ContextMap()["missing"])
}
