package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/deckgen-backend/internal/deck/artifact"
	"github.com/yungbote/deckgen-backend/internal/deck/assemble"
	"github.com/yungbote/deckgen-backend/internal/deck/pptx"
	"github.com/yungbote/deckgen-backend/internal/deck/raster"
	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
	"github.com/yungbote/deckgen-backend/internal/deck/template"
	"github.com/yungbote/deckgen-backend/internal/platform/logger"
)

type renderOptions struct {
	planPath   string
	outDir     string
	previewDir string
	themePath  string
	fontPath   string
	width      int
}

func newRenderCmd(root *rootOptions) *cobra.Command {
	opts := renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a plan into a .pptx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, root.log, opts)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.planPath, "plan", "p", "", "plan JSON file, or - for stdin")
	f.StringVarP(&opts.outDir, "out", "o", ".", "directory for the presentation file")
	f.StringVar(&opts.previewDir, "preview", "", "also write one PNG per slide into this directory")
	f.StringVar(&opts.themePath, "theme", "", "theme overrides (.yaml or .toml)")
	f.StringVar(&opts.fontPath, "font", "", "TrueType font for previews")
	f.IntVar(&opts.width, "width", raster.DefaultWidth, "preview width in pixels")
	return cmd
}

func runRender(cmd *cobra.Command, log *logger.Logger, opts renderOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	p, rep, err := readPlan(cmd, opts.planPath)
	if err != nil {
		return err
	}
	printReport(cmd.ErrOrStderr(), rep)

	theme, err := template.LoadTheme(opts.themePath)
	if err != nil {
		return err
	}
	doc := assemble.New(template.NewRegistry(theme), nil).Assemble(p)
	log.Debug("plan assembled", "title", p.Title, "slides", len(doc.Pages), "repairs", len(rep.Issues))

	encoder := pptx.New(pptx.WithFonts(theme.Typography.Family, theme.Typography.EastAsianFamily))
	art, err := artifact.NewWriter(encoder, artifact.WithLogger(log)).Persist(ctx, doc, opts.outDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d slides\n", art.Path, art.Pages)

	if opts.previewDir == "" {
		return nil
	}
	paths, err := writePreviews(ctx, cmd.ErrOrStderr(), doc, opts)
	if err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// writePreviews rasterizes every page concurrently and returns the written
// paths in page order.
func writePreviews(ctx context.Context, warn io.Writer, doc *slidedoc.Document, opts renderOptions) ([]string, error) {
	rz, err := raster.New(raster.Options{Width: opts.width, RegularFontPath: opts.fontPath})
	if err != nil {
		return nil, err
	}
	var missing []rune
	seen := map[rune]bool{}
	for _, page := range doc.Pages {
		for _, r := range rz.PageMissingGlyphs(page) {
			if !seen[r] {
				seen[r] = true
				missing = append(missing, r)
			}
		}
	}
	if len(missing) > 0 {
		fmt.Fprintf(warn, "warning: preview font lacks glyphs for %q; pass --font with a font that covers them\n", string(missing))
	}
	if err := os.MkdirAll(opts.previewDir, 0o755); err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}

	paths := make([]string, len(doc.Pages))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, page := range doc.Pages {
		i, page := i, page
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := rz.EncodePNG(&buf, page, doc.Canvas); err != nil {
				return fmt.Errorf("slide %d: %w", i+1, err)
			}
			path := filepath.Join(opts.previewDir, fmt.Sprintf("slide_%02d.png", i+1))
			if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("slide %d: %w", i+1, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
