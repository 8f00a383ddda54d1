// Package raster draws slidedoc pages into PNG previews. Previews follow the
// page geometry; text metrics only approximate what an office suite draws.
package raster

import (
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
)

const (
	DefaultWidth = 1280

	insetX     = 91440 // EMU, default DrawingML text insets
	insetY     = 45720
	lineHeight = 1.2
)

type Options struct {
	Width           int
	RegularFontPath string
	BoldFontPath    string
}

// Rasterizer holds parsed fonts only. Faces are created per call because
// truetype faces keep glyph caches that are not safe to share.
type Rasterizer struct {
	width   int
	regular *truetype.Font
	bold    *truetype.Font
}

func New(opts Options) (*Rasterizer, error) {
	regular, err := loadFont(opts.RegularFontPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: regular font: %w", err)
	}
	boldPath := opts.BoldFontPath
	if boldPath == "" {
		boldPath = opts.RegularFontPath
	}
	bold, err := loadFont(boldPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("raster: bold font: %w", err)
	}
	w := opts.Width
	if w <= 0 {
		w = DefaultWidth
	}
	return &Rasterizer{width: w, regular: regular, bold: bold}, nil
}

func loadFont(path string, fallback []byte) (*truetype.Font, error) {
	data := fallback
	if p := strings.TrimSpace(path); p != "" {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		data = b
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	return f, nil
}

// MissingGlyphs returns the distinct runes of text the regular font has no
// glyph for, in order of first appearance. The bundled Go fonts carry no
// CJK glyphs; set a font path to preview such text.
func (r *Rasterizer) MissingGlyphs(text string) []rune {
	return missing(r.regular, text, nil)
}

// PageMissingGlyphs is MissingGlyphs over every paragraph on page, checking
// bold paragraphs against the bold font.
func (r *Rasterizer) PageMissingGlyphs(page *slidedoc.Page) []rune {
	if page == nil {
		return nil
	}
	seen := map[bool]map[rune]bool{false: {}, true: {}}
	reported := map[rune]bool{}
	var out []rune
	for _, s := range page.Shapes {
		for _, p := range s.Paragraphs {
			src := r.regular
			if p.Font.Bold {
				src = r.bold
			}
			for _, c := range missing(src, p.Text, seen[p.Font.Bold]) {
				if !reported[c] {
					reported[c] = true
					out = append(out, c)
				}
			}
		}
	}
	return out
}

func missing(f *truetype.Font, text string, seen map[rune]bool) []rune {
	if seen == nil {
		seen = map[rune]bool{}
	}
	var out []rune
	for _, c := range text {
		if seen[c] || unicode.IsSpace(c) || unicode.IsControl(c) {
			continue
		}
		seen[c] = true
		if f.Index(c) == 0 {
			out = append(out, c)
		}
	}
	return out
}

// Size returns the pixel size of a preview for canvas.
func (r *Rasterizer) Size(canvas slidedoc.Size) (int, int) {
	if canvas.W <= 0 {
		return r.width, 0
	}
	h := int(math.Round(float64(r.width) * float64(canvas.H) / float64(canvas.W)))
	return r.width, h
}

func (r *Rasterizer) Render(page *slidedoc.Page, canvas slidedoc.Size) (image.Image, error) {
	dc, err := r.draw(page, canvas)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (r *Rasterizer) EncodePNG(w io.Writer, page *slidedoc.Page, canvas slidedoc.Size) error {
	dc, err := r.draw(page, canvas)
	if err != nil {
		return err
	}
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (r *Rasterizer) draw(page *slidedoc.Page, canvas slidedoc.Size) (*gg.Context, error) {
	if page == nil {
		return nil, fmt.Errorf("raster: nil page")
	}
	w, h := r.Size(canvas)
	if h <= 0 {
		return nil, fmt.Errorf("raster: invalid canvas %dx%d", canvas.W, canvas.H)
	}
	scale := float64(w) / float64(canvas.W)
	dc := gg.NewContext(w, h)

	bg := page.Background
	if bg.GradientTo != nil {
		grad := gg.NewLinearGradient(0, 0, 0, float64(h))
		grad.AddColorStop(0, bg.Fill.NRGBA())
		grad.AddColorStop(1, bg.GradientTo.NRGBA())
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, float64(w), float64(h))
		dc.Fill()
	} else {
		dc.SetColor(bg.Fill.NRGBA())
		dc.Clear()
	}

	faces := map[faceKey]font.Face{}
	defer func() {
		for _, f := range faces {
			f.Close()
		}
	}()

	for _, s := range page.Shapes {
		x := float64(s.Frame.X) * scale
		y := float64(s.Frame.Y) * scale
		fw := float64(s.Frame.W) * scale
		fh := float64(s.Frame.H) * scale

		if s.Fill != nil {
			dc.SetColor(s.Fill.NRGBA())
			dc.DrawRectangle(x, y, fw, fh)
			dc.Fill()
		}
		if s.Line != nil {
			dc.SetColor(s.Line.NRGBA())
			dc.SetLineWidth(math.Max(1, slidedoc.EMUPerPoint*scale))
			if s.Dashed {
				dc.SetDash(6, 4)
			}
			dc.DrawRectangle(x, y, fw, fh)
			dc.Stroke()
			dc.SetDash()
		}
		r.drawText(dc, faces, s, x, y, fw, fh, scale)
	}
	return dc, nil
}

type faceKey struct {
	bold bool
	px   float64
}

type textLine struct {
	text string
	face font.Face
	px   float64
	para slidedoc.Paragraph
}

func (r *Rasterizer) face(faces map[faceKey]font.Face, bold bool, px float64) font.Face {
	k := faceKey{bold: bold, px: math.Round(px*4) / 4}
	if f, ok := faces[k]; ok {
		return f
	}
	src := r.regular
	if bold {
		src = r.bold
	}
	f := truetype.NewFace(src, &truetype.Options{
		Size:    k.px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	faces[k] = f
	return f
}

func (r *Rasterizer) drawText(dc *gg.Context, faces map[faceKey]font.Face, s slidedoc.Shape, x, y, w, h, scale float64) {
	if len(s.Paragraphs) == 0 {
		return
	}
	padX := insetX * scale
	padY := insetY * scale
	inner := math.Max(1, w-2*padX)

	var lines []textLine
	total := 0.0
	for _, p := range s.Paragraphs {
		px := math.Max(1, p.Font.Size*slidedoc.EMUPerPoint*scale)
		f := r.face(faces, p.Font.Bold, px)
		dc.SetFontFace(f)
		for _, raw := range strings.Split(p.Text, "\n") {
			wrapped := dc.WordWrap(raw, inner)
			if len(wrapped) == 0 {
				wrapped = []string{""}
			}
			for _, l := range wrapped {
				lines = append(lines, textLine{text: l, face: f, px: px, para: p})
				total += px * lineHeight
			}
		}
	}

	top := y + padY
	if s.Anchor == slidedoc.AnchorMiddle {
		top = y + (h-total)/2
	}

	dc.Push()
	dc.DrawRectangle(x, y, w, h)
	dc.Clip()
	cursor := top
	for _, l := range lines {
		dc.SetFontFace(l.face)
		dc.SetColor(l.para.Color.NRGBA())
		ax, tx := 0.0, x+padX
		switch l.para.Align {
		case slidedoc.AlignCenter:
			ax, tx = 0.5, x+w/2
		case slidedoc.AlignRight:
			ax, tx = 1, x+w-padX
		}
		dc.DrawStringAnchored(l.text, tx, cursor+l.px, ax, 0)
		cursor += l.px * lineHeight
	}
	dc.ResetClip()
	dc.Pop()
}
