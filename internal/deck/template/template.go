// Package template maps slide types to immutable visual templates: colors,
// fonts and the slot rectangles a layout places content into.
package template

import (
	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
)

// The 16:9 page every template is laid out on: 33.867 x 19.05 cm.
const (
	CanvasW slidedoc.EMU = 12192120
	CanvasH slidedoc.EMU = 6858000
)

// Canvas returns the page size as a slidedoc.Size.
func Canvas() slidedoc.Size { return slidedoc.Size{W: CanvasW, H: CanvasH} }

// Per-page caps. Plans keep every entry; pages show at most this many.
const (
	MaxPoints   = 5
	MaxDataRows = 5
	MaxPhases   = 5
)

// Template describes one slide kind. Zero Rects mean the slot is unused.
type Template struct {
	Kind       plan.SlideType
	Background slidedoc.Background
	HeaderBar  *slidedoc.Color
	HeaderBox  slidedoc.Rect

	TitleFont    slidedoc.Font
	SubtitleFont slidedoc.Font
	EmphasisFont slidedoc.Font
	BodyFont     slidedoc.Font
	CaptionFont  slidedoc.Font
	TitleColor   slidedoc.Color
	TitleAlign   slidedoc.Align
	Palette      Palette

	TitleBox    slidedoc.Rect
	SubtitleBox slidedoc.Rect
	AccentBar   slidedoc.Rect
	BodyBox     slidedoc.Rect
	SidePanel   slidedoc.Rect
	HeadingBox  slidedoc.Rect
	ListBox     slidedoc.Rect // first list entry; later entries move down by ListStep
	ListStep    slidedoc.EMU
	ColumnShift slidedoc.EMU // x offset of the second column
	NoteBox     slidedoc.Rect
	CaptionBox  slidedoc.Rect

	Caption      string
	DefaultTitle string
	Labels       Captions
}

// ListSlot returns the frame of the i-th list entry.
func (t Template) ListSlot(i int) slidedoc.Rect {
	r := t.ListBox
	r.Y += slidedoc.EMU(i) * t.ListStep
	return r
}

// Registry resolves slide types to templates. It is built once and only
// read afterwards.
type Registry struct {
	theme     Theme
	templates map[plan.SlideType]Template
}

func NewRegistry(theme Theme) *Registry {
	r := &Registry{theme: theme, templates: make(map[plan.SlideType]Template)}
	for _, kind := range plan.SlideTypes() {
		r.templates[kind] = build(theme, kind)
	}
	return r
}

func (r *Registry) Theme() Theme { return r.theme }

// Resolve returns the template for tag, or the content template when tag
// is not a known slide type.
func (r *Registry) Resolve(tag string) Template {
	if t, ok := r.templates[plan.SlideType(tag)]; ok {
		return t
	}
	return r.templates[plan.ContentSlide]
}

func build(th Theme, kind plan.SlideType) Template {
	pal := th.Palette
	ty := th.Typography
	rect := slidedoc.RectCm

	t := Template{
		Kind:         kind,
		Background:   slidedoc.Background{Fill: pal.Background},
		HeaderBar:    pal.Primary.Ptr(),
		HeaderBox:    slidedoc.Rect{W: CanvasW, H: slidedoc.Cm(0.5)},
		TitleFont:    ty.font(ty.Header).Bolded(),
		SubtitleFont: ty.font(ty.Subtitle),
		EmphasisFont: ty.font(ty.Header).Bolded(),
		BodyFont:     ty.font(ty.Body),
		CaptionFont:  ty.font(ty.Caption),
		TitleColor:   pal.Text,
		TitleAlign:   slidedoc.AlignLeft,
		Palette:      pal,
		TitleBox:     rect(2, 1, 29, 2.5),
		Labels:       th.Captions,
	}

	switch kind {
	case plan.TitleSlide:
		t.Background = slidedoc.Background{Fill: pal.Primary, GradientTo: pal.Secondary.Ptr()}
		t.HeaderBar = nil
		t.HeaderBox = slidedoc.Rect{}
		t.TitleFont = ty.font(ty.Title).Bolded()
		t.TitleColor = pal.Background
		t.TitleAlign = slidedoc.AlignCenter
		t.TitleBox = rect(2, 6, 30, 4)
		t.SubtitleBox = rect(2, 10, 30, 2.5)
		t.AccentBar = rect(2, 17, 10, 0.5)

	case plan.FinancialSlide:
		t.HeaderBar = pal.Accent.Ptr()
		t.ListBox = rect(3, 4, 10, 2)
		t.ListStep = slidedoc.Cm(2.5)
		t.BodyBox = rect(15, 4, 15, 6)
		t.CaptionBox = rect(2, 16.5, 25, 1)
		t.Caption = th.Captions.Source

	case plan.ImplementationSlide:
		t.HeaderBar = pal.Secondary.Ptr()
		t.ListBox = rect(3, 4, 25, 1.5)
		t.ListStep = slidedoc.Cm(2)
		t.BodyBox = rect(3, 15, 25, 2)
		t.CaptionBox = rect(2, 17.5, 25, 1)
		t.Caption = th.Captions.Owner

	case plan.ChartSlide:
		t.BodyBox = rect(2, 4, 29, 1.5)
		t.SidePanel = rect(2, 6, 29, 11.5)

	case plan.SolutionSlide:
		t.BodyBox = rect(2, 4, 29, 1.5)
		t.HeadingBox = rect(2, 6, 14, 1)
		t.ListBox = rect(2, 7.2, 14, 1.6)
		t.ListStep = slidedoc.Cm(1.9)
		t.ColumnShift = slidedoc.Cm(15.5)

	case plan.ConclusionSlide:
		t.BodyBox = rect(2, 4.5, 29, 4)
		t.ListBox = rect(3, 9.5, 25, 1.1)
		t.ListStep = slidedoc.Cm(1.5)
		t.NoteBox = rect(2, 16.8, 29, 0.9)
		t.CaptionBox = rect(2, 17.8, 29, 0.9)
		t.DefaultTitle = th.Captions.ConclusionTitle

	default: // content
		t.BodyBox = rect(2, 4, 20, 3)
		t.ListBox = rect(3, 7, 25, 1.5)
		t.ListStep = slidedoc.Cm(2)
		t.SidePanel = rect(24, 4, 7, 6)
	}
	return t
}
