package slidedoc

import "strings"

type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

type Anchor string

const (
	AnchorTop    Anchor = "top"
	AnchorMiddle Anchor = "middle"
)

// Font sizes are in points. EastAsian names the family used for CJK text.
type Font struct {
	Family    string  `json:"family"`
	EastAsian string  `json:"east_asian,omitempty"`
	Size      float64 `json:"size"`
	Bold      bool    `json:"bold,omitempty"`
}

func (f Font) Bolded() Font {
	f.Bold = true
	return f
}

// Paragraph is one run of text. Newlines in Text become line breaks.
type Paragraph struct {
	Text  string `json:"text"`
	Font  Font   `json:"font"`
	Color Color  `json:"color"`
	Align Align  `json:"align"`
}

// Role tags what a shape means on its page so tests and encoders can find
// it without relying on drawing order.
type Role string

const (
	RoleHeaderBar        Role = "header_bar"
	RoleTitle            Role = "title"
	RoleSubtitle         Role = "subtitle"
	RoleAccentBar        Role = "accent_bar"
	RoleMessage          Role = "message"
	RolePoint            Role = "point"
	RoleMetricPanel      Role = "metric_panel"
	RoleHighlight        Role = "highlight"
	RoleCaption          Role = "caption"
	RolePhaseBar         Role = "phase_bar"
	RoleCallout          Role = "callout"
	RoleChartPlaceholder Role = "chart_placeholder"
	RoleColumnHeading    Role = "column_heading"
	RoleActionItem       Role = "action_item"
)

type Geometry string

const (
	GeometryTextBox Geometry = "textbox"
	GeometryRect    Geometry = "rect"
)

type Shape struct {
	Role       Role        `json:"role"`
	Geometry   Geometry    `json:"geometry"`
	Frame      Rect        `json:"frame"`
	Fill       *Color      `json:"fill,omitempty"`
	Line       *Color      `json:"line,omitempty"`
	Dashed     bool        `json:"dashed,omitempty"`
	Anchor     Anchor      `json:"anchor,omitempty"`
	Paragraphs []Paragraph `json:"paragraphs,omitempty"`
}

// Text joins the shape's paragraphs with newlines.
func (s Shape) Text() string {
	lines := make([]string, 0, len(s.Paragraphs))
	for _, p := range s.Paragraphs {
		lines = append(lines, p.Text)
	}
	return strings.Join(lines, "\n")
}

// Background is a solid fill, or a vertical two-stop gradient when
// GradientTo is set.
type Background struct {
	Fill       Color  `json:"fill"`
	GradientTo *Color `json:"gradient_to,omitempty"`
}

type Page struct {
	Kind       string     `json:"kind"`
	Background Background `json:"background"`
	Shapes     []Shape    `json:"shapes"`
}

func (p *Page) Add(s Shape) {
	if s.Geometry == "" {
		s.Geometry = GeometryTextBox
	}
	if s.Anchor == "" {
		s.Anchor = AnchorTop
	}
	p.Shapes = append(p.Shapes, s)
}

func (p *Page) ShapesByRole(r Role) []Shape {
	var out []Shape
	for _, s := range p.Shapes {
		if s.Role == r {
			out = append(out, s)
		}
	}
	return out
}

// Document owns its pages. Pages are created blank through NewPage and
// appended in order.
type Document struct {
	Title  string  `json:"title"`
	Canvas Size    `json:"canvas"`
	Pages  []*Page `json:"pages"`
}

func New(title string, canvas Size) *Document {
	return &Document{Title: title, Canvas: canvas, Pages: []*Page{}}
}

func (d *Document) NewPage() *Page {
	p := &Page{Background: Background{Fill: RGB(0xff, 0xff, 0xff)}}
	d.Pages = append(d.Pages, p)
	return p
}
