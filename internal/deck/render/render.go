// Package render draws one normalized slide onto a blank page using the
// slide's template. Rendering never fails: missing or malformed content
// fields produce fewer shapes, not errors.
package render

import (
	"strings"

	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
	"github.com/yungbote/deckgen-backend/internal/deck/template"
)

// Renderer is stateless and safe for concurrent use.
type Renderer struct{}

func New() *Renderer { return &Renderer{} }

// Render populates page with the layout for tpl.Kind. presentationTitle is
// used only by title slides whose own title is empty.
func (r *Renderer) Render(page *slidedoc.Page, s plan.Slide, tpl template.Template, presentationTitle string) {
	page.Kind = string(tpl.Kind)
	page.Background = tpl.Background

	switch tpl.Kind {
	case plan.TitleSlide:
		renderTitle(page, s, tpl, presentationTitle)
	case plan.FinancialSlide:
		renderFinancial(page, s, tpl)
	case plan.ImplementationSlide:
		renderImplementation(page, s, tpl)
	case plan.ChartSlide:
		renderChart(page, s, tpl)
	case plan.SolutionSlide:
		renderSolution(page, s, tpl)
	case plan.ConclusionSlide:
		renderConclusion(page, s, tpl)
	default:
		renderContent(page, s, tpl)
	}
}

func textBox(role slidedoc.Role, frame slidedoc.Rect, text string, font slidedoc.Font, color slidedoc.Color, align slidedoc.Align) slidedoc.Shape {
	return slidedoc.Shape{
		Role:     role,
		Geometry: slidedoc.GeometryTextBox,
		Frame:    frame,
		Paragraphs: []slidedoc.Paragraph{
			{Text: text, Font: font, Color: color, Align: align},
		},
	}
}

func box(role slidedoc.Role, frame slidedoc.Rect, fill, line slidedoc.Color) slidedoc.Shape {
	return slidedoc.Shape{
		Role:     role,
		Geometry: slidedoc.GeometryRect,
		Frame:    frame,
		Fill:     fill.Ptr(),
		Line:     line.Ptr(),
	}
}

func addHeader(page *slidedoc.Page, tpl template.Template) {
	if tpl.HeaderBar == nil {
		return
	}
	page.Add(box(slidedoc.RoleHeaderBar, tpl.HeaderBox, *tpl.HeaderBar, *tpl.HeaderBar))
}

func addTitle(page *slidedoc.Page, tpl template.Template, title string) {
	page.Add(textBox(slidedoc.RoleTitle, tpl.TitleBox, title, tpl.TitleFont, tpl.TitleColor, tpl.TitleAlign))
}

// addText adds a text box unless text is blank.
func addText(page *slidedoc.Page, role slidedoc.Role, frame slidedoc.Rect, text string, font slidedoc.Font, color slidedoc.Color) {
	if strings.TrimSpace(text) == "" {
		return
	}
	page.Add(textBox(role, frame, text, font, color, slidedoc.AlignLeft))
}

func capped[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func labelled(label, value string) string {
	if label == "" {
		return value
	}
	return label + ": " + value
}
