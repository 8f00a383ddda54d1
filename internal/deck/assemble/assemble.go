// Package assemble turns a normalized plan into an in-memory document, one
// page per slide in plan order.
package assemble

import (
	"fmt"

	"github.com/yungbote/deckgen-backend/internal/deck/plan"
	"github.com/yungbote/deckgen-backend/internal/deck/render"
	"github.com/yungbote/deckgen-backend/internal/deck/slidedoc"
	"github.com/yungbote/deckgen-backend/internal/deck/template"
)

type Assembler struct {
	registry *template.Registry
	renderer *render.Renderer
}

func New(registry *template.Registry, renderer *render.Renderer) *Assembler {
	if renderer == nil {
		renderer = render.New()
	}
	return &Assembler{registry: registry, renderer: renderer}
}

// Assemble renders every slide. An empty plan yields a document with no
// pages.
func (a *Assembler) Assemble(p plan.Plan) *slidedoc.Document {
	doc := slidedoc.New(p.Title, template.Canvas())
	for _, s := range p.Slides {
		a.renderer.Render(doc.NewPage(), s, a.registry.Resolve(string(s.Type)), p.Title)
	}
	return doc
}

// AssemblePage renders only the slide at index (0-based) into a one-page
// document.
func (a *Assembler) AssemblePage(p plan.Plan, index int) (*slidedoc.Document, error) {
	if index < 0 || index >= len(p.Slides) {
		return nil, fmt.Errorf("assemble: slide index %d out of range [0,%d)", index, len(p.Slides))
	}
	doc := slidedoc.New(p.Title, template.Canvas())
	s := p.Slides[index]
	a.renderer.Render(doc.NewPage(), s, a.registry.Resolve(string(s.Type)), p.Title)
	return doc, nil
}
