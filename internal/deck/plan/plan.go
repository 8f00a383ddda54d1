// Package plan holds the canonical slide plan and the normalizer that turns
// an untrusted, model-generated plan into one.
package plan

import (
	"encoding/json"
)

type SlideType string

const (
	TitleSlide          SlideType = "title_slide"
	ContentSlide        SlideType = "content_slide"
	FinancialSlide      SlideType = "financial_slide"
	ImplementationSlide SlideType = "implementation_slide"
	ChartSlide          SlideType = "chart_slide"
	SolutionSlide       SlideType = "solution_slide"
	ConclusionSlide     SlideType = "conclusion_slide"
)

var slideTypes = []SlideType{
	TitleSlide,
	ContentSlide,
	FinancialSlide,
	ImplementationSlide,
	ChartSlide,
	SolutionSlide,
	ConclusionSlide,
}

// SlideTypes lists the known slide types.
func SlideTypes() []SlideType {
	out := make([]SlideType, len(slideTypes))
	copy(out, slideTypes)
	return out
}

func (t SlideType) Known() bool {
	for _, k := range slideTypes {
		if k == t {
			return true
		}
	}
	return false
}

// Kind is the type used for rendering: unknown tags render as content slides.
func (t SlideType) Kind() SlideType {
	if t.Known() {
		return t
	}
	return ContentSlide
}

const (
	DefaultTitle       = "Presentation"
	DefaultMainMessage = "content unavailable"
)

type Slide struct {
	SlideNumber int       `json:"slide_number"`
	Title       string    `json:"title"`
	Type        SlideType `json:"type"`
	Content     Object    `json:"content"`
}

func (s Slide) Raw() Object {
	return ObjectOf(
		"slide_number", numberOf(s.SlideNumber),
		"title", s.Title,
		"type", string(s.Type),
		"content", s.Content.Clone(),
	)
}

// Plan is a normalized presentation description. Meta keeps top-level keys
// other than title and slides (objective, target_audience, ...).
type Plan struct {
	Title  string
	Slides []Slide
	Meta   Object
}

// Raw converts the plan back into its JSON shape. Normalize(p.Raw()) == p for
// any normalized p.
func (p Plan) Raw() Object {
	out := NewObject()
	out.Set("title", p.Title)
	for _, k := range p.Meta.keys {
		if k == "title" || k == "slides" {
			continue
		}
		out.Set(k, cloneValue(p.Meta.values[k]))
	}
	slides := make([]any, 0, len(p.Slides))
	for _, s := range p.Slides {
		slides = append(slides, s.Raw())
	}
	out.Set("slides", slides)
	return out
}

func (p Plan) MarshalJSON() ([]byte, error) {
	return p.Raw().MarshalJSON()
}

// UnmarshalJSON decodes and normalizes. It fails only when data is not JSON.
func (p *Plan) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	*p, _ = Normalize(v)
	return nil
}

var _ json.Marshaler = Plan{}
