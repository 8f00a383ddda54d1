package plan

import (
	"fmt"
	"strconv"
	"strings"
)

type IssueCode string

const (
	IssueMalformedPlan     IssueCode = "malformed_plan"
	IssueTitleDefaulted    IssueCode = "title_defaulted"
	IssueSlidesMissing     IssueCode = "slides_missing"
	IssueSlidesMalformed   IssueCode = "slides_malformed"
	IssueSlideMalformed    IssueCode = "slide_malformed"
	IssueSlideRenumbered   IssueCode = "slide_renumbered"
	IssueSlideTitleDefault IssueCode = "slide_title_defaulted"
	IssueSlideTypeDefault  IssueCode = "slide_type_defaulted"
	IssueSlideTypeUnknown  IssueCode = "slide_type_unknown"
	IssueContentDefaulted  IssueCode = "content_defaulted"
)

// Issue records one repair made by Normalize. Slide is 1-based; 0 means the
// plan itself.
type Issue struct {
	Slide int       `json:"slide,omitempty"`
	Code  IssueCode `json:"code"`
	Note  string    `json:"note,omitempty"`
}

func (i Issue) String() string {
	s := string(i.Code)
	if i.Slide > 0 {
		s = fmt.Sprintf("slide %d: %s", i.Slide, s)
	}
	if i.Note != "" {
		s += " (" + i.Note + ")"
	}
	return s
}

// Report lists the repairs applied while normalizing. It is informational:
// normalization never fails.
type Report struct {
	Issues []Issue `json:"issues"`
}

func (r *Report) add(i Issue) { r.Issues = append(r.Issues, i) }

func (r Report) Empty() bool { return len(r.Issues) == 0 }

func (r Report) Has(code IssueCode) bool {
	for _, i := range r.Issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

func (r Report) Strings() []string {
	out := make([]string, 0, len(r.Issues))
	for _, i := range r.Issues {
		out = append(out, i.String())
	}
	return out
}

// Normalize repairs raw into a structurally valid Plan. raw may be an
// Object, a map[string]any, a Plan, or anything else; input that is not a
// mapping at all yields an empty plan with the default title.
func Normalize(raw any) (Plan, Report) {
	var rep Report
	p := Plan{Slides: []Slide{}, Meta: NewObject()}

	root, ok := asObject(raw)
	if !ok {
		rep.add(Issue{Code: IssueMalformedPlan, Note: fmt.Sprintf("%T", raw)})
		p.Title = DefaultTitle
		return p, rep
	}

	p.Title = strings.TrimSpace(root.Text("title"))
	if p.Title == "" {
		p.Title = DefaultTitle
		rep.add(Issue{Code: IssueTitleDefaulted})
	}

	for _, k := range root.keys {
		if k == "title" || k == "slides" {
			continue
		}
		p.Meta.Set(k, canonicalValue(root.values[k]))
	}

	rawSlides, present := root.Get("slides")
	items, isList := rawSlides.([]any)
	switch {
	case !present || rawSlides == nil:
		rep.add(Issue{Code: IssueSlidesMissing})
	case !isList:
		rep.add(Issue{Code: IssueSlidesMalformed, Note: fmt.Sprintf("%T", rawSlides)})
	}

	for i, item := range items {
		p.Slides = append(p.Slides, normalizeSlide(i+1, item, &rep))
	}
	return p, rep
}

func normalizeSlide(n int, item any, rep *Report) Slide {
	obj, ok := asObject(item)
	if !ok {
		obj = NewObject()
		rep.add(Issue{Slide: n, Code: IssueSlideMalformed, Note: fmt.Sprintf("%T", item)})
	}

	s := Slide{SlideNumber: n}
	if got := strings.TrimSpace(obj.Text("slide_number")); got != strconv.Itoa(n) {
		rep.add(Issue{Slide: n, Code: IssueSlideRenumbered, Note: got})
	}

	if v, ok := obj.Get("title"); ok && v != nil {
		s.Title = strings.TrimSpace(obj.Text("title"))
	} else {
		s.Title = fmt.Sprintf("Slide %d", n)
		rep.add(Issue{Slide: n, Code: IssueSlideTitleDefault})
	}

	t := strings.TrimSpace(obj.Text("type"))
	switch {
	case t == "":
		s.Type = ContentSlide
		rep.add(Issue{Slide: n, Code: IssueSlideTypeDefault})
	default:
		s.Type = SlideType(t)
		if !s.Type.Known() {
			rep.add(Issue{Slide: n, Code: IssueSlideTypeUnknown, Note: t})
		}
	}

	rawContent, _ := obj.Get("content")
	content, ok := asObject(rawContent)
	if !ok {
		content = ObjectOf(KeyMainMessage, DefaultMainMessage)
		rep.add(Issue{Slide: n, Code: IssueContentDefaulted})
	}
	s.Content = canonicalValue(content).(Object)
	return s
}

// Parse decodes JSON bytes and normalizes the result. Bytes that are not
// JSON are treated like any other non-mapping input.
func Parse(data []byte) (Plan, Report) {
	v, err := Decode(data)
	if err != nil {
		p, rep := Normalize(nil)
		rep.Issues[0].Note = err.Error()
		return p, rep
	}
	return Normalize(v)
}

func asObject(v any) (Object, bool) {
	switch t := v.(type) {
	case Object:
		return t, true
	case *Object:
		if t == nil {
			return Object{}, false
		}
		return *t, true
	case map[string]any:
		return objectFromMap(t), true
	case Plan:
		return t.Raw(), true
	case *Plan:
		if t == nil {
			return Object{}, false
		}
		return t.Raw(), true
	default:
		return Object{}, false
	}
}
