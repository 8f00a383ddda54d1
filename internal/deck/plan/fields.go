package plan

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Content fields are produced by a language model and only loosely follow
// the schema, so every read goes through the accessors below. None of them
// fails; an absent key or a value of the wrong shape yields the default:
//
//	Text      ""             numbers keep their literal form, bools print true/false
//	List      empty          scalar elements only, blank entries skipped, a lone string is a one-item list
//	Pairs     empty          object of scalars, in key order; list values are joined with ", "
//	Object    empty Object
//	Objects   empty          object elements only
//	Timeline  empty
//	Financials zero value

const (
	KeyMainMessage      = "main_message"
	KeySubtitle         = "subtitle"
	KeySupportingPoints = "supporting_points"
	KeyData             = "data"
	KeySolutionPoints   = "solution_points"
	KeyBenefits         = "benefits"
	KeyTimeline         = "timeline"
	KeyFinancialData    = "financial_data"
	KeyActionItems      = "action_items"
	KeyContactInfo      = "contact_info"
	KeyChartType        = "chart_type"
)

// Pair is one key/value entry of a data mapping.
type Pair struct {
	Key   string
	Value string
}

func (p Pair) String() string { return p.Key + ": " + p.Value }

func (o Object) Text(key string) string {
	v, _ := o.Get(key)
	s, _ := scalarText(v)
	return s
}

func (o Object) List(key string) []string {
	v, ok := o.Get(key)
	if !ok {
		return nil
	}
	if s, isStr := v.(string); isStr {
		if strings.TrimSpace(s) == "" {
			return nil
		}
		return []string{s}
	}
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := scalarText(item)
		if !ok || strings.TrimSpace(s) == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (o Object) Pairs(key string) []Pair {
	obj := o.Object(key)
	out := make([]Pair, 0, obj.Len())
	for _, k := range obj.keys {
		v := obj.values[k]
		if s, ok := scalarText(v); ok {
			out = append(out, Pair{Key: k, Value: s})
			continue
		}
		if items := obj.List(k); len(items) > 0 {
			out = append(out, Pair{Key: k, Value: strings.Join(items, ", ")})
		}
	}
	return out
}

func (o Object) Object(key string) Object {
	v, _ := o.Get(key)
	if obj, ok := v.(Object); ok {
		return obj
	}
	return NewObject()
}

func (o Object) Objects(key string) []Object {
	v, _ := o.Get(key)
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]Object, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(Object); ok {
			out = append(out, obj)
		}
	}
	return out
}

// Phase is one entry of a content timeline.
type Phase struct {
	Name       string
	Duration   string
	Activities []string
}

func (p Phase) Label() string {
	switch {
	case p.Name == "":
		return p.Duration
	case p.Duration == "":
		return p.Name
	default:
		return p.Name + " (" + p.Duration + ")"
	}
}

func (o Object) Timeline() []Phase {
	items := o.Objects(KeyTimeline)
	out := make([]Phase, 0, len(items))
	for _, item := range items {
		p := Phase{
			Name:       strings.TrimSpace(item.Text("phase")),
			Duration:   strings.TrimSpace(item.Text("duration")),
			Activities: item.List("activities"),
		}
		if p.Name == "" && p.Duration == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

type Projection struct {
	Year   string
	Amount string
}

type Financials struct {
	Investment string
	Revenue    []Projection
	ROI        string
}

func (f Financials) Empty() bool {
	return f.Investment == "" && len(f.Revenue) == 0 && f.ROI == ""
}

func (o Object) Financials() Financials {
	fd := o.Object(KeyFinancialData)
	f := Financials{
		Investment: strings.TrimSpace(fd.Text("investment")),
		ROI:        strings.TrimSpace(fd.Text("roi")),
	}
	for _, item := range fd.Objects("revenue_projection") {
		p := Projection{
			Year:   strings.TrimSpace(item.Text("year")),
			Amount: strings.TrimSpace(item.Text("amount")),
		}
		if p.Year == "" && p.Amount == "" {
			continue
		}
		f.Revenue = append(f.Revenue, p)
	}
	return f
}

func scalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	default:
		return "", false
	}
}

func numberOf(v any) json.Number {
	switch t := v.(type) {
	case float64:
		return json.Number(strconv.FormatFloat(t, 'f', -1, 64))
	case float32:
		return json.Number(strconv.FormatFloat(float64(t), 'f', -1, 32))
	case int:
		return json.Number(strconv.Itoa(t))
	case int8:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int16:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int32:
		return json.Number(strconv.FormatInt(int64(t), 10))
	case int64:
		return json.Number(strconv.FormatInt(t, 10))
	case uint:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case uint8:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case uint16:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case uint32:
		return json.Number(strconv.FormatUint(uint64(t), 10))
	case uint64:
		return json.Number(strconv.FormatUint(t, 10))
	default:
		return json.Number("0")
	}
}
